// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/subodhdevpatel/ai-chatbot/internal/model"
	"github.com/subodhdevpatel/ai-chatbot/internal/notify"
	"github.com/subodhdevpatel/ai-chatbot/internal/ui/components"
)

// Update is the Bubble Tea update loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case BackendStatusMsg:
		m.connected = msg.Running
		return m, nil

	case AnswerMsg:
		return m.handleAnswer(msg)

	case DocumentsMsg:
		m.docs = msg.Documents
		if m.docCursor >= len(m.docs) {
			m.docCursor = len(m.docs) - 1
		}
		if m.docCursor < 0 {
			m.docCursor = 0
		}
		return m, nil

	case UploadResultMsg:
		return m.handleUploadResult(msg)

	case DeleteDocumentResultMsg:
		if msg.Error != nil {
			n := m.notifier.Error("Failed to delete " + msg.Filename)
			return m, notify.ExpireCmd(n)
		}
		n := m.notifier.Success(msg.Filename + " deleted.")
		return m, tea.Batch(notify.ExpireCmd(n), RefreshDocumentsCmd(m.registry))

	case PreviewMsg:
		if msg.Error != nil {
			m.mode = modeDocuments
			n := m.notifier.Error("Failed to load " + msg.Filename)
			return m, notify.ExpireCmd(n)
		}
		m.previewName = msg.Filename
		m.previewContent = msg.Content
		m.mode = modePreview
		m.showPreview()
		return m, nil

	case WatcherUploadMsg:
		return m.handleWatcherUpload(msg)

	case WatcherClosedMsg:
		return m, nil

	case notify.ExpiredMsg:
		m.notifier.Expire(msg.Seq)
		return m, nil

	case ScrollToBottomMsg:
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.mode {
	case modeDocuments:
		return m.handleDocumentsKey(msg)
	case modeConfirmDeleteChat, modeConfirmDeleteDoc:
		return m.handleConfirmKey(msg)
	case modePreview:
		return m.handlePreviewKey(msg)
	case modeUploadPrompt:
		return m.handleUploadPromptKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keys.NewChat):
		if _, err := m.store.NewThread(); err != nil {
			n := m.notifier.Error("Failed to create conversation")
			return m, notify.ExpireCmd(n)
		}
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.NextChat):
		return m.selectOffset(1)

	case key.Matches(msg, m.keys.PrevChat):
		return m.selectOffset(-1)

	case key.Matches(msg, m.keys.DeleteChat):
		th := m.store.ActiveThread()
		if th == nil {
			return m, nil
		}
		m.confirm = components.NewConfirmPrompt(
			"Delete conversation?",
			th.Title+" will be removed permanently.",
		)
		m.confirmTarget = th.ID
		m.mode = modeConfirmDeleteChat
		return m, nil

	case key.Matches(msg, m.keys.Documents):
		m.mode = modeDocuments
		m.docCursor = 0
		return m, RefreshDocumentsCmd(m.registry)

	case key.Matches(msg, m.keys.Upload):
		m.mode = modeUploadPrompt
		m.uploadInput.SetValue("")
		m.uploadInput.Focus()
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.notifier.Clear()
		return m, nil

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down),
		key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleDocumentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Documents):
		m.mode = modeChat
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.docCursor > 0 {
			m.docCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.docCursor < len(m.docs)-1 {
			m.docCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.docCursor < len(m.docs) {
			return m, PreviewDocumentCmd(m.client, m.docs[m.docCursor])
		}
		return m, nil

	case msg.String() == "d":
		if m.docCursor < len(m.docs) {
			name := m.docs[m.docCursor]
			m.confirm = components.NewConfirmPrompt(
				"Delete document?",
				name+" will be removed from the knowledge base.",
			)
			m.confirmTarget = name
			m.mode = modeConfirmDeleteDoc
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeChat
		return m, nil

	case msg.String() == "left", msg.String() == "right", msg.String() == "tab":
		m.confirm.Toggle()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		confirmed := m.confirm.YesSelected
		deleteDoc := m.mode == modeConfirmDeleteDoc
		target := m.confirmTarget
		m.mode = modeChat
		if !confirmed {
			return m, nil
		}
		if deleteDoc {
			m.mode = modeDocuments
			return m, DeleteDocumentCmd(m.client, target)
		}
		if err := m.store.DeleteThread(target); err != nil {
			n := m.notifier.Error("Failed to delete conversation")
			return m, notify.ExpireCmd(n)
		}
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil
	}
	return m, nil
}

func (m *Model) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Submit):
		m.previewName = ""
		m.previewContent = ""
		m.mode = modeDocuments
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down),
		key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleUploadPromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeChat
		m.uploadInput.Blur()
		m.input.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		path := m.uploadInput.Value()
		m.mode = modeChat
		m.uploadInput.Blur()
		m.input.Focus()
		if path == "" {
			return m, nil
		}
		m.notifier.Info("Uploading " + path + "...")
		return m, UploadDocumentCmd(m.client, path, m.askTimeout)
	}

	var cmd tea.Cmd
	m.uploadInput, cmd = m.uploadInput.Update(msg)
	return m, cmd
}

// =============================================================================
// OPERATIONS
// =============================================================================

// handleSubmit sends the typed question. The user message is appended
// before the backend answers and stays even if the request fails.
func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	text := m.trimInput()
	if text == "" || m.ActiveWaiting() {
		return m, nil
	}

	threadID := m.store.ActiveID()
	if err := m.store.AppendMessage(threadID, model.NewUserMessage(text)); err != nil {
		n := m.notifier.Error("Failed to save message")
		return m, notify.ExpireCmd(n)
	}
	m.input.SetValue("")
	m.inflight[threadID]++
	m.notifier.Clear()

	m.refreshViewport()
	return m, tea.Batch(
		AskCmd(m.client, threadID, text, m.askTimeout),
		ScrollToBottomCmd(),
		m.spin.Tick,
	)
}

// handleAnswer lands a backend answer in the thread it was asked in.
func (m *Model) handleAnswer(msg AnswerMsg) (tea.Model, tea.Cmd) {
	if m.inflight[msg.ThreadID] > 0 {
		m.inflight[msg.ThreadID]--
	}

	if msg.Error != nil {
		// The user message stays; only a notification is shown. It does
		// not auto-clear, the user dismisses it with Esc.
		m.notifier.Error(sendFailedText)
		return m, nil
	}

	ai := model.NewAIMessage(msg.Response, msg.Sources)
	if err := m.store.AppendMessage(msg.ThreadID, ai); err != nil {
		n := m.notifier.Error("Failed to save message")
		return m, notify.ExpireCmd(n)
	}

	if msg.ThreadID == m.store.ActiveID() {
		m.refreshViewport()
		return m, ScrollToBottomCmd()
	}
	return m, nil
}

// handleUploadResult finishes a manual upload: a system message in the
// active conversation, a toast, and a registry refresh.
func (m *Model) handleUploadResult(msg UploadResultMsg) (tea.Model, tea.Cmd) {
	if msg.Error != nil {
		n := m.notifier.Error("Failed to upload " + msg.Filename)
		return m, notify.ExpireCmd(n)
	}

	if err := m.store.AppendMessage(m.store.ActiveID(), model.NewUploadMessage(msg.Filename)); err != nil {
		n := m.notifier.Error("Failed to save message")
		return m, notify.ExpireCmd(n)
	}
	m.refreshViewport()

	n := m.notifier.Success(msg.Filename + " uploaded successfully.")
	return m, tea.Batch(
		notify.ExpireCmd(n),
		RefreshDocumentsCmd(m.registry),
		ScrollToBottomCmd(),
	)
}

// handleWatcherUpload surfaces an inbox auto-upload and rearms the drain.
func (m *Model) handleWatcherUpload(msg WatcherUploadMsg) (tea.Model, tea.Cmd) {
	rearm := WaitForWatcherCmd(m.inbox)

	if msg.Error != nil {
		n := m.notifier.Error("Failed to upload " + msg.Filename)
		return m, tea.Batch(notify.ExpireCmd(n), rearm)
	}

	n := m.notifier.Success(msg.Filename + " uploaded from inbox.")
	return m, tea.Batch(
		notify.ExpireCmd(n),
		RefreshDocumentsCmd(m.registry),
		rearm,
	)
}

// selectOffset activates the thread delta positions from the active one.
func (m *Model) selectOffset(delta int) (tea.Model, tea.Cmd) {
	id, ok := m.threadOffset(delta)
	if !ok {
		return m, nil
	}
	switched, err := m.store.SelectThread(id)
	if err != nil {
		n := m.notifier.Error("Failed to save conversation state")
		return m, notify.ExpireCmd(n)
	}
	if switched {
		m.refreshViewport()
		m.viewport.GotoBottom()
	}
	return m, nil
}
