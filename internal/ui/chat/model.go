// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// The Model owns all conversation state transitions: sending questions,
// switching and deleting threads, uploading and deleting documents, and
// the notification lifecycle. The user's message is appended optimistically
// before the backend answers; a failed question leaves the user message in
// place and surfaces an error notification instead.
package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/subodhdevpatel/ai-chatbot/internal/config"
	"github.com/subodhdevpatel/ai-chatbot/internal/gateway"
	"github.com/subodhdevpatel/ai-chatbot/internal/model"
	"github.com/subodhdevpatel/ai-chatbot/internal/notify"
	"github.com/subodhdevpatel/ai-chatbot/internal/registry"
	"github.com/subodhdevpatel/ai-chatbot/internal/store"
	"github.com/subodhdevpatel/ai-chatbot/internal/ui/components"
	"github.com/subodhdevpatel/ai-chatbot/internal/ui/styles"
	"github.com/subodhdevpatel/ai-chatbot/internal/watcher"
)

// sendFailedText matches the web client's wording so users moving between
// the two see the same error.
const sendFailedText = "Failed to get a response. Please check if the backend is running."

// =============================================================================
// MODES
// =============================================================================

// mode is the interaction mode of the chat view.
type mode int

const (
	// modeChat is the normal conversation view.
	modeChat mode = iota

	// modeDocuments shows the document list overlay.
	modeDocuments

	// modeConfirmDeleteChat gates conversation deletion.
	modeConfirmDeleteChat

	// modeConfirmDeleteDoc gates document deletion.
	modeConfirmDeleteDoc

	// modePreview shows document content.
	modePreview

	// modeUploadPrompt asks for a local file path to upload.
	modeUploadPrompt
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat interface.
type Model struct {
	client   *gateway.Client
	store    *store.ConversationStore
	registry *registry.DocumentRegistry
	notifier *notify.Manager
	inbox    *watcher.FolderWatcher

	theme *styles.Theme
	keys  KeyMap

	input       textinput.Model
	uploadInput textinput.Model
	viewport    viewport.Model
	spin        spinner.Model

	mode      mode
	connected bool

	// inflight counts unanswered questions per thread. Answers are routed
	// by thread ID, so switching threads while waiting is fine.
	inflight map[string]int

	// Documents overlay state.
	docs      []string
	docCursor int

	// Confirmation overlay state.
	confirm       components.ConfirmPrompt
	confirmTarget string

	// Preview overlay state.
	previewName    string
	previewContent string

	askTimeout  time.Duration
	showSources bool
	markdown    bool

	width  int
	height int
	ready  bool
}

// Options configures the chat model.
type Options struct {
	Client   *gateway.Client
	Store    *store.ConversationStore
	Registry *registry.DocumentRegistry

	// Inbox is the optional watch-folder; nil disables auto-upload.
	Inbox *watcher.FolderWatcher

	Config *config.Config
}

// New creates the chat model.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	input := textinput.New()
	input.Placeholder = "Ask a question about your documents..."
	input.CharLimit = 4000
	input.Focus()

	uploadInput := textinput.New()
	uploadInput.Placeholder = "Path to a .txt or .pdf file"
	uploadInput.CharLimit = 1024

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		client:      opts.Client,
		store:       opts.Store,
		registry:    opts.Registry,
		notifier:    notify.NewManager(),
		inbox:       opts.Inbox,
		theme:       styles.NewTheme(),
		keys:        DefaultKeyMap(),
		input:       input,
		uploadInput: uploadInput,
		spin:        sp,
		inflight:    make(map[string]int),
		askTimeout:  cfg.Timeout(),
		showSources: cfg.UI.ShowSources,
		markdown:    cfg.UI.Markdown,
	}
}

// Init starts the backend health check, the initial document refresh, and
// the inbox drain loop.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		CheckBackendCmd(m.client),
		RefreshDocumentsCmd(m.registry),
		m.spin.Tick,
	}
	if m.inbox != nil {
		cmds = append(cmds, WaitForWatcherCmd(m.inbox))
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// STATE HELPERS
// =============================================================================

// ActiveWaiting reports whether the active thread has an unanswered
// question. Input is blocked while waiting, matching the web client.
func (m *Model) ActiveWaiting() bool {
	return m.inflight[m.store.ActiveID()] > 0
}

// Notification returns the active notification for rendering.
func (m *Model) Notification() *notify.Notification {
	return m.notifier.Active()
}

// refreshViewport re-renders the active conversation into the viewport.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	th := m.store.ActiveThread()
	if th == nil {
		m.viewport.SetContent("")
		return
	}
	content := components.RenderConversation(m.theme, th.Messages, components.MessageOptions{
		Width:       m.viewport.Width,
		Markdown:    m.markdown,
		ShowSources: m.showSources,
	})
	m.viewport.SetContent(content)
}

// showPreview renders the previewed document into the viewport so long
// documents scroll with the normal viewport keys.
func (m *Model) showPreview() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(components.RenderPreviewBody(m.previewName, m.previewContent))
	m.viewport.GotoTop()
}

// resize lays out the viewport and input for a new terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	sidebarW := m.theme.SidebarWidth()
	mainW := width - sidebarW - 2
	if mainW < 20 {
		mainW = 20
	}

	// Header, toast line, input, status bar.
	vpHeight := height - 6
	if vpHeight < 3 {
		vpHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(mainW, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = mainW
		m.viewport.Height = vpHeight
	}
	m.input.Width = mainW - 4
	m.uploadInput.Width = mainW - 4

	if m.mode == modePreview {
		m.showPreview()
		return
	}
	m.refreshViewport()
	m.viewport.GotoBottom()
}

// threadOffset selects the thread delta positions away from the active
// one in the newest-first ordering. Returns false at the list edge.
func (m *Model) threadOffset(delta int) (string, bool) {
	metas := m.store.Threads()
	model.SortMetas(metas)
	active := m.store.ActiveID()
	for i, meta := range metas {
		if meta.ID == active {
			j := i + delta
			if j < 0 || j >= len(metas) {
				return "", false
			}
			return metas[j].ID, true
		}
	}
	return "", false
}

// trimInput returns the trimmed input text.
func (m *Model) trimInput() string {
	return strings.TrimSpace(m.input.Value())
}
