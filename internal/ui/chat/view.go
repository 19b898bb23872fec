// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/subodhdevpatel/ai-chatbot/internal/model"
	"github.com/subodhdevpatel/ai-chatbot/internal/ui/components"
)

// View renders the full chat interface.
func (m *Model) View() string {
	if !m.ready {
		return "Starting..."
	}

	switch m.mode {
	case modeConfirmDeleteChat, modeConfirmDeleteDoc:
		return m.confirm.Render(m.theme, m.width, m.height)
	case modePreview:
		return m.viewPreview()
	case modeDocuments:
		return m.viewDocuments()
	}

	return m.viewChat()
}

// viewChat renders the main conversation layout.
func (m *Model) viewChat() string {
	sidebarW := m.theme.SidebarWidth()
	mainW := m.width - sidebarW - 2

	header := m.theme.Header.Width(mainW).Render("AI Research Assistant")

	toast := components.RenderToast(m.theme, m.notifier.Active(), mainW)
	if toast == "" && m.ActiveWaiting() {
		toast = m.spin.View() + m.theme.ThinkingText.Render(" Thinking...")
	}
	if toast == "" {
		toast = " "
	}

	var input string
	if m.mode == modeUploadPrompt {
		input = m.theme.InputContainer.Width(mainW).Render(
			m.theme.InputPrompt.Render("Upload: ") + m.uploadInput.View())
	} else {
		input = m.theme.InputContainer.Width(mainW).Render(
			m.theme.InputPrompt.Render("> ") + m.input.View())
	}

	var shortcuts []components.Shortcut
	for _, b := range m.keys.ShortHelp() {
		shortcuts = append(shortcuts, components.Shortcut{
			Key:  b.Help().Key,
			Desc: b.Help().Desc,
		})
	}
	status := components.RenderStatusBar(m.theme, components.StatusInfo{
		Connected: m.connected,
		DocCount:  m.registry.Count(),
		Shortcuts: shortcuts,
	}, m.width)

	main := lipgloss.JoinVertical(lipgloss.Left,
		header,
		toast,
		m.viewport.View(),
		input,
	)

	if sidebarW > 0 {
		metas := m.store.Threads()
		model.SortMetas(metas)
		sidebar := components.RenderSidebar(m.theme, metas, m.store.ActiveID(), sidebarW, m.height-1)
		main = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	}

	return lipgloss.JoinVertical(lipgloss.Left, main, status)
}

// viewDocuments renders the document list overlay.
func (m *Model) viewDocuments() string {
	var sb strings.Builder
	sb.WriteString(m.theme.SidebarTitle.Render("Documents"))
	sb.WriteString("\n\n")

	if len(m.docs) == 0 {
		sb.WriteString(m.theme.SessionMeta.Render("No documents uploaded yet."))
	} else {
		itemWidth := m.width/2 - 4
		if itemWidth < 20 {
			itemWidth = 20
		}
		for i, doc := range m.docs {
			name := runewidth.Truncate(doc, itemWidth, "…")
			if i == m.docCursor {
				sb.WriteString(m.theme.SessionItemSelected.Width(itemWidth).Render(name))
			} else {
				sb.WriteString(m.theme.SessionItem.Width(itemWidth).Render(name))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(m.theme.ShortcutDesc.Render("Enter preview · d delete · Esc close"))

	box := m.theme.PreviewBox.Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// viewPreview renders the document content overlay. The body lives in
// the shared viewport so the usual scroll keys work on long documents.
func (m *Model) viewPreview() string {
	header := m.theme.PreviewHeader.Width(m.viewport.Width).Render(m.previewName)
	footer := m.theme.ShortcutDesc.Render("↑/↓ scroll · Esc close")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), footer)
}
