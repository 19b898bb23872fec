// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/subodhdevpatel/ai-chatbot/internal/model"
	"github.com/subodhdevpatel/ai-chatbot/internal/ui/styles"
)

// =============================================================================
// CONVERSATION SIDEBAR
// =============================================================================

// RenderSidebar renders the conversation list. Threads are passed newest
// first; the active thread is highlighted.
func RenderSidebar(th *styles.Theme, metas []model.ThreadMeta, activeID string, width, height int) string {
	if width <= 0 {
		return ""
	}

	var lines []string
	lines = append(lines, th.SidebarTitle.Render("Conversations"))
	lines = append(lines, "")

	// Leave room for the title and padding.
	maxItems := height - 3
	if maxItems < 1 {
		maxItems = 1
	}

	itemWidth := width - 3
	for i, meta := range metas {
		if i >= maxItems {
			lines = append(lines, th.SessionMeta.Render("  ..."))
			break
		}

		title := runewidth.Truncate(meta.Title, itemWidth, "…")
		if meta.ID == activeID {
			lines = append(lines, th.SessionItemSelected.Width(itemWidth).Render(title))
		} else {
			lines = append(lines, th.SessionItem.Width(itemWidth).Render(title))
		}
	}

	content := strings.Join(lines, "\n")
	return th.Sidebar.Width(width).Height(height).Render(content)
}

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusInfo carries the data shown in the bottom status bar.
type StatusInfo struct {
	Connected bool
	DocCount  int
	Shortcuts []Shortcut
}

// Shortcut is a key hint shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(th *styles.Theme, info StatusInfo, width int) string {
	var left strings.Builder
	if info.Connected {
		left.WriteString(th.DocCount.Render("● online"))
	} else {
		left.WriteString(lipgloss.NewStyle().Foreground(styles.Rose).Render("○ offline"))
	}
	left.WriteString("  ")
	left.WriteString(th.DocCount.Render(strconv.Itoa(info.DocCount) + " docs"))

	var right strings.Builder
	for i, s := range info.Shortcuts {
		if i > 0 {
			right.WriteString("  ")
		}
		right.WriteString(th.ShortcutKey.Render(s.Key))
		right.WriteString(" ")
		right.WriteString(th.ShortcutDesc.Render(s.Desc))
	}

	gap := width - lipgloss.Width(left.String()) - lipgloss.Width(right.String()) - 2
	if gap < 1 {
		gap = 1
	}

	return th.StatusBar.Width(width).Render(left.String() + strings.Repeat(" ", gap) + right.String())
}
