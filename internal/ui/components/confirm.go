// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/subodhdevpatel/ai-chatbot/internal/ui/styles"
)

// =============================================================================
// CONFIRMATION OVERLAY
// =============================================================================

// ConfirmPrompt is a yes/no prompt gating a destructive action.
type ConfirmPrompt struct {
	Title   string
	Detail  string
	YesText string
	NoText  string

	// YesSelected tracks which button has focus. No is the default so a
	// stray Enter does not destroy anything.
	YesSelected bool
}

// NewConfirmPrompt creates a prompt with No focused.
func NewConfirmPrompt(title, detail string) ConfirmPrompt {
	return ConfirmPrompt{
		Title:   title,
		Detail:  detail,
		YesText: "Delete",
		NoText:  "Cancel",
	}
}

// Toggle flips the focused button.
func (p *ConfirmPrompt) Toggle() {
	p.YesSelected = !p.YesSelected
}

// Render renders the prompt box centered in the given area.
func (p ConfirmPrompt) Render(th *styles.Theme, width, height int) string {
	var yes, no string
	if p.YesSelected {
		yes = th.ConfirmButtonActive.Render(p.YesText)
		no = th.ConfirmButton.Render(p.NoText)
	} else {
		yes = th.ConfirmButton.Render(p.YesText)
		no = th.ConfirmButtonActive.Render(p.NoText)
	}

	var sb strings.Builder
	sb.WriteString(th.ConfirmTitle.Render(p.Title))
	if p.Detail != "" {
		sb.WriteString("\n\n")
		sb.WriteString(p.Detail)
	}
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, no, "   ", yes))

	box := th.ConfirmBox.Render(sb.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
