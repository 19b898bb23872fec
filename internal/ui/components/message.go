// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/subodhdevpatel/ai-chatbot/internal/model"
	"github.com/subodhdevpatel/ai-chatbot/internal/ui/styles"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer renders assistant answers. Initialized once; a nil
// renderer falls back to plain text.
var markdownRenderer *glamour.TermRenderer

func init() {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)
	if err == nil {
		markdownRenderer = r
	}
}

// RenderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails.
func RenderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// =============================================================================
// MESSAGE BUBBLE
// =============================================================================

// MessageOptions controls message rendering.
type MessageOptions struct {
	// Width is the available width for the bubble.
	Width int

	// Markdown renders assistant text through the markdown renderer.
	Markdown bool

	// ShowSources appends a citation footer to assistant answers.
	ShowSources bool

	// ShowTimestamps prefixes each message with its time.
	ShowTimestamps bool
}

// RenderMessage renders a single message as a styled bubble.
func RenderMessage(th *styles.Theme, msg model.Message, opts MessageOptions) string {
	width := opts.Width
	if width < 20 {
		width = 20
	}
	bubbleWidth := width - 8

	label := th.SenderLabel.Render(msg.Sender.DisplayName())
	if opts.ShowTimestamps {
		label += " " + th.Timestamp.Render(msg.Timestamp.Format("15:04"))
	}

	var bubble string
	switch {
	case msg.IsUpload:
		bubble = th.UploadNotice.MaxWidth(bubbleWidth).Render(msg.Text)
	case msg.Sender == model.SenderUser:
		bubble = th.UserBubble.MaxWidth(bubbleWidth).Render(msg.Text)
	case msg.Sender == model.SenderSystem:
		bubble = th.SystemBubble.MaxWidth(bubbleWidth).Render(msg.Text)
	default:
		text := msg.Text
		if opts.Markdown {
			text = RenderMarkdown(text)
		}
		bubble = th.AssistantBubble.MaxWidth(bubbleWidth).Render(text)
		if opts.ShowSources && msg.HasSources() {
			bubble += "\n" + renderSources(th, msg.Sources, bubbleWidth)
		}
	}

	block := label + "\n" + bubble

	// User messages sit on the right, everything else on the left.
	if msg.Sender == model.SenderUser && !msg.IsUpload {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(block)
	}
	return block
}

// renderSources renders the citation footer under an assistant answer.
func renderSources(th *styles.Theme, sources []string, width int) string {
	var sb strings.Builder
	sb.WriteString("Sources: ")
	sb.WriteString(strings.Join(sources, ", "))
	return th.SourceList.MaxWidth(width).Render(sb.String())
}

// RenderConversation renders all messages in a thread, separated by blank
// lines, ready for a viewport.
func RenderConversation(th *styles.Theme, msgs []model.Message, opts MessageOptions) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, RenderMessage(th, m, opts))
	}
	return strings.Join(parts, "\n\n")
}
