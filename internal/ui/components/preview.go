// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/subodhdevpatel/ai-chatbot/internal/ui/styles"
)

// =============================================================================
// DOCUMENT PREVIEW
// =============================================================================

// RenderPreview renders document content for the preview overlay.
func RenderPreview(th *styles.Theme, filename, content string, width int) string {
	header := th.PreviewHeader.Width(width - 2).Render(filename)
	return header + "\n" + th.PreviewBox.Width(width-2).Render(RenderPreviewBody(filename, content))
}

// RenderPreviewBody formats document content without the surrounding
// chrome, for callers that scroll the body themselves. Markdown documents
// go through the markdown renderer; anything with a known lexer gets
// syntax highlighting; the rest is shown as plain text.
func RenderPreviewBody(filename, content string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md":
		return RenderMarkdown(content)
	default:
		if lexer := lexers.Match(filename); lexer != nil {
			return highlight(content, lexer)
		}
	}
	return content
}

// highlight applies terminal syntax highlighting via chroma.
func highlight(content string, lexer chroma.Lexer) string {
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return content
	}
	return buf.String()
}
