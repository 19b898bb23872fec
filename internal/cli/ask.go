// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command handler.
//
// Handles "ai-chatbot ask" which sends one question to the backend and
// prints the answer with its source citations.
//
// Examples:
//   ai-chatbot ask "What is the capital of France?"
//   ai-chatbot ask --json "Summarize the quarterly report"
//   echo "question" | ai-chatbot ask
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/subodhdevpatel/ai-chatbot/internal/config"
	"github.com/subodhdevpatel/ai-chatbot/internal/gateway"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer renders answers on a TTY. Nil falls back to plain text.
var markdownRenderer *glamour.TermRenderer

func init() {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err == nil {
		markdownRenderer = r
	}
}

func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// =============================================================================
// ASK HANDLER
// =============================================================================

// askJSON is the --json output shape.
type askJSON struct {
	Response string   `json:"response"`
	Sources  []string `json:"sources,omitempty"`
}

// HandleAsk handles the "ask" command.
func HandleAsk(args Args) error {
	cfg := config.Global()
	question := args.Query

	// Piped input serves as the question when none was given.
	if question == "" && !IsTTY() {
		data, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err == nil {
			question = strings.TrimSpace(string(data))
		}
	}
	if question == "" {
		return fmt.Errorf("no question provided. Usage: ai-chatbot ask \"your question\"")
	}

	client := gateway.NewClientWithConfig(&gateway.ClientConfig{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Timeout(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	resp, err := client.SendMessage(ctx, question)
	if err != nil {
		if gateway.IsUnreachable(err) {
			return fmt.Errorf("backend is not reachable at %s", cfg.Backend.BaseURL)
		}
		return err
	}

	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(askJSON{Response: resp.Response, Sources: resp.Sources})
	}

	// Markdown only on a TTY so piped output stays clean.
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(resp.Response))
	} else {
		fmt.Println(resp.Response)
	}

	if len(resp.Sources) > 0 && !args.Quiet {
		fmt.Fprintln(os.Stderr, mutedStyle.Render("Sources: "+strings.Join(resp.Sources, ", ")))
	}

	return nil
}
