// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/subodhdevpatel/ai-chatbot/internal/gateway"
	"github.com/subodhdevpatel/ai-chatbot/internal/registry"
	"github.com/subodhdevpatel/ai-chatbot/internal/watcher"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// CheckBackendCmd creates a command that checks backend health.
func CheckBackendCmd(client *gateway.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := client.CheckRunning(ctx)
		return BackendStatusMsg{
			Running: err == nil,
			Error:   err,
		}
	}
}

// AskCmd creates a command that sends a question to the backend. The
// answer is tagged with the thread it was asked in so it lands in the
// right conversation even if the user has switched threads meanwhile.
func AskCmd(client *gateway.Client, threadID, question string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := client.SendMessage(ctx, question)
		if err != nil {
			return AnswerMsg{ThreadID: threadID, Error: err}
		}
		return AnswerMsg{
			ThreadID: threadID,
			Response: resp.Response,
			Sources:  resp.Sources,
		}
	}
}

// RefreshDocumentsCmd creates a command that refreshes the document
// registry. Failures degrade to an empty list inside the registry, so
// this command never reports an error.
func RefreshDocumentsCmd(reg *registry.DocumentRegistry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return DocumentsMsg{Documents: reg.Refresh(ctx)}
	}
}

// UploadDocumentCmd creates a command that uploads a local file.
func UploadDocumentCmd(client *gateway.Client, path string, timeout time.Duration) tea.Cmd {
	name := filepath.Base(path)
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return UploadResultMsg{Filename: name, Error: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		_, err = client.UploadDocument(ctx, name, f)
		return UploadResultMsg{Filename: name, Error: err}
	}
}

// DeleteDocumentCmd creates a command that deletes a document from the
// backend's knowledge base.
func DeleteDocumentCmd(client *gateway.Client, filename string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		_, err := client.DeleteDocument(ctx, filename)
		return DeleteDocumentResultMsg{Filename: filename, Error: err}
	}
}

// PreviewDocumentCmd creates a command that fetches document content for
// the preview overlay.
func PreviewDocumentCmd(client *gateway.Client, filename string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		content, err := client.DocumentContent(ctx, filename)
		if err != nil {
			return PreviewMsg{Filename: filename, Error: err}
		}
		return PreviewMsg{Filename: filename, Content: string(content)}
	}
}

// WaitForWatcherCmd creates a command that blocks on the next inbox
// auto-upload result. Re-issue it after each message to keep draining.
func WaitForWatcherCmd(fw *watcher.FolderWatcher) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-fw.Results()
		if !ok {
			return WatcherClosedMsg{}
		}
		return WatcherUploadMsg{Filename: r.Filename, Error: r.Err}
	}
}

// ScrollToBottomCmd requests a jump to the latest message.
func ScrollToBottomCmd() tea.Cmd {
	return func() tea.Msg {
		return ScrollToBottomMsg{}
	}
}
