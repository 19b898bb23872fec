// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines all Bubble Tea message types used by the chat
// interface. Messages are organized into the following categories:
//   - Backend: health checks and answer delivery
//   - Documents: list refresh, upload, delete, and preview results
//   - Watcher: inbox auto-upload outcomes
//   - UI State: scroll requests
//
// All message types follow Bubble Tea conventions and are immutable.
package chat

// =============================================================================
// BACKEND MESSAGES
// =============================================================================

// BackendStatusMsg reports backend connection status.
type BackendStatusMsg struct {
	Running bool
	Error   error
}

// AnswerMsg delivers the backend's answer to a question. ThreadID names
// the conversation the question was asked in, which may no longer be the
// active one by the time the answer arrives.
type AnswerMsg struct {
	ThreadID string
	Response string
	Sources  []string
	Error    error
}

// =============================================================================
// DOCUMENT MESSAGES
// =============================================================================

// DocumentsMsg delivers the refreshed document list.
type DocumentsMsg struct {
	Documents []string
}

// UploadResultMsg reports the outcome of a document upload.
type UploadResultMsg struct {
	Filename string
	Error    error
}

// DeleteDocumentResultMsg reports the outcome of a document delete.
type DeleteDocumentResultMsg struct {
	Filename string
	Error    error
}

// PreviewMsg delivers document content for the preview overlay.
type PreviewMsg struct {
	Filename string
	Content  string
	Error    error
}

// =============================================================================
// WATCHER MESSAGES
// =============================================================================

// WatcherUploadMsg reports an inbox auto-upload outcome.
type WatcherUploadMsg struct {
	Filename string
	Error    error
}

// WatcherClosedMsg signals that the inbox watcher has shut down.
type WatcherClosedMsg struct{}

// =============================================================================
// UI STATE MESSAGES
// =============================================================================

// ScrollToBottomMsg requests that the viewport jump to the latest message.
type ScrollToBottomMsg struct{}
