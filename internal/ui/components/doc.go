// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the chat TUI.
//
// Each component is a pure render function or a small stateful widget in
// the Bubble Tea style: it takes the theme and its data, and returns a
// styled string. Components never talk to the backend; the chat model
// owns all state transitions and passes data down.
//
// Components:
//   - Message bubbles with markdown rendering and source citations
//   - Conversation sidebar with selection highlight
//   - Toast notifications (info, success, error)
//   - Confirmation overlay for destructive actions
//   - Document preview with syntax highlighting
package components
