// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderAI     Sender = "ai"
	SenderSystem Sender = "system"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable label for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderAI:
		return "Assistant"
	case SenderSystem:
		return "System"
	default:
		return string(s)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single entry in a thread's log. Messages are immutable after
// creation; Sources is only populated on AI messages that cite documents, and
// IsUpload marks system notices about document uploads.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`

	// Citations for AI answers, in the order the backend returned them.
	Sources []string `json:"sources,omitempty"`

	// Marks a system notice about a document upload, rendered outside the
	// normal user/AI exchange.
	IsUpload bool `json:"is_upload,omitempty"`
}

// NewMessage creates a message with a generated ID and the current time.
func NewMessage(sender Sender, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a user message.
func NewUserMessage(text string) Message {
	return NewMessage(SenderUser, text)
}

// NewAIMessage creates an AI message with optional source citations.
func NewAIMessage(text string, sources []string) Message {
	msg := NewMessage(SenderAI, text)
	msg.Sources = sources
	return msg
}

// NewUploadMessage creates the system notice appended after a successful
// document upload.
func NewUploadMessage(filename string) Message {
	msg := NewMessage(SenderSystem, "Uploaded document: "+filename)
	msg.IsUpload = true
	return msg
}

// Preview returns a truncated single-line preview of the message text.
// Uses rune-based truncation to handle Unicode correctly.
func (m Message) Preview(maxLen int) string {
	runes := []rune(m.Text)
	if len(runes) <= maxLen {
		return m.Text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// HasSources reports whether the message carries citations.
func (m Message) HasSources() bool {
	return len(m.Sources) > 0
}
