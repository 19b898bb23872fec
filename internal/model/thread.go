// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// WelcomeText seeds every new thread so the assistant introduces itself
// before the first question.
const WelcomeText = "Hello! I'm your AI assistant. I can help you answer questions based on your documents. How can I help you today?"

// =============================================================================
// THREAD TYPE
// =============================================================================

// Thread is a named conversation holding an ordered, append-only message log.
type Thread struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
	Messages  []Message `json:"messages"`
}

// NewThread creates a thread seeded with the welcome message. The title is a
// placeholder until the first user message arrives; seq is the display number
// used for the placeholder ("Chat 3").
func NewThread(seq int) *Thread {
	t := &Thread{
		ID:        uuid.NewString(),
		Title:     "Chat " + strconv.Itoa(seq),
		Timestamp: time.Now(),
	}
	t.Messages = append(t.Messages, NewMessage(SenderAI, WelcomeText))
	return t
}

// Append adds a message to the end of the log and touches the thread
// timestamp. Messages are never reordered or mutated after this point.
func (t *Thread) Append(msg Message) {
	t.Messages = append(t.Messages, msg)
	t.Timestamp = time.Now()
	t.updateTitle()
}

// LastMessage returns the most recent message, or a zero Message if empty.
func (t *Thread) LastMessage() (Message, bool) {
	if len(t.Messages) == 0 {
		return Message{}, false
	}
	return t.Messages[len(t.Messages)-1], true
}

// MessageCount returns the number of messages in the log.
func (t *Thread) MessageCount() int {
	return len(t.Messages)
}

// updateTitle replaces the placeholder title with a preview of the first
// user message, once one exists.
func (t *Thread) updateTitle() {
	for _, msg := range t.Messages {
		if msg.Sender == SenderUser {
			t.Title = msg.Preview(40)
			return
		}
	}
}

// SetTitle sets the thread title explicitly.
func (t *Thread) SetTitle(title string) {
	t.Title = title
	t.Timestamp = time.Now()
}

// Clone returns a deep copy of the thread.
func (t *Thread) Clone() *Thread {
	clone := &Thread{
		ID:        t.ID,
		Title:     t.Title,
		Timestamp: t.Timestamp,
		Messages:  make([]Message, len(t.Messages)),
	}
	copy(clone.Messages, t.Messages)
	for i, msg := range t.Messages {
		if msg.Sources != nil {
			clone.Messages[i].Sources = append([]string(nil), msg.Sources...)
		}
	}
	return clone
}

// =============================================================================
// THREAD METADATA
// =============================================================================

// ThreadMeta is lightweight thread metadata for sidebar and CLI listings.
type ThreadMeta struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Timestamp    time.Time `json:"timestamp"`
	MessageCount int       `json:"message_count"`
}

// Meta returns the thread's listing metadata.
func (t *Thread) Meta() ThreadMeta {
	return ThreadMeta{
		ID:           t.ID,
		Title:        t.Title,
		Timestamp:    t.Timestamp,
		MessageCount: len(t.Messages),
	}
}

// SortMetas orders thread metadata by descending last-touch timestamp
// (most recent first). The sort is stable, so ties keep insertion order.
func SortMetas(metas []ThreadMeta) {
	sort.SliceStable(metas, func(i, j int) bool {
		return metas[i].Timestamp.After(metas[j].Timestamp)
	})
}
