// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"errors"
	"testing"
	"time"

	"github.com/subodhdevpatel/ai-chatbot/internal/model"
)

func newTestStore(t *testing.T) *ConversationStore {
	t.Helper()
	s, err := Open(NewMemoryBackend())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s
}

// brokenBackend starts working and fails every Save once broken is set,
// simulating a disk that filled up mid-session.
type brokenBackend struct {
	*MemoryBackend
	broken bool
}

func (b *brokenBackend) Save(key string, value []byte) error {
	if b.broken {
		return errors.New("disk full")
	}
	return b.MemoryBackend.Save(key, value)
}

// =============================================================================
// HYDRATION TESTS
// =============================================================================

func TestOpenEmptyBackendCreatesWelcomeThread(t *testing.T) {
	s := newTestStore(t)

	if s.Count() != 1 {
		t.Fatalf("Count = %d, want 1", s.Count())
	}

	active := s.ActiveThread()
	if active == nil {
		t.Fatal("Expected an active thread")
	}
	if len(active.Messages) != 1 {
		t.Fatalf("Messages = %d, want exactly the welcome message", len(active.Messages))
	}
	if active.Messages[0].Text != model.WelcomeText {
		t.Errorf("Seed message = %q", active.Messages[0].Text)
	}
}

func TestOpenCorruptHistoryFallsBackToFreshThread(t *testing.T) {
	backend := NewMemoryBackend()
	backend.Save(KeyChatHistory, []byte("{{{not json"))
	backend.Save(KeyCurrentChatID, []byte("whatever"))

	s, err := Open(backend)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if s.Count() != 1 {
		t.Errorf("Count = %d, want 1 fresh thread", s.Count())
	}
	if s.ActiveThread() == nil {
		t.Error("Expected an active thread after corrupt hydration")
	}
}

func TestOpenStaleActiveIDResumesMostRecent(t *testing.T) {
	backend := NewMemoryBackend()
	s, _ := Open(backend)
	first := s.ActiveID()
	s.AppendMessage(first, model.NewUserMessage("hello"))

	// Active id points at a thread that no longer exists
	backend.Save(KeyCurrentChatID, []byte("ghost-id"))

	s2, err := Open(backend)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if s2.ActiveID() != first {
		t.Errorf("ActiveID = %q, want most recent surviving thread %q", s2.ActiveID(), first)
	}
}

func TestRoundTripPersistence(t *testing.T) {
	backend := NewMemoryBackend()
	s, _ := Open(backend)

	id := s.ActiveID()
	s.AppendMessage(id, model.NewUserMessage("What is the capital of France?"))
	s.AppendMessage(id, model.NewAIMessage("Paris", []string{"doc1.pdf"}))

	// Reload from the same backend
	s2, err := Open(backend)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if s2.ActiveID() != id {
		t.Errorf("ActiveID = %q, want %q", s2.ActiveID(), id)
	}

	reloaded := s2.ActiveThread()
	if len(reloaded.Messages) != 3 {
		t.Fatalf("Messages = %d, want 3", len(reloaded.Messages))
	}
	for i, orig := range s.ActiveThread().Messages {
		got := reloaded.Messages[i]
		if got.ID != orig.ID || got.Text != orig.Text || got.Sender != orig.Sender {
			t.Errorf("Messages[%d] = %+v, want %+v", i, got, orig)
		}
	}
	if reloaded.Messages[2].Sources[0] != "doc1.pdf" {
		t.Errorf("Sources not round-tripped: %v", reloaded.Messages[2].Sources)
	}
}

// =============================================================================
// THREAD OPERATION TESTS
// =============================================================================

func TestNewThreadBecomesActive(t *testing.T) {
	s := newTestStore(t)
	first := s.ActiveID()

	th, err := s.NewThread()
	if err != nil {
		t.Fatalf("NewThread failed: %v", err)
	}
	if s.ActiveID() != th.ID {
		t.Errorf("ActiveID = %q, want new thread %q", s.ActiveID(), th.ID)
	}
	if th.ID == first {
		t.Error("New thread reused the previous id")
	}
	if len(th.Messages) != 1 || th.Messages[0].Text != model.WelcomeText {
		t.Error("New thread not seeded with exactly the welcome message")
	}
}

func TestAppendMessagePreservesCallOrder(t *testing.T) {
	s := newTestStore(t)
	id := s.ActiveID()

	texts := []string{"one", "two", "three", "four", "five"}
	for _, txt := range texts {
		if err := s.AppendMessage(id, model.NewUserMessage(txt)); err != nil {
			t.Fatalf("AppendMessage failed: %v", err)
		}
	}

	msgs := s.Thread(id).Messages
	if len(msgs) != len(texts)+1 {
		t.Fatalf("Messages = %d, want %d", len(msgs), len(texts)+1)
	}
	for i, txt := range texts {
		if msgs[i+1].Text != txt {
			t.Errorf("Messages[%d] = %q, want %q", i+1, msgs[i+1].Text, txt)
		}
	}
}

func TestAppendToUnknownThreadIsNoOp(t *testing.T) {
	s := newTestStore(t)
	before := len(s.ActiveThread().Messages)

	if err := s.AppendMessage("no-such-thread", model.NewUserMessage("lost")); err != nil {
		t.Fatalf("AppendMessage returned error: %v", err)
	}
	if len(s.ActiveThread().Messages) != before {
		t.Error("Appending to unknown thread mutated the active thread")
	}
}

func TestSelectThreadUnknownIsNoOp(t *testing.T) {
	s := newTestStore(t)
	active := s.ActiveID()
	msgCount := len(s.ActiveThread().Messages)

	ok, err := s.SelectThread("does-not-exist")
	if err != nil {
		t.Fatalf("SelectThread returned error: %v", err)
	}
	if ok {
		t.Error("SelectThread returned true for unknown id")
	}
	if s.ActiveID() != active {
		t.Errorf("ActiveID changed to %q", s.ActiveID())
	}
	if len(s.ActiveThread().Messages) != msgCount {
		t.Error("Active thread messages changed")
	}
}

func TestSelectThreadSwitches(t *testing.T) {
	s := newTestStore(t)
	first := s.ActiveID()
	s.NewThread()

	ok, err := s.SelectThread(first)
	if err != nil {
		t.Fatalf("SelectThread failed: %v", err)
	}
	if !ok {
		t.Fatal("SelectThread returned false for known id")
	}
	if s.ActiveID() != first {
		t.Errorf("ActiveID = %q, want %q", s.ActiveID(), first)
	}
}

func TestSelectThreadReportsPersistFailure(t *testing.T) {
	backend := &brokenBackend{MemoryBackend: NewMemoryBackend()}
	s, err := Open(backend)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := s.NewThread(); err != nil {
		t.Fatalf("NewThread failed: %v", err)
	}
	first := s.Threads()[1].ID

	backend.broken = true
	switched, err := s.SelectThread(first)
	if !switched {
		t.Error("SelectThread returned false for known id")
	}
	if err == nil {
		t.Error("SelectThread swallowed the persist failure")
	}
}

func TestAppendMessageReportsPersistFailure(t *testing.T) {
	backend := &brokenBackend{MemoryBackend: NewMemoryBackend()}
	s, err := Open(backend)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	backend.broken = true
	if err := s.AppendMessage(s.ActiveID(), model.NewUserMessage("hello")); err == nil {
		t.Error("AppendMessage swallowed the persist failure")
	}
}

func TestDeleteActiveThreadCreatesFreshOne(t *testing.T) {
	s := newTestStore(t)

	// t1 active, t2 exists as a potential survivor
	t2, _ := s.NewThread()
	t1, _ := s.NewThread()
	if s.ActiveID() != t1.ID {
		t.Fatalf("setup: active = %q", s.ActiveID())
	}

	if err := s.DeleteThread(t1.ID); err != nil {
		t.Fatalf("DeleteThread failed: %v", err)
	}

	// A new thread is created and activated; the survivor is NOT promoted.
	if s.ActiveID() == t1.ID {
		t.Error("Deleted thread still active")
	}
	if s.ActiveID() == t2.ID {
		t.Error("Survivor thread was promoted; expected a fresh thread")
	}
	active := s.ActiveThread()
	if active == nil {
		t.Fatal("No active thread after delete")
	}
	if len(active.Messages) != 1 || active.Messages[0].Text != model.WelcomeText {
		t.Error("Replacement thread is not a fresh welcome thread")
	}
}

func TestDeleteInactiveThreadKeepsActive(t *testing.T) {
	s := newTestStore(t)
	first := s.ActiveID()
	second, _ := s.NewThread()

	if _, err := s.SelectThread(first); err != nil {
		t.Fatalf("SelectThread failed: %v", err)
	}
	if err := s.DeleteThread(second.ID); err != nil {
		t.Fatalf("DeleteThread failed: %v", err)
	}

	if s.ActiveID() != first {
		t.Errorf("ActiveID = %q, want %q", s.ActiveID(), first)
	}
	if s.Count() != 1 {
		t.Errorf("Count = %d, want 1", s.Count())
	}
}

func TestDeleteUnknownThreadIsNoOp(t *testing.T) {
	s := newTestStore(t)
	if err := s.DeleteThread("ghost"); err != nil {
		t.Fatalf("DeleteThread returned error: %v", err)
	}
	if s.Count() != 1 {
		t.Errorf("Count = %d, want 1", s.Count())
	}
}

func TestThereIsAlwaysAnActiveThread(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		if err := s.DeleteThread(s.ActiveID()); err != nil {
			t.Fatalf("DeleteThread failed: %v", err)
		}
		if s.ActiveThread() == nil {
			t.Fatal("No active thread after delete")
		}
	}
}

// =============================================================================
// LISTING TESTS
// =============================================================================

func TestThreadsSortedByDescendingTimestamp(t *testing.T) {
	s := newTestStore(t)
	base := time.Now()

	// Force distinct, out-of-order timestamps
	a := s.ActiveThread()
	a.Timestamp = base.Add(5 * time.Second)
	b, _ := s.NewThread()
	b.Timestamp = base.Add(20 * time.Second)
	c, _ := s.NewThread()
	c.Timestamp = base.Add(10 * time.Second)

	metas := s.Threads()
	want := []string{b.ID, c.ID, a.ID}
	for i, id := range want {
		if metas[i].ID != id {
			t.Errorf("Threads()[%d].ID = %q, want %q", i, metas[i].ID, id)
		}
	}
}

// =============================================================================
// FILE BACKEND TESTS
// =============================================================================

func TestFileBackendRoundTrip(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBackend failed: %v", err)
	}

	if _, err := backend.Load("missing"); err != ErrKeyNotFound {
		t.Errorf("Load(missing) error = %v, want ErrKeyNotFound", err)
	}

	if err := backend.Save(KeyCurrentChatID, []byte("t1")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := backend.Load(KeyCurrentChatID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got) != "t1" {
		t.Errorf("Load = %q, want %q", got, "t1")
	}

	if err := backend.Delete(KeyCurrentChatID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := backend.Load(KeyCurrentChatID); err != ErrKeyNotFound {
		t.Errorf("Load after delete error = %v, want ErrKeyNotFound", err)
	}
	if err := backend.Delete("missing"); err != nil {
		t.Errorf("Delete(missing) = %v, want nil", err)
	}
}

func TestStoreWithFileBackendSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	backend, _ := NewFileBackend(dir)
	s, _ := Open(backend)
	id := s.ActiveID()
	s.AppendMessage(id, model.NewUserMessage("persisted?"))

	backend2, _ := NewFileBackend(dir)
	s2, err := Open(backend2)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if s2.ActiveID() != id {
		t.Errorf("ActiveID = %q, want %q", s2.ActiveID(), id)
	}
	if got := len(s2.ActiveThread().Messages); got != 2 {
		t.Errorf("Messages = %d, want 2", got)
	}
}
