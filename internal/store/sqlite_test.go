// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"path/filepath"
	"testing"

	"github.com/subodhdevpatel/ai-chatbot/internal/model"
)

func TestSQLiteBackendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.db")
	backend, err := NewSQLiteBackend(path)
	if err != nil {
		t.Fatalf("NewSQLiteBackend failed: %v", err)
	}
	defer backend.Close()

	if _, err := backend.Load("missing"); err != ErrKeyNotFound {
		t.Errorf("Load(missing) error = %v, want ErrKeyNotFound", err)
	}

	if err := backend.Save(KeyChatHistory, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Upsert replaces
	if err := backend.Save(KeyChatHistory, []byte(`{"a":2}`)); err != nil {
		t.Fatalf("Save (upsert) failed: %v", err)
	}

	got, err := backend.Load(KeyChatHistory)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got) != `{"a":2}` {
		t.Errorf("Load = %s, want updated value", got)
	}

	if err := backend.Delete(KeyChatHistory); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := backend.Load(KeyChatHistory); err != ErrKeyNotFound {
		t.Errorf("Load after delete error = %v, want ErrKeyNotFound", err)
	}
}

func TestStoreWithSQLiteBackendSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.db")

	backend, err := NewSQLiteBackend(path)
	if err != nil {
		t.Fatalf("NewSQLiteBackend failed: %v", err)
	}
	s, err := Open(backend)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	id := s.ActiveID()
	s.AppendMessage(id, model.NewUserMessage("durable?"))
	backend.Close()

	backend2, err := NewSQLiteBackend(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer backend2.Close()

	s2, err := Open(backend2)
	if err != nil {
		t.Fatalf("Open after reopen failed: %v", err)
	}
	if s2.ActiveID() != id {
		t.Errorf("ActiveID = %q, want %q", s2.ActiveID(), id)
	}
	if got := len(s2.ActiveThread().Messages); got != 2 {
		t.Errorf("Messages = %d, want 2", got)
	}
}
