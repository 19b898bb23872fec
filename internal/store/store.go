// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"encoding/json"
	"strings"

	"github.com/subodhdevpatel/ai-chatbot/internal/model"
)

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// ConversationStore holds every thread and the id of the active one, and
// persists both through the injected Backend on every mutation.
//
// The store is driven from a single goroutine (the TUI update loop or a CLI
// command), so it carries no lock; persistence is synchronous within that
// flow. Concurrent modification of the underlying storage by another process
// is unguarded; the last writer wins.
type ConversationStore struct {
	backend  Backend
	threads  map[string]*model.Thread
	activeID string
}

// Open hydrates a store from the backend. Absent or corrupt persisted data
// falls back to a single fresh welcome thread; hydration never fails on bad
// content, only on backend write errors for the initial thread.
func Open(backend Backend) (*ConversationStore, error) {
	s := &ConversationStore{
		backend: backend,
		threads: make(map[string]*model.Thread),
	}

	s.hydrate()

	if len(s.threads) == 0 || s.threads[s.activeID] == nil {
		if _, err := s.NewThread(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// hydrate loads the thread map and active id, tolerating absence and
// corruption. A decode failure discards the stored registry wholesale; a
// partially trusted registry would be worse than a clean start.
func (s *ConversationStore) hydrate() {
	data, err := s.backend.Load(KeyChatHistory)
	if err != nil {
		return
	}

	var threads map[string]*model.Thread
	if err := json.Unmarshal(data, &threads); err != nil {
		return
	}
	for id, th := range threads {
		if th == nil || th.ID == "" || th.ID != id {
			continue
		}
		s.threads[id] = th
	}

	if raw, err := s.backend.Load(KeyCurrentChatID); err == nil {
		id := strings.TrimSpace(string(raw))
		if _, ok := s.threads[id]; ok {
			s.activeID = id
		}
	}

	// A registry without a usable active id resumes on the most recent
	// thread rather than dropping history.
	if s.activeID == "" && len(s.threads) > 0 {
		metas := s.Threads()
		s.activeID = metas[0].ID
	}
}

// =============================================================================
// THREAD OPERATIONS
// =============================================================================

// NewThread creates a welcome-seeded thread, makes it active, and persists.
func (s *ConversationStore) NewThread() (*model.Thread, error) {
	th := model.NewThread(len(s.threads) + 1)
	s.threads[th.ID] = th
	s.activeID = th.ID
	return th, s.persist()
}

// SelectThread switches the active thread and persists the selection.
// Unknown ids are a no-op, reported by the bool.
func (s *ConversationStore) SelectThread(id string) (bool, error) {
	if _, ok := s.threads[id]; !ok {
		return false, nil
	}
	if s.activeID == id {
		return true, nil
	}
	s.activeID = id
	return true, s.persist()
}

// AppendMessage appends to a thread's log and persists the registry.
// Appending to an unknown thread is a no-op.
func (s *ConversationStore) AppendMessage(threadID string, msg model.Message) error {
	th, ok := s.threads[threadID]
	if !ok {
		return nil
	}
	th.Append(msg)
	return s.persist()
}

// DeleteThread removes a thread. Deleting the active thread immediately
// creates and activates a fresh welcome thread: an active thread always
// exists, and deletion of the active one never falls back to a survivor.
func (s *ConversationStore) DeleteThread(id string) error {
	if _, ok := s.threads[id]; !ok {
		return nil
	}
	delete(s.threads, id)

	if id == s.activeID {
		_, err := s.NewThread()
		return err
	}
	return s.persist()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// ActiveID returns the id of the active thread.
func (s *ConversationStore) ActiveID() string {
	return s.activeID
}

// ActiveThread returns the active thread. The store guarantees one exists.
func (s *ConversationStore) ActiveThread() *model.Thread {
	return s.threads[s.activeID]
}

// Thread returns a thread by id, or nil.
func (s *ConversationStore) Thread(id string) *model.Thread {
	return s.threads[id]
}

// Threads returns listing metadata for all threads, most recent first.
func (s *ConversationStore) Threads() []model.ThreadMeta {
	metas := make([]model.ThreadMeta, 0, len(s.threads))
	for _, th := range s.threads {
		metas = append(metas, th.Meta())
	}
	model.SortMetas(metas)
	return metas
}

// Count returns the number of threads.
func (s *ConversationStore) Count() int {
	return len(s.threads)
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// persist serializes the whole registry and the active id. Called on every
// mutation; the registry is small enough that wholesale writes beat the
// bookkeeping of incremental ones.
func (s *ConversationStore) persist() error {
	data, err := json.Marshal(s.threads)
	if err != nil {
		return err
	}
	if err := s.backend.Save(KeyChatHistory, data); err != nil {
		return err
	}
	return s.backend.Save(KeyCurrentChatID, []byte(s.activeID))
}
