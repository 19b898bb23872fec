// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/subodhdevpatel/ai-chatbot/internal/util"
)

// Persistence keys. These names are part of the on-disk contract and must
// not change between releases.
const (
	KeyChatHistory   = "chat_history"
	KeyCurrentChatID = "current_chat_id"
)

// ErrKeyNotFound is returned by Backend.Load when a key has never been saved.
var ErrKeyNotFound = errors.New("key not found")

// Backend is the key-value persistence port the store writes through.
// Implementations must make Save durable before returning.
type Backend interface {
	// Load returns the value for key, or ErrKeyNotFound.
	Load(key string) ([]byte, error)

	// Save durably writes the value for key, replacing any previous value.
	Save(key string, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error
}

// =============================================================================
// FILE BACKEND
// =============================================================================

// FileBackend stores each key as a file in a base directory, written
// atomically with fsync so a crash never leaves a truncated registry.
type FileBackend struct {
	// BaseDir is the directory holding one file per key.
	BaseDir string
}

// NewFileBackend creates a file backend rooted at baseDir, creating the
// directory if needed.
func NewFileBackend(baseDir string) (*FileBackend, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &FileBackend{BaseDir: baseDir}, nil
}

// Load implements Backend.
func (b *FileBackend) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(b.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return data, nil
}

// Save implements Backend.
func (b *FileBackend) Save(key string, value []byte) error {
	return util.AtomicWriteFile(b.path(key), value, 0644)
}

// Delete implements Backend.
func (b *FileBackend) Delete(key string) error {
	err := os.Remove(b.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// path maps a key to its file. Keys are fixed identifiers, not user input,
// but path separators are stripped anyway so a bad key cannot escape BaseDir.
func (b *FileBackend) path(key string) string {
	key = strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(b.BaseDir, key+".json")
}

// =============================================================================
// MEMORY BACKEND
// =============================================================================

// MemoryBackend is an in-memory Backend for tests.
type MemoryBackend struct {
	values map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

// Load implements Backend.
func (b *MemoryBackend) Load(key string) ([]byte, error) {
	value, ok := b.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Save implements Backend.
func (b *MemoryBackend) Save(key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	b.values[key] = stored
	return nil
}

// Delete implements Backend.
func (b *MemoryBackend) Delete(key string) error {
	delete(b.values, key)
	return nil
}
