// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package registry caches the backend's document list.
//
// Document existence is entirely backend-owned; this is a projection,
// replaced wholesale on every refresh rather than diffed. Callers refresh
// after any successful upload or delete and at startup. A failed refresh
// leaves an empty list: the gateway already degrades listing failures, and
// a stale document sidebar must never block chat.
package registry

import (
	"context"
	"sync"
)

// Lister is the slice of the gateway the registry needs.
type Lister interface {
	ListDocuments(ctx context.Context) ([]string, error)
}

// DocumentRegistry is the cached view of backend document names.
// Refresh runs on command goroutines while the update loop reads the
// cache, so access to docs is mutex-guarded.
type DocumentRegistry struct {
	lister Lister

	mu   sync.Mutex
	docs []string
}

// New creates an empty registry backed by the given lister.
func New(lister Lister) *DocumentRegistry {
	return &DocumentRegistry{
		lister: lister,
		docs:   []string{},
	}
}

// Refresh replaces the cache with the backend's current list. No dedup and
// no reordering: the backend's order is the display order.
func (r *DocumentRegistry) Refresh(ctx context.Context) []string {
	docs, err := r.lister.ListDocuments(ctx)
	if err != nil || docs == nil {
		docs = []string{}
	}

	r.mu.Lock()
	r.docs = docs
	r.mu.Unlock()

	return r.Documents()
}

// Documents returns a copy of the cached list.
func (r *DocumentRegistry) Documents() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.docs))
	copy(out, r.docs)
	return out
}

// Contains reports whether a filename is in the cached list.
func (r *DocumentRegistry) Contains(filename string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, doc := range r.docs {
		if doc == filename {
			return true
		}
	}
	return false
}

// Count returns the number of cached documents.
func (r *DocumentRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}
