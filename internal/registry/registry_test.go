// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package registry

import (
	"context"
	"errors"
	"testing"
)

type fakeLister struct {
	docs []string
	err  error
}

func (f *fakeLister) ListDocuments(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

func TestRefreshReplacesWholesale(t *testing.T) {
	lister := &fakeLister{docs: []string{"a.pdf", "b.txt"}}
	reg := New(lister)

	reg.Refresh(context.Background())
	if reg.Count() != 2 || !reg.Contains("a.pdf") {
		t.Errorf("Documents = %v", reg.Documents())
	}

	// Backend order is preserved, old entries are gone
	lister.docs = []string{"c.md"}
	docs := reg.Refresh(context.Background())
	if len(docs) != 1 || docs[0] != "c.md" {
		t.Errorf("Documents after refresh = %v", docs)
	}
	if reg.Contains("a.pdf") {
		t.Error("Stale entry survived a refresh")
	}
}

func TestRefreshFailureLeavesEmptyList(t *testing.T) {
	lister := &fakeLister{docs: []string{"a.pdf"}}
	reg := New(lister)
	reg.Refresh(context.Background())

	lister.err = errors.New("network down")
	docs := reg.Refresh(context.Background())

	if docs == nil {
		t.Fatal("Expected empty slice, got nil")
	}
	if len(docs) != 0 {
		t.Errorf("Documents = %v, want empty", docs)
	}
}

// Refresh runs on command goroutines while the update loop reads the
// cache; the race detector flags any unguarded access here.
func TestConcurrentRefreshAndRead(t *testing.T) {
	lister := &fakeLister{docs: []string{"a.pdf", "b.txt"}}
	reg := New(lister)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			reg.Refresh(context.Background())
		}
	}()

	for i := 0; i < 200; i++ {
		reg.Count()
		reg.Documents()
		reg.Contains("a.pdf")
	}
	<-done

	if reg.Count() != 2 {
		t.Errorf("Count = %d, want 2", reg.Count())
	}
}

func TestDocumentsReturnsCopy(t *testing.T) {
	reg := New(&fakeLister{docs: []string{"a.pdf"}})
	reg.Refresh(context.Background())

	docs := reg.Documents()
	docs[0] = "mutated"
	if !reg.Contains("a.pdf") {
		t.Error("Caller mutation leaked into the cache")
	}
}
