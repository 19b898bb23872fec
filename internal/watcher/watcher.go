// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watcher uploads new documents dropped into a local inbox
// directory. Files matching the configured extensions are sent to the
// backend after a debounce window, rate limited so a bulk copy into the
// inbox does not flood the server.
package watcher

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// =============================================================================
// UPLOADER INTERFACE
// =============================================================================

// Uploader sends a document to the backend.
type Uploader interface {
	UploadDocument(ctx context.Context, filename string, r io.Reader) error
}

// UploadFunc adapts a function to the Uploader interface.
type UploadFunc func(ctx context.Context, filename string, r io.Reader) error

// UploadDocument implements Uploader.
func (f UploadFunc) UploadDocument(ctx context.Context, filename string, r io.Reader) error {
	return f(ctx, filename, r)
}

// =============================================================================
// RESULTS
// =============================================================================

// Result reports the outcome of one watcher-triggered upload.
type Result struct {
	Filename string
	Err      error
}

// =============================================================================
// FOLDER WATCHER
// =============================================================================

// Options configures a FolderWatcher.
type Options struct {
	// Dir is the inbox directory. It is created if missing.
	Dir string

	// Extensions lists uploadable extensions (with dot, lowercase).
	Extensions []string

	// Debounce is how long a file must be quiet before upload.
	// Defaults to 500ms.
	Debounce time.Duration

	// UploadsPerMinute rate-limits uploads. Defaults to 12.
	UploadsPerMinute int
}

// FolderWatcher watches an inbox directory and uploads new documents.
type FolderWatcher struct {
	uploader Uploader
	opts     Options
	watcher  *fsnotify.Watcher
	limiter  *rate.Limiter
	results  chan Result

	mu      sync.Mutex
	pending map[string]time.Time

	ctx    context.Context
	cancel context.CancelFunc
	done   sync.WaitGroup
}

// New creates a folder watcher. Call Start to begin watching.
func New(uploader Uploader, opts Options) (*FolderWatcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	if opts.UploadsPerMinute <= 0 {
		opts.UploadsPerMinute = 12
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".txt", ".pdf", ".md"}
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	fw := &FolderWatcher{
		uploader: uploader,
		opts:     opts,
		watcher:  w,
		limiter:  rate.NewLimiter(rate.Limit(float64(opts.UploadsPerMinute)/60.0), 1),
		results:  make(chan Result, 16),
		pending:  make(map[string]time.Time),
		ctx:      ctx,
		cancel:   cancel,
	}
	return fw, nil
}

// Results delivers each upload outcome exactly once.
func (fw *FolderWatcher) Results() <-chan Result {
	return fw.results
}

// Start begins watching the inbox directory.
func (fw *FolderWatcher) Start() error {
	if err := fw.watcher.Add(fw.opts.Dir); err != nil {
		return err
	}

	fw.done.Add(2)
	go fw.processEvents()
	go fw.processPending()

	return nil
}

// Close stops watching and releases resources.
func (fw *FolderWatcher) Close() error {
	fw.cancel()
	err := fw.watcher.Close()
	fw.done.Wait()
	close(fw.results)
	return err
}

// wanted reports whether a path has an uploadable extension.
func (fw *FolderWatcher) wanted(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range fw.opts.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// processEvents drains fsnotify events into the pending set.
func (fw *FolderWatcher) processEvents() {
	defer fw.done.Done()

	for {
		select {
		case <-fw.ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !fw.wanted(event.Name) {
				continue
			}
			if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
				continue
			}

			fw.mu.Lock()
			fw.pending[event.Name] = time.Now()
			fw.mu.Unlock()

		case _, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Non-fatal, keep watching.
		}
	}
}

// processPending uploads files once they have been quiet for the debounce
// window. A file still being copied keeps refreshing its pending time, so
// only settled files are sent.
func (fw *FolderWatcher) processPending() {
	defer fw.done.Done()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-fw.ctx.Done():
			return

		case <-ticker.C:
			now := time.Now()

			fw.mu.Lock()
			var ready []string
			for path, changed := range fw.pending {
				if now.Sub(changed) >= fw.opts.Debounce {
					ready = append(ready, path)
					delete(fw.pending, path)
				}
			}
			fw.mu.Unlock()

			for _, path := range ready {
				fw.upload(path)
			}
		}
	}
}

// upload sends one settled file to the backend.
func (fw *FolderWatcher) upload(path string) {
	if err := fw.limiter.Wait(fw.ctx); err != nil {
		return
	}

	name := filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		fw.report(Result{Filename: name, Err: err})
		return
	}
	defer f.Close()

	err = fw.uploader.UploadDocument(fw.ctx, name, f)
	fw.report(Result{Filename: name, Err: err})
}

// report delivers a result without blocking shutdown.
func (fw *FolderWatcher) report(r Result) {
	select {
	case fw.results <- r:
	case <-fw.ctx.Done():
	}
}
