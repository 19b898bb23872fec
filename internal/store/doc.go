// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides durable multi-thread conversation persistence.
//
// The whole registry lives under two keys in a key-value Backend:
//
//	chat_history     id -> thread record, as one JSON document
//	current_chat_id  the active thread id, as plain text
//
// Every mutating operation rewrites both keys synchronously, so a reload
// resumes exactly where the user left off. Absent or corrupt data is never
// fatal: hydration falls back to a single fresh welcome thread.
//
// Two Backend implementations are provided: JSON files written atomically
// (the default) and a SQLite key-value table for installs that prefer a
// single database file. The Backend is injected, which keeps the store
// testable with in-memory doubles.
package store
