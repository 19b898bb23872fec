// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat threads and messages.
//
// A Thread is an append-only log of Messages with a stable identity and a
// last-touch timestamp used for sorting. Messages are immutable once created:
// the client never edits or reorders history, it only appends.
package model
