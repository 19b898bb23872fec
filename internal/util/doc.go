// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the chat client:
// atomic file persistence and string formatting utilities used by the
// store, config, and UI packages.
package util
