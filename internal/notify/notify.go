// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notify manages the transient status notification shown above the
// message list: "Uploading report.pdf...", "report.pdf uploaded
// successfully.", "Failed to upload report.pdf".
//
// One notification is visible at a time; setting a new one replaces the
// old. Success and error notices self-clear after a fixed delay, info
// notices (an upload in progress) persist until replaced. Expiry is
// sequence-guarded so a stale timer can never clear a newer notification.
package notify

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// AutoClearDelay is how long success and error notices stay visible.
const AutoClearDelay = 3 * time.Second

// =============================================================================
// NOTIFICATION TYPE
// =============================================================================

// Level classifies a notification for rendering.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Notification is a single transient status message.
type Notification struct {
	Level   Level
	Message string
	Seq     int
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager tracks the currently visible notification.
// Driven from the single TUI update goroutine; no locking.
type Manager struct {
	current *Notification
	seq     int
}

// NewManager creates a manager with no visible notification.
func NewManager() *Manager {
	return &Manager{}
}

// Info shows a persistent informational notice (no auto-clear).
func (m *Manager) Info(message string) *Notification {
	return m.set(LevelInfo, message)
}

// Success shows a success notice that should be expired after AutoClearDelay.
func (m *Manager) Success(message string) *Notification {
	return m.set(LevelSuccess, message)
}

// Error shows an error notice that should be expired after AutoClearDelay.
func (m *Manager) Error(message string) *Notification {
	return m.set(LevelError, message)
}

func (m *Manager) set(level Level, message string) *Notification {
	m.seq++
	m.current = &Notification{Level: level, Message: message, Seq: m.seq}
	return m.current
}

// Active returns the visible notification, or nil.
func (m *Manager) Active() *Notification {
	return m.current
}

// Clear dismisses the visible notification unconditionally.
func (m *Manager) Clear() {
	m.current = nil
}

// Expire dismisses the notification with the given sequence number. A seq
// that no longer matches is a stale timer and is ignored.
func (m *Manager) Expire(seq int) bool {
	if m.current == nil || m.current.Seq != seq {
		return false
	}
	m.current = nil
	return true
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// ExpiredMsg fires when a notification's display time is up.
type ExpiredMsg struct {
	Seq int
}

// ExpireCmd schedules expiry of the given notification after AutoClearDelay.
func ExpireCmd(n *Notification) tea.Cmd {
	seq := n.Seq
	return tea.Tick(AutoClearDelay, func(time.Time) tea.Msg {
		return ExpiredMsg{Seq: seq}
	})
}
