// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package notify

import "testing"

func TestSetAndActive(t *testing.T) {
	m := NewManager()
	if m.Active() != nil {
		t.Error("Expected no notification initially")
	}

	n := m.Success("report.pdf uploaded successfully.")
	active := m.Active()
	if active == nil || active.Message != n.Message {
		t.Fatalf("Active = %+v", active)
	}
	if active.Level != LevelSuccess {
		t.Errorf("Level = %v, want success", active.Level)
	}
}

func TestNewNotificationReplacesOld(t *testing.T) {
	m := NewManager()
	m.Info("Uploading a.pdf...")
	m.Error("Failed to upload a.pdf")

	active := m.Active()
	if active.Level != LevelError {
		t.Errorf("Level = %v, want error", active.Level)
	}
}

func TestExpireIgnoresStaleSeq(t *testing.T) {
	m := NewManager()
	old := m.Info("Uploading a.pdf...")
	fresh := m.Success("a.pdf uploaded successfully.")

	// Timer for the replaced notification fires late
	if m.Expire(old.Seq) {
		t.Error("Stale expiry cleared a newer notification")
	}
	if m.Active() == nil {
		t.Fatal("Newer notification was cleared")
	}

	if !m.Expire(fresh.Seq) {
		t.Error("Matching expiry did not clear")
	}
	if m.Active() != nil {
		t.Error("Notification still visible after expiry")
	}
}

func TestClear(t *testing.T) {
	m := NewManager()
	m.Error("boom")
	m.Clear()
	if m.Active() != nil {
		t.Error("Expected no notification after Clear")
	}
}
