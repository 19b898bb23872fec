// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme(t *testing.T) {
	th := NewTheme()
	if th == nil {
		t.Fatal("NewTheme returned nil")
	}
	// Every style must be usable immediately.
	if got := th.UserBubble.Render("hi"); got == "" {
		t.Error("UserBubble renders empty")
	}
	if got := th.ToastError.Render("boom"); got == "" {
		t.Error("ToastError renders empty")
	}
}

func TestSidebarWidth(t *testing.T) {
	th := NewTheme()

	tests := []struct {
		width int
		want  int
	}{
		{60, 0},   // collapsed on narrow terminals
		{79, 0},   // collapsed just under the threshold
		{80, 20},  // minimum sidebar
		{100, 25}, // quarter of the terminal
		{200, 32}, // capped
	}
	for _, tt := range tests {
		th.SetSize(tt.width, 40)
		if got := th.SidebarWidth(); got != tt.want {
			t.Errorf("SidebarWidth() at width %d = %d, want %d", tt.width, got, tt.want)
		}
	}
}
