// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/subodhdevpatel/ai-chatbot/internal/notify"
	"github.com/subodhdevpatel/ai-chatbot/internal/ui/styles"
)

// =============================================================================
// TOAST NOTIFICATIONS
// =============================================================================

// RenderToast renders the active notification, or an empty string when
// there is none.
func RenderToast(th *styles.Theme, n *notify.Notification, width int) string {
	if n == nil {
		return ""
	}

	var prefix string
	var style = th.ToastInfo
	switch n.Level {
	case notify.LevelSuccess:
		prefix = "✓ "
		style = th.ToastSuccess
	case notify.LevelError:
		prefix = "✗ "
		style = th.ToastError
	default:
		prefix = "ℹ "
	}

	return style.MaxWidth(width).Render(prefix + n.Message)
}
