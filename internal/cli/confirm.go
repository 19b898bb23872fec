// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// confirm.go - Unified confirmation handling for destructive commands.
//
// One pattern everywhere:
//  1. --confirm skips the prompt
//  2. JSON mode requires --confirm (no interactive prompts in JSON output)
//  3. A non-TTY stdin requires --confirm (cannot prompt)
//  4. Otherwise an interactive yes/no prompt is shown
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ConfirmationOptions configures RequireConfirmation.
type ConfirmationOptions struct {
	// ConfirmFlag indicates --confirm was passed.
	ConfirmFlag bool
	// JSONMode indicates --json was passed.
	JSONMode bool
}

// RequireConfirmation checks whether the user has confirmed a destructive
// action, prompting interactively when possible.
func RequireConfirmation(action string, opts ConfirmationOptions) (bool, error) {
	if opts.ConfirmFlag {
		return true, nil
	}
	if opts.JSONMode {
		return false, fmt.Errorf("%s requires --confirm in JSON mode", action)
	}
	if !IsTTY() {
		return false, fmt.Errorf("%s requires --confirm when stdin is not a terminal", action)
	}

	fmt.Fprintf(os.Stderr, "Really %s? [y/N] ", action)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
