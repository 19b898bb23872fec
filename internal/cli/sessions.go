// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// sessions.go - Saved conversation command handlers.
//
// Handles "ai-chatbot sessions" subcommands: list, show, delete, export.
// Sessions are the same conversations the TUI uses.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/subodhdevpatel/ai-chatbot/internal/config"
	"github.com/subodhdevpatel/ai-chatbot/internal/model"
)

// HandleSessions handles the "sessions" command.
func HandleSessions(args Args) error {
	cfg := config.Global()
	st, err := OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open conversation store: %w", err)
	}

	switch args.Subcommand {
	case "", "list":
		metas := st.Threads()
		model.SortMetas(metas)

		if args.JSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(metas)
		}

		active := st.ActiveID()
		for _, meta := range metas {
			marker := "  "
			if meta.ID == active {
				marker = "* "
			}
			fmt.Printf("%s%s  %s\n", marker, meta.ID, meta.Title)
		}
		return nil

	case "show":
		id := args.Parser.Positional(2)
		th := st.Thread(id)
		if th == nil {
			return fmt.Errorf("no conversation with id %q", id)
		}
		printTranscript(th)
		return nil

	case "delete":
		id := args.Parser.Positional(2)
		if st.Thread(id) == nil {
			return fmt.Errorf("no conversation with id %q", id)
		}
		ok, err := RequireConfirmation("delete conversation "+id, ConfirmationOptions{
			ConfirmFlag: args.Parser.BoolFlag("confirm"),
			JSONMode:    args.JSON,
		})
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := st.DeleteThread(id); err != nil {
			return err
		}
		if !args.Quiet {
			fmt.Println(valueStyle.Render("Conversation deleted."))
		}
		return nil

	case "export":
		id := args.Parser.Positional(2)
		th := st.Thread(id)
		if th == nil {
			return fmt.Errorf("no conversation with id %q", id)
		}
		return exportTranscript(th, args.Parser.FlagOrDefault("format", "txt"))

	default:
		return fmt.Errorf("unknown sessions subcommand %q", args.Subcommand)
	}
}

// printTranscript prints a conversation in plain text.
func printTranscript(th *model.Thread) {
	fmt.Println(titleStyle.Render(th.Title))
	for _, msg := range th.Messages {
		fmt.Printf("[%s] %s: %s\n",
			msg.Timestamp.Format("2006-01-02 15:04"),
			msg.Sender.DisplayName(),
			msg.Text)
		if msg.HasSources() {
			fmt.Println(mutedStyle.Render("  Sources: " + strings.Join(msg.Sources, ", ")))
		}
	}
}

// exportTranscript writes a conversation to stdout in the given format.
func exportTranscript(th *model.Thread, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(th)

	case "md":
		fmt.Printf("# %s\n\n", th.Title)
		for _, msg := range th.Messages {
			fmt.Printf("**%s** (%s):\n\n%s\n\n",
				msg.Sender.DisplayName(),
				msg.Timestamp.Format("2006-01-02 15:04"),
				msg.Text)
			if msg.HasSources() {
				fmt.Printf("_Sources: %s_\n\n", strings.Join(msg.Sources, ", "))
			}
		}
		return nil

	case "txt":
		for _, msg := range th.Messages {
			fmt.Printf("%s: %s\n", msg.Sender.DisplayName(), msg.Text)
		}
		return nil

	default:
		return fmt.Errorf("unknown export format %q (json, md, txt)", format)
	}
}
