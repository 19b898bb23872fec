// ai-chatbot - terminal client for a document-grounded QA assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/subodhdevpatel/ai-chatbot/internal/cli"
	"github.com/subodhdevpatel/ai-chatbot/internal/config"
	"github.com/subodhdevpatel/ai-chatbot/internal/registry"
	"github.com/subodhdevpatel/ai-chatbot/internal/ui/chat"
	"github.com/subodhdevpatel/ai-chatbot/internal/watcher"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)

	if err := run(cmd, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd cli.Command, args cli.Args) error {
	switch cmd {
	case cli.CmdTUI:
		return runTUI()
	case cli.CmdAsk:
		return cli.HandleAsk(args)
	case cli.CmdChat:
		return cli.HandleChat(args)
	case cli.CmdDocs:
		return cli.HandleDocs(args)
	case cli.CmdSessions:
		return cli.HandleSessions(args)
	case cli.CmdConfig:
		return cli.HandleConfig(args)
	case cli.CmdStatus:
		return cli.HandleStatus(args)
	case cli.CmdVersion:
		cli.PrintVersion()
		return nil
	case cli.CmdHelp:
		cli.PrintUsage()
		return nil
	default:
		cli.PrintUsage()
		return nil
	}
}

// runTUI wires the stores and backend client together and runs the
// full-screen interface.
func runTUI() error {
	cfg := config.Global()

	client := cli.NewGatewayClient(cfg)

	st, err := cli.OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open conversation store: %w", err)
	}

	reg := registry.New(client)

	var inbox *watcher.FolderWatcher
	if cfg.Watch.Enabled {
		inbox, err = watcher.New(
			watcher.UploadFunc(func(ctx context.Context, filename string, r io.Reader) error {
				_, err := client.UploadDocument(ctx, filename, r)
				return err
			}),
			watcher.Options{
				Dir:              cfg.Watch.Dir,
				Extensions:       cfg.Watch.Extensions,
				UploadsPerMinute: cfg.Watch.UploadsPerMinute,
			},
		)
		if err != nil {
			return fmt.Errorf("failed to watch inbox folder: %w", err)
		}
		if err := inbox.Start(); err != nil {
			return fmt.Errorf("failed to watch inbox folder: %w", err)
		}
		defer inbox.Close()
	}

	m := chat.New(chat.Options{
		Client:   client,
		Store:    st,
		Registry: reg,
		Inbox:    inbox,
		Config:   cfg,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
