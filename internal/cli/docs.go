// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// docs.go - Document knowledge base command handlers.
//
// Handles "ai-chatbot docs" subcommands: list, upload, delete, show.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/subodhdevpatel/ai-chatbot/internal/config"
)

// HandleDocs handles the "docs" command.
func HandleDocs(args Args) error {
	cfg := config.Global()
	client := NewGatewayClient(cfg)

	switch args.Subcommand {
	case "", "list":
		return docsList(args, cfg)

	case "upload":
		path := args.Parser.Positional(2)
		if path == "" {
			return fmt.Errorf("usage: ai-chatbot docs upload FILE")
		}
		return docsUpload(cfg, path, args)

	case "delete":
		name := args.Parser.Positional(2)
		if name == "" {
			return fmt.Errorf("usage: ai-chatbot docs delete NAME")
		}
		ok, err := RequireConfirmation("delete "+name, ConfirmationOptions{
			ConfirmFlag: args.Parser.BoolFlag("confirm"),
			JSONMode:    args.JSON,
		})
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
		defer cancel()
		if _, err := client.DeleteDocument(ctx, name); err != nil {
			return fmt.Errorf("failed to delete %s: %w", name, err)
		}
		if !args.Quiet {
			fmt.Println(valueStyle.Render(name + " deleted."))
		}
		return nil

	case "show":
		name := args.Parser.Positional(2)
		if name == "" {
			return fmt.Errorf("usage: ai-chatbot docs show NAME")
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
		defer cancel()
		content, err := client.DocumentContent(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
		os.Stdout.Write(content)
		return nil

	default:
		return fmt.Errorf("unknown docs subcommand %q", args.Subcommand)
	}
}

func docsList(args Args, cfg *config.Config) error {
	client := NewGatewayClient(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	docs, _ := client.ListDocuments(ctx)

	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(docs)
	}

	if len(docs) == 0 {
		fmt.Println(mutedStyle.Render("No documents uploaded yet."))
		return nil
	}
	for _, d := range docs {
		fmt.Println(d)
	}
	return nil
}

func docsUpload(cfg *config.Config, path string, args Args) error {
	client := NewGatewayClient(cfg)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	name := filepath.Base(path)
	if _, err := client.UploadDocument(ctx, name, f); err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	if !args.Quiet {
		fmt.Println(valueStyle.Render(name + " uploaded successfully."))
	}
	return nil
}
