// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Configuration command handlers.
//
// Handles "ai-chatbot config" subcommands: show, set, path.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/subodhdevpatel/ai-chatbot/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(args)
	case "set":
		return configSet(args)
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	default:
		return fmt.Errorf("unknown config subcommand %q", args.Subcommand)
	}
}

func configShow(args Args) error {
	cfg := config.Global()

	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}

	fmt.Println(titleStyle.Render("Configuration"))
	printSetting("backend.base_url", cfg.Backend.BaseURL)
	printSetting("backend.timeout_seconds", strconv.Itoa(cfg.Backend.TimeoutSeconds))
	printSetting("storage.driver", cfg.Storage.Driver)
	printSetting("storage.dir", cfg.Storage.Dir)
	printSetting("storage.database_path", cfg.Storage.DatabasePath)
	printSetting("watch.enabled", strconv.FormatBool(cfg.Watch.Enabled))
	printSetting("watch.dir", cfg.Watch.Dir)
	printSetting("watch.uploads_per_minute", strconv.Itoa(cfg.Watch.UploadsPerMinute))
	printSetting("ui.show_sources", strconv.FormatBool(cfg.UI.ShowSources))
	printSetting("ui.markdown", strconv.FormatBool(cfg.UI.Markdown))
	return nil
}

func printSetting(key, value string) {
	fmt.Printf("  %s %s\n", labelStyle.Render(key+":"), valueStyle.Render(value))
}

func configSet(args Args) error {
	key := args.Parser.Positional(2)
	value := args.Parser.Positional(3)
	if key == "" || value == "" {
		return fmt.Errorf("usage: ai-chatbot config set KEY VALUE")
	}

	cfg := config.Global()
	if err := applySetting(cfg, key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	if !args.Quiet {
		fmt.Printf("%s = %s\n", labelStyle.Render(key), valueStyle.Render(value))
	}
	return nil
}

// applySetting maps a dotted key to its config field.
func applySetting(cfg *config.Config, key, value string) error {
	switch key {
	case "backend.base_url":
		cfg.Backend.BaseURL = value
	case "backend.timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("backend.timeout_seconds must be a positive integer")
		}
		cfg.Backend.TimeoutSeconds = n
	case "storage.driver":
		cfg.Storage.Driver = value
	case "storage.dir":
		cfg.Storage.Dir = value
	case "storage.database_path":
		cfg.Storage.DatabasePath = value
	case "watch.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("watch.enabled must be true or false")
		}
		cfg.Watch.Enabled = b
	case "watch.dir":
		cfg.Watch.Dir = value
	case "watch.uploads_per_minute":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("watch.uploads_per_minute must be a positive integer")
		}
		cfg.Watch.UploadsPerMinute = n
	case "ui.show_sources":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("ui.show_sources must be true or false")
		}
		cfg.UI.ShowSources = b
	case "ui.markdown":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("ui.markdown must be true or false")
		}
		cfg.UI.Markdown = b
	default:
		return fmt.Errorf("unknown configuration key %q", key)
	}
	return nil
}
