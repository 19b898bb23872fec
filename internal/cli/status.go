// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command handler.
//
// Reports backend reachability, document count, and storage details.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/subodhdevpatel/ai-chatbot/internal/config"
)

type statusReport struct {
	BackendURL    string `json:"backend_url"`
	BackendOnline bool   `json:"backend_online"`
	DocumentCount int    `json:"document_count"`
	StorageDriver string `json:"storage_driver"`
	StoragePath   string `json:"storage_path"`
	Version       string `json:"version"`
}

// HandleStatus handles the "status" command.
func HandleStatus(args Args) error {
	cfg := config.Global()
	client := NewGatewayClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	report := statusReport{
		BackendURL:    cfg.Backend.BaseURL,
		StorageDriver: cfg.Storage.Driver,
		StoragePath:   cfg.Storage.Dir,
		Version:       Version,
	}
	if cfg.Storage.Driver == "sqlite" {
		report.StoragePath = cfg.Storage.DatabasePath
	}

	if err := client.CheckRunning(ctx); err == nil {
		report.BackendOnline = true
		if docs, err := client.ListDocuments(ctx); err == nil {
			report.DocumentCount = len(docs)
		}
	}

	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Println(titleStyle.Render("AI Research Assistant"))
	printSetting("backend", report.BackendURL)
	if report.BackendOnline {
		printSetting("status", "online")
		printSetting("documents", strconv.Itoa(report.DocumentCount))
	} else {
		fmt.Printf("  %s %s\n", labelStyle.Render("status:"), errorStyle.Render("offline"))
	}
	printSetting("storage", report.StorageDriver+" ("+report.StoragePath+")")
	printSetting("version", report.Version)
	return nil
}
