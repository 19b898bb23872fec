// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - Shared construction helpers for CLI commands.
package cli

import (
	"fmt"

	"github.com/subodhdevpatel/ai-chatbot/internal/config"
	"github.com/subodhdevpatel/ai-chatbot/internal/gateway"
	"github.com/subodhdevpatel/ai-chatbot/internal/store"
)

// NewGatewayClient builds the backend client from configuration.
func NewGatewayClient(cfg *config.Config) *gateway.Client {
	return gateway.NewClientWithConfig(&gateway.ClientConfig{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Timeout(),
	})
}

// OpenStore opens the conversation store for the configured driver.
func OpenStore(cfg *config.Config) (*store.ConversationStore, error) {
	backend, err := NewStoreBackend(cfg)
	if err != nil {
		return nil, err
	}
	return store.Open(backend)
}

// NewStoreBackend builds the persistence backend for the configured driver.
func NewStoreBackend(cfg *config.Config) (store.Backend, error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		return store.NewSQLiteBackend(cfg.Storage.DatabasePath)
	case "file":
		return store.NewFileBackend(cfg.Storage.Dir)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
