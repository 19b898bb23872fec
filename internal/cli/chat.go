// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat REPL.
//
// Handles "ai-chatbot chat", a line-based alternative to the TUI for
// environments where a full-screen interface is unwanted. Conversations
// go through the same store as the TUI, so they appear in both.
//
// Interactive commands:
//   /new          Start a new conversation
//   /list         List conversations
//   /switch N     Switch to the Nth listed conversation
//   /docs         List uploaded documents
//   /help         Show commands
//   /quit, /q     Exit (Ctrl+D also works)
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/subodhdevpatel/ai-chatbot/internal/config"
	"github.com/subodhdevpatel/ai-chatbot/internal/gateway"
	"github.com/subodhdevpatel/ai-chatbot/internal/model"
	"github.com/subodhdevpatel/ai-chatbot/internal/store"
)

// chatSession holds the REPL state.
type chatSession struct {
	cfg    *config.Config
	client *gateway.Client
	store  *store.ConversationStore
	line   *liner.State
}

// HandleChat handles the "chat" command.
func HandleChat(args Args) error {
	cfg := config.Global()

	st, err := OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open conversation store: %w", err)
	}

	s := &chatSession{
		cfg:    cfg,
		client: NewGatewayClient(cfg),
		store:  st,
		line:   liner.NewLiner(),
	}
	defer s.close()

	s.line.SetCtrlCAborts(true)
	s.loadHistory()

	if !args.Quiet {
		fmt.Println(titleStyle.Render("AI Research Assistant"))
		th := st.ActiveThread()
		if th != nil {
			fmt.Println(mutedStyle.Render("Continuing: " + th.Title + " (/help for commands)"))
		}
		fmt.Println()
	}

	for {
		input, err := s.line.Prompt(promptStyle.Render("> "))
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		s.line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if quit := s.handleCommand(input); quit {
				return nil
			}
			continue
		}

		s.ask(input)
	}
}

// ask sends a question and prints the answer.
func (s *chatSession) ask(question string) {
	threadID := s.store.ActiveID()
	if err := s.store.AppendMessage(threadID, model.NewUserMessage(question)); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Failed to save message: "+err.Error()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout())
	defer cancel()

	resp, err := s.client.SendMessage(ctx, question)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Failed to get a response. Please check if the backend is running."))
		return
	}

	if err := s.store.AppendMessage(threadID, model.NewAIMessage(resp.Response, resp.Sources)); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Failed to save message: "+err.Error()))
	}

	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(resp.Response))
	} else {
		fmt.Println(resp.Response)
	}
	if len(resp.Sources) > 0 {
		fmt.Println(mutedStyle.Render("Sources: " + strings.Join(resp.Sources, ", ")))
	}
	fmt.Println()
}

// handleCommand runs a slash command. Returns true to exit.
func (s *chatSession) handleCommand(input string) bool {
	parts := strings.Fields(input)
	switch parts[0] {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h":
		fmt.Println("Commands: /new /list /switch N /docs /quit")

	case "/new":
		if _, err := s.store.NewThread(); err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Failed to create conversation"))
			break
		}
		fmt.Println(mutedStyle.Render("Started " + s.store.ActiveThread().Title))

	case "/list":
		metas := s.store.Threads()
		model.SortMetas(metas)
		active := s.store.ActiveID()
		for i, meta := range metas {
			marker := "  "
			if meta.ID == active {
				marker = "* "
			}
			fmt.Printf("%s%d. %s\n", marker, i+1, meta.Title)
		}

	case "/switch":
		if len(parts) < 2 {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Usage: /switch N"))
			break
		}
		n, err := strconv.Atoi(parts[1])
		metas := s.store.Threads()
		model.SortMetas(metas)
		if err != nil || n < 1 || n > len(metas) {
			fmt.Fprintln(os.Stderr, errorStyle.Render("No such conversation"))
			break
		}
		if _, err := s.store.SelectThread(metas[n-1].ID); err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Failed to save conversation state"))
			break
		}
		fmt.Println(mutedStyle.Render("Switched to " + metas[n-1].Title))

	case "/docs":
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout())
		docs, _ := s.client.ListDocuments(ctx)
		cancel()
		if len(docs) == 0 {
			fmt.Println(mutedStyle.Render("No documents uploaded yet."))
			break
		}
		for _, d := range docs {
			fmt.Println("  " + d)
		}

	default:
		fmt.Fprintln(os.Stderr, errorStyle.Render("Unknown command "+parts[0]+" (/help for commands)"))
	}
	return false
}

// historyPath returns the liner history file location.
func (s *chatSession) historyPath() string {
	dir, err := config.ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}

func (s *chatSession) loadHistory() {
	path := s.historyPath()
	if path == "" {
		return
	}
	if f, err := os.Open(path); err == nil {
		s.line.ReadHistory(f)
		f.Close()
	}
}

func (s *chatSession) close() {
	if path := s.historyPath(); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
			if f, err := os.Create(path); err == nil {
				s.line.WriteHistory(f)
				f.Close()
			}
		}
	}
	s.line.Close()
}
