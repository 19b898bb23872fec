// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command routing.
package cli

import (
	"fmt"
	"os"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdDocs
	CmdSessions
	CmdConfig
	CmdStatus
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool

	// Command-specific
	Query      string
	Subcommand string

	// Parser retains access to remaining flags and positionals.
	Parser *ArgParser
}

const usageText = `ai-chatbot - terminal client for a document-grounded QA assistant

Chat with an AI assistant that answers questions from your uploaded
documents. Conversations are kept locally and survive restarts.

Usage:
  ai-chatbot                      Start the TUI (default)
  ai-chatbot ask "question"       Ask a single question
  ai-chatbot chat                 Interactive chat in the terminal
  ai-chatbot docs [subcommand]    Manage the document knowledge base
  ai-chatbot sessions [subcommand] Manage saved conversations
  ai-chatbot config [show|set]    Configuration
  ai-chatbot status               Backend and storage status
  ai-chatbot version              Print version
  ai-chatbot help                 Show this help

Document Commands:
  ai-chatbot docs list            List uploaded documents
  ai-chatbot docs upload FILE     Upload a .txt or .pdf document
  ai-chatbot docs delete NAME     Delete a document
    --confirm                     Skip the interactive prompt
  ai-chatbot docs show NAME       Print document content

Session Commands:
  ai-chatbot sessions list        List saved conversations
  ai-chatbot sessions show ID     Print a conversation transcript
  ai-chatbot sessions delete ID   Delete a conversation
    --confirm                     Skip the interactive prompt
  ai-chatbot sessions export ID   Export a transcript
    --format json|md|txt          Export format (default: txt)

Config Commands:
  ai-chatbot config show          Print the active configuration
  ai-chatbot config set KEY VALUE Set a configuration value
  ai-chatbot config path          Print the config file path

Global Flags:
  --json        Machine-readable output where supported
  -q, --quiet   Minimal output
  -v, --verbose Verbose output

Environment:
  CHATBOT_BACKEND_URL      Override the backend address
  CHATBOT_STORAGE_DRIVER   "file" or "sqlite"
  CHATBOT_WATCH_DIR        Enable the inbox watch folder
`

// Parse parses os.Args into a command and its arguments.
func Parse() (Command, Args) {
	return parseArgs(os.Args[1:])
}

func parseArgs(raw []string) (Command, Args) {
	parser := NewArgParser(raw)
	args := Args{
		Quiet:   parser.BoolFlag("quiet") || parser.BoolFlag("q"),
		Verbose: parser.BoolFlag("verbose") || parser.BoolFlag("v"),
		JSON:    parser.BoolFlag("json"),
		Parser:  parser,
	}

	switch parser.Subcommand() {
	case "":
		return CmdTUI, args
	case "ask":
		args.Query = joinQuery(parser.PositionalFrom(1))
		return CmdAsk, args
	case "chat":
		return CmdChat, args
	case "docs", "documents":
		args.Subcommand = parser.Positional(1)
		return CmdDocs, args
	case "sessions", "session":
		args.Subcommand = parser.Positional(1)
		return CmdSessions, args
	case "config":
		args.Subcommand = parser.Positional(1)
		return CmdConfig, args
	case "status", "s":
		return CmdStatus, args
	case "version", "--version":
		return CmdVersion, args
	case "help", "--help", "-h":
		return CmdHelp, args
	default:
		// Unknown word: treat the whole line as a question.
		args.Query = joinQuery(parser.PositionalFrom(0))
		return CmdAsk, args
	}
}

func joinQuery(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out
}

// PrintUsage prints the CLI usage text.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("ai-chatbot %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
