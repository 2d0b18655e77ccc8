// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: openai-api-key, gemini-api-key, smtp-password, telegram-bot-token.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Fill copies loaded secrets into the configuration slots that are still
// empty. Values already set, from flags, environment, or the config file,
// win over key files.
func Fill(cfg *types.PipelineConfig, secrets map[string]string) {
	if cfg.Summarize.APIKey == "" {
		switch cfg.Summarize.Backend {
		case "gemini":
			cfg.Summarize.APIKey = secrets["gemini-api-key"]
		default:
			cfg.Summarize.APIKey = secrets["openai-api-key"]
		}
	}
	if cfg.Email.Password == "" {
		cfg.Email.Password = secrets["smtp-password"]
	}
	if cfg.Telegram.BotToken == "" {
		cfg.Telegram.BotToken = secrets["telegram-bot-token"]
	}
}
