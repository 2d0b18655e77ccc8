// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-digest/pkg/types"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "openai-api-key", "  sk_abc123  \n")
				writeFile(t, dir, "smtp-password", "hunter2")
				writeFile(t, dir, "telegram-bot-token", "123:abc\n")
				return dir
			},
			want: map[string]string{
				"openai-api-key":     "sk_abc123",
				"smtp-password":      "hunter2",
				"telegram-bot-token": "123:abc",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "gemini-api-key", "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: map[string]string{
				"gemini-api-key": "valid-key",
			},
		},
		{
			name: "skips dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, "openai-api-key", "sk_real")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				"openai-api-key": "sk_real",
			},
		},
		{
			name: "returns empty map for empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFill(t *testing.T) {
	loaded := map[string]string{
		"openai-api-key":     "sk_openai",
		"gemini-api-key":     "gk_gemini",
		"smtp-password":      "hunter2",
		"telegram-bot-token": "123:abc",
	}

	t.Run("fills empty slots by backend", func(t *testing.T) {
		cfg := types.PipelineConfig{}
		Fill(&cfg, loaded)
		assert.Equal(t, "sk_openai", cfg.Summarize.APIKey)
		assert.Equal(t, "hunter2", cfg.Email.Password)
		assert.Equal(t, "123:abc", cfg.Telegram.BotToken)

		cfg = types.PipelineConfig{Summarize: types.AIConfig{Backend: "gemini"}}
		Fill(&cfg, loaded)
		assert.Equal(t, "gk_gemini", cfg.Summarize.APIKey)
	})

	t.Run("configured values win over key files", func(t *testing.T) {
		cfg := types.PipelineConfig{
			Summarize: types.AIConfig{APIKey: "from-env"},
			Email:     types.EmailConfig{Password: "from-config"},
		}
		Fill(&cfg, loaded)
		assert.Equal(t, "from-env", cfg.Summarize.APIKey)
		assert.Equal(t, "from-config", cfg.Email.Password)
	})
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}
