// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// telegramMessageLimit is the Telegram API's hard cap per message.
const telegramMessageLimit = 4096

// telegramAPI is the slice of the bot API the notifier needs. Narrowed to
// an interface so tests can capture outgoing messages.
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier delivers a compact digest to one chat.
type TelegramNotifier struct {
	api    telegramAPI
	chatID int64
}

// NewTelegramNotifier builds a Telegram notifier from the bot configuration.
func NewTelegramNotifier(cfg types.TelegramConfig) (*TelegramNotifier, error) {
	if cfg.BotToken == "" || cfg.ChatID == 0 {
		return nil, fmt.Errorf("telegram bot token and chat id are required")
	}
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}
	return &TelegramNotifier{api: api, chatID: cfg.ChatID}, nil
}

// Name returns the channel identifier.
func (n *TelegramNotifier) Name() string { return "telegram" }

// Send posts a headline-only digest, split into as many messages as the
// length cap requires.
func (n *TelegramNotifier) Send(ctx context.Context, d Digest) error {
	for _, chunk := range splitMessage(renderTelegram(d), telegramMessageLimit) {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg := tgbotapi.NewMessage(n.chatID, chunk)
		msg.DisableWebPagePreview = true
		if _, err := n.api.Send(msg); err != nil {
			return fmt.Errorf("sending telegram digest: %w", err)
		}
	}
	return nil
}

func renderTelegram(d Digest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Paper digest %s\n", d.Date.Format("2006-01-02"))

	if d.IsEmpty() {
		sb.WriteString("No new papers matched your interests this time.\n")
		return sb.String()
	}

	for i, p := range d.Papers {
		fmt.Fprintf(&sb, "\n%d. %s\n", i+1, p.Title)
		fmt.Fprintf(&sb, "   %.1f | %s\n", p.CombinedScore, p.PDFURL)
	}
	fmt.Fprintf(&sb, "\ndiscovered %d | selected %d | summarized %d\n",
		d.Discovered, d.Selected, d.Summarized)
	return sb.String()
}

// splitMessage breaks text at line boundaries into chunks under limit.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if current.Len()+len(line)+1 > limit && current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
