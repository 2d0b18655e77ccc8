// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pdiddy/paper-digest/pkg/types"
)

func sampleDigest() Digest {
	return Digest{
		Date: time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC),
		Papers: []types.Paper{
			{
				ID:               "2508.00001",
				Title:            "Load Forecasting with Transformers",
				Authors:          []string{"Ada Lovelace", "Grace Hopper"},
				Published:        time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
				PDFURL:           "https://arxiv.org/pdf/2508.00001",
				RelevanceScore:   80,
				ImportanceScore:  60,
				RecencyScore:     100,
				CombinedScore:    76,
				Summary:          "Background: grids. Rating: ★★★★ strong results.",
				SummaryGenerated: true,
			},
			{
				ID:            "2508.00002",
				Title:         "Microgrid Control Notes",
				Authors:       []string{"Alan Turing"},
				PDFURL:        "https://arxiv.org/pdf/2508.00002",
				CombinedScore: 55,
				Summary:       "Control strategies for microgrids.",
			},
		},
		Discovered: 40,
		Selected:   2,
		Summarized: 1,
	}
}

func TestDigestBody(t *testing.T) {
	body, err := sampleDigest().Body()
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"Paper digest for 2026-08-31",
		"HIGHLIGHTS",
		"Load Forecasting with Transformers",
		"[summarized]",
		"[listed]",
		"Ada Lovelace, Grace Hopper",
		"https://arxiv.org/pdf/2508.00001",
		"score 76.0 (relevance 80, importance 60, recency 100)",
		"discovered 40 | selected 2 | summarized 1",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q\n%s", want, body)
		}
	}

	// The unsummarized paper must not appear in highlights.
	if strings.Count(body, "Microgrid Control Notes") != 1 {
		t.Errorf("listed-only paper appears outside the paper list\n%s", body)
	}
}

func TestDigestBodyEmpty(t *testing.T) {
	d := Digest{Date: time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC), Discovered: 12}
	body, err := d.Body()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(body, "No new papers matched your interests") {
		t.Errorf("empty body = %q", body)
	}
	if !strings.Contains(d.Subject(), "nothing new") {
		t.Errorf("empty subject = %q", d.Subject())
	}
}

func TestDigestBodyFailedKeywords(t *testing.T) {
	d := sampleDigest()
	d.FailedKeywords = []string{"quantum batteries"}
	body, err := d.Body()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(body, "failed keywords: quantum batteries") {
		t.Errorf("body missing failed keywords\n%s", body)
	}
}

func TestEmailNotifierSend(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	n := &EmailNotifier{
		cfg: types.EmailConfig{
			SMTPServer: "smtp.example.com",
			SMTPPort:   587,
			Sender:     "digest@example.com",
			Password:   "secret",
			Recipients: []string{"a@example.com", "b@example.com"},
		},
		sendMail: func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			return nil
		},
	}

	if err := n.Send(context.Background(), sampleDigest()); err != nil {
		t.Fatal(err)
	}
	if gotAddr != "smtp.example.com:587" || gotFrom != "digest@example.com" {
		t.Errorf("sent via %s from %s", gotAddr, gotFrom)
	}
	if len(gotTo) != 2 {
		t.Errorf("recipients = %v", gotTo)
	}
	msg := string(gotMsg)
	if !strings.Contains(msg, "Subject: Paper digest 2026-08-31: 2 papers") {
		t.Errorf("message missing subject\n%s", msg)
	}
	if !strings.Contains(msg, "Content-Type: text/plain") {
		t.Errorf("message missing content type\n%s", msg)
	}
}

func TestEmailNotifierSendFailure(t *testing.T) {
	n := &EmailNotifier{
		cfg: types.EmailConfig{
			SMTPServer: "smtp.example.com",
			SMTPPort:   587,
			Sender:     "digest@example.com",
			Recipients: []string{"a@example.com"},
		},
		sendMail: func(string, smtp.Auth, string, []string, []byte) error {
			return fmt.Errorf("connection refused")
		},
	}
	if err := n.Send(context.Background(), sampleDigest()); err == nil {
		t.Fatal("expected a delivery error")
	}
}

func TestEmailNotifierNoRecipients(t *testing.T) {
	n := NewEmailNotifier(types.EmailConfig{Sender: "digest@example.com"})
	if err := n.Send(context.Background(), sampleDigest()); err == nil {
		t.Fatal("expected an error with no recipients")
	}
}

// fakeTelegramAPI records sent messages.
type fakeTelegramAPI struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeTelegramAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

func TestTelegramNotifierSend(t *testing.T) {
	api := &fakeTelegramAPI{}
	n := &TelegramNotifier{api: api, chatID: 42}

	if err := n.Send(context.Background(), sampleDigest()); err != nil {
		t.Fatal(err)
	}
	if len(api.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(api.sent))
	}
	msg := api.sent[0]
	if msg.ChatID != 42 {
		t.Errorf("chat id = %d, want 42", msg.ChatID)
	}
	if !strings.Contains(msg.Text, "Load Forecasting with Transformers") {
		t.Errorf("message missing paper title\n%s", msg.Text)
	}
}

func TestTelegramNotifierChunksLongDigests(t *testing.T) {
	d := Digest{Date: time.Now()}
	for i := 0; i < 200; i++ {
		d.Papers = append(d.Papers, types.Paper{
			Title:  fmt.Sprintf("A Fairly Long Paper Title For Chunking Number %d", i),
			PDFURL: fmt.Sprintf("https://arxiv.org/pdf/2508.%05d", i),
		})
	}

	api := &fakeTelegramAPI{}
	n := &TelegramNotifier{api: api, chatID: 1}
	if err := n.Send(context.Background(), d); err != nil {
		t.Fatal(err)
	}
	if len(api.sent) < 2 {
		t.Fatalf("sent %d messages, want the digest split up", len(api.sent))
	}
	for i, msg := range api.sent {
		if len(msg.Text) > telegramMessageLimit {
			t.Errorf("chunk %d has %d chars, over the limit", i, len(msg.Text))
		}
	}
}

func TestSplitMessageShortText(t *testing.T) {
	chunks := splitMessage("short", 100)
	if len(chunks) != 1 || chunks[0] != "short" {
		t.Errorf("chunks = %v", chunks)
	}
}
