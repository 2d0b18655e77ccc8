// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// sendMailFunc matches smtp.SendMail. Declared so tests can intercept
// delivery without a live SMTP server.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailNotifier delivers digests as plain-text mail over SMTP.
type EmailNotifier struct {
	cfg      types.EmailConfig
	sendMail sendMailFunc
}

// NewEmailNotifier builds an email notifier from the email configuration.
func NewEmailNotifier(cfg types.EmailConfig) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, sendMail: smtp.SendMail}
}

// Name returns the channel identifier.
func (n *EmailNotifier) Name() string { return "email" }

// Send renders the digest and mails it to every configured recipient in
// one message.
func (n *EmailNotifier) Send(ctx context.Context, d Digest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(n.cfg.Recipients) == 0 {
		return fmt.Errorf("no email recipients configured")
	}

	body, err := d.Body()
	if err != nil {
		return err
	}
	msg := n.message(d.Subject(), body)

	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPServer, n.cfg.SMTPPort)
	var auth smtp.Auth
	if n.cfg.Password != "" {
		auth = smtp.PlainAuth("", n.cfg.Sender, n.cfg.Password, n.cfg.SMTPServer)
	}

	if err := n.sendMail(addr, auth, n.cfg.Sender, n.cfg.Recipients, msg); err != nil {
		return fmt.Errorf("sending digest mail: %w", err)
	}
	return nil
}

func (n *EmailNotifier) message(subject, body string) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", n.cfg.Sender)
	fmt.Fprintf(&sb, "To: %s\r\n", strings.Join(n.cfg.Recipients, ", "))
	fmt.Fprintf(&sb, "Subject: %s\r\n", subject)
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return []byte(sb.String())
}
