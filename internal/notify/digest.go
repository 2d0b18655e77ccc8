// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notify delivers finished digests to subscribers. Each delivery
// channel implements the Notifier interface; a failed channel is the
// caller's to log, channels do not know about each other.
package notify

import (
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Notifier delivers one digest over one channel.
type Notifier interface {
	Name() string
	Send(ctx context.Context, d Digest) error
}

// Digest is the rendered outcome of one pipeline run.
type Digest struct {
	Date           time.Time
	Papers         []types.Paper
	Discovered     int
	Selected       int
	Summarized     int
	FailedKeywords []string
}

// IsEmpty reports whether the digest carries no papers.
func (d Digest) IsEmpty() bool { return len(d.Papers) == 0 }

// Highlights returns the papers whose summaries rate four stars or more.
func (d Digest) Highlights() []types.Paper {
	var out []types.Paper
	for _, p := range d.Papers {
		if strings.Contains(p.Summary, "★★★★") {
			out = append(out, p)
		}
	}
	return out
}

// Subject renders the email subject line.
func (d Digest) Subject() string {
	if d.IsEmpty() {
		return fmt.Sprintf("Paper digest %s: nothing new", d.Date.Format("2006-01-02"))
	}
	return fmt.Sprintf("Paper digest %s: %d papers", d.Date.Format("2006-01-02"), len(d.Papers))
}

const bodyTemplate = `Paper digest for {{.Date.Format "2006-01-02"}}
{{if .IsEmpty}}
No new papers matched your interests this time.

Discovered {{.Discovered}} candidates; none were both new and relevant enough.
{{- else}}
{{- if .Highlights}}
HIGHLIGHTS
----------
{{range .Highlights}}
* {{.Title}}
{{end}}
{{- end}}
PAPERS
------
{{range $i, $p := .Papers}}
{{add $i 1}}. {{$p.Title}} [{{if $p.SummaryGenerated}}summarized{{else}}listed{{end}}]
   {{join $p.Authors ", "}}{{if not $p.Published.IsZero}} | {{$p.Published.Format "2006-01-02"}}{{end}}
   {{$p.PDFURL}}
   score {{printf "%.1f" $p.CombinedScore}} (relevance {{printf "%.0f" $p.RelevanceScore}}, importance {{printf "%.0f" $p.ImportanceScore}}, recency {{printf "%.0f" $p.RecencyScore}})

{{indent $p.Summary}}
{{end}}
{{- end}}
--
discovered {{.Discovered}} | selected {{.Selected}} | summarized {{.Summarized}}
{{- if .FailedKeywords}}
failed keywords: {{join .FailedKeywords ", "}}
{{- end}}
`

var bodyTmpl = template.Must(template.New("digest").Funcs(template.FuncMap{
	"add":  func(a, b int) int { return a + b },
	"join": strings.Join,
	"indent": func(s string) string {
		lines := strings.Split(strings.TrimSpace(s), "\n")
		for i, l := range lines {
			lines[i] = "   " + l
		}
		return strings.Join(lines, "\n")
	},
}).Parse(bodyTemplate))

// Body renders the plain-text digest body shared by all channels.
func (d Digest) Body() (string, error) {
	var sb strings.Builder
	if err := bodyTmpl.Execute(&sb, d); err != nil {
		return "", fmt.Errorf("rendering digest body: %w", err)
	}
	return sb.String(), nil
}
