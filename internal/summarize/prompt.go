// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"fmt"
	"strings"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// BuildPrompt renders the digest prompt for one paper. The requested
// section layout is what the notifiers expect to forward verbatim, so
// changes here show up directly in subscriber mail.
func BuildPrompt(p types.Paper) string {
	var sb strings.Builder

	sb.WriteString("Summarize the following research paper for a technical digest.\n")
	sb.WriteString("Write plain text, no markdown. Use exactly these labeled sections:\n\n")
	sb.WriteString("Background: why this problem matters, 1-2 sentences.\n")
	sb.WriteString("Method: the approach taken, 2-3 sentences.\n")
	sb.WriteString("Results: the key findings with numbers where given, 1-2 sentences.\n")
	sb.WriteString("Impact: who should care and why, 1-2 sentences.\n")
	sb.WriteString("Rating: practical significance from ★ to ★★★★★ with a half-sentence reason.\n\n")

	fmt.Fprintf(&sb, "Title: %s\n", p.Title)
	if len(p.Authors) > 0 {
		fmt.Fprintf(&sb, "Authors: %s\n", strings.Join(p.Authors, ", "))
	}
	if len(p.Categories) > 0 {
		fmt.Fprintf(&sb, "Categories: %s\n", strings.Join(p.Categories, ", "))
	}
	if !p.Published.IsZero() {
		fmt.Fprintf(&sb, "Published: %s\n", p.Published.Format("2006-01-02"))
	}
	fmt.Fprintf(&sb, "\nAbstract:\n%s\n", p.Abstract)

	return sb.String()
}
