// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/paper-digest/internal/httputil"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// powerTerms mark keywords about electrical energy. Queries for these are
// widened into the power-systems taxonomy, where relevant work is often
// filed without the keyword appearing verbatim.
var powerTerms = []string{"power", "grid", "energy", "electricity", "solar", "wind", "load"}

var powerCategories = []string{"eess.SY", "eess.SP", "cs.SY"}

// ArxivSource retrieves candidate papers from the arXiv API.
type ArxivSource struct {
	Client *http.Client
}

// Name returns the source identifier.
func (s *ArxivSource) Name() string { return "arxiv" }

// Search queries arXiv for one search keyword, newest submissions first.
// It requests twice the configured batch so that downstream filtering
// still has a full batch to work with.
func (s *ArxivSource) Search(ctx context.Context, keyword string, cfg types.FetchConfig) ([]types.Paper, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("empty search keyword")
	}

	perKeyword := cfg.PerKeyword
	if perKeyword <= 0 {
		perKeyword = 20
	}

	reqURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		arxivAPIBase, buildQuery(keyword), 2*perKeyword)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var papers []types.Paper
	for _, entry := range feed.Entries {
		arxivID := extractArxivID(entry.ID)
		if arxivID == "" {
			continue
		}

		p := types.Paper{
			ID:            arxivID,
			Title:         collapseWhitespace(entry.Title),
			Abstract:      collapseWhitespace(entry.Summary),
			SearchKeyword: keyword,
			PDFURL:        pdfURL(entry, arxivID),
		}
		for _, a := range entry.Authors {
			p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
		}
		for _, c := range entry.Categories {
			if c.Term != "" {
				p.Categories = append(p.Categories, c.Term)
			}
		}
		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			p.Published = t
		}

		papers = append(papers, p)
	}
	return papers, nil
}

// buildQuery constructs the search_query parameter: a quoted phrase match,
// widened into the power-systems categories for electrical keywords.
func buildQuery(keyword string) string {
	terms := strings.Fields(keyword)
	phrase := `all:%22` + strings.Join(escapeTerms(terms), "+") + `%22`

	if !isPowerKeyword(keyword) {
		return phrase
	}

	cats := make([]string, len(powerCategories))
	for i, c := range powerCategories {
		cats[i] = "cat:" + c
	}
	widened := "all:" + strings.Join(escapeTerms(terms), "+") +
		"+AND+%28" + strings.Join(cats, "+OR+") + "%29"
	return "%28" + phrase + "%29+OR+%28" + widened + "%29"
}

func isPowerKeyword(keyword string) bool {
	keyword = strings.ToLower(keyword)
	for _, term := range powerTerms {
		if strings.Contains(keyword, term) {
			return true
		}
	}
	return false
}

func escapeTerms(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = url.QueryEscape(t)
	}
	return out
}

// pdfURL prefers the feed's own PDF link and falls back to the canonical
// arXiv PDF location.
func pdfURL(entry arxivEntry, arxivID string) string {
	for _, l := range entry.Links {
		if l.Title == "pdf" && l.Href != "" {
			return l.Href
		}
	}
	return "https://arxiv.org/pdf/" + arxivID
}

// collapseWhitespace joins the wrapped lines arXiv feeds carry in titles
// and abstracts into single-spaced text.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string          `xml:"id"`
	Title      string          `xml:"title"`
	Summary    string          `xml:"summary"`
	Published  string          `xml:"published"`
	Authors    []arxivAuthor   `xml:"author"`
	Categories []arxivCategory `xml:"category"`
	Links      []arxivLink     `xml:"link"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

type arxivLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" -> "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
