// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists processed papers and run records in SQLite, and
// uses that record to keep already-digested papers out of new runs.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-digest/pkg/types"
)

const defaultDBFile = "data/papers.db"

// Store manages the digest history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at cfg.DBPath, creating
// parent directories and the schema as needed.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = defaultDBFile
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			id TEXT PRIMARY KEY,
			title TEXT,
			authors TEXT,
			abstract TEXT,
			summary TEXT,
			summary_generated INTEGER NOT NULL DEFAULT 0,
			published TEXT,
			pdf_url TEXT,
			categories TEXT,
			search_keyword TEXT,
			importance_score REAL,
			relevance_score REAL,
			recency_score REAL,
			combined_score REAL,
			processed_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_processed_at ON papers(processed_at)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			discovered INTEGER NOT NULL DEFAULT 0,
			selected INTEGER NOT NULL DEFAULT 0,
			summarized INTEGER NOT NULL DEFAULT 0,
			failed_keywords TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// KnownIDs returns the set of paper identifiers already processed.
func (s *Store) KnownIDs(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM papers`)
	if err != nil {
		return nil, fmt.Errorf("querying known papers: %w", err)
	}
	defer rows.Close()

	known := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning paper id: %w", err)
		}
		known[id] = true
	}
	return known, rows.Err()
}

// SavePapers upserts the given papers in one transaction, stamping each
// with the current time.
func (s *Store) SavePapers(ctx context.Context, papers []types.Paper) error {
	if len(papers) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO papers (
			id, title, authors, abstract, summary, summary_generated,
			published, pdf_url, categories, search_keyword,
			importance_score, relevance_score, recency_score, combined_score,
			processed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, p := range papers {
		authorsJSON, _ := json.Marshal(p.Authors)
		categoriesJSON, _ := json.Marshal(p.Categories)
		published := ""
		if !p.Published.IsZero() {
			published = p.Published.UTC().Format(time.RFC3339)
		}
		_, err := stmt.ExecContext(ctx,
			p.ID, p.Title, string(authorsJSON), p.Abstract,
			p.Summary, boolToInt(p.SummaryGenerated),
			published, p.PDFURL, string(categoriesJSON), p.SearchKeyword,
			p.ImportanceScore, p.RelevanceScore, p.RecencyScore, p.CombinedScore,
			now,
		)
		if err != nil {
			return fmt.Errorf("inserting paper %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// RunRecord captures one digest run for the runs table.
type RunRecord struct {
	ID             string    `json:"id" yaml:"id"`
	StartedAt      time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt     time.Time `json:"finished_at" yaml:"finished_at"`
	Discovered     int       `json:"discovered" yaml:"discovered"`
	Selected       int       `json:"selected" yaml:"selected"`
	Summarized     int       `json:"summarized" yaml:"summarized"`
	FailedKeywords []string  `json:"failed_keywords,omitempty" yaml:"failed_keywords,omitempty"`
}

// RecordRun upserts one run record.
func (s *Store) RecordRun(ctx context.Context, run RunRecord) error {
	failedJSON, _ := json.Marshal(run.FailedKeywords)
	finished := ""
	if !run.FinishedAt.IsZero() {
		finished = run.FinishedAt.UTC().Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (id, started_at, finished_at, discovered, selected, summarized, failed_keywords)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(time.RFC3339), finished,
		run.Discovered, run.Selected, run.Summarized, string(failedJSON),
	)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", run.ID, err)
	}
	return nil
}

// RecentPapers returns papers processed in the trailing window, newest
// first. A non-positive days returns everything.
func (s *Store) RecentPapers(ctx context.Context, days int) ([]types.Paper, error) {
	query := `SELECT id, title, authors, abstract, summary, summary_generated,
		published, pdf_url, categories, search_keyword,
		importance_score, relevance_score, recency_score, combined_score
		FROM papers`
	args := []any{}
	if days > 0 {
		query += ` WHERE processed_at >= ?`
		args = append(args, time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339))
	}
	query += ` ORDER BY processed_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying recent papers: %w", err)
	}
	defer rows.Close()

	var papers []types.Paper
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

func scanPaper(rows *sql.Rows) (types.Paper, error) {
	var (
		p                           types.Paper
		authorsJSON, categoriesJSON string
		published                   string
		summaryGenerated            int
	)
	err := rows.Scan(&p.ID, &p.Title, &authorsJSON, &p.Abstract,
		&p.Summary, &summaryGenerated,
		&published, &p.PDFURL, &categoriesJSON, &p.SearchKeyword,
		&p.ImportanceScore, &p.RelevanceScore, &p.RecencyScore, &p.CombinedScore,
	)
	if err != nil {
		return types.Paper{}, fmt.Errorf("scanning paper row: %w", err)
	}
	p.SummaryGenerated = summaryGenerated != 0
	p.Scored = true
	json.Unmarshal([]byte(authorsJSON), &p.Authors)
	json.Unmarshal([]byte(categoriesJSON), &p.Categories)
	if published != "" {
		if t, err := time.Parse(time.RFC3339, published); err == nil {
			p.Published = t
		}
	}
	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
