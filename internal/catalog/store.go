// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog serves the local mock dataset behind the home page, the
// catalog search, and the researcher dashboards. The fixture is loaded into
// an in-memory SQLite database when the store opens.
package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/orquideira/pkg/types"
)

// DefaultHotPapers is how many papers the home page highlights.
const DefaultHotPapers = 4

// driverName is go-sqlite3 with a fold() function for case-insensitive
// matching of non-ASCII text, which SQLite's lower() leaves alone.
const driverName = "sqlite3_catalog"

// ErrNotFound is returned by ResearcherStrict for an unknown id.
var ErrNotFound = errors.New("researcher not found")

//go:embed fixture.yaml
var embeddedFixture []byte

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("fold", fold, true)
		},
	})
}

func fold(s string) string { return strings.ToLower(s) }

// Fixture is the dataset a Store is seeded from.
type Fixture struct {
	Papers      []types.CatalogPaper `json:"papers" yaml:"papers"`
	Researchers []types.Researcher   `json:"researchers" yaml:"researchers"`
}

// LoadFixture reads a fixture file. An empty path selects the built-in
// dataset.
func LoadFixture(path string) (Fixture, error) {
	data := embeddedFixture
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return Fixture{}, fmt.Errorf("reading catalog fixture: %w", err)
		}
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parsing catalog fixture: %w", err)
	}
	return f, nil
}

// Store answers catalog queries.
type Store struct {
	db *sql.DB
}

// Open loads the fixture named by cfg and seeds a new Store with it.
func Open(ctx context.Context, cfg types.CatalogConfig) (*Store, error) {
	f, err := LoadFixture(cfg.Fixture)
	if err != nil {
		return nil, err
	}
	return NewStore(ctx, f)
}

// NewStore creates an in-memory database seeded with f.
func NewStore(ctx context.Context, f Fixture) (*Store, error) {
	db, err := sql.Open(driverName, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	if err := s.seed(ctx, f); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding catalog: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE papers (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			authors TEXT NOT NULL,
			abstract TEXT NOT NULL,
			journal TEXT NOT NULL,
			year INTEGER NOT NULL,
			citations INTEGER NOT NULL,
			doi TEXT NOT NULL
		)`,
		`CREATE TABLE researchers (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			orcid_id TEXT NOT NULL,
			avatar TEXT NOT NULL,
			bio TEXT NOT NULL,
			institution TEXT NOT NULL,
			country TEXT NOT NULL,
			h_index INTEGER NOT NULL,
			citations TEXT NOT NULL,
			publications TEXT NOT NULL,
			jobs TEXT NOT NULL,
			education TEXT NOT NULL
		)`,
		`CREATE INDEX idx_papers_citations ON papers(citations)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

func (s *Store) seed(ctx context.Context, f Fixture) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range f.Papers {
		authorsJSON, _ := json.Marshal(nonNil(p.Authors))
		_, err := tx.ExecContext(ctx,
			`INSERT INTO papers (id, title, authors, abstract, journal, year, citations, doi)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Title, string(authorsJSON), p.Abstract, p.Journal, p.Year, p.Citations, p.DOI,
		)
		if err != nil {
			return fmt.Errorf("inserting paper %s: %w", p.ID, err)
		}
	}

	for _, r := range f.Researchers {
		citationsJSON, _ := json.Marshal(r.Citations)
		publicationsJSON, _ := json.Marshal(r.Publications)
		jobsJSON, _ := json.Marshal(r.Jobs)
		educationJSON, _ := json.Marshal(r.Education)
		_, err := tx.ExecContext(ctx,
			`INSERT INTO researchers (id, name, orcid_id, avatar, bio, institution, country, h_index,
				citations, publications, jobs, education)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Name, r.ORCID, r.Avatar, r.Bio, r.Institution, r.Country, r.HIndex,
			string(citationsJSON), string(publicationsJSON), string(jobsJSON), string(educationJSON),
		)
		if err != nil {
			return fmt.Errorf("inserting researcher %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
