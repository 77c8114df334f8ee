// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists unified company records and builds a
// full-text retrieval index over them.
// Implements: docs/ARCHITECTURE § Company Store.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/emazzini/visura-engine/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "companies.db"
)

// Store manages the company SQLite database.
type Store struct {
	db         *sql.DB
	dataDir    string
	maxResults int
}

// New opens or creates the company database at
// dataDir/index/companies.db, creating the schema if needed.
func New(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		dataDir:    cfg.DataDir,
		maxResults: maxResults,
	}

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
		`CREATE TABLE IF NOT EXISTS companies (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL UNIQUE,
			company_name TEXT NOT NULL,
			tax_code TEXT,
			vat_number TEXT,
			website TEXT,
			primary_category TEXT,
			record TEXT NOT NULL,
			content TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_companies_tax_code ON companies(tax_code)`,
		`CREATE INDEX IF NOT EXISTS idx_companies_category ON companies(primary_category)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='companies_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE companies_fts USING fts5(company_name, content, content=companies, content_rowid=rowid)`,
			`CREATE TRIGGER companies_ai AFTER INSERT ON companies BEGIN
				INSERT INTO companies_fts(rowid, company_name, content) VALUES (new.rowid, new.company_name, new.content);
			END`,
			`CREATE TRIGGER companies_ad AFTER DELETE ON companies BEGIN
				INSERT INTO companies_fts(companies_fts, rowid, company_name, content) VALUES('delete', old.rowid, old.company_name, old.content);
			END`,
			`CREATE TRIGGER companies_au AFTER UPDATE ON companies BEGIN
				INSERT INTO companies_fts(companies_fts, rowid, company_name, content) VALUES('delete', old.rowid, old.company_name, old.content);
				INSERT INTO companies_fts(rowid, company_name, content) VALUES (new.rowid, new.company_name, new.content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from an indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Failed  int
}

// Total returns the number of companies processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Failed
}

// Ingest reads the unified company JSON file and populates the
// database. Existing records are replaced by key so re-indexing after a
// pipeline run refreshes the store.
func (s *Store) Ingest(ctx context.Context, unifiedFile string, w io.Writer) (IngestSummary, error) {
	data, err := os.ReadFile(unifiedFile)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading unified data %s: %w", unifiedFile, err)
	}

	var companies []*types.UnifiedCompany
	if err := json.Unmarshal(data, &companies); err != nil {
		return IngestSummary{}, fmt.Errorf("parsing unified data: %w", err)
	}

	var summary IngestSummary
	for _, company := range companies {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		key := RecordKey(&company.CompanyRecord)
		if key == "" {
			fmt.Fprintf(w, "failed  record with no name or tax code\n")
			summary.Failed++
			continue
		}

		updated, err := s.upsert(ctx, key, company)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", company.CompanyName, err)
			summary.Failed++
			continue
		}
		if updated {
			fmt.Fprintf(w, "updated %s\n", company.CompanyName)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s\n", company.CompanyName)
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Failed)
	return summary, nil
}

func (s *Store) upsert(ctx context.Context, key string, company *types.UnifiedCompany) (updated bool, err error) {
	record, err := json.Marshal(company)
	if err != nil {
		return false, fmt.Errorf("encoding record: %w", err)
	}

	var existing int64
	err = s.db.QueryRowContext(ctx,
		`SELECT rowid FROM companies WHERE key = ?`, key,
	).Scan(&existing)
	updated = err == nil

	primaryCategory := ""
	if company.Classification != nil {
		primaryCategory = company.Classification.PrimaryCategory()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return updated, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if updated {
		_, err = tx.ExecContext(ctx,
			`UPDATE companies SET company_name=?, tax_code=?, vat_number=?, website=?,
				primary_category=?, record=?, content=? WHERE key=?`,
			company.CompanyName, company.TaxCode, company.VATNumber, company.Website,
			primaryCategory, string(record), searchDocument(company), key,
		)
	} else {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO companies (key, company_name, tax_code, vat_number, website, primary_category, record, content)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			key, company.CompanyName, company.TaxCode, company.VATNumber, company.Website,
			primaryCategory, string(record), searchDocument(company),
		)
	}
	if err != nil {
		return updated, fmt.Errorf("writing company %s: %w", key, err)
	}

	return updated, tx.Commit()
}

// Count returns the number of stored companies.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM companies`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting companies: %w", err)
	}
	return n, nil
}

// RecordKey returns the canonical store key for a company: the tax
// code, falling back to the uppercased name.
func RecordKey(rec *types.CompanyRecord) string {
	if rec.TaxCode != "" {
		return rec.TaxCode
	}
	return strings.ToUpper(strings.TrimSpace(rec.CompanyName))
}

// searchDocument flattens a unified record into the text the FTS index
// matches against.
func searchDocument(c *types.UnifiedCompany) string {
	var parts []string
	add := func(values ...string) {
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				parts = append(parts, v)
			}
		}
	}

	add(c.CompanyName, c.LegalForm, c.TaxCode, c.VATNumber, c.Address, c.PECEmail, c.Website)

	if intel := c.Intelligence; intel != nil {
		add(intel.CEOManagingDirector)
		add(intel.InfoEmails...)
		add(intel.PhoneNumbers...)
		add(intel.Addresses...)
		add(intel.CompanyReferences...)
	}

	if cls := c.Classification; cls != nil {
		add(cls.BusinessFocus)
		for _, cat := range cls.Categories {
			add(cat.Category)
			for _, sub := range cat.Subcategories {
				add(sub.Name)
			}
			add(cat.Keywords...)
		}
		add(cls.TechnologyStack.Simple...)
		for _, tech := range cls.TechnologyStack.Detailed {
			add(tech.Technology)
		}
		add(cls.MarketSegments...)
	}

	if certs := c.Certifications; certs != nil {
		add(certs.SOAAttestations...)
		add(certs.QualityCertifications...)
		add(certs.EnvironmentalCertifications...)
		add(certs.SafetyCertifications...)
		add(certs.EnvironmentalRegistrations...)
		add(certs.TechnicalAuthorizations...)
		add(certs.OtherCertifications...)
	}

	if ai := c.ChamberAIData; ai != nil {
		add(ai.KeyInsights...)
		if ba := ai.BusinessActivities; ba != nil {
			add(ba.PrimaryActivity)
			add(ba.SecondaryActivities...)
			add(ba.AtecoCodes...)
			add(ba.Specializations...)
		}
	}

	return strings.Join(parts, "\n")
}
