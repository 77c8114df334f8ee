// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/emazzini/visura-engine/pkg/types"
)

// QueryOptions holds parameters for company queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string. Use MatchQuery to
	// build one safely from free-form terms.
	Query string

	// Category filters by primary classification category
	// (case-insensitive exact match).
	Category string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Category == ""
}

// SearchResult is a unified company with its retrieval rank. Rank is
// zero for structured-only queries.
type SearchResult struct {
	types.UnifiedCompany
	Rank float64 `json:"rank" yaml:"rank"`
}

// ErrNotFound is returned by Lookup when no company matches.
var ErrNotFound = errors.New("company not found")

// MatchQuery builds an FTS5 MATCH expression from free-form terms:
// each term is quoted and the terms are OR-ed, so user input cannot
// break the query syntax.
func MatchQuery(terms []string) string {
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ReplaceAll(term, `"`, "")
		if strings.TrimSpace(term) == "" {
			continue
		}
		quoted = append(quoted, `"`+term+`"`)
	}
	return strings.Join(quoted, " OR ")
}

// Search queries the store with optional full-text search and filters.
// Full-text results are ranked by relevance; structured-only results
// are sorted by company name.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]SearchResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT c.record, companies_fts.rank
			FROM companies_fts
			JOIN companies c ON c.rowid = companies_fts.rowid
			WHERE companies_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT c.record, 0 AS rank
			FROM companies c
			WHERE 1=1`)
	}

	if opts.Category != "" {
		qb.WriteString(` AND c.primary_category = ? COLLATE NOCASE`)
		args = append(args, opts.Category)
	}

	if useFTS {
		qb.WriteString(` ORDER BY companies_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY c.company_name`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying companies: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var (
			record string
			rank   float64
		)
		if err := rows.Scan(&record, &rank); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		var result SearchResult
		if err := json.Unmarshal([]byte(record), &result.UnifiedCompany); err != nil {
			return nil, fmt.Errorf("decoding record: %w", err)
		}
		result.Rank = rank
		results = append(results, result)
	}

	return results, rows.Err()
}

// Lookup resolves one company by identifier: exact key or tax code
// first, then case-insensitive substring match on the name. Returns
// ErrNotFound when nothing matches.
func (s *Store) Lookup(ctx context.Context, identifier string) (*types.UnifiedCompany, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, ErrNotFound
	}

	var record string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM companies WHERE key = ? OR tax_code = ?`,
		strings.ToUpper(identifier), identifier,
	).Scan(&record)

	if errors.Is(err, sql.ErrNoRows) {
		err = s.db.QueryRowContext(ctx,
			`SELECT record FROM companies
			 WHERE company_name LIKE '%' || ? || '%' COLLATE NOCASE
			 ORDER BY company_name LIMIT 1`,
			identifier,
		).Scan(&record)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up %s: %w", identifier, err)
	}

	var company types.UnifiedCompany
	if err := json.Unmarshal([]byte(record), &company); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	return &company, nil
}
