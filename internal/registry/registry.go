// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry loads the company registry CSV and resolves document
// identifiers to canonical company records.
// Implements: docs/ARCHITECTURE § Company Resolution.
package registry

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/emazzini/visura-engine/pkg/types"
)

// Registry indexes company records under every identifier that can name
// them: uppercased company name, tax code, and VAT number when it
// differs from the tax code. Collisions keep the later record, matching
// load order; the tax code is the only key trusted to be unique.
type Registry struct {
	byKey   map[string]*types.CompanyRecord
	records []*types.CompanyRecord
}

// New builds an empty registry.
func New() *Registry {
	return &Registry{byKey: make(map[string]*types.CompanyRecord)}
}

// Add indexes one record under all of its identifiers.
func (r *Registry) Add(rec *types.CompanyRecord) {
	r.records = append(r.records, rec)
	if name := strings.TrimSpace(rec.CompanyName); name != "" {
		r.byKey[strings.ToUpper(name)] = rec
	}
	if tax := strings.TrimSpace(rec.TaxCode); tax != "" {
		r.byKey[tax] = rec
	}
	if vat := strings.TrimSpace(rec.VATNumber); vat != "" && vat != strings.TrimSpace(rec.TaxCode) {
		r.byKey[vat] = rec
	}
}

// Len returns the number of loaded records.
func (r *Registry) Len() int { return len(r.records) }

// Records returns the loaded records in load order.
func (r *Registry) Records() []*types.CompanyRecord { return r.records }

// Resolve returns the first record matching any identifier, in the
// given order. Matching is exact key equality only; names must already
// be uppercased by the identifier extraction. Returns nil when nothing
// matches.
func (r *Registry) Resolve(identifiers []string) *types.CompanyRecord {
	for _, id := range identifiers {
		if rec, ok := r.byKey[id]; ok {
			return rec
		}
	}
	return nil
}

// LoadCSV reads a registry CSV with a header row and returns the
// populated registry. Column names follow the company data artifact
// (company_name, legal_form, tax_code, vat_number, address, pec_email,
// latest_revenue, latest_revenue_year, latest_employees,
// latest_employees_year, optionally website_url). Unknown columns are
// ignored; rows without a company name are skipped.
func LoadCSV(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening registry %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading registry %s: %w", path, err)
	}
	if len(rows) == 0 {
		return New(), nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	field := func(row []string, names ...string) string {
		for _, name := range names {
			if i, ok := col[name]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}

	reg := New()
	for _, row := range rows[1:] {
		rec := &types.CompanyRecord{
			CompanyName:   field(row, "company_name"),
			LegalForm:     field(row, "legal_form"),
			TaxCode:       field(row, "tax_code"),
			VATNumber:     field(row, "vat_number"),
			Address:       field(row, "address"),
			PECEmail:      field(row, "pec_email"),
			Revenue:       field(row, "latest_revenue", "revenue"),
			RevenueYear:   field(row, "latest_revenue_year", "revenue_year"),
			Employees:     field(row, "latest_employees", "employees"),
			EmployeesYear: field(row, "latest_employees_year", "employees_year"),
			Website:       field(row, "website_url", "website"),
		}
		if rec.CompanyName == "" {
			continue
		}
		reg.Add(rec)
	}
	return reg, nil
}
