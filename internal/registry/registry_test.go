// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emazzini/visura-engine/pkg/types"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "companies.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, `company_name,legal_form,tax_code,vat_number,address,pec_email,latest_revenue,latest_revenue_year,latest_employees,latest_employees_year
ACME COSTRUZIONI SRL,SRL,01234567890,01234567890,Via Roma 1 Bolzano,acme@pec.it,1500000,2023,25,2023
BETA IMPIANTI SPA,SPA,09876543210,11111111111,Via Milano 2,beta@pec.it,,,,
`)

	reg, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	rec := reg.Resolve([]string{"01234567890"})
	require.NotNil(t, rec)
	assert.Equal(t, "ACME COSTRUZIONI SRL", rec.CompanyName)
	assert.Equal(t, "SRL", rec.LegalForm)
	assert.Equal(t, "1500000", rec.Revenue)
	assert.Equal(t, "2023", rec.RevenueYear)

	// VAT number indexes separately when it differs from the tax code.
	rec = reg.Resolve([]string{"11111111111"})
	require.NotNil(t, rec)
	assert.Equal(t, "BETA IMPIANTI SPA", rec.CompanyName)

	// Name lookup is uppercase-exact.
	rec = reg.Resolve([]string{"BETA IMPIANTI SPA"})
	require.NotNil(t, rec)
	assert.Equal(t, "09876543210", rec.TaxCode)
}

func TestLoadCSVSkipsNamelessRows(t *testing.T) {
	path := writeCSV(t, "company_name,tax_code\n,01234567890\nREAL SRL,09876543210\n")
	reg, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
	assert.Nil(t, reg.Resolve([]string{"01234567890"}))
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestResolvePrecedence(t *testing.T) {
	reg := New()
	first := &types.CompanyRecord{CompanyName: "FIRST SRL", TaxCode: "11111111111"}
	second := &types.CompanyRecord{CompanyName: "SECOND SRL", TaxCode: "22222222222"}
	reg.Add(first)
	reg.Add(second)

	// First identifier in list order wins, regardless of kind.
	got := reg.Resolve([]string{"22222222222", "11111111111"})
	assert.Same(t, second, got)

	got = reg.Resolve([]string{"nope", "FIRST SRL"})
	assert.Same(t, first, got)

	assert.Nil(t, reg.Resolve([]string{"unknown"}))
	assert.Nil(t, reg.Resolve(nil))
}
