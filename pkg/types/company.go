// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CompanyRecord is one canonical company entry from the registry CSV.
// Within a registry the tax code is the most reliable unique key; the
// company name is normalized to uppercase for lookups but is not
// collision-safe. Records are loaded once per run and never mutated by
// the extraction core.
type CompanyRecord struct {
	// CompanyName is the registered business name.
	CompanyName string `json:"company_name" yaml:"company_name"`

	// TaxCode is the 11-digit codice fiscale. May be empty.
	TaxCode string `json:"tax_code" yaml:"tax_code"`

	// VATNumber is the 11-digit partita IVA. Often equals TaxCode.
	VATNumber string `json:"vat_number" yaml:"vat_number"`

	// LegalForm is the company legal form (e.g. "SRL", "SPA").
	LegalForm string `json:"legal_form,omitempty" yaml:"legal_form,omitempty"`

	// Address is the registered address from the chamber record.
	Address string `json:"address,omitempty" yaml:"address,omitempty"`

	// PECEmail is the certified electronic mail address.
	PECEmail string `json:"pec_email,omitempty" yaml:"pec_email,omitempty"`

	// Revenue is the declared revenue in EUR, as reported (string: the
	// source CSV carries it unparsed and it may be absent).
	Revenue     string `json:"revenue,omitempty" yaml:"revenue,omitempty"`
	RevenueYear string `json:"revenue_year,omitempty" yaml:"revenue_year,omitempty"`

	// Employees is the declared headcount, as reported.
	Employees     string `json:"employees,omitempty" yaml:"employees,omitempty"`
	EmployeesYear string `json:"employees_year,omitempty" yaml:"employees_year,omitempty"`

	// Website is the official website URL, when a previous stage found one.
	Website string `json:"website,omitempty" yaml:"website,omitempty"`
}

// AnalysisStatus tags the outcome of processing one document or company.
type AnalysisStatus string

const (
	StatusCompleted AnalysisStatus = "completed"
	StatusFailed    AnalysisStatus = "failed"
	StatusError     AnalysisStatus = "error"
	StatusNoWebsite AnalysisStatus = "no_website"
)

// UnknownCompany is the label used when no registry entry matched.
const UnknownCompany = "Unknown"

// AnalysisResult is the per-document output of the chamber analysis stage.
// Exactly one result is emitted per input document; unresolved companies
// and model failures are degraded fields, not errors.
type AnalysisResult struct {
	// DocumentName is the base name of the analyzed PDF.
	DocumentName string `json:"document_name" yaml:"document_name"`

	// CompanyName is the matched company name, or "Unknown".
	CompanyName string `json:"company_name,omitempty" yaml:"company_name,omitempty"`

	// MatchedCompany is the resolved registry record; nil when unresolved.
	MatchedCompany *CompanyRecord `json:"matched_company_data" yaml:"matched_company_data"`

	// Status is completed, failed (no text extracted), or error.
	Status AnalysisStatus `json:"analysis_status" yaml:"analysis_status"`

	// DirectExtraction holds the deterministic certification buckets.
	DirectExtraction *CertificationSet `json:"direct_extraction,omitempty" yaml:"direct_extraction,omitempty"`

	// AIAnalysis holds the model-derived structured payload; nil when the
	// model was unreachable or returned no usable JSON.
	AIAnalysis *DocumentAnalysis `json:"ai_analysis" yaml:"ai_analysis"`

	// DocumentLength is the character count of the extracted text.
	DocumentLength int `json:"document_length,omitempty" yaml:"document_length,omitempty"`

	// ProcessedLength is the total character count across extracted
	// sections, including the full_text section.
	ProcessedLength int `json:"processed_length,omitempty" yaml:"processed_length,omitempty"`

	// Error carries the failure text for failed/error statuses.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Timestamp is the analysis time, formatted "2006-01-02 15:04:05".
	Timestamp string `json:"analysis_timestamp" yaml:"analysis_timestamp"`
}

// WebIntelligence holds contact and business details extracted from a
// company website. Lists are deduplicated, order-preserving, and capped
// by the intel cleanup pass.
type WebIntelligence struct {
	CEOManagingDirector string   `json:"ceo_managing_director,omitempty" yaml:"ceo_managing_director,omitempty"`
	InfoEmails          []string `json:"info_emails" yaml:"info_emails"`
	PhoneNumbers        []string `json:"phone_numbers" yaml:"phone_numbers"`
	Addresses           []string `json:"addresses" yaml:"addresses"`
	CompanyReferences   []string `json:"company_references" yaml:"company_references"`
	AnalyzedPages       []string `json:"analyzed_pages" yaml:"analyzed_pages"`

	// Content is the accumulated flattened page text, kept for
	// classification and the unified artifact. Not serialized.
	Content string `json:"-" yaml:"-"`
}

// IntelReport is the per-company output of the website intelligence stage.
type IntelReport struct {
	CompanyName string `json:"company_name" yaml:"company_name"`
	WebsiteURL  string `json:"website_url" yaml:"website_url"`

	Status AnalysisStatus `json:"analysis_status" yaml:"analysis_status"`

	Intelligence *WebIntelligence `json:"intelligence,omitempty" yaml:"intelligence,omitempty"`

	Classification *Classification `json:"classification,omitempty" yaml:"classification,omitempty"`

	// ClassifiedBy records whether the classification came from the model
	// or the deterministic fallback ("model" or "direct").
	ClassifiedBy string `json:"classified_by,omitempty" yaml:"classified_by,omitempty"`

	PagesAnalyzed int    `json:"pages_analyzed,omitempty" yaml:"pages_analyzed,omitempty"`
	Error         string `json:"error,omitempty" yaml:"error,omitempty"`
	Timestamp     string `json:"analysis_timestamp" yaml:"analysis_timestamp"`
}

// UnifiedCompany merges every pipeline artifact for one company.
// Keyed by tax code, falling back to the uppercased name when absent.
type UnifiedCompany struct {
	CompanyRecord `yaml:",inline"`

	Intelligence   *WebIntelligence  `json:"intelligence,omitempty" yaml:"intelligence,omitempty"`
	Classification *Classification   `json:"classification,omitempty" yaml:"classification,omitempty"`
	Certifications *CertificationSet `json:"certifications,omitempty" yaml:"certifications,omitempty"`
	ChamberAIData  *DocumentAnalysis `json:"chamber_ai_analysis,omitempty" yaml:"chamber_ai_analysis,omitempty"`

	// ChamberDocument is the visura file the chamber data came from.
	ChamberDocument string `json:"chamber_document,omitempty" yaml:"chamber_document,omitempty"`
}
