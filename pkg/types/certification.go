// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CertificationSet holds the seven deterministic extraction buckets.
// Entries are free-text snippets captured by the windowed regex passes:
// deduplicated by exact string equality, first-occurrence order, blanks
// dropped. The model path supplements these with the structured records
// in DocumentAnalysis.
type CertificationSet struct {
	SOAAttestations             []string `json:"soa_attestations" yaml:"soa_attestations"`
	QualityCertifications       []string `json:"quality_certifications" yaml:"quality_certifications"`
	EnvironmentalCertifications []string `json:"environmental_certifications" yaml:"environmental_certifications"`
	SafetyCertifications        []string `json:"safety_certifications" yaml:"safety_certifications"`
	EnvironmentalRegistrations  []string `json:"environmental_registrations" yaml:"environmental_registrations"`
	TechnicalAuthorizations     []string `json:"technical_authorizations" yaml:"technical_authorizations"`
	OtherCertifications         []string `json:"other_certifications" yaml:"other_certifications"`
}

// Total returns the number of entries across all buckets.
func (c *CertificationSet) Total() int {
	return len(c.SOAAttestations) + len(c.QualityCertifications) +
		len(c.EnvironmentalCertifications) + len(c.SafetyCertifications) +
		len(c.EnvironmentalRegistrations) + len(c.TechnicalAuthorizations) +
		len(c.OtherCertifications)
}

// SOAAttestation is a structured SOA record from the model path.
// Attestazione SOA: Italian construction-sector qualification listing
// authorized work categories and classes.
type SOAAttestation struct {
	CodiceSOA          string   `json:"codice_soa,omitempty" yaml:"codice_soa,omitempty"`
	NumeroAttestazione string   `json:"numero_attestazione,omitempty" yaml:"numero_attestazione,omitempty"`
	RilasciataIl       string   `json:"rilasciata_il,omitempty" yaml:"rilasciata_il,omitempty"`
	Scadenza           string   `json:"scadenza,omitempty" yaml:"scadenza,omitempty"`
	Categorie          []string `json:"categorie,omitempty" yaml:"categorie,omitempty"`
	EnteRilascio       string   `json:"ente_rilascio,omitempty" yaml:"ente_rilascio,omitempty"`
}

// CertificateDetail is a structured management-system certificate from
// the model path (quality, environmental, or safety).
type CertificateDetail struct {
	Norma              string `json:"norma,omitempty" yaml:"norma,omitempty"`
	CertificatoNumero  string `json:"certificato_numero,omitempty" yaml:"certificato_numero,omitempty"`
	EmessoDa           string `json:"emesso_da,omitempty" yaml:"emesso_da,omitempty"`
	DataPrimaEmissione string `json:"data_prima_emissione,omitempty" yaml:"data_prima_emissione,omitempty"`
	Settore            string `json:"settore,omitempty" yaml:"settore,omitempty"`
	Descrizione        string `json:"descrizione,omitempty" yaml:"descrizione,omitempty"`
}

// EnvironmentalRegistration is an Albo Gestori Ambientali entry from the
// model path.
type EnvironmentalRegistration struct {
	Albo             string `json:"albo,omitempty" yaml:"albo,omitempty"`
	NumeroIscrizione string `json:"numero_iscrizione,omitempty" yaml:"numero_iscrizione,omitempty"`
	Sezione          string `json:"sezione,omitempty" yaml:"sezione,omitempty"`
	Categoria        string `json:"categoria,omitempty" yaml:"categoria,omitempty"`
	Scadenza         string `json:"scadenza,omitempty" yaml:"scadenza,omitempty"`
}

// TechnicalAuthorization is an installation-trade authorization
// (abilitazioni impiantistiche) from the model path.
type TechnicalAuthorization struct {
	Tipo                 string   `json:"tipo,omitempty" yaml:"tipo,omitempty"`
	RiferimentoNormativo string   `json:"riferimento_normativo,omitempty" yaml:"riferimento_normativo,omitempty"`
	Lettere              []string `json:"lettere,omitempty" yaml:"lettere,omitempty"`
}

// StructuredCertifications groups the model path's typed certification
// records.
type StructuredCertifications struct {
	SOAAttestations             []SOAAttestation            `json:"soa_attestations,omitempty" yaml:"soa_attestations,omitempty"`
	QualityCertifications       []CertificateDetail         `json:"quality_certifications,omitempty" yaml:"quality_certifications,omitempty"`
	EnvironmentalCertifications []CertificateDetail         `json:"environmental_certifications,omitempty" yaml:"environmental_certifications,omitempty"`
	SafetyCertifications        []CertificateDetail         `json:"safety_certifications,omitempty" yaml:"safety_certifications,omitempty"`
	EnvironmentalRegistrations  []EnvironmentalRegistration `json:"environmental_registrations,omitempty" yaml:"environmental_registrations,omitempty"`
	TechnicalAuthorizations     []TechnicalAuthorization    `json:"technical_authorizations,omitempty" yaml:"technical_authorizations,omitempty"`
}

// BusinessActivities describes what the company does, per the model path.
type BusinessActivities struct {
	PrimaryActivity     string   `json:"primary_activity,omitempty" yaml:"primary_activity,omitempty"`
	SecondaryActivities []string `json:"secondary_activities,omitempty" yaml:"secondary_activities,omitempty"`
	AtecoCodes          []string `json:"ateco_codes,omitempty" yaml:"ateco_codes,omitempty"`
	Specializations     []string `json:"specializations,omitempty" yaml:"specializations,omitempty"`
}

// FinancialData carries the financial figures the model located.
type FinancialData struct {
	ShareCapital string `json:"share_capital,omitempty" yaml:"share_capital,omitempty"`
	Employees    string `json:"employees,omitempty" yaml:"employees,omitempty"`
	Revenue      string `json:"revenue,omitempty" yaml:"revenue,omitempty"`
}

// DocumentAnalysis is the full structured payload returned by the model
// for one chamber document.
type DocumentAnalysis struct {
	Certifications     StructuredCertifications `json:"certifications" yaml:"certifications"`
	BusinessActivities *BusinessActivities      `json:"business_activities,omitempty" yaml:"business_activities,omitempty"`
	FinancialData      *FinancialData           `json:"financial_data,omitempty" yaml:"financial_data,omitempty"`
	AnalysisConfidence float64                  `json:"analysis_confidence,omitempty" yaml:"analysis_confidence,omitempty"`
	KeyInsights        []string                 `json:"key_insights,omitempty" yaml:"key_insights,omitempty"`
}
