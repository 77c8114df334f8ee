// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Taxonomy maps an industry category name to its subcategory labels.
// Loaded once from a static JSON file and treated as an immutable
// snapshot for the duration of a run.
type Taxonomy map[string][]string

// SubcategoryMatch records one subcategory label found verbatim in the
// analyzed text.
type SubcategoryMatch struct {
	// Name is the subcategory label as it appears in the taxonomy.
	Name string `json:"name" yaml:"name"`

	// Matches is the number of verbatim occurrences.
	Matches int `json:"matches" yaml:"matches"`

	// Confidence saturates at 1.0 after four occurrences.
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// CategoryScore is one qualifying taxonomy category for a document,
// ordered by descending raw score in Classification.Categories.
type CategoryScore struct {
	Category   string  `json:"category" yaml:"category"`
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Subcategories lists the verbatim subcategory hits.
	Subcategories []SubcategoryMatch `json:"subcategories" yaml:"subcategories"`

	// Keywords holds up to five matched keywords as evidence.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Evidence holds up to three human-readable evidence notes.
	Evidence []string `json:"evidence,omitempty" yaml:"evidence,omitempty"`
}

// TechnologyMatch is one detected technology with its dictionary category.
type TechnologyMatch struct {
	Technology string  `json:"technology" yaml:"technology"`
	Category   string  `json:"category" yaml:"category"`
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Keywords lists up to three aliases that matched.
	Keywords []string `json:"keywords_found,omitempty" yaml:"keywords_found,omitempty"`

	// Mentions is the truncated raw score (alias length weighted).
	Mentions int `json:"mentions" yaml:"mentions"`
}

// TechnologyStack is the ranked technology detection output.
type TechnologyStack struct {
	// Detailed holds up to 25 technologies sorted by descending score.
	Detailed []TechnologyMatch `json:"detailed_stack" yaml:"detailed_stack"`

	// Simple holds the top 15 technology names for compatibility callers.
	Simple []string `json:"simple_list" yaml:"simple_list"`

	TotalTechnologies int `json:"total_technologies" yaml:"total_technologies"`
	CategoriesCovered int `json:"categories_covered" yaml:"categories_covered"`
}

// Classification is the per-document classifier output, from either the
// deterministic path or the model path normalized into the same shape.
type Classification struct {
	// Categories is sorted by descending raw score; only categories with
	// confidence >= 0.08 appear.
	Categories []CategoryScore `json:"categories" yaml:"categories"`

	// OverallConfidence is the top-scoring category's confidence, not an
	// average. It can be nonzero even when no category cleared the
	// listing floor; zero means nothing scored at all.
	OverallConfidence float64 `json:"overall_confidence" yaml:"overall_confidence"`

	// MatchedKeywords aggregates keywords across categories, first-seen
	// order, capped at 20.
	MatchedKeywords []string `json:"matched_keywords,omitempty" yaml:"matched_keywords,omitempty"`

	// BusinessFocus is a short declared-focus sentence, when detected.
	BusinessFocus string `json:"business_focus,omitempty" yaml:"business_focus,omitempty"`

	TechnologyStack TechnologyStack `json:"technology_stack" yaml:"technology_stack"`

	// MarketSegments lists detected vertical labels, capped at 8.
	MarketSegments []string `json:"market_segments,omitempty" yaml:"market_segments,omitempty"`
}

// PrimaryCategory returns the top-ranked category name, or "".
func (c *Classification) PrimaryCategory() string {
	if len(c.Categories) == 0 {
		return ""
	}
	return c.Categories[0].Category
}

// SecondaryCategories returns up to five category names after the primary.
func (c *Classification) SecondaryCategories() []string {
	if len(c.Categories) < 2 {
		return nil
	}
	rest := c.Categories[1:]
	if len(rest) > 5 {
		rest = rest[:5]
	}
	names := make([]string, 0, len(rest))
	for _, cat := range rest {
		names = append(names, cat.Category)
	}
	return names
}
