// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intelligence

import "github.com/emazzini/visura-engine/pkg/types"

// modelPayload mirrors the JSON shape the classification prompt asks the
// model for. Every field is optional; missing sections normalize to
// empty values.
type modelPayload struct {
	AllApplicableCategories []modelCategory `json:"all_applicable_categories"`

	TechnologyAnalysis struct {
		TechnologyStack []string `json:"technology_stack"`
		MarketVerticals []string `json:"market_verticals"`
	} `json:"comprehensive_technology_analysis"`

	BusinessIntelligence struct {
		BusinessModel string `json:"business_model"`
	} `json:"business_intelligence"`

	ConfidenceAnalysis struct {
		OverallConfidence float64 `json:"overall_confidence"`
	} `json:"confidence_analysis"`
}

type modelCategory struct {
	Category      string   `json:"category"`
	Confidence    float64  `json:"confidence"`
	Subcategories []string `json:"subcategories_found"`
	Keywords      []string `json:"evidence_keywords"`
	Evidence      []string `json:"text_evidence"`
}

// normalize converts the model payload into the shared classification
// shape so downstream stages cannot tell the two paths apart. Category
// order is kept as the model returned it.
func (p *modelPayload) normalize() *types.Classification {
	c := &types.Classification{
		OverallConfidence: p.ConfidenceAnalysis.OverallConfidence,
		BusinessFocus:     p.BusinessIntelligence.BusinessModel,
		MarketSegments:    capStrings(p.TechnologyAnalysis.MarketVerticals, 8),
	}

	for _, cat := range p.AllApplicableCategories {
		score := types.CategoryScore{
			Category:   cat.Category,
			Confidence: cat.Confidence,
			Keywords:   capStrings(cat.Keywords, 5),
			Evidence:   capStrings(cat.Evidence, 3),
		}
		for _, sub := range cat.Subcategories {
			// The model reports a subcategory at most once, so a hit is a
			// single match carrying the category's confidence.
			score.Subcategories = append(score.Subcategories, types.SubcategoryMatch{
				Name:       sub,
				Matches:    1,
				Confidence: cat.Confidence,
			})
		}
		c.Categories = append(c.Categories, score)

		for _, kw := range cat.Keywords {
			if len(c.MatchedKeywords) >= 20 {
				break
			}
			if !containsString(c.MatchedKeywords, kw) {
				c.MatchedKeywords = append(c.MatchedKeywords, kw)
			}
		}
	}

	stack := p.TechnologyAnalysis.TechnologyStack
	c.TechnologyStack = types.TechnologyStack{
		Simple:            capStrings(stack, 15),
		TotalTechnologies: len(stack),
	}
	return c
}

func capStrings(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
