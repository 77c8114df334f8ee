// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emazzini/visura-engine/internal/textutil"
	"github.com/emazzini/visura-engine/pkg/types"
)

// Scoring weights. A category name hit is worth more than a single
// subcategory mention; repeated subcategory mentions accumulate.
const (
	categoryNameScore  = 15
	subcategoryScore   = 8
	keyTermScore       = 3
	categoryScoreScale = 40.0
	listingFloor       = 0.08
)

type scoredCategory struct {
	name          string
	score         int
	keywords      []string
	subcategories []types.SubcategoryMatch
	evidence      []string
}

// Classify scores content against the taxonomy and assembles the full
// deterministic classification. Matching is lowercased substring search
// throughout; the taxonomy's own wording is the vocabulary.
func Classify(content string, taxonomy types.Taxonomy) *types.Classification {
	lower := strings.ToLower(content)

	scored := scoreCategories(lower, taxonomy)

	cls := &types.Classification{
		BusinessFocus:   DetectBusinessFocus(lower),
		TechnologyStack: DetectTechnologyStack(lower),
		MarketSegments:  DetectMarketSegments(lower),
	}

	if len(scored) == 0 {
		return cls
	}

	// Highest raw score first; names break ties so output is stable.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].name < scored[j].name
	})

	for _, sc := range scored {
		confidence := confidenceFor(sc.score)
		if confidence < listingFloor {
			continue
		}
		cls.Categories = append(cls.Categories, types.CategoryScore{
			Category:      sc.name,
			Confidence:    confidence,
			Subcategories: sc.subcategories,
			Keywords:      capStrings(sc.keywords, 5),
			Evidence:      capStrings(sc.evidence, 3),
		})
	}

	cls.OverallConfidence = confidenceFor(scored[0].score)

	var all []string
	for _, sc := range scored {
		all = append(all, sc.keywords...)
	}
	cls.MatchedKeywords = capStrings(textutil.Dedup(all), 20)

	return cls
}

func scoreCategories(lower string, taxonomy types.Taxonomy) []scoredCategory {
	names := make([]string, 0, len(taxonomy))
	for name := range taxonomy {
		names = append(names, name)
	}
	sort.Strings(names)

	var scored []scoredCategory
	for _, category := range names {
		sc := scoredCategory{name: category}

		if strings.Contains(lower, strings.ToLower(category)) {
			sc.score += categoryNameScore
			sc.keywords = append(sc.keywords, category)
			sc.evidence = append(sc.evidence, fmt.Sprintf("Category name '%s' found", category))
		}

		for _, sub := range taxonomy[category] {
			subLower := strings.ToLower(sub)

			if count := strings.Count(lower, subLower); count > 0 {
				sc.score += count * subcategoryScore
				sc.keywords = append(sc.keywords, sub)
				sc.subcategories = append(sc.subcategories, types.SubcategoryMatch{
					Name:       sub,
					Matches:    count,
					Confidence: saturate(float64(count) * 0.25),
				})
				sc.evidence = append(sc.evidence, fmt.Sprintf("'%s' mentioned %d times", sub, count))
			}

			for _, term := range textutil.KeyTerms(subLower) {
				if strings.Contains(lower, term) {
					sc.score += keyTermScore
					if !containsString(sc.keywords, term) {
						sc.keywords = append(sc.keywords, term)
					}
				}
			}
		}

		if sc.score > 0 {
			scored = append(scored, sc)
		}
	}
	return scored
}

func confidenceFor(score int) float64 {
	return saturate(float64(score) / categoryScoreScale)
}

func saturate(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	return v
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
