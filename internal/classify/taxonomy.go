// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify scores website content against an industry taxonomy
// and detects technology, market segment, and business focus signals.
// All scoring here is deterministic; the model-backed path lives in the
// intelligence stage and falls back to this package.
// Implements: docs/ARCHITECTURE § Classification.
package classify

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/emazzini/visura-engine/pkg/types"
)

// LoadTaxonomy reads a category → subcategories JSON file.
func LoadTaxonomy(path string) (types.Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy %s: %w", path, err)
	}
	var tax types.Taxonomy
	if err := json.Unmarshal(data, &tax); err != nil {
		return nil, fmt.Errorf("parsing taxonomy %s: %w", path, err)
	}
	return tax, nil
}
