//go:build mage

package main

import "fmt"

// Download acquires papers from arXiv, DOI, or direct URL.
// See prd001-acquisition for full requirements.
func Download() error {
	fmt.Println("[acquire] Download papers from arXiv IDs, DOIs, or PDF URLs.")
	fmt.Println("[acquire] Not yet implemented.")
	return nil
}
