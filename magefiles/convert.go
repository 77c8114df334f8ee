//go:build mage

package main

import "fmt"

// Convert transforms acquired PDFs into structured Markdown.
// See prd002-conversion for full requirements.
func Convert() error {
	fmt.Println("[convert] Transform PDFs into structured Markdown with section headings and page markers.")
	fmt.Println("[convert] Not yet implemented.")
	return nil
}
