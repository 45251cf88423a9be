// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"bytes"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

// MakePDF renders one page per entry of pages, each holding that text.
func MakePDF(t testing.TB, pages ...string) []byte {
	t.Helper()

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.SetFont("Helvetica", "", 12)
	for _, text := range pages {
		doc.AddPage()
		if text != "" {
			doc.Cell(40, 10, text)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	return buf.Bytes()
}
