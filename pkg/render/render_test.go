package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/flowcanvas/pkg/workflow"
	"github.com/matzehuels/flowcanvas/pkg/workflow/export"
)

func previewDoc() *export.Document {
	return &export.Document{
		Metadata: export.Metadata{Name: "scrape and store"},
		Nodes: []export.Node{
			{ID: "n1", Type: "scraper", Name: "Web Scraper", Config: workflow.Config{
				"url": workflow.StringValue("https://example.com"),
			}},
			{ID: "n2", Type: "data_storage", Name: "Data Storage"},
		},
		Connections: []export.Connection{
			{
				ID:     "c1",
				Source: workflow.PortRef{NodeID: "n1", Port: "data"},
				Target: workflow.PortRef{NodeID: "n2", Port: "data"},
			},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(previewDoc(), Options{})

	for _, want := range []string{
		"digraph workflow {",
		`"n1" [label="Web Scraper"]`,
		`"n2" [label="Data Storage"]`,
		`"n1" -> "n2"`,
		"data → data",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(previewDoc(), Options{Detailed: true})

	if !strings.Contains(dot, "(scraper)") {
		t.Errorf("detailed label missing template type:\n%s", dot)
	}
	if !strings.Contains(dot, "config: url") {
		t.Errorf("detailed label missing config keys:\n%s", dot)
	}
}

func TestToDOT_EmptyDocument(t *testing.T) {
	dot := ToDOT(&export.Document{}, Options{})
	if !strings.Contains(dot, "digraph workflow {") || !strings.Contains(dot, "}") {
		t.Errorf("empty document should still be a valid digraph:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	svg := []byte(`<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" width="100pt" height="50pt" viewBox="4.00 8.00 120.00 60.00">
<g></g>
</svg>`)

	got := string(normalizeViewBox(svg))
	if !strings.Contains(got, `viewBox="0 0 120.00 60.00"`) {
		t.Errorf("viewBox not normalized: %s", got)
	}
	if !strings.Contains(got, `width="120" height="60"`) {
		t.Errorf("dimensions not rewritten: %s", got)
	}
}

func TestNormalizeViewBox_PassThrough(t *testing.T) {
	svg := []byte("<svg><g></g></svg>")
	if got := normalizeViewBox(svg); string(got) != string(svg) {
		t.Errorf("SVG without viewBox should pass through unchanged")
	}
}
