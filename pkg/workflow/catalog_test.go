package workflow

import (
	"strings"
	"testing"
)

const sampleCatalog = `
[[component]]
type = "scraper"
name = "Web Scraper"
category = "input"

[[component.output]]
name = "data"
kind = "data"

[component.defaults]
url = ""
method = "auto"
headless = true

[component.defaults.selectors]
title = "h1"

[[component]]
type = "sink"
name = "Sink"
category = "output"

[[component.input]]
name = "data"
kind = "any"
`

func TestParseCatalog(t *testing.T) {
	reg, err := ParseCatalog([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("Len = %d, want 2", reg.Len())
	}

	scraper, err := reg.Get("scraper")
	if err != nil {
		t.Fatalf("Get(scraper): %v", err)
	}
	if scraper.Name != "Web Scraper" || scraper.Category != "input" {
		t.Errorf("scraper = %+v", scraper)
	}
	if len(scraper.Outputs) != 1 || scraper.Outputs[0].Name != "data" {
		t.Errorf("outputs = %+v", scraper.Outputs)
	}

	if got := scraper.Defaults["method"]; got.Kind() != KindString || got.Text() != "auto" {
		t.Errorf("method = %+v", got)
	}
	if got := scraper.Defaults["headless"]; got.Kind() != KindBool || !got.Flag() {
		t.Errorf("headless = %+v", got)
	}
	sel := scraper.Defaults["selectors"]
	if sel.Kind() != KindStructured || sel.Object()["title"] != "h1" {
		t.Errorf("selectors = %+v", sel)
	}

	sink, err := reg.Get("sink")
	if err != nil {
		t.Fatalf("Get(sink): %v", err)
	}
	if len(sink.Inputs) != 1 || len(sink.Outputs) != 0 {
		t.Errorf("sink ports = %+v / %+v", sink.Inputs, sink.Outputs)
	}
}

func TestParseCatalog_RejectsUnsupportedDefault(t *testing.T) {
	catalog := `
[[component]]
type = "bad"
name = "Bad"

[component.defaults]
count = 42
`
	_, err := ParseCatalog([]byte(catalog))
	if err == nil {
		t.Fatal("expected error for integer default")
	}
	if !strings.Contains(err.Error(), "count") {
		t.Errorf("error does not name the key: %v", err)
	}
}

func TestParseCatalog_InvalidTOML(t *testing.T) {
	if _, err := ParseCatalog([]byte("[[component")); err == nil {
		t.Fatal("expected parse error")
	}
}
