package runner

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowcanvas/pkg/errors"
	"github.com/matzehuels/flowcanvas/pkg/workflow/export"
)

func sampleDoc() *export.Document {
	return &export.Document{
		Metadata: export.Metadata{Name: "test workflow"},
		Nodes: []export.Node{
			{ID: "n1", Type: "scraper", Name: "Web Scraper"},
		},
	}
}

func TestLogRunner_AcceptsEverySubmission(t *testing.T) {
	r := NewLogRunner(log.New(io.Discard))

	res, err := r.Run(context.Background(), sampleDoc())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Status != "accepted" {
		t.Errorf("Status = %q, want accepted", res.Status)
	}
	if res.ExecutionID == "" {
		t.Error("expected a generated execution id")
	}

	res2, _ := r.Run(context.Background(), sampleDoc())
	if res2.ExecutionID == res.ExecutionID {
		t.Error("execution ids should be unique per submission")
	}
}

func TestHTTPRunner_SubmitsDocument(t *testing.T) {
	var received export.Document
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		json.NewEncoder(w).Encode(Result{ExecutionID: "exec-1", Status: "accepted"})
	}))
	defer srv.Close()

	res, err := NewHTTPRunner(srv.URL).Run(context.Background(), sampleDoc())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ExecutionID != "exec-1" || res.Status != "accepted" {
		t.Errorf("result = %+v", res)
	}
	if received.Metadata.Name != "test workflow" {
		t.Errorf("backend received name %q", received.Metadata.Name)
	}
	if len(received.Nodes) != 1 || received.Nodes[0].Type != "scraper" {
		t.Errorf("backend received nodes %+v", received.Nodes)
	}
}

func TestHTTPRunner_RetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(Result{ExecutionID: "exec-2", Status: "accepted"})
	}))
	defer srv.Close()

	res, err := NewHTTPRunner(srv.URL).Run(context.Background(), sampleDoc())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if res.ExecutionID != "exec-2" {
		t.Errorf("ExecutionID = %q", res.ExecutionID)
	}
}

func TestHTTPRunner_ClientErrorIsNotRetried(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "malformed workflow", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewHTTPRunner(srv.URL).Run(context.Background(), sampleDoc())
	if err == nil {
		t.Fatal("expected an error for a 400 response")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}
