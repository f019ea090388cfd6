// Package runner submits exported workflow documents for execution.
//
// The editor itself never executes components. When the user triggers a
// run, the canvas is exported and handed to a [Runner]: either the
// [HTTPRunner], which posts the document to a backend execution endpoint,
// or the [LogRunner], which records the submission locally when no
// backend is configured.
package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/flowcanvas/pkg/errors"
	"github.com/matzehuels/flowcanvas/pkg/httputil"
	"github.com/matzehuels/flowcanvas/pkg/workflow/export"
)

// Result describes the backend's acknowledgement of a submitted workflow.
type Result struct {
	ExecutionID string `json:"execution_id"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
}

// Runner accepts an exported workflow document for execution.
type Runner interface {
	Run(ctx context.Context, doc *export.Document) (*Result, error)
}

// LogRunner accepts every submission and logs it. It stands in for a real
// executor during offline editing sessions.
type LogRunner struct {
	logger *log.Logger
}

// NewLogRunner creates a runner that logs submissions to the given logger.
func NewLogRunner(logger *log.Logger) *LogRunner {
	return &LogRunner{logger: logger}
}

// Run logs the document summary and reports the submission as accepted.
func (r *LogRunner) Run(ctx context.Context, doc *export.Document) (*Result, error) {
	id := uuid.NewString()
	r.logger.Info("workflow submitted",
		"execution_id", id,
		"name", doc.Metadata.Name,
		"nodes", len(doc.Nodes),
		"connections", len(doc.Connections))
	return &Result{ExecutionID: id, Status: "accepted"}, nil
}

// HTTPRunner posts exported documents to a backend execution endpoint.
// Transient failures (network errors, 5xx responses) are retried with
// exponential backoff before the submission is reported as failed.
type HTTPRunner struct {
	url    string
	client *http.Client
}

// NewHTTPRunner creates a runner targeting the given execution URL,
// e.g. "http://localhost:8000/api/workflows/execute".
func NewHTTPRunner(url string) *HTTPRunner {
	return &HTTPRunner{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Run submits the document and decodes the backend's acknowledgement.
func (r *HTTPRunner) Run(ctx context.Context, doc *export.Document) (*Result, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "encoding workflow")
	}

	var result Result
	err = httputil.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := r.client.Do(req)
		if err != nil {
			return &httputil.RetryableError{Err: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return &httputil.RetryableError{Err: fmt.Errorf("executor returned status %d", resp.StatusCode)}
		}
		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return errors.New(errors.ErrCodeInvalidInput, "executor rejected workflow: %s", bytes.TrimSpace(body))
		}
		return json.NewDecoder(resp.Body).Decode(&result)
	})
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "submitting workflow to %s", r.url)
	}
	return &result, nil
}

var (
	_ Runner = (*LogRunner)(nil)
	_ Runner = (*HTTPRunner)(nil)
)
