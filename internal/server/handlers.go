package server

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/flowcanvas/pkg/datalist"
	"github.com/matzehuels/flowcanvas/pkg/errors"
	"github.com/matzehuels/flowcanvas/pkg/workflow"
	"github.com/matzehuels/flowcanvas/pkg/workflow/export"
)

// modelsCacheTTL bounds how long the model listing is served from cache.
const modelsCacheTTL = 10 * time.Minute

// componentInfo is the wire shape of a palette entry.
type componentInfo struct {
	Type     string              `json:"type"`
	Name     string              `json:"name"`
	Category string              `json:"category"`
	Inputs   []workflow.PortSpec `json:"inputs"`
	Outputs  []workflow.PortSpec `json:"outputs"`
	Defaults workflow.Config     `json:"defaults"`
}

func (s *Server) handleComponents(w http.ResponseWriter, r *http.Request) {
	templates := s.registry.List()
	out := make([]componentInfo, len(templates))
	for i, t := range templates {
		out[i] = componentInfo{
			Type:     t.Type,
			Name:     t.Name,
			Category: t.Category,
			Inputs:   t.Inputs,
			Outputs:  t.Outputs,
			Defaults: t.Defaults,
		}
	}
	respond(w, http.StatusOK, out)
}

type executeResponse struct {
	ExecutionID string `json:"execution_id"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
}

// handleExecute validates a submitted workflow document and acknowledges
// it. Actual execution is out of scope for the dev backend; the handler
// logs the submission so editing sessions can be traced end to end.
func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var doc export.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		respondError(w, http.StatusBadRequest, "invalid workflow document: "+err.Error())
		return
	}
	if len(doc.Nodes) == 0 {
		respondError(w, http.StatusBadRequest, "workflow has no nodes")
		return
	}

	id := uuid.NewString()
	s.logger.Info("workflow accepted",
		"execution_id", id,
		"name", doc.Metadata.Name,
		"nodes", len(doc.Nodes),
		"connections", len(doc.Connections))

	respond(w, http.StatusOK, executeResponse{
		ExecutionID: id,
		Status:      "accepted",
		Message:     "workflow queued for execution",
	})
}

type emailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	DryRun  bool   `json:"dry_run"`
}

type emailResponse struct {
	Status    string `json:"status"`
	MessageID string `json:"message_id,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// handleSendEmail validates the request and logs it. The dev backend
// never talks to a real provider.
func (s *Server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if _, err := mail.ParseAddress(req.To); err != nil {
		respondError(w, http.StatusBadRequest, "invalid recipient address")
		return
	}
	if strings.TrimSpace(req.Subject) == "" {
		respondError(w, http.StatusBadRequest, "subject is required")
		return
	}

	s.logger.Info("email queued", "to", req.To, "subject", req.Subject, "dry_run", req.DryRun)
	respond(w, http.StatusOK, emailResponse{
		Status:    "queued",
		MessageID: uuid.NewString(),
	})
}

// modelInfo mirrors the panels client's model shape.
type modelInfo struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Size     string `json:"size,omitempty"`
}

// handleModels serves the static model listing of the dev backend,
// exercising the cache the way a deployed backend would for a slow
// model discovery call.
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	const key = "server:models"

	if data, ok, _ := s.cache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	models := []modelInfo{
		{Name: "llama3", Provider: "ollama", Size: "8b"},
		{Name: "mistral", Provider: "ollama", Size: "7b"},
	}
	data, err := json.Marshal(models)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	_ = s.cache.Set(r.Context(), key, data, modelsCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

type createListRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleListAll(w http.ResponseWriter, r *http.Request) {
	lists, err := s.lists.All(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respond(w, http.StatusOK, lists)
}

func (s *Server) handleListCreate(w http.ResponseWriter, r *http.Request) {
	var req createListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "list name is required")
		return
	}

	l, err := s.lists.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respond(w, http.StatusCreated, l)
}

func (s *Server) handleListGet(w http.ResponseWriter, r *http.Request) {
	l, err := s.lists.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respond(w, http.StatusOK, l)
}

func (s *Server) handleListDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.lists.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addItemRequest struct {
	Data map[string]any `json:"data"`
}

func (s *Server) handleItemAdd(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	item, err := s.lists.AddItem(r.Context(), chi.URLParam(r, "id"), req.Data)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respond(w, http.StatusCreated, item)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	matches, err := s.lists.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if matches == nil {
		matches = []datalist.Match{}
	}
	respond(w, http.StatusOK, matches)
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respond(w, status, map[string]string{"detail": detail})
}

// respondStoreError maps structured store errors to HTTP statuses.
func respondStoreError(w http.ResponseWriter, err error) {
	switch errors.GetCode(err) {
	case errors.ErrCodeListNotFound, errors.ErrCodeNotFound:
		respondError(w, http.StatusNotFound, errors.UserMessage(err))
	case errors.ErrCodeInvalidInput:
		respondError(w, http.StatusBadRequest, errors.UserMessage(err))
	default:
		respondError(w, http.StatusInternalServerError, errors.UserMessage(err))
	}
}
