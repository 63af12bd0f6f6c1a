package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/seojinpark/nabi/internal/assistant"
	"github.com/seojinpark/nabi/internal/history"
)

// Handler holds API route handlers.
type Handler struct {
	svc *assistant.Service
	log history.CommandLog
}

// NewHandler creates a new Handler. log may be nil when the command log is
// disabled.
func NewHandler(svc *assistant.Service, log history.CommandLog) *Handler {
	return &Handler{svc: svc, log: log}
}

// ProcessCommand handles POST /api/command.
func (h *Handler) ProcessCommand(w http.ResponseWriter, r *http.Request) {
	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if req.Command == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("명령이 제공되지 않았습니다."))
		return
	}
	result := h.svc.ProcessCommand(r.Context(), req.Command)
	writeJSON(w, http.StatusOK, CommandResponse{Result: result})
}

// GetDatabases handles GET /api/databases.
func (h *Handler) GetDatabases(w http.ResponseWriter, r *http.Request) {
	result := h.svc.Dispatch(r.Context(), assistant.ActionDescriptor{
		Action: assistant.ActionGetDatabases,
	})
	writeJSON(w, http.StatusOK, CommandResponse{Result: result})
}

// SaveSummary handles POST /api/summary.
func (h *Handler) SaveSummary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("내용이 제공되지 않았습니다."))
		return
	}
	result := h.svc.SaveSummary(r.Context(), req.Title, req.Content)
	writeJSON(w, http.StatusOK, CommandResponse{Result: result})
}

// DeletePage handles DELETE /api/pages/{name}.
func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("페이지 이름이 제공되지 않았습니다."))
		return
	}
	result := h.svc.DeletePage(r.Context(), name)
	writeJSON(w, http.StatusOK, CommandResponse{Result: result})
}

// History handles GET /api/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	if h.log == nil {
		writeJSON(w, http.StatusOK, HistoryResponse{Entries: []history.Entry{}})
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	entries, err := h.log.Recent(limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Entries: entries})
}
