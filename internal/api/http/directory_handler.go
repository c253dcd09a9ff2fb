package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"society-console-backend/internal/domain"
	"society-console-backend/internal/engine"
	"society-console-backend/internal/export"
	"society-console-backend/internal/service"
	"society-console-backend/internal/validation"
)

type DirectoryHandler struct {
	service    service.DirectoryService
	pagination Pagination
}

func NewDirectoryHandler(svc service.DirectoryService, p Pagination) *DirectoryHandler {
	return &DirectoryHandler{service: svc, pagination: p}
}

type bulkRequest struct {
	Action string   `json:"action"`
	IDs    []string `json:"ids"`
}

func (h *DirectoryHandler) List(w http.ResponseWriter, r *http.Request) {
	view, err := h.pagination.directoryView(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := h.service.List(r.Context(), view)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newListResponse(page))
}

func (h *DirectoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *DirectoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, e)
}

func (h *DirectoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form validation.EntryForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	form.Type = domain.EntryType(strings.ToUpper(string(form.Type)))
	e, err := h.service.Create(r.Context(), form)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, e)
}

func (h *DirectoryHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	action, err := engine.ParseBulkAction(req.Action)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.service.Bulk(r.Context(), action, req.IDs)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// Export writes the filtered, sorted directory without paginating.
func (h *DirectoryHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := export.ParseFormat(q.Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := h.pagination.directoryView(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entries, err := h.service.Filtered(r.Context(), view)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	name := "directory"
	if view.Filter.Tab != "" {
		name += "-" + strings.ToLower(string(view.Filter.Tab))
	}
	writeExport(w, r, format, name, export.EntryTable(entries))
}

func writeExport(w http.ResponseWriter, r *http.Request, format export.Format, name string, t export.Table) {
	var buf bytes.Buffer
	if err := export.Write(&buf, format, name, t); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+format.Extension()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func RegisterDirectoryRoutes(router *mux.Router, h *DirectoryHandler) {
	router.HandleFunc("/directory", h.List).Methods(http.MethodGet)
	router.HandleFunc("/directory", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/directory/stats", h.Stats).Methods(http.MethodGet)
	router.HandleFunc("/directory/export", h.Export).Methods(http.MethodGet)
	router.HandleFunc("/directory/bulk", h.Bulk).Methods(http.MethodPost)
	router.HandleFunc("/directory/{id}", h.Get).Methods(http.MethodGet)
}
