package http

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"

	"society-console-backend/internal/logger"
	"society-console-backend/internal/service"
	"society-console-backend/internal/storage"
	"society-console-backend/internal/upload"
)

const (
	uploadField      = "files"
	maxFilesPerBatch = 20
	sniffLen         = 3072
)

// UploadHandler screens and stores multipart document uploads.
type UploadHandler struct {
	documents service.DocumentService
	maxBytes  int64
}

func NewUploadHandler(documents service.DocumentService, maxFileBytes int64) *UploadHandler {
	if maxFileBytes <= 0 {
		maxFileBytes = upload.DefaultMaxSize
	}
	return &UploadHandler{documents: documents, maxBytes: maxFileBytes}
}

// Validate reports which files would be accepted without storing any.
func (h *UploadHandler) Validate(w http.ResponseWriter, r *http.Request) {
	files, err := h.readFiles(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()
	respondJSON(w, http.StatusOK, h.documents.Screen(r.Context(), files))
}

func (h *UploadHandler) Store(w http.ResponseWriter, r *http.Request) {
	files, err := h.readFiles(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()
	res, err := h.documents.Store(r.Context(), files)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	status := http.StatusCreated
	if len(res.Stored) == 0 {
		status = http.StatusOK
	}
	respondJSON(w, status, res)
}

// Download streams a stored document. The ETag is derived from the key,
// which never changes content.
func (h *UploadHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	etag := storage.ETag(key)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	file, err := h.documents.Open(r.Context(), key)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	defer file.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		writeServiceError(w, r, err)
		return
	}
	head = head[:n]

	w.Header().Set("Content-Type", mimetype.Detect(head).String())
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, io.MultiReader(bytes.NewReader(head), file)); err != nil {
		logger.WarnContext(r.Context(), "Document download interrupted", "key", key, "error", err)
	}
}

func (h *UploadHandler) readFiles(w http.ResponseWriter, r *http.Request) ([]service.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes*maxFilesPerBatch+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, errors.New("invalid multipart form: " + err.Error())
	}
	headers := r.MultipartForm.File[uploadField]
	if len(headers) == 0 {
		return nil, errors.New("no files in field " + uploadField)
	}
	if len(headers) > maxFilesPerBatch {
		return nil, errors.New("too many files in one request")
	}

	files := make([]service.Upload, 0, len(headers))
	for _, fh := range headers {
		files = append(files, service.Upload{
			Name: fh.Filename,
			Size: fh.Size,
			Open: openPart(fh),
		})
	}
	return files, nil
}

func openPart(fh *multipart.FileHeader) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) { return fh.Open() }
}

func RegisterUploadRoutes(router *mux.Router, h *UploadHandler) {
	router.HandleFunc("/uploads/validate", h.Validate).Methods(http.MethodPost)
	router.HandleFunc("/uploads", h.Store).Methods(http.MethodPost)
	router.HandleFunc("/uploads/{key}", h.Download).Methods(http.MethodGet)
}
