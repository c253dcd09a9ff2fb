package http

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"society-console-backend/internal/domain"
	"society-console-backend/internal/fixtures"
	"society-console-backend/internal/repository/memory"
	"society-console-backend/internal/service"
	"society-console-backend/internal/storage"
	"society-console-backend/internal/upload"
	"society-console-backend/internal/validation"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := memory.NewStore(
		fixtures.Directory(),
		fixtures.Amenities(5),
		fixtures.Verification("society-1", 22, 10, 14, 18, 22),
	)
	docs, err := storage.NewLocalStore("http://localhost:8080", t.TempDir())
	require.NoError(t, err)
	v := validation.New()

	return NewRouter(RouterDependencies{
		Directory:      service.NewDirectoryService(store.EntryRepository, v),
		Amenities:      service.NewAmenityService(store.AmenityRepository, v),
		Verification:   service.NewVerificationService(store.VerificationRepository),
		Documents:      service.NewDocumentService(upload.NewValidator(upload.DefaultPolicy()), docs),
		Pagination:     Pagination{DefaultPageSize: 10, MaxPageSize: 100},
		MaxUploadBytes: upload.DefaultMaxSize,
	})
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestDirectoryList(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/directory?tab=member&status=INACTIVE&pageSize=5&page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[listResponse[json.RawMessage]](t, rec)
	assert.Equal(t, paginationResponse{Page: 2, PageSize: 5, TotalItems: 6, TotalPages: 2}, resp.Pagination)
	assert.Len(t, resp.Items, 1)
}

func TestDirectoryList_PageSizeCappedAndPageClamped(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/directory?pageSize=1000&page=99", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[listResponse[json.RawMessage]](t, rec)
	assert.Equal(t, 100, resp.Pagination.PageSize)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 43, resp.Pagination.TotalItems)
}

func TestDirectoryList_BadQuery(t *testing.T) {
	h := newTestRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/v1/directory?tab=alien", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/v1/directory?tab=member&committee=maybe", nil).Code)
}

func TestDirectoryCreate(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/directory", map[string]any{"type": "member", "name": "", "email": "x"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errResp := decode[errorResponse](t, rec)
	var fields []string
	for _, f := range errResp.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"name", "email"}, fields)

	rec = do(t, h, http.MethodPost, "/api/v1/directory", map[string]any{
		"type": "member", "name": "New Resident", "email": "new@society.test", "unit_number": "B-204",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	e := decode[domain.Entry](t, rec)
	assert.True(t, strings.HasPrefix(e.ID, "mem-"))

	rec = do(t, h, http.MethodGet, "/api/v1/directory/"+e.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/directory/mem-999", nil).Code)
}

func TestDirectoryCreate_UnknownFieldRejected(t *testing.T) {
	h := newTestRouter(t)
	rec := do(t, h, http.MethodPost, "/api/v1/directory", map[string]any{"type": "member", "colour": "blue"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDirectoryBulk(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/directory/bulk", bulkRequest{Action: "deactivate", IDs: []string{"mem-1", "ven-1"}})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[struct {
		Affected  []string `json:"affected"`
		Selection []string `json:"selection"`
	}](t, rec)
	assert.ElementsMatch(t, []string{"mem-1", "ven-1"}, res.Affected)
	assert.Empty(t, res.Selection)

	stats := decode[struct {
		Active int `json:"active"`
	}](t, do(t, h, http.MethodGet, "/api/v1/directory/stats", nil))
	assert.Equal(t, 43-6-2, stats.Active)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/v1/directory/bulk", bulkRequest{Action: "archive"}).Code)
}

func TestDirectoryExportCSV(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/directory/export?tab=vendor&format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="directory-vendor.csv"`)

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 9)
	assert.Equal(t, "ID", rows[0][0])

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/v1/directory/export?format=pdf", nil).Code)
}

func TestAmenityRoutes(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/amenities/amn-2/deactivate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	a := decode[domain.Amenity](t, rec)
	assert.Equal(t, domain.AvailabilityUnavailable, a.AvailabilityStatus)

	rec = do(t, h, http.MethodGet, "/api/v1/amenities?activeOnly=true&sort=capacity&dir=desc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[listResponse[domain.Amenity]](t, rec)
	require.Len(t, list.Items, 4)
	assert.Equal(t, "amn-5", list.Items[0].ID)

	form := map[string]any{"name": "Gym", "category": "FITNESS", "location": "Block A", "capacity": 20}
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPut, "/api/v1/amenities/amn-99", form).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPut, "/api/v1/amenities/amn-1", form).Code)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/api/v1/amenities/amn-1", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/api/v1/amenities/amn-1", nil).Code)

	rec = do(t, h, http.MethodGet, "/api/v1/amenities/export?format=excel", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
}

func TestVerificationRoutes(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/societies/society-1/verification/activate", activateRequest{Actor: "admin"})
	require.Equal(t, http.StatusConflict, rec.Code)
	refusal := decode[errorResponse](t, rec)
	assert.Equal(t, []string{"item-10", "item-14", "item-18", "item-22"}, refusal.Missing)

	rec = do(t, h, http.MethodPut, "/api/v1/societies/society-1/verification/items/item-10",
		itemUpdateRequest{Status: "bogus", Actor: "auditor"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, id := range []string{"item-10", "item-14", "item-18", "item-22"} {
		rec = do(t, h, http.MethodPut, "/api/v1/societies/society-1/verification/items/"+id,
			itemUpdateRequest{Status: "completed", Actor: "auditor"})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/api/v1/societies/society-1/verification/activate", activateRequest{Actor: "admin"})
	require.Equal(t, http.StatusOK, rec.Code)
	sv := decode[domain.SocietyVerification](t, rec)
	assert.True(t, sv.IsActivated)
	assert.Equal(t, 18, sv.Progress)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/societies/nowhere/verification", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/v1/societies/society-1/verification/activate", activateRequest{}).Code)
}

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := mw.CreateFormFile(uploadField, name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploads(t *testing.T) {
	h := newTestRouter(t)
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

	body, ct := multipartBody(t, map[string][]byte{"deed.png": png, "notes.txt": []byte("hello")})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/validate", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	screened := decode[upload.Result](t, rec)
	require.Len(t, screened.Accepted, 1)
	require.Len(t, screened.Rejected, 1)
	assert.Equal(t, upload.ReasonExtension, screened.Rejected[0].Reason)

	body, ct = multipartBody(t, map[string][]byte{"deed.png": png})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/uploads", body)
	req.Header.Set("Content-Type", ct)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	stored := decode[service.StoreResult](t, rec)
	require.Len(t, stored.Stored, 1)
	key := stored.Stored[0].Key

	rec = do(t, h, http.MethodGet, "/api/v1/uploads/"+key, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, png, rec.Body.Bytes())
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/uploads/"+key, nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/uploads/nothing-here.png", nil).Code)
}

func TestRequestIDEchoed(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))

	rec = do(t, h, http.MethodGet, "/healthz", nil)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/nothing", nil).Code)
}
