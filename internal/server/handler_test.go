package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditsense/auditsense/internal/dashboard"
	"github.com/auditsense/auditsense/internal/extract"
	"github.com/auditsense/auditsense/internal/pdftext"
)

func newTestAPI(t *testing.T) (*WebAPI, *dashboard.Store) {
	t.Helper()

	logger := zerolog.Nop()
	store := dashboard.NewStore()

	api := NewWebAPI(logger, Config{
		Addr:          "127.0.0.1:0",
		ServerName:    "auditsense",
		UploadsDir:    t.TempDir(),
		MaxUploadSize: 10 * 1024 * 1024,
		Dependencies: Dependencies{
			Extractor: extract.NewService(logger),
			Store:     store,
			Validator: pdftext.NewValidator(10 * 1024 * 1024),
		},
	})
	return api, store
}

func multipartUpload(t *testing.T, fileName string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	return &body, writer.FormDataContentType()
}

func TestUpload_MissingFile(t *testing.T) {
	api, _ := newTestAPI(t)

	body, contentType := multipartUpload(t, "", nil, map[string]string{"notes": "no file attached"})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	api.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "No file uploaded", resp["error"])
}

func TestUpload_OversizedBody(t *testing.T) {
	logger := zerolog.Nop()
	store := dashboard.NewStore()
	api := NewWebAPI(logger, Config{
		Addr:          "127.0.0.1:0",
		UploadsDir:    t.TempDir(),
		MaxUploadSize: 512,
		Dependencies: Dependencies{
			Extractor: extract.NewService(logger),
			Store:     store,
			Validator: pdftext.NewValidator(512),
		},
	})

	body, contentType := multipartUpload(t, "huge-audit.pdf", bytes.Repeat([]byte("x"), 4096), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	api.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "File too large", resp["error"])
	assert.Zero(t, store.Snapshot().TotalAudits)
}

func TestUpload_RejectsNonPDFName(t *testing.T) {
	api, store := newTestAPI(t)

	body, contentType := multipartUpload(t, "report.txt", []byte("plain text"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	api.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, store.Snapshot().TotalAudits)
}

func TestUpload_MalformedPDFStillSucceeds(t *testing.T) {
	api, store := newTestAPI(t)

	// Garbage bytes with a .pdf name: extraction degrades to the stub
	// report instead of failing the upload.
	body, contentType := multipartUpload(t, "acme-audit.pdf", []byte("not really a PDF"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	api.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp uploadResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.ExtractedData)
	assert.Equal(t, "acme-audit", resp.ExtractedData.OrganizationName)
	assert.Equal(t, 1, resp.DashboardData.TotalAudits)

	assert.Equal(t, 1, store.Snapshot().TotalAudits)
}

func TestUpload_OverridesApplied(t *testing.T) {
	api, _ := newTestAPI(t)

	body, contentType := multipartUpload(t, "acme-audit.pdf", []byte("garbage"), map[string]string{
		"implementationStatus": "implemented",
		"region":               "Cork",
		"grantAmount":          "2500",
		"auditorName":          "J. Murphy",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	api.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp uploadResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, extract.StatusImplemented, resp.ExtractedData.ImplementationStatus)
	assert.Equal(t, "Cork", resp.ExtractedData.Region)
	assert.Equal(t, 2500.0, resp.ExtractedData.GrantAmount)
	assert.Equal(t, "J. Murphy", resp.ExtractedData.AuditorName)
	assert.Equal(t, 100, resp.DashboardData.AuditConversion)
}

func TestDashboardEndpoint(t *testing.T) {
	api, store := newTestAPI(t)
	dashboard.SeedDemoData(store)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()

	api.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var state dashboard.State
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	assert.Equal(t, 2, state.TotalAudits)
	assert.Equal(t, state.ApplicationStatus.Total, len(state.Reports))
}

func TestReportsEndpoint(t *testing.T) {
	api, store := newTestAPI(t)
	dashboard.SeedDemoData(store)

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	rec := httptest.NewRecorder()

	api.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var reports []dashboard.ReportEntry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reports))
	require.Len(t, reports, 2)
	assert.Equal(t, "demo-greenfield-audit.pdf", reports[0].FileName)
}

func TestHealthEndpoint(t *testing.T) {
	api, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	api.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "auditsense", resp["server"])
}
