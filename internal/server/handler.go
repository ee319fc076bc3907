package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/auditsense/auditsense/internal/dashboard"
	"github.com/auditsense/auditsense/internal/extract"
	"github.com/auditsense/auditsense/internal/pdftext"
)

// Handler serves the upload and dashboard endpoints. It is a thin wrapper:
// all extraction and aggregation semantics live in the extract and dashboard
// packages.
type Handler struct {
	extractor  *extract.Service
	store      *dashboard.Store
	validator  *pdftext.Validator
	serverName string
	uploadsDir string
	maxUpload  int64
}

// NewHandler creates a handler backed by the given pipeline components.
func NewHandler(extractor *extract.Service, store *dashboard.Store, validator *pdftext.Validator,
	serverName, uploadsDir string, maxUpload int64,
) *Handler {
	return &Handler{
		extractor:  extractor,
		store:      store,
		validator:  validator,
		serverName: serverName,
		uploadsDir: uploadsDir,
		maxUpload:  maxUpload,
	}
}

// uploadResponse is the payload returned for a successful upload.
type uploadResponse struct {
	Success       bool            `json:"success"`
	ExtractedData *extract.Report `json:"extractedData"`
	DashboardData dashboard.State `json:"dashboardData"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Upload accepts one multipart PDF upload, runs it through the extraction
// pipeline and folds the result into the dashboard. Only a missing file or
// a non-PDF name is rejected; a malformed document still succeeds with
// near-empty data.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "File too large"}, logger)
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No file uploaded"}, logger)
		return
	}
	defer file.Close()

	fileName := filepath.Base(header.Filename)
	if !strings.HasSuffix(strings.ToLower(fileName), ".pdf") {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Only PDF files are allowed"}, logger)
		return
	}

	storedPath, err := h.storeUpload(file, fileName)
	if err != nil {
		logger.Error().Err(err).Str("file", fileName).Msg("failed to store upload")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"}, logger)
		return
	}

	if err := h.validator.CheckFile(storedPath); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Only PDF files are allowed"}, logger)
		return
	}
	// Content validation is advisory: a corrupt document still goes through
	// the pipeline, which degrades to a stub report.
	if err := h.validator.CheckContent(storedPath); err != nil {
		logger.Warn().Err(err).Str("file", fileName).Msg("uploaded file is not a well-formed PDF")
	}

	report := h.extractor.Extract(storedPath, fileName, parseOverrides(r))
	state := h.store.Absorb(report, fileName)

	logger.Info().
		Str("file", fileName).
		Str("organization", report.OrganizationName).
		Float64("cost_savings", report.TotalCostSavings).
		Msg("audit report ingested")

	writeJSON(w, http.StatusOK, uploadResponse{
		Success:       true,
		ExtractedData: report,
		DashboardData: state,
	}, logger)
}

// Dashboard returns the full dashboard snapshot.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	writeJSON(w, http.StatusOK, h.store.Snapshot(), logger)
}

// Reports returns the accumulated report entries.
func (h *Handler) Reports(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	writeJSON(w, http.StatusOK, h.store.Reports(), logger)
}

// Health is a liveness endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"server": h.serverName,
	}, logger)
}

// storeUpload writes the uploaded bytes under the uploads directory with a
// unique name. Uploaded files are retained indefinitely.
func (h *Handler) storeUpload(file io.Reader, fileName string) (string, error) {
	storedPath := filepath.Join(h.uploadsDir, uuid.NewString()+"-"+fileName)

	dst, err := os.Create(storedPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return storedPath, nil
}

// parseOverrides reads the optional caller-supplied form fields.
func parseOverrides(r *http.Request) extract.Overrides {
	overrides := extract.Overrides{
		AuditorName:          r.FormValue("auditorName"),
		BuildingType:         r.FormValue("buildingType"),
		Notes:                r.FormValue("notes"),
		ImplementationStatus: r.FormValue("implementationStatus"),
		Region:               r.FormValue("region"),
		Industry:             r.FormValue("industry"),
	}
	if raw := r.FormValue("grantAmount"); raw != "" {
		if amount, err := strconv.ParseFloat(raw, 64); err == nil {
			overrides.GrantAmount = &amount
		}
	}
	return overrides
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
