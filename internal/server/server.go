// Package server exposes the statement pipeline over HTTP: upload a
// statement, get back a job id, download the generated workbook.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"banktocfo/cfopack/internal/categorizer"
	"banktocfo/cfopack/internal/config"
	"banktocfo/cfopack/internal/models"
	"banktocfo/cfopack/internal/parser"
	"banktocfo/cfopack/internal/parsererror"
	"banktocfo/cfopack/internal/report"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var log = config.Logger

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

const (
	// maxUploadBytes caps statement uploads. Bank statements are small;
	// anything bigger is not a statement.
	maxUploadBytes = 32 << 20

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Server wires the parsing, categorization and reporting stages behind the
// HTTP API.
type Server struct {
	router      *parser.Router
	categorizer *categorizer.Categorizer
	generator   *report.WorkbookGenerator
	uploadDir   string
	outputDir   string
}

// New creates a server. The upload and output directories are created on
// first use.
func New(router *parser.Router, cat *categorizer.Categorizer, uploadDir, outputDir string) *Server {
	return &Server{
		router:      router,
		categorizer: cat,
		generator:   report.NewWorkbookGenerator(),
		uploadDir:   uploadDir,
		outputDir:   outputDir,
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHealth)
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("GET /download/{job_id}", s.handleDownload)
	mux.HandleFunc("GET /status/{job_id}", s.handleStatus)
	return mux
}

// ListenAndServe runs the server on addr until it fails.
func (s *Server) ListenAndServe(addr string) error {
	server := http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.WithField("addr", addr).Info("HTTP server listening")
	return server.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "online",
		"service": "cfopack",
	})
}

// uploadResponse is what a successful POST /upload returns.
type uploadResponse struct {
	JobID            string `json:"job_id"`
	Status           string `json:"status"`
	TransactionCount int    `json:"transaction_count"`
	DownloadURL      string `json:"download_url"`
	Filename         string `json:"filename"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing multipart field 'file'")
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close upload")
		}
	}()

	jobID := uuid.New().String()
	logger := log.WithFields(logrus.Fields{
		"job_id": jobID,
		"file":   header.Filename,
	})
	logger.Info("Statement upload received")

	p, err := s.router.ForFile(header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Only PDF and CSV files are supported")
		return
	}

	uploadPath, err := s.saveUpload(jobID, header.Filename, file)
	if err != nil {
		logger.WithError(err).Error("Failed to save upload")
		writeError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	defer func() {
		if err := os.Remove(uploadPath); err != nil {
			logger.WithError(err).Warn("Failed to remove upload")
		}
	}()

	transactions, err := s.process(r, p, uploadPath, header.Filename)
	if err != nil {
		logger.WithError(err).Warn("Statement processing failed")
		writeError(w, statusForError(err), err.Error())
		return
	}

	outputPath := s.outputPath(jobID)
	if err := os.MkdirAll(s.outputDir, 0750); err != nil {
		logger.WithError(err).Error("Failed to create output directory")
		writeError(w, http.StatusInternalServerError, "failed to write workbook")
		return
	}
	if err := s.generator.Generate(transactions, outputPath); err != nil {
		logger.WithError(err).Error("Workbook generation failed")
		writeError(w, http.StatusInternalServerError, "failed to generate workbook")
		return
	}

	logger.WithField("count", len(transactions)).Info("CFO pack generated")
	writeJSON(w, http.StatusOK, uploadResponse{
		JobID:            jobID,
		Status:           "completed",
		TransactionCount: len(transactions),
		DownloadURL:      "/download/" + jobID,
		Filename:         downloadName(),
	})
}

// process parses the saved upload and categorizes the result.
func (s *Server) process(r *http.Request, p parser.StatementParser, uploadPath, fileName string) ([]models.Transaction, error) {
	f, err := os.Open(uploadPath)
	if err != nil {
		return nil, fmt.Errorf("error reopening upload: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close upload")
		}
	}()

	transactions, err := p.Parse(r.Context(), f)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, &parsererror.EmptyResultError{FilePath: fileName}
	}

	s.categorizer.Apply(transactions)
	return transactions, nil
}

func (s *Server) saveUpload(jobID, fileName string, src io.Reader) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0750); err != nil {
		return "", fmt.Errorf("error creating upload directory: %w", err)
	}
	// Base() strips any client-supplied path components.
	uploadPath := filepath.Join(s.uploadDir, jobID+"_"+filepath.Base(fileName))

	dst, err := os.Create(uploadPath)
	if err != nil {
		return "", fmt.Errorf("error creating upload file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("error writing upload file: %w", err)
	}
	return uploadPath, dst.Close()
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	outputPath := s.outputPath(jobID)
	if _, err := os.Stat(outputPath); err != nil {
		writeError(w, http.StatusNotFound, "File not found or expired")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName()))
	http.ServeFile(w, r, outputPath)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	_, err := os.Stat(s.outputPath(jobID))
	ready := err == nil

	status := "not_found"
	if ready {
		status = "completed"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"job_id": jobID,
		"status": status,
		"ready":  ready,
	})
}

func (s *Server) outputPath(jobID string) string {
	return filepath.Join(s.outputDir, jobID+"_CFO_Pack.xlsx")
}

// jobIDParam extracts and validates the job_id path segment. Requiring a
// well-formed UUID also rules out path traversal through the id.
func jobIDParam(r *http.Request) (string, bool) {
	raw := r.PathValue("job_id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func downloadName() string {
	return "CFO_Pack_" + time.Now().Format("20060102") + ".xlsx"
}

// statusForError maps pipeline errors to HTTP status codes. Malformed or
// unusable input is the client's fault; everything else is ours.
func statusForError(err error) int {
	var unsupported *parsererror.UnsupportedFormatError
	var empty *parsererror.EmptyResultError
	var parse *parsererror.ParseError
	switch {
	case errors.As(err, &unsupported), errors.As(err, &empty), errors.As(err, &parse):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Warn("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
