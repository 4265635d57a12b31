// Package httpapi exposes the report pipeline over HTTP.
//
// Endpoints:
//
//	POST /api/v1/reports/upload     multipart document upload
//	GET  /api/v1/reports/{id}       consolidated report JSON
//	GET  /api/v1/reports/{id}/pdf   PDF rendition download
//	GET  /health                    liveness probe
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ravishanakr99-create/ai-financy-analytics/internal/adapters/driven/pdf"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/domain"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/core/ports/driving"
	"github.com/ravishanakr99-create/ai-financy-analytics/internal/logger"
)

// maxFileSize caps each uploaded document at 10 MB.
const maxFileSize = 10 << 20

// Proactive throttle: uploads trigger OCR, which is the expensive
// stage; bursts beyond this get 429 instead of queueing.
const (
	requestRate  = 20
	requestBurst = 40
)

// allowedExtensions are the upload formats the pipeline accepts.
var allowedExtensions = map[string]bool{
	".pdf": true, ".png": true, ".jpg": true, ".jpeg": true, ".tif": true, ".tiff": true,
}

// Server serves the report API.
type Server struct {
	service  driving.ReportService
	limiter  *rate.Limiter
	port     int
	server   *http.Server
	listener net.Listener
}

// NewServer creates an API server. If port is 0, a random available
// port is chosen at Start.
func NewServer(service driving.ReportService, port int) *Server {
	return &Server{
		service: service,
		limiter: rate.NewLimiter(rate.Limit(requestRate), requestBurst),
		port:    port,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/reports/upload", s.handleUpload)
	mux.HandleFunc("GET /api/v1/reports/{id}", s.handleGet)
	mux.HandleFunc("GET /api/v1/reports/{id}/pdf", s.handlePDF)
	mux.HandleFunc("GET /health", s.handleHealth)
	return s.throttle(mux)
}

// Start begins serving on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	}

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("api server: %v", err)
		}
	}()

	logger.Info("api server listening on port %d", s.port)
	return nil
}

// Port returns the bound port, useful when Start chose one.
func (s *Server) Port() int {
	return s.port
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// throttle rejects requests beyond the configured rate with 429.
func (s *Server) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart request")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "At least one document is required")
		return
	}

	docs := make([]domain.RawDocument, 0, len(headers))
	for _, header := range headers {
		if header.Filename == "" {
			writeError(w, http.StatusBadRequest, "Filename is required")
			return
		}
		name := filepath.Base(header.Filename)
		ext := strings.ToLower(filepath.Ext(name))
		if !allowedExtensions[ext] {
			writeError(w, http.StatusBadRequest,
				"File type not allowed. Accepted: "+allowedList())
			return
		}
		if header.Size > maxFileSize {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s exceeds 10 MB size limit", name))
			return
		}

		f, err := header.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "Failed to read upload")
			return
		}
		content, err := io.ReadAll(io.LimitReader(f, maxFileSize+1))
		f.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, "Failed to read upload")
			return
		}
		if len(content) > maxFileSize {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s exceeds 10 MB size limit", name))
			return
		}

		if ext == ".pdf" {
			if _, err := pdf.PageCount(content); err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("%s is not a valid PDF", name))
				return
			}
		}

		docs = append(docs, domain.RawDocument{Filename: name, Content: content})
	}

	opts := driving.UploadOptions{
		UserID:   r.FormValue("user_id"),
		Category: r.FormValue("category"),
	}

	report, err := s.service.Process(r.Context(), docs, opts)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoDocuments):
			writeError(w, http.StatusBadRequest, "At least one document is required")
		case errors.Is(err, domain.ErrLowQuality):
			writeError(w, http.StatusUnprocessableEntity,
				"Document quality is low. Please upload a clearer scan.")
		default:
			logger.Error("processing upload: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to process documents")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"report_id":   report.ID,
		"message":     "Report uploaded and processed successfully",
		"eligibility": report.Eligible,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Report not found")
			return
		}
		logger.Error("fetching report: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch report")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		*domain.Report
		PDFAvailable bool `json:"pdf_available"`
	}{Report: report, PDFAvailable: true})
}

func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	content, err := s.service.RenderPDF(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Report not found")
			return
		}
		logger.Error("rendering report %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to render report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="report_%s.pdf"`, id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func allowedList() string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
