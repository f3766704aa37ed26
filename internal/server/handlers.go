package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/theirongolddev/bburn/internal/export"
	"github.com/theirongolddev/bburn/internal/pipeline"
	"github.com/theirongolddev/bburn/internal/sheets"
	"github.com/theirongolddev/bburn/internal/source"
)

var errSheetsDisabled = errors.New("google sheets access is not configured on this server")

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Server) handleSample(w http.ResponseWriter, _ *http.Request) {
	sess := pipeline.NewSession(source.Sample(), "sample data")
	s.recordAnalysis(nil)
	writeJSON(w, http.StatusOK, pipeline.Analyze(sess, s.cfg.Analysis))
}

func (s *Server) handleSampleForecastCSV(w http.ResponseWriter, _ *http.Request) {
	sess := pipeline.NewSession(source.Sample(), "sample data")
	s.writeForecastCSV(w, sess)
}

func (s *Server) handleAnalyzeUpload(w http.ResponseWriter, r *http.Request) {
	sess, status, err := s.readUpload(w, r)
	s.recordAnalysis(err)
	if err != nil {
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, pipeline.Analyze(sess, s.cfg.Analysis))
}

func (s *Server) handleForecastCSV(w http.ResponseWriter, r *http.Request) {
	sess, status, err := s.readUpload(w, r)
	if err != nil {
		s.recordAnalysis(err)
		writeError(w, status, err)
		return
	}
	s.writeForecastCSV(w, sess)
}

type sheetRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleAnalyzeSheet(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Sheets == nil {
		s.recordAnalysis(errSheetsDisabled)
		writeError(w, http.StatusServiceUnavailable, errSheetsDisabled)
		return
	}

	var req sheetRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		err = errors.New(`body must be {"url": "<sheet link>"}`)
		s.recordAnalysis(err)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sess, err := pipeline.Load(r.Context(), pipeline.Request{Sheet: req.URL}, pipeline.LoadOptions{Sheets: s.cfg.Sheets})
	s.recordAnalysis(err)
	if err != nil {
		s.log.Warn("sheet fetch failed", "url", req.URL, "err", err)
		status := http.StatusBadGateway
		if errors.Is(err, sheets.ErrInvalidRef) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, pipeline.Analyze(sess, s.cfg.Analysis))
}

// readUpload parses the multipart "file" field into a session.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*pipeline.Session, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, http.StatusBadRequest, fmt.Errorf("upload exceeds %d bytes", s.cfg.MaxUploadBytes)
		}
		return nil, http.StatusBadRequest, fmt.Errorf("parsing upload: %w", err)
	}

	file, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, http.StatusBadRequest, errors.New(`missing multipart field "file"`)
	}
	defer file.Close()

	rs, err := source.Read(hdr.Filename, file)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("reading %s: %w", hdr.Filename, err)
	}
	return pipeline.NewSession(rs, hdr.Filename), http.StatusOK, nil
}

func (s *Server) writeForecastCSV(w http.ResponseWriter, sess *pipeline.Session) {
	a := pipeline.Analyze(sess, s.cfg.Analysis)
	body, err := export.ForecastCSV(a.Forecast)
	s.recordAnalysis(err)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.DefaultForecastFile))
	_, _ = w.Write([]byte(body))
}
