package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/bburn/internal/config"
	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/pipeline"
	"github.com/theirongolddev/bburn/internal/sheets"
	"github.com/theirongolddev/bburn/internal/source"
)

const budgetCSV = `Date,Income Amount,Expense Amount,Expense Category
2024-01-31,3000,1200,Groceries
2024-02-29,3000,1500,Groceries
2024-02-29,0,300,Utilities
`

func newTestServer(sheets pipeline.SheetFetcher) *Server {
	return New(Config{
		Analysis: pipeline.OptionsFromConfig(config.DefaultConfig()),
		Sheets:   sheets,
	}, nil)
}

func upload(t *testing.T, path, field, filename, body string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	rec := serve(newTestServer(nil), httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSample(t *testing.T) {
	rec := serve(newTestServer(nil), httptest.NewRequest(http.MethodGet, "/v1/sample", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeBody(t, rec)
	assert.Equal(t, "sample data", out["source"])
	assert.EqualValues(t, 6, out["rows"])

	metrics := out["metrics"].(map[string]any)
	assert.Equal(t, "18800", metrics["total_income"])
	assert.Equal(t, "12400", metrics["total_expense"])
}

func TestAnalyzeUpload(t *testing.T) {
	s := newTestServer(nil)
	rec := serve(s, upload(t, "/v1/analyze", "file", "budget.csv", budgetCSV))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	out := decodeBody(t, rec)
	assert.Equal(t, "budget.csv", out["source"])
	assert.EqualValues(t, 3, out["rows"])

	top := out["categories"].(map[string]any)["top"].(map[string]any)
	assert.Equal(t, "Groceries", top["category"])
	assert.Equal(t, "2700", top["amount"])

	st := s.snapshotStatus()
	assert.EqualValues(t, 1, st.Analyses)
	assert.EqualValues(t, 1, st.Requests)
}

func TestAnalyzeUpload_BadInput(t *testing.T) {
	tests := []struct {
		name string
		req  func(t *testing.T) *http.Request
	}{
		{"wrong field", func(t *testing.T) *http.Request {
			return upload(t, "/v1/analyze", "data", "budget.csv", budgetCSV)
		}},
		{"unsupported format", func(t *testing.T) *http.Request {
			return upload(t, "/v1/analyze", "file", "budget.pdf", budgetCSV)
		}},
		{"not multipart", func(t *testing.T) *http.Request {
			return httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(budgetCSV))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(nil)
			rec := serve(s, tt.req(t))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decodeBody(t, rec)["error"])
			assert.EqualValues(t, 1, s.snapshotStatus().Failures)
		})
	}
}

func TestAnalyzeUpload_TooLarge(t *testing.T) {
	s := New(Config{MaxUploadBytes: 64}, nil)
	rec := serve(s, upload(t, "/v1/analyze", "file", "budget.csv", strings.Repeat(budgetCSV, 10)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["error"])
}

func TestForecastCSV(t *testing.T) {
	rec := serve(newTestServer(nil), upload(t, "/v1/forecast.csv", "file", "budget.csv", budgetCSV))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "market_forecast.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Category,You Spent,Forecast,Est. Next Month,Change", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Groceries 🛒,"))
	assert.True(t, strings.HasPrefix(lines[2], "Utilities ⚡,"))
}

func TestSampleForecastCSV(t *testing.T) {
	rec := serve(newTestServer(nil), httptest.NewRequest(http.MethodGet, "/v1/sample/forecast.csv", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 4)
}

type fakeSheets struct {
	rs  *model.RecordSet
	err error
}

func (f fakeSheets) Fetch(context.Context, string) (*model.RecordSet, error) {
	return f.rs, f.err
}

func TestAnalyzeSheet(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/analyze/sheet", strings.NewReader(`{"url":"x"}`))
		rec := serve(newTestServer(nil), req)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/analyze/sheet", strings.NewReader(`{}`))
		rec := serve(newTestServer(fakeSheets{rs: source.Sample()}), req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("fetch error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/analyze/sheet", strings.NewReader(`{"url":"https://docs.google.com/spreadsheets/d/abc"}`))
		rec := serve(newTestServer(fakeSheets{err: errors.New("forbidden")}), req)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, decodeBody(t, rec)["error"], "forbidden")
	})

	t.Run("invalid link", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/analyze/sheet", strings.NewReader(`{"url":"https://example.com/not-a-sheet"}`))
		_, refErr := sheets.ParseRef("https://example.com/not-a-sheet")
		require.ErrorIs(t, refErr, sheets.ErrInvalidRef)

		rec := serve(newTestServer(fakeSheets{err: refErr}), req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeBody(t, rec)["error"], "not-a-sheet")
	})

	t.Run("ok", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/analyze/sheet", strings.NewReader(`{"url":"https://docs.google.com/spreadsheets/d/abc"}`))
		rec := serve(newTestServer(fakeSheets{rs: source.Sample()}), req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.EqualValues(t, 6, decodeBody(t, rec)["rows"])
	})
}

func TestMethodNotAllowed(t *testing.T) {
	rec := serve(newTestServer(nil), httptest.NewRequest(http.MethodGet, "/v1/analyze", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStatus(t *testing.T) {
	s := newTestServer(nil)
	serve(s, httptest.NewRequest(http.MethodGet, "/v1/sample", nil))
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/v1/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeBody(t, rec)
	assert.EqualValues(t, 2, out["requests"])
	assert.EqualValues(t, 1, out["analyses"])
	assert.EqualValues(t, 10, out["max_upload_mib"])
	assert.Equal(t, false, out["sheets_ready"])
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := New(Config{Addr: "127.0.0.1:0"}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()

	cancel()
	assert.NoError(t, <-errCh)
}
