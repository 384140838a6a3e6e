package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jyotsnat2004/doclens/internal/config"
	"github.com/jyotsnat2004/doclens/internal/pipeline"
)

func testServer(t *testing.T, apiKey string) (*Server, func()) {
	t.Helper()
	cfg := config.Default()
	cfg.APIKey = apiKey
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	engine := pipeline.NewEngine(cfg, log)
	orch := pipeline.NewOrchestrator(cfg, engine, log)
	ctx, cancel := context.WithCancel(context.Background())
	orch.Start(ctx)

	srv := NewServer(orch, log, cfg)
	return srv, func() {
		cancel()
		orch.Stop()
	}
}

func multipartOutlineRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte(content))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/outline", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHealthEndpoint(t *testing.T) {
	srv, stop := testServer(t, "")
	defer stop()

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOutlineEndpointReturnsHeadings(t *testing.T) {
	srv, stop := testServer(t, "")
	defer stop()

	md := "# Sample Title\n\nIntro paragraph.\n\n## Background\n\nMore prose.\n"
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, multipartOutlineRequest(t, "sample.md", md))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Title   string `json:"title"`
		Outline []struct {
			Level string `json:"level"`
			Text  string `json:"text"`
			Page  int    `json:"page"`
		} `json:"outline"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Title != "Sample Title" {
		t.Errorf("expected title promoted, got %q", out.Title)
	}
	if len(out.Outline) != 1 || out.Outline[0].Text != "Background" {
		t.Errorf("unexpected outline %+v", out.Outline)
	}
}

func TestOutlineEndpointRejectsUnsupportedType(t *testing.T) {
	srv, stop := testServer(t, "")
	defer stop()

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, multipartOutlineRequest(t, "archive.zip", "binary"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthMiddlewareEnforcedWhenKeyConfigured(t *testing.T) {
	srv, stop := testServer(t, "secret")
	defer stop()

	req := multipartOutlineRequest(t, "sample.md", "# T\n")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without bearer token, got %d", rec.Code)
	}

	req = multipartOutlineRequest(t, "sample.md", "# T\n")
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong token, got %d", rec.Code)
	}
	var errBody map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&errBody); err != nil {
		t.Fatalf("auth rejection must be JSON: %v", err)
	}
	if errBody["error"] != "invalid api key" {
		t.Errorf("unexpected rejection body: %v", errBody)
	}

	req = multipartOutlineRequest(t, "sample.md", "# T\n")
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", rec.Code)
	}
}

func TestAnalyzeEndpointRoundTrip(t *testing.T) {
	srv, stop := testServer(t, "")
	defer stop()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	w.WriteField("persona", "Investment Analyst")
	w.WriteField("job", "Analyze revenue trends")
	fw, _ := w.CreateFormFile("files", "report.md")
	fw.Write([]byte("# Revenue Report\n\nRevenue trends improved across every market this quarter with stronger performance metrics.\n"))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	var accepted struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &accepted); err != nil {
		t.Fatal(err)
	}
	if accepted.JobID == "" {
		t.Fatal("expected job_id in response")
	}

	// Poll until the worker finishes.
	deadline := time.Now().Add(5 * time.Second)
	for {
		rec = httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs/"+accepted.JobID, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 on status poll, got %d", rec.Code)
		}
		var snap struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
			t.Fatal(err)
		}
		if snap.Status == "completed" {
			break
		}
		if snap.Status == "failed" {
			t.Fatalf("job failed: %s", rec.Body.String())
		}
		if time.Now().After(deadline) {
			t.Fatalf("job did not complete, last status %q", snap.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs/"+accepted.JobID+"/result", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on result fetch, got %d", rec.Code)
	}
	var result struct {
		Metadata struct {
			InputDocuments []string `json:"input_documents"`
		} `json:"metadata"`
		ExtractedSections []json.RawMessage `json:"extracted_sections"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Metadata.InputDocuments) != 1 || result.Metadata.InputDocuments[0] != "report.md" {
		t.Errorf("unexpected input documents %v", result.Metadata.InputDocuments)
	}
	if len(result.ExtractedSections) == 0 {
		t.Errorf("expected ranked sections in result")
	}
}

func TestJobEndpointsUnknownID(t *testing.T) {
	srv, stop := testServer(t, "")
	defer stop()

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
