package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/insightdeck/insightdeck/pkg/pipeline"
)

const sampleCSV = `day,service,usage_units,cost_gbp,incidents,sla_pct
2026-03-01,api,1000,120.50,1,99.95
2026-03-02,api,1100,130.25,0,99.97
2026-03-03,api,1250,140.75,0,99.98
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(pipeline.NewRunner(nil, nil, nil), nil)
}

func uploadRequest(t *testing.T, target, filename, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("dataset", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body %q", rec.Body.String())
	}
}

func TestCreateDeckSVG(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, uploadRequest(t, "/decks?format=svg", "usage.csv", sampleCSV))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type %q", ct)
	}
	if rec.Header().Get("X-Job-ID") == "" {
		t.Error("missing job id header")
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Error("response is not SVG")
	}
}

func TestCreateDeckJSONDefaultTitle(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, uploadRequest(t, "/decks?format=json", "usage.csv", sampleCSV))

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}

	var doc struct {
		Title  string            `json:"title"`
		Slides []json.RawMessage `json:"slides"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if doc.Title != pipeline.DefaultTitle {
		t.Errorf("title %q, want default", doc.Title)
	}
	if len(doc.Slides) != 2 {
		t.Errorf("got %d slides, want 2", len(doc.Slides))
	}
}

func TestCreateDeckErrors(t *testing.T) {
	tests := []struct {
		name       string
		request    func(t *testing.T) *http.Request
		wantStatus int
		wantCode   string
	}{
		{
			name: "bad format",
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, "/decks?format=pptx", "usage.csv", sampleCSV)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_FORMAT",
		},
		{
			name: "bad extension",
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, "/decks", "usage.xlsx", sampleCSV)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_DATASET",
		},
		{
			name: "malformed dataset",
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, "/decks", "usage.csv", "day,service\n2026-03-01,api\n")
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_DATASET",
		},
		{
			name: "missing file field",
			request: func(t *testing.T) *http.Request {
				var body bytes.Buffer
				mw := multipart.NewWriter(&body)
				_ = mw.WriteField("unrelated", "x")
				_ = mw.Close()
				req := httptest.NewRequest(http.MethodPost, "/decks", &body)
				req.Header.Set("Content-Type", mw.FormDataContentType())
				return req
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
	}

	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, tt.request(t))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			var resp struct {
				Error string `json:"error"`
				Code  string `json:"code"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("code %q, want %q", resp.Code, tt.wantCode)
			}
			if resp.Error == "" {
				t.Error("empty error message")
			}
		})
	}
}
