package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"goquade/app"
	"goquade/domain/quade"
	"goquade/internal"
)

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)
	logger := internal.NewLogger(internal.LogLevelError)
	service := app.NewQuadeService(nil, logger)
	return NewServer(service, nil, logger)
}

func postJSON(t *testing.T, s *Server, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_RunTest(t *testing.T) {
	s := newTestServer()

	rec := postJSON(t, s, "/api/v1/quade", map[string]interface{}{
		"matrix": [][]float64{
			{115, 142, 36, 91, 28},
			{28, 31, 7, 21, 6},
			{220, 311, 108, 51, 117},
			{82, 56, 24, 46, 33},
			{256, 298, 124, 46, 84},
			{294, 322, 176, 54, 86},
			{98, 87, 55, 84, 25},
		},
		"dataset": "crops",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var run quade.TestRun
	if err := json.Unmarshal(rec.Body.Bytes(), &run); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if run.Result.Blocks != 7 || run.Result.Treatments != 5 || run.Result.NObs != 35 {
		t.Errorf("unexpected dimensions: %+v", run.Result)
	}
	if !run.Result.RejectNull {
		t.Errorf("expected null to be rejected, p=%v", run.Result.PValue)
	}
	if run.Comparison == nil {
		t.Error("expected post-hoc comparison in response")
	}
	if run.Dataset != "crops" {
		t.Errorf("dataset = %q, want crops", run.Dataset)
	}
}

func TestServer_RunTest_DefaultsApplied(t *testing.T) {
	s := newTestServer()

	// Omitting alpha and post_hoc must behave like alpha=0.05, post_hoc=true
	rec := postJSON(t, s, "/api/v1/quade", map[string]interface{}{
		"matrix": [][]float64{
			{115, 142, 36, 91, 28},
			{28, 31, 7, 21, 6},
			{220, 311, 108, 51, 117},
			{82, 56, 24, 46, 33},
			{256, 298, 124, 46, 84},
			{294, 322, 176, 54, 86},
			{98, 87, 55, 84, 25},
		},
	})

	var run quade.TestRun
	if err := json.Unmarshal(rec.Body.Bytes(), &run); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if run.Result.Alpha != 0.05 {
		t.Errorf("alpha = %v, want default 0.05", run.Result.Alpha)
	}
	if run.Comparison == nil {
		t.Error("post_hoc should default to true")
	}
}

func TestServer_RunTest_InvalidMatrix(t *testing.T) {
	s := newTestServer()

	rec := postJSON(t, s, "/api/v1/quade", map[string]interface{}{
		"matrix": [][]float64{{1, 2, 3}},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
	}
}

func TestServer_RunTest_DegenerateMatrix(t *testing.T) {
	s := newTestServer()

	rec := postJSON(t, s, "/api/v1/quade", map[string]interface{}{
		"matrix": [][]float64{{1, 2, 3}, {11, 12, 13}},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422; body = %s", rec.Code, rec.Body.String())
	}
}

func TestServer_RunsWithoutArchive(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestServer_Health(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
