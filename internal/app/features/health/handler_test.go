package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/twindash/internal/app/features/health"
	"github.com/dalemusser/twindash/internal/testutil"
	"go.uber.org/zap"
)

type healthBody struct {
	Status string `json:"status"`
	Source string `json:"source"`
	Rows   *int   `json:"rows"`
	Error  string `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) healthBody {
	t.Helper()
	var body healthBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return body
}

func TestServe_NoSheetAccess(t *testing.T) {
	src := testutil.FailingSource()
	handler := health.NewHandler(src, zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Serve(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	body := decode(t, rec)
	if body.Status != "ok" {
		t.Errorf("status: got %q, want %q", body.Status, "ok")
	}
	if body.Source != "stub" {
		t.Errorf("source: got %q, want %q", body.Source, "stub")
	}
	if src.Calls() != 0 {
		t.Errorf("plain health check should not fetch, got %d calls", src.Calls())
	}
}

func TestServe_SourceCheck(t *testing.T) {
	handler := health.NewHandler(testutil.NewStubSource(testutil.MemberTable()), zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Serve(rec, httptest.NewRequest("GET", "/health?check=source", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	body := decode(t, rec)
	if body.Rows == nil || *body.Rows != 5 {
		t.Errorf("rows: got %v, want 5", body.Rows)
	}
}

func TestServe_SourceCheckFailure(t *testing.T) {
	handler := health.NewHandler(testutil.FailingSource(), zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Serve(rec, httptest.NewRequest("GET", "/health?check=source", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
	body := decode(t, rec)
	if body.Status != "error" || body.Error == "" {
		t.Errorf("expected error payload, got %+v", body)
	}
}
