package errors_test

import (
	"net/http"
	"testing"

	errorsfeature "github.com/dalemusser/twindash/internal/app/features/errors"
	"github.com/dalemusser/twindash/internal/testutil"
	"go.uber.org/zap"
)

func TestNotFound(t *testing.T) {
	h := errorsfeature.NewHandler(zap.NewNop())
	rec := testutil.NewRecorder()
	h.NotFound(rec, testutil.NewRequest("GET", "/nope"))

	rec.AssertStatus(t, http.StatusNotFound)
	var body struct {
		Error string `json:"error"`
	}
	rec.DecodeJSON(t, &body)
	if body.Error != "Not found: /nope" {
		t.Errorf("error: got %q", body.Error)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := errorsfeature.NewHandler(zap.NewNop())
	rec := testutil.NewRecorder()
	h.MethodNotAllowed(rec, testutil.NewRequest("POST", "/members"))

	rec.AssertStatus(t, http.StatusMethodNotAllowed)
	rec.AssertContains(t, "POST")
}
