// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/twindash/internal/app/system/webjson"
	"go.uber.org/zap"
)

// Handler answers requests no route matched, as JSON like every other
// error this service returns.
type Handler struct {
	Log *zap.Logger
}

// NewHandler constructs an errors Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// NotFound handles unknown paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Log.Debug("no route", zap.String("method", r.Method), zap.String("path", r.URL.Path))
	webjson.Error(w, http.StatusNotFound, "Not found: "+r.URL.Path)
}

// MethodNotAllowed handles known paths hit with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	webjson.Error(w, http.StatusMethodNotAllowed, "Method "+r.Method+" not allowed.")
}
