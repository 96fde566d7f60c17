package health

import (
	"context"
	"net/http"

	"github.com/dalemusser/twindash/internal/app/store/sheet"
	"github.com/dalemusser/twindash/internal/app/system/timeouts"
	"github.com/dalemusser/twindash/internal/app/system/webjson"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Source sheet.Source // uncached, so ?check=source is a live read
	Log    *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(src sheet.Source, logger *zap.Logger) *Handler {
	return &Handler{Source: src, Log: logger}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status  string `json:"status"`
	Source  string `json:"source"`
	Rows    *int   `json:"rows,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// By default it does not touch the sheet, so load balancers polling it do
// not spend API quota:
//
//	{ "status":"ok", "source":"google-sheets:…" }
//
// With ?check=source it reads the sheet under the ping timeout. On
// success: 200 with "rows"; on failure: 503 and
//
//	{ "status":"error", "source":"…", "message":"Sheet unavailable", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status: "ok",
		Source: h.Source.Describe(),
	}

	if r.URL.Query().Get("check") != "source" {
		webjson.Write(w, http.StatusOK, resp)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	table, err := h.Source.Fetch(ctx)
	if err != nil {
		h.Log.Error("health-check: sheet fetch failed", zap.Error(err))
		resp.Status = "error"
		resp.Message = "Sheet unavailable"
		resp.Error = err.Error()
		webjson.Write(w, http.StatusServiceUnavailable, resp)
		return
	}

	n := len(table)
	resp.Rows = &n
	webjson.Write(w, http.StatusOK, resp)
}
