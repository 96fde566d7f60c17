package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/twindash/internal/app/system/extract"
	"github.com/dalemusser/twindash/internal/app/system/rowlookup"
	"github.com/dalemusser/twindash/internal/app/system/timeouts"
	"github.com/dalemusser/twindash/internal/app/system/webjson"
	"go.uber.org/zap"
)

var (
	errFetch  = errors.New("sheet fetch failed")
	errRender = errors.New("summary render failed")
)

// lookup fetches the sheet and builds the view for memberID.
// Errors wrap errFetch, errRender, or rowlookup.ErrNotFound.
func (h *Handler) lookup(ctx context.Context, memberID string) (memberView, error) {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Fetch(), h.Log, "sheet fetch")
	defer cancel()

	table, err := h.Source.Fetch(ctx)
	if err != nil {
		return memberView{}, fmt.Errorf("%w: %w", errFetch, err)
	}

	row, err := rowlookup.Find(table, h.Opts.HeaderRows, h.Opts.KeyColumn, memberID)
	if err != nil {
		return memberView{}, err
	}

	rec := extract.Extract(table, row, h.Opts.Mapping, h.Opts.Default)
	summary, err := h.Renderer.Render(rec)
	if err != nil {
		return memberView{}, fmt.Errorf("%w: %w", errRender, err)
	}

	return memberView{
		MemberID: memberID,
		Row:      row,
		Metrics:  rec,
		Summary:  summary,
	}, nil
}

// notFoundMessage is the error text for an unknown member.
func notFoundMessage(memberID string) string {
	return fmt.Sprintf("Member ID %s not found.", memberID)
}

// ServeDashboard handles GET /dashboard/{member_id}.
//
// On success: 200 and
//
//	{ "metrics": { "meal_log": "62%", … }, "summary": "Your Digital Twin …", "missing": ["protein"] }
//
// "missing" lists fields whose cells were absent and got the default; it
// is omitted when every cell was present.
//
// An unknown member is not an HTTP error: 200 and
//
//	{ "error": "Member ID X9 not found." }
//
// Source or template failures answer 500 with { "error": "…" }.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	memberID, ok := memberIDParam(r)
	if !ok {
		h.Log.Info("dashboard: malformed member id", zap.String("member_id", memberID))
		webjson.Write(w, http.StatusOK, webjson.ErrorBody{Error: notFoundMessage(memberID)})
		return
	}

	view, err := h.lookup(r.Context(), memberID)
	switch {
	case errors.Is(err, rowlookup.ErrNotFound):
		h.Log.Info("dashboard: member not found", zap.String("member_id", memberID))
		webjson.Write(w, http.StatusOK, webjson.ErrorBody{Error: notFoundMessage(memberID)})
		return
	case errors.Is(err, errFetch):
		h.Log.Error("dashboard: sheet fetch failed",
			zap.String("member_id", memberID),
			zap.String("source", h.Source.Describe()),
			zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "Member sheet is unavailable.")
		return
	case err != nil:
		// The template names a field the record does not have.
		h.Log.Error("dashboard: summary template does not match metric fields",
			zap.String("member_id", memberID),
			zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "Unable to build summary.")
		return
	}

	missing := view.Metrics.Missing()
	if len(missing) > 0 {
		h.Log.Debug("dashboard: defaulted fields",
			zap.String("member_id", memberID),
			zap.Strings("fields", missing))
	}

	webjson.Write(w, http.StatusOK, dashboardResponse{
		Metrics: view.Metrics,
		Summary: view.Summary,
		Missing: missing,
	})
}
