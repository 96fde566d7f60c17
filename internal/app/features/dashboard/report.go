package dashboard

import (
	"errors"
	"net/http"

	"github.com/dalemusser/twindash/internal/app/system/htmlsanitize"
	"github.com/dalemusser/twindash/internal/app/system/rowlookup"
	"github.com/dalemusser/twindash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeReport handles GET /dashboard/{member_id}/report: a printable HTML
// page with the metrics table and the summary as paragraphs.
func (h *Handler) ServeReport(w http.ResponseWriter, r *http.Request) {
	memberID, ok := memberIDParam(r)
	if !ok {
		http.Error(w, notFoundMessage(memberID), http.StatusNotFound)
		return
	}

	view, err := h.lookup(r.Context(), memberID)
	switch {
	case errors.Is(err, rowlookup.ErrNotFound):
		http.Error(w, notFoundMessage(memberID), http.StatusNotFound)
		return
	case errors.Is(err, errFetch):
		h.Log.Error("report: sheet fetch failed",
			zap.String("member_id", memberID),
			zap.String("source", h.Source.Describe()),
			zap.Error(err))
		http.Error(w, "Member sheet is unavailable.", http.StatusInternalServerError)
		return
	case err != nil:
		h.Log.Error("report: summary render failed", zap.String("member_id", memberID), zap.Error(err))
		http.Error(w, "Unable to build summary.", http.StatusInternalServerError)
		return
	}

	templates.Render(w, r, "dashboard_report", reportData{
		Title:    "Digital Twin report for " + memberID,
		MemberID: memberID,
		Rows:     metricRows(view.Metrics),
		Summary:  htmlsanitize.Paragraphs(view.Summary),
	})
}

func metricRows(m models.MetricsRecord) []metricRow {
	rows := make([]metricRow, 0, len(models.MetricFields))
	for _, f := range models.MetricFields {
		v, _ := m.Get(f)
		rows = append(rows, metricRow{Field: f, Value: v.Text, Missing: !v.Present})
	}
	return rows
}
