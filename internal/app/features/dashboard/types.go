package dashboard

import (
	"html/template"

	"github.com/dalemusser/twindash/internal/domain/models"
)

// dashboardResponse is the JSON body of GET /dashboard/{member_id}.
type dashboardResponse struct {
	Metrics models.MetricsRecord `json:"metrics"`
	Summary string               `json:"summary"`
	Missing []string             `json:"missing,omitempty"`
}

// memberView is one member's looked-up data.
type memberView struct {
	MemberID string
	Row      int
	Metrics  models.MetricsRecord
	Summary  string
}

// metricRow is one line of the report's metrics table.
type metricRow struct {
	Field   string
	Value   string
	Missing bool
}

// reportData is the view model for the dashboard_report template.
type reportData struct {
	Title    string
	MemberID string
	Rows     []metricRow
	Summary  template.HTML
}
