package narrative_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dalemusser/twindash/internal/app/system/extract"
	"github.com/dalemusser/twindash/internal/app/system/narrative"
	"github.com/dalemusser/twindash/internal/domain/models"
)

func sampleRow() []string {
	row := make([]string, 61)
	for i := range row {
		row[i] = "x"
	}
	row[11] = "62%"
	row[12] = "4"
	row[37] = "71%"
	row[41] = "6.5"
	row[54] = "38"
	row[53] = "22"
	row[15] = "8.1"
	row[19] = "6.4"
	row[21] = "212"
	row[23] = "198"
	row[27] = "33.2"
	row[28] = "31.0"
	row[59] = "14"
	row[60] = "12"
	row[30] = "138"
	row[32] = "88"
	row[31] = "126"
	row[33] = "82"
	row[52] = "Metformin 500mg"
	return row
}

func TestRender_ContainsEveryValue(t *testing.T) {
	r, err := narrative.New()
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	tbl := models.Table{make([]string, 61), sampleRow()}
	rec := extract.Extract(tbl, 1, extract.DefaultMapping(), models.DefaultValue)

	text, err := r.Render(rec)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	for field, v := range rec.Strings() {
		if !strings.Contains(text, v) {
			t.Errorf("summary missing %s value %q", field, v)
		}
	}
	if !strings.Contains(text, "138 / 88 ➝ 126 / 82") {
		t.Errorf("summary missing blood pressure change, got:\n%s", text)
	}
}

func TestRender_Trimmed(t *testing.T) {
	r, err := narrative.Parse("t", "\n\n  hello {{.gfy}}  \n")
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.Render(models.NewMetricsRecord("0"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello 0" {
		t.Errorf("got %q, want %q", got, "hello 0")
	}
}

func TestRender_UnknownFieldFails(t *testing.T) {
	r, err := narrative.Parse("t", "pulse {{.heart_rate}}")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if _, err := r.Render(models.NewMetricsRecord("0")); err == nil {
		t.Error("expected error for field missing from record")
	}
	if err := r.Check(); err == nil {
		t.Error("Check should report the unknown field")
	}
}

func TestNew_CheckPasses(t *testing.T) {
	r, err := narrative.New()
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Check(); err != nil {
		t.Errorf("built-in template failed check: %v", err)
	}
}

func TestParse_BadSyntax(t *testing.T) {
	if _, err := narrative.Parse("t", "{{.gfy"); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.tmpl")
	if err := os.WriteFile(path, []byte("Meals: {{.meal_log}}"), 0o600); err != nil {
		t.Fatal(err)
	}
	r, err := narrative.Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	rec := models.NewMetricsRecord("0")
	rec.Set(models.FieldMealLog, models.Value{Text: "80%", Present: true})
	got, err := r.Render(rec)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Meals: 80%" {
		t.Errorf("got %q, want %q", got, "Meals: 80%")
	}
}
