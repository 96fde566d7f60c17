package sheet_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dalemusser/twindash/internal/app/store/sheet"
	"github.com/dalemusser/twindash/internal/domain/models"
	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestFileSource_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.csv")
	body := ",MEMBER_ID,Coach\n1,A1,Sam\n2,A2\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := sheet.NewFileSource(path, "", zap.NewNop()).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	want := models.Table{
		{"", "MEMBER_ID", "Coach"},
		{"1", "A1", "Sam"},
		{"2", "A2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestFileSource_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.xlsx")
	wb := excelize.NewFile()
	const tab = "Sheet1"
	for cell, v := range map[string]string{
		"B1": "MEMBER_ID", "C1": "Coach",
		"A2": "1", "B2": "A1", "C2": "Sam",
		"A3": "2", "B3": "A2",
	} {
		if err := wb.SetCellValue(tab, cell, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := wb.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	_ = wb.Close()

	got, err := sheet.NewFileSource(path, "", zap.NewNop()).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	want := models.Table{
		{"", "MEMBER_ID", "Coach"},
		{"1", "A1", "Sam"},
		{"2", "A2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}

	_, err = sheet.NewFileSource(path, "Nope", zap.NewNop()).Fetch(context.Background())
	if !errors.Is(err, sheet.ErrSourceUnavailable) {
		t.Errorf("unknown worksheet: expected ErrSourceUnavailable, got %v", err)
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	src := sheet.NewFileSource(filepath.Join(t.TempDir(), "gone.csv"), "", zap.NewNop())
	_, err := src.Fetch(context.Background())
	if !errors.Is(err, sheet.ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestFileSource_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := sheet.NewFileSource("unused.csv", "", zap.NewNop())
	if _, err := src.Fetch(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFileSource_Describe(t *testing.T) {
	if got := sheet.NewFileSource("a.xlsx", "Tab", zap.NewNop()).Describe(); got != "file:a.xlsx#Tab" {
		t.Errorf("Describe: got %q", got)
	}
}
