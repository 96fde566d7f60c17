package sheet

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/twindash/internal/domain/models"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// FileSource reads an exported copy of the sheet from disk: .xlsx through
// excelize, anything else as CSV. Useful for local development and for
// running without Google credentials.
type FileSource struct {
	Path  string
	Sheet string // worksheet name for .xlsx; blank means the first sheet
	log   *zap.Logger
}

// NewFileSource returns a source reading path.
func NewFileSource(path, sheetName string, logger *zap.Logger) *FileSource {
	return &FileSource{Path: path, Sheet: sheetName, log: logger}
}

// Describe implements Source.
func (f *FileSource) Describe() string {
	if f.Sheet != "" {
		return "file:" + f.Path + "#" + f.Sheet
	}
	return "file:" + f.Path
}

// Fetch implements Source. The file is reopened on every call so edits
// show up without a restart.
func (f *FileSource) Fetch(ctx context.Context) (models.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Source: f.Describe(), Op: "read", Err: err}
	}
	fetchID := uuid.NewString()
	start := time.Now()

	var (
		table models.Table
		err   error
	)
	if strings.EqualFold(filepath.Ext(f.Path), ".xlsx") {
		table, err = f.readXLSX()
	} else {
		table, err = f.readCSV()
	}
	if err != nil {
		f.log.Error("sheet fetch failed",
			zap.String("fetch_id", fetchID),
			zap.String("source", f.Describe()),
			zap.Error(err))
		return nil, &FetchError{Source: f.Describe(), Op: "read", Err: err}
	}

	f.log.Debug("sheet fetched",
		zap.String("fetch_id", fetchID),
		zap.String("source", f.Describe()),
		zap.Int("rows", len(table)),
		zap.Duration("elapsed", time.Since(start)))
	return table, nil
}

func (f *FileSource) readXLSX() (models.Table, error) {
	wb, err := excelize.OpenFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	name := f.Sheet
	if name == "" {
		list := wb.GetSheetList()
		if len(list) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		name = list[0]
	}
	rows, err := wb.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read worksheet %q: %w", name, err)
	}
	return models.Table(rows), nil
}

func (f *FileSource) readCSV() (models.Table, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	r := csv.NewReader(fh)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return models.Table(rows), nil
}
