package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dalemusser/twindash/internal/app/store/sheet"
	"github.com/dalemusser/twindash/internal/app/system/extract"
	"github.com/dalemusser/twindash/internal/app/system/timeouts"
	"github.com/dalemusser/twindash/internal/domain/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	credentials string
	spreadsheet string
	rangeA1     string
	file        string
	sheetName   string
	keyColumn   int
	headerRows  int
	coachColumn string
	columns     string
	jsonOut     bool
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "twinctl",
		Short:         "Query the Digital Twin member sheet",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := root.PersistentFlags()
	f.StringVar(&opts.credentials, "credentials", "credentials.json", "service-account JSON key for Google Sheets")
	f.StringVar(&opts.spreadsheet, "spreadsheet", "1Kjo-jfEYdPc_KFoCa4kL_UtBrochTiBLFFYiPQ88lio", "spreadsheet ID")
	f.StringVar(&opts.rangeA1, "range", "'Copy of No CGM >2D - Vig, Vin'!A1:BJ300", "A1 range holding the member table")
	f.StringVar(&opts.file, "file", "", "read a local .xlsx or .csv instead of Google Sheets")
	f.StringVar(&opts.sheetName, "sheet", "", "worksheet inside --file (blank means the first)")
	f.IntVar(&opts.keyColumn, "key-column", 1, "zero-based MEMBER_ID column")
	f.IntVar(&opts.headerRows, "header-rows", 1, "rows above the member data")
	f.StringVar(&opts.coachColumn, "coach-column", "Coach", "header name of the coach column")
	f.StringVar(&opts.columns, "columns", "", "YAML column map overriding metric positions")
	f.BoolVar(&opts.jsonOut, "json", false, "print JSON instead of text")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log sheet access to stderr")

	root.AddCommand(
		newMembersCmd(opts),
		newCoachesCmd(opts),
		newDashboardCmd(opts),
	)
	return root
}

func (o *options) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func (o *options) source(logger *zap.Logger) sheet.Source {
	if o.file != "" {
		return sheet.NewFileSource(o.file, o.sheetName, logger)
	}
	return sheet.NewSheetsSource(sheet.SheetsConfig{
		CredentialsFile: o.credentials,
		SpreadsheetID:   o.spreadsheet,
		Range:           o.rangeA1,
	}, logger)
}

func (o *options) mapping() (extract.Mapping, error) {
	if o.columns == "" {
		return extract.DefaultMapping(), nil
	}
	return extract.LoadMapping(o.columns)
}

// fetch reads the table once under the fetch timeout.
func (o *options) fetch(ctx context.Context, logger *zap.Logger) (models.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Fetch())
	defer cancel()
	return o.source(logger).Fetch(ctx)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
