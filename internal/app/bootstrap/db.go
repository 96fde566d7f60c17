// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/twindash/internal/app/store/sheet"
	"github.com/dalemusser/twindash/internal/app/system/extract"
	"github.com/dalemusser/twindash/internal/app/system/narrative"
	"github.com/dalemusser/twindash/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB builds the sheet source and the pieces that read it.
// Nothing remote is contacted here.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	live, err := buildSource(appCfg, logger)
	if err != nil {
		return DBDeps{}, err
	}

	mapping := extract.DefaultMapping()
	if appCfg.ColumnMapFile != "" {
		mapping, err = extract.LoadMapping(appCfg.ColumnMapFile)
		if err != nil {
			return DBDeps{}, fmt.Errorf("column map: %w", err)
		}
		logger.Info("loaded column map", zap.String("file", appCfg.ColumnMapFile))
	}

	renderer, err := buildRenderer(appCfg)
	if err != nil {
		return DBDeps{}, err
	}

	var limiter *ratelimit.Limiter
	if appCfg.RateLimitRequests > 0 {
		limiter = ratelimit.New(appCfg.RateLimitRequests, appCfg.RateLimitWindow)
	}

	return DBDeps{
		Source:   sheet.NewCached(live, appCfg.CacheTTL, logger),
		Live:     live,
		Mapping:  mapping,
		Renderer: renderer,
		Limiter:  limiter,
	}, nil
}

// buildSource picks the uncached adapter for source_type.
func buildSource(appCfg AppConfig, logger *zap.Logger) (sheet.Source, error) {
	var src sheet.Source
	switch appCfg.SourceType {
	case SourceSheets:
		src = sheet.NewSheetsSource(sheet.SheetsConfig{
			CredentialsFile: appCfg.SheetsCredentialsFile,
			SpreadsheetID:   appCfg.SheetsSpreadsheetID,
			Range:           appCfg.SheetsRange,
		}, logger)
	case SourceFile:
		src = sheet.NewFileSource(appCfg.FilePath, appCfg.FileSheet, logger)
	default:
		return nil, fmt.Errorf("unknown source_type %q", appCfg.SourceType)
	}

	logger.Info("member sheet source",
		zap.String("source", src.Describe()),
		zap.Duration("cache_ttl", appCfg.CacheTTL))
	return src, nil
}

func buildRenderer(appCfg AppConfig) (*narrative.Renderer, error) {
	if appCfg.SummaryTemplateFile == "" {
		return narrative.New()
	}
	r, err := narrative.Load(appCfg.SummaryTemplateFile)
	if err != nil {
		return nil, fmt.Errorf("summary template: %w", err)
	}
	return r, nil
}

// EnsureSchema checks that the column map and the summary template agree
// before any request is served. There is no database schema.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := deps.Mapping.Validate(); err != nil {
		logger.Error("column map invalid", zap.Error(err))
		return err
	}
	if err := deps.Renderer.Check(); err != nil {
		logger.Error("summary template does not match metric fields", zap.Error(err))
		return err
	}
	return nil
}
