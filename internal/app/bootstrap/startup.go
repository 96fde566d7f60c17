// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/twindash/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the source is
// built and checked, but before the HTTP handler is built.
//
// It applies the fetch timeout and, when the column map uses header names,
// reads the sheet once to warn about names that do not resolve. That read
// is best effort: a sheet that is down at boot is not fatal.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{Fetch: appCfg.FetchTimeout})

	if !usesNames(deps) {
		return nil
	}

	fctx, cancel := timeouts.WithTimeout(ctx, timeouts.Fetch(), logger, "startup header check")
	defer cancel()

	table, err := deps.Source.Fetch(fctx)
	if err != nil {
		logger.Warn("header check skipped: sheet unavailable", zap.Error(err))
		return nil
	}
	for _, problem := range deps.Mapping.CheckHeader(table.Header()) {
		logger.Warn("column map", zap.String("problem", problem))
	}
	return nil
}

func usesNames(deps DBDeps) bool {
	for _, refs := range deps.Mapping {
		for _, ref := range refs {
			if ref.Name != "" {
				return true
			}
		}
	}
	return false
}
