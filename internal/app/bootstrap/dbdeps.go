// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/twindash/internal/app/store/sheet"
	"github.com/dalemusser/twindash/internal/app/system/extract"
	"github.com/dalemusser/twindash/internal/app/system/narrative"
	"github.com/dalemusser/twindash/internal/app/system/ratelimit"
)

// DBDeps holds back-end dependencies for the app. There is no database;
// the member sheet is the only backend.
type DBDeps struct {
	Source   sheet.Source // what handlers read; cached when cache_ttl > 0
	Live     sheet.Source // always uncached, for the health probe
	Mapping  extract.Mapping
	Renderer *narrative.Renderer
	Limiter  *ratelimit.Limiter // nil when rate limiting is off
}
