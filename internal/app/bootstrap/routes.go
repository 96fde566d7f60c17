// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	coachesfeature "github.com/dalemusser/twindash/internal/app/features/coaches"
	dashboardfeature "github.com/dalemusser/twindash/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/twindash/internal/app/features/errors"
	healthfeature "github.com/dalemusser/twindash/internal/app/features/health"
	homefeature "github.com/dalemusser/twindash/internal/app/features/home"
	membersfeature "github.com/dalemusser/twindash/internal/app/features/members"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, source construction, the column
// map/template check and Startup have completed. It boots the template
// engine for the HTML pages and mounts the feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	return newRouter(appCfg, deps, logger), nil
}

// newRouter wires routes without touching the template engine.
func newRouter(appCfg AppConfig, deps DBDeps, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: appCfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// JSON for unmatched routes; set before mounting so subrouters inherit it.
	errorsHandler := errorsfeature.NewHandler(logger)
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Live, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Landing page
	homeHandler := homefeature.NewHandler("Digital Twin Dashboard", logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Everything below reads the sheet, so it is rate limited per client.
	r.Group(func(r chi.Router) {
		r.Use(deps.Limiter.Middleware(logger))

		membersHandler := membersfeature.NewHandler(deps.Source, appCfg.HeaderRows, appCfg.KeyColumn, logger)
		r.Mount("/members", membersfeature.Routes(membersHandler))

		coachesHandler := coachesfeature.NewHandler(deps.Source, appCfg.HeaderRows, appCfg.CoachColumn, logger)
		r.Mount("/coaches", coachesfeature.Routes(coachesHandler))

		dashboardHandler := dashboardfeature.NewHandler(deps.Source, dashboardfeature.Options{
			HeaderRows: appCfg.HeaderRows,
			KeyColumn:  appCfg.KeyColumn,
			Mapping:    deps.Mapping,
			Default:    appCfg.DefaultValue,
		}, deps.Renderer, logger)
		r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler))
	})

	return r
}
