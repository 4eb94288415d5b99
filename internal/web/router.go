package web

import (
	"io/fs"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/indblik/site/internal/middleware"
	"github.com/indblik/site/internal/routes"
)

// NewHandler assembles the site: static files, metrics and pages behind the
// middleware chain. Locale resolution runs before the session is loaded so
// canonical redirects never touch the store.
func NewHandler(deps HandlerDeps, sessions *scs.SessionManager, assetsFS fs.FS) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET "+routes.Assets, http.StripPrefix(routes.Assets, http.FileServer(http.FS(assetsFS))))
	mux.Handle("GET "+routes.Metrics, promhttp.Handler())

	RegisterRoutes(mux, deps)

	isProd := deps.Config.IsProd()

	limit := middleware.RateLimitDefault
	if deps.Limiter != nil {
		limit = deps.Limiter.Middleware
	}

	return middleware.Recovery(
		limit(
			middleware.SecurityHeaders(isProd)(
				middleware.Logger(
					middleware.Locale(deps.Resolver)(
						sessions.LoadAndSave(
							middleware.Provide(middleware.ProvideConfig{
								Resolver:    deps.Resolver,
								Catalog:     deps.Catalog,
								Preferences: deps.Preferences,
								IsProd:      isProd,
							})(
								middleware.CSRF(isProd)(mux),
							),
						),
					),
				),
			),
		),
	)
}
