package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/indblik/site/internal/config"
	"github.com/indblik/site/internal/i18n"
	"github.com/indblik/site/internal/locale"
	"github.com/indblik/site/internal/logging"
	"github.com/indblik/site/internal/metrics"
	"github.com/indblik/site/internal/middleware"
	"github.com/indblik/site/internal/routes"
	"github.com/indblik/site/internal/validator"
	"github.com/indblik/site/internal/view"
)

type HandlerDeps struct {
	Config      *config.Config
	Resolver    *locale.Resolver
	Catalog     *i18n.Catalog
	Preferences locale.PreferenceStore
	Cache       *PageCache
	// Limiter replaces the shared per-IP limiter when set.
	Limiter *middleware.RateLimiter
}

func (d HandlerDeps) site() view.Site {
	return view.Site{
		Name:       d.Config.Site.Name,
		BookingURL: d.Config.Site.BookingURL,
		Locales:    d.Resolver.Set(),
	}
}

// AppHandler é um tipo customizado que permite retornar erros dos handlers
type AppHandler func(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error

// Handle envolve nosso AppHandler para conformidade com http.HandlerFunc
func Handle(deps HandlerDeps, h AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(deps, w, r); err != nil {
			logging.Get().Error("request failed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("error", err),
			)

			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
}

func RegisterRoutes(mux *http.ServeMux, deps HandlerDeps) {
	mux.HandleFunc("GET "+routes.Home+"{$}", Handle(deps, handleHome))
	mux.HandleFunc("GET "+routes.About, Handle(deps, handleAbout))
	mux.HandleFunc("POST "+routes.Locale, Handle(deps, handleLocaleSwitch))
	mux.HandleFunc("GET "+routes.Health, Handle(deps, handleHealth))

	// Everything else under / is a page we do not have.
	mux.HandleFunc("GET /", Handle(deps, handleNotFound))
}

// --- Handler Implementations ---

func handleHome(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	logging.AddToEvent(r.Context(), slog.String("page", "home"))
	return renderPage(deps, w, r, "nav.home", view.Home(deps.site()), http.StatusOK)
}

func handleAbout(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	logging.AddToEvent(r.Context(), slog.String("page", "about"))
	return renderPage(deps, w, r, "about.title", view.About(deps.site()), http.StatusOK)
}

func handleNotFound(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	logging.AddToEvent(r.Context(), slog.String("page", "not_found"))
	return renderPage(deps, w, r, "notFound.title", view.NotFound(deps.site()), http.StatusNotFound)
}

// handleLocaleSwitch is the language selector's form target. It records the
// choice in the session and the preference cookie, then sends the visitor
// back to the page they came from in the canonical URL for the new locale.
func handleLocaleSwitch(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	set := deps.Resolver.Set()

	raw := r.FormValue("locale")
	chosen, ok := set.Parse(raw)
	if !ok {
		logging.AddToEvent(r.Context(), slog.String("invalid_locale", raw))
		chosen = set.Default()
	}

	back := validator.SanitizeReturnPath(r.FormValue("return"))

	// Best effort: the cookie below carries the choice even when the store
	// cannot.
	if deps.Preferences != nil {
		result := deps.Preferences.Save(r.Context(), chosen)
		metrics.PreferenceStore.WithLabelValues("save", result.String()).Inc()
	}
	http.SetCookie(w, locale.PreferenceCookie(chosen))

	target := deps.Resolver.Builder().Build(back.EscapedPath(), back.Query(), chosen, nil)

	metrics.LocaleSwitches.WithLabelValues(string(chosen)).Inc()
	logging.AddToEvent(r.Context(),
		slog.String("operation", "locale_switch"),
		slog.String("locale", string(chosen)),
		slog.String("target", target),
	)

	http.Redirect(w, r, target, http.StatusSeeOther)
	return nil
}

func handleHealth(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	for _, l := range deps.Resolver.Set().Codes() {
		if missing := deps.Catalog.Missing(l); len(missing) > 0 {
			logging.Get().Warn("health check warning: incomplete catalog",
				slog.String("locale", string(l)),
				slog.Int("missing", len(missing)),
			)
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
	return nil
}

// renderPage wraps body in the layout for the request's locale. Home and
// about bodies go through the page cache; the not-found body does not, since
// its path is arbitrary.
func renderPage(deps HandlerDeps, w http.ResponseWriter, r *http.Request, titleKey string, body templ.Component, status int) error {
	if status == http.StatusOK {
		fragment, err := deps.Cache.Fragment(r, i18n.Get(r.Context()), body)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", r.URL.Path, err)
		}
		body = fragment
	}

	page := view.Page(deps.site(), view.PageMeta{
		TitleKey: titleKey,
		Path:     r.URL.RequestURI(),
	}, body)

	templ.Handler(page, templ.WithStatus(status)).ServeHTTP(w, r)
	return nil
}
