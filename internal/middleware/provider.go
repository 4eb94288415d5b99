package middleware

import (
	"log/slog"
	"net/http"

	"github.com/indblik/site/internal/i18n"
	"github.com/indblik/site/internal/locale"
	"github.com/indblik/site/internal/logging"
	"github.com/indblik/site/internal/metrics"
)

// ProvideConfig wires the render-time locale provider.
type ProvideConfig struct {
	Resolver    *locale.Resolver
	Catalog     *i18n.Catalog
	Preferences locale.PreferenceStore
	IsProd      bool
}

// Provide makes the active locale, its translator and a locale-aware link
// builder available to everything rendered below it. The locale comes from
// the request tag; untagged requests are resolved with the same resolver.
//
// A preference kept in the store is copied into the preference cookie when
// the cookie is missing or stale. Store failures never reach the visitor and
// are only logged outside production.
func Provide(cfg ProvideConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			active, ok := locale.FromContext(ctx)
			if !ok {
				active = cfg.Resolver.ResolveRequest(r).Locale
				ctx = locale.WithLocale(ctx, active)
			}

			if cfg.Preferences != nil {
				syncPreference(w, r, cfg)
			}

			ctx = i18n.WithTranslator(ctx, cfg.Catalog.Translator(active))
			ctx = locale.WithLinks(ctx, cfg.Resolver.Builder().Links(active, r.URL.Query()))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func syncPreference(w http.ResponseWriter, r *http.Request, cfg ProvideConfig) {
	stored, result := cfg.Preferences.Load(r.Context())
	metrics.PreferenceStore.WithLabelValues("load", result.String()).Inc()

	switch result {
	case locale.StoreUnavailable:
		if !cfg.IsProd {
			logging.Get().Warn("preference store not available for reading",
				slog.String("path", r.URL.Path),
			)
		}
		return
	case locale.StoreEmpty:
		return
	}

	if c, err := r.Cookie(locale.CookieName); err == nil && c.Value == string(stored) {
		return
	}
	http.SetCookie(w, locale.PreferenceCookie(stored))
	logging.AddToEvent(r.Context(), slog.String("preference_synced", string(stored)))
}
