package middleware

import (
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/indblik/site/internal/locale"
	"github.com/indblik/site/internal/logging"
	"github.com/indblik/site/internal/metrics"
)

var (
	skipPrefixes = []string{"/assets/", "/api/", "/metrics", "/health"}
	skipFiles    = map[string]bool{
		"/favicon.ico": true,
		"/robots.txt":  true,
		"/sitemap.xml": true,
	}
	skipExtensions = map[string]bool{
		".css": true, ".js": true, ".json": true, ".jpg": true, ".jpeg": true,
		".webp": true, ".png": true, ".gif": true, ".svg": true, ".ttf": true,
		".woff": true, ".woff2": true, ".ico": true, ".csv": true, ".doc": true,
		".docx": true, ".xls": true, ".xlsx": true, ".zip": true, ".webmanifest": true,
	}
)

// skipLocale reports whether p is a static file or an internal endpoint that
// is served without locale resolution.
func skipLocale(p string) bool {
	if skipFiles[p] {
		return true
	}
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return skipExtensions[strings.ToLower(path.Ext(p))]
}

// Locale resolves the request locale. Page requests whose URL is not in
// canonical form are redirected; everything else is tagged with the locale
// and passed on.
func Locale(resolver *locale.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skipLocale(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			res := resolver.ResolveRequest(r)

			metrics.LocaleResolutions.WithLabelValues(string(res.Locale), string(res.Source)).Inc()
			logging.AddToEvent(r.Context(),
				slog.String("locale", string(res.Locale)),
				slog.String("locale_source", string(res.Source)),
			)

			// Only navigations are normalized; form posts keep their method and body.
			if res.NeedsRedirect() && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
				metrics.LocaleRedirects.WithLabelValues(res.Redirect.String()).Inc()
				logging.AddToEvent(r.Context(), slog.String("locale_redirect", res.Redirect.String()))
				http.Redirect(w, r, resolver.Target(r.URL, res), http.StatusTemporaryRedirect)
				return
			}

			w.Header().Set("X-Locale", string(res.Locale))
			next.ServeHTTP(w, r.WithContext(locale.WithLocale(r.Context(), res.Locale)))
		})
	}
}
