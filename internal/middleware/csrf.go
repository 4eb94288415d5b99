package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/justinas/nosurf"

	"github.com/indblik/site/internal/contextkeys"
	"github.com/indblik/site/internal/logging"
)

// CSRF protects the form posts below it (the language selector) and exposes
// the per-request token to templates.
func CSRF(isProd bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		h := nosurf.New(InjectCSRF(next))
		h.SetBaseCookie(http.Cookie{
			HttpOnly: true,
			Path:     "/",
			Secure:   isProd,
			SameSite: http.SameSiteLaxMode,
		})
		// TLS ends at the proxy in production; origin checks need the
		// public scheme.
		h.SetIsTLSFunc(func(r *http.Request) bool {
			return isProd || r.TLS != nil
		})
		h.SetFailureHandler(http.HandlerFunc(csrfFailed))
		return h
	}
}

func csrfFailed(w http.ResponseWriter, r *http.Request) {
	logging.AddToEvent(r.Context(),
		slog.String("outcome", "error"),
		slog.String("error_reason", "csrf_rejected"),
	)
	if err := nosurf.Reason(r); err != nil {
		logging.AddToEvent(r.Context(), slog.String("csrf_reason", err.Error()))
	}
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}

// InjectCSRF copies the nosurf token into the context. It must run inside
// the nosurf handler.
func InjectCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), contextkeys.CSRFTokenKey, nosurf.Token(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
