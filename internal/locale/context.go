package locale

import (
	"context"
	"net/http"

	"github.com/indblik/site/internal/contextkeys"
)

// CookieMaxAge is one year, in seconds.
const CookieMaxAge = 365 * 24 * 60 * 60

func WithLocale(ctx context.Context, l Locale) context.Context {
	return context.WithValue(ctx, contextkeys.LocaleKey, l)
}

// FromContext returns the locale tagged on the request, if any.
func FromContext(ctx context.Context) (Locale, bool) {
	l, ok := ctx.Value(contextkeys.LocaleKey).(Locale)
	return l, ok && l != ""
}

func WithLinks(ctx context.Context, links Links) context.Context {
	return context.WithValue(ctx, contextkeys.LinksKey, links)
}

// LinksFromContext returns the link builder for the current render. The zero
// Links returns paths unchanged.
func LinksFromContext(ctx context.Context) Links {
	links, _ := ctx.Value(contextkeys.LinksKey).(Links)
	return links
}

// PreferenceCookie is the persisted locale choice. Domain, Secure and SameSite
// are left to deployment defaults.
func PreferenceCookie(l Locale) *http.Cookie {
	return &http.Cookie{
		Name:   CookieName,
		Value:  string(l),
		Path:   "/",
		MaxAge: CookieMaxAge,
	}
}
