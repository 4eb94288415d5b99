package locale

import (
	"net/url"
)

// Builder produces links that follow the canonical rule: the lang parameter is
// present if and only if the locale is not the default.
type Builder struct {
	set *Set
}

func NewBuilder(set *Set) *Builder {
	return &Builder{set: set}
}

// Build starts from current, overlays extra and then applies the canonical
// locale parameter. current is never modified.
func (b *Builder) Build(path string, current url.Values, l Locale, extra map[string]string) string {
	params := url.Values{}
	for k, vs := range current {
		params[k] = append([]string(nil), vs...)
	}
	for k, v := range extra {
		params.Set(k, v)
	}

	l = b.set.OrDefault(l)
	if b.set.IsDefault(l) {
		params.Del(ParamName)
	} else {
		params.Set(ParamName, string(l))
	}

	if path == "" {
		path = "/"
	}
	if qs := params.Encode(); qs != "" {
		return path + "?" + qs
	}
	return path
}

// Links binds a builder to the active locale and the query of the page being
// rendered.
func (b *Builder) Links(l Locale, current url.Values) Links {
	return Links{builder: b, locale: l, query: current}
}

// Links is what templates use to generate internal hrefs.
type Links struct {
	builder *Builder
	locale  Locale
	query   url.Values
}

func (l Links) Locale() Locale {
	return l.locale
}

// URL builds a link to path keeping the current query.
func (l Links) URL(path string) string {
	if l.builder == nil {
		return path
	}
	return l.builder.Build(path, l.query, l.locale, nil)
}

// With builds a link to path with extra parameters as alternating key/value
// pairs.
func (l Links) With(path string, kv ...string) string {
	if l.builder == nil {
		return path
	}
	extra := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		extra[kv[i]] = kv[i+1]
	}
	return l.builder.Build(path, l.query, l.locale, extra)
}

// Page is the path-only link to path in the active locale, without carrying
// over the current query.
func (l Links) Page(path string) string {
	if l.builder == nil {
		return path
	}
	return l.builder.Build(path, nil, l.locale, nil)
}
