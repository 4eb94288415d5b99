package locale

import (
	"net/http"
	"net/url"
	"strings"
)

const (
	ParamName  = "lang"
	CookieName = "preferredLocale"
)

// Source names the signal a locale was resolved from.
type Source string

const (
	SourceParam   Source = "param"
	SourceCookie  Source = "cookie"
	SourceHeader  Source = "header"
	SourceDefault Source = "default"
)

// Redirect is the URL normalization a resolution asks for.
type Redirect int

const (
	RedirectNone Redirect = iota
	// RedirectAddParam: non-default locale resolved without an explicit parameter.
	RedirectAddParam
	// RedirectStripParam: the explicit parameter names the default locale.
	RedirectStripParam
)

func (r Redirect) String() string {
	switch r {
	case RedirectAddParam:
		return "add_param"
	case RedirectStripParam:
		return "strip_param"
	default:
		return "none"
	}
}

// Signals are the raw, unvalidated locale hints carried by a request.
type Signals struct {
	Param          string
	Cookie         string
	AcceptLanguage string
}

func SignalsFromRequest(r *http.Request) Signals {
	s := Signals{
		Param:          r.URL.Query().Get(ParamName),
		AcceptLanguage: r.Header.Get("Accept-Language"),
	}
	if c, err := r.Cookie(CookieName); err == nil {
		s.Cookie = c.Value
	}
	return s
}

// Resolution is the outcome of resolving one request.
type Resolution struct {
	Locale   Locale
	Source   Source
	Redirect Redirect
}

func (r Resolution) NeedsRedirect() bool {
	return r.Redirect != RedirectNone
}

type lookup func(Signals) (Locale, bool)

// Resolver picks the active locale from request signals. It is the single
// resolution function used both by the request middleware and at render time.
type Resolver struct {
	set     *Set
	builder *Builder
	chain   []struct {
		source Source
		find   lookup
	}
}

func NewResolver(set *Set) *Resolver {
	r := &Resolver{set: set, builder: NewBuilder(set)}
	r.chain = []struct {
		source Source
		find   lookup
	}{
		{SourceParam, r.fromParam},
		{SourceCookie, r.fromCookie},
		{SourceHeader, r.fromHeader},
	}
	return r
}

func (r *Resolver) Set() *Set {
	return r.set
}

func (r *Resolver) Builder() *Builder {
	return r.builder
}

// Resolve walks param, cookie and Accept-Language in that order and falls back
// to the default locale. It never fails.
func (r *Resolver) Resolve(s Signals) Resolution {
	res := Resolution{Locale: r.set.Default(), Source: SourceDefault}
	for _, step := range r.chain {
		if l, ok := step.find(s); ok {
			res.Locale, res.Source = l, step.source
			break
		}
	}

	def := r.set.Default()
	switch {
	case res.Locale != def && s.Param == "":
		res.Redirect = RedirectAddParam
	case res.Locale == def && s.Param == string(def):
		res.Redirect = RedirectStripParam
	}

	return res
}

// ResolveRequest is Resolve over the signals of r.
func (r *Resolver) ResolveRequest(req *http.Request) Resolution {
	return r.Resolve(SignalsFromRequest(req))
}

// Target returns the canonical location for u under res. Path and every other
// query parameter are preserved.
func (r *Resolver) Target(u *url.URL, res Resolution) string {
	return r.builder.Build(u.EscapedPath(), u.Query(), res.Locale, nil)
}

func (r *Resolver) fromParam(s Signals) (Locale, bool) {
	return r.set.Parse(s.Param)
}

func (r *Resolver) fromCookie(s Signals) (Locale, bool) {
	return r.set.Parse(s.Cookie)
}

// fromHeader matches declared codes as raw substrings of the header, in
// declaration order. Quality values are ignored.
func (r *Resolver) fromHeader(s Signals) (Locale, bool) {
	if s.AcceptLanguage == "" {
		return "", false
	}
	for _, c := range r.set.codes {
		if strings.Contains(s.AcceptLanguage, string(c)) {
			return c, true
		}
	}
	return "", false
}
