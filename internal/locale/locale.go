// Package locale holds the site's locale set and the logic that decides which
// locale a request is served in.
package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locale is a locale code as it appears in URLs and cookies ("dk", "en").
type Locale string

// Definition describes one supported locale.
type Definition struct {
	Code string
	Name string
	Flag string
	Tag  string
}

// Option is one entry of the language selector.
type Option struct {
	Code     Locale
	Name     string
	Flag     string
	Selected bool
}

// Set is the immutable, ordered collection of supported locales. It is built
// once at startup and shared read-only by every request.
type Set struct {
	codes []Locale
	def   Locale
	names map[Locale]string
	flags map[Locale]string
	tags  map[Locale]language.Tag
}

func NewSet(defs []Definition, defaultCode string) (*Set, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("locale set: no locales declared")
	}

	s := &Set{
		codes: make([]Locale, 0, len(defs)),
		names: make(map[Locale]string, len(defs)),
		flags: make(map[Locale]string, len(defs)),
		tags:  make(map[Locale]language.Tag, len(defs)),
	}

	for _, d := range defs {
		code := Locale(strings.TrimSpace(d.Code))
		if code == "" {
			return nil, fmt.Errorf("locale set: empty locale code")
		}
		if _, dup := s.names[code]; dup {
			return nil, fmt.Errorf("locale set: duplicate locale %q", code)
		}

		rawTag := d.Tag
		if rawTag == "" {
			rawTag = string(code)
		}
		tag, err := language.Parse(rawTag)
		if err != nil {
			return nil, fmt.Errorf("locale set: invalid tag %q for %q: %w", rawTag, code, err)
		}

		name := d.Name
		if name == "" {
			name = string(code)
		}

		s.codes = append(s.codes, code)
		s.names[code] = name
		s.flags[code] = d.Flag
		s.tags[code] = tag
	}

	def := Locale(strings.TrimSpace(defaultCode))
	if _, ok := s.names[def]; !ok {
		return nil, fmt.Errorf("locale set: default locale %q is not declared", defaultCode)
	}
	s.def = def

	return s, nil
}

// MustNewSet is NewSet for static configuration; it panics on error.
func MustNewSet(defs []Definition, defaultCode string) *Set {
	s, err := NewSet(defs, defaultCode)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Set) Default() Locale {
	return s.def
}

// Codes returns the locales in declaration order.
func (s *Set) Codes() []Locale {
	out := make([]Locale, len(s.codes))
	copy(out, s.codes)
	return out
}

func (s *Set) Valid(l Locale) bool {
	_, ok := s.names[l]
	return ok
}

// Parse validates a raw signal value. Anything outside the set is reported as
// absent.
func (s *Set) Parse(raw string) (Locale, bool) {
	l := Locale(raw)
	if raw == "" || !s.Valid(l) {
		return "", false
	}
	return l, true
}

// OrDefault returns l when it is a member of the set and the default otherwise.
func (s *Set) OrDefault(l Locale) Locale {
	if s.Valid(l) {
		return l
	}
	return s.def
}

func (s *Set) IsDefault(l Locale) bool {
	return l == s.def
}

func (s *Set) Name(l Locale) string {
	return s.names[s.OrDefault(l)]
}

func (s *Set) Flag(l Locale) string {
	return s.flags[s.OrDefault(l)]
}

// Tag returns the BCP 47 tag of the locale, e.g. "da" for "dk".
func (s *Set) Tag(l Locale) language.Tag {
	return s.tags[s.OrDefault(l)]
}

func (s *Set) Tags() []language.Tag {
	out := make([]language.Tag, 0, len(s.codes))
	for _, c := range s.codes {
		out = append(out, s.tags[c])
	}
	return out
}

// Options lists the selector entries with current marked as selected.
func (s *Set) Options(current Locale) []Option {
	out := make([]Option, 0, len(s.codes))
	for _, c := range s.codes {
		out = append(out, Option{
			Code:     c,
			Name:     s.names[c],
			Flag:     s.flags[c],
			Selected: c == current,
		})
	}
	return out
}
