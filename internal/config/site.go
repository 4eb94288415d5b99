package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/indblik/site/internal/locale"
	"github.com/indblik/site/internal/validator"
)

//go:embed site.yaml
var defaultSite []byte

// Site is the static description of the practice and its languages.
type Site struct {
	Name          string       `yaml:"name" validate:"required"`
	BaseURL       string       `yaml:"base_url" validate:"required,url"`
	BookingURL    string       `yaml:"booking_url" validate:"required,url"`
	TimeZone      string       `yaml:"time_zone" validate:"required"`
	DefaultLocale string       `yaml:"default_locale" validate:"required"`
	Locales       []SiteLocale `yaml:"locales" validate:"required,min=1,dive"`

	location *time.Location
	locales  *locale.Set
}

type SiteLocale struct {
	Code string `yaml:"code" validate:"required,alpha"`
	Name string `yaml:"name" validate:"required"`
	Flag string `yaml:"flag"`
	Tag  string `yaml:"tag" validate:"required,bcp47_language_tag"`
}

// LoadSite reads the site file at path, or the built-in one when path is
// empty.
func LoadSite(path string) (*Site, error) {
	data := defaultSite
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read site config: %w", err)
		}
		data = b
	}
	return ParseSite(data)
}

func ParseSite(data []byte) (*Site, error) {
	var s Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse site config: %w", err)
	}

	if result := validator.ValidateStruct(s); !result.Valid {
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			msgs = append(msgs, e.Field+" "+e.Message)
		}
		return nil, fmt.Errorf("invalid site config: %s", strings.Join(msgs, "; "))
	}

	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid site time zone: %w", err)
	}
	s.location = loc

	defs := make([]locale.Definition, 0, len(s.Locales))
	for _, l := range s.Locales {
		defs = append(defs, locale.Definition{Code: l.Code, Name: l.Name, Flag: l.Flag, Tag: l.Tag})
	}
	set, err := locale.NewSet(defs, s.DefaultLocale)
	if err != nil {
		return nil, fmt.Errorf("invalid site config: %w", err)
	}
	s.locales = set

	return &s, nil
}

// LocaleSet is the immutable locale configuration shared by every request.
func (s *Site) LocaleSet() *locale.Set {
	return s.locales
}

func (s *Site) Location() *time.Location {
	return s.location
}
