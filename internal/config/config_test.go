package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		os.Clearenv()
		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("expected port 8080, got %s", cfg.Port)
		}
		if cfg.SessionLifetime != 720*time.Hour {
			t.Errorf("expected 720h session lifetime, got %s", cfg.SessionLifetime)
		}
		if cfg.Site.LocaleSet().Default() != "dk" {
			t.Errorf("expected default locale dk, got %s", cfg.Site.LocaleSet().Default())
		}
	})

	t.Run("CustomValues", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("PORT", "9000")
		os.Setenv("PAGE_CACHE_SIZE", "16")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Port != "9000" {
			t.Errorf("expected port 9000, got %s", cfg.Port)
		}
		if cfg.PageCacheSize != 16 {
			t.Errorf("expected cache size 16, got %d", cfg.PageCacheSize)
		}
	})

	t.Run("InvalidCacheSize", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("PAGE_CACHE_SIZE", "0")
		if _, err := Load(); err == nil {
			t.Error("expected error for zero cache size")
		}
	})

	t.Run("ProductionValidation", func(t *testing.T) {
		os.Clearenv()
		path := filepath.Join(t.TempDir(), "site.yaml")
		site := []byte(`name: Test
base_url: https://example.com
booking_url: http://booking.example.com
time_zone: Europe/Copenhagen
default_locale: dk
locales:
  - {code: dk, name: Dansk, tag: da}
`)
		if err := os.WriteFile(path, site, 0o644); err != nil {
			t.Fatal(err)
		}
		os.Setenv("APP_ENV", "prod")
		os.Setenv("SITE_CONFIG", path)
		if _, err := Load(); err == nil {
			t.Error("expected error for plain http booking url in production")
		}
	})

	t.Run("ProductionRejectsMessagesDir", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("APP_ENV", "prod")
		os.Setenv("MESSAGES_DIR", "./messages")
		if _, err := Load(); err == nil {
			t.Error("expected error for MESSAGES_DIR in production")
		}
	})
}

func TestParseSite(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name: "valid",
			yaml: `name: A
base_url: https://a.example
booking_url: https://book.example
time_zone: Europe/Copenhagen
default_locale: en
locales: [{code: en, name: English, tag: en}]`,
		},
		{
			name: "default not declared",
			yaml: `name: A
base_url: https://a.example
booking_url: https://book.example
time_zone: Europe/Copenhagen
default_locale: dk
locales: [{code: en, name: English, tag: en}]`,
			wantErr: true,
		},
		{
			name: "booking url missing",
			yaml: `name: A
base_url: https://a.example
time_zone: Europe/Copenhagen
default_locale: en
locales: [{code: en, name: English, tag: en}]`,
			wantErr: true,
		},
		{
			name: "unknown time zone",
			yaml: `name: A
base_url: https://a.example
booking_url: https://book.example
time_zone: Mars/Olympus
default_locale: en
locales: [{code: en, name: English, tag: en}]`,
			wantErr: true,
		},
		{
			name:    "not yaml",
			yaml:    "[unclosed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSite([]byte(tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseSite() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultSite(t *testing.T) {
	site, err := LoadSite("")
	if err != nil {
		t.Fatal(err)
	}
	set := site.LocaleSet()
	if got := set.Codes(); len(got) != 2 || got[0] != "dk" || got[1] != "en" {
		t.Errorf("unexpected locales %v", got)
	}
	if site.Location().String() != "Europe/Copenhagen" {
		t.Errorf("unexpected time zone %s", site.Location())
	}
}
