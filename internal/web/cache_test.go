package web

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/a-h/templ"

	"github.com/indblik/site/internal/i18n"
	"github.com/indblik/site/internal/locale"
)

func catalogFS(home string) fstest.MapFS {
	return fstest.MapFS{
		"dk.json": {Data: []byte(`{"nav": {"home": "` + home + `"}}`)},
		"en.json": {Data: []byte(`{"nav": {"home": "Home"}}`)},
	}
}

func renderFragment(t *testing.T, cache *PageCache, tr i18n.Translator, body templ.Component) string {
	t.Helper()
	fragment, err := cache.Fragment(httptest.NewRequest(http.MethodGet, "/", nil), tr, body)
	if err != nil {
		t.Fatalf("Fragment: %v", err)
	}
	var buf bytes.Buffer
	if err := fragment.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestPageCacheAcrossReloads(t *testing.T) {
	set := locale.MustNewSet([]locale.Definition{
		{Code: "dk", Tag: "da"},
		{Code: "en", Tag: "en"},
	}, "dk")
	catalog, err := i18n.Load(catalogFS("Forside"), set, nil)
	if err != nil {
		t.Fatal(err)
	}

	cache, err := NewPageCache(8)
	if err != nil {
		t.Fatal(err)
	}

	tr := catalog.Translator("dk")
	reloadMidRender := true
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		text := tr.T("nav.home")
		if reloadMidRender {
			reloadMidRender = false
			if err := catalog.Reload(catalogFS("Hjem")); err != nil {
				return err
			}
			cache.Purge()
		}
		_, err := io.WriteString(w, text)
		return err
	})

	if got := renderFragment(t, cache, tr, body); got != "Forside" {
		t.Fatalf("expected first render Forside, got %q", got)
	}

	// The body above finished after the reload and purge; it must not be
	// served for the new catalogs.
	if got := renderFragment(t, cache, tr, body); got != "Hjem" {
		t.Errorf("expected fresh render Hjem, got %q", got)
	}
	if got := renderFragment(t, cache, tr, body); got != "Hjem" {
		t.Errorf("expected cached Hjem, got %q", got)
	}
}

func TestTranslatorGeneration(t *testing.T) {
	if got := (i18n.Translator{}).Generation(); got != 0 {
		t.Errorf("expected zero generation for the zero translator, got %d", got)
	}
}
