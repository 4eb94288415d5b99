package view

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/indblik/site/internal/contextkeys"
	"github.com/indblik/site/internal/i18n"
	"github.com/indblik/site/internal/locale"
)

func testSite(t *testing.T) (Site, *i18n.Catalog) {
	t.Helper()
	set := locale.MustNewSet([]locale.Definition{
		{Code: "dk", Name: "Dansk", Flag: "🇩🇰", Tag: "da"},
		{Code: "en", Name: "English", Flag: "🇺🇸", Tag: "en"},
	}, "dk")
	catalog, err := i18n.Load(i18n.EmbeddedFS(), set, nil)
	if err != nil {
		t.Fatal(err)
	}
	return Site{Name: "Indblik", BookingURL: "https://booking.example/indblik", Locales: set}, catalog
}

func renderCtx(site Site, catalog *i18n.Catalog, l locale.Locale, query url.Values) context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.CSRFTokenKey, "tok123")
	ctx = i18n.WithTranslator(ctx, catalog.Translator(l))
	return locale.WithLinks(ctx, locale.NewBuilder(site.Locales).Links(l, query))
}

func TestPage(t *testing.T) {
	site, catalog := testSite(t)

	t.Run("English", func(t *testing.T) {
		ctx := renderCtx(site, catalog, "en", url.Values{"lang": {"en"}})

		var buf bytes.Buffer
		err := Page(site, PageMeta{TitleKey: "nav.home", Path: "/?lang=en"}, Home(site)).Render(ctx, &buf)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		html := buf.String()

		for _, want := range []string{
			`<html lang="en">`,
			`<title>Home · Indblik</title>`,
			`href="/about?lang=en"`,
			`<option value="en" selected>`,
			`name="csrf_token" value="tok123"`,
			`name="return" value="/?lang=en"`,
			`href="https://booking.example/indblik" target="_blank" rel="noopener noreferrer"`,
			`<li>Stress and burnout</li>`,
			`<strong>you</strong>`,
			`All rights reserved.`,
		} {
			if !strings.Contains(html, want) {
				t.Errorf("expected %q in output", want)
			}
		}
	})

	t.Run("DanishLinksAreParameterFree", func(t *testing.T) {
		ctx := renderCtx(site, catalog, "dk", nil)

		var buf bytes.Buffer
		if err := Page(site, PageMeta{TitleKey: "about.title", Path: "/about"}, About(site)).Render(ctx, &buf); err != nil {
			t.Fatalf("Render: %v", err)
		}
		html := buf.String()

		if !strings.Contains(html, `<html lang="da">`) {
			t.Error("expected danish lang attribute")
		}
		if strings.Contains(html, "?lang=") {
			t.Error("danish page must not carry a lang parameter in links")
		}
		if !strings.Contains(html, `<option value="dk" selected>`) {
			t.Error("expected dk selected")
		}
		if !strings.Contains(html, "Psykoterapeut MPF") {
			t.Error("expected credentials list")
		}
	})

	t.Run("WithoutProvider", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Page(site, PageMeta{}, NotFound(site)).Render(context.Background(), &buf); err != nil {
			t.Fatalf("Render: %v", err)
		}
		if !strings.Contains(buf.String(), "notFound.title") {
			t.Error("expected raw keys without a translator")
		}
	})
}
