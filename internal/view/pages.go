// Package view renders the site's pages as templ components.
package view

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/indblik/site/internal/i18n"
	"github.com/indblik/site/internal/locale"
	"github.com/indblik/site/internal/routes"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Site is the page-independent data every page needs.
type Site struct {
	Name       string
	BookingURL string
	Locales    *locale.Set
}

// PageMeta describes the page being rendered. Path is the request URI the
// language selector returns to.
type PageMeta struct {
	TitleKey string
	Path     string
}

type content struct {
	T          i18n.Translator
	Links      locale.Links
	BookingURL string
}

type layout struct {
	T              i18n.Translator
	Links          locale.Links
	BookingURL     string
	Lang           string
	Title          string
	SiteName       string
	Options        []locale.Option
	CSRF           string
	Nonce          string
	Return         string
	SelectorAction string
	Script         string
	Footer         map[string]any
	Body           template.HTML
}

func section(name string, site Site) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return templates.ExecuteTemplate(w, name, contentFrom(ctx, site))
	})
}

func contentFrom(ctx context.Context, site Site) content {
	return content{
		T:          i18n.Get(ctx),
		Links:      locale.LinksFromContext(ctx),
		BookingURL: site.BookingURL,
	}
}

func Home(site Site) templ.Component {
	return section("home", site)
}

func About(site Site) templ.Component {
	return section("about", site)
}

func NotFound(site Site) templ.Component {
	return section("not_found", site)
}

// Page wraps body in the site layout: navigation, language selector and
// footer.
func Page(site Site, meta PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := body.Render(ctx, &buf); err != nil {
			return err
		}

		c := contentFrom(ctx, site)
		active := site.Locales.OrDefault(c.T.Locale())

		title := site.Name
		if meta.TitleKey != "" {
			title = c.T.T(meta.TitleKey) + " · " + site.Name
		}

		ret := meta.Path
		if ret == "" {
			ret = routes.Home
		}

		return templates.ExecuteTemplate(w, "layout", layout{
			T:              c.T,
			Links:          c.Links,
			BookingURL:     c.BookingURL,
			Lang:           site.Locales.Tag(active).String(),
			Title:          title,
			SiteName:       site.Name,
			Options:        site.Locales.Options(active),
			CSRF:           CSRFToken(ctx),
			Nonce:          Nonce(ctx),
			Return:         ret,
			SelectorAction: routes.Locale,
			Script:         routes.LocaleScript,
			Footer:         map[string]any{"Year": c.T.Now().Year(), "Name": site.Name},
			Body:           template.HTML(buf.String()),
		})
	})
}
