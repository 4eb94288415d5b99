package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/indblik/site/internal/i18n"
	"github.com/indblik/site/internal/locale"
	"github.com/indblik/site/internal/metrics"
)

// PageCache keeps rendered page bodies per catalog generation, locale and
// path. Only the body is cached; the layout carries per-visitor data and is
// rendered every time. A body rendered while the catalogs were reloaded is
// stored under the old generation and never served again.
type PageCache struct {
	pages *lru.Cache[string, []byte]
}

func NewPageCache(size int) (*PageCache, error) {
	pages, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("page cache: %w", err)
	}
	return &PageCache{pages: pages}, nil
}

// Fragment returns body as rendered with tr, from the cache when the request
// allows it. A nil cache renders straight through.
func (c *PageCache) Fragment(r *http.Request, tr i18n.Translator, body templ.Component) (templ.Component, error) {
	if c == nil || !cacheable(r) {
		metrics.PageCacheRequests.WithLabelValues("bypass").Inc()
		return body, nil
	}

	key := strconv.FormatUint(tr.Generation(), 10) + " " + string(tr.Locale()) + " " + r.URL.Path
	if b, ok := c.pages.Get(key); ok {
		metrics.PageCacheRequests.WithLabelValues("hit").Inc()
		return templ.Raw(string(b)), nil
	}

	var buf bytes.Buffer
	if err := body.Render(r.Context(), &buf); err != nil {
		return nil, err
	}
	c.pages.Add(key, buf.Bytes())
	metrics.PageCacheRequests.WithLabelValues("miss").Inc()
	return templ.Raw(buf.String()), nil
}

// Purge drops every cached body. It runs after a catalog reload.
func (c *PageCache) Purge() {
	if c != nil {
		c.pages.Purge()
	}
}

func (c *PageCache) Len() int {
	if c == nil {
		return 0
	}
	return c.pages.Len()
}

// cacheable reports whether the rendered body depends on nothing but the
// locale and the path.
func cacheable(r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}
	for k := range r.URL.Query() {
		if k != locale.ParamName {
			return false
		}
	}
	return true
}
