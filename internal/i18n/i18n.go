package i18n

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/microcosm-cc/bluemonday"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tidwall/gjson"

	"github.com/indblik/site/internal/contextkeys"
	"github.com/indblik/site/internal/locale"
	"github.com/indblik/site/internal/logging"
)

// Messages holds the built-in catalogs, one <code>.json document per locale.
//
//go:embed messages/*.json
var Messages embed.FS

// EmbeddedFS returns the built-in catalogs rooted at the messages directory.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(Messages, "messages")
	if err != nil {
		panic(err)
	}
	return sub
}

// snapshot is one complete, immutable load of every locale's catalog.
type snapshot struct {
	localizers map[locale.Locale]*goi18n.Localizer
	lists      map[locale.Locale]map[string][]string
	keys       map[locale.Locale]map[string]struct{}
	generation uint64
}

// Catalog keeps every locale's messages resident. Reload swaps all catalogs
// at once.
type Catalog struct {
	set    *locale.Set
	tz     *time.Location
	policy *bluemonday.Policy
	cur    atomic.Pointer[snapshot]
	loads  atomic.Uint64
}

// Load reads <code>.json for every locale of set from fsys.
func Load(fsys fs.FS, set *locale.Set, tz *time.Location) (*Catalog, error) {
	if tz == nil {
		tz = time.UTC
	}
	c := &Catalog{
		set:    set,
		tz:     tz,
		policy: bluemonday.UGCPolicy(),
	}
	if err := c.Reload(fsys); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload replaces every catalog from fsys. On error the previous catalogs stay
// in place.
func (c *Catalog) Reload(fsys fs.FS) error {
	bundle := goi18n.NewBundle(c.set.Tag(c.set.Default()))
	snap := &snapshot{
		localizers: make(map[locale.Locale]*goi18n.Localizer),
		lists:      make(map[locale.Locale]map[string][]string),
		keys:       make(map[locale.Locale]map[string]struct{}),
	}

	for _, code := range c.set.Codes() {
		name := string(code) + ".json"
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read catalog %s: %w", name, err)
		}

		messages, lists, err := parseDocument(data)
		if err != nil {
			return fmt.Errorf("parse catalog %s: %w", name, err)
		}

		tag := c.set.Tag(code)
		if err := bundle.AddMessages(tag, messages...); err != nil {
			return fmt.Errorf("register catalog %s: %w", name, err)
		}

		keys := make(map[string]struct{}, len(messages)+len(lists))
		for _, m := range messages {
			keys[m.ID] = struct{}{}
		}
		for k := range lists {
			keys[k] = struct{}{}
		}

		snap.lists[code] = lists
		snap.keys[code] = keys
	}

	for _, code := range c.set.Codes() {
		snap.localizers[code] = goi18n.NewLocalizer(bundle, c.set.Tag(code).String())
	}

	snap.generation = c.loads.Add(1)
	c.cur.Store(snap)
	return nil
}

// Generation identifies the catalogs currently in use. It changes on every
// successful reload.
func (c *Catalog) Generation() uint64 {
	return c.cur.Load().generation
}

// parseDocument flattens a nested JSON document into dotted keys. String
// leaves become messages and arrays become lists.
func parseDocument(data []byte) ([]*goi18n.Message, map[string][]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, nil, errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, nil, errors.New("catalog root must be an object")
	}

	var messages []*goi18n.Message
	lists := make(map[string][]string)

	var walk func(prefix string, node gjson.Result)
	walk = func(prefix string, node gjson.Result) {
		node.ForEach(func(k, v gjson.Result) bool {
			key := k.String()
			if prefix != "" {
				key = prefix + "." + key
			}
			switch {
			case v.IsObject():
				walk(key, v)
			case v.IsArray():
				items := v.Array()
				list := make([]string, 0, len(items))
				for _, item := range items {
					list = append(list, item.String())
				}
				lists[key] = list
			default:
				messages = append(messages, &goi18n.Message{ID: key, Other: v.String()})
			}
			return true
		})
	}
	walk("", root)

	return messages, lists, nil
}

// T localizes key for l. A key missing from l falls back to the default
// locale; a key missing everywhere renders as the key itself.
func (c *Catalog) T(l locale.Locale, key string, data ...map[string]any) string {
	snap := c.cur.Load()
	loc, ok := snap.localizers[c.set.OrDefault(l)]
	if !ok {
		return key
	}

	cfg := &goi18n.LocalizeConfig{MessageID: key}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}

	msg, err := loc.Localize(cfg)
	if err != nil {
		var notFound *goi18n.MessageNotFoundErr
		if errors.As(err, &notFound) {
			logging.Get().Debug("missing message", slog.String("key", key), slog.String("locale", string(l)))
		} else {
			logging.Get().Warn("localize failed", slog.String("key", key), slog.Any("error", err))
		}
		if msg == "" {
			return key
		}
	}
	return msg
}

// List returns the string list stored under key, falling back to the default
// locale. Missing lists are nil.
func (c *Catalog) List(l locale.Locale, key string) []string {
	snap := c.cur.Load()
	if list, ok := snap.lists[c.set.OrDefault(l)][key]; ok {
		return list
	}
	return snap.lists[c.set.Default()][key]
}

// HTML returns the message as sanitized markup.
func (c *Catalog) HTML(l locale.Locale, key string, data ...map[string]any) template.HTML {
	return template.HTML(c.policy.Sanitize(c.T(l, key, data...)))
}

// Missing lists the keys present in the default locale but absent from l.
func (c *Catalog) Missing(l locale.Locale) []string {
	snap := c.cur.Load()
	want := snap.keys[c.set.Default()]
	have := snap.keys[l]

	var missing []string
	for k := range want {
		if _, ok := have[k]; !ok {
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	return missing
}

// Translator returns the lookup scoped to l.
func (c *Catalog) Translator(l locale.Locale) Translator {
	return Translator{catalog: c, locale: c.set.OrDefault(l)}
}

// Translator is the catalog bound to one locale. The zero value renders keys.
type Translator struct {
	catalog *Catalog
	locale  locale.Locale
}

func (t Translator) Locale() locale.Locale {
	return t.locale
}

func (t Translator) T(key string, data ...map[string]any) string {
	if t.catalog == nil {
		return key
	}
	return t.catalog.T(t.locale, key, data...)
}

func (t Translator) List(key string) []string {
	if t.catalog == nil {
		return nil
	}
	return t.catalog.List(t.locale, key)
}

func (t Translator) HTML(key string, data ...map[string]any) template.HTML {
	if t.catalog == nil {
		return template.HTML(template.HTMLEscapeString(key))
	}
	return t.catalog.HTML(t.locale, key, data...)
}

// Generation is the catalog generation, or 0 for the zero translator.
func (t Translator) Generation() uint64 {
	if t.catalog == nil {
		return 0
	}
	return t.catalog.Generation()
}

// Now is the current time in the site's time zone.
func (t Translator) Now() time.Time {
	if t.catalog == nil {
		return time.Now()
	}
	return time.Now().In(t.catalog.tz)
}

func WithTranslator(ctx context.Context, t Translator) context.Context {
	return context.WithValue(ctx, contextkeys.TranslatorKey, t)
}

// Get returns the translator of the current render.
func Get(ctx context.Context) Translator {
	t, _ := ctx.Value(contextkeys.TranslatorKey).(Translator)
	return t
}
