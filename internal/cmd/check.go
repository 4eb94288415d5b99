package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/indblik/site/internal/config"
	"github.com/indblik/site/internal/i18n"
)

// RunCheck validates the site configuration and reports message keys missing
// from any non-default locale. It exits non-zero when something is wrong.
func RunCheck() {
	if err := check(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func check(out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	set := cfg.Site.LocaleSet()

	catalog, err := i18n.Load(i18n.EmbeddedFS(), set, cfg.Site.Location())
	if err != nil {
		return fmt.Errorf("catalogs: %w", err)
	}
	if cfg.MessagesDir != "" {
		if err := catalog.Reload(os.DirFS(cfg.MessagesDir)); err != nil {
			return fmt.Errorf("catalogs in %s: %w", cfg.MessagesDir, err)
		}
	}

	incomplete := 0
	for _, l := range set.Codes() {
		missing := catalog.Missing(l)
		if len(missing) == 0 {
			fmt.Fprintf(out, "%s (%s): ok\n", l, set.Name(l))
			continue
		}
		incomplete++
		fmt.Fprintf(out, "%s (%s): %d missing\n", l, set.Name(l), len(missing))
		for _, key := range missing {
			fmt.Fprintf(out, "  %s\n", key)
		}
	}

	if incomplete > 0 {
		return fmt.Errorf("%d locale(s) with missing messages", incomplete)
	}
	return nil
}
