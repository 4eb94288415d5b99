package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/klauspost/compress/gzhttp"

	"github.com/indblik/site/internal/config"
	"github.com/indblik/site/internal/i18n"
	"github.com/indblik/site/internal/locale"
	"github.com/indblik/site/internal/logging"
	"github.com/indblik/site/internal/metrics"
	"github.com/indblik/site/internal/web"
)

func RunServer(assetsFS fs.FS) {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	logging.Init(cfg.LogLevel)
	logger := logging.Get()

	set := cfg.Site.LocaleSet()
	resolver := locale.NewResolver(set)

	// 1. Catálogos de mensagens
	catalog, err := i18n.Load(i18n.EmbeddedFS(), set, cfg.Site.Location())
	if err != nil {
		logger.Error("failed to load message catalogs", "error", err)
		panic(err)
	}
	for _, l := range set.Codes() {
		if missing := catalog.Missing(l); len(missing) > 0 {
			logger.Warn("catalog incomplete", slog.String("locale", string(l)), slog.Any("missing", missing))
		}
	}

	cache, err := web.NewPageCache(cfg.PageCacheSize)
	if err != nil {
		logger.Error("failed to create page cache", "error", err)
		panic(err)
	}

	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()

	if cfg.MessagesDir != "" {
		if err := catalog.Reload(os.DirFS(cfg.MessagesDir)); err != nil {
			logger.Error("failed to load catalogs from disk", "dir", cfg.MessagesDir, "error", err)
			panic(err)
		}
		onReload := func(err error) {
			if err != nil {
				metrics.CatalogReloads.WithLabelValues("error").Inc()
				return
			}
			metrics.CatalogReloads.WithLabelValues("ok").Inc()
			cache.Purge()
		}
		if err := catalog.Watch(watchCtx, cfg.MessagesDir, onReload); err != nil {
			logger.Error("failed to watch catalogs", "dir", cfg.MessagesDir, "error", err)
			panic(err)
		}
		logger.Info("watching message catalogs", "dir", cfg.MessagesDir)
	}

	// 2. Sessões (memória; a preferência também vive no cookie)
	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Cookie.Secure = cfg.IsProd()
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	prefs := locale.NewSessionStore(sessionManager, set)
	if !cfg.IsProd() {
		prefs.Err = func(err error) {
			logger.Debug("preference store unavailable", "error", err)
		}
	}

	handler := web.NewHandler(web.HandlerDeps{
		Config:      cfg,
		Resolver:    resolver,
		Catalog:     catalog,
		Preferences: prefs,
		Cache:       cache,
	}, sessionManager, assetsFS)

	compressedHandler := gzhttp.GzipHandler(handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           compressedHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server started",
			"port", cfg.Port,
			"env", cfg.Env,
			"default_locale", string(set.Default()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("server stopping")

	cancelWatch()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited properly")
}
