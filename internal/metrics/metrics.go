package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"path", "method", "status"})

	LocaleResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "locale_resolutions_total",
		Help: "Resolved request locales by signal source",
	}, []string{"locale", "source"})

	LocaleRedirects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "locale_redirects_total",
		Help: "Redirects issued to canonicalize the lang parameter",
	}, []string{"reason"})

	LocaleSwitches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "locale_switches_total",
		Help: "Language selector submissions by chosen locale",
	}, []string{"locale"})

	PreferenceStore = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "locale_preference_store_total",
		Help: "Preference store operations by outcome",
	}, []string{"op", "result"})

	PageCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "page_cache_requests_total",
		Help: "Rendered page fragment cache lookups",
	}, []string{"result"})

	CatalogReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_reloads_total",
		Help: "Message catalog reloads by outcome",
	}, []string{"outcome"})
)
