package routes

const (
	Home    = "/"
	About   = "/about"
	Locale  = "/locale"
	Assets  = "/assets/"
	Health  = "/health"
	Metrics = "/metrics"
)

// LocaleScript is the selector's client-side helper.
const LocaleScript = Assets + "locale.js"
