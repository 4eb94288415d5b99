package contextkeys

type contextKey string

const LocaleKey contextKey = "locale"
const TranslatorKey contextKey = "translator"
const LinksKey contextKey = "links"
const CSRFTokenKey contextKey = "csrf_token"
const NonceKey contextKey = "csp_nonce"
