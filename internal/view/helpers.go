package view

import (
	"context"

	"github.com/indblik/site/internal/contextkeys"
)

// CSRFToken retorna o token do contexto
func CSRFToken(ctx context.Context) string {
	if token, ok := ctx.Value(contextkeys.CSRFTokenKey).(string); ok {
		return token
	}
	return ""
}

// Nonce is the CSP nonce of the current response.
func Nonce(ctx context.Context) string {
	if nonce, ok := ctx.Value(contextkeys.NonceKey).(string); ok {
		return nonce
	}
	return ""
}
