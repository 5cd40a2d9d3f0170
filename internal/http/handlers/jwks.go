package handlers

import (
	"net/http"

	"github.com/mernspace/auth-service/internal/app"
	httperr "github.com/mernspace/auth-service/internal/http/errors"
	"github.com/mernspace/auth-service/internal/observability/logger"
)

// NewJWKSHandler publica la clave pública activa en formato JWKS para que
// otros servicios verifiquen los access tokens sin compartir secretos.
func NewJWKSHandler(c *app.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := c.Issuer.JWKSJSON()
		if err != nil {
			logger.From(r.Context()).Error("jwks: build document", logger.Err(err))
			httperr.WriteError(w, httperr.ErrKeyUnavailable.WithCause(err))
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=300")
		_, _ = w.Write(body)
	}
}
