package middlewares

import (
	"net/http"
	"strings"

	httperr "github.com/mernspace/auth-service/internal/http/errors"
	jwtx "github.com/mernspace/auth-service/internal/jwt"
	"github.com/mernspace/auth-service/internal/metrics"
	"github.com/mernspace/auth-service/internal/observability/logger"
)

// AccessTokenCookie es el fallback cuando no viene Authorization header.
const AccessTokenCookie = "accessToken"

// bearerToken extrae el credential: primero el header Authorization, después
// la cookie accessToken. El literal "undefined" (clientes JS que serializan
// mal) cuenta como ausente.
func bearerToken(r *http.Request) string {
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if ah != "" && strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		raw := strings.TrimSpace(ah[len("Bearer "):])
		if raw != "" && raw != "undefined" {
			return raw
		}
	}
	if c, err := r.Cookie(AccessTokenCookie); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

// Authenticate valida el access token contra el key set remoto y guarda las
// claims en el contexto. Firma inválida, expiración o kid irresoluble caen
// todos en el mismo 401: no le damos oráculos al cliente.
func Authenticate(ks *jwtx.KeySet, issuer string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				metrics.Failures.WithLabelValues("unauthenticated").Inc()
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				httperr.WriteError(w, httperr.ErrUnauthenticated)
				return
			}

			claims, err := ks.VerifyAccess(r.Context(), raw, issuer)
			if err != nil {
				logger.From(r.Context()).Debug("access token rejected", logger.Err(err))
				metrics.Failures.WithLabelValues("unauthenticated").Inc()
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				httperr.WriteError(w, httperr.ErrUnauthenticated)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}
