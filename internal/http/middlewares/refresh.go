package middlewares

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	httperr "github.com/mernspace/auth-service/internal/http/errors"
	jwtx "github.com/mernspace/auth-service/internal/jwt"
	"github.com/mernspace/auth-service/internal/observability/logger"
	"github.com/mernspace/auth-service/internal/store/core"
)

// RefreshTokenCookie lleva el refresh JWT firmado.
const RefreshTokenCookie = "refreshToken"

// ValidateRefresh verifica la cookie refreshToken con el secreto simétrico y
// cruza el session id contra la tabla: sin fila, el token está revocado
// (logout o rotación previa) y cae en 401 aunque la firma siga siendo válida.
func ValidateRefresh(issuer *jwtx.Issuer, store core.Repository) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(RefreshTokenCookie)
			if err != nil || strings.TrimSpace(c.Value) == "" {
				httperr.WriteError(w, httperr.ErrUnauthenticated)
				return
			}

			claims, err := issuer.VerifyRefresh(c.Value)
			if err != nil {
				logger.From(r.Context()).Debug("refresh token rejected", logger.Err(err))
				httperr.WriteError(w, httperr.ErrUnauthenticated)
				return
			}

			sessionID, err := strconv.ParseInt(claims.SessionID, 10, 64)
			if err != nil {
				httperr.WriteError(w, httperr.ErrUnauthenticated)
				return
			}

			// Chequeo de revocación: la fila es la autoridad, no la firma.
			if _, err := store.GetSession(r.Context(), sessionID); err != nil {
				if errors.Is(err, core.ErrNotFound) {
					logger.From(r.Context()).Debug("refresh session revoked",
						logger.SessionID(sessionID))
					httperr.WriteError(w, httperr.ErrUnauthenticated)
					return
				}
				logger.From(r.Context()).Error("session lookup failed", logger.Err(err))
				httperr.WriteError(w, httperr.ErrUnexpected.WithCause(err))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}
