package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mernspace/auth-service/internal/app"
	httperr "github.com/mernspace/auth-service/internal/http/errors"
	"github.com/mernspace/auth-service/internal/http/middlewares"
	"github.com/mernspace/auth-service/internal/observability/logger"
	"github.com/mernspace/auth-service/internal/store/core"
)

// NewSelfHandler devuelve el perfil del principal autenticado, sin el hash.
func NewSelfHandler(c *app.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.GetClaims(r.Context())
		if claims == nil {
			httperr.WriteError(w, httperr.ErrUnauthenticated)
			return
		}
		userID, err := strconv.ParseInt(claims.Subject(), 10, 64)
		if err != nil {
			httperr.WriteError(w, httperr.ErrUnauthenticated)
			return
		}

		user, err := c.Store.GetUserByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				// El token sobrevivió al usuario.
				httperr.WriteError(w, httperr.ErrUnauthenticated)
				return
			}
			logger.From(r.Context()).Error("self: get user", logger.UserID(userID), logger.Err(err))
			httperr.WriteError(w, httperr.ErrUnexpected.WithCause(err))
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}
