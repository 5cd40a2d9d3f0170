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

// NewRefreshHandler rota el par de tokens. Requiere el middleware de refresh
// upstream: acá las claims del contexto ya pasaron firma + existencia de sesión.
//
// Orden de rotación: primero se crea la sesión nueva, después se borra la
// vieja. Si el borrado falla el cliente igual sale con tokens válidos; la
// sesión huérfana expira sola.
func NewRefreshHandler(c *app.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.From(r.Context())

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

		// Releer el usuario: el refresh emite claims frescas, no recicla las
		// del token viejo. Usuario borrado => token inservible.
		user, err := c.Store.GetUserByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				httperr.WriteError(w, httperr.ErrUnauthenticated)
				return
			}
			log.Error("refresh: get user", logger.UserID(userID), logger.Err(err))
			httperr.WriteError(w, httperr.ErrUnexpected.WithCause(err))
			return
		}

		tk, err := issueTokens(r.Context(), c, user)
		if err != nil {
			log.Error("refresh: issue tokens", logger.UserID(user.ID), logger.Err(err))
			httperr.WriteError(w, issueError(err))
			return
		}

		if oldID, perr := strconv.ParseInt(claims.SessionID, 10, 64); perr == nil {
			if derr := c.Store.DeleteSession(r.Context(), oldID); derr != nil {
				// No aborta: los tokens nuevos ya existen y la respuesta debe salir.
				log.Warn("refresh: delete old session", logger.SessionID(oldID), logger.Err(derr))
			}
		}
		setAuthCookies(w, c, tk)

		log.Info("tokens rotated",
			logger.UserID(user.ID),
			logger.SessionID(tk.Session.ID),
		)
		writeJSON(w, http.StatusOK, map[string]int64{"id": user.ID})
	}
}

// NewLogoutHandler revoca la sesión del refresh token y borra ambas cookies.
func NewLogoutHandler(c *app.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.From(r.Context())

		claims := middlewares.GetClaims(r.Context())
		if claims == nil {
			httperr.WriteError(w, httperr.ErrUnauthenticated)
			return
		}

		if sessID, err := strconv.ParseInt(claims.SessionID, 10, 64); err == nil {
			if derr := c.Store.DeleteSession(r.Context(), sessID); derr != nil {
				log.Error("logout: delete session", logger.SessionID(sessID), logger.Err(derr))
				httperr.WriteError(w, httperr.ErrUnexpected.WithCause(derr))
				return
			}
		}
		clearAuthCookies(w, c)

		log.Info("user logged out", logger.Email(claims.Email))
		writeJSON(w, http.StatusOK, map[string]any{})
	}
}
