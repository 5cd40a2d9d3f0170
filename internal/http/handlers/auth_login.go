package handlers

import (
	"errors"
	"net/http"

	"github.com/mernspace/auth-service/internal/app"
	httperr "github.com/mernspace/auth-service/internal/http/errors"
	"github.com/mernspace/auth-service/internal/metrics"
	"github.com/mernspace/auth-service/internal/observability/logger"
	"github.com/mernspace/auth-service/internal/security/password"
	"github.com/mernspace/auth-service/internal/store/core"
	"github.com/mernspace/auth-service/internal/validation"
)

// NewLoginHandler valida credenciales y emite el par de tokens.
// Invariante: "email no existe" y "password incorrecto" producen exactamente
// la misma respuesta, sin oráculo de existencia.
func NewLoginHandler(c *app.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.From(r.Context())

		var req validation.LoginRequest
		if !readJSON(w, r, &req) {
			return
		}
		if errs := validation.Login(&req); len(errs) > 0 {
			httperr.WriteValidation(w, errs)
			return
		}

		user, err := c.Store.GetUserByEmail(r.Context(), req.Email)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				metrics.Failures.WithLabelValues("invalid_credentials").Inc()
				httperr.WriteError(w, httperr.ErrInvalidCredentials)
				return
			}
			log.Error("login: get user", logger.Err(err))
			httperr.WriteError(w, httperr.ErrUnexpected.WithCause(err))
			return
		}
		if !password.Verify(req.Password, user.PasswordHash) {
			metrics.Failures.WithLabelValues("invalid_credentials").Inc()
			httperr.WriteError(w, httperr.ErrInvalidCredentials)
			return
		}

		tk, err := issueTokens(r.Context(), c, user)
		if err != nil {
			log.Error("login: issue tokens", logger.UserID(user.ID), logger.Err(err))
			httperr.WriteError(w, issueError(err))
			return
		}
		setAuthCookies(w, c, tk)

		metrics.Logins.Inc()
		log.Info("user logged in",
			logger.UserID(user.ID),
			logger.Email(user.Email),
			logger.SessionID(tk.Session.ID),
		)
		writeJSON(w, http.StatusOK, map[string]int64{"id": user.ID})
	}
}
