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

// NewRegisterHandler da de alta un usuario self-service. El rol es siempre
// customer: los roles privilegiados solo se asignan por el endpoint admin.
func NewRegisterHandler(c *app.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.From(r.Context())

		var req validation.RegisterRequest
		if !readJSON(w, r, &req) {
			return
		}
		if errs := validation.Register(&req); len(errs) > 0 {
			httperr.WriteValidation(w, errs)
			return
		}

		// Pre-chequeo amigable; el unique index de la tabla es la garantía real
		// frente a registros concurrentes.
		if _, err := c.Store.GetUserByEmail(r.Context(), req.Email); err == nil {
			httperr.WriteError(w, httperr.ErrEmailExists)
			return
		} else if !errors.Is(err, core.ErrNotFound) {
			log.Error("register: email lookup", logger.Err(err))
			httperr.WriteError(w, httperr.ErrUnexpected.WithCause(err))
			return
		}

		digest, err := password.Hash(req.Password)
		if err != nil {
			log.Error("register: hash password", logger.Err(err))
			httperr.WriteError(w, httperr.ErrUnexpected.WithCause(err))
			return
		}

		user, err := c.Store.CreateUser(r.Context(), &core.User{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        req.Email,
			PasswordHash: digest,
			Role:         core.RoleCustomer,
		})
		if err != nil {
			if errors.Is(err, core.ErrDuplicateEmail) {
				httperr.WriteError(w, httperr.ErrEmailExists)
				return
			}
			log.Error("register: create user", logger.Err(err))
			httperr.WriteError(w, httperr.ErrUnexpected.WithCause(err))
			return
		}

		tk, err := issueTokens(r.Context(), c, user)
		if err != nil {
			log.Error("register: issue tokens", logger.UserID(user.ID), logger.Err(err))
			httperr.WriteError(w, issueError(err))
			return
		}
		setAuthCookies(w, c, tk)

		metrics.Registrations.Inc()
		log.Info("user registered",
			logger.UserID(user.ID),
			logger.Email(user.Email),
			logger.SessionID(tk.Session.ID),
		)
		writeJSON(w, http.StatusCreated, map[string]int64{"id": user.ID})
	}
}
