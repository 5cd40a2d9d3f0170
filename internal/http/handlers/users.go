package handlers

import (
	"errors"
	"net/http"

	"github.com/mernspace/auth-service/internal/app"
	httperr "github.com/mernspace/auth-service/internal/http/errors"
	"github.com/mernspace/auth-service/internal/observability/logger"
	"github.com/mernspace/auth-service/internal/security/password"
	"github.com/mernspace/auth-service/internal/store/core"
	"github.com/mernspace/auth-service/internal/validation"
)

// NewCreateUserHandler es el alta administrativa: a diferencia del registro
// self-service acá el admin elige rol y tenant, y no se emiten tokens.
func NewCreateUserHandler(c *app.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.From(r.Context())

		var req validation.CreateUserRequest
		if !readJSON(w, r, &req) {
			return
		}
		if errs := validation.CreateUser(&req); len(errs) > 0 {
			httperr.WriteValidation(w, errs)
			return
		}

		digest, err := password.Hash(req.Password)
		if err != nil {
			log.Error("users: hash password", logger.Err(err))
			httperr.WriteError(w, httperr.ErrUnexpected.WithCause(err))
			return
		}

		user, err := c.Store.CreateUser(r.Context(), &core.User{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        req.Email,
			PasswordHash: digest,
			Role:         req.Role,
			TenantID:     req.TenantID,
		})
		if err != nil {
			if errors.Is(err, core.ErrDuplicateEmail) {
				httperr.WriteError(w, httperr.ErrEmailExists)
				return
			}
			log.Error("users: create", logger.Err(err))
			httperr.WriteError(w, httperr.ErrUnexpected.WithCause(err))
			return
		}

		log.Info("user created", logger.UserID(user.ID), logger.Role(user.Role))
		writeJSON(w, http.StatusCreated, map[string]int64{"id": user.ID})
	}
}

func NewGetUserHandler(c *app.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			httperr.WriteError(w, httperr.ErrNotFound)
			return
		}
		user, err := c.Store.GetUserByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				httperr.WriteError(w, httperr.ErrNotFound)
				return
			}
			logger.From(r.Context()).Error("users: get", logger.UserID(id), logger.Err(err))
			httperr.WriteError(w, httperr.ErrUnexpected.WithCause(err))
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func NewListUsersHandler(c *app.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := validation.ListQuery(r.URL.Query())
		users, total, err := c.Store.ListUsers(r.Context(), q)
		if err != nil {
			logger.From(r.Context()).Error("users: list", logger.Err(err))
			httperr.WriteError(w, httperr.ErrUnexpected.WithCause(err))
			return
		}
		writeJSON(w, http.StatusOK, listEnvelope{
			CurrentPage: q.CurrentPage,
			PerPage:     q.PerPage,
			Total:       total,
			Data:        users,
		})
	}
}

func NewUpdateUserHandler(c *app.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			httperr.WriteError(w, httperr.ErrNotFound)
			return
		}
		var req validation.UpdateUserRequest
		if !readJSON(w, r, &req) {
			return
		}
		if errs := validation.UpdateUser(&req); len(errs) > 0 {
			httperr.WriteValidation(w, errs)
			return
		}

		err := c.Store.UpdateUser(r.Context(), id, &core.User{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Role:      req.Role,
			TenantID:  req.TenantID,
		})
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				httperr.WriteError(w, httperr.ErrNotFound)
				return
			}
			logger.From(r.Context()).Error("users: update", logger.UserID(id), logger.Err(err))
			httperr.WriteError(w, httperr.ErrUnexpected.WithCause(err))
			return
		}

		logger.From(r.Context()).Info("user updated", logger.UserID(id))
		writeJSON(w, http.StatusOK, map[string]int64{"id": id})
	}
}

func NewDeleteUserHandler(c *app.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			httperr.WriteError(w, httperr.ErrNotFound)
			return
		}
		if err := c.Store.DeleteUser(r.Context(), id); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				httperr.WriteError(w, httperr.ErrNotFound)
				return
			}
			logger.From(r.Context()).Error("users: delete", logger.UserID(id), logger.Err(err))
			httperr.WriteError(w, httperr.ErrUnexpected.WithCause(err))
			return
		}

		logger.From(r.Context()).Info("user deleted", logger.UserID(id))
		writeJSON(w, http.StatusOK, map[string]int64{"id": id})
	}
}
