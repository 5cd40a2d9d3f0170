package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mernspace/auth-service/internal/app"
	httperr "github.com/mernspace/auth-service/internal/http/errors"
	"github.com/mernspace/auth-service/internal/observability/logger"
	"github.com/mernspace/auth-service/internal/store/core"
	"github.com/mernspace/auth-service/internal/validation"
)

// pathID parsea el path param {id}. Un id no numérico es un 404 directo.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func NewCreateTenantHandler(c *app.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req validation.TenantRequest
		if !readJSON(w, r, &req) {
			return
		}
		if errs := validation.Tenant(&req); len(errs) > 0 {
			httperr.WriteValidation(w, errs)
			return
		}

		tenant, err := c.Store.CreateTenant(r.Context(), &core.Tenant{
			Name:    req.Name,
			Address: req.Address,
		})
		if err != nil {
			logger.From(r.Context()).Error("tenants: create", logger.Err(err))
			httperr.WriteError(w, httperr.ErrUnexpected.WithCause(err))
			return
		}

		logger.From(r.Context()).Info("tenant created", logger.TenantID(tenant.ID))
		writeJSON(w, http.StatusCreated, map[string]int64{"id": tenant.ID})
	}
}

func NewGetTenantHandler(c *app.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			httperr.WriteError(w, httperr.ErrNotFound)
			return
		}
		tenant, err := c.Store.GetTenant(r.Context(), id)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				httperr.WriteError(w, httperr.ErrNotFound)
				return
			}
			logger.From(r.Context()).Error("tenants: get", logger.TenantID(id), logger.Err(err))
			httperr.WriteError(w, httperr.ErrUnexpected.WithCause(err))
			return
		}
		writeJSON(w, http.StatusOK, tenant)
	}
}

func NewListTenantsHandler(c *app.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := validation.ListQuery(r.URL.Query())
		tenants, total, err := c.Store.ListTenants(r.Context(), q)
		if err != nil {
			logger.From(r.Context()).Error("tenants: list", logger.Err(err))
			httperr.WriteError(w, httperr.ErrUnexpected.WithCause(err))
			return
		}
		writeJSON(w, http.StatusOK, listEnvelope{
			CurrentPage: q.CurrentPage,
			PerPage:     q.PerPage,
			Total:       total,
			Data:        tenants,
		})
	}
}

func NewUpdateTenantHandler(c *app.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			httperr.WriteError(w, httperr.ErrNotFound)
			return
		}
		var req validation.TenantRequest
		if !readJSON(w, r, &req) {
			return
		}
		if errs := validation.Tenant(&req); len(errs) > 0 {
			httperr.WriteValidation(w, errs)
			return
		}

		err := c.Store.UpdateTenant(r.Context(), id, &core.Tenant{
			Name:    req.Name,
			Address: req.Address,
		})
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				httperr.WriteError(w, httperr.ErrNotFound)
				return
			}
			logger.From(r.Context()).Error("tenants: update", logger.TenantID(id), logger.Err(err))
			httperr.WriteError(w, httperr.ErrUnexpected.WithCause(err))
			return
		}

		logger.From(r.Context()).Info("tenant updated", logger.TenantID(id))
		writeJSON(w, http.StatusOK, map[string]int64{"id": id})
	}
}

func NewDeleteTenantHandler(c *app.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			httperr.WriteError(w, httperr.ErrNotFound)
			return
		}
		if err := c.Store.DeleteTenant(r.Context(), id); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				httperr.WriteError(w, httperr.ErrNotFound)
				return
			}
			logger.From(r.Context()).Error("tenants: delete", logger.TenantID(id), logger.Err(err))
			httperr.WriteError(w, httperr.ErrUnexpected.WithCause(err))
			return
		}

		logger.From(r.Context()).Info("tenant deleted", logger.TenantID(id))
		writeJSON(w, http.StatusOK, map[string]int64{"id": id})
	}
}
