package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mernspace/auth-service/internal/app"
	"github.com/mernspace/auth-service/internal/http/handlers"
	"github.com/mernspace/auth-service/internal/http/middlewares"
	"github.com/mernspace/auth-service/internal/rate"
	"github.com/mernspace/auth-service/internal/store/core"
)

// NewRouter arma el router completo. limiter puede ser nil: sin limiter los
// endpoints de credenciales quedan sin protección de fuerza bruta (solo dev).
func NewRouter(c *app.Container, limiter rate.Limiter) stdhttp.Handler {
	r := chi.NewRouter()

	// Middlewares globales, en orden: request id primero para que el logging
	// lo tenga, recover al final de la cadena para cubrir todo lo de adentro.
	r.Use(middlewares.WithRequestID())
	r.Use(middlewares.WithLogging())
	r.Use(middlewares.WithRecover())

	authenticated := middlewares.Authenticate(c.Keys, c.Issuer.Iss)
	withRefresh := middlewares.ValidateRefresh(c.Issuer, c.Store)
	adminOnly := middlewares.CanAccess(core.RoleAdmin)

	throttled := func(h stdhttp.HandlerFunc) stdhttp.Handler {
		if limiter == nil {
			return h
		}
		return middlewares.ChainFunc(h, middlewares.WithRateLimit(limiter))
	}

	r.Route("/auth", func(r chi.Router) {
		r.Method(stdhttp.MethodPost, "/register", throttled(handlers.NewRegisterHandler(c)))
		r.Method(stdhttp.MethodPost, "/login", throttled(handlers.NewLoginHandler(c)))

		r.With(authenticated).Get("/self", handlers.NewSelfHandler(c))
		r.With(withRefresh).Post("/refresh", handlers.NewRefreshHandler(c))
		r.With(authenticated, withRefresh).Post("/logout", handlers.NewLogoutHandler(c))
	})

	r.Route("/tenants", func(r chi.Router) {
		r.Use(authenticated, adminOnly)
		r.Post("/", handlers.NewCreateTenantHandler(c))
		r.Get("/", handlers.NewListTenantsHandler(c))
		r.Get("/{id}", handlers.NewGetTenantHandler(c))
		r.Patch("/{id}", handlers.NewUpdateTenantHandler(c))
		r.Delete("/{id}", handlers.NewDeleteTenantHandler(c))
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(authenticated, adminOnly)
		r.Post("/", handlers.NewCreateUserHandler(c))
		r.Get("/", handlers.NewListUsersHandler(c))
		r.Get("/{id}", handlers.NewGetUserHandler(c))
		r.Patch("/{id}", handlers.NewUpdateUserHandler(c))
		r.Delete("/{id}", handlers.NewDeleteUserHandler(c))
	})

	r.Get("/.well-known/jwks.json", handlers.NewJWKSHandler(c))

	r.Get("/healthz", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		if err := c.Store.Ping(req.Context()); err != nil {
			w.WriteHeader(stdhttp.StatusServiceUnavailable)
			_, _ = w.Write([]byte("store unavailable"))
			return
		}
		w.WriteHeader(stdhttp.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(stdhttp.MethodGet, "/metrics", promhttp.Handler())

	return r
}
