package middlewares

import (
	"net/http"

	httperr "github.com/mernspace/auth-service/internal/http/errors"
	"github.com/mernspace/auth-service/internal/metrics"
)

// CanAccess es el gate de RBAC: compara el rol del principal contra la
// allow-list de la ruta. Es un test de membresía puro, nunca consulta la base.
// Debe correr después de Authenticate (o ValidateRefresh).
func CanAccess(roles ...string) Middleware {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())
			if claims == nil {
				httperr.WriteError(w, httperr.ErrUnauthenticated)
				return
			}
			if _, ok := allowed[claims.Role]; !ok {
				metrics.Failures.WithLabelValues("forbidden").Inc()
				httperr.WriteError(w, httperr.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
