package middlewares

import (
	"net/http"

	httperr "github.com/mernspace/auth-service/internal/http/errors"
	"github.com/mernspace/auth-service/internal/observability/logger"
	"go.uber.org/zap"
)

// WithRecover captura panics y devuelve un 500 en lugar de crashear.
func WithRecover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.From(r.Context()).Error("panic recovered", zap.Any("panic", rec))
					httperr.WriteError(w, httperr.ErrUnexpected)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
