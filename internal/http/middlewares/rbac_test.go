package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mernspace/auth-service/internal/http/middlewares"
	jwtx "github.com/mernspace/auth-service/internal/jwt"
)

func requestWithRole(role string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	claims := &jwtx.Claims{Role: role}
	claims.RegisteredClaims.Subject = "42"
	return req.WithContext(middlewares.WithClaims(req.Context(), claims))
}

func TestCanAccessAllowsListedRole(t *testing.T) {
	mw := middlewares.CanAccess("admin", "manager")

	var ran bool
	var got *jwtx.Claims
	rec := httptest.NewRecorder()
	mw(okHandler(&ran, &got)).ServeHTTP(rec, requestWithRole("manager"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ran)
}

func TestCanAccessForbidsOtherRole(t *testing.T) {
	mw := middlewares.CanAccess("admin")

	var ran bool
	var got *jwtx.Claims
	rec := httptest.NewRecorder()
	mw(okHandler(&ran, &got)).ServeHTTP(rec, requestWithRole("customer"))

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.False(t, ran)
	require.Contains(t, rec.Body.String(), "forbidden")
}

func TestCanAccessWithoutClaims(t *testing.T) {
	mw := middlewares.CanAccess("admin")

	var ran bool
	var got *jwtx.Claims
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	mw(okHandler(&ran, &got)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, ran)
}
