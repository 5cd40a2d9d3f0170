package jwt_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	jwtx "github.com/mernspace/auth-service/internal/jwt"
	"github.com/mernspace/auth-service/internal/rate"
)

// jwksServer publishes the issuer's own key set and counts fetches.
func jwksServer(t *testing.T, iss *jwtx.Issuer, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		b, err := iss.JWKSJSON()
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(b)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestKeySetVerifyAccess(t *testing.T) {
	iss, _ := newTestIssuer(t)
	var hits atomic.Int64
	srv := jwksServer(t, iss, &hits)

	ks := jwtx.NewKeySet(srv.URL, rate.NewMemoryLimiter(10, time.Minute))
	ctx := context.Background()

	signed, err := iss.SignAccess(jwtx.Claims{
		Role:             "admin",
		RegisteredClaims: jwtv5.RegisteredClaims{Subject: "5"},
	})
	require.NoError(t, err)

	c, err := ks.VerifyAccess(ctx, signed, "auth-service")
	require.NoError(t, err)
	require.Equal(t, "5", c.Subject())
	require.Equal(t, "admin", c.Role)
	require.EqualValues(t, 1, hits.Load())

	// Second verification must hit the process-wide cache, not the endpoint.
	_, err = ks.VerifyAccess(ctx, signed, "auth-service")
	require.NoError(t, err)
	require.EqualValues(t, 1, hits.Load())
}

func TestKeySetRejectsForeignKey(t *testing.T) {
	iss, _ := newTestIssuer(t)
	other, _ := newTestIssuer(t)

	var hits atomic.Int64
	srv := jwksServer(t, iss, &hits)
	ks := jwtx.NewKeySet(srv.URL, nil)

	// Token firmado por otra clave: el kid no está en el set publicado.
	signed, err := other.SignAccess(jwtx.Claims{
		Role:             "customer",
		RegisteredClaims: jwtv5.RegisteredClaims{Subject: "1"},
	})
	require.NoError(t, err)

	_, err = ks.VerifyAccess(context.Background(), signed, "auth-service")
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}

func TestKeySetRejectsWrongIssuer(t *testing.T) {
	iss, _ := newTestIssuer(t)
	var hits atomic.Int64
	srv := jwksServer(t, iss, &hits)
	ks := jwtx.NewKeySet(srv.URL, nil)

	signed, err := iss.SignAccess(jwtx.Claims{
		Role:             "customer",
		RegisteredClaims: jwtv5.RegisteredClaims{Subject: "1"},
	})
	require.NoError(t, err)

	_, err = ks.VerifyAccess(context.Background(), signed, "someone-else")
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}

func TestKeySetRefetchIsRateLimited(t *testing.T) {
	iss, _ := newTestIssuer(t)
	other, _ := newTestIssuer(t)

	var hits atomic.Int64
	srv := jwksServer(t, iss, &hits)
	// Window of one fetch: the second miss may not hit the endpoint again.
	ks := jwtx.NewKeySet(srv.URL, rate.NewMemoryLimiter(1, time.Minute))
	ctx := context.Background()

	foreign, err := other.SignAccess(jwtx.Claims{
		Role:             "customer",
		RegisteredClaims: jwtv5.RegisteredClaims{Subject: "1"},
	})
	require.NoError(t, err)

	_, err = ks.VerifyAccess(ctx, foreign, "auth-service")
	require.Error(t, err)
	require.EqualValues(t, 1, hits.Load())

	_, err = ks.VerifyAccess(ctx, foreign, "auth-service")
	require.Error(t, err)
	require.EqualValues(t, 1, hits.Load(), "second miss must be throttled")
}

func TestKeySetEndpointDown(t *testing.T) {
	iss, _ := newTestIssuer(t)
	ks := jwtx.NewKeySet("http://127.0.0.1:1/jwks.json", nil)

	signed, err := iss.SignAccess(jwtx.Claims{
		Role:             "customer",
		RegisteredClaims: jwtv5.RegisteredClaims{Subject: "1"},
	})
	require.NoError(t, err)

	_, err = ks.VerifyAccess(context.Background(), signed, "auth-service")
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}
