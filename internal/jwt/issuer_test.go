package jwt_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	jwtx "github.com/mernspace/auth-service/internal/jwt"
)

func writeTestKey(t *testing.T) (string, *rsa.PrivateKey) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "private.pem")
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)}
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))
	return path, priv
}

func newTestIssuer(t *testing.T) (*jwtx.Issuer, *rsa.PrivateKey) {
	t.Helper()
	path, priv := writeTestKey(t)
	return jwtx.NewIssuer("auth-service", path, []byte("refresh-secret")), priv
}

func TestSignAccessRoundTrip(t *testing.T) {
	iss, priv := newTestIssuer(t)

	signed, err := iss.SignAccess(jwtx.Claims{
		Role:      "customer",
		FirstName: "Mohit",
		LastName:  "Gupta",
		Email:     "mohit@mern.space",
		RegisteredClaims: jwtv5.RegisteredClaims{
			Subject: "42",
		},
	})
	require.NoError(t, err)

	var c jwtx.Claims
	tok, err := jwtv5.ParseWithClaims(signed, &c, func(*jwtv5.Token) (any, error) {
		return &priv.PublicKey, nil
	}, jwtv5.WithValidMethods([]string{"RS256"}), jwtv5.WithIssuer("auth-service"))
	require.NoError(t, err)
	require.True(t, tok.Valid)

	require.Equal(t, "42", c.Subject())
	require.Equal(t, "customer", c.Role)
	require.Empty(t, c.SessionID, "access tokens never carry a session id")

	kid, _ := tok.Header["kid"].(string)
	require.NotEmpty(t, kid)
}

func TestAccessTokenTenantSerializesAsEmptyString(t *testing.T) {
	iss, _ := newTestIssuer(t)

	signed, err := iss.SignAccess(jwtx.Claims{
		Role:             "admin",
		RegisteredClaims: jwtv5.RegisteredClaims{Subject: "1"},
	})
	require.NoError(t, err)

	// Decodificar el segmento de payload a mano y mirar el JSON crudo.
	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)
	payload, err := jwtv5.NewParser().DecodeSegment(parts[1])
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &raw))
	require.Contains(t, raw, "tenant")
	require.Equal(t, `""`, string(raw["tenant"]))
}

func TestAccessTokenRejectedWithOtherKey(t *testing.T) {
	iss, _ := newTestIssuer(t)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	signed, err := iss.SignAccess(jwtx.Claims{
		Role:             "customer",
		RegisteredClaims: jwtv5.RegisteredClaims{Subject: "1"},
	})
	require.NoError(t, err)

	var c jwtx.Claims
	_, err = jwtv5.ParseWithClaims(signed, &c, func(*jwtv5.Token) (any, error) {
		return &other.PublicKey, nil
	}, jwtv5.WithValidMethods([]string{"RS256"}))
	require.Error(t, err)
}

func TestRefreshRoundTrip(t *testing.T) {
	iss, _ := newTestIssuer(t)

	signed, err := iss.SignRefresh(jwtx.Claims{
		Role:             "manager",
		Tenant:           "7",
		RegisteredClaims: jwtv5.RegisteredClaims{Subject: "9"},
	}, "123")
	require.NoError(t, err)

	c, err := iss.VerifyRefresh(signed)
	require.NoError(t, err)
	require.Equal(t, "9", c.Subject())
	require.Equal(t, "manager", c.Role)
	require.Equal(t, "123", c.SessionID)
}

func TestRefreshRejectsTampering(t *testing.T) {
	iss, _ := newTestIssuer(t)

	signed, err := iss.SignRefresh(jwtx.Claims{
		Role:             "customer",
		RegisteredClaims: jwtv5.RegisteredClaims{Subject: "9"},
	}, "55")
	require.NoError(t, err)

	// Flip a byte in the payload segment.
	parts := strings.Split(signed, ".")
	mid := []byte(parts[1])
	if mid[3] == 'A' {
		mid[3] = 'B'
	} else {
		mid[3] = 'A'
	}
	tampered := parts[0] + "." + string(mid) + "." + parts[2]

	_, err = iss.VerifyRefresh(tampered)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}

func TestRefreshRejectsWrongSecret(t *testing.T) {
	path, _ := writeTestKey(t)
	a := jwtx.NewIssuer("auth-service", path, []byte("secret-a"))
	b := jwtx.NewIssuer("auth-service", path, []byte("secret-b"))

	signed, err := a.SignRefresh(jwtx.Claims{
		Role:             "customer",
		RegisteredClaims: jwtv5.RegisteredClaims{Subject: "1"},
	}, "1")
	require.NoError(t, err)

	_, err = b.VerifyRefresh(signed)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}

func TestDecodeWithoutVerification(t *testing.T) {
	iss, _ := newTestIssuer(t)

	signed, err := iss.SignRefresh(jwtx.Claims{
		Role:             "customer",
		RegisteredClaims: jwtv5.RegisteredClaims{Subject: "3"},
	}, "77")
	require.NoError(t, err)

	c, err := iss.Decode(signed)
	require.NoError(t, err)
	require.Equal(t, "77", c.SessionID)

	_, err = iss.Decode("garbage")
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}

func TestSignAccessKeyUnavailable(t *testing.T) {
	iss := jwtx.NewIssuer("auth-service", "/nonexistent/private.pem", []byte("s"))
	_, err := iss.SignAccess(jwtx.Claims{
		Role:             "customer",
		RegisteredClaims: jwtv5.RegisteredClaims{Subject: "1"},
	})
	require.ErrorIs(t, err, jwtx.ErrKeyUnavailable)
}
