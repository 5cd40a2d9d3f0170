package jwt

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	gocache "github.com/patrickmn/go-cache"

	"github.com/mernspace/auth-service/internal/rate"
)

// ErrKeySetUnavailable: no se pudo resolver la pública para el kid del token.
// Upstream se colapsa en 401 junto con cualquier otro fallo de verificación.
var ErrKeySetUnavailable = errors.New("key set unavailable")

// KeySet resuelve claves públicas por kid contra un endpoint JWKS remoto.
// El cache es process-wide (una fetch por rotación de clave, no por request) y
// las refetches en miss están acotadas por un limiter para aguantar tormentas
// de rotación o tokens basura con kid inventado.
type KeySet struct {
	uri     string
	client  *http.Client
	cache   *gocache.Cache // kid -> *rsa.PublicKey
	limiter rate.Limiter
}

const keyCacheTTL = time.Hour

func NewKeySet(uri string, limiter rate.Limiter) *KeySet {
	return &KeySet{
		uri:     uri,
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   gocache.New(keyCacheTTL, 10*time.Minute),
		limiter: limiter,
	}
}

// Keyfunc devuelve un jwt.Keyfunc que elige la pubkey por el kid del header.
// kid nuevo ⇒ cache miss ⇒ re-fetch del endpoint.
func (ks *KeySet) Keyfunc(ctx context.Context) jwtv5.Keyfunc {
	return func(t *jwtv5.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("%w: kid missing", ErrKeySetUnavailable)
		}
		if v, ok := ks.cache.Get(kid); ok {
			return v.(*rsa.PublicKey), nil
		}
		if err := ks.refresh(ctx); err != nil {
			return nil, err
		}
		if v, ok := ks.cache.Get(kid); ok {
			return v.(*rsa.PublicKey), nil
		}
		return nil, fmt.Errorf("%w: unknown kid %q", ErrKeySetUnavailable, kid)
	}
}

// refresh baja el JWKS completo y cachea todas las claves RSA por kid.
func (ks *KeySet) refresh(ctx context.Context) error {
	if ks.limiter != nil {
		res, err := ks.limiter.Allow(ctx, "jwks:refresh")
		if err == nil && !res.Allowed {
			return fmt.Errorf("%w: refresh rate limited", ErrKeySetUnavailable)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ks.uri, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeySetUnavailable, err)
	}
	resp, err := ks.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeySetUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: endpoint returned %d", ErrKeySetUnavailable, resp.StatusCode)
	}

	var set JWKS
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return fmt.Errorf("%w: %v", ErrKeySetUnavailable, err)
	}
	for _, k := range set.Keys {
		if k.Kty != "RSA" || k.Kid == "" {
			continue
		}
		pub, err := k.decodeRSAPublicKey()
		if err != nil {
			continue
		}
		ks.cache.Set(k.Kid, pub, keyCacheTTL)
	}
	return nil
}

// VerifyAccess valida un access token RS256 contra el key set remoto:
// firma, issuer y expiración (leeway 30s). Cualquier fallo es indistinguible
// para el caller.
func (ks *KeySet) VerifyAccess(ctx context.Context, raw, expectedIss string) (*Claims, error) {
	var c Claims
	tok, err := jwtv5.ParseWithClaims(raw, &c, ks.Keyfunc(ctx),
		jwtv5.WithValidMethods([]string{"RS256"}),
		jwtv5.WithIssuer(expectedIss),
		jwtv5.WithLeeway(30*time.Second),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return &c, nil
}
