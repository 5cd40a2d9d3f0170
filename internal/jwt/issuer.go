package jwt

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// ErrKeyUnavailable: la clave privada no se pudo cargar. Es un error fatal del
// request (500), distinto de cualquier fallo de validación.
var ErrKeyUnavailable = errors.New("signing key unavailable")

// ErrInvalidToken: el token no decodifica o no verifica.
var ErrInvalidToken = errors.New("invalid token")

// Issuer firma access tokens con RSA (RS256) y refresh tokens con un secreto
// compartido (HS256). Dos materiales de clave independientes que nunca se cruzan:
// el access lo puede verificar cualquier servicio vía JWKS, el refresh solo
// lo verifica este servicio.
type Issuer struct {
	Iss        string        // claim "iss", identificador fijo del servicio
	AccessTTL  time.Duration // 1h
	RefreshTTL time.Duration // 1 año

	privateKeyPath string
	refreshSecret  []byte

	loadOnce sync.Once
	priv     *rsa.PrivateKey
	kid      string
	loadErr  error
}

func NewIssuer(iss, privateKeyPath string, refreshSecret []byte) *Issuer {
	return &Issuer{
		Iss:            iss,
		AccessTTL:      time.Hour,
		RefreshTTL:     365 * 24 * time.Hour,
		privateKeyPath: privateKeyPath,
		refreshSecret:  refreshSecret,
	}
}

// loadKey lee el PEM una sola vez. Si falla queda ErrKeyUnavailable para
// siempre; la rotación de clave implica reiniciar el proceso.
func (i *Issuer) loadKey() (*rsa.PrivateKey, string, error) {
	i.loadOnce.Do(func() {
		b, err := os.ReadFile(i.privateKeyPath)
		if err != nil {
			i.loadErr = fmt.Errorf("%w: %v", ErrKeyUnavailable, err)
			return
		}
		priv, err := jwtv5.ParseRSAPrivateKeyFromPEM(b)
		if err != nil {
			i.loadErr = fmt.Errorf("%w: %v", ErrKeyUnavailable, err)
			return
		}
		i.priv = priv
		i.kid = KIDFor(&priv.PublicKey)
	})
	return i.priv, i.kid, i.loadErr
}

// KIDFor deriva un key id estable de la clave pública (sha256 del DER, 8 bytes).
// El mismo valor se publica en el JWKS.
func KIDFor(pub *rsa.PublicKey) string {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(der)
	return hex.EncodeToString(sum[:8])
}

// ActiveKID devuelve el kid de la clave de firma actual.
func (i *Issuer) ActiveKID() (string, error) {
	_, kid, err := i.loadKey()
	return kid, err
}

// PublicKey expone la clave pública activa (para el handler JWKS).
func (i *Issuer) PublicKey() (*rsa.PublicKey, string, error) {
	priv, kid, err := i.loadKey()
	if err != nil {
		return nil, "", err
	}
	return &priv.PublicKey, kid, nil
}

// SignAccess firma un access token RS256. Setea iss/iat/exp; el resto de las
// claims vienen del caller. Nunca incluye session id.
func (i *Issuer) SignAccess(c Claims) (string, error) {
	priv, kid, err := i.loadKey()
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	c.SessionID = ""
	c.Issuer = i.Iss
	c.IssuedAt = jwtv5.NewNumericDate(now)
	c.ExpiresAt = jwtv5.NewNumericDate(now.Add(i.AccessTTL))

	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodRS256, &c)
	tk.Header["kid"] = kid
	signed, err := tk.SignedString(priv)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyUnavailable, err)
	}
	return signed, nil
}

// SignRefresh firma un refresh token HS256 con el session id embebido.
// El Issuer nunca toca storage: el id viene de afuera.
func (i *Issuer) SignRefresh(c Claims, sessionID string) (string, error) {
	if len(i.refreshSecret) == 0 {
		return "", ErrKeyUnavailable
	}
	now := time.Now().UTC()
	c.SessionID = sessionID
	c.Issuer = i.Iss
	c.IssuedAt = jwtv5.NewNumericDate(now)
	c.ExpiresAt = jwtv5.NewNumericDate(now.Add(i.RefreshTTL))

	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, &c)
	return tk.SignedString(i.refreshSecret)
}

// VerifyRefresh valida firma HS256, issuer y exp (leeway 30s).
func (i *Issuer) VerifyRefresh(raw string) (*Claims, error) {
	var c Claims
	tok, err := jwtv5.ParseWithClaims(raw, &c, func(t *jwtv5.Token) (any, error) {
		return i.refreshSecret, nil
	},
		jwtv5.WithValidMethods([]string{"HS256"}),
		jwtv5.WithIssuer(i.Iss),
		jwtv5.WithLeeway(30*time.Second),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return &c, nil
}

// Decode parsea sin verificar firma. Solo para uso interno donde la
// verificación ya ocurrió upstream.
func (i *Issuer) Decode(raw string) (*Claims, error) {
	var c Claims
	parser := jwtv5.NewParser()
	if _, _, err := parser.ParseUnverified(raw, &c); err != nil {
		return nil, ErrInvalidToken
	}
	return &c, nil
}
