package jwt

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
)

// ----- JWKS (serialización) -----

type JWK struct {
	Kty string `json:"kty"` // "RSA"
	Kid string `json:"kid"`
	Alg string `json:"alg"` // "RS256"
	Use string `json:"use"` // "sig"
	N   string `json:"n"`   // base64url(modulus)
	E   string `json:"e"`   // base64url(exponent)
}

type JWKS struct {
	Keys []JWK `json:"keys"`
}

// JWKSJSON devuelve el key set (solo la pública) en JSON.
func (i *Issuer) JWKSJSON() ([]byte, error) {
	pub, kid, err := i.PublicKey()
	if err != nil {
		return nil, err
	}
	j := JWKS{Keys: []JWK{EncodeRSAPublicKey(pub, kid)}}
	return json.Marshal(j)
}

func EncodeRSAPublicKey(pub *rsa.PublicKey, kid string) JWK {
	return JWK{
		Kty: "RSA",
		Kid: kid,
		Alg: "RS256",
		Use: "sig",
		N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}
}

// decodeRSAPublicKey reconstruye la pública desde n/e base64url.
func (j JWK) decodeRSAPublicKey() (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(j.N)
	if err != nil {
		return nil, err
	}
	eb, err := base64.RawURLEncoding.DecodeString(j.E)
	if err != nil {
		return nil, err
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nb),
		E: int(new(big.Int).SetBytes(eb).Int64()),
	}, nil
}
