package jwt

import (
	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Claims es el payload de ambos tipos de token.
// Invariante: sub y role siempre presentes; tenant serializa como "" cuando el
// principal no tiene tenant (nunca null ni omitido).
type Claims struct {
	Role      string `json:"role"`
	Tenant    string `json:"tenant"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	// SessionID viaja como "id" y solo en refresh tokens: apunta a la fila de
	// refresh_sessions que lo hace revocable.
	SessionID string `json:"id,omitempty"`

	jwtv5.RegisteredClaims
}

// Subject devuelve el user id (claim "sub").
func (c *Claims) Subject() string { return c.RegisteredClaims.Subject }
