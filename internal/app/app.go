package app

import (
	jwtx "github.com/mernspace/auth-service/internal/jwt"
	"github.com/mernspace/auth-service/internal/store/core"
)

// Container agrupa las dependencias que consumen handlers y middlewares.
// Se construye una vez en main; nada se resuelve por estado global.
type Container struct {
	Store  core.Repository
	Issuer *jwtx.Issuer
	Keys   *jwtx.KeySet

	// CookieDomain es el main domain configurado para ambas cookies.
	CookieDomain string
	// CookieSecure marca Secure en prod (https).
	CookieSecure bool
}
