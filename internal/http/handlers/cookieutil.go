package handlers

import (
	"net/http"
	"time"
)

// buildAuthCookie arma una cookie de credencial con los flags de seguridad
// fijos del servicio: SameSite=Strict y HttpOnly siempre; Secure según config.
func buildAuthCookie(name, value, domain string, secure bool, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().UTC().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if domain != "" {
		c.Domain = domain
	}
	return c
}

// buildDeletionCookie devuelve una cookie que borra la credencial del browser.
// Mismo nombre/domain/flags para que el user-agent la sobreescriba.
func buildDeletionCookie(name, domain string, secure bool) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if domain != "" {
		c.Domain = domain
	}
	return c
}
