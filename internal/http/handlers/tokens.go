package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mernspace/auth-service/internal/app"
	httperr "github.com/mernspace/auth-service/internal/http/errors"
	"github.com/mernspace/auth-service/internal/http/middlewares"
	jwtx "github.com/mernspace/auth-service/internal/jwt"
	"github.com/mernspace/auth-service/internal/metrics"
	"github.com/mernspace/auth-service/internal/store/core"
)

// claimsFor arma las claims de un usuario. Tenant va como string vacío cuando
// el usuario no pertenece a ninguno: los verificadores downstream esperan el
// claim siempre presente.
func claimsFor(u *core.User) jwtx.Claims {
	c := jwtx.Claims{
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
	c.RegisteredClaims.Subject = strconv.FormatInt(u.ID, 10)
	if u.TenantID != nil {
		c.Tenant = strconv.FormatInt(*u.TenantID, 10)
	}
	return c
}

// issuedTokens es el par access/refresh listo para setear en cookies.
type issuedTokens struct {
	Access  string
	Refresh string
	Session *core.RefreshSession
}

// issueTokens firma el access, persiste una sesión nueva y firma el refresh
// con el id de esa sesión. El orden importa: si la sesión no se puede crear no
// sale ningún refresh token.
func issueTokens(ctx context.Context, c *app.Container, u *core.User) (*issuedTokens, error) {
	claims := claimsFor(u)

	access, err := c.Issuer.SignAccess(claims)
	if err != nil {
		return nil, err
	}

	sess, err := c.Store.CreateSession(ctx, u.ID, time.Now().UTC().Add(c.Issuer.RefreshTTL))
	if err != nil {
		return nil, err
	}

	refresh, err := c.Issuer.SignRefresh(claims, strconv.FormatInt(sess.ID, 10))
	if err != nil {
		return nil, err
	}

	metrics.TokensIssued.WithLabelValues("access").Inc()
	metrics.TokensIssued.WithLabelValues("refresh").Inc()

	return &issuedTokens{Access: access, Refresh: refresh, Session: sess}, nil
}

// issueError separa la clave de firma caída (key_unavailable) de cualquier
// otra falla de emisión, como no poder persistir la sesión (unexpected).
func issueError(err error) *httperr.AppError {
	if errors.Is(err, jwtx.ErrKeyUnavailable) {
		return httperr.ErrKeyUnavailable.WithCause(err)
	}
	return httperr.ErrUnexpected.WithCause(err)
}

// setAuthCookies setea ambas cookies de credencial con los TTL del issuer.
func setAuthCookies(w http.ResponseWriter, c *app.Container, tk *issuedTokens) {
	http.SetCookie(w, buildAuthCookie(middlewares.AccessTokenCookie, tk.Access, c.CookieDomain, c.CookieSecure, c.Issuer.AccessTTL))
	http.SetCookie(w, buildAuthCookie(middlewares.RefreshTokenCookie, tk.Refresh, c.CookieDomain, c.CookieSecure, c.Issuer.RefreshTTL))
}

// clearAuthCookies borra ambas cookies (logout).
func clearAuthCookies(w http.ResponseWriter, c *app.Container) {
	http.SetCookie(w, buildDeletionCookie(middlewares.AccessTokenCookie, c.CookieDomain, c.CookieSecure))
	http.SetCookie(w, buildDeletionCookie(middlewares.RefreshTokenCookie, c.CookieDomain, c.CookieSecure))
}
