package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mernspace/auth-service/internal/http/middlewares"
	jwtx "github.com/mernspace/auth-service/internal/jwt"
	"github.com/mernspace/auth-service/internal/store/core"
)

// sessionStore is a Repository fake that only cares about refresh sessions;
// the middleware never touches the rest.
type sessionStore struct {
	sessions map[int64]*core.RefreshSession
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: map[int64]*core.RefreshSession{}}
}

func (s *sessionStore) Ping(context.Context) error { return nil }

func (s *sessionStore) CreateUser(context.Context, *core.User) (*core.User, error) {
	return nil, core.ErrNotFound
}
func (s *sessionStore) GetUserByEmail(context.Context, string) (*core.User, error) {
	return nil, core.ErrNotFound
}
func (s *sessionStore) GetUserByID(context.Context, int64) (*core.User, error) {
	return nil, core.ErrNotFound
}
func (s *sessionStore) ListUsers(context.Context, core.ListQuery) ([]core.User, int, error) {
	return nil, 0, nil
}
func (s *sessionStore) UpdateUser(context.Context, int64, *core.User) error { return core.ErrNotFound }
func (s *sessionStore) DeleteUser(context.Context, int64) error             { return core.ErrNotFound }

func (s *sessionStore) CreateTenant(context.Context, *core.Tenant) (*core.Tenant, error) {
	return nil, core.ErrNotFound
}
func (s *sessionStore) GetTenant(context.Context, int64) (*core.Tenant, error) {
	return nil, core.ErrNotFound
}
func (s *sessionStore) ListTenants(context.Context, core.ListQuery) ([]core.Tenant, int, error) {
	return nil, 0, nil
}
func (s *sessionStore) UpdateTenant(context.Context, int64, *core.Tenant) error {
	return core.ErrNotFound
}
func (s *sessionStore) DeleteTenant(context.Context, int64) error { return core.ErrNotFound }

func (s *sessionStore) CreateSession(_ context.Context, userID int64, expiresAt time.Time) (*core.RefreshSession, error) {
	id := int64(len(s.sessions) + 1)
	sess := &core.RefreshSession{ID: id, UserID: userID, ExpiresAt: expiresAt}
	s.sessions[id] = sess
	return sess, nil
}

func (s *sessionStore) GetSession(_ context.Context, id int64) (*core.RefreshSession, error) {
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	return nil, core.ErrNotFound
}

func (s *sessionStore) DeleteSession(_ context.Context, id int64) error {
	delete(s.sessions, id)
	return nil
}

func signRefresh(t *testing.T, iss *jwtx.Issuer, sessionID int64) string {
	t.Helper()
	c := jwtx.Claims{Role: "customer", Email: "mohit@mern.space"}
	c.RegisteredClaims.Subject = "42"
	signed, err := iss.SignRefresh(c, strconv.FormatInt(sessionID, 10))
	require.NoError(t, err)
	return signed
}

func TestValidateRefreshHappyPath(t *testing.T) {
	iss := newTestIssuer(t)
	store := newSessionStore()
	sess, err := store.CreateSession(context.Background(), 42, time.Now().Add(time.Hour))
	require.NoError(t, err)

	mw := middlewares.ValidateRefresh(iss, store)

	var ran bool
	var got *jwtx.Claims
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: middlewares.RefreshTokenCookie, Value: signRefresh(t, iss, sess.ID)})
	rec := httptest.NewRecorder()

	mw(okHandler(&ran, &got)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ran)
	require.Equal(t, strconv.FormatInt(sess.ID, 10), got.SessionID)
}

func TestValidateRefreshMissingCookie(t *testing.T) {
	iss := newTestIssuer(t)
	mw := middlewares.ValidateRefresh(iss, newSessionStore())

	var ran bool
	var got *jwtx.Claims
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	rec := httptest.NewRecorder()

	mw(okHandler(&ran, &got)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, ran)
}

func TestValidateRefreshRevokedSession(t *testing.T) {
	iss := newTestIssuer(t)
	store := newSessionStore()
	sess, err := store.CreateSession(context.Background(), 42, time.Now().Add(time.Hour))
	require.NoError(t, err)

	token := signRefresh(t, iss, sess.ID)
	// Logout happened: the row is gone but the signature is still valid.
	require.NoError(t, store.DeleteSession(context.Background(), sess.ID))

	mw := middlewares.ValidateRefresh(iss, store)

	var ran bool
	var got *jwtx.Claims
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: middlewares.RefreshTokenCookie, Value: token})
	rec := httptest.NewRecorder()

	mw(okHandler(&ran, &got)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, ran)
}

func TestValidateRefreshRejectsAccessTokenInCookie(t *testing.T) {
	iss := newTestIssuer(t)
	store := newSessionStore()
	mw := middlewares.ValidateRefresh(iss, store)

	var ran bool
	var got *jwtx.Claims
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	// An RS256 access token must never pass the HS256 refresh check.
	req.AddCookie(&http.Cookie{Name: middlewares.RefreshTokenCookie, Value: signAccess(t, iss, "customer")})
	rec := httptest.NewRecorder()

	mw(okHandler(&ran, &got)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, ran)
}

func TestValidateRefreshTamperedToken(t *testing.T) {
	iss := newTestIssuer(t)
	store := newSessionStore()
	sess, err := store.CreateSession(context.Background(), 42, time.Now().Add(time.Hour))
	require.NoError(t, err)

	token := signRefresh(t, iss, sess.ID)
	tampered := token[:len(token)-2] + "xx"

	mw := middlewares.ValidateRefresh(iss, store)

	var ran bool
	var got *jwtx.Claims
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: middlewares.RefreshTokenCookie, Value: tampered})
	rec := httptest.NewRecorder()

	mw(okHandler(&ran, &got)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, ran)
}
