package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mernspace/auth-service/internal/store/core"
)

// CreateSession inserta una fila nueva por refresh token emitido.
func (s *Store) CreateSession(ctx context.Context, userID int64, expiresAt time.Time) (*core.RefreshSession, error) {
	var sess core.RefreshSession
	err := s.pool.QueryRow(ctx, `
		INSERT INTO refresh_sessions (user_id, expires_at)
		VALUES ($1, $2)
		RETURNING id, user_id, expires_at
	`, userID, expiresAt.UTC()).Scan(&sess.ID, &sess.UserID, &sess.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &sess, nil
}

func (s *Store) GetSession(ctx context.Context, id int64) (*core.RefreshSession, error) {
	var sess core.RefreshSession
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, expires_at FROM refresh_sessions WHERE id = $1
	`, id).Scan(&sess.ID, &sess.UserID, &sess.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &sess, nil
}

// DeleteSession es la revocación: sin fila, el refresh token deja de servir
// aunque su firma siga válida. Borrar un id inexistente no es error.
func (s *Store) DeleteSession(ctx context.Context, id int64) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM refresh_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
