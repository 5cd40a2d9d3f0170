package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mernspace/auth-service/internal/store/core"
)

const userCols = `u.id, u.first_name, u.last_name, u.email, u.role, u.tenant_id, u.created_at`

// CreateUser inserta el usuario. El email duplicado se resuelve acá con el
// unique constraint (23505): dos registros concurrentes no pueden pasar los
// dos a la vez.
func (s *Store) CreateUser(ctx context.Context, u *core.User) (*core.User, error) {
	query := `
		INSERT INTO users (first_name, last_name, email, password_hash, role, tenant_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	out := *u
	err := s.pool.QueryRow(ctx, query,
		u.FirstName, u.LastName, u.Email, u.PasswordHash, u.Role, u.TenantID,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, core.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &out, nil
}

// GetUserByEmail es el único read que trae password_hash (lo necesita login).
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	query := `
		SELECT ` + userCols + `, u.password_hash
		FROM users u
		WHERE u.email = $1
	`
	var u core.User
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Role, &u.TenantID, &u.CreatedAt,
		&u.PasswordHash,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*core.User, error) {
	query := `
		SELECT ` + userCols + `, t.id, t.name, t.address, t.created_at
		FROM users u
		LEFT JOIN tenants t ON t.id = u.tenant_id
		WHERE u.id = $1
	`
	var u core.User
	var tID *int64
	var tName, tAddr *string
	var tCreated *time.Time
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Role, &u.TenantID, &u.CreatedAt,
		&tID, &tName, &tAddr, &tCreated,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if tID != nil {
		u.Tenant = &core.Tenant{ID: *tID, Name: deref(tName), Address: deref(tAddr)}
		if tCreated != nil {
			u.Tenant.CreatedAt = *tCreated
		}
	}
	return &u, nil
}

// ListUsers pagina con búsqueda libre sobre nombre/email y filtro por rol.
// Orden: más nuevos primero.
func (s *Store) ListUsers(ctx context.Context, q core.ListQuery) ([]core.User, int, error) {
	where := []string{"1=1"}
	args := []any{}
	argIdx := 1

	if q.Q != "" {
		where = append(where, fmt.Sprintf(
			"(CONCAT(u.first_name, ' ', u.last_name) ILIKE $%d OR u.email ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+q.Q+"%")
		argIdx++
	}
	if q.Role != "" {
		where = append(where, fmt.Sprintf("u.role = $%d", argIdx))
		args = append(args, q.Role)
		argIdx++
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM users u WHERE %s", whereClause)
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	args = append(args, q.PerPage, q.Offset())
	query := fmt.Sprintf(`
		SELECT `+userCols+`, t.id, t.name, t.address
		FROM users u
		LEFT JOIN tenants t ON t.id = u.tenant_id
		WHERE %s
		ORDER BY u.id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		var u core.User
		var tID *int64
		var tName, tAddr *string
		if err := rows.Scan(
			&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Role, &u.TenantID, &u.CreatedAt,
			&tID, &tName, &tAddr,
		); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		if tID != nil {
			u.Tenant = &core.Tenant{ID: *tID, Name: deref(tName), Address: deref(tAddr)}
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// UpdateUser actualiza la fila. Email vacío preserva el valor guardado: el
// PATCH puede omitirlo sin pisar la dirección.
func (s *Store) UpdateUser(ctx context.Context, id int64, u *core.User) error {
	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, role = $3,
		    email = COALESCE(NULLIF($4, ''), email), tenant_id = $5
		WHERE id = $6
	`
	tag, err := s.pool.Exec(ctx, query, u.FirstName, u.LastName, u.Role, u.Email, u.TenantID, id)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
