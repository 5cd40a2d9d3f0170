package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/mernspace/auth-service/internal/store/core"
)

func (s *Store) CreateTenant(ctx context.Context, t *core.Tenant) (*core.Tenant, error) {
	query := `
		INSERT INTO tenants (name, address)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	out := *t
	if err := s.pool.QueryRow(ctx, query, t.Name, t.Address).Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, fmt.Errorf("create tenant: %w", err)
	}
	return &out, nil
}

func (s *Store) GetTenant(ctx context.Context, id int64) (*core.Tenant, error) {
	var t core.Tenant
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, address, created_at FROM tenants WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Address, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}

func (s *Store) ListTenants(ctx context.Context, q core.ListQuery) ([]core.Tenant, int, error) {
	where := []string{"1=1"}
	args := []any{}
	argIdx := 1

	if q.Q != "" {
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR address ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+q.Q+"%")
		argIdx++
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	if err := s.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM tenants WHERE %s", whereClause), args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tenants: %w", err)
	}

	args = append(args, q.PerPage, q.Offset())
	query := fmt.Sprintf(`
		SELECT id, name, address, created_at
		FROM tenants
		WHERE %s
		ORDER BY id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []core.Tenant
	for rows.Next() {
		var t core.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.Address, &t.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	return tenants, total, rows.Err()
}

func (s *Store) UpdateTenant(ctx context.Context, id int64, t *core.Tenant) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tenants SET name = $1, address = $2 WHERE id = $3`,
		t.Name, t.Address, id,
	)
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteTenant(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}
