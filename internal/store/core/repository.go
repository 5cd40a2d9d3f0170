package core

import (
	"context"
	"time"
)

type Repository interface {
	Ping(ctx context.Context) error

	//------- Users -------
	// CreateUser inserta y devuelve la fila completa. Si el email ya existe
	// retorna ErrDuplicateEmail.
	CreateUser(ctx context.Context, u *User) (*User, error)
	// GetUserByEmail incluye password_hash (es el único read que lo trae).
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	ListUsers(ctx context.Context, q ListQuery) ([]User, int, error)
	// UpdateUser pisa nombre/rol/tenant; email vacío preserva el guardado.
	UpdateUser(ctx context.Context, id int64, u *User) error
	DeleteUser(ctx context.Context, id int64) error

	//------- Tenants -------
	CreateTenant(ctx context.Context, t *Tenant) (*Tenant, error)
	GetTenant(ctx context.Context, id int64) (*Tenant, error)
	ListTenants(ctx context.Context, q ListQuery) ([]Tenant, int, error)
	UpdateTenant(ctx context.Context, id int64, t *Tenant) error
	DeleteTenant(ctx context.Context, id int64) error

	//------- Refresh sessions -------
	// CreateSession inserta una sesión nueva; la rotación nunca actualiza in place.
	CreateSession(ctx context.Context, userID int64, expiresAt time.Time) (*RefreshSession, error)
	GetSession(ctx context.Context, id int64) (*RefreshSession, error)
	// DeleteSession es idempotente: borrar un id inexistente no es error acá.
	DeleteSession(ctx context.Context, id int64) error
}
