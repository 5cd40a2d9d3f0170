package core

import "time"

// Roles conocidos del sistema. Se guardan tal cual en la columna users.role.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleCustomer = "customer"
)

// ValidRole reporta si el rol pertenece al enum conocido.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCustomer:
		return true
	}
	return false
}

type Tenant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	// PasswordHash nunca se serializa; los reads normales lo dejan vacío.
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	TenantID     *int64    `json:"tenantId,omitempty"`
	Tenant       *Tenant   `json:"tenant,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RefreshSession es una fila por refresh token emitido. Borrar la fila es la
// forma de revocar el token aunque su firma siga siendo válida.
type RefreshSession struct {
	ID        int64
	UserID    int64
	ExpiresAt time.Time
}

// ListQuery son los parámetros saneados de listados paginados.
type ListQuery struct {
	Q           string
	Role        string
	PerPage     int
	CurrentPage int
}

func (q ListQuery) Offset() int {
	return (q.CurrentPage - 1) * q.PerPage
}
