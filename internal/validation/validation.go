// Package validation sanea y valida los cuerpos y query params de la API.
// Cada regla produce una entrada del envelope con path/location, estilo
// express-validator: el cliente ve todos los campos que fallaron, no solo el
// primero.
package validation

import (
	"net/mail"
	"net/url"
	"strconv"
	"strings"

	httperr "github.com/mernspace/auth-service/internal/http/errors"
	"github.com/mernspace/auth-service/internal/store/core"
)

const (
	DefaultPerPage     = 6
	DefaultCurrentPage = 1
	maxPerPage         = 100
)

func validEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Register normaliza (trim, email en minúsculas) y valida el alta.
func Register(req *RegisterRequest) []*httperr.AppError {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var errs []*httperr.AppError
	if req.FirstName == "" {
		errs = append(errs, httperr.Field("First name is required!", "firstName", "body"))
	}
	if req.LastName == "" {
		errs = append(errs, httperr.Field("Last name is required!", "lastName", "body"))
	}
	switch {
	case req.Email == "":
		errs = append(errs, httperr.Field("Email is required!", "email", "body"))
	case !validEmail(req.Email):
		errs = append(errs, httperr.Field("Email should be a valid email", "email", "body"))
	}
	switch {
	case req.Password == "":
		errs = append(errs, httperr.Field("Password is required!", "password", "body"))
	case len(req.Password) < 8:
		errs = append(errs, httperr.Field("Password length should be at least 8 chars!", "password", "body"))
	}
	return errs
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(req *LoginRequest) []*httperr.AppError {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var errs []*httperr.AppError
	switch {
	case req.Email == "":
		errs = append(errs, httperr.Field("Email is required!", "email", "body"))
	case !validEmail(req.Email):
		errs = append(errs, httperr.Field("Email should be a valid email", "email", "body"))
	}
	if req.Password == "" {
		errs = append(errs, httperr.Field("Password is required!", "password", "body"))
	}
	return errs
}

type TenantRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func Tenant(req *TenantRequest) []*httperr.AppError {
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)

	var errs []*httperr.AppError
	switch {
	case req.Name == "":
		errs = append(errs, httperr.Field("Tenant name is required!", "name", "body"))
	case len(req.Name) > 100:
		errs = append(errs, httperr.Field("Tenant name length should be at most 100 chars!", "name", "body"))
	}
	switch {
	case req.Address == "":
		errs = append(errs, httperr.Field("Tenant address is required!", "address", "body"))
	case len(req.Address) > 255:
		errs = append(errs, httperr.Field("Tenant address length should be at most 255 chars!", "address", "body"))
	}
	return errs
}

type CreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	TenantID  *int64 `json:"tenantId"`
}

// CreateUser valida el alta administrativa: como Register pero con rol
// obligatorio y tenant para roles no-admin.
func CreateUser(req *CreateUserRequest) []*httperr.AppError {
	base := RegisterRequest{
		FirstName: req.FirstName, LastName: req.LastName,
		Email: req.Email, Password: req.Password,
	}
	errs := Register(&base)
	req.FirstName, req.LastName, req.Email = base.FirstName, base.LastName, base.Email

	req.Role = strings.TrimSpace(req.Role)
	switch {
	case req.Role == "":
		errs = append(errs, httperr.Field("Role is required!", "role", "body"))
	case !core.ValidRole(req.Role):
		errs = append(errs, httperr.Field("Role should be one of admin, manager, customer", "role", "body"))
	case req.Role != core.RoleAdmin && req.TenantID == nil:
		errs = append(errs, httperr.Field("Tenant id is required for non admin users!", "tenantId", "body"))
	}
	return errs
}

type UpdateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TenantID  *int64 `json:"tenantId"`
}

func UpdateUser(req *UpdateUserRequest) []*httperr.AppError {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Role = strings.TrimSpace(req.Role)

	var errs []*httperr.AppError
	if req.FirstName == "" {
		errs = append(errs, httperr.Field("First name is required!", "firstName", "body"))
	}
	if req.LastName == "" {
		errs = append(errs, httperr.Field("Last name is required!", "lastName", "body"))
	}
	if req.Email != "" && !validEmail(req.Email) {
		errs = append(errs, httperr.Field("Email should be a valid email", "email", "body"))
	}
	switch {
	case req.Role == "":
		errs = append(errs, httperr.Field("Role is required!", "role", "body"))
	case !core.ValidRole(req.Role):
		errs = append(errs, httperr.Field("Role should be one of admin, manager, customer", "role", "body"))
	}
	return errs
}

// ListQuery sanea los query params de listados. Valores inválidos caen en los
// defaults, nunca en error (igual que el sanitizer original).
func ListQuery(values url.Values) core.ListQuery {
	q := core.ListQuery{
		Q:           strings.TrimSpace(values.Get("q")),
		PerPage:     DefaultPerPage,
		CurrentPage: DefaultCurrentPage,
	}
	if role := strings.TrimSpace(values.Get("role")); core.ValidRole(role) {
		q.Role = role
	}
	if v, err := strconv.Atoi(values.Get("perPage")); err == nil && v > 0 && v <= maxPerPage {
		q.PerPage = v
	}
	if v, err := strconv.Atoi(values.Get("currentPage")); err == nil && v > 0 {
		q.CurrentPage = v
	}
	return q
}
