package validation_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mernspace/auth-service/internal/validation"
)

func TestRegisterNormalizesInput(t *testing.T) {
	req := validation.RegisterRequest{
		FirstName: "  Mohit ",
		LastName:  " Gupta ",
		Email:     "  MOHIT@Mern.Space ",
		Password:  "secret-password",
	}
	errs := validation.Register(&req)
	require.Empty(t, errs)
	require.Equal(t, "Mohit", req.FirstName)
	require.Equal(t, "mohit@mern.space", req.Email)
}

func TestRegisterCollectsAllFieldErrors(t *testing.T) {
	req := validation.RegisterRequest{Email: "nope", Password: "short"}
	errs := validation.Register(&req)
	require.Len(t, errs, 4)

	byPath := map[string]string{}
	for _, e := range errs {
		byPath[e.Path] = e.Msg
		require.Equal(t, "body", e.Location)
	}
	require.Equal(t, "First name is required!", byPath["firstName"])
	require.Equal(t, "Last name is required!", byPath["lastName"])
	require.Equal(t, "Email should be a valid email", byPath["email"])
	require.Equal(t, "Password length should be at least 8 chars!", byPath["password"])
}

func TestLoginRequiresBothFields(t *testing.T) {
	req := validation.LoginRequest{}
	errs := validation.Login(&req)
	require.Len(t, errs, 2)
}

func TestCreateUserNonAdminNeedsTenant(t *testing.T) {
	req := validation.CreateUserRequest{
		FirstName: "Store",
		LastName:  "Manager",
		Email:     "manager@mern.space",
		Password:  "secret-password",
		Role:      "manager",
	}
	errs := validation.CreateUser(&req)
	require.Len(t, errs, 1)
	require.Equal(t, "tenantId", errs[0].Path)

	tenant := int64(7)
	req.TenantID = &tenant
	require.Empty(t, validation.CreateUser(&req))
}

func TestCreateUserAdminWithoutTenant(t *testing.T) {
	req := validation.CreateUserRequest{
		FirstName: "Root",
		LastName:  "Admin",
		Email:     "admin@mern.space",
		Password:  "secret-password",
		Role:      "admin",
	}
	require.Empty(t, validation.CreateUser(&req))
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	req := validation.CreateUserRequest{
		FirstName: "Some",
		LastName:  "One",
		Email:     "one@mern.space",
		Password:  "secret-password",
		Role:      "superuser",
	}
	errs := validation.CreateUser(&req)
	require.Len(t, errs, 1)
	require.Equal(t, "role", errs[0].Path)
}

func TestTenantLengthLimits(t *testing.T) {
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	req := validation.TenantRequest{Name: string(long), Address: "Main St 1"}
	errs := validation.Tenant(&req)
	require.Len(t, errs, 1)
	require.Equal(t, "name", errs[0].Path)
}

func TestListQueryDefaults(t *testing.T) {
	q := validation.ListQuery(url.Values{})
	require.Equal(t, validation.DefaultPerPage, q.PerPage)
	require.Equal(t, validation.DefaultCurrentPage, q.CurrentPage)
	require.Empty(t, q.Q)
	require.Empty(t, q.Role)
}

func TestListQueryInvalidValuesFallBack(t *testing.T) {
	q := validation.ListQuery(url.Values{
		"perPage":     {"-5"},
		"currentPage": {"zero"},
		"role":        {"superuser"},
		"q":           {"  pizza  "},
	})
	require.Equal(t, validation.DefaultPerPage, q.PerPage)
	require.Equal(t, validation.DefaultCurrentPage, q.CurrentPage)
	require.Empty(t, q.Role, "unknown roles are dropped, not errored")
	require.Equal(t, "pizza", q.Q)
}

func TestListQueryCapsPerPage(t *testing.T) {
	q := validation.ListQuery(url.Values{"perPage": {"10000"}})
	require.Equal(t, validation.DefaultPerPage, q.PerPage)
}
