//go:build unit

package user_test

import (
	"testing"

	"licoreria-api/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	email, err := user.NewEmail("clerk@licoreria.test")
	require.NoError(t, err)
	role, err := user.NewRole("stockkeeper")
	require.NoError(t, err)

	employeeID := uuid.New()
	u := user.NewUser(email, "hashed_password", role, nil, &employeeID)

	assert.NotEqual(t, uuid.Nil, u.ID())
	assert.Equal(t, "clerk@licoreria.test", u.Email().Value())
	assert.True(t, u.IsActive())
	assert.Nil(t, u.LastLogin())
	assert.Nil(t, u.CustomerID())
	require.NotNil(t, u.EmployeeID())
	assert.Equal(t, employeeID, *u.EmployeeID())
}

func TestEmailValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		errIs error
	}{
		{name: "valid address", input: "maria@example.com"},
		{name: "trims whitespace", input: "  maria@example.com  "},
		{name: "empty", input: "", errIs: user.ErrInvalidEmail},
		{name: "missing at sign", input: "mariaexample.com", errIs: user.ErrInvalidEmail},
		{name: "missing domain", input: "maria@", errIs: user.ErrInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := user.NewEmail(tt.input)
			if tt.errIs == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.errIs)
			}
		})
	}
}

func TestRoles(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		for _, valid := range []string{"customer", "stockkeeper", "supervisor", "admin"} {
			_, err := user.NewRole(valid)
			require.NoError(t, err, valid)
		}
		_, err := user.NewRole("owner")
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})

	t.Run("staff classification", func(t *testing.T) {
		assert.False(t, user.RoleCustomer.IsStaff())
		assert.True(t, user.RoleStockkeeper.IsStaff())
		assert.True(t, user.RoleSupervisor.IsStaff())
		assert.True(t, user.RoleAdmin.IsStaff())
	})
}

func TestPasswordValidation(t *testing.T) {
	t.Run("minimum length", func(t *testing.T) {
		_, err := user.NewPassword("short")
		assert.ErrorIs(t, err, user.ErrPasswordTooWeak)
	})

	t.Run("accepts eight characters", func(t *testing.T) {
		p, err := user.NewPassword("longenough")
		require.NoError(t, err)
		assert.Equal(t, "longenough", p.Value())
	})
}
