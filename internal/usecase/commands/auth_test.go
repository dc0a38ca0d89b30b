//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"licoreria-api/internal/domain/user"
	"licoreria-api/internal/pkg/clock"
	"licoreria-api/internal/pkg/jwt"
	"licoreria-api/internal/pkg/password"
	"licoreria-api/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (*fakeUoW, *jwt.Service, commands.AuthCommands) {
	t.Helper()
	uow := newFakeUoW()
	jwtService := jwt.NewService("test-secret", time.Hour)
	mockClock := clock.NewMockClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	return uow, jwtService, commands.NewAuthCommands(uow, jwtService, mockClock)
}

func seedLogin(t *testing.T, uow *fakeUoW, emailAddr, plainPassword string, active bool) *user.User {
	t.Helper()
	email, err := user.NewEmail(emailAddr)
	require.NoError(t, err)
	hash, err := password.HashPassword(plainPassword)
	require.NoError(t, err)

	customerID := uuid.New()
	u := user.NewUser(email, hash, user.RoleCustomer, &customerID, nil)
	if !active {
		u = user.ReconstructUser(
			u.ID(), email, hash, user.RoleCustomer,
			&customerID, nil, nil, false, time.Now(), time.Now(),
		)
	}
	uow.tx.users.byID[u.ID()] = u
	return u
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials return a working token", func(t *testing.T) {
		uow, jwtService, auth := newAuthFixture(t)
		u := seedLogin(t, uow, "maria@example.com", "password123", true)

		result, err := auth.Login(context.Background(), "maria@example.com", "password123")
		require.NoError(t, err)

		assert.Equal(t, u.ID(), result.UserID)
		assert.Equal(t, user.RoleCustomer, result.Role)
		require.NotNil(t, result.CustomerID)
		assert.Equal(t, *u.CustomerID(), *result.CustomerID)
		assert.Nil(t, result.EmployeeID)

		claims, err := jwtService.ValidateToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, u.ID(), claims.UserID)
		assert.Equal(t, "customer", claims.Role)
		require.NotNil(t, claims.CustomerID)
		assert.Equal(t, *u.CustomerID(), *claims.CustomerID)

		assert.Equal(t, 1, uow.tx.users.lastLoginCalls)
	})

	t.Run("wrong password", func(t *testing.T) {
		uow, _, auth := newAuthFixture(t)
		seedLogin(t, uow, "maria@example.com", "password123", true)

		_, err := auth.Login(context.Background(), "maria@example.com", "wrong-password")
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, auth := newAuthFixture(t)

		_, err := auth.Login(context.Background(), "nobody@example.com", "password123")
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		uow, _, auth := newAuthFixture(t)
		seedLogin(t, uow, "maria@example.com", "password123", false)

		_, err := auth.Login(context.Background(), "maria@example.com", "password123")
		assert.ErrorIs(t, err, commands.ErrUserInactive)
	})
}
