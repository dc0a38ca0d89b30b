//go:build unit

package commands_test

import (
	"context"
	"testing"

	"licoreria-api/internal/pkg/errs"
	"licoreria-api/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCustomer(t *testing.T) {
	input := commands.RegisterCustomerInput{
		Name:     "Maria Perez",
		Email:    "maria@example.com",
		Password: "password123",
	}

	t.Run("creates the customer and its login together", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewCustomerCommands(uow, &fakeAudit{})

		result, err := cmds.Register(context.Background(), input)
		require.NoError(t, err)

		assert.Len(t, result.Code, 8, "counter code")

		cust, ok := uow.tx.customers.customers[result.CustomerID]
		require.True(t, ok)
		assert.Equal(t, "Maria Perez", cust.Name())
		assert.True(t, cust.LoanLimit().IsZero())

		u, ok := uow.tx.users.byID[result.UserID]
		require.True(t, ok)
		assert.Equal(t, "customer", u.Role().String())
		require.NotNil(t, u.CustomerID())
		assert.Equal(t, result.CustomerID, *u.CustomerID())
		assert.NotEqual(t, "password123", u.PasswordHash(), "password is stored hashed")
	})

	t.Run("duplicate email", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewCustomerCommands(uow, &fakeAudit{})

		_, err := cmds.Register(context.Background(), input)
		require.NoError(t, err)

		_, err = cmds.Register(context.Background(), input)
		assert.ErrorIs(t, err, commands.ErrEmailTaken)
	})

	t.Run("validation", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewCustomerCommands(uow, &fakeAudit{})

		tests := []struct {
			name   string
			mutate func(*commands.RegisterCustomerInput)
		}{
			{name: "bad email", mutate: func(in *commands.RegisterCustomerInput) { in.Email = "not-an-email" }},
			{name: "weak password", mutate: func(in *commands.RegisterCustomerInput) { in.Password = "short" }},
			{name: "blank name", mutate: func(in *commands.RegisterCustomerInput) { in.Name = "  " }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				in := input
				tt.mutate(&in)
				_, err := cmds.Register(context.Background(), in)
				assert.ErrorIs(t, err, errs.ErrDomainValidation)
			})
		}
	})
}
