//go:build unit

package commands_test

import (
	"context"
	"testing"

	"licoreria-api/internal/pkg/errs"
	"licoreria-api/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFineFixture(t *testing.T) (*fakeUoW, commands.FineCommands, uuid.UUID) {
	t.Helper()
	uow := newFakeUoW()
	cust := seedCustomer(t, uow)
	cmds := commands.NewFineCommands(uow, &fakeFineQueries{repo: uow.tx.fines}, &fakeAudit{})
	return uow, cmds, cust.ID()
}

func supervisorActor() commands.Actor {
	employeeID := uuid.New()
	return commands.Actor{UserID: uuid.New(), EmployeeID: &employeeID}
}

func TestImposeFine(t *testing.T) {
	t.Run("standalone fine has no order link", func(t *testing.T) {
		_, cmds, customerID := newFineFixture(t)

		view, err := cmds.Impose(context.Background(), commands.ImposeFineInput{
			CustomerID:  customerID,
			Kind:        "misconduct",
			Amount:      decimal.NewFromFloat(10.00),
			Description: "Shouting at the counter",
		}, supervisorActor())
		require.NoError(t, err)

		assert.Equal(t, customerID, view.CustomerID)
		assert.Nil(t, view.OrderID)
		assert.False(t, view.Paid)
		assert.True(t, view.Amount.Equal(decimal.NewFromFloat(10.00)))
	})

	t.Run("unknown customer", func(t *testing.T) {
		_, cmds, _ := newFineFixture(t)

		_, err := cmds.Impose(context.Background(), commands.ImposeFineInput{
			CustomerID:  uuid.New(),
			Kind:        "other",
			Amount:      decimal.NewFromFloat(1.00),
			Description: "Nobody to fine",
		}, supervisorActor())
		assert.ErrorIs(t, err, errs.ErrCustomerNotFound)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, cmds, customerID := newFineFixture(t)

		_, err := cmds.Impose(context.Background(), commands.ImposeFineInput{
			CustomerID:  customerID,
			Kind:        "tardiness",
			Amount:      decimal.NewFromFloat(1.00),
			Description: "Not a thing",
		}, supervisorActor())
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}

func TestPayFine(t *testing.T) {
	t.Run("settles the fine", func(t *testing.T) {
		_, cmds, customerID := newFineFixture(t)
		imposed, err := cmds.Impose(context.Background(), commands.ImposeFineInput{
			CustomerID:  customerID,
			Kind:        "damage",
			Amount:      decimal.NewFromFloat(5.00),
			Description: "Broken glass",
		}, supervisorActor())
		require.NoError(t, err)

		view, err := cmds.Pay(context.Background(), imposed.ID, supervisorActor())
		require.NoError(t, err)
		assert.True(t, view.Paid)

		_, err = cmds.Pay(context.Background(), imposed.ID, supervisorActor())
		assert.ErrorIs(t, err, errs.ErrFineAlreadyPaid)
	})

	t.Run("unknown fine", func(t *testing.T) {
		_, cmds, _ := newFineFixture(t)

		_, err := cmds.Pay(context.Background(), uuid.New(), supervisorActor())
		assert.ErrorIs(t, err, errs.ErrFineNotFound)
	})
}
