//go:build unit

package commands_test

import (
	"context"
	"testing"

	"licoreria-api/internal/domain/cart"
	"licoreria-api/internal/domain/catalog"
	"licoreria-api/internal/domain/order"
	"licoreria-api/internal/pkg/errs"
	"licoreria-api/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type OrderCommandsSuite struct {
	suite.Suite

	uow      *fakeUoW
	audit    *fakeAudit
	commands commands.OrderCommands

	customerID uuid.UUID
	employeeID uuid.UUID
	staff      commands.Actor
	shopper    commands.Actor
}

func TestOrderCommandsSuite(t *testing.T) {
	suite.Run(t, new(OrderCommandsSuite))
}

func (s *OrderCommandsSuite) SetupTest() {
	s.uow = newFakeUoW()
	s.audit = &fakeAudit{}
	s.commands = commands.NewOrderCommands(
		s.uow,
		newTestEngine(s.T()),
		&fakeOrderQueries{repo: s.uow.tx.orders},
		s.audit,
	)

	cust := seedCustomer(s.T(), s.uow)
	s.customerID = cust.ID()
	s.employeeID = uuid.New()
	s.staff = commands.Actor{UserID: uuid.New(), EmployeeID: &s.employeeID}
	s.shopper = commands.Actor{UserID: uuid.New(), CustomerID: &s.customerID}
}

func (s *OrderCommandsSuite) checkout(ref catalog.ItemRef, qty int32, mode order.PaymentMode) uuid.UUID {
	view, err := s.commands.Checkout(context.Background(), commands.CheckoutInput{
		CustomerID: s.customerID,
		Lines:      []cart.Line{{Kind: ref.Kind, ItemID: ref.ID, Qty: qty}},
		Mode:       mode,
	}, s.shopper)
	s.Require().NoError(err)
	return view.ID
}

func (s *OrderCommandsSuite) loanLimit() decimal.Decimal {
	return s.uow.tx.customers.customers[s.customerID].LoanLimit()
}

func (s *OrderCommandsSuite) TestCheckoutDirectPayment() {
	ref := seedItem(s.T(), s.uow, catalog.KindProduct, "Ron Abuelo 7", 15.50, 10)

	view, err := s.commands.Checkout(context.Background(), commands.CheckoutInput{
		CustomerID: s.customerID,
		Lines:      []cart.Line{{Kind: ref.Kind, ItemID: ref.ID, Qty: 4}},
		Mode:       order.ModePay,
	}, s.shopper)
	s.Require().NoError(err)

	s.Equal("paid", view.Status)
	s.True(view.Paid)
	s.True(view.PointsAssigned)
	s.True(view.Total.Equal(decimal.NewFromFloat(62.00)))
	s.Require().Len(view.Lines, 1)
	s.True(view.Lines[0].UnitPrice.Equal(decimal.NewFromFloat(15.50)), "price snapshot from the catalog")

	s.Equal(int32(6), stockOf(s.T(), s.uow, ref))
	// 2% loan bonus on the paid total
	s.True(s.loanLimit().Equal(decimal.NewFromFloat(1.24)))
	s.Contains(s.audit.actions, "checkout")
}

func (s *OrderCommandsSuite) TestCheckoutOnCreditStaysRequested() {
	ref := seedItem(s.T(), s.uow, catalog.KindCocktail, "Mojito", 4.50, 20)

	view, err := s.commands.Checkout(context.Background(), commands.CheckoutInput{
		CustomerID: s.customerID,
		Lines:      []cart.Line{{Kind: ref.Kind, ItemID: ref.ID, Qty: 2}},
		Mode:       order.ModeCredit,
	}, s.shopper)
	s.Require().NoError(err)

	s.Equal("requested", view.Status)
	s.False(view.Paid)
	s.Equal(int32(18), stockOf(s.T(), s.uow, ref), "stock is held from checkout, not from approval")
	s.True(s.loanLimit().IsZero(), "no bonus before payment")
}

func (s *OrderCommandsSuite) TestCheckoutGuards() {
	ref := seedItem(s.T(), s.uow, catalog.KindProduct, "Cerveza", 1.25, 5)

	s.Run("empty cart", func() {
		_, err := s.commands.Checkout(context.Background(), commands.CheckoutInput{
			CustomerID: s.customerID,
			Mode:       order.ModePay,
		}, s.shopper)
		s.ErrorIs(err, errs.ErrEmptyCart)
	})

	s.Run("unknown item", func() {
		_, err := s.commands.Checkout(context.Background(), commands.CheckoutInput{
			CustomerID: s.customerID,
			Lines:      []cart.Line{{Kind: catalog.KindProduct, ItemID: uuid.New(), Qty: 1}},
			Mode:       order.ModePay,
		}, s.shopper)
		s.ErrorIs(err, errs.ErrItemNotFound)
	})

	s.Run("insufficient stock", func() {
		_, err := s.commands.Checkout(context.Background(), commands.CheckoutInput{
			CustomerID: s.customerID,
			Lines:      []cart.Line{{Kind: ref.Kind, ItemID: ref.ID, Qty: 6}},
			Mode:       order.ModePay,
		}, s.shopper)
		s.ErrorIs(err, errs.ErrInsufficientStock)
		s.Equal(int32(5), stockOf(s.T(), s.uow, ref))
	})

	s.Run("unknown customer", func() {
		_, err := s.commands.Checkout(context.Background(), commands.CheckoutInput{
			CustomerID: uuid.New(),
			Lines:      []cart.Line{{Kind: ref.Kind, ItemID: ref.ID, Qty: 1}},
			Mode:       order.ModePay,
		}, s.shopper)
		s.ErrorIs(err, errs.ErrCustomerNotFound)
	})
}

func (s *OrderCommandsSuite) TestCheckoutCreditLimit() {
	// Fresh customer: $50 base limit, no history.
	ref := seedItem(s.T(), s.uow, catalog.KindProduct, "Whisky 12", 30.00, 10)

	_, err := s.commands.Checkout(context.Background(), commands.CheckoutInput{
		CustomerID: s.customerID,
		Lines:      []cart.Line{{Kind: ref.Kind, ItemID: ref.ID, Qty: 2}},
		Mode:       order.ModeCredit,
	}, s.shopper)

	s.ErrorIs(err, errs.ErrInsufficientCredit)
}

func (s *OrderCommandsSuite) TestCheckoutCreditCountsOutstandingDebt() {
	ref := seedItem(s.T(), s.uow, catalog.KindProduct, "Vino Tinto", 20.00, 10)

	// First credit order consumes $40 of the $50 limit.
	s.checkout(ref, 2, order.ModeCredit)

	// The second $20 does not fit in the remaining $10.
	_, err := s.commands.Checkout(context.Background(), commands.CheckoutInput{
		CustomerID: s.customerID,
		Lines:      []cart.Line{{Kind: ref.Kind, ItemID: ref.ID, Qty: 1}},
		Mode:       order.ModeCredit,
	}, s.shopper)

	s.ErrorIs(err, errs.ErrInsufficientCredit)
}

func (s *OrderCommandsSuite) TestApprove() {
	ref := seedItem(s.T(), s.uow, catalog.KindProduct, "Gin", 12.00, 10)
	orderID := s.checkout(ref, 1, order.ModeCredit)

	view, err := s.commands.Approve(context.Background(), orderID, s.staff)
	s.Require().NoError(err)

	s.Equal("on_loan", view.Status)
	s.Require().NotNil(view.EmployeeID)
	s.Equal(s.employeeID, *view.EmployeeID)

	s.Run("approve twice", func() {
		_, err := s.commands.Approve(context.Background(), orderID, s.staff)
		s.ErrorIs(err, errs.ErrInvalidStateTransition)
	})

	s.Run("actor without employee record", func() {
		_, err := s.commands.Approve(context.Background(), orderID, s.shopper)
		s.ErrorIs(err, errs.ErrDomainValidation)
	})

	s.Run("unknown order", func() {
		_, err := s.commands.Approve(context.Background(), uuid.New(), s.staff)
		s.ErrorIs(err, errs.ErrOrderNotFound)
	})
}

func (s *OrderCommandsSuite) TestCancelRestoresStockAndDeletes() {
	ref := seedItem(s.T(), s.uow, catalog.KindProduct, "Tequila", 18.00, 10)
	orderID := s.checkout(ref, 3, order.ModeCredit)
	s.Equal(int32(7), stockOf(s.T(), s.uow, ref))

	s.Require().NoError(s.commands.Cancel(context.Background(), orderID, s.shopper))

	s.Equal(int32(10), stockOf(s.T(), s.uow, ref))
	s.Empty(s.uow.tx.orders.orders, "cancelled order leaves no row behind")
}

func (s *OrderCommandsSuite) TestCancelAfterApproval() {
	ref := seedItem(s.T(), s.uow, catalog.KindProduct, "Pisco", 14.00, 10)
	orderID := s.checkout(ref, 1, order.ModeCredit)
	_, err := s.commands.Approve(context.Background(), orderID, s.staff)
	s.Require().NoError(err)

	err = s.commands.Cancel(context.Background(), orderID, s.shopper)
	s.ErrorIs(err, errs.ErrInvalidStateTransition)
}

func (s *OrderCommandsSuite) TestMarkPaidGrantsLoanBonusOnce() {
	ref := seedItem(s.T(), s.uow, catalog.KindProduct, "Brandy", 25.00, 10)
	orderID := s.checkout(ref, 1, order.ModeCredit)
	s.True(s.loanLimit().IsZero())

	view, err := s.commands.MarkPaid(context.Background(), orderID, s.staff)
	s.Require().NoError(err)
	s.Equal("paid", view.Status)
	s.True(view.Paid)
	s.True(view.PointsAssigned)
	s.True(s.loanLimit().Equal(decimal.NewFromFloat(0.50)))

	// Replayed confirmation: no error, no second bonus.
	view, err = s.commands.MarkPaid(context.Background(), orderID, s.staff)
	s.Require().NoError(err)
	s.True(view.Paid)
	s.True(s.loanLimit().Equal(decimal.NewFromFloat(0.50)))
}

func (s *OrderCommandsSuite) TestMarkPaidSettlesLinkedFines() {
	ref := seedItem(s.T(), s.uow, catalog.KindProduct, "Aguardiente", 8.00, 10)
	orderID := s.checkout(ref, 1, order.ModeCredit)

	_, err := s.commands.ApplyFine(context.Background(), commands.ApplyFineInput{
		OrderID:     orderID,
		Kind:        "late_payment",
		Amount:      decimal.NewFromFloat(2.00),
		Description: "Two weeks overdue",
	}, s.staff)
	s.Require().NoError(err)

	_, err = s.commands.MarkPaid(context.Background(), orderID, s.staff)
	s.Require().NoError(err)

	for _, f := range s.uow.tx.fines.fines {
		s.True(f.Paid(), "linked fine settles with the order")
	}
}

func (s *OrderCommandsSuite) TestApplyFine() {
	ref := seedItem(s.T(), s.uow, catalog.KindProduct, "Mezcal", 22.00, 10)
	orderID := s.checkout(ref, 1, order.ModeCredit)

	view, err := s.commands.ApplyFine(context.Background(), commands.ApplyFineInput{
		OrderID:     orderID,
		Kind:        "damage",
		Amount:      decimal.NewFromFloat(5.00),
		Description: "Returned bottle chipped",
	}, s.staff)
	s.Require().NoError(err)

	s.Equal("fined", view.Status)
	s.True(view.FineSurcharge.Equal(decimal.NewFromFloat(5.00)))
	s.True(view.Total.Equal(decimal.NewFromFloat(27.00)))

	s.Require().Len(s.uow.tx.fines.fines, 1)
	for _, f := range s.uow.tx.fines.fines {
		s.Equal(s.customerID, f.CustomerID())
		s.Require().NotNil(f.OrderID())
		s.Equal(orderID, *f.OrderID())
	}

	s.Run("unknown kind", func() {
		_, err := s.commands.ApplyFine(context.Background(), commands.ApplyFineInput{
			OrderID:     orderID,
			Kind:        "tardiness",
			Amount:      decimal.NewFromFloat(1.00),
			Description: "whatever",
		}, s.staff)
		s.ErrorIs(err, errs.ErrDomainValidation)
	})
}

func (s *OrderCommandsSuite) TestApplyFineOnSettledOrder() {
	ref := seedItem(s.T(), s.uow, catalog.KindProduct, "Cava", 9.00, 10)
	orderID := s.checkout(ref, 1, order.ModePay)

	_, err := s.commands.ApplyFine(context.Background(), commands.ApplyFineInput{
		OrderID:     orderID,
		Kind:        "damage",
		Amount:      decimal.NewFromFloat(1.00),
		Description: "Too late to fine",
	}, s.staff)

	s.ErrorIs(err, errs.ErrInvalidStateTransition)
}

func (s *OrderCommandsSuite) TestAddLine() {
	rum := seedItem(s.T(), s.uow, catalog.KindProduct, "Ron Blanco", 10.00, 10)
	cola := seedItem(s.T(), s.uow, catalog.KindProduct, "Cola", 1.00, 10)
	orderID := s.checkout(rum, 1, order.ModeCredit)

	view, err := s.commands.AddLine(context.Background(), orderID, cart.Line{
		Kind: cola.Kind, ItemID: cola.ID, Qty: 2,
	}, s.staff)
	s.Require().NoError(err)

	s.Len(view.Lines, 2)
	s.True(view.Total.Equal(decimal.NewFromFloat(12.00)))
	s.Equal(int32(8), stockOf(s.T(), s.uow, cola))

	s.Run("only requested orders can be edited", func() {
		_, err := s.commands.Approve(context.Background(), orderID, s.staff)
		s.Require().NoError(err)

		_, err = s.commands.AddLine(context.Background(), orderID, cart.Line{
			Kind: cola.Kind, ItemID: cola.ID, Qty: 1,
		}, s.staff)
		s.ErrorIs(err, errs.ErrInvalidStateTransition)
	})
}

func (s *OrderCommandsSuite) TestRemoveLine() {
	rum := seedItem(s.T(), s.uow, catalog.KindProduct, "Ron Anejo", 16.00, 10)
	lime := seedItem(s.T(), s.uow, catalog.KindProduct, "Limon", 0.50, 10)
	orderID := s.checkout(rum, 1, order.ModeCredit)

	view, err := s.commands.AddLine(context.Background(), orderID, cart.Line{
		Kind: lime.Kind, ItemID: lime.ID, Qty: 4,
	}, s.staff)
	s.Require().NoError(err)
	s.Equal(int32(6), stockOf(s.T(), s.uow, lime))

	var limeLineID uuid.UUID
	for _, l := range view.Lines {
		if l.ItemID == lime.ID {
			limeLineID = l.ID
		}
	}
	s.Require().NotEqual(uuid.Nil, limeLineID)

	view, err = s.commands.RemoveLine(context.Background(), orderID, limeLineID, s.staff)
	s.Require().NoError(err)

	s.Len(view.Lines, 1)
	s.True(view.Total.Equal(decimal.NewFromFloat(16.00)))
	s.Equal(int32(10), stockOf(s.T(), s.uow, lime), "removed line restores its stock")

	s.Run("last line cannot be removed", func() {
		_, err := s.commands.RemoveLine(context.Background(), orderID, view.Lines[0].ID, s.staff)
		s.ErrorIs(err, errs.ErrDomainValidation)
	})

	s.Run("unknown line", func() {
		_, err := s.commands.RemoveLine(context.Background(), orderID, uuid.New(), s.staff)
		s.ErrorIs(err, errs.ErrOrderLineNotFound)
	})
}

func TestOrderCommandsCreditAfterPayments(t *testing.T) {
	// Paying history raises the ceiling: after $200 of paid orders the limit
	// is 50 + 200 * 0.10 = $70.
	uow := newFakeUoW()
	cust := seedCustomer(t, uow)
	engine := newTestEngine(t)
	cmds := commands.NewOrderCommands(uow, engine, &fakeOrderQueries{repo: uow.tx.orders}, &fakeAudit{})

	ref := seedItem(t, uow, catalog.KindProduct, "Champagne", 100.00, 10)
	shopper := commands.Actor{UserID: uuid.New(), CustomerID: ptr(cust.ID())}

	for range 2 {
		_, err := cmds.Checkout(context.Background(), commands.CheckoutInput{
			CustomerID: cust.ID(),
			Lines:      []cart.Line{{Kind: ref.Kind, ItemID: ref.ID, Qty: 1}},
			Mode:       order.ModePay,
		}, shopper)
		require.NoError(t, err)
	}

	view, err := cmds.Checkout(context.Background(), commands.CheckoutInput{
		CustomerID: cust.ID(),
		Lines:      []cart.Line{{Kind: ref.Kind, ItemID: ref.ID, Qty: 1}},
		Mode:       order.ModeCredit,
	}, shopper)
	require.ErrorIs(t, err, errs.ErrInsufficientCredit, "a $100 credit order still exceeds the $70 limit")
	assert.Nil(t, view)
}

func ptr[T any](v T) *T {
	return &v
}
