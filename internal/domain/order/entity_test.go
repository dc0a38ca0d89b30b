//go:build unit

package order_test

import (
	"testing"

	"licoreria-api/internal/domain/order"
	"licoreria-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.OrderBuilder)
	errIs  error
}

func TestNewOrder(t *testing.T) {
	t.Run("credit order starts requested", func(t *testing.T) {
		actual, err := builder.NewOrderBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.NotEmpty(t, actual.Code())
		assert.Equal(t, order.StatusRequested, actual.Status())
		assert.False(t, actual.Paid())
		assert.False(t, actual.PointsAssigned())
		assert.True(t, actual.Total().Equal(decimal.NewFromFloat(31.00)))
	})

	t.Run("direct payment order is born paid", func(t *testing.T) {
		actual, err := builder.NewOrderBuilder().AsDirectPayment().BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, order.StatusPaid, actual.Status())
		assert.True(t, actual.Paid())
	})

	t.Run("validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "valid credit order",
				mutate: func(b *builder.OrderBuilder) { b.WithMode("credit") },
			},
			{
				name:   "valid pay order",
				mutate: func(b *builder.OrderBuilder) { b.WithMode("pay") },
			},
			{
				name:   "unknown payment mode",
				mutate: func(b *builder.OrderBuilder) { b.WithMode("barter") },
				errIs:  order.ErrInvalidPaymentMode,
			},
			{
				name:   "no lines",
				mutate: func(b *builder.OrderBuilder) { b.WithoutLines() },
				errIs:  order.ErrNoLines,
			},
		})
	})

	t.Run("total is the line sum", func(t *testing.T) {
		actual, err := builder.NewOrderBuilder().WithLines(
			builder.OrderLineSpec{Kind: "product", ItemID: uuid.New(), ItemName: "Cerveza", Quantity: 6, UnitPrice: decimal.NewFromFloat(1.25)},
			builder.OrderLineSpec{Kind: "cocktail", ItemID: uuid.New(), ItemName: "Mojito", Quantity: 2, UnitPrice: decimal.NewFromFloat(4.50)},
		).BuildDomain()
		require.NoError(t, err)

		assert.True(t, actual.Total().Equal(decimal.NewFromFloat(16.50)))
		assert.True(t, actual.LineSum().Equal(actual.Total()))
	})
}

func TestOrderApprove(t *testing.T) {
	approverID := uuid.New()

	t.Run("requested order moves on loan", func(t *testing.T) {
		o := mustBuild(t, builder.NewOrderBuilder())

		require.NoError(t, o.Approve(approverID))

		assert.Equal(t, order.StatusOnLoan, o.Status())
		require.NotNil(t, o.EmployeeID())
		assert.Equal(t, approverID, *o.EmployeeID())
	})

	t.Run("already approved order is rejected", func(t *testing.T) {
		o := mustBuild(t, builder.NewOrderBuilder())
		require.NoError(t, o.Approve(approverID))

		assert.ErrorIs(t, o.Approve(approverID), order.ErrNotRequested)
	})

	t.Run("paid order is rejected", func(t *testing.T) {
		o := mustBuild(t, builder.NewOrderBuilder().AsDirectPayment())

		assert.ErrorIs(t, o.Approve(approverID), order.ErrNotRequested)
	})
}

func TestOrderCancel(t *testing.T) {
	t.Run("requested order can be cancelled", func(t *testing.T) {
		o := mustBuild(t, builder.NewOrderBuilder())

		require.NoError(t, o.Cancel())
		assert.Equal(t, order.StatusCancelled, o.Status())
	})

	t.Run("cancel twice", func(t *testing.T) {
		o := mustBuild(t, builder.NewOrderBuilder())
		require.NoError(t, o.Cancel())

		assert.ErrorIs(t, o.Cancel(), order.ErrAlreadyCancelled)
	})

	t.Run("approved order cannot be cancelled", func(t *testing.T) {
		o := mustBuild(t, builder.NewOrderBuilder())
		require.NoError(t, o.Approve(uuid.New()))

		assert.ErrorIs(t, o.Cancel(), order.ErrCancelAfterApproval)
	})

	t.Run("paid order cannot be cancelled", func(t *testing.T) {
		o := mustBuild(t, builder.NewOrderBuilder().AsDirectPayment())

		assert.ErrorIs(t, o.Cancel(), order.ErrCancelAfterApproval)
	})
}

func TestOrderMarkPaid(t *testing.T) {
	t.Run("first call settles the order", func(t *testing.T) {
		o := mustBuild(t, builder.NewOrderBuilder())
		require.NoError(t, o.Approve(uuid.New()))

		alreadyPaid, err := o.MarkPaid()
		require.NoError(t, err)

		assert.False(t, alreadyPaid)
		assert.True(t, o.Paid())
		assert.Equal(t, order.StatusPaid, o.Status())
	})

	t.Run("second call reports already paid", func(t *testing.T) {
		o := mustBuild(t, builder.NewOrderBuilder())
		_, err := o.MarkPaid()
		require.NoError(t, err)

		alreadyPaid, err := o.MarkPaid()
		require.NoError(t, err)
		assert.True(t, alreadyPaid)
	})

	t.Run("cancelled order cannot be paid", func(t *testing.T) {
		o := mustBuild(t, builder.NewOrderBuilder())
		require.NoError(t, o.Cancel())

		_, err := o.MarkPaid()
		assert.ErrorIs(t, err, order.ErrOrderTerminal)
	})
}

func TestOrderSettlePoints(t *testing.T) {
	o := mustBuild(t, builder.NewOrderBuilder())

	assert.True(t, o.SettlePoints(), "first settle grants")
	assert.False(t, o.SettlePoints(), "replay grants nothing")
	assert.True(t, o.PointsAssigned())
}

func TestOrderApplyFine(t *testing.T) {
	surcharge := decimal.NewFromFloat(3.00)

	t.Run("fine marks the order and raises the total", func(t *testing.T) {
		o := mustBuild(t, builder.NewOrderBuilder())
		lineSum := o.LineSum()

		require.NoError(t, o.ApplyFine(surcharge))

		assert.Equal(t, order.StatusFined, o.Status())
		assert.True(t, o.FineSurcharge().Equal(surcharge))
		assert.True(t, o.Total().Equal(lineSum.Add(surcharge)))
	})

	t.Run("repeat fines accumulate", func(t *testing.T) {
		o := mustBuild(t, builder.NewOrderBuilder())
		require.NoError(t, o.ApplyFine(surcharge))
		require.NoError(t, o.ApplyFine(surcharge))

		assert.True(t, o.FineSurcharge().Equal(decimal.NewFromFloat(6.00)))
	})

	t.Run("on loan order can be fined", func(t *testing.T) {
		o := mustBuild(t, builder.NewOrderBuilder())
		require.NoError(t, o.Approve(uuid.New()))

		require.NoError(t, o.ApplyFine(surcharge))
		assert.Equal(t, order.StatusFined, o.Status())
	})

	t.Run("paid order cannot be fined", func(t *testing.T) {
		o := mustBuild(t, builder.NewOrderBuilder().AsDirectPayment())

		assert.ErrorIs(t, o.ApplyFine(surcharge), order.ErrOrderTerminal)
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		o := mustBuild(t, builder.NewOrderBuilder())

		assert.ErrorIs(t, o.ApplyFine(decimal.NewFromFloat(-1.00)), order.ErrNegativeFine)
	})
}

func TestOrderLines(t *testing.T) {
	t.Run("add line recomputes the total", func(t *testing.T) {
		o := mustBuild(t, builder.NewOrderBuilder())
		before := o.Total()

		line := mustLine(t, "cocktail", "Cuba Libre", 1, decimal.NewFromFloat(4.00))
		o.AddLine(line)

		assert.Len(t, o.Lines(), 2)
		assert.Equal(t, o.ID(), line.OrderID())
		assert.True(t, o.Total().Equal(before.Add(decimal.NewFromFloat(4.00))))
	})

	t.Run("remove line returns it for stock restore", func(t *testing.T) {
		o := mustBuild(t, builder.NewOrderBuilder())
		line := mustLine(t, "product", "Vodka", 3, decimal.NewFromFloat(10.00))
		o.AddLine(line)

		removed, err := o.RemoveLine(line.ID())
		require.NoError(t, err)

		assert.Equal(t, line.ID(), removed.ID())
		assert.Len(t, o.Lines(), 1)
		assert.True(t, o.Total().Equal(decimal.NewFromFloat(31.00)))
	})

	t.Run("last line cannot be removed", func(t *testing.T) {
		o := mustBuild(t, builder.NewOrderBuilder())

		_, err := o.RemoveLine(o.Lines()[0].ID())
		assert.ErrorIs(t, err, order.ErrNoLines)
	})

	t.Run("unknown line", func(t *testing.T) {
		o := mustBuild(t, builder.NewOrderBuilder())
		o.AddLine(mustLine(t, "product", "Gin", 1, decimal.NewFromFloat(12.00)))

		_, err := o.RemoveLine(uuid.New())
		assert.ErrorIs(t, err, order.ErrLineNotFound)
	})

	t.Run("fine surcharge survives line changes", func(t *testing.T) {
		o := mustBuild(t, builder.NewOrderBuilder())
		require.NoError(t, o.ApplyFine(decimal.NewFromFloat(2.00)))

		o.AddLine(mustLine(t, "product", "Tequila", 1, decimal.NewFromFloat(20.00)))

		assert.True(t, o.Total().Equal(o.LineSum().Add(decimal.NewFromFloat(2.00))))
	})
}

func TestLineItemValidation(t *testing.T) {
	t.Run("zero quantity", func(t *testing.T) {
		_, err := builder.NewOrderBuilder().WithLines(
			builder.OrderLineSpec{Kind: "product", ItemID: uuid.New(), ItemName: "Whisky", Quantity: 0, UnitPrice: decimal.NewFromFloat(25.00)},
		).BuildDomain()
		assert.ErrorIs(t, err, order.ErrInvalidQuantity)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := builder.NewOrderBuilder().WithLines(
			builder.OrderLineSpec{Kind: "product", ItemID: uuid.New(), ItemName: "Whisky", Quantity: 1, UnitPrice: decimal.NewFromFloat(-1.00)},
		).BuildDomain()
		assert.ErrorIs(t, err, order.ErrNegativePrice)
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewOrderBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
			} else {
				require.ErrorIs(t, err, c.errIs)
				assert.Nil(t, actual)
			}
		})
	}
}

func mustBuild(t *testing.T, b *builder.OrderBuilder) *order.Order {
	t.Helper()
	o, err := b.BuildDomain()
	require.NoError(t, err)
	return o
}

func mustLine(t *testing.T, kind, name string, qty int32, price decimal.Decimal) *order.LineItem {
	t.Helper()
	b := builder.NewOrderBuilder().WithLines(
		builder.OrderLineSpec{Kind: kind, ItemID: uuid.New(), ItemName: name, Quantity: qty, UnitPrice: price},
	)
	o, err := b.BuildDomain()
	require.NoError(t, err)
	return o.Lines()[0]
}
