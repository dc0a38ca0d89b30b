//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"licoreria-api/internal/domain/loyalty"
	"licoreria-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoyaltyStore struct {
	totalSpent     decimal.Decimal
	unpaidTotal    decimal.Decimal
	pointsRedeemed int64
	loanLimit      decimal.Decimal
	unpaidFines    []queries.FineWarning
}

func (s *stubLoyaltyStore) TotalSpent(_ context.Context, _ uuid.UUID) (decimal.Decimal, error) {
	return s.totalSpent, nil
}

func (s *stubLoyaltyStore) UnpaidOrdersTotal(_ context.Context, _ uuid.UUID) (decimal.Decimal, error) {
	return s.unpaidTotal, nil
}

func (s *stubLoyaltyStore) PointsRedeemed(_ context.Context, _ uuid.UUID) (int64, error) {
	return s.pointsRedeemed, nil
}

func (s *stubLoyaltyStore) LoanLimit(_ context.Context, _ uuid.UUID) (decimal.Decimal, error) {
	return s.loanLimit, nil
}

func (s *stubLoyaltyStore) UnpaidFines(_ context.Context, _ uuid.UUID) ([]queries.FineWarning, error) {
	return s.unpaidFines, nil
}

func TestLoyaltySummary(t *testing.T) {
	engine, err := loyalty.NewEngine(10, decimal.NewFromInt(50), decimal.NewFromFloat(0.10), decimal.NewFromFloat(0.02))
	require.NoError(t, err)

	warning := queries.FineWarning{
		FineID:    uuid.New(),
		Kind:      "late_payment",
		Amount:    decimal.NewFromFloat(2.00),
		CreatedAt: time.Now(),
	}
	store := &stubLoyaltyStore{
		totalSpent:     decimal.NewFromInt(250),
		unpaidTotal:    decimal.NewFromInt(30),
		pointsRedeemed: 10,
		loanLimit:      decimal.NewFromInt(5),
		unpaidFines:    []queries.FineWarning{warning},
	}
	q := queries.NewLoyaltyQueries(store, engine)

	summary, err := q.Summary(context.Background(), uuid.New())
	require.NoError(t, err)

	// $250 paid history: 25 points earned, 10 redeemed.
	assert.Equal(t, int64(25), summary.PointsEarned)
	assert.Equal(t, int64(15), summary.PointsAvailable)
	// Limit 50 + 250 * 0.10 = 75, with $30 out on loan.
	assert.True(t, summary.CreditLimit.Equal(decimal.NewFromInt(75)))
	assert.True(t, summary.CreditUsed.Equal(decimal.NewFromInt(30)))
	assert.True(t, summary.CreditAvailable.Equal(decimal.NewFromInt(45)))
	assert.True(t, summary.LoanLimit.Equal(decimal.NewFromInt(5)))
	// The fine warns, it does not reduce credit.
	require.Len(t, summary.FineWarnings, 1)
	assert.Equal(t, warning.FineID, summary.FineWarnings[0].FineID)
}

func TestLoyaltyPointsAvailableClampsAtZero(t *testing.T) {
	engine, err := loyalty.NewEngine(10, decimal.NewFromInt(50), decimal.NewFromFloat(0.10), decimal.NewFromFloat(0.02))
	require.NoError(t, err)

	store := &stubLoyaltyStore{
		totalSpent:     decimal.NewFromInt(50),
		pointsRedeemed: 20,
	}
	q := queries.NewLoyaltyQueries(store, engine)

	available, err := q.PointsAvailable(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), available)
}
