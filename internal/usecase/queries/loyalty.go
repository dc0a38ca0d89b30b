package queries

import (
	"context"
	"time"

	"licoreria-api/internal/domain/loyalty"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoyaltySummary is the customer-facing loyalty and credit position, fully
// derived from order and redemption history at read time.
type LoyaltySummary struct {
	CustomerID      uuid.UUID       `json:"customer_id"`
	TotalSpent      decimal.Decimal `json:"total_spent"`
	PointsEarned    int64           `json:"points_earned"`
	PointsRedeemed  int64           `json:"points_redeemed"`
	PointsAvailable int64           `json:"points_available"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
	CreditUsed      decimal.Decimal `json:"credit_used"`
	CreditAvailable decimal.Decimal `json:"credit_available"`
	LoanLimit       decimal.Decimal `json:"loan_limit"`
	// Unpaid fines warn but never reduce purchasing credit.
	FineWarnings []FineWarning `json:"fine_warnings"`
}

type FineWarning struct {
	FineID    uuid.UUID       `json:"fine_id"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

type LoyaltyQueries interface {
	Summary(ctx context.Context, customerID uuid.UUID) (*LoyaltySummary, error)
	PointsAvailable(ctx context.Context, customerID uuid.UUID) (int64, error)
	CreditAvailable(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
	TotalSpent(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
}

// LoyaltyReadStore supplies the raw history figures the engine derives
// from. All sums come straight from the ledger tables.
type LoyaltyReadStore interface {
	TotalSpent(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
	UnpaidOrdersTotal(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
	PointsRedeemed(ctx context.Context, customerID uuid.UUID) (int64, error)
	LoanLimit(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
	UnpaidFines(ctx context.Context, customerID uuid.UUID) ([]FineWarning, error)
}

type loyaltyQueriesImpl struct {
	store  LoyaltyReadStore
	engine *loyalty.Engine
}

func NewLoyaltyQueries(store LoyaltyReadStore, engine *loyalty.Engine) LoyaltyQueries {
	return &loyaltyQueriesImpl{store: store, engine: engine}
}

func (q *loyaltyQueriesImpl) Summary(ctx context.Context, customerID uuid.UUID) (*LoyaltySummary, error) {
	totalSpent, err := q.store.TotalSpent(ctx, customerID)
	if err != nil {
		return nil, err
	}
	redeemed, err := q.store.PointsRedeemed(ctx, customerID)
	if err != nil {
		return nil, err
	}
	unpaid, err := q.store.UnpaidOrdersTotal(ctx, customerID)
	if err != nil {
		return nil, err
	}
	loanLimit, err := q.store.LoanLimit(ctx, customerID)
	if err != nil {
		return nil, err
	}
	warnings, err := q.store.UnpaidFines(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return &LoyaltySummary{
		CustomerID:      customerID,
		TotalSpent:      totalSpent,
		PointsEarned:    q.engine.PointsEarned(totalSpent),
		PointsRedeemed:  redeemed,
		PointsAvailable: q.engine.PointsAvailable(totalSpent, redeemed),
		CreditLimit:     q.engine.CreditLimit(totalSpent),
		CreditUsed:      unpaid,
		CreditAvailable: q.engine.CreditAvailable(totalSpent, unpaid),
		LoanLimit:       loanLimit,
		FineWarnings:    warnings,
	}, nil
}

func (q *loyaltyQueriesImpl) PointsAvailable(ctx context.Context, customerID uuid.UUID) (int64, error) {
	totalSpent, err := q.store.TotalSpent(ctx, customerID)
	if err != nil {
		return 0, err
	}
	redeemed, err := q.store.PointsRedeemed(ctx, customerID)
	if err != nil {
		return 0, err
	}
	return q.engine.PointsAvailable(totalSpent, redeemed), nil
}

func (q *loyaltyQueriesImpl) CreditAvailable(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	totalSpent, err := q.store.TotalSpent(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	unpaid, err := q.store.UnpaidOrdersTotal(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	return q.engine.CreditAvailable(totalSpent, unpaid), nil
}

func (q *loyaltyQueriesImpl) TotalSpent(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	return q.store.TotalSpent(ctx, customerID)
}
