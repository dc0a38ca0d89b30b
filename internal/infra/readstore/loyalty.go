package readstore

import (
	"context"

	"licoreria-api/internal/infra"
	"licoreria-api/internal/pkg/pgconv"
	"licoreria-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// LoyaltyReadStore sums the raw ledger figures the loyalty engine derives
// from. Nothing here is cached or materialized; the orders and rewards
// tables are the single source of truth.
type LoyaltyReadStore struct {
	db infra.DBTX
}

func NewLoyaltyReadStore(db infra.DBTX) *LoyaltyReadStore {
	return &LoyaltyReadStore{db: db}
}

func (r *LoyaltyReadStore) TotalSpent(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	return r.sumOrders(ctx, `
		SELECT COALESCE(SUM(total), 0)
		FROM orders
		WHERE customer_id = $1 AND paid = TRUE`, customerID, "failed to sum paid orders")
}

func (r *LoyaltyReadStore) UnpaidOrdersTotal(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	return r.sumOrders(ctx, `
		SELECT COALESCE(SUM(total), 0)
		FROM orders
		WHERE customer_id = $1 AND paid = FALSE`, customerID, "failed to sum unpaid orders")
}

func (r *LoyaltyReadStore) sumOrders(ctx context.Context, sql string, customerID uuid.UUID, errMsg string) (decimal.Decimal, error) {
	var sum pgtype.Numeric
	if err := r.db.QueryRow(ctx, sql, customerID).Scan(&sum); err != nil {
		return decimal.Zero, infra.WrapRepoErr(errMsg, err)
	}
	total, err := pgconv.DecimalFromNumeric(sum)
	if err != nil {
		return decimal.Zero, infra.WrapRepoErr("invalid order sum", err)
	}
	return total, nil
}

func (r *LoyaltyReadStore) PointsRedeemed(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var redeemed int64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(point_cost), 0)
		FROM rewards
		WHERE customer_id = $1 AND status <> 'rejected'`, customerID).Scan(&redeemed)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sum redeemed points", err)
	}
	return redeemed, nil
}

func (r *LoyaltyReadStore) LoanLimit(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	var limit pgtype.Numeric
	err := r.db.QueryRow(ctx, `
		SELECT loan_limit FROM customers WHERE id = $1`, customerID).Scan(&limit)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return decimal.Zero, infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return decimal.Zero, infra.WrapRepoErr("failed to read loan limit", err)
	}
	limitDec, err := pgconv.DecimalFromNumeric(limit)
	if err != nil {
		return decimal.Zero, infra.WrapRepoErr("invalid loan limit", err)
	}
	return limitDec, nil
}

func (r *LoyaltyReadStore) UnpaidFines(ctx context.Context, customerID uuid.UUID) ([]queries.FineWarning, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, kind, amount, created_at
		FROM fines
		WHERE customer_id = $1 AND paid = FALSE
		ORDER BY created_at`, customerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list unpaid fines", err)
	}
	defer rows.Close()

	var warnings []queries.FineWarning
	for rows.Next() {
		var (
			warning   queries.FineWarning
			amount    pgtype.Numeric
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&warning.FineID, &warning.Kind, &amount, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan fine warning", err)
		}
		if warning.Amount, err = pgconv.DecimalFromNumeric(amount); err != nil {
			return nil, infra.WrapRepoErr("invalid fine amount", err)
		}
		warning.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		warnings = append(warnings, warning)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate fine warnings", err)
	}
	return warnings, nil
}
