package readstore

import (
	"context"

	"licoreria-api/internal/infra"
	"licoreria-api/internal/pkg/pgconv"
	"licoreria-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type FineReadStore struct {
	db infra.DBTX
}

func NewFineReadStore(db infra.DBTX) *FineReadStore {
	return &FineReadStore{db: db}
}

const fineSelectSQL = `
	SELECT id, customer_id, order_id, kind, amount, description, paid, created_at, updated_at
	FROM fines`

func (r *FineReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.FineView, error) {
	row := r.db.QueryRow(ctx, fineSelectSQL+`
		WHERE id = $1`, id)

	view, err := scanFineView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("fine not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find fine", err)
	}
	return view, nil
}

func (r *FineReadStore) FindByCustomerID(ctx context.Context, customerID uuid.UUID, onlyUnpaid bool) ([]*queries.FineView, error) {
	rows, err := r.db.Query(ctx, fineSelectSQL+`
		WHERE customer_id = $1 AND ($2 = FALSE OR paid = FALSE)
		ORDER BY created_at DESC, id DESC`, customerID, onlyUnpaid)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list fines", err)
	}
	defer rows.Close()

	var views []*queries.FineView
	for rows.Next() {
		view, err := scanFineView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan fine", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate fines", err)
	}
	return views, nil
}

func scanFineView(row pgx.Row) (*queries.FineView, error) {
	var (
		view                 queries.FineView
		orderID              pgtype.UUID
		amount               pgtype.Numeric
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID, &view.CustomerID, &orderID, &view.Kind, &amount, &view.Description,
		&view.Paid, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.OrderID = pgconv.UUIDPtrFromPgtype(orderID)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	if view.Amount, err = pgconv.DecimalFromNumeric(amount); err != nil {
		return nil, err
	}
	return &view, nil
}
