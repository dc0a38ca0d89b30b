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

type RewardReadStore struct {
	db infra.DBTX
}

func NewRewardReadStore(db infra.DBTX) *RewardReadStore {
	return &RewardReadStore{db: db}
}

const rewardSelectSQL = `
	SELECT id, customer_id, catalog_item_id, kind, description, value,
	       point_cost, status, code, notes, approver_id, order_id, created_at, updated_at
	FROM rewards`

func (r *RewardReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RewardView, error) {
	row := r.db.QueryRow(ctx, rewardSelectSQL+`
		WHERE id = $1`, id)

	view, err := scanRewardView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reward not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reward", err)
	}
	return view, nil
}

func (r *RewardReadStore) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*queries.RewardView, error) {
	rows, err := r.db.Query(ctx, rewardSelectSQL+`
		WHERE customer_id = $1
		ORDER BY created_at DESC, id DESC`, customerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rewards", err)
	}
	defer rows.Close()

	var views []*queries.RewardView
	for rows.Next() {
		view, err := scanRewardView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reward", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rewards", err)
	}
	return views, nil
}

func scanRewardView(row pgx.Row) (*queries.RewardView, error) {
	var (
		view                 queries.RewardView
		value                pgtype.Numeric
		code, notes          pgtype.Text
		approverID, orderID  pgtype.UUID
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID, &view.CustomerID, &view.CatalogItemID, &view.Kind, &view.Description, &value,
		&view.PointCost, &view.Status, &code, &notes, &approverID, &orderID, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.Code = pgconv.StringPtrFromPgtype(code)
	view.Notes = pgconv.StringPtrFromPgtype(notes)
	view.ApproverID = pgconv.UUIDPtrFromPgtype(approverID)
	view.OrderID = pgconv.UUIDPtrFromPgtype(orderID)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	if view.Value, err = pgconv.DecimalFromNumeric(value); err != nil {
		return nil, err
	}
	return &view, nil
}
