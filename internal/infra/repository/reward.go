package repository

import (
	"context"

	"licoreria-api/internal/domain/reward"
	"licoreria-api/internal/infra"
	"licoreria-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RewardRepository struct {
	db infra.DBTX
}

func NewRewardRepository(db infra.DBTX) *RewardRepository {
	return &RewardRepository{db: db}
}

func (r *RewardRepository) Create(ctx context.Context, rw *reward.Reward) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO rewards (id, customer_id, catalog_item_id, kind, description, value,
		                     point_cost, status, code, notes, approver_id, order_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rw.ID(),
		rw.CustomerID(),
		rw.CatalogItemID(),
		rw.Kind().String(),
		rw.Description(),
		pgconv.DecimalToNumeric(rw.Value()),
		rw.PointCost(),
		rw.Status().String(),
		pgconv.StringPtrToPgtype(rw.Code()),
		pgconv.StringPtrToPgtype(rw.Notes()),
		pgconv.UUIDPtrToPgtype(rw.ApproverID()),
		pgconv.UUIDPtrToPgtype(rw.OrderID()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create reward", err)
	}
	return nil
}

func (r *RewardRepository) LockByID(ctx context.Context, id uuid.UUID) (*reward.Reward, error) {
	var (
		rewardID, customerID pgtype.UUID
		catalogItemID        int32
		kind, description    string
		value                pgtype.Numeric
		pointCost            int32
		status               string
		code, notes          pgtype.Text
		approverID, orderID  pgtype.UUID
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, customer_id, catalog_item_id, kind, description, value,
		       point_cost, status, code, notes, approver_id, order_id, created_at, updated_at
		FROM rewards
		WHERE id = $1
		FOR UPDATE`, id).Scan(
		&rewardID, &customerID, &catalogItemID, &kind, &description, &value,
		&pointCost, &status, &code, &notes, &approverID, &orderID, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reward not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock reward", err)
	}

	rewardKind, err := reward.NewKind(kind)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid reward kind in storage", err)
	}
	rewardStatus, err := reward.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid reward status in storage", err)
	}
	valueDec, err := pgconv.DecimalFromNumeric(value)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid reward value", err)
	}

	return reward.ReconstructReward(
		uuid.UUID(rewardID.Bytes), uuid.UUID(customerID.Bytes),
		catalogItemID,
		rewardKind,
		description,
		valueDec,
		pointCost,
		rewardStatus,
		pgconv.StringPtrFromPgtype(code), pgconv.StringPtrFromPgtype(notes),
		pgconv.UUIDPtrFromPgtype(approverID), pgconv.UUIDPtrFromPgtype(orderID),
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (r *RewardRepository) Save(ctx context.Context, rw *reward.Reward) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE rewards
		SET status = $2, code = $3, notes = $4, approver_id = $5, order_id = $6, updated_at = now()
		WHERE id = $1`,
		rw.ID(),
		rw.Status().String(),
		pgconv.StringPtrToPgtype(rw.Code()),
		pgconv.StringPtrToPgtype(rw.Notes()),
		pgconv.UUIDPtrToPgtype(rw.ApproverID()),
		pgconv.UUIDPtrToPgtype(rw.OrderID()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save reward", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reward not found", nil, infra.KindNotFound)
	}
	return nil
}
