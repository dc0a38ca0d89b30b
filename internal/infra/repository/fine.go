package repository

import (
	"context"

	"licoreria-api/internal/domain/fine"
	"licoreria-api/internal/infra"
	"licoreria-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type FineRepository struct {
	db infra.DBTX
}

func NewFineRepository(db infra.DBTX) *FineRepository {
	return &FineRepository{db: db}
}

func (r *FineRepository) Create(ctx context.Context, f *fine.Fine) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO fines (id, customer_id, order_id, kind, amount, description, paid)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		f.ID(),
		f.CustomerID(),
		pgconv.UUIDPtrToPgtype(f.OrderID()),
		f.Kind().String(),
		pgconv.DecimalToNumeric(f.Amount()),
		f.Description(),
		f.Paid(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create fine", err)
	}
	return nil
}

func (r *FineRepository) LockByID(ctx context.Context, id uuid.UUID) (*fine.Fine, error) {
	var (
		fineID, customerID   uuid.UUID
		orderID              pgtype.UUID
		kind, description    string
		amount               pgtype.Numeric
		paid                 bool
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, customer_id, order_id, kind, amount, description, paid, created_at, updated_at
		FROM fines
		WHERE id = $1
		FOR UPDATE`, id).Scan(
		&fineID, &customerID, &orderID, &kind, &amount, &description, &paid, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("fine not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock fine", err)
	}

	fineKind, err := fine.NewKind(kind)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid fine kind in storage", err)
	}
	amountDec, err := pgconv.DecimalFromNumeric(amount)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid fine amount", err)
	}

	return fine.ReconstructFine(
		fineID, customerID,
		pgconv.UUIDPtrFromPgtype(orderID),
		fineKind,
		amountDec,
		description,
		paid,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (r *FineRepository) Save(ctx context.Context, f *fine.Fine) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE fines
		SET paid = $2, updated_at = now()
		WHERE id = $1`,
		f.ID(),
		f.Paid(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save fine", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("fine not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *FineRepository) MarkPaidByOrderID(ctx context.Context, orderID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE fines
		SET paid = TRUE, updated_at = now()
		WHERE order_id = $1 AND paid = FALSE`, orderID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to settle fines for order", err)
	}
	return tag.RowsAffected(), nil
}
