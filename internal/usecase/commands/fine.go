package commands

import (
	"context"

	"licoreria-api/internal/domain/fine"
	"licoreria-api/internal/infra"
	"licoreria-api/internal/pkg/errs"
	"licoreria-api/internal/usecase/queries"
	"licoreria-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ImposeFineInput struct {
	CustomerID  uuid.UUID
	Kind        string
	Amount      decimal.Decimal
	Description string
}

type FineCommands interface {
	// Impose opens a standalone fine against a customer. Fines linked to an
	// order go through OrderCommands.ApplyFine so the order surcharge and
	// the fine record move together.
	Impose(ctx context.Context, in ImposeFineInput, actor Actor) (*queries.FineView, error)
	// Pay settles a single fine directly, outside any order cascade.
	Pay(ctx context.Context, fineID uuid.UUID, actor Actor) (*queries.FineView, error)
}

type fineCommandsImpl struct {
	uow         shared.UnitOfWork
	fineQueries queries.FineQueries
	audit       AuditRecorder
}

func NewFineCommands(uow shared.UnitOfWork, fineQueries queries.FineQueries, audit AuditRecorder) FineCommands {
	return &fineCommandsImpl{
		uow:         uow,
		fineQueries: fineQueries,
		audit:       audit,
	}
}

func (c *fineCommandsImpl) Impose(ctx context.Context, in ImposeFineInput, actor Actor) (*queries.FineView, error) {
	kind, err := fine.NewKind(in.Kind)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var fineID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().CustomerByID(ctx, in.CustomerID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrCustomerNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		f, err := fine.NewFine(in.CustomerID, nil, kind, in.Amount, in.Description)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}
		if err := tx.Fines().Create(ctx, f); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		fineID = f.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.audit.Record(ctx, actor.UserID, "impose", "fines", map[string]any{
		"fine_id":     fineID,
		"customer_id": in.CustomerID,
		"kind":        in.Kind,
	})
	return c.fineQueries.GetByID(ctx, fineID)
}

func (c *fineCommandsImpl) Pay(ctx context.Context, fineID uuid.UUID, actor Actor) (*queries.FineView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		f, err := tx.Fines().LockByID(ctx, fineID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrFineNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := f.MarkPaid(); err != nil {
			return errs.Mark(err, errs.ErrFineAlreadyPaid)
		}
		if err := tx.Fines().Save(ctx, f); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.audit.Record(ctx, actor.UserID, "pay", "fines", map[string]any{"fine_id": fineID})
	return c.fineQueries.GetByID(ctx, fineID)
}
