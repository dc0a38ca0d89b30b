package commands

import (
	"context"
	"log/slog"

	"licoreria-api/internal/domain/catalog"
	"licoreria-api/internal/infra"
	"licoreria-api/internal/pkg/errs"
	"licoreria-api/internal/usecase/queries"
	"licoreria-api/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

type CreateItemInput struct {
	Kind      string
	Name      string
	Category  *string
	UnitPrice decimal.Decimal
	Stock     int32
	Barcode   *string
}

type CatalogCommands interface {
	// CreateItem registers a sellable item, asking the external catalogs
	// for prefill data first. Lookup failures are logged and ignored.
	CreateItem(ctx context.Context, in CreateItemInput, actor Actor) (*queries.ItemView, error)
	// Restock adds units to an existing item.
	Restock(ctx context.Context, ref catalog.ItemRef, qty int32, actor Actor) error
}

type catalogCommandsImpl struct {
	uow            shared.UnitOfWork
	lookup         CatalogLookup
	catalogQueries queries.CatalogQueries
	audit          AuditRecorder
}

func NewCatalogCommands(
	uow shared.UnitOfWork,
	lookup CatalogLookup,
	catalogQueries queries.CatalogQueries,
	audit AuditRecorder,
) CatalogCommands {
	return &catalogCommandsImpl{
		uow:            uow,
		lookup:         lookup,
		catalogQueries: catalogQueries,
		audit:          audit,
	}
}

func (c *catalogCommandsImpl) CreateItem(ctx context.Context, in CreateItemInput, actor Actor) (*queries.ItemView, error) {
	kind, err := catalog.NewItemKind(in.Kind)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	item, err := catalog.NewItem(kind, in.Name, in.UnitPrice, in.Stock)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	if in.Category != nil {
		item.SetCategory(*in.Category)
	}
	if in.Barcode != nil {
		item.Prefill(in.Barcode, nil, nil, nil)
	}

	if candidate, lookupErr := c.lookup.Lookup(ctx, LookupQuery{
		Kind:    kind,
		Name:    item.Name(),
		Barcode: in.Barcode,
	}); lookupErr != nil {
		slog.Debug("catalog lookup failed", "name", item.Name(), "error", lookupErr.Error())
	} else if candidate != nil {
		item.Prefill(candidate.Barcode, candidate.Brand, candidate.ImageURL, candidate.Description)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Catalog().Create(ctx, item); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrDomainValidation)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.audit.Record(ctx, actor.UserID, "create_item", "catalog", map[string]any{
		"item_id": item.ID(),
		"kind":    kind.String(),
	})
	return c.catalogQueries.GetByID(ctx, item.ID())
}

func (c *catalogCommandsImpl) Restock(ctx context.Context, ref catalog.ItemRef, qty int32, actor Actor) error {
	if qty < 1 {
		return errs.Mark(catalog.ErrInvalidQuantity, errs.ErrDomainValidation)
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Catalog().LockItem(ctx, ref); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrItemNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Catalog().RestoreStock(ctx, ref, qty); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.audit.Record(ctx, actor.UserID, "restock", "catalog", map[string]any{
		"item_id": ref.ID,
		"qty":     qty,
	})
	return nil
}
