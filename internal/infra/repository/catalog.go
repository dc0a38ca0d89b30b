package repository

import (
	"context"
	"fmt"

	"licoreria-api/internal/domain/catalog"
	"licoreria-api/internal/infra"
	"licoreria-api/internal/pkg/pgconv"
	"licoreria-api/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
)

// Products and cocktails live in separate tables with identical shapes;
// the (kind, id) reference picks the table.
func itemTable(kind catalog.ItemKind) string {
	if kind == catalog.KindCocktail {
		return "cocktails"
	}
	return "products"
}

type CatalogRepository struct {
	db infra.DBTX
}

func NewCatalogRepository(db infra.DBTX) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) Create(ctx context.Context, item *catalog.Item) error {
	sql := fmt.Sprintf(`
		INSERT INTO %s (id, name, category, unit_price, stock, barcode, brand, image_url, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, itemTable(item.Kind()))

	_, err := r.db.Exec(ctx, sql,
		item.ID(),
		item.Name(),
		pgconv.StringPtrToPgtype(item.Category()),
		pgconv.DecimalToNumeric(item.UnitPrice()),
		item.Stock(),
		pgconv.StringPtrToPgtype(item.Barcode()),
		pgconv.StringPtrToPgtype(item.Brand()),
		pgconv.StringPtrToPgtype(item.ImageURL()),
		pgconv.StringPtrToPgtype(item.Description()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create catalog item", err)
	}
	return nil
}

func (r *CatalogRepository) LockItem(ctx context.Context, ref catalog.ItemRef) (*shared.ItemSnapshot, error) {
	sql := fmt.Sprintf(`
		SELECT id, name, unit_price, stock
		FROM %s
		WHERE id = $1
		FOR UPDATE`, itemTable(ref.Kind))
	return r.scanSnapshot(ctx, sql, ref)
}

// FindItem is the lock-free variant for validations outside a write path.
func (r *CatalogRepository) FindItem(ctx context.Context, ref catalog.ItemRef) (*shared.ItemSnapshot, error) {
	sql := fmt.Sprintf(`
		SELECT id, name, unit_price, stock
		FROM %s
		WHERE id = $1`, itemTable(ref.Kind))
	return r.scanSnapshot(ctx, sql, ref)
}

func (r *CatalogRepository) scanSnapshot(ctx context.Context, sql string, ref catalog.ItemRef) (*shared.ItemSnapshot, error) {
	snap := shared.ItemSnapshot{Kind: ref.Kind}
	var price pgtype.Numeric
	err := r.db.QueryRow(ctx, sql, ref.ID).Scan(&snap.ID, &snap.Name, &price, &snap.Stock)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("catalog item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read catalog item", err)
	}
	snap.UnitPrice, err = pgconv.DecimalFromNumeric(price)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid unit price", err)
	}
	return &snap, nil
}

func (r *CatalogRepository) TakeStock(ctx context.Context, ref catalog.ItemRef, qty int32) error {
	// The guard in the WHERE clause is the last line of defense against
	// negative stock, independent of the row lock taken earlier.
	sql := fmt.Sprintf(`
		UPDATE %s
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2`, itemTable(ref.Kind))

	tag, err := r.db.Exec(ctx, sql, ref.ID, qty)
	if err != nil {
		return infra.WrapRepoErr("failed to take stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("stock guard rejected decrement", nil, infra.KindConflict)
	}
	return nil
}

func (r *CatalogRepository) RestoreStock(ctx context.Context, ref catalog.ItemRef, qty int32) error {
	sql := fmt.Sprintf(`
		UPDATE %s
		SET stock = stock + $2, updated_at = now()
		WHERE id = $1`, itemTable(ref.Kind))

	tag, err := r.db.Exec(ctx, sql, ref.ID, qty)
	if err != nil {
		return infra.WrapRepoErr("failed to restore stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("catalog item not found", nil, infra.KindNotFound)
	}
	return nil
}
