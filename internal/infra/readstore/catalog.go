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

// Products and cocktails are presented as one catalog; the kind column in
// the union tells them apart.
const catalogUnionSQL = `
	SELECT 'product' AS kind, id, name, category, unit_price, stock,
	       barcode, brand, image_url, description, created_at, updated_at
	FROM products
	UNION ALL
	SELECT 'cocktail' AS kind, id, name, category, unit_price, stock,
	       barcode, brand, image_url, description, created_at, updated_at
	FROM cocktails`

type CatalogReadStore struct {
	db infra.DBTX
}

func NewCatalogReadStore(db infra.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: db}
}

func (r *CatalogReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ItemView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT * FROM (`+catalogUnionSQL+`
		) items
		WHERE id = $1`, id)

	view, err := scanItemView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("catalog item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find catalog item", err)
	}
	return view, nil
}

func (r *CatalogReadStore) FindAll(ctx context.Context, filter queries.ItemFilter) ([]*queries.ItemView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT * FROM (`+catalogUnionSQL+`
		) items
		WHERE ($1::text IS NULL OR kind = $1)
		  AND ($2::text IS NULL OR category ILIKE $2)
		  AND ($3::text IS NULL OR name ILIKE '%' || $3 || '%')
		ORDER BY kind, name`,
		pgconv.StringPtrToPgtype(filter.Kind),
		pgconv.StringPtrToPgtype(filter.Category),
		pgconv.StringPtrToPgtype(filter.Search),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list catalog items", err)
	}
	defer rows.Close()

	var views []*queries.ItemView
	for rows.Next() {
		view, err := scanItemView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan catalog item", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate catalog items", err)
	}
	return views, nil
}

func scanItemView(row pgx.Row) (*queries.ItemView, error) {
	var (
		view                     queries.ItemView
		category, barcode, brand pgtype.Text
		imageURL, description    pgtype.Text
		unitPrice                pgtype.Numeric
		createdAt, updatedAt     pgtype.Timestamptz
	)
	err := row.Scan(
		&view.Kind, &view.ID, &view.Name, &category, &unitPrice, &view.Stock,
		&barcode, &brand, &imageURL, &description, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.Category = pgconv.StringPtrFromPgtype(category)
	view.Barcode = pgconv.StringPtrFromPgtype(barcode)
	view.Brand = pgconv.StringPtrFromPgtype(brand)
	view.ImageURL = pgconv.StringPtrFromPgtype(imageURL)
	view.Description = pgconv.StringPtrFromPgtype(description)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	view.UnitPrice, err = pgconv.DecimalFromNumeric(unitPrice)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
