package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models (DTO for read side)
type ItemView struct {
	ID          uuid.UUID       `json:"id"`
	Kind        string          `json:"kind"`
	Name        string          `json:"name"`
	Category    *string         `json:"category,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Stock       int32           `json:"stock"`
	Barcode     *string         `json:"barcode,omitempty"`
	Brand       *string         `json:"brand,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ItemFilter narrows the catalog listing the way the storefront search
// does: by category and by name fragment.
type ItemFilter struct {
	Kind     *string
	Category *string
	Search   *string
}

type CatalogQueries interface {
	List(ctx context.Context, filter ItemFilter) ([]*ItemView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ItemView, error)
}

type CatalogReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ItemView, error)
	FindAll(ctx context.Context, filter ItemFilter) ([]*ItemView, error)
}

type catalogQueriesImpl struct {
	store CatalogReadStore
}

func NewCatalogQueries(store CatalogReadStore) CatalogQueries {
	return &catalogQueriesImpl{store: store}
}

func (q *catalogQueriesImpl) List(ctx context.Context, filter ItemFilter) ([]*ItemView, error) {
	return q.store.FindAll(ctx, filter)
}

func (q *catalogQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ItemView, error) {
	return q.store.FindByID(ctx, id)
}
