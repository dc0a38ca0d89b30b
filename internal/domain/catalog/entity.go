package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName         = errors.New("item name cannot be empty")
	ErrNegativePrice     = errors.New("unit price cannot be negative")
	ErrNegativeStock     = errors.New("stock cannot be negative")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Item is a sellable catalog entry (product or cocktail). Stock is mutated
// only through the reconciliation methods below; the persistence layer
// enforces the same rule with a conditional UPDATE.
type Item struct {
	id          uuid.UUID
	kind        ItemKind
	name        string
	category    *string
	unitPrice   decimal.Decimal
	stock       int32
	barcode     *string
	brand       *string
	imageURL    *string
	description *string
	createdAt   time.Time
	updatedAt   time.Time
}

func NewItem(kind ItemKind, name string, unitPrice decimal.Decimal, stock int32) (*Item, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidItemKind
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if unitPrice.IsNegative() {
		return nil, ErrNegativePrice
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}

	return &Item{
		id:        uuid.New(),
		kind:      kind,
		name:      name,
		unitPrice: unitPrice,
		stock:     stock,
	}, nil
}

func ReconstructItem(
	id uuid.UUID,
	kind ItemKind,
	name string,
	category *string,
	unitPrice decimal.Decimal,
	stock int32,
	barcode, brand, imageURL, description *string,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:          id,
		kind:        kind,
		name:        name,
		category:    category,
		unitPrice:   unitPrice,
		stock:       stock,
		barcode:     barcode,
		brand:       brand,
		imageURL:    imageURL,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Prefill attaches candidate data from an external catalog lookup. Only
// fields the item does not already carry are filled.
func (i *Item) Prefill(barcode, brand, imageURL, description *string) {
	if i.barcode == nil {
		i.barcode = barcode
	}
	if i.brand == nil {
		i.brand = brand
	}
	if i.imageURL == nil {
		i.imageURL = imageURL
	}
	if i.description == nil {
		i.description = description
	}
}

func (i *Item) SetCategory(category string) {
	category = strings.TrimSpace(category)
	if category == "" {
		i.category = nil
		return
	}
	i.category = &category
}

// CanFulfill reports whether qty units can be taken from stock.
func (i *Item) CanFulfill(qty int32) bool {
	return qty >= 1 && i.stock >= qty
}

// TakeStock decrements stock for a new line item. Stock never goes negative.
func (i *Item) TakeStock(qty int32) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if i.stock < qty {
		return ErrInsufficientStock
	}
	i.stock -= qty
	return nil
}

// RestoreStock returns stock released by a deleted line item or a
// cancelled order.
func (i *Item) RestoreStock(qty int32) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	i.stock += qty
	return nil
}

func (i *Item) Ref() ItemRef {
	return ItemRef{Kind: i.kind, ID: i.id}
}

func (i *Item) ID() uuid.UUID              { return i.id }
func (i *Item) Kind() ItemKind             { return i.kind }
func (i *Item) Name() string               { return i.name }
func (i *Item) Category() *string          { return i.category }
func (i *Item) UnitPrice() decimal.Decimal { return i.unitPrice }
func (i *Item) Stock() int32               { return i.stock }
func (i *Item) Barcode() *string           { return i.barcode }
func (i *Item) Brand() *string             { return i.brand }
func (i *Item) ImageURL() *string          { return i.imageURL }
func (i *Item) Description() *string       { return i.description }
func (i *Item) CreatedAt() time.Time       { return i.createdAt }
func (i *Item) UpdatedAt() time.Time       { return i.updatedAt }
