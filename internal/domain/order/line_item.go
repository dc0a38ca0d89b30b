package order

import (
	"errors"

	"licoreria-api/internal/domain/catalog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("line quantity must be at least 1")
	ErrNegativePrice   = errors.New("line unit price cannot be negative")
)

// LineItem belongs to exactly one order and references exactly one sellable
// item. The unit price is a snapshot taken at the time of sale and stays
// fixed when the catalog price later changes.
type LineItem struct {
	id        uuid.UUID
	orderID   uuid.UUID
	item      catalog.ItemRef
	itemName  string
	quantity  int32
	unitPrice decimal.Decimal
}

func NewLineItem(item catalog.ItemRef, itemName string, quantity int32, unitPrice decimal.Decimal) (*LineItem, error) {
	if !item.Kind.IsValid() {
		return nil, catalog.ErrInvalidItemKind
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return nil, ErrNegativePrice
	}

	return &LineItem{
		id:        uuid.New(),
		item:      item,
		itemName:  itemName,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

func ReconstructLineItem(
	id, orderID uuid.UUID,
	item catalog.ItemRef,
	itemName string,
	quantity int32,
	unitPrice decimal.Decimal,
) *LineItem {
	return &LineItem{
		id:        id,
		orderID:   orderID,
		item:      item,
		itemName:  itemName,
		quantity:  quantity,
		unitPrice: unitPrice,
	}
}

func (l *LineItem) Subtotal() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt32(l.quantity))
}

func (l *LineItem) ID() uuid.UUID              { return l.id }
func (l *LineItem) OrderID() uuid.UUID         { return l.orderID }
func (l *LineItem) Item() catalog.ItemRef      { return l.item }
func (l *LineItem) ItemName() string           { return l.itemName }
func (l *LineItem) Quantity() int32            { return l.quantity }
func (l *LineItem) UnitPrice() decimal.Decimal { return l.unitPrice }

func (l *LineItem) attachTo(orderID uuid.UUID) {
	l.orderID = orderID
}
