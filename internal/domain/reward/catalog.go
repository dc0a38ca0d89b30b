package reward

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrCatalogItemNotFound = errors.New("reward catalog item not found")

// CatalogItem is a static configuration entry: something points can buy.
// MinPurchase applies when the coupon is used on an order, not at redemption.
type CatalogItem struct {
	ID          int32
	Kind        Kind
	Name        string
	Description string
	PointCost   int32
	Value       decimal.Decimal
	MinPurchase decimal.Decimal
}

// Catalog is loaded once and read-only at runtime.
type Catalog struct {
	items []CatalogItem
	byID  map[int32]CatalogItem
}

func NewCatalog(items []CatalogItem) *Catalog {
	byID := make(map[int32]CatalogItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &Catalog{items: items, byID: byID}
}

func (c *Catalog) Items() []CatalogItem {
	return c.items
}

func (c *Catalog) FindByID(id int32) (CatalogItem, error) {
	item, ok := c.byID[id]
	if !ok {
		return CatalogItem{}, ErrCatalogItemNotFound
	}
	return item, nil
}

// DefaultCatalog mirrors the reward table the store runs with. IDs group by
// section: 1xx cash coupons, 2xx percent discounts, 3xx gifts, 4xx bonuses.
func DefaultCatalog() *Catalog {
	d := decimal.NewFromFloat
	return NewCatalog([]CatalogItem{
		{ID: 101, Kind: KindCashCoupon, Name: "Cupón $2", Description: "Ahorra $2 en tu compra. (Mín. compra $5)", PointCost: 10, Value: d(2.00), MinPurchase: d(5.00)},
		{ID: 102, Kind: KindCashCoupon, Name: "Cupón $3", Description: "Ahorra $3 en tu compra. (Mín. compra $5)", PointCost: 20, Value: d(3.00), MinPurchase: d(5.00)},
		{ID: 103, Kind: KindCashCoupon, Name: "Cupón $5", Description: "Ahorra $5 en tu compra. (Mín. compra $10)", PointCost: 30, Value: d(5.00), MinPurchase: d(10.00)},
		{ID: 104, Kind: KindCashCoupon, Name: "Cupón $7", Description: "Ahorra $7 en tu compra. (Mín. compra $10)", PointCost: 45, Value: d(7.00), MinPurchase: d(10.00)},
		{ID: 105, Kind: KindCashCoupon, Name: "Cupón $8", Description: "Ahorra $8 en tu compra. (Mín. compra $10)", PointCost: 55, Value: d(8.00), MinPurchase: d(10.00)},

		{ID: 201, Kind: KindPercentDiscount, Name: "5% OFF", Description: "Descuento del 5% en el total.", PointCost: 30, Value: d(5.00)},
		{ID: 202, Kind: KindPercentDiscount, Name: "7% OFF", Description: "Descuento del 7% en el total.", PointCost: 50, Value: d(7.00)},
		{ID: 203, Kind: KindPercentDiscount, Name: "10% OFF", Description: "Descuento del 10% en el total.", PointCost: 75, Value: d(10.00)},
		{ID: 204, Kind: KindPercentDiscount, Name: "12% OFF", Description: "Descuento del 12% en el total.", PointCost: 100, Value: d(12.00)},

		{ID: 301, Kind: KindGift, Name: "Snack sorpresa", Description: "Un snack de cortesía con tu siguiente compra.", PointCost: 25, Value: d(1.50)},
		{ID: 302, Kind: KindGift, Name: "Botella de regalo", Description: "Botella seleccionada por la casa.", PointCost: 150, Value: d(12.00)},

		{ID: 401, Kind: KindBonus, Name: "Bono de bienvenida", Description: "Bono aplicado por el supervisor.", PointCost: 0, Value: d(5.00)},
	})
}
