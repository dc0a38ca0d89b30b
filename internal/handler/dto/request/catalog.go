package request

import (
	"github.com/shopspring/decimal"
)

type CreateItemRequest struct {
	Kind      string          `json:"kind" binding:"required,oneof=product cocktail"`
	Name      string          `json:"name" binding:"required,min=1,max=200"`
	Category  *string         `json:"category,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	Stock     int32           `json:"stock" binding:"min=0"`
	Barcode   *string         `json:"barcode,omitempty"`
}

type RestockRequest struct {
	Quantity int32 `json:"quantity" binding:"required,min=1"`
}
