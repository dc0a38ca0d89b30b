package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AddLineRequest struct {
	Kind     string    `json:"kind" binding:"required,oneof=product cocktail"`
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int32     `json:"quantity" binding:"required,min=1"`
}

type ApplyFineRequest struct {
	Kind        string          `json:"kind" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required,min=3"`
}
