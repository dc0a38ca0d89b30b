package request

import (
	"github.com/google/uuid"
)

type CartAddRequest struct {
	Kind     string    `json:"kind" binding:"required,oneof=product cocktail"`
	ItemID   uuid.UUID `json:"item_id" binding:"required"`
	Quantity int32     `json:"quantity" binding:"required,min=1"`
}

type CartRemoveRequest struct {
	Kind   string    `json:"kind" binding:"required,oneof=product cocktail"`
	ItemID uuid.UUID `json:"item_id" binding:"required"`
}

type CheckoutRequest struct {
	Mode string `json:"mode" binding:"required,oneof=pay credit"`
}
