package response

import (
	"licoreria-api/internal/domain/cart"

	"github.com/google/uuid"
)

type CartLineResponse struct {
	Kind     string    `json:"kind"`
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int32     `json:"quantity"`
}

type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Count int32              `json:"count"`
}

func FromCart(c *cart.Cart) *CartResponse {
	lines := c.Lines()
	out := make([]CartLineResponse, len(lines))
	for i, l := range lines {
		out[i] = CartLineResponse{
			Kind:     l.Kind.String(),
			ItemID:   l.ItemID,
			Quantity: l.Qty,
		}
	}
	return &CartResponse{Lines: out, Count: c.Count()}
}
