package cart

import (
	"sort"

	"licoreria-api/internal/domain/catalog"

	"github.com/google/uuid"
)

// Cart is the per-session (kind, item) -> quantity mapping. It is plain
// session state: the order ledger never reads it, it only accepts the
// materialized Lines() at the checkout boundary.
type Cart struct {
	quantities map[catalog.ItemRef]int32
}

// Line is a materialized cart entry handed to checkout.
type Line struct {
	Kind   catalog.ItemKind
	ItemID uuid.UUID
	Qty    int32
}

func New() *Cart {
	return &Cart{quantities: make(map[catalog.ItemRef]int32)}
}

// Add increments the quantity for an item, creating the entry at qty.
func (c *Cart) Add(ref catalog.ItemRef, qty int32) {
	if qty < 1 {
		return
	}
	c.quantities[ref] += qty
}

// Remove drops an item from the cart entirely.
func (c *Cart) Remove(ref catalog.ItemRef) {
	delete(c.quantities, ref)
}

func (c *Cart) Quantity(ref catalog.ItemRef) int32 {
	return c.quantities[ref]
}

// Count is the badge number: total units across all entries.
func (c *Cart) Count() int32 {
	var n int32
	for _, qty := range c.quantities {
		n += qty
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.quantities) == 0
}

func (c *Cart) Clear() {
	c.quantities = make(map[catalog.ItemRef]int32)
}

// Lines materializes the cart in a stable order for the checkout call.
func (c *Cart) Lines() []Line {
	lines := make([]Line, 0, len(c.quantities))
	for ref, qty := range c.quantities {
		lines = append(lines, Line{Kind: ref.Kind, ItemID: ref.ID, Qty: qty})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Kind != lines[j].Kind {
			return lines[i].Kind < lines[j].Kind
		}
		return lines[i].ItemID.String() < lines[j].ItemID.String()
	})
	return lines
}
