//go:build unit || e2e

package builder

import (
	"time"

	"licoreria-api/internal/domain/catalog"
	"licoreria-api/internal/domain/order"
	"licoreria-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderLineSpec struct {
	Kind      string
	ItemID    uuid.UUID
	ItemName  string
	Quantity  int32
	UnitPrice decimal.Decimal
}

type OrderBuilder struct {
	CustomerID uuid.UUID
	EmployeeID *uuid.UUID
	Mode       string
	Lines      []OrderLineSpec
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		CustomerID: uuid.New(),
		Mode:       "credit",
		Lines: []OrderLineSpec{
			{
				Kind:      "product",
				ItemID:    uuid.New(),
				ItemName:  "Ron Abuelo 7",
				Quantity:  2,
				UnitPrice: decimal.NewFromFloat(15.50),
			},
		},
	}
}

func (o *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(o)
	return o
}

// Build methods
func (o *OrderBuilder) BuildDomain() (*order.Order, error) {
	mode, err := order.NewPaymentMode(o.Mode)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.LineItem, 0, len(o.Lines))
	for _, spec := range o.Lines {
		ref := catalog.ItemRef{Kind: catalog.ItemKind(spec.Kind), ID: spec.ItemID}
		line, err := order.NewLineItem(ref, spec.ItemName, spec.Quantity, spec.UnitPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return order.NewOrder(o.CustomerID, o.EmployeeID, lines, mode)
}

func (o *OrderBuilder) BuildView() *queries.OrderView {
	now := time.Now()
	view := &queries.OrderView{
		ID:            uuid.New(),
		Code:          "ORD-TEST0001",
		CustomerID:    o.CustomerID,
		CustomerName:  "Test Customer",
		EmployeeID:    o.EmployeeID,
		Status:        "requested",
		FineSurcharge: decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if o.Mode == "pay" {
		view.Status = "paid"
		view.Paid = true
		view.PointsAssigned = true
	}

	total := decimal.Zero
	for _, spec := range o.Lines {
		subtotal := spec.UnitPrice.Mul(decimal.NewFromInt32(spec.Quantity))
		view.Lines = append(view.Lines, queries.OrderLineView{
			ID:        uuid.New(),
			ItemKind:  spec.Kind,
			ItemID:    spec.ItemID,
			ItemName:  spec.ItemName,
			Quantity:  spec.Quantity,
			UnitPrice: spec.UnitPrice,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}
	view.Total = total
	return view
}

// Fluent builder methods
func (o *OrderBuilder) WithCustomerID(customerID uuid.UUID) *OrderBuilder {
	o.CustomerID = customerID
	return o
}

func (o *OrderBuilder) WithEmployeeID(employeeID *uuid.UUID) *OrderBuilder {
	o.EmployeeID = employeeID
	return o
}

func (o *OrderBuilder) WithMode(mode string) *OrderBuilder {
	o.Mode = mode
	return o
}

func (o *OrderBuilder) WithLines(lines ...OrderLineSpec) *OrderBuilder {
	o.Lines = lines
	return o
}

func (o *OrderBuilder) WithoutLines() *OrderBuilder {
	o.Lines = nil
	return o
}

func (o *OrderBuilder) AsDirectPayment() *OrderBuilder {
	o.Mode = "pay"
	return o
}
