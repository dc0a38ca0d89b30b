//go:build unit || e2e

package builder

import (
	"licoreria-api/internal/domain/fine"
	reqdto "licoreria-api/internal/handler/dto/request"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type FineBuilder struct {
	CustomerID  uuid.UUID
	OrderID     *uuid.UUID
	Kind        string
	Amount      decimal.Decimal
	Description string
}

func NewFineBuilder() *FineBuilder {
	return &FineBuilder{
		CustomerID:  uuid.New(),
		Kind:        "damage",
		Amount:      decimal.NewFromFloat(5.00),
		Description: "Broken bottle at the counter",
	}
}

func (f *FineBuilder) With(mutate func(*FineBuilder)) *FineBuilder {
	mutate(f)
	return f
}

// Build methods
func (f *FineBuilder) BuildDomain() (*fine.Fine, error) {
	kind, err := fine.NewKind(f.Kind)
	if err != nil {
		return nil, err
	}
	return fine.NewFine(f.CustomerID, f.OrderID, kind, f.Amount, f.Description)
}

func (f *FineBuilder) BuildImposeRequestDTO() reqdto.ImposeFineRequest {
	var dto reqdto.ImposeFineRequest
	_ = copier.Copy(&dto, f)
	return dto
}

// Fluent builder methods
func (f *FineBuilder) WithCustomerID(customerID uuid.UUID) *FineBuilder {
	f.CustomerID = customerID
	return f
}

func (f *FineBuilder) WithOrderID(orderID *uuid.UUID) *FineBuilder {
	f.OrderID = orderID
	return f
}

func (f *FineBuilder) WithKind(kind string) *FineBuilder {
	f.Kind = kind
	return f
}

func (f *FineBuilder) WithAmount(amount decimal.Decimal) *FineBuilder {
	f.Amount = amount
	return f
}

func (f *FineBuilder) WithDescription(description string) *FineBuilder {
	f.Description = description
	return f
}
