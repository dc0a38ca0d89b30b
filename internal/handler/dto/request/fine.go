package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ImposeFineRequest struct {
	CustomerID  uuid.UUID       `json:"customer_id" binding:"required"`
	Kind        string          `json:"kind" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required,min=3"`
}
