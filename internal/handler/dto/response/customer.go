package response

import (
	"github.com/google/uuid"
)

type RegisterCustomerResponse struct {
	CustomerID uuid.UUID `json:"customer_id"`
	UserID     uuid.UUID `json:"user_id"`
	Code       string    `json:"code"`
}
