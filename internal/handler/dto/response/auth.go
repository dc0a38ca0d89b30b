package response

import (
	"github.com/google/uuid"
)

type LoginResponse struct {
	UserID     uuid.UUID  `json:"user_id"`
	Role       string     `json:"role"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	EmployeeID *uuid.UUID `json:"employee_id,omitempty"`
}

type MeResponse struct {
	UserID     uuid.UUID  `json:"user_id"`
	Role       string     `json:"role"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	EmployeeID *uuid.UUID `json:"employee_id,omitempty"`
}
