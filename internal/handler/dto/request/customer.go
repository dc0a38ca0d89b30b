package request

type RegisterCustomerRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=120"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    *string `json:"phone,omitempty"`
	Password string  `json:"password" binding:"required,min=8"`
}
