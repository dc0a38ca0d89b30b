package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Catalog errors
	ErrItemNotFound      = errors.New("sellable item not found")
	ErrInsufficientStock = errors.New("insufficient stock")

	// Order errors
	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderLineNotFound      = errors.New("order line not found")
	ErrInvalidStateTransition = errors.New("invalid order state transition")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrInsufficientCredit     = errors.New("insufficient store credit")

	// Loyalty / reward errors
	ErrRewardNotFound          = errors.New("reward not found")
	ErrRewardItemNotFound      = errors.New("reward catalog item not found")
	ErrInsufficientPoints      = errors.New("insufficient points")
	ErrDuplicateRedemptionCode = errors.New("duplicate redemption code")

	// Fine errors
	ErrFineNotFound    = errors.New("fine not found")
	ErrFineAlreadyPaid = errors.New("fine already paid")

	// Customer errors
	ErrCustomerNotFound = errors.New("customer not found")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
