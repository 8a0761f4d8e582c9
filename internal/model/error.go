package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeCartLineNotFound   = "CART_LINE_NOT_FOUND"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeInvalidFilter      = "INVALID_FILTER"
	ErrCodeNetworkError       = "NETWORK_ERROR"
	ErrCodeCheckoutInProgress = "CHECKOUT_IN_PROGRESS"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrCartLineNotFound   = NewDomainError(ErrCodeCartLineNotFound, "Product is not in the cart")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be an integer")
	ErrInvalidFilter      = NewDomainError(ErrCodeInvalidFilter, "Invalid filter")
	ErrNetwork            = NewDomainError(ErrCodeNetworkError, "Product catalogue is unreachable")
	ErrCheckoutInProgress = NewDomainError(ErrCodeCheckoutInProgress, "An order is already being processed")
)
