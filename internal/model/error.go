package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeCouponInvalid    = "COUPON_INVALID"
	ErrCodeInvalidStatus    = "INVALID_STATUS"
	ErrCodeInvalidQuantity  = "INVALID_QUANTITY"
	ErrCodeOutOfStock       = "OUT_OF_STOCK"
	ErrCodeDuplicateCoupon  = "DUPLICATE_COUPON"
	ErrCodeCouponInUse      = "COUPON_IN_USE"
	ErrCodePaymentConfirmed = "PAYMENT_ALREADY_CONFIRMED"
)

// DomainError carries a stable code alongside a user-facing message.
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
	ErrProductNotFound         = NewDomainError(ErrCodeNotFound, "Product not found")
	ErrOrderNotFound           = NewDomainError(ErrCodeNotFound, "Order not found")
	ErrCouponNotFound          = NewDomainError(ErrCodeNotFound, "Invalid coupon code")
	ErrUserNotFound            = NewDomainError(ErrCodeNotFound, "User not found")
	ErrPaymentSettingsNotFound = NewDomainError(ErrCodeNotFound, "Payment settings not found")
	ErrInvalidQuantity         = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrOutOfStock              = NewDomainError(ErrCodeOutOfStock, "One or more items are out of stock")
	ErrDuplicateCouponCode     = NewDomainError(ErrCodeDuplicateCoupon, "A coupon with this code already exists")
	ErrCouponInUse             = NewDomainError(ErrCodeCouponInUse, "Coupon has been redeemed and can only be deactivated")
	ErrTransactionNumRequired  = NewDomainError(ErrCodeMissingField, "Transaction number is required")
	ErrPaymentAlreadyConfirmed = NewDomainError(ErrCodePaymentConfirmed, "Payment has already been confirmed for this order")
)

// Coupon rejection reasons. Each failed evaluation rule maps to exactly
// one of these so the storefront can show a specific message.
var (
	ErrCouponInactive = NewDomainError(ErrCodeCouponInvalid,
		"Coupon is expired or inactive")
	ErrCouponUsageLimitReached = NewDomainError(ErrCodeCouponInvalid,
		"Coupon usage limit has been reached")
	ErrCouponUserLimitReached = NewDomainError(ErrCodeCouponInvalid,
		"You have already used this coupon the maximum number of times")
	ErrCouponMinOrderNotMet = NewDomainError(ErrCodeCouponInvalid,
		"Order amount is below the minimum required for this coupon")
	ErrCouponCategoryExcluded = NewDomainError(ErrCodeCouponInvalid,
		"Coupon cannot be applied to one or more items in your cart")
	ErrCouponCategoryNotApplicable = NewDomainError(ErrCodeCouponInvalid,
		"Coupon is not applicable to the items in your cart")
)

// InvalidTransitionError reports a disallowed order status change.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return "Cannot change order status from " + string(e.From) + " to " + string(e.To)
}
