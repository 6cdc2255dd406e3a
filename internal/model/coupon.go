package model

import (
	"time"

	"github.com/google/uuid"
)

// Discount types supported by coupons.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Coupon represents a discount code managed by the back office.
//
// Codes are stored uppercase and are unique. A coupon that has been
// redeemed at least once is never physically deleted, only deactivated,
// so historical orders keep a valid reference.
type Coupon struct {
	ID                    uuid.UUID  `json:"id" db:"id"`
	Code                  string     `json:"code" db:"code"`
	Description           string     `json:"description" db:"description"`
	DiscountType          string     `json:"discountType" db:"discount_type"`
	DiscountValue         float64    `json:"discountValue" db:"discount_value"`
	MinimumOrderAmount    float64    `json:"minimumOrderAmount" db:"minimum_order_amount"`
	MaximumDiscountAmount *float64   `json:"maximumDiscountAmount,omitempty" db:"maximum_discount_amount"`
	UsageLimit            *int       `json:"usageLimit,omitempty" db:"usage_limit"`
	UsedCount             int        `json:"usedCount" db:"used_count"`
	UserUsageLimit        int        `json:"userUsageLimit" db:"user_usage_limit"`
	ValidFrom             time.Time  `json:"validFrom" db:"valid_from"`
	ValidUntil            time.Time  `json:"validUntil" db:"valid_until"`
	IsActive              bool       `json:"isActive" db:"is_active"`
	ApplicableCategories  []string   `json:"applicableCategories" db:"applicable_categories"`
	ExcludedCategories    []string   `json:"excludedCategories" db:"excluded_categories"`
	CreatedAt             time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt             time.Time  `json:"updatedAt" db:"updated_at"`
}

// CouponUsage is one redemption record. The invariant
// usedCount == count(usages) is maintained by redeeming inside a single
// transaction.
type CouponUsage struct {
	ID             uuid.UUID  `json:"-" db:"id"`
	CouponID       uuid.UUID  `json:"-" db:"coupon_id"`
	UserID         *uuid.UUID `json:"user,omitempty" db:"user_id"`
	OrderAmount    float64    `json:"orderAmount" db:"order_amount"`
	DiscountAmount float64    `json:"discountAmount" db:"discount_amount"`
	UsedAt         time.Time  `json:"usedAt" db:"used_at"`
}

// CouponRequest is the admin create/update payload.
type CouponRequest struct {
	Code                  string    `json:"code"`
	Description           string    `json:"description"`
	DiscountType          string    `json:"discountType"`
	DiscountValue         float64   `json:"discountValue"`
	MinimumOrderAmount    float64   `json:"minimumOrderAmount"`
	MaximumDiscountAmount *float64  `json:"maximumDiscountAmount,omitempty"`
	UsageLimit            *int      `json:"usageLimit,omitempty"`
	UserUsageLimit        int       `json:"userUsageLimit"`
	ValidFrom             time.Time `json:"validFrom"`
	ValidUntil            time.Time `json:"validUntil"`
	IsActive              *bool     `json:"isActive,omitempty"`
	ApplicableCategories  []string  `json:"applicableCategories"`
	ExcludedCategories    []string  `json:"excludedCategories"`
}

// ValidateCouponRequest is the storefront validation payload.
type ValidateCouponRequest struct {
	Code        string     `json:"code"`
	OrderAmount float64    `json:"orderAmount"`
	UserID      *uuid.UUID `json:"userId,omitempty"`
	CartItems   []CartItem `json:"cartItems,omitempty"`
}

// CartItem is the subset of cart state coupon rules care about.
type CartItem struct {
	ProductID uuid.UUID `json:"productId"`
	Category  string    `json:"category"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
}

// ValidateCouponResponse mirrors the storefront contract.
type ValidateCouponResponse struct {
	Valid          bool    `json:"valid"`
	Coupon         *Coupon `json:"coupon,omitempty"`
	DiscountAmount float64 `json:"discountAmount"`
	FinalAmount    float64 `json:"finalAmount"`
}

// ApplyCouponRequest is the order-time redemption payload.
type ApplyCouponRequest struct {
	CouponID    uuid.UUID  `json:"couponId"`
	UserID      *uuid.UUID `json:"userId,omitempty"`
	OrderAmount float64    `json:"orderAmount"`
	CartItems   []CartItem `json:"cartItems,omitempty"`
}

// ApplyCouponResponse mirrors the storefront contract.
type ApplyCouponResponse struct {
	Success        bool    `json:"success"`
	DiscountAmount float64 `json:"discountAmount"`
	FinalAmount    float64 `json:"finalAmount"`
}
