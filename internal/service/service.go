package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/model"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/notification"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// List retrieves products matching the filter.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Categories returns the closed set of product categories.
	Categories() []string

	// Create adds a product to the catalogue (admin).
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// Update replaces a product's fields (admin).
	Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error)

	// Delete removes a product (admin).
	Delete(ctx context.Context, id uuid.UUID) error

	// UploadImage stores a product image and returns its public URL (admin).
	UploadImage(ctx context.Context, filename string, body io.Reader) (string, error)
}

// CouponService defines coupon validation, redemption and management.
type CouponService interface {
	// Validate evaluates a coupon for a cart without consuming it.
	Validate(ctx context.Context, req *model.ValidateCouponRequest) (*model.ValidateCouponResponse, error)

	// Apply re-validates against current state and records one
	// redemption.
	Apply(ctx context.Context, req *model.ApplyCouponRequest) (*model.ApplyCouponResponse, error)

	// ApplyByCode is the checkout-time variant of Apply keyed by code.
	// It returns the discount granted.
	ApplyByCode(ctx context.Context, code string, userID *uuid.UUID, orderAmount float64, cartCategories []string) (float64, error)

	// List retrieves all coupons (admin).
	List(ctx context.Context) ([]model.Coupon, error)

	// GetByID retrieves one coupon with its usage history (admin).
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, []model.CouponUsage, error)

	// Create adds a coupon (admin).
	Create(ctx context.Context, req *model.CouponRequest) (*model.Coupon, error)

	// Update replaces a coupon's fields (admin).
	Update(ctx context.Context, id uuid.UUID, req *model.CouponRequest) (*model.Coupon, error)

	// Delete removes a never-redeemed coupon; a redeemed coupon is
	// deactivated instead (admin).
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderService defines checkout and order lifecycle operations.
type OrderService interface {
	// Create places an order from a cart snapshot.
	Create(ctx context.Context, req *model.OrderRequest) (*model.Order, error)

	// GetByID retrieves an order.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// List retrieves orders matching the filter (admin).
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Order, error)

	// UpdateStatus transitions an order's fulfilment status (admin).
	// Transitioning into confirmed dispatches best-effort notifications
	// whose per-channel outcome is returned alongside the order.
	UpdateStatus(ctx context.Context, id uuid.UUID, req *model.UpdateOrderStatusRequest) (*model.Order, *notification.Result, error)

	// ConfirmPayment attaches the buyer's transaction number and marks
	// the payment completed. The fulfilment status is not changed.
	ConfirmPayment(ctx context.Context, id uuid.UUID, transactionNumber string) (*model.Order, error)
}

// UserService defines profile operations.
type UserService interface {
	// GetProfile retrieves a user's profile. A missing saved address is
	// auto-populated from the most recent order's shipping info.
	GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error)

	// UpdateProfile persists profile edits.
	UpdateProfile(ctx context.Context, id uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error)
}

// NewsletterService defines newsletter subscription operations.
type NewsletterService interface {
	// Subscribe adds or re-activates a subscription.
	Subscribe(ctx context.Context, email string) (*model.NewsletterSubscriber, error)

	// Unsubscribe deactivates a subscription.
	Unsubscribe(ctx context.Context, email string) (*model.NewsletterSubscriber, error)

	// List retrieves subscribers (admin).
	List(ctx context.Context, activeOnly bool) ([]model.NewsletterSubscriber, error)
}

// PaymentSettingsService defines payment-settings management.
type PaymentSettingsService interface {
	// GetActive retrieves the settings shown at checkout.
	GetActive(ctx context.Context) (*model.PaymentSettings, error)

	// List retrieves all settings rows (admin).
	List(ctx context.Context) ([]model.PaymentSettings, error)

	// Create adds a settings row; the first row ever created is
	// activated automatically (admin).
	Create(ctx context.Context, req *model.PaymentSettingsRequest) (*model.PaymentSettings, error)

	// Update replaces a settings row's fields (admin).
	Update(ctx context.Context, id uuid.UUID, req *model.PaymentSettingsRequest) (*model.PaymentSettings, error)

	// Delete removes a settings row (admin).
	Delete(ctx context.Context, id uuid.UUID) error

	// Activate makes one row the active one (admin).
	Activate(ctx context.Context, id uuid.UUID) (*model.PaymentSettings, error)
}

// ReportService defines admin analytics.
type ReportService interface {
	// Dashboard assembles the admin analytics summary.
	Dashboard(ctx context.Context) (*model.DashboardReport, error)
}
