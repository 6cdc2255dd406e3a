package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves products matching the filter with pagination.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, p *model.Product) error

	// Update replaces a product's mutable fields.
	Update(ctx context.Context, p *model.Product) error

	// Delete removes a product.
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStock atomically decrements stock within the provided
	// transaction. Fails with model.ErrOutOfStock if stock would go
	// negative.
	DecrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, qty int) error
}

// CouponRepository defines the interface for coupon data access operations.
type CouponRepository interface {
	// GetByCode retrieves a coupon by its uppercase code. Returns nil
	// when absent.
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)

	// GetByID retrieves a coupon by ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)

	// List retrieves all coupons, newest first.
	List(ctx context.Context) ([]model.Coupon, error)

	// GetUsages retrieves all redemption records for a coupon.
	GetUsages(ctx context.Context, couponID uuid.UUID) ([]model.CouponUsage, error)

	// Create inserts a new coupon.
	Create(ctx context.Context, c *model.Coupon) error

	// Update replaces a coupon's mutable fields.
	Update(ctx context.Context, c *model.Coupon) error

	// Delete removes a coupon that has never been redeemed.
	Delete(ctx context.Context, id uuid.UUID) error

	// Redeem records one redemption: it increments used_count with an
	// atomic conditional update (the increment only happens while
	// used_count is still below usage_limit) and appends the usage row
	// in the same transaction. Returns model.ErrCouponUsageLimitReached
	// when the cap has been exhausted by a concurrent redemption.
	Redeem(ctx context.Context, usage *model.CouponUsage) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetByID retrieves an order by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// List retrieves orders matching the filter, newest first.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// LatestByUser retrieves the user's most recent order, or nil.
	LatestByUser(ctx context.Context, userID uuid.UUID) (*model.Order, error)

	// UpdateStatus persists status, tracking number, notes and
	// estimated delivery.
	UpdateStatus(ctx context.Context, order *model.Order) error

	// UpdatePayment persists transaction number and payment status.
	UpdatePayment(ctx context.Context, order *model.Order) error

	// CountByStatus returns order counts grouped by status.
	CountByStatus(ctx context.Context) (map[model.OrderStatus]int, error)

	// Totals returns the headline aggregates over all orders.
	Totals(ctx context.Context) (*model.OrderTotals, error)

	// RevenueByDay returns per-day revenue for delivered and confirmed
	// orders since the given time.
	RevenueByDay(ctx context.Context, since time.Time) ([]model.DailyRevenue, error)

	// TopProducts returns the best-selling products by quantity.
	TopProducts(ctx context.Context, limit int) ([]model.ProductSales, error)
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// GetByID retrieves a user by ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// UpdateProfile persists name, phone and address.
	UpdateProfile(ctx context.Context, u *model.User) error
}

// NewsletterRepository defines the interface for newsletter subscriptions.
type NewsletterRepository interface {
	// Subscribe inserts or re-activates a subscription.
	Subscribe(ctx context.Context, email string) (*model.NewsletterSubscriber, error)

	// Unsubscribe deactivates a subscription. Returns
	// model.ErrUserNotFound semantics via a nil subscriber when the
	// email was never subscribed.
	Unsubscribe(ctx context.Context, email string) (*model.NewsletterSubscriber, error)

	// List retrieves subscribers, optionally only active ones.
	List(ctx context.Context, activeOnly bool) ([]model.NewsletterSubscriber, error)
}

// PaymentSettingsRepository defines the interface for payment settings.
type PaymentSettingsRepository interface {
	// GetActive retrieves the single active settings row, or nil.
	GetActive(ctx context.Context) (*model.PaymentSettings, error)

	// GetByID retrieves a settings row by ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.PaymentSettings, error)

	// List retrieves all settings rows, newest first.
	List(ctx context.Context) ([]model.PaymentSettings, error)

	// Create inserts a new settings row.
	Create(ctx context.Context, s *model.PaymentSettings) error

	// Update replaces a settings row's mutable fields.
	Update(ctx context.Context, s *model.PaymentSettings) error

	// Delete removes a settings row.
	Delete(ctx context.Context, id uuid.UUID) error

	// Activate marks one row active and deactivates the rest in a
	// single transaction.
	Activate(ctx context.Context, id uuid.UUID) error
}
