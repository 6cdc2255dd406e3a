package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/model"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

const orderColumns = `id, user_id, items, shipping_info, payment_method, payment_intent_id,
	transaction_number, coupon_code, discount_amount, subtotal, shipping_cost, total_amount,
	status, payment_status, tracking_number, estimated_delivery, notes, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Items,
		&o.ShippingInfo,
		&o.PaymentMethod,
		&o.PaymentIntentID,
		&o.TransactionNumber,
		&o.CouponCode,
		&o.DiscountAmount,
		&o.Subtotal,
		&o.ShippingCost,
		&o.TotalAmount,
		&o.Status,
		&o.PaymentStatus,
		&o.TrackingNumber,
		&o.EstimatedDelivery,
		&o.Notes,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a new order within the provided transaction. Items and
// shipping info are stored as JSONB snapshots.
func (r *orderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.UserID, order.Items, order.ShippingInfo, order.PaymentMethod,
		order.PaymentIntentID, order.TransactionNumber, order.CouponCode, order.DiscountAmount,
		order.Subtotal, order.ShippingCost, order.TotalAmount, order.Status, order.PaymentStatus,
		order.TrackingNumber, order.EstimatedDelivery, order.Notes, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().Str("order_id", order.ID.String()).Msg("order created")
	return nil
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return order, nil
}

// List retrieves orders matching the filter, newest first.
func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR payment_status = $2)
		  AND ($3::uuid IS NULL OR user_id = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`

	rows, err := r.pool.Query(ctx, query,
		string(filter.Status), string(filter.PaymentStatus), filter.UserID,
		filter.Limit, filter.Offset,
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// LatestByUser retrieves the user's most recent order.
func (r *orderRepository) LatestByUser(ctx context.Context, userID uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query latest order")
		return nil, fmt.Errorf("failed to query latest order: %w", err)
	}

	return order, nil
}

// UpdateStatus persists status, tracking number, notes and estimated delivery.
func (r *orderRepository) UpdateStatus(ctx context.Context, order *model.Order) error {
	query := `
		UPDATE orders
		SET status = $2, tracking_number = $3, notes = $4, estimated_delivery = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		order.ID, order.Status, order.TrackingNumber, order.Notes,
		order.EstimatedDelivery, order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}

// UpdatePayment persists transaction number and payment status.
func (r *orderRepository) UpdatePayment(ctx context.Context, order *model.Order) error {
	query := `
		UPDATE orders
		SET transaction_number = $2, payment_status = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		order.ID, order.TransactionNumber, order.PaymentStatus, order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to update order payment")
		return fmt.Errorf("failed to update order payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}

// CountByStatus returns order counts grouped by status.
func (r *orderRepository) CountByStatus(ctx context.Context) (map[model.OrderStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count orders by status")
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.OrderStatus]int)
	for rows.Next() {
		var status model.OrderStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan status count row")
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status counts: %w", err)
	}

	return counts, nil
}

// Totals returns the headline aggregates over all orders. Cancelled
// orders are excluded from revenue but counted in the order total.
func (r *orderRepository) Totals(ctx context.Context) (*model.OrderTotals, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(total_amount) FILTER (WHERE status <> 'cancelled'), 0),
		       COUNT(*) FILTER (WHERE payment_status = 'pending')
		FROM orders
	`

	var t model.OrderTotals
	if err := r.pool.QueryRow(ctx, query).Scan(&t.TotalOrders, &t.TotalRevenue, &t.PendingPayments); err != nil {
		r.logger.Error().Err(err).Msg("failed to query order totals")
		return nil, fmt.Errorf("failed to query order totals: %w", err)
	}

	return &t, nil
}

// RevenueByDay returns per-day revenue for non-cancelled orders since
// the given time.
func (r *orderRepository) RevenueByDay(ctx context.Context, since time.Time) ([]model.DailyRevenue, error) {
	query := `
		SELECT DATE_TRUNC('day', created_at) AS day, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE created_at >= $1 AND status <> 'cancelled'
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query revenue by day")
		return nil, fmt.Errorf("failed to query revenue by day: %w", err)
	}
	defer rows.Close()

	var result []model.DailyRevenue
	for rows.Next() {
		var d model.DailyRevenue
		if err := rows.Scan(&d.Day, &d.Orders, &d.Revenue); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan revenue row")
			return nil, fmt.Errorf("failed to scan revenue: %w", err)
		}
		result = append(result, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revenue rows: %w", err)
	}

	return result, nil
}

// TopProducts returns the best-selling products by quantity, expanding
// the JSONB item snapshots.
func (r *orderRepository) TopProducts(ctx context.Context, limit int) ([]model.ProductSales, error) {
	query := `
		SELECT (item->>'productId')::uuid AS product_id,
		       MAX(item->>'name') AS name,
		       SUM((item->>'quantity')::int) AS quantity,
		       SUM((item->>'price')::float * (item->>'quantity')::int) AS revenue
		FROM orders, jsonb_array_elements(items) AS item
		WHERE status <> 'cancelled'
		GROUP BY product_id
		ORDER BY quantity DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query top products")
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer rows.Close()

	var result []model.ProductSales
	for rows.Next() {
		var p model.ProductSales
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Quantity, &p.Revenue); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product sales row")
			return nil, fmt.Errorf("failed to scan product sales: %w", err)
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product sales rows: %w", err)
	}

	return result, nil
}
