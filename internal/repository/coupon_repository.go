package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/model"
)

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

const couponColumns = `id, code, description, discount_type, discount_value, minimum_order_amount,
	maximum_discount_amount, usage_limit, used_count, user_usage_limit, valid_from, valid_until,
	is_active, applicable_categories, excluded_categories, created_at, updated_at`

func scanCoupon(row pgx.Row) (*model.Coupon, error) {
	var c model.Coupon
	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.Description,
		&c.DiscountType,
		&c.DiscountValue,
		&c.MinimumOrderAmount,
		&c.MaximumDiscountAmount,
		&c.UsageLimit,
		&c.UsedCount,
		&c.UserUsageLimit,
		&c.ValidFrom,
		&c.ValidUntil,
		&c.IsActive,
		&c.ApplicableCategories,
		&c.ExcludedCategories,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByCode retrieves a coupon by its uppercase code.
func (r *couponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1`

	c, err := scanCoupon(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("code", code).Msg("coupon not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return c, nil
}

// GetByID retrieves a coupon by ID.
func (r *couponRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1`

	c, err := scanCoupon(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("coupon_id", id.String()).Msg("coupon not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return c, nil
}

// List retrieves all coupons, newest first.
func (r *couponRepository) List(ctx context.Context) ([]model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query coupons")
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	var coupons []model.Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan coupon row")
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, *c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating coupon rows")
		return nil, fmt.Errorf("error iterating coupons: %w", err)
	}

	return coupons, nil
}

// GetUsages retrieves all redemption records for a coupon.
func (r *couponRepository) GetUsages(ctx context.Context, couponID uuid.UUID) ([]model.CouponUsage, error) {
	query := `
		SELECT id, coupon_id, user_id, order_amount, discount_amount, used_at
		FROM coupon_usages
		WHERE coupon_id = $1
		ORDER BY used_at
	`

	rows, err := r.pool.Query(ctx, query, couponID)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", couponID.String()).Msg("failed to query coupon usages")
		return nil, fmt.Errorf("failed to query coupon usages: %w", err)
	}
	defer rows.Close()

	var usages []model.CouponUsage
	for rows.Next() {
		var u model.CouponUsage
		err := rows.Scan(&u.ID, &u.CouponID, &u.UserID, &u.OrderAmount, &u.DiscountAmount, &u.UsedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan coupon usage row")
			return nil, fmt.Errorf("failed to scan coupon usage: %w", err)
		}
		usages = append(usages, u)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating coupon usage rows")
		return nil, fmt.Errorf("error iterating coupon usages: %w", err)
	}

	return usages, nil
}

// Create inserts a new coupon.
func (r *couponRepository) Create(ctx context.Context, c *model.Coupon) error {
	query := `
		INSERT INTO coupons (` + couponColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.Code, c.Description, c.DiscountType, c.DiscountValue, c.MinimumOrderAmount,
		c.MaximumDiscountAmount, c.UsageLimit, c.UsedCount, c.UserUsageLimit, c.ValidFrom,
		c.ValidUntil, c.IsActive, c.ApplicableCategories, c.ExcludedCategories,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicateCouponCode
		}
		r.logger.Error().Err(err).Str("code", c.Code).Msg("failed to create coupon")
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	r.logger.Debug().Str("code", c.Code).Msg("coupon created")
	return nil
}

// Update replaces a coupon's mutable fields. The usage counters are
// only touched by Redeem.
func (r *couponRepository) Update(ctx context.Context, c *model.Coupon) error {
	query := `
		UPDATE coupons
		SET description = $2, discount_type = $3, discount_value = $4,
		    minimum_order_amount = $5, maximum_discount_amount = $6, usage_limit = $7,
		    user_usage_limit = $8, valid_from = $9, valid_until = $10, is_active = $11,
		    applicable_categories = $12, excluded_categories = $13, updated_at = $14
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		c.ID, c.Description, c.DiscountType, c.DiscountValue,
		c.MinimumOrderAmount, c.MaximumDiscountAmount, c.UsageLimit,
		c.UserUsageLimit, c.ValidFrom, c.ValidUntil, c.IsActive,
		c.ApplicableCategories, c.ExcludedCategories, c.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", c.ID.String()).Msg("failed to update coupon")
		return fmt.Errorf("failed to update coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCouponNotFound
	}

	return nil
}

// Delete removes a coupon that has never been redeemed.
func (r *couponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1 AND used_count = 0`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to delete coupon")
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCouponInUse
	}

	return nil
}

// Redeem records one redemption inside a single transaction.
//
// The conditional UPDATE is what closes the usage-cap race: two
// concurrent redemptions both increment through the same guarded
// statement, so used_count can never pass usage_limit, and the loser
// gets the usage-limit error instead of a silent over-redemption. The
// usage row is inserted in the same transaction, which keeps
// used_count == count(coupon_usages).
func (r *couponRepository) Redeem(ctx context.Context, usage *model.CouponUsage) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin redeem transaction")
		return fmt.Errorf("failed to begin redeem transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	updateQuery := `
		UPDATE coupons
		SET used_count = used_count + 1, updated_at = NOW()
		WHERE id = $1
		  AND is_active
		  AND (usage_limit IS NULL OR used_count < usage_limit)
	`

	tag, err := tx.Exec(ctx, updateQuery, usage.CouponID)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", usage.CouponID.String()).Msg("failed to increment coupon usage")
		return fmt.Errorf("failed to increment coupon usage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn().Str("coupon_id", usage.CouponID.String()).Msg("coupon usage cap exhausted")
		return model.ErrCouponUsageLimitReached
	}

	insertQuery := `
		INSERT INTO coupon_usages (id, coupon_id, user_id, order_amount, discount_amount, used_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = tx.Exec(ctx, insertQuery,
		usage.ID, usage.CouponID, usage.UserID, usage.OrderAmount, usage.DiscountAmount, usage.UsedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", usage.CouponID.String()).Msg("failed to insert coupon usage")
		return fmt.Errorf("failed to insert coupon usage: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("coupon_id", usage.CouponID.String()).Msg("failed to commit redeem transaction")
		return fmt.Errorf("failed to commit redeem transaction: %w", err)
	}

	r.logger.Debug().
		Str("coupon_id", usage.CouponID.String()).
		Float64("discount", usage.DiscountAmount).
		Msg("coupon redeemed")

	return nil
}
