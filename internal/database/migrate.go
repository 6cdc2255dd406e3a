package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// migrations are applied in order at startup. Each entry runs at most
// once; applied versions are tracked in schema_migrations.
var migrations = []struct {
	version string
	sql     string
}{
	{
		version: "001_products",
		sql: `
			CREATE TABLE IF NOT EXISTS products (
				id UUID PRIMARY KEY,
				name TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				price DOUBLE PRECISION NOT NULL,
				stock INTEGER NOT NULL DEFAULT 0,
				category TEXT NOT NULL,
				sizes JSONB NOT NULL DEFAULT '[]',
				images JSONB NOT NULL DEFAULT '[]',
				variations JSONB NOT NULL DEFAULT '[]',
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_products_category ON products (category);
		`,
	},
	{
		version: "002_coupons",
		sql: `
			CREATE TABLE IF NOT EXISTS coupons (
				id UUID PRIMARY KEY,
				code TEXT NOT NULL UNIQUE,
				description TEXT NOT NULL DEFAULT '',
				discount_type TEXT NOT NULL,
				discount_value DOUBLE PRECISION NOT NULL,
				minimum_order_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
				maximum_discount_amount DOUBLE PRECISION,
				usage_limit INTEGER,
				used_count INTEGER NOT NULL DEFAULT 0,
				user_usage_limit INTEGER NOT NULL DEFAULT 1,
				valid_from TIMESTAMPTZ NOT NULL,
				valid_until TIMESTAMPTZ NOT NULL,
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				applicable_categories JSONB NOT NULL DEFAULT '[]',
				excluded_categories JSONB NOT NULL DEFAULT '[]',
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			);
			CREATE TABLE IF NOT EXISTS coupon_usages (
				id UUID PRIMARY KEY,
				coupon_id UUID NOT NULL REFERENCES coupons (id),
				user_id UUID,
				order_amount DOUBLE PRECISION NOT NULL,
				discount_amount DOUBLE PRECISION NOT NULL,
				used_at TIMESTAMPTZ NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_coupon_usages_coupon ON coupon_usages (coupon_id);
		`,
	},
	{
		version: "003_orders",
		sql: `
			CREATE TABLE IF NOT EXISTS orders (
				id UUID PRIMARY KEY,
				user_id UUID,
				items JSONB NOT NULL,
				shipping_info JSONB NOT NULL,
				payment_method TEXT NOT NULL,
				payment_intent_id TEXT,
				transaction_number TEXT,
				coupon_code TEXT,
				discount_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
				subtotal DOUBLE PRECISION NOT NULL,
				shipping_cost DOUBLE PRECISION NOT NULL,
				total_amount DOUBLE PRECISION NOT NULL,
				status TEXT NOT NULL DEFAULT 'pending',
				payment_status TEXT NOT NULL DEFAULT 'pending',
				tracking_number TEXT,
				estimated_delivery TIMESTAMPTZ,
				notes TEXT,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status);
			CREATE INDEX IF NOT EXISTS idx_orders_user ON orders (user_id);
		`,
	},
	{
		version: "004_users",
		sql: `
			CREATE TABLE IF NOT EXISTS users (
				id UUID PRIMARY KEY,
				name TEXT NOT NULL,
				email TEXT NOT NULL UNIQUE,
				phone TEXT NOT NULL DEFAULT '',
				address JSONB,
				is_admin BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			);
		`,
	},
	{
		version: "005_newsletter",
		sql: `
			CREATE TABLE IF NOT EXISTS newsletter_subscribers (
				id UUID PRIMARY KEY,
				email TEXT NOT NULL UNIQUE,
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				subscribed_at TIMESTAMPTZ NOT NULL,
				unsubscribed_at TIMESTAMPTZ
			);
		`,
	},
	{
		version: "006_payment_settings",
		sql: `
			CREATE TABLE IF NOT EXISTS payment_settings (
				id UUID PRIMARY KEY,
				bank_name TEXT NOT NULL DEFAULT '',
				account_name TEXT NOT NULL DEFAULT '',
				account_number TEXT NOT NULL DEFAULT '',
				ifsc_code TEXT NOT NULL DEFAULT '',
				upi_id TEXT NOT NULL DEFAULT '',
				qr_code_url TEXT NOT NULL DEFAULT '',
				instructions TEXT NOT NULL DEFAULT '',
				is_active BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			);
			CREATE UNIQUE INDEX IF NOT EXISTS uq_payment_settings_active
				ON payment_settings ((TRUE)) WHERE is_active;
		`,
	},
}

// Migrate applies all pending migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	logger = logger.With().Str("component", "migrate").Logger()

	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`,
			m.version,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration %s: %w", m.version, err)
		}
		if exists {
			continue
		}

		logger.Info().Str("version", m.version).Msg("applying migration")

		tx, err := pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin migration transaction: %w", err)
		}

		if _, err := tx.Exec(ctx, m.sql); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("failed to apply migration %s: %w", m.version, err)
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version) VALUES ($1)`, m.version,
		); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("failed to record migration %s: %w", m.version, err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", m.version, err)
		}
	}

	return nil
}
