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

// newsletterRepository implements NewsletterRepository using PostgreSQL.
type newsletterRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewNewsletterRepository creates a new PostgreSQL-backed newsletter repository.
func NewNewsletterRepository(pool *pgxpool.Pool, logger zerolog.Logger) NewsletterRepository {
	return &newsletterRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "newsletter").Logger(),
	}
}

// Subscribe inserts or re-activates a subscription. Re-subscribing an
// existing address is idempotent.
func (r *newsletterRepository) Subscribe(ctx context.Context, email string) (*model.NewsletterSubscriber, error) {
	query := `
		INSERT INTO newsletter_subscribers (id, email, is_active, subscribed_at)
		VALUES ($1, $2, TRUE, $3)
		ON CONFLICT (email) DO UPDATE
		SET is_active = TRUE, subscribed_at = EXCLUDED.subscribed_at, unsubscribed_at = NULL
		RETURNING id, email, is_active, subscribed_at, unsubscribed_at
	`

	var s model.NewsletterSubscriber
	err := r.pool.QueryRow(ctx, query, uuid.New(), email, time.Now()).Scan(
		&s.ID, &s.Email, &s.IsActive, &s.SubscribedAt, &s.UnsubscribedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("email", email).Msg("failed to subscribe")
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	r.logger.Debug().Str("email", email).Msg("newsletter subscription recorded")
	return &s, nil
}

// Unsubscribe deactivates a subscription.
func (r *newsletterRepository) Unsubscribe(ctx context.Context, email string) (*model.NewsletterSubscriber, error) {
	query := `
		UPDATE newsletter_subscribers
		SET is_active = FALSE, unsubscribed_at = $2
		WHERE email = $1
		RETURNING id, email, is_active, subscribed_at, unsubscribed_at
	`

	var s model.NewsletterSubscriber
	err := r.pool.QueryRow(ctx, query, email, time.Now()).Scan(
		&s.ID, &s.Email, &s.IsActive, &s.SubscribedAt, &s.UnsubscribedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("email", email).Msg("failed to unsubscribe")
		return nil, fmt.Errorf("failed to unsubscribe: %w", err)
	}

	return &s, nil
}

// List retrieves subscribers, optionally only active ones.
func (r *newsletterRepository) List(ctx context.Context, activeOnly bool) ([]model.NewsletterSubscriber, error) {
	query := `
		SELECT id, email, is_active, subscribed_at, unsubscribed_at
		FROM newsletter_subscribers
		WHERE NOT $1 OR is_active
		ORDER BY subscribed_at DESC
	`

	rows, err := r.pool.Query(ctx, query, activeOnly)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query subscribers")
		return nil, fmt.Errorf("failed to query subscribers: %w", err)
	}
	defer rows.Close()

	var subscribers []model.NewsletterSubscriber
	for rows.Next() {
		var s model.NewsletterSubscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.IsActive, &s.SubscribedAt, &s.UnsubscribedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan subscriber row")
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subscribers = append(subscribers, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscribers: %w", err)
	}

	return subscribers, nil
}
