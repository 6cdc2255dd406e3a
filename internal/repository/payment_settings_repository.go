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

// paymentSettingsRepository implements PaymentSettingsRepository using PostgreSQL.
type paymentSettingsRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPaymentSettingsRepository creates a new PostgreSQL-backed payment settings repository.
func NewPaymentSettingsRepository(pool *pgxpool.Pool, logger zerolog.Logger) PaymentSettingsRepository {
	return &paymentSettingsRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "payment_settings").Logger(),
	}
}

const paymentSettingsColumns = `id, bank_name, account_name, account_number, ifsc_code, upi_id,
	qr_code_url, instructions, is_active, created_at, updated_at`

func scanPaymentSettings(row pgx.Row) (*model.PaymentSettings, error) {
	var s model.PaymentSettings
	err := row.Scan(
		&s.ID, &s.BankName, &s.AccountName, &s.AccountNumber, &s.IFSCCode, &s.UPIID,
		&s.QRCodeURL, &s.Instructions, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetActive retrieves the single active settings row.
func (r *paymentSettingsRepository) GetActive(ctx context.Context) (*model.PaymentSettings, error) {
	query := `SELECT ` + paymentSettingsColumns + ` FROM payment_settings WHERE is_active LIMIT 1`

	s, err := scanPaymentSettings(r.pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query active payment settings")
		return nil, fmt.Errorf("failed to query active payment settings: %w", err)
	}

	return s, nil
}

// GetByID retrieves a settings row by ID.
func (r *paymentSettingsRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PaymentSettings, error) {
	query := `SELECT ` + paymentSettingsColumns + ` FROM payment_settings WHERE id = $1`

	s, err := scanPaymentSettings(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("settings_id", id.String()).Msg("failed to query payment settings")
		return nil, fmt.Errorf("failed to query payment settings: %w", err)
	}

	return s, nil
}

// List retrieves all settings rows, newest first.
func (r *paymentSettingsRepository) List(ctx context.Context) ([]model.PaymentSettings, error) {
	query := `SELECT ` + paymentSettingsColumns + ` FROM payment_settings ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query payment settings")
		return nil, fmt.Errorf("failed to query payment settings: %w", err)
	}
	defer rows.Close()

	var settings []model.PaymentSettings
	for rows.Next() {
		s, err := scanPaymentSettings(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan payment settings row")
			return nil, fmt.Errorf("failed to scan payment settings: %w", err)
		}
		settings = append(settings, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment settings: %w", err)
	}

	return settings, nil
}

// Create inserts a new settings row.
func (r *paymentSettingsRepository) Create(ctx context.Context, s *model.PaymentSettings) error {
	query := `
		INSERT INTO payment_settings (` + paymentSettingsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		s.ID, s.BankName, s.AccountName, s.AccountNumber, s.IFSCCode, s.UPIID,
		s.QRCodeURL, s.Instructions, s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("settings_id", s.ID.String()).Msg("failed to create payment settings")
		return fmt.Errorf("failed to create payment settings: %w", err)
	}

	return nil
}

// Update replaces a settings row's mutable fields.
func (r *paymentSettingsRepository) Update(ctx context.Context, s *model.PaymentSettings) error {
	query := `
		UPDATE payment_settings
		SET bank_name = $2, account_name = $3, account_number = $4, ifsc_code = $5,
		    upi_id = $6, qr_code_url = $7, instructions = $8, updated_at = $9
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		s.ID, s.BankName, s.AccountName, s.AccountNumber, s.IFSCCode,
		s.UPIID, s.QRCodeURL, s.Instructions, s.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("settings_id", s.ID.String()).Msg("failed to update payment settings")
		return fmt.Errorf("failed to update payment settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPaymentSettingsNotFound
	}

	return nil
}

// Delete removes a settings row.
func (r *paymentSettingsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payment_settings WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("settings_id", id.String()).Msg("failed to delete payment settings")
		return fmt.Errorf("failed to delete payment settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPaymentSettingsNotFound
	}

	return nil
}

// Activate marks one row active and deactivates the rest in a single
// transaction, preserving the at-most-one-active invariant.
func (r *paymentSettingsRepository) Activate(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin activate transaction")
		return fmt.Errorf("failed to begin activate transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx,
		`UPDATE payment_settings SET is_active = FALSE, updated_at = NOW() WHERE is_active`,
	); err != nil {
		r.logger.Error().Err(err).Msg("failed to deactivate payment settings")
		return fmt.Errorf("failed to deactivate payment settings: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE payment_settings SET is_active = TRUE, updated_at = NOW() WHERE id = $1`, id,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("settings_id", id.String()).Msg("failed to activate payment settings")
		return fmt.Errorf("failed to activate payment settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPaymentSettingsNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit activate transaction: %w", err)
	}

	r.logger.Info().Str("settings_id", id.String()).Msg("payment settings activated")
	return nil
}
