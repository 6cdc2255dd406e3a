package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/model"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/repository"
)

// paymentSettingsService implements PaymentSettingsService.
type paymentSettingsService struct {
	settingsRepo repository.PaymentSettingsRepository
	logger       zerolog.Logger
}

// NewPaymentSettingsService creates a new payment settings service.
func NewPaymentSettingsService(settingsRepo repository.PaymentSettingsRepository, logger zerolog.Logger) PaymentSettingsService {
	return &paymentSettingsService{
		settingsRepo: settingsRepo,
		logger:       logger.With().Str("service", "payment_settings").Logger(),
	}
}

// GetActive retrieves the settings shown at checkout.
func (s *paymentSettingsService) GetActive(ctx context.Context) (*model.PaymentSettings, error) {
	settings, err := s.settingsRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active payment settings: %w", err)
	}
	if settings == nil {
		return nil, model.ErrPaymentSettingsNotFound
	}
	return settings, nil
}

// List retrieves all settings rows.
func (s *paymentSettingsService) List(ctx context.Context) ([]model.PaymentSettings, error) {
	settings, err := s.settingsRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment settings: %w", err)
	}
	return settings, nil
}

// Create adds a settings row. The first row ever created becomes active
// immediately so checkout is never left without payment details.
func (s *paymentSettingsService) Create(ctx context.Context, req *model.PaymentSettingsRequest) (*model.PaymentSettings, error) {
	if err := validatePaymentSettingsRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.settingsRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment settings: %w", err)
	}

	now := time.Now()
	settings := &model.PaymentSettings{
		ID:            uuid.New(),
		BankName:      strings.TrimSpace(req.BankName),
		AccountName:   strings.TrimSpace(req.AccountName),
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		IFSCCode:      strings.ToUpper(strings.TrimSpace(req.IFSCCode)),
		UPIID:         strings.TrimSpace(req.UPIID),
		QRCodeURL:     req.QRCodeURL,
		Instructions:  req.Instructions,
		IsActive:      len(existing) == 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.settingsRepo.Create(ctx, settings); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("settings_id", settings.ID.String()).
		Bool("active", settings.IsActive).
		Msg("payment settings created")

	return settings, nil
}

// Update replaces a settings row's fields. The active flag is managed
// through Activate, not here.
func (s *paymentSettingsService) Update(ctx context.Context, id uuid.UUID, req *model.PaymentSettingsRequest) (*model.PaymentSettings, error) {
	if err := validatePaymentSettingsRequest(req); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment settings: %w", err)
	}
	if settings == nil {
		return nil, model.ErrPaymentSettingsNotFound
	}

	settings.BankName = strings.TrimSpace(req.BankName)
	settings.AccountName = strings.TrimSpace(req.AccountName)
	settings.AccountNumber = strings.TrimSpace(req.AccountNumber)
	settings.IFSCCode = strings.ToUpper(strings.TrimSpace(req.IFSCCode))
	settings.UPIID = strings.TrimSpace(req.UPIID)
	settings.QRCodeURL = req.QRCodeURL
	settings.Instructions = req.Instructions
	settings.UpdatedAt = time.Now()

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	s.logger.Info().Str("settings_id", id.String()).Msg("payment settings updated")

	return settings, nil
}

// Delete removes a settings row.
func (s *paymentSettingsService) Delete(ctx context.Context, id uuid.UUID) error {
	settings, err := s.settingsRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get payment settings: %w", err)
	}
	if settings == nil {
		return model.ErrPaymentSettingsNotFound
	}

	if err := s.settingsRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("settings_id", id.String()).Msg("payment settings deleted")
	return nil
}

// Activate makes one row the active one.
func (s *paymentSettingsService) Activate(ctx context.Context, id uuid.UUID) (*model.PaymentSettings, error) {
	settings, err := s.settingsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment settings: %w", err)
	}
	if settings == nil {
		return nil, model.ErrPaymentSettingsNotFound
	}

	if err := s.settingsRepo.Activate(ctx, id); err != nil {
		return nil, err
	}
	settings.IsActive = true

	s.logger.Info().Str("settings_id", id.String()).Msg("payment settings activated")

	return settings, nil
}

// validatePaymentSettingsRequest requires at least one usable payment
// channel: full bank details or a UPI ID. Rejections are DomainErrors
// so the handler maps them to a 400.
func validatePaymentSettingsRequest(req *model.PaymentSettingsRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "Payment settings request body is required")
	}

	hasBank := strings.TrimSpace(req.BankName) != "" &&
		strings.TrimSpace(req.AccountName) != "" &&
		strings.TrimSpace(req.AccountNumber) != "" &&
		strings.TrimSpace(req.IFSCCode) != ""
	hasUPI := strings.TrimSpace(req.UPIID) != ""

	if !hasBank && !hasUPI {
		return model.NewDomainError(model.ErrCodeMissingField,
			"Either complete bank details or a UPI ID is required")
	}
	return nil
}
