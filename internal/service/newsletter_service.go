package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/rs/zerolog"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/model"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/repository"
)

// newsletterService implements NewsletterService.
type newsletterService struct {
	newsletterRepo repository.NewsletterRepository
	logger         zerolog.Logger
}

// NewNewsletterService creates a new newsletter service.
func NewNewsletterService(newsletterRepo repository.NewsletterRepository, logger zerolog.Logger) NewsletterService {
	return &newsletterService{
		newsletterRepo: newsletterRepo,
		logger:         logger.With().Str("service", "newsletter").Logger(),
	}
}

// Subscribe adds or re-activates a subscription. Subscribing an address
// that is already active is a no-op and succeeds.
func (s *newsletterService) Subscribe(ctx context.Context, email string) (*model.NewsletterSubscriber, error) {
	email, err := normaliseEmail(email)
	if err != nil {
		return nil, err
	}

	sub, err := s.newsletterRepo.Subscribe(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	s.logger.Info().Str("email", email).Msg("newsletter subscription recorded")
	return sub, nil
}

// Unsubscribe deactivates a subscription.
func (s *newsletterService) Unsubscribe(ctx context.Context, email string) (*model.NewsletterSubscriber, error) {
	email, err := normaliseEmail(email)
	if err != nil {
		return nil, err
	}

	sub, err := s.newsletterRepo.Unsubscribe(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to unsubscribe: %w", err)
	}
	if sub == nil {
		return nil, model.NewDomainError(model.ErrCodeNotFound, "Email is not subscribed")
	}

	s.logger.Info().Str("email", email).Msg("newsletter unsubscribed")
	return sub, nil
}

// List retrieves subscribers.
func (s *newsletterService) List(ctx context.Context, activeOnly bool) ([]model.NewsletterSubscriber, error) {
	subs, err := s.newsletterRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return subs, nil
}

// normaliseEmail lowercases and validates a subscription address.
func normaliseEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", model.NewDomainError(model.ErrCodeMissingField, "Email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", model.NewDomainError(model.ErrCodeInvalidJSON, "Invalid email address")
	}
	return email, nil
}
