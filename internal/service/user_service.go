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

// userService implements UserService.
type userService struct {
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	logger    zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, orderRepo repository.OrderRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo:  userRepo,
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "user").Logger(),
	}
}

// GetProfile retrieves a user's profile. When the user never saved an
// address, the shipping address of their most recent order is returned
// in its place so the checkout form can be pre-filled.
func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	if user.Address == nil {
		latest, err := s.orderRepo.LatestByUser(ctx, id)
		if err != nil {
			// Profile lookup still succeeds without the fallback.
			s.logger.Warn().Err(err).Str("user_id", id.String()).Msg("failed to load latest order for address fallback")
			return user, nil
		}
		if latest != nil {
			user.Address = &model.Address{
				Address:    latest.ShippingInfo.Address,
				City:       latest.ShippingInfo.City,
				State:      latest.ShippingInfo.State,
				PostalCode: latest.ShippingInfo.PostalCode,
				Country:    latest.ShippingInfo.Country,
			}
		}
	}

	return user, nil
}

// UpdateProfile persists profile edits.
func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error) {
	if req == nil || strings.TrimSpace(req.Name) == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Name is required")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Phone = strings.TrimSpace(req.Phone)
	if req.Address != nil {
		user.Address = req.Address
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id.String()).Msg("profile updated")

	return user, nil
}
