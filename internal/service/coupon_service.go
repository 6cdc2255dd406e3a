package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/coupon"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/model"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/repository"
)

// couponService implements CouponService.
type couponService struct {
	couponRepo repository.CouponRepository
	logger     zerolog.Logger
}

// NewCouponService creates a new coupon service.
func NewCouponService(couponRepo repository.CouponRepository, logger zerolog.Logger) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		logger:     logger.With().Str("service", "coupon").Logger(),
	}
}

func cartCategories(items []model.CartItem) []string {
	seen := make(map[string]struct{}, len(items))
	var categories []string
	for _, item := range items {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		categories = append(categories, item.Category)
	}
	return categories
}

// Validate evaluates a coupon for a cart without consuming it.
func (s *couponService) Validate(ctx context.Context, req *model.ValidateCouponRequest) (*model.ValidateCouponResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Coupon code is required")
	}

	c, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to validate coupon: %w", err)
	}
	if c == nil {
		s.logger.Debug().Str("code", code).Msg("unknown coupon code")
		return nil, model.ErrCouponNotFound
	}

	usages, err := s.usagesFor(ctx, c, req.UserID)
	if err != nil {
		return nil, err
	}

	result := coupon.Evaluate(c, usages, time.Now(), req.UserID, req.OrderAmount, cartCategories(req.CartItems))
	if !result.Valid {
		s.logger.Debug().
			Str("code", code).
			Str("reason", result.Reason.Message).
			Msg("coupon rejected")
		return nil, result.Reason
	}

	return &model.ValidateCouponResponse{
		Valid:          true,
		Coupon:         c,
		DiscountAmount: result.DiscountAmount,
		FinalAmount:    coupon.Round2(req.OrderAmount - result.DiscountAmount),
	}, nil
}

// Apply re-validates against current state and records one redemption.
//
// Validation and redemption are separate requests from the storefront;
// time passes between them, so every rule runs again here. The global
// cap is additionally enforced by the repository's conditional
// increment, which is what makes concurrent redemptions safe.
func (s *couponService) Apply(ctx context.Context, req *model.ApplyCouponRequest) (*model.ApplyCouponResponse, error) {
	c, err := s.couponRepo.GetByID(ctx, req.CouponID)
	if err != nil {
		return nil, fmt.Errorf("failed to apply coupon: %w", err)
	}
	if c == nil {
		return nil, model.ErrCouponNotFound
	}

	discount, err := s.redeem(ctx, c, req.UserID, req.OrderAmount, cartCategories(req.CartItems))
	if err != nil {
		return nil, err
	}

	return &model.ApplyCouponResponse{
		Success:        true,
		DiscountAmount: discount,
		FinalAmount:    coupon.Round2(req.OrderAmount - discount),
	}, nil
}

// ApplyByCode is the checkout-time variant of Apply keyed by code.
func (s *couponService) ApplyByCode(ctx context.Context, code string, userID *uuid.UUID, orderAmount float64, categories []string) (float64, error) {
	c, err := s.couponRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return 0, fmt.Errorf("failed to apply coupon: %w", err)
	}
	if c == nil {
		return 0, model.ErrCouponNotFound
	}

	return s.redeem(ctx, c, userID, orderAmount, categories)
}

func (s *couponService) redeem(ctx context.Context, c *model.Coupon, userID *uuid.UUID, orderAmount float64, categories []string) (float64, error) {
	usages, err := s.usagesFor(ctx, c, userID)
	if err != nil {
		return 0, err
	}

	result := coupon.Evaluate(c, usages, time.Now(), userID, orderAmount, categories)
	if !result.Valid {
		s.logger.Debug().
			Str("code", c.Code).
			Str("reason", result.Reason.Message).
			Msg("coupon redemption rejected")
		return 0, result.Reason
	}

	usage := &model.CouponUsage{
		ID:             uuid.New(),
		CouponID:       c.ID,
		UserID:         userID,
		OrderAmount:    orderAmount,
		DiscountAmount: result.DiscountAmount,
		UsedAt:         time.Now(),
	}

	if err := s.couponRepo.Redeem(ctx, usage); err != nil {
		return 0, err
	}

	s.logger.Info().
		Str("code", c.Code).
		Float64("discount", result.DiscountAmount).
		Msg("coupon redeemed")

	return result.DiscountAmount, nil
}

// usagesFor loads redemption history only when a per-user check will
// run; guests skip the lookup.
func (s *couponService) usagesFor(ctx context.Context, c *model.Coupon, userID *uuid.UUID) ([]model.CouponUsage, error) {
	if userID == nil {
		return nil, nil
	}
	usages, err := s.couponRepo.GetUsages(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load coupon usages: %w", err)
	}
	return usages, nil
}

// List retrieves all coupons.
func (s *couponService) List(ctx context.Context) ([]model.Coupon, error) {
	coupons, err := s.couponRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}

// GetByID retrieves one coupon with its usage history.
func (s *couponService) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, []model.CouponUsage, error) {
	c, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	if c == nil {
		return nil, nil, model.ErrCouponNotFound
	}

	usages, err := s.couponRepo.GetUsages(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load coupon usages: %w", err)
	}

	return c, usages, nil
}

// Create adds a coupon.
func (s *couponService) Create(ctx context.Context, req *model.CouponRequest) (*model.Coupon, error) {
	if err := validateCouponRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &model.Coupon{
		ID:                    uuid.New(),
		Code:                  strings.ToUpper(strings.TrimSpace(req.Code)),
		Description:           req.Description,
		DiscountType:          req.DiscountType,
		DiscountValue:         req.DiscountValue,
		MinimumOrderAmount:    req.MinimumOrderAmount,
		MaximumDiscountAmount: req.MaximumDiscountAmount,
		UsageLimit:            req.UsageLimit,
		UserUsageLimit:        req.UserUsageLimit,
		ValidFrom:             req.ValidFrom,
		ValidUntil:            req.ValidUntil,
		IsActive:              true,
		ApplicableCategories:  req.ApplicableCategories,
		ExcludedCategories:    req.ExcludedCategories,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if c.UserUsageLimit <= 0 {
		c.UserUsageLimit = 1
	}

	if err := s.couponRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info().Str("code", c.Code).Msg("coupon created")
	return c, nil
}

// Update replaces a coupon's fields. The code and usage counters are
// immutable after creation.
func (s *couponService) Update(ctx context.Context, id uuid.UUID, req *model.CouponRequest) (*model.Coupon, error) {
	c, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	if c == nil {
		return nil, model.ErrCouponNotFound
	}

	if err := validateCouponRequest(req); err != nil {
		return nil, err
	}

	c.Description = req.Description
	c.DiscountType = req.DiscountType
	c.DiscountValue = req.DiscountValue
	c.MinimumOrderAmount = req.MinimumOrderAmount
	c.MaximumDiscountAmount = req.MaximumDiscountAmount
	c.UsageLimit = req.UsageLimit
	c.UserUsageLimit = req.UserUsageLimit
	c.ValidFrom = req.ValidFrom
	c.ValidUntil = req.ValidUntil
	c.ApplicableCategories = req.ApplicableCategories
	c.ExcludedCategories = req.ExcludedCategories
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if c.UserUsageLimit <= 0 {
		c.UserUsageLimit = 1
	}
	c.UpdatedAt = time.Now()

	if err := s.couponRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Delete removes a never-redeemed coupon; a redeemed coupon is
// soft-deactivated so historical orders keep their reference.
func (s *couponService) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get coupon: %w", err)
	}
	if c == nil {
		return model.ErrCouponNotFound
	}

	if c.UsedCount > 0 {
		c.IsActive = false
		c.UpdatedAt = time.Now()
		if err := s.couponRepo.Update(ctx, c); err != nil {
			return err
		}
		s.logger.Info().Str("code", c.Code).Msg("redeemed coupon deactivated instead of deleted")
		return nil
	}

	return s.couponRepo.Delete(ctx, id)
}

func validateCouponRequest(req *model.CouponRequest) error {
	if strings.TrimSpace(req.Code) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Coupon code is required")
	}
	if req.DiscountType != model.DiscountPercentage && req.DiscountType != model.DiscountFixed {
		return model.NewDomainError(model.ErrCodeMissingField, "Discount type must be percentage or fixed")
	}
	if req.DiscountValue <= 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "Discount value must be greater than zero")
	}
	if req.DiscountType == model.DiscountPercentage && req.DiscountValue > 100 {
		return model.NewDomainError(model.ErrCodeMissingField, "Percentage discount cannot exceed 100")
	}
	if req.ValidUntil.Before(req.ValidFrom) {
		return model.NewDomainError(model.ErrCodeMissingField, "Valid-until must not precede valid-from")
	}
	for _, cat := range append(append([]string{}, req.ApplicableCategories...), req.ExcludedCategories...) {
		if !model.ValidCategory(cat) {
			return model.NewDomainError(model.ErrCodeMissingField, "Unknown category: "+cat)
		}
	}
	return nil
}
