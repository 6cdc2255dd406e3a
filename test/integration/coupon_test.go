package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/model"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/repository"
)

// seedCoupon inserts a coupon ready for redemption.
func seedCoupon(t *testing.T, repo repository.CouponRepository, code string, usageLimit *int) *model.Coupon {
	t.Helper()

	now := time.Now()
	coupon := &model.Coupon{
		ID:                   uuid.New(),
		Code:                 code,
		Description:          "integration test coupon",
		DiscountType:         model.DiscountPercentage,
		DiscountValue:        10,
		MinimumOrderAmount:   0,
		UsageLimit:           usageLimit,
		UserUsageLimit:       1,
		ValidFrom:            now.Add(-time.Hour),
		ValidUntil:           now.Add(24 * time.Hour),
		IsActive:             true,
		ApplicableCategories: []string{},
		ExcludedCategories:   []string{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	require.NoError(t, repo.Create(context.Background(), coupon))
	return coupon
}

func TestCouponRepository_CreateAndGetByCode(t *testing.T) {
	db := SetupTestDB(t)
	repo := repository.NewCouponRepository(db.Pool, zerolog.Nop())

	limit := 100
	seeded := seedCoupon(t, repo, "WELCOME10", &limit)

	found, err := repo.GetByCode(context.Background(), "WELCOME10")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, seeded.ID, found.ID)
	assert.Equal(t, "WELCOME10", found.Code)
	assert.Equal(t, model.DiscountPercentage, found.DiscountType)
	assert.Equal(t, 0, found.UsedCount)
	require.NotNil(t, found.UsageLimit)
	assert.Equal(t, 100, *found.UsageLimit)
}

func TestCouponRepository_CreateDuplicateCode(t *testing.T) {
	db := SetupTestDB(t)
	repo := repository.NewCouponRepository(db.Pool, zerolog.Nop())

	seedCoupon(t, repo, "FESTIVE25", nil)

	now := time.Now()
	dup := &model.Coupon{
		ID:                   uuid.New(),
		Code:                 "FESTIVE25",
		DiscountType:         model.DiscountFixed,
		DiscountValue:        250,
		UserUsageLimit:       1,
		ValidFrom:            now,
		ValidUntil:           now.Add(time.Hour),
		IsActive:             true,
		ApplicableCategories: []string{},
		ExcludedCategories:   []string{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err := repo.Create(context.Background(), dup)
	assert.ErrorIs(t, err, model.ErrDuplicateCouponCode)
}

// Redemptions racing for the last slots must never push used_count past
// the usage limit, and every successful redemption must leave exactly
// one usage row behind.
func TestCouponRepository_RedeemConcurrentCap(t *testing.T) {
	db := SetupTestDB(t)
	repo := repository.NewCouponRepository(db.Pool, zerolog.Nop())

	const usageCap = 5
	const attempts = 20

	limit := usageCap
	coupon := seedCoupon(t, repo, "LASTFIVE", &limit)

	ctx := context.Background()
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := uuid.New()
			errs[i] = repo.Redeem(ctx, &model.CouponUsage{
				ID:             uuid.New(),
				CouponID:       coupon.ID,
				UserID:         &userID,
				OrderAmount:    1000,
				DiscountAmount: 100,
				UsedAt:         time.Now(),
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, model.ErrCouponUsageLimitReached)
		}
	}
	assert.Equal(t, usageCap, succeeded)

	reloaded, err := repo.GetByID(ctx, coupon.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, usageCap, reloaded.UsedCount)

	usages, err := repo.GetUsages(ctx, coupon.ID)
	require.NoError(t, err)
	assert.Len(t, usages, usageCap)
}

func TestCouponRepository_RedeemInactive(t *testing.T) {
	db := SetupTestDB(t)
	repo := repository.NewCouponRepository(db.Pool, zerolog.Nop())

	coupon := seedCoupon(t, repo, "SLEEPING", nil)

	ctx := context.Background()
	coupon.IsActive = false
	require.NoError(t, repo.Update(ctx, coupon))

	err := repo.Redeem(ctx, &model.CouponUsage{
		ID:          uuid.New(),
		CouponID:    coupon.ID,
		OrderAmount: 500,
		UsedAt:      time.Now(),
	})
	assert.ErrorIs(t, err, model.ErrCouponUsageLimitReached)
}

func TestCouponRepository_DeleteRedeemed(t *testing.T) {
	db := SetupTestDB(t)
	repo := repository.NewCouponRepository(db.Pool, zerolog.Nop())

	coupon := seedCoupon(t, repo, "KEEPME", nil)

	ctx := context.Background()
	require.NoError(t, repo.Redeem(ctx, &model.CouponUsage{
		ID:             uuid.New(),
		CouponID:       coupon.ID,
		OrderAmount:    750,
		DiscountAmount: 75,
		UsedAt:         time.Now(),
	}))

	err := repo.Delete(ctx, coupon.ID)
	assert.ErrorIs(t, err, model.ErrCouponInUse)

	// A fresh coupon with no redemptions deletes cleanly.
	fresh := seedCoupon(t, repo, "THROWAWAY", nil)
	assert.NoError(t, repo.Delete(ctx, fresh.ID))
}
