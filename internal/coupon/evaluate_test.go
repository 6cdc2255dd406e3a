package coupon

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/model"
)

func ptrFloat(f float64) *float64 { return &f }
func ptrInt(i int) *int           { return &i }

func testCoupon() *model.Coupon {
	now := time.Now()
	return &model.Coupon{
		ID:                 uuid.New(),
		Code:               "WELCOME10",
		DiscountType:       model.DiscountPercentage,
		DiscountValue:      10,
		MinimumOrderAmount: 500,
		UserUsageLimit:     1,
		ValidFrom:          now.Add(-24 * time.Hour),
		ValidUntil:         now.Add(24 * time.Hour),
		IsActive:           true,
	}
}

func TestEvaluate_Welcome10Scenario(t *testing.T) {
	// WELCOME10: 10% off, min 500, cap 200, usageLimit 100, userUsageLimit 1.
	c := testCoupon()
	c.MaximumDiscountAmount = ptrFloat(200)
	c.UsageLimit = ptrInt(100)

	userID := uuid.New()
	result := Evaluate(c, nil, time.Now(), &userID, 1000, nil)

	require.True(t, result.Valid)
	assert.Nil(t, result.Reason)
	assert.Equal(t, 100.0, result.DiscountAmount)
}

func TestEvaluate_InactiveCoupon(t *testing.T) {
	c := testCoupon()
	c.IsActive = false

	result := Evaluate(c, nil, time.Now(), nil, 1000, nil)

	assert.False(t, result.Valid)
	assert.Equal(t, model.ErrCouponInactive, result.Reason)
}

func TestEvaluate_ValidityWindowBoundsInclusive(t *testing.T) {
	c := testCoupon()
	c.ValidFrom = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.ValidUntil = time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name  string
		now   time.Time
		valid bool
	}{
		{"before window", c.ValidFrom.Add(-time.Second), false},
		{"at validFrom", c.ValidFrom, true},
		{"inside window", c.ValidFrom.Add(12 * time.Hour), true},
		{"at validUntil", c.ValidUntil, true},
		{"after window", c.ValidUntil.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(c, nil, tt.now, nil, 1000, nil)
			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				assert.Equal(t, model.ErrCouponInactive, result.Reason)
			}
		})
	}
}

func TestEvaluate_GlobalUsageLimit(t *testing.T) {
	c := testCoupon()
	c.UsageLimit = ptrInt(5)
	c.UsedCount = 5

	result := Evaluate(c, nil, time.Now(), nil, 1000, nil)

	assert.False(t, result.Valid)
	assert.Equal(t, model.ErrCouponUsageLimitReached, result.Reason)
}

func TestEvaluate_NoGlobalLimitMeansUnlimited(t *testing.T) {
	c := testCoupon()
	c.UsedCount = 100000

	result := Evaluate(c, nil, time.Now(), nil, 1000, nil)

	assert.True(t, result.Valid)
}

func TestEvaluate_PerUserLimit(t *testing.T) {
	// NEWUSER scenario: userUsageLimit=1, second validation by the same
	// user must fail with the per-user reason.
	c := testCoupon()
	c.Code = "NEWUSER"
	userID := uuid.New()

	first := Evaluate(c, nil, time.Now(), &userID, 1000, nil)
	require.True(t, first.Valid)

	usages := []model.CouponUsage{
		{CouponID: c.ID, UserID: &userID, OrderAmount: 1000, DiscountAmount: 100, UsedAt: time.Now()},
	}
	c.UsedCount = 1

	second := Evaluate(c, usages, time.Now(), &userID, 1000, nil)
	assert.False(t, second.Valid)
	assert.Equal(t, model.ErrCouponUserLimitReached, second.Reason)

	// A different user is unaffected.
	otherID := uuid.New()
	other := Evaluate(c, usages, time.Now(), &otherID, 1000, nil)
	assert.True(t, other.Valid)
}

func TestEvaluate_GuestSkipsPerUserLimit(t *testing.T) {
	c := testCoupon()
	userID := uuid.New()
	usages := []model.CouponUsage{
		{CouponID: c.ID, UserID: &userID, UsedAt: time.Now()},
	}
	c.UsedCount = 1

	result := Evaluate(c, usages, time.Now(), nil, 1000, nil)
	assert.True(t, result.Valid)
}

func TestEvaluate_MinimumOrderAmountInclusive(t *testing.T) {
	c := testCoupon()

	atMinimum := Evaluate(c, nil, time.Now(), nil, 500, nil)
	assert.True(t, atMinimum.Valid)

	belowMinimum := Evaluate(c, nil, time.Now(), nil, 499.99, nil)
	assert.False(t, belowMinimum.Valid)
	assert.Equal(t, model.ErrCouponMinOrderNotMet, belowMinimum.Reason)
}

func TestEvaluate_Flat100BelowMinimum(t *testing.T) {
	// FLAT100: fixed 100, min 300, cart total 50 -> rejected on minimum.
	c := testCoupon()
	c.Code = "FLAT100"
	c.DiscountType = model.DiscountFixed
	c.DiscountValue = 100
	c.MinimumOrderAmount = 300

	result := Evaluate(c, nil, time.Now(), nil, 50, nil)
	assert.False(t, result.Valid)
	assert.Equal(t, model.ErrCouponMinOrderNotMet, result.Reason)

	// Even without the minimum, the fixed discount clamps to the order
	// amount so the final amount can never go negative.
	assert.Equal(t, 50.0, CalculateDiscount(c, 50))
}

func TestEvaluate_CategoryPolicy(t *testing.T) {
	tests := []struct {
		name       string
		applicable []string
		excluded   []string
		cart       []string
		valid      bool
		reason     *model.DomainError
	}{
		{"no restriction", nil, nil, []string{"sarees"}, true, nil},
		{"applicable match", []string{"sarees", "kurtis"}, nil, []string{"sarees"}, true, nil},
		{"applicable no match", []string{"sarees"}, nil, []string{"jewellery"}, false, model.ErrCouponCategoryNotApplicable},
		{"excluded match", nil, []string{"jewellery"}, []string{"sarees", "jewellery"}, false, model.ErrCouponCategoryExcluded},
		{"excluded no match", nil, []string{"jewellery"}, []string{"sarees"}, true, nil},
		{"exclusion beats inclusion", []string{"sarees"}, []string{"sarees"}, []string{"sarees"}, false, model.ErrCouponCategoryExcluded},
		{"no cart data skips inclusion", []string{"sarees"}, nil, nil, true, nil},
		{"no cart data skips exclusion", nil, []string{"jewellery"}, nil, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCoupon()
			c.ApplicableCategories = tt.applicable
			c.ExcludedCategories = tt.excluded

			result := Evaluate(c, nil, time.Now(), nil, 1000, tt.cart)
			assert.Equal(t, tt.valid, result.Valid)
			assert.Equal(t, tt.reason, result.Reason)
		})
	}
}

func TestCalculateDiscount_PercentageCap(t *testing.T) {
	c := testCoupon()
	c.DiscountValue = 50
	c.MaximumDiscountAmount = ptrFloat(200)

	// 50% of 1000 is 500, capped at 200.
	assert.Equal(t, 200.0, CalculateDiscount(c, 1000))

	// Below the cap the raw percentage applies.
	assert.Equal(t, 150.0, CalculateDiscount(c, 300))
}

func TestCalculateDiscount_PercentageRounding(t *testing.T) {
	c := testCoupon()
	c.DiscountValue = 7.5

	// 7.5% of 333.33 = 24.99975 -> 25.00
	assert.Equal(t, 25.0, CalculateDiscount(c, 333.33))
}

func TestCalculateDiscount_FixedNeverExceedsOrderAmount(t *testing.T) {
	c := testCoupon()
	c.DiscountType = model.DiscountFixed
	c.DiscountValue = 100

	amounts := []float64{0, 50, 99.99, 100, 1000}
	for _, amount := range amounts {
		discount := CalculateDiscount(c, amount)
		assert.LessOrEqual(t, discount, amount)
	}
}

func TestCalculateDiscount_Idempotent(t *testing.T) {
	c := testCoupon()
	c.MaximumDiscountAmount = ptrFloat(200)

	first := CalculateDiscount(c, 1234.56)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CalculateDiscount(c, 1234.56))
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 99.99, Round2(99.994))
	assert.Equal(t, 100.0, Round2(99.996))
	assert.Equal(t, 0.1, Round2(0.1))
}
