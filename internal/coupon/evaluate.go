// Package coupon implements the discount rule engine: a coupon is
// evaluated against the clock, its usage history, the order amount and
// the cart's categories, producing either a discount or a typed
// rejection reason.
package coupon

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/model"
)

// Result is the outcome of evaluating a coupon against an order.
type Result struct {
	Valid          bool
	Reason         *model.DomainError
	DiscountAmount float64
}

// Evaluate runs the full rule chain for a coupon. Evaluation is pure:
// it never mutates the coupon and is safe to call any number of times
// for the same inputs.
//
// Rules run in order and short-circuit on the first failure:
//  1. active flag and validity window (both bounds inclusive)
//  2. global usage cap
//  3. per-user usage cap (skipped for guests)
//  4. minimum order amount (inclusive)
//  5. category policy, exclusion taking precedence over inclusion;
//     skipped when the request carries no cart data
//
// A passing evaluation carries the computed discount amount.
func Evaluate(c *model.Coupon, usages []model.CouponUsage, now time.Time, userID *uuid.UUID, orderAmount float64, cartCategories []string) Result {
	if reason := checkRules(c, usages, now, userID, orderAmount, cartCategories); reason != nil {
		return Result{Valid: false, Reason: reason}
	}
	return Result{Valid: true, DiscountAmount: CalculateDiscount(c, orderAmount)}
}

func checkRules(c *model.Coupon, usages []model.CouponUsage, now time.Time, userID *uuid.UUID, orderAmount float64, cartCategories []string) *model.DomainError {
	if !c.IsActive || now.Before(c.ValidFrom) || now.After(c.ValidUntil) {
		return model.ErrCouponInactive
	}

	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return model.ErrCouponUsageLimitReached
	}

	if userID != nil {
		used := 0
		for _, u := range usages {
			if u.UserID != nil && *u.UserID == *userID {
				used++
			}
		}
		if used >= c.UserUsageLimit {
			return model.ErrCouponUserLimitReached
		}
	}

	if orderAmount < c.MinimumOrderAmount {
		return model.ErrCouponMinOrderNotMet
	}

	return checkCategories(c, cartCategories)
}

// checkCategories enforces the category policy. Empty lists mean no
// restriction; exclusion wins over inclusion. A request that carries
// no cart data cannot be checked against categories, so the rule is
// skipped rather than failing every restricted coupon: redemption
// trusts the validation call that preceded it.
func checkCategories(c *model.Coupon, cartCategories []string) *model.DomainError {
	if len(cartCategories) == 0 {
		return nil
	}
	if len(c.ExcludedCategories) > 0 && intersects(cartCategories, c.ExcludedCategories) {
		return model.ErrCouponCategoryExcluded
	}
	if len(c.ApplicableCategories) > 0 && !intersects(cartCategories, c.ApplicableCategories) {
		return model.ErrCouponCategoryNotApplicable
	}
	return nil
}

func intersects(a, b []string) bool {
	set := make(map[string]struct{}, len(b))
	for _, s := range b {
		set[s] = struct{}{}
	}
	for _, s := range a {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}

// CalculateDiscount computes the discount a coupon grants on an order
// amount, ignoring validity rules.
//
// Percentage discounts are rounded to two decimals and capped at
// MaximumDiscountAmount when set. Fixed discounts never exceed the
// order amount, so the final amount cannot go negative.
func CalculateDiscount(c *model.Coupon, orderAmount float64) float64 {
	switch c.DiscountType {
	case model.DiscountPercentage:
		discount := Round2(orderAmount * c.DiscountValue / 100)
		if c.MaximumDiscountAmount != nil && discount > *c.MaximumDiscountAmount {
			discount = *c.MaximumDiscountAmount
		}
		return discount
	case model.DiscountFixed:
		return math.Min(c.DiscountValue, orderAmount)
	default:
		return 0
	}
}

// Round2 rounds to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
