// Seeds the database with sample catalogue data for local development.
//
// Usage: go run scripts/seed.go
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/config"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/database"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/model"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	productRepo := repository.NewProductRepository(pool, logger)
	couponRepo := repository.NewCouponRepository(pool, logger)
	settingsRepo := repository.NewPaymentSettingsRepository(pool, logger)

	now := time.Now()

	products := []*model.Product{
		{
			Name:        "Banarasi Silk Saree",
			Description: "Handwoven Banarasi silk saree with zari border.",
			Price:       2499.00,
			Stock:       25,
			Category:    model.CategorySarees,
			Sizes:       []string{"Free Size"},
			Images:      []string{"https://cdn.example.com/banarasi-silk.jpg"},
		},
		{
			Name:        "Chikankari Cotton Kurti",
			Description: "Lucknowi chikankari embroidery on soft cotton.",
			Price:       899.00,
			Stock:       60,
			Category:    model.CategoryKurtis,
			Sizes:       []string{"S", "M", "L", "XL"},
			Images:      []string{"https://cdn.example.com/chikankari-kurti.jpg"},
		},
		{
			Name:        "Mirror Work Lehenga",
			Description: "Festive lehenga with mirror work and dupatta.",
			Price:       5999.00,
			Stock:       10,
			Category:    model.CategoryLehengas,
			Sizes:       []string{"S", "M", "L"},
			Images:      []string{"https://cdn.example.com/mirror-lehenga.jpg"},
		},
		{
			Name:        "Anarkali Dress",
			Description: "Floor-length anarkali in georgette.",
			Price:       1799.00,
			Stock:       30,
			Category:    model.CategoryDresses,
			Sizes:       []string{"M", "L", "XL"},
			Images:      []string{"https://cdn.example.com/anarkali-dress.jpg"},
		},
		{
			Name:        "Oxidised Jhumka Earrings",
			Description: "Traditional oxidised silver jhumkas.",
			Price:       499.00,
			Stock:       100,
			Category:    model.CategoryJewellery,
			Sizes:       []string{},
			Images:      []string{"https://cdn.example.com/jhumka.jpg"},
		},
	}

	for _, p := range products {
		p.ID = uuid.New()
		p.IsActive = true
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := productRepo.Create(ctx, p); err != nil {
			log.Fatalf("Failed to seed product %s: %v", p.Name, err)
		}
		fmt.Printf("Seeded product %s (%s)\n", p.Name, p.ID)
	}

	welcomeCap := 500
	maxDiscount := 500.00
	coupons := []*model.Coupon{
		{
			Code:                  "WELCOME10",
			Description:           "10% off your first order",
			DiscountType:          model.DiscountPercentage,
			DiscountValue:         10,
			MinimumOrderAmount:    500,
			MaximumDiscountAmount: &maxDiscount,
			UsageLimit:            &welcomeCap,
			UserUsageLimit:        1,
			ValidFrom:             now,
			ValidUntil:            now.AddDate(0, 3, 0),
		},
		{
			Code:               "FESTIVE250",
			Description:        "Flat 250 off festive wear",
			DiscountType:       model.DiscountFixed,
			DiscountValue:      250,
			MinimumOrderAmount: 1999,
			UserUsageLimit:     2,
			ValidFrom:          now,
			ValidUntil:         now.AddDate(0, 1, 0),
			ApplicableCategories: []string{
				model.CategorySarees,
				model.CategoryLehengas,
			},
		},
	}

	for _, c := range coupons {
		c.ID = uuid.New()
		c.IsActive = true
		if c.ApplicableCategories == nil {
			c.ApplicableCategories = []string{}
		}
		if c.ExcludedCategories == nil {
			c.ExcludedCategories = []string{}
		}
		c.CreatedAt = now
		c.UpdatedAt = now
		if err := couponRepo.Create(ctx, c); err != nil {
			log.Fatalf("Failed to seed coupon %s: %v", c.Code, err)
		}
		fmt.Printf("Seeded coupon %s (%s)\n", c.Code, c.ID)
	}

	settings := &model.PaymentSettings{
		ID:            uuid.New(),
		BankName:      "State Bank of India",
		AccountName:   "Janu Collections",
		AccountNumber: "000123456789",
		IFSCCode:      "SBIN0001234",
		UPIID:         "janucollections@oksbi",
		Instructions:  "Quote the order number in the transfer reference.",
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := settingsRepo.Create(ctx, settings); err != nil {
		log.Fatalf("Failed to seed payment settings: %v", err)
	}
	fmt.Printf("Seeded payment settings (%s)\n", settings.ID)

	fmt.Println("\nSample data created successfully!")
}
