package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/model"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/repository"
)

const (
	revenueWindow   = 30 * 24 * time.Hour
	topProductCount = 5
)

// reportService implements ReportService.
type reportService struct {
	orderRepo      repository.OrderRepository
	newsletterRepo repository.NewsletterRepository
	logger         zerolog.Logger
}

// NewReportService creates a new report service.
func NewReportService(orderRepo repository.OrderRepository, newsletterRepo repository.NewsletterRepository, logger zerolog.Logger) ReportService {
	return &reportService{
		orderRepo:      orderRepo,
		newsletterRepo: newsletterRepo,
		logger:         logger.With().Str("service", "report").Logger(),
	}
}

// Dashboard assembles the admin analytics summary: headline totals,
// order counts by status, the last 30 days of revenue and the five
// best-selling products.
func (s *reportService) Dashboard(ctx context.Context) (*model.DashboardReport, error) {
	totals, err := s.orderRepo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load order totals: %w", err)
	}

	byStatus, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}

	revenue, err := s.orderRepo.RevenueByDay(ctx, time.Now().Add(-revenueWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to load revenue by day: %w", err)
	}

	top, err := s.orderRepo.TopProducts(ctx, topProductCount)
	if err != nil {
		return nil, fmt.Errorf("failed to load top products: %w", err)
	}

	subscribers, err := s.newsletterRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to count newsletter subscribers: %w", err)
	}

	return &model.DashboardReport{
		TotalOrders:      totals.TotalOrders,
		TotalRevenue:     totals.TotalRevenue,
		PendingPayments:  totals.PendingPayments,
		NewsletterActive: len(subscribers),
		OrdersByStatus:   byStatus,
		RevenueByDay:     revenue,
		TopProducts:      top,
	}, nil
}
