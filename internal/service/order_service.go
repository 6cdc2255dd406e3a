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
	"github.com/SagarikaVandana/janu-collections-sub000/internal/notification"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/repository"
)

// estimatedDeliveryWindow is added to the ship date when an order
// transitions to shipped.
const estimatedDeliveryWindow = 5 * 24 * time.Hour

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	coupons     CouponService
	dispatcher  *notification.Dispatcher
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	coupons CouponService,
	dispatcher *notification.Dispatcher,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		coupons:     coupons,
		dispatcher:  dispatcher,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// Create places an order from a cart snapshot. Product name, price and
// image are copied onto the order at this moment; later catalogue edits
// do not affect placed orders.
func (s *orderService) Create(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	byID := make(map[uuid.UUID]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var subtotal float64
	items := make([]model.OrderItem, len(req.Items))
	categories := make([]string, 0, len(req.Items))
	for i, item := range req.Items {
		p, ok := byID[item.ProductID]
		if !ok || !p.IsActive {
			s.logger.Warn().Str("product_id", item.ProductID.String()).Msg("unknown or inactive product in cart")
			return nil, model.ErrProductNotFound
		}

		image := ""
		if len(p.Images) > 0 {
			image = p.Images[0]
		}
		items[i] = model.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Size:      item.Size,
			Image:     image,
			Quantity:  item.Quantity,
		}
		subtotal += p.Price * float64(item.Quantity)
		categories = append(categories, p.Category)
	}
	subtotal = coupon.Round2(subtotal)

	// Coupon redemption is a separate write from the order insert, the
	// same two-step flow the storefront uses. The usage cap itself is
	// enforced atomically inside the redeem call.
	var discount float64
	if req.CouponCode != nil && *req.CouponCode != "" {
		discount, err = s.coupons.ApplyByCode(ctx, *req.CouponCode, req.UserID, subtotal, categories)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	order := &model.Order{
		ID:             uuid.New(),
		UserID:         req.UserID,
		Items:          items,
		ShippingInfo:   req.ShippingInfo,
		PaymentMethod:  req.PaymentMethod,
		CouponCode:     req.CouponCode,
		DiscountAmount: discount,
		Subtotal:       subtotal,
		ShippingCost:   model.ShippingCost,
		TotalAmount:    coupon.Round2(subtotal - discount + model.ShippingCost),
		Status:         model.StatusPending,
		PaymentStatus:  model.PaymentPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	for _, item := range req.Items {
		if err = s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err = s.orderRepo.Create(ctx, tx, order); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("item_count", len(order.Items)).
		Float64("total", order.TotalAmount).
		Msg("order created")

	return order, nil
}

// GetByID retrieves an order.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// List retrieves orders matching the filter.
func (s *orderService) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListByUser retrieves a user's orders, newest first.
func (s *orderService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Order, error) {
	return s.List(ctx, model.OrderFilter{UserID: &userID, Limit: limit, Offset: offset})
}

// UpdateStatus transitions an order's fulfilment status.
//
// Transitions follow the forward-only table in the model package.
// Moving into confirmed dispatches best-effort notifications; moving
// into shipped stamps the estimated delivery date. Notification
// failures never fail the update.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, req *model.UpdateOrderStatusRequest) (*model.Order, *notification.Result, error) {
	if !model.ValidStatus(req.Status) {
		return nil, nil, model.NewDomainError(model.ErrCodeInvalidStatus, "Unknown order status: "+string(req.Status))
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, nil, model.ErrOrderNotFound
	}

	if !model.CanTransition(order.Status, req.Status) {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("from", string(order.Status)).
			Str("to", string(req.Status)).
			Msg("rejected status transition")
		return nil, nil, &model.InvalidTransitionError{From: order.Status, To: req.Status}
	}

	previous := order.Status
	order.Status = req.Status
	if req.TrackingNumber != nil {
		order.TrackingNumber = req.TrackingNumber
	}
	if req.Notes != nil {
		order.Notes = req.Notes
	}
	if req.Status == model.StatusShipped && previous != model.StatusShipped {
		eta := time.Now().Add(estimatedDeliveryWindow)
		order.EstimatedDelivery = &eta
	}
	order.UpdatedAt = time.Now()

	if err := s.orderRepo.UpdateStatus(ctx, order); err != nil {
		return nil, nil, err
	}

	var result *notification.Result
	if req.Status == model.StatusConfirmed && previous != model.StatusConfirmed {
		r := s.dispatcher.OrderConfirmed(ctx, order)
		result = &r
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("from", string(previous)).
		Str("to", string(req.Status)).
		Msg("order status updated")

	return order, result, nil
}

// ConfirmPayment attaches the buyer's transaction number and marks the
// payment completed. The fulfilment status stays put; confirming the
// order remains an admin action.
func (s *orderService) ConfirmPayment(ctx context.Context, id uuid.UUID, transactionNumber string) (*model.Order, error) {
	transactionNumber = strings.TrimSpace(transactionNumber)
	if transactionNumber == "" {
		return nil, model.ErrTransactionNumRequired
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	if order.PaymentStatus == model.PaymentCompleted {
		return nil, model.ErrPaymentAlreadyConfirmed
	}

	order.TransactionNumber = &transactionNumber
	order.PaymentStatus = model.PaymentCompleted
	order.UpdatedAt = time.Now()

	if err := s.orderRepo.UpdatePayment(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Msg("payment confirmed by buyer")

	return order, nil
}

// validateOrderRequest validates the checkout payload. Every rejection
// is a DomainError so the handler maps it to a 4xx without inspecting
// the message.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "Order request body is required")
	}

	if len(req.Items) == 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "Order must contain at least one item")
	}

	for i, item := range req.Items {
		if item.ProductID == uuid.Nil {
			return model.NewDomainError(model.ErrCodeMissingField,
				fmt.Sprintf("Item %d is missing a product ID", i))
		}
		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Str("product_id", item.ProductID.String()).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	switch req.PaymentMethod {
	case model.PaymentMethodStripe, model.PaymentMethodBankTransfer, model.PaymentMethodUPI:
	default:
		return model.NewDomainError(model.ErrCodeMissingField,
			fmt.Sprintf("Unsupported payment method: %s", req.PaymentMethod))
	}

	info := req.ShippingInfo
	if info.FullName == "" || info.Address == "" || info.City == "" || info.Phone == "" {
		return model.NewDomainError(model.ErrCodeMissingField,
			"Shipping info must include full name, phone, address and city")
	}

	return nil
}
