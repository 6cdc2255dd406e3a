package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/model"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/notification"
)

// okSender always delivers.
type okSender struct{}

func (okSender) Send(context.Context, notification.Message) error { return nil }

func newTestDispatcher() *notification.Dispatcher {
	return notification.NewDispatcherWithSenders(okSender{}, okSender{}, okSender{}, zerolog.Nop())
}

func testShippingInfo() model.ShippingInfo {
	return model.ShippingInfo{
		FullName: "Ananya Rao",
		Email:    "ananya@example.com",
		Phone:    "+919876543210",
		Address:  "12 MG Road",
		City:     "Bengaluru",
		State:    "Karnataka",
	}
}

func TestOrderService_Create_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	sareeID := uuid.New()
	kurtiID := uuid.New()
	couponCode := "WELCOME10"

	req := &model.OrderRequest{
		Items: []model.OrderItemRequest{
			{ProductID: sareeID, Quantity: 2, Size: "M"},
			{ProductID: kurtiID, Quantity: 1},
		},
		ShippingInfo:  testShippingInfo(),
		PaymentMethod: model.PaymentMethodUPI,
		CouponCode:    &couponCode,
	}

	products := []model.Product{
		{ID: sareeID, Name: "Banarasi Saree", Price: 500.00, Category: model.CategorySarees, Images: []string{"/uploads/saree.jpg"}, IsActive: true},
		{ID: kurtiID, Name: "Cotton Kurti", Price: 250.00, Category: model.CategoryKurtis, IsActive: true},
	}

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCoupons := new(MockCouponService)
	mockTx := new(MockTx)

	service := NewOrderService(mockOrderRepo, mockProductRepo, mockCoupons, newTestDispatcher(), logger)

	mockProductRepo.On("GetByIDs", ctx, []uuid.UUID{sareeID, kurtiID}).Return(products, nil)
	mockCoupons.On("ApplyByCode", ctx, couponCode, (*uuid.UUID)(nil), 1250.00, mock.AnythingOfType("[]string")).Return(125.00, nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockProductRepo.On("DecrementStock", ctx, mockTx, sareeID, 2).Return(nil)
	mockProductRepo.On("DecrementStock", ctx, mockTx, kurtiID, 1).Return(nil)
	mockOrderRepo.On("Create", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	order, err := service.Create(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, "Banarasi Saree", order.Items[0].Name)
	assert.Equal(t, "/uploads/saree.jpg", order.Items[0].Image)
	assert.Equal(t, 1250.00, order.Subtotal)
	assert.Equal(t, 125.00, order.DiscountAmount)
	assert.Equal(t, model.ShippingCost, order.ShippingCost)
	assert.Equal(t, 1224.00, order.TotalAmount)
	assert.Equal(t, model.StatusPending, order.Status)
	assert.Equal(t, model.PaymentPending, order.PaymentStatus)

	mockProductRepo.AssertExpectations(t)
	mockCoupons.AssertExpectations(t)
	mockOrderRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestOrderService_Create_WithoutCoupon(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	productID := uuid.New()
	req := &model.OrderRequest{
		Items:         []model.OrderItemRequest{{ProductID: productID, Quantity: 1}},
		ShippingInfo:  testShippingInfo(),
		PaymentMethod: model.PaymentMethodBankTransfer,
	}

	products := []model.Product{
		{ID: productID, Name: "Silk Dupatta", Price: 399.00, Category: model.CategoryAccessories, IsActive: true},
	}

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCoupons := new(MockCouponService)
	mockTx := new(MockTx)

	service := NewOrderService(mockOrderRepo, mockProductRepo, mockCoupons, newTestDispatcher(), logger)

	mockProductRepo.On("GetByIDs", ctx, []uuid.UUID{productID}).Return(products, nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockProductRepo.On("DecrementStock", ctx, mockTx, productID, 1).Return(nil)
	mockOrderRepo.On("Create", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	order, err := service.Create(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, 0.0, order.DiscountAmount)
	assert.Equal(t, 498.00, order.TotalAmount)

	mockCoupons.AssertNotCalled(t, "ApplyByCode")
	mockOrderRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestOrderService_Create_InvalidQuantity(t *testing.T) {
	ctx := context.Background()

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCoupons := new(MockCouponService)

	service := NewOrderService(mockOrderRepo, mockProductRepo, mockCoupons, newTestDispatcher(), zerolog.Nop())

	req := &model.OrderRequest{
		Items:         []model.OrderItemRequest{{ProductID: uuid.New(), Quantity: 0}},
		ShippingInfo:  testShippingInfo(),
		PaymentMethod: model.PaymentMethodUPI,
	}

	order, err := service.Create(ctx, req)

	require.Error(t, err)
	assert.Equal(t, model.ErrInvalidQuantity, err)
	assert.Nil(t, order)
	mockProductRepo.AssertNotCalled(t, "GetByIDs")
	mockOrderRepo.AssertNotCalled(t, "BeginTx")
}

// Checkout validation failures surface as typed domain errors, so the
// handler never has to inspect error text to pick a status code.
func TestOrderService_Create_ValidationErrorsAreTyped(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		req  *model.OrderRequest
	}{
		{
			name: "no items",
			req: &model.OrderRequest{
				ShippingInfo:  testShippingInfo(),
				PaymentMethod: model.PaymentMethodUPI,
			},
		},
		{
			name: "unsupported payment method",
			req: &model.OrderRequest{
				Items:         []model.OrderItemRequest{{ProductID: uuid.New(), Quantity: 1}},
				ShippingInfo:  testShippingInfo(),
				PaymentMethod: "cash_on_delivery",
			},
		},
		{
			name: "missing shipping info",
			req: &model.OrderRequest{
				Items:         []model.OrderItemRequest{{ProductID: uuid.New(), Quantity: 1}},
				PaymentMethod: model.PaymentMethodUPI,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockOrderRepo := new(MockOrderRepository)
			mockProductRepo := new(MockProductRepository)
			mockCoupons := new(MockCouponService)

			service := NewOrderService(mockOrderRepo, mockProductRepo, mockCoupons, newTestDispatcher(), zerolog.Nop())

			order, err := service.Create(ctx, tt.req)

			require.Error(t, err)
			assert.Nil(t, order)

			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, model.ErrCodeMissingField, domainErr.Code)
			mockOrderRepo.AssertNotCalled(t, "BeginTx")
		})
	}
}

func TestOrderService_Create_ProductNotFound(t *testing.T) {
	ctx := context.Background()

	productID := uuid.New()
	req := &model.OrderRequest{
		Items:         []model.OrderItemRequest{{ProductID: productID, Quantity: 1}},
		ShippingInfo:  testShippingInfo(),
		PaymentMethod: model.PaymentMethodUPI,
	}

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCoupons := new(MockCouponService)

	service := NewOrderService(mockOrderRepo, mockProductRepo, mockCoupons, newTestDispatcher(), zerolog.Nop())

	mockProductRepo.On("GetByIDs", ctx, []uuid.UUID{productID}).Return([]model.Product{}, nil)

	order, err := service.Create(ctx, req)

	require.Error(t, err)
	assert.Equal(t, model.ErrProductNotFound, err)
	assert.Nil(t, order)
	mockOrderRepo.AssertNotCalled(t, "BeginTx")
}

func TestOrderService_Create_OutOfStockRollsBack(t *testing.T) {
	ctx := context.Background()

	productID := uuid.New()
	req := &model.OrderRequest{
		Items:         []model.OrderItemRequest{{ProductID: productID, Quantity: 3}},
		ShippingInfo:  testShippingInfo(),
		PaymentMethod: model.PaymentMethodUPI,
	}

	products := []model.Product{
		{ID: productID, Name: "Lehenga", Price: 2999.00, Category: model.CategoryLehengas, IsActive: true},
	}

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCoupons := new(MockCouponService)
	mockTx := new(MockTx)

	service := NewOrderService(mockOrderRepo, mockProductRepo, mockCoupons, newTestDispatcher(), zerolog.Nop())

	mockProductRepo.On("GetByIDs", ctx, []uuid.UUID{productID}).Return(products, nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockProductRepo.On("DecrementStock", ctx, mockTx, productID, 3).Return(model.ErrOutOfStock)
	mockTx.On("Rollback", ctx).Return(nil)

	order, err := service.Create(ctx, req)

	require.Error(t, err)
	assert.Equal(t, model.ErrOutOfStock, err)
	assert.Nil(t, order)
	assert.True(t, mockTx.rolledBack)
	mockOrderRepo.AssertNotCalled(t, "Create")
}

func TestOrderService_Create_CouponRejected(t *testing.T) {
	ctx := context.Background()

	productID := uuid.New()
	couponCode := "EXPIRED5"
	req := &model.OrderRequest{
		Items:         []model.OrderItemRequest{{ProductID: productID, Quantity: 1}},
		ShippingInfo:  testShippingInfo(),
		PaymentMethod: model.PaymentMethodUPI,
		CouponCode:    &couponCode,
	}

	products := []model.Product{
		{ID: productID, Name: "Jhumka", Price: 199.00, Category: model.CategoryJewellery, IsActive: true},
	}

	mockOrderRepo := new(MockOrderRepository)
	mockProductRepo := new(MockProductRepository)
	mockCoupons := new(MockCouponService)

	service := NewOrderService(mockOrderRepo, mockProductRepo, mockCoupons, newTestDispatcher(), zerolog.Nop())

	mockProductRepo.On("GetByIDs", ctx, []uuid.UUID{productID}).Return(products, nil)
	mockCoupons.On("ApplyByCode", ctx, couponCode, (*uuid.UUID)(nil), 199.00, mock.AnythingOfType("[]string")).
		Return(0.0, error(model.ErrCouponInactive))

	order, err := service.Create(ctx, req)

	require.Error(t, err)
	assert.Equal(t, model.ErrCouponInactive, err)
	assert.Nil(t, order)
	mockOrderRepo.AssertNotCalled(t, "BeginTx")
}

func TestOrderService_UpdateStatus_ConfirmNotifies(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	existing := &model.Order{
		ID:           orderID,
		Status:       model.StatusPending,
		ShippingInfo: testShippingInfo(),
	}

	mockOrderRepo := new(MockOrderRepository)
	service := NewOrderService(mockOrderRepo, new(MockProductRepository), new(MockCouponService), newTestDispatcher(), zerolog.Nop())

	mockOrderRepo.On("GetByID", ctx, orderID).Return(existing, nil)
	mockOrderRepo.On("UpdateStatus", ctx, mock.AnythingOfType("*model.Order")).Return(nil)

	order, result, err := service.UpdateStatus(ctx, orderID, &model.UpdateOrderStatusRequest{Status: model.StatusConfirmed})

	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, order.Status)
	require.NotNil(t, result)
	assert.True(t, result.Email)
	assert.True(t, result.SMS)
	assert.True(t, result.WhatsApp)
}

func TestOrderService_UpdateStatus_ShippedSetsEstimatedDelivery(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	existing := &model.Order{ID: orderID, Status: model.StatusConfirmed, ShippingInfo: testShippingInfo()}
	tracking := "TRK123"

	mockOrderRepo := new(MockOrderRepository)
	service := NewOrderService(mockOrderRepo, new(MockProductRepository), new(MockCouponService), newTestDispatcher(), zerolog.Nop())

	mockOrderRepo.On("GetByID", ctx, orderID).Return(existing, nil)
	mockOrderRepo.On("UpdateStatus", ctx, mock.AnythingOfType("*model.Order")).Return(nil)

	order, result, err := service.UpdateStatus(ctx, orderID, &model.UpdateOrderStatusRequest{
		Status:         model.StatusShipped,
		TrackingNumber: &tracking,
	})

	require.NoError(t, err)
	assert.Nil(t, result, "only the confirmed transition notifies")
	require.NotNil(t, order.EstimatedDelivery)
	assert.WithinDuration(t, time.Now().Add(5*24*time.Hour), *order.EstimatedDelivery, time.Minute)
	require.NotNil(t, order.TrackingNumber)
	assert.Equal(t, "TRK123", *order.TrackingNumber)
}

func TestOrderService_UpdateStatus_InvalidTransition(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	existing := &model.Order{ID: orderID, Status: model.StatusDelivered}

	mockOrderRepo := new(MockOrderRepository)
	service := NewOrderService(mockOrderRepo, new(MockProductRepository), new(MockCouponService), newTestDispatcher(), zerolog.Nop())

	mockOrderRepo.On("GetByID", ctx, orderID).Return(existing, nil)

	order, _, err := service.UpdateStatus(ctx, orderID, &model.UpdateOrderStatusRequest{Status: model.StatusPending})

	require.Error(t, err)
	var transitionErr *model.InvalidTransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, model.StatusDelivered, transitionErr.From)
	assert.Nil(t, order)
	mockOrderRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestOrderService_UpdateStatus_SameStatusNoop(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	existing := &model.Order{ID: orderID, Status: model.StatusConfirmed, ShippingInfo: testShippingInfo()}

	mockOrderRepo := new(MockOrderRepository)
	service := NewOrderService(mockOrderRepo, new(MockProductRepository), new(MockCouponService), newTestDispatcher(), zerolog.Nop())

	mockOrderRepo.On("GetByID", ctx, orderID).Return(existing, nil)
	mockOrderRepo.On("UpdateStatus", ctx, mock.AnythingOfType("*model.Order")).Return(nil)

	order, result, err := service.UpdateStatus(ctx, orderID, &model.UpdateOrderStatusRequest{Status: model.StatusConfirmed})

	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, order.Status)
	assert.Nil(t, result, "re-confirming must not notify again")
}

func TestOrderService_ConfirmPayment_Success(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	existing := &model.Order{
		ID:            orderID,
		Status:        model.StatusPending,
		PaymentStatus: model.PaymentPending,
	}

	mockOrderRepo := new(MockOrderRepository)
	service := NewOrderService(mockOrderRepo, new(MockProductRepository), new(MockCouponService), newTestDispatcher(), zerolog.Nop())

	mockOrderRepo.On("GetByID", ctx, orderID).Return(existing, nil)
	mockOrderRepo.On("UpdatePayment", ctx, mock.AnythingOfType("*model.Order")).Return(nil)

	order, err := service.ConfirmPayment(ctx, orderID, " UTR1234567890 ")

	require.NoError(t, err)
	assert.Equal(t, model.PaymentCompleted, order.PaymentStatus)
	require.NotNil(t, order.TransactionNumber)
	assert.Equal(t, "UTR1234567890", *order.TransactionNumber)
	assert.Equal(t, model.StatusPending, order.Status, "payment confirmation must not advance fulfilment")
}

func TestOrderService_ConfirmPayment_MissingTransactionNumber(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	service := NewOrderService(mockOrderRepo, new(MockProductRepository), new(MockCouponService), newTestDispatcher(), zerolog.Nop())

	_, err := service.ConfirmPayment(context.Background(), uuid.New(), "   ")

	require.Error(t, err)
	assert.Equal(t, model.ErrTransactionNumRequired, err)
	mockOrderRepo.AssertNotCalled(t, "GetByID")
}

func TestOrderService_ConfirmPayment_AlreadyConfirmed(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	existing := &model.Order{ID: orderID, PaymentStatus: model.PaymentCompleted}

	mockOrderRepo := new(MockOrderRepository)
	service := NewOrderService(mockOrderRepo, new(MockProductRepository), new(MockCouponService), newTestDispatcher(), zerolog.Nop())

	mockOrderRepo.On("GetByID", ctx, orderID).Return(existing, nil)

	_, err := service.ConfirmPayment(ctx, orderID, "UTR999")

	require.Error(t, err)
	assert.Equal(t, model.ErrPaymentAlreadyConfirmed, err)
	mockOrderRepo.AssertNotCalled(t, "UpdatePayment")
}
