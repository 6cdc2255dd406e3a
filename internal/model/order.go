package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// PaymentStatus tracks whether the buyer has paid, independently of the
// fulfilment status.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodStripe       = "stripe"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodUPI          = "upi"
)

// ShippingCost is the flat shipping charge applied to every order.
const ShippingCost = 99.0

// OrderItem is a denormalized snapshot of a product at order time.
// Later changes to the product record do not affect it.
type OrderItem struct {
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Size      string    `json:"size,omitempty" db:"size"`
	Image     string    `json:"image,omitempty" db:"image"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// ShippingInfo is the delivery address snapshot taken at checkout.
type ShippingInfo struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Order is a placed order with item and address snapshots.
type Order struct {
	ID                uuid.UUID     `json:"id" db:"id"`
	UserID            *uuid.UUID    `json:"userId,omitempty" db:"user_id"`
	Items             []OrderItem   `json:"items" db:"items"`
	ShippingInfo      ShippingInfo  `json:"shippingInfo" db:"shipping_info"`
	PaymentMethod     string        `json:"paymentMethod" db:"payment_method"`
	PaymentIntentID   *string       `json:"paymentIntentId,omitempty" db:"payment_intent_id"`
	TransactionNumber *string       `json:"transactionNumber,omitempty" db:"transaction_number"`
	CouponCode        *string       `json:"couponCode,omitempty" db:"coupon_code"`
	DiscountAmount    float64       `json:"discountAmount" db:"discount_amount"`
	Subtotal          float64       `json:"subtotal" db:"subtotal"`
	ShippingCost      float64       `json:"shippingCost" db:"shipping_cost"`
	TotalAmount       float64       `json:"totalAmount" db:"total_amount"`
	Status            OrderStatus   `json:"status" db:"status"`
	PaymentStatus     PaymentStatus `json:"paymentStatus" db:"payment_status"`
	TrackingNumber    *string       `json:"trackingNumber,omitempty" db:"tracking_number"`
	EstimatedDelivery *time.Time    `json:"estimatedDelivery,omitempty" db:"estimated_delivery"`
	Notes             *string       `json:"notes,omitempty" db:"notes"`
	CreatedAt         time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time     `json:"updatedAt" db:"updated_at"`
}

// OrderItemRequest references a live product at checkout time; the
// service converts it into an OrderItem snapshot.
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Size      string    `json:"size,omitempty"`
	Quantity  int       `json:"quantity"`
}

// OrderRequest is the checkout payload.
type OrderRequest struct {
	UserID        *uuid.UUID         `json:"userId,omitempty"`
	Items         []OrderItemRequest `json:"items"`
	ShippingInfo  ShippingInfo       `json:"shippingInfo"`
	PaymentMethod string             `json:"paymentMethod"`
	CouponCode    *string            `json:"couponCode,omitempty"`
}

// UpdateOrderStatusRequest is the admin status-change payload.
type UpdateOrderStatusRequest struct {
	Status         OrderStatus `json:"status"`
	TrackingNumber *string     `json:"trackingNumber,omitempty"`
	Notes          *string     `json:"notes,omitempty"`
}

// ConfirmPaymentRequest carries the buyer-entered transaction reference
// for bank transfer and UPI payments.
type ConfirmPaymentRequest struct {
	TransactionNumber string `json:"transactionNumber"`
}

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status        OrderStatus
	PaymentStatus PaymentStatus
	UserID        *uuid.UUID
	Limit         int
	Offset        int
}

// StatusTransitions is the allowed source -> target table for order
// fulfilment. Forward progression only; cancellation is reachable from
// any non-terminal state.
var StatusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered, StatusCancelled},
	StatusDelivered: {},
	StatusCancelled: {},
}

// CanTransition reports whether an order may move from one status to
// another. Setting the same status again is a no-op and allowed.
func CanTransition(from, to OrderStatus) bool {
	if from == to {
		return true
	}
	for _, allowed := range StatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
