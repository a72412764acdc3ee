package usecase

import (
	"context"

	"tienda/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// OrderLineInput is one requested product/quantity pair. Prices are never
// taken from the caller; the workflow re-prices from the live product rows.
type OrderLineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// PlaceOrderInput defines the data required to place an order.
// UserID is set from the bearer token when present; Password triggers guest
// account creation when no UserID is given.
type PlaceOrderInput struct {
	CustomerName     string
	CustomerEmail    string
	Items            []OrderLineInput
	ShippingAddress  entity.Address
	BillingRequested bool
	BillingDetails   *entity.BillingInfo
	UserID           *uuid.UUID
	Password         string
}

// UpdateOrderInput defines a partial status update; nil fields are untouched.
type UpdateOrderInput struct {
	OrderID       uuid.UUID
	Status        *entity.OrderStatus
	PaymentStatus *entity.PaymentStatus
}

// --- Output DTOs ---

// PlaceOrderOutput returns the placed order plus, for guest promotions, the
// newly created account and its access token.
type PlaceOrderOutput struct {
	Order   *entity.Order
	Account *entity.Account
	Token   string
}

// OrderUsecase defines the interface for order placement and management.
type OrderUsecase interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlaceOrderOutput, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	ListOrders(ctx context.Context) ([]*entity.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, input UpdateOrderInput) (*entity.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	PaymentQR(ctx context.Context, id uuid.UUID) ([]byte, error)
}
