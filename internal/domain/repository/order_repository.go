package repository

import (
	"context"
	"errors"

	"tienda/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is a domain-specific error returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// FindByID retrieves a single order with its line items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// List retrieves all orders, newest first.
	List(ctx context.Context) ([]*entity.Order, error)

	// ListByUser retrieves the orders owned by the given account, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// Create persists a new order entity with its line items.
	Create(ctx context.Context, order *entity.Order) error

	// UpdateStatus persists the order's current status and payment status.
	UpdateStatus(ctx context.Context, order *entity.Order) error

	// Delete removes an order and its line items from the storage.
	Delete(ctx context.Context, id uuid.UUID) error
}
