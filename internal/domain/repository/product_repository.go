// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"tienda/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is a domain-specific error returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the standard operations for product persistence.
// The application layer will depend on this interface, not the concrete implementation.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDs retrieves the products for the given IDs. Missing IDs are
	// simply absent from the result; callers decide whether that is an error.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error)

	// FindForUpdate retrieves the products for the given IDs while holding
	// row-level write locks for the remainder of the current transaction.
	// Rows are locked in ascending ID order to keep lock acquisition
	// deadlock-free across concurrent adjustments.
	FindForUpdate(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error)

	// List retrieves the whole catalog, newest first.
	List(ctx context.Context) ([]*entity.Product, error)

	// Create persists a new product entity to the storage.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product entity in the storage.
	Update(ctx context.Context, product *entity.Product) error

	// UpdateStock sets the persisted stock of a product.
	UpdateStock(ctx context.Context, id uuid.UUID, stock int) error

	// Delete removes a product from the storage.
	Delete(ctx context.Context, id uuid.UUID) error
}
