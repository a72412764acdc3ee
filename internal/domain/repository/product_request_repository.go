package repository

import (
	"context"
	"errors"

	"tienda/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRequestNotFound is a domain-specific error returned when a product request is not found.
var ErrRequestNotFound = errors.New("product request not found")

// ProductRequestRepository defines the standard operations for restock request persistence.
type ProductRequestRepository interface {
	// FindByID retrieves a single product request by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ProductRequest, error)

	// List retrieves all product requests, newest first.
	List(ctx context.Context) ([]*entity.ProductRequest, error)

	// ListBySeller retrieves the requests filed by the given seller, newest first.
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.ProductRequest, error)

	// Create persists a new product request entity.
	Create(ctx context.Context, request *entity.ProductRequest) error

	// Update modifies an existing product request entity in the storage.
	Update(ctx context.Context, request *entity.ProductRequest) error
}
