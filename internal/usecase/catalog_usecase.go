// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"io"

	"tienda/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Input DTOs ---

// CreateProductInput defines the data required to add a product to the catalog.
type CreateProductInput struct {
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	Stock       int
	ImageURL    string
}

// UpdateProductInput defines the data for a full product update.
type UpdateProductInput struct {
	ID          uuid.UUID
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	Stock       int
	ImageURL    string
}

// UploadImageInput carries an image stream for a product.
type UploadImageInput struct {
	ProductID   uuid.UUID
	ContentType string
	Body        io.Reader
}

// CatalogUsecase defines the interface for product catalog operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type CatalogUsecase interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, input UpdateProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	UploadProductImage(ctx context.Context, input UploadImageInput) (*entity.Product, error)
}
