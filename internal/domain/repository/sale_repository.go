package repository

import (
	"context"
	"time"

	"tienda/internal/domain/entity"
)

// SaleRepository defines the standard operations for sale record persistence.
// Sale records are append-only; there is no update or delete.
type SaleRepository interface {
	// Create persists a new sale record with its line items.
	Create(ctx context.Context, sale *entity.SaleRecord) error

	// List retrieves all sale records, newest first.
	List(ctx context.Context) ([]*entity.SaleRecord, error)

	// ListBetween retrieves the sale records created in [from, to), newest first.
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.SaleRecord, error)
}
