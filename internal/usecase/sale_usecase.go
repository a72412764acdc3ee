package usecase

import (
	"context"
	"time"

	"tienda/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Input DTOs ---

// LogSaleInput defines the data required to record a seller-direct sale.
// SellerRole comes from the bearer token; only sellers and admins pass.
type LogSaleInput struct {
	SellerID   uuid.UUID
	SellerRole entity.Role
	Items      []OrderLineInput
	Notes      string
}

// --- Output DTOs ---

// SalesSummary aggregates sale records over a date range.
type SalesSummary struct {
	From           time.Time
	To             time.Time
	TotalAmount    decimal.Decimal
	RecordCount    int
	UnitsByProduct map[uuid.UUID]int
}

// SaleUsecase defines the interface for sale logging and analytics.
type SaleUsecase interface {
	LogSale(ctx context.Context, input LogSaleInput) (*entity.SaleRecord, error)
	ListSales(ctx context.Context) ([]*entity.SaleRecord, error)
	Summary(ctx context.Context, from, to time.Time) (*SalesSummary, error)
}
