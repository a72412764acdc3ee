package usecase

import (
	"context"

	"tienda/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateRequestInput defines the data a seller files for a restock.
type CreateRequestInput struct {
	SellerID          uuid.UUID
	ProductID         uuid.UUID
	QuantityRequested int
	Notes             string
}

// TransitionRequestInput defines an admin status transition on a request.
type TransitionRequestInput struct {
	RequestID  uuid.UUID
	Status     entity.RequestStatus
	AdminNotes string
}

// RequestUsecase defines the interface for restock request workflows.
type RequestUsecase interface {
	CreateRequest(ctx context.Context, input CreateRequestInput) (*entity.ProductRequest, error)
	ListRequests(ctx context.Context) ([]*entity.ProductRequest, error)
	ListRequestsBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.ProductRequest, error)
	TransitionStatus(ctx context.Context, input TransitionRequestInput) (*entity.ProductRequest, error)
}
