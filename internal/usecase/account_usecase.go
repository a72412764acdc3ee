package usecase

import (
	"context"

	"tienda/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a customer account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// CreateSellerInput defines the data an admin provides to create a seller.
type CreateSellerInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput defines a partial profile update; nil fields are untouched.
type UpdateProfileInput struct {
	UserID          uuid.UUID
	Name            *string
	DefaultShipping *entity.Address
	DefaultBilling  *entity.BillingInfo
}

// --- Output DTOs ---

// AuthOutput returns the account and its access token after register or login.
type AuthOutput struct {
	Account *entity.Account
	Token   string
}

// AccountUsecase defines the interface for account and auth operations.
type AccountUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)
	CreateSeller(ctx context.Context, input CreateSellerInput) (*entity.Account, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Account, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*entity.Account, error)
}
