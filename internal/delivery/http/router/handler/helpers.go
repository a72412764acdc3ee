package handler

import (
	"net/http"

	"tienda/internal/delivery/http/response"
	"tienda/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// userIDFromContext extracts the authenticated user ID set by the auth middleware.
func userIDFromContext(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get("userID").(uuid.UUID)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid user ID in token")
	}

	return userID, nil
}

// roleFromContext extracts the authenticated role set by the auth middleware.
func roleFromContext(c echo.Context) (entity.Role, error) {
	roleStr, ok := c.Get("role").(string)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid role in token")
	}

	return entity.Role(roleStr), nil
}

// AddressRequest represents a postal address in request bodies.
type AddressRequest struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state"`
	Zip     string `json:"zip" validate:"required"`
	Country string `json:"country" validate:"required"`
	Phone   string `json:"phone"`
}

func (r AddressRequest) toEntity() entity.Address {
	return entity.Address{
		Street:  r.Street,
		City:    r.City,
		State:   r.State,
		Zip:     r.Zip,
		Country: r.Country,
		Phone:   r.Phone,
	}
}

// BillingInfoRequest represents invoicing details in request bodies.
type BillingInfoRequest struct {
	RFC           string         `json:"rfc" validate:"required"`
	RazonSocial   string         `json:"razonSocial" validate:"required"`
	CFDIUse       string         `json:"cfdiUse"`
	FiscalAddress AddressRequest `json:"fiscalAddress"`
	Email         string         `json:"email" validate:"omitempty,email"`
}

func (r BillingInfoRequest) toEntity() entity.BillingInfo {
	return entity.BillingInfo{
		RFC:           r.RFC,
		RazonSocial:   r.RazonSocial,
		CFDIUse:       r.CFDIUse,
		FiscalAddress: r.FiscalAddress.toEntity(),
		Email:         r.Email,
	}
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
