package handler

import (
	"log/slog"
	"net/http"

	"tienda/internal/delivery/http/response"
	"tienda/internal/domain/entity"
	"tienda/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RequestHandlerParams holds dependencies for RequestHandler, injected by Fx.
type RequestHandlerParams struct {
	fx.In

	RequestUC usecase.RequestUsecase
	Logger    *slog.Logger
}

// RequestHandler holds dependencies for restock-request handlers
type RequestHandler struct {
	requestUC usecase.RequestUsecase
	logger    *slog.Logger
}

// NewRequestHandler is the constructor for RequestHandler
func NewRequestHandler(params RequestHandlerParams) *RequestHandler {
	return &RequestHandler{
		requestUC: params.RequestUC,
		logger:    params.Logger,
	}
}

// CreateRequestRequest represents the request body for filing a restock request
type CreateRequestRequest struct {
	ProductID         uuid.UUID `json:"productId" validate:"required"`
	QuantityRequested int       `json:"quantityRequested" validate:"required,gt=0"`
	Notes             string    `json:"notes"`
}

// TransitionRequestRequest represents an admin status transition
type TransitionRequestRequest struct {
	Status     string `json:"status" validate:"required"`
	AdminNotes string `json:"adminNotes"`
}

// CreateRequest handles a seller filing a restock request
func (h *RequestHandler) CreateRequest(c echo.Context) error {
	sellerID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req CreateRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid restock request input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	request, err := h.requestUC.CreateRequest(c.Request().Context(), usecase.CreateRequestInput{
		SellerID:          sellerID,
		ProductID:         req.ProductID,
		QuantityRequested: req.QuantityRequested,
		Notes:             req.Notes,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, request, "Restock request created successfully")
}

// ListRequests handles retrieving restock requests.
// Admins see every request; sellers see only their own.
func (h *RequestHandler) ListRequests(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	role, err := roleFromContext(c)
	if err != nil {
		return err
	}

	var requests []*entity.ProductRequest
	if role == entity.RoleAdmin {
		requests, err = h.requestUC.ListRequests(c.Request().Context())
	} else {
		requests, err = h.requestUC.ListRequestsBySeller(c.Request().Context(), userID)
	}
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, requests, "Restock requests retrieved successfully")
}

// TransitionStatus handles an admin moving a request through its lifecycle
func (h *RequestHandler) TransitionStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid request ID")
	}

	var req TransitionRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid transition input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	request, err := h.requestUC.TransitionStatus(c.Request().Context(), usecase.TransitionRequestInput{
		RequestID:  id,
		Status:     entity.RequestStatus(req.Status),
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, request, "Restock request updated successfully")
}
