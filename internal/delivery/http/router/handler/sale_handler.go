package handler

import (
	"log/slog"
	"net/http"
	"time"

	"tienda/internal/delivery/http/response"
	"tienda/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SaleHandlerParams holds dependencies for SaleHandler, injected by Fx.
type SaleHandlerParams struct {
	fx.In

	SaleUC usecase.SaleUsecase
	Logger *slog.Logger
}

// SaleHandler holds dependencies for sale-related handlers
type SaleHandler struct {
	saleUC usecase.SaleUsecase
	logger *slog.Logger
}

// NewSaleHandler is the constructor for SaleHandler
func NewSaleHandler(params SaleHandlerParams) *SaleHandler {
	return &SaleHandler{
		saleUC: params.SaleUC,
		logger: params.Logger,
	}
}

// LogSaleRequest represents the request body for recording a direct sale
type LogSaleRequest struct {
	Items []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
	Notes string             `json:"notes"`
}

// LogSale handles recording a seller-direct sale
func (h *SaleHandler) LogSale(c echo.Context) error {
	sellerID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	role, err := roleFromContext(c)
	if err != nil {
		return err
	}

	var req LogSaleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sale input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := usecase.LogSaleInput{
		SellerID:   sellerID,
		SellerRole: role,
		Notes:      req.Notes,
	}
	for _, line := range req.Items {
		input.Items = append(input.Items, usecase.OrderLineInput{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	record, err := h.saleUC.LogSale(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, record, "Sale logged successfully")
}

// ListSales handles retrieving the unified sale ledger
func (h *SaleHandler) ListSales(c echo.Context) error {
	records, err := h.saleUC.ListSales(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, records, "Sales retrieved successfully")
}

// Summary handles aggregating sales over a date range.
// Defaults to the last 30 days when no range is given.
func (h *SaleHandler) Summary(c echo.Context) error {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)

	if v := c.QueryParam("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid 'from' timestamp, expected RFC3339")
		}
		from = parsed
	}
	if v := c.QueryParam("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid 'to' timestamp, expected RFC3339")
		}
		to = parsed
	}

	summary, err := h.saleUC.Summary(c.Request().Context(), from, to)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, summary, "Sales summary computed successfully")
}
