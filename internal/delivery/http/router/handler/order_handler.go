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

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler holds dependencies for order-related handlers
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// OrderLineRequest is one product/quantity pair in an order request.
// Prices are intentionally absent; the server re-prices every line.
type OrderLineRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// PlaceOrderRequest represents the request body for placing an order
type PlaceOrderRequest struct {
	CustomerName     string              `json:"customerName" validate:"required"`
	CustomerEmail    string              `json:"customerEmail" validate:"required,email"`
	Items            []OrderLineRequest  `json:"items" validate:"required,min=1,dive"`
	ShippingAddress  AddressRequest      `json:"shippingAddress" validate:"required"`
	BillingRequested bool                `json:"billingRequested"`
	BillingDetails   *BillingInfoRequest `json:"billingDetails" validate:"omitempty"`
	Password         string              `json:"password"`
}

// UpdateOrderRequest represents a partial order status update
type UpdateOrderRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
}

// PlaceOrder handles order placement for guests and authenticated customers
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := usecase.PlaceOrderInput{
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		ShippingAddress:  req.ShippingAddress.toEntity(),
		BillingRequested: req.BillingRequested,
		Password:         req.Password,
	}
	for _, line := range req.Items {
		input.Items = append(input.Items, usecase.OrderLineInput{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	if req.BillingDetails != nil {
		billing := req.BillingDetails.toEntity()
		input.BillingDetails = &billing
	}

	// Optional authentication: a logged-in customer owns the order directly.
	if userID, ok := c.Get("userID").(uuid.UUID); ok {
		input.UserID = &userID
	}

	output, err := h.orderUC.PlaceOrder(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, output, "Order placed successfully")
}

// GetOrder handles retrieving one order by ID
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}

// ListOrders handles retrieving all orders for back-office views
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.orderUC.ListOrders(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// ListMyOrders handles retrieving the authenticated customer's own orders
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	orders, err := h.orderUC.ListOrdersByUser(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// UpdateOrder handles a partial fulfillment/payment status update
func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	var req UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order update input")
	}

	input := usecase.UpdateOrderInput{OrderID: id}
	if req.Status != nil {
		status := entity.OrderStatus(*req.Status)
		input.Status = &status
	}
	if req.PaymentStatus != nil {
		paymentStatus := entity.PaymentStatus(*req.PaymentStatus)
		input.PaymentStatus = &paymentStatus
	}

	order, err := h.orderUC.UpdateStatus(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order updated successfully")
}

// DeleteOrder handles removing an order record
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	if err := h.orderUC.DeleteOrder(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Order deleted successfully"}, "Order deleted successfully")
}

// PaymentQR streams a PNG QR code carrying the bank-transfer reference
func (h *OrderHandler) PaymentQR(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	png, err := h.orderUC.PaymentQR(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
