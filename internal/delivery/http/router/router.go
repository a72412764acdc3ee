// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"tienda/internal/delivery/http/middleware"
	"tienda/internal/delivery/http/router/handler"
	"tienda/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	ProductHandler *handler.ProductHandler
	OrderHandler   *handler.OrderHandler
	SaleHandler    *handler.SaleHandler
	RequestHandler *handler.RequestHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	productHandler *handler.ProductHandler
	orderHandler   *handler.OrderHandler
	saleHandler    *handler.SaleHandler
	requestHandler *handler.RequestHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		productHandler: params.ProductHandler,
		orderHandler:   params.OrderHandler,
		saleHandler:    params.SaleHandler,
		requestHandler: params.RequestHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	admin := entity.RoleAdmin.String()
	seller := entity.RoleSeller.String()

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.accountHandler.Register)
		authGroup.POST("/login", r.accountHandler.Login)
	}

	// Profile routes that require authentication
	profileGroup := e.Group("/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.GET("", r.accountHandler.GetProfile)
		profileGroup.PUT("", r.accountHandler.UpdateProfile)
	}

	// Catalog routes: browsing is public, mutation is admin-only
	productGroup := e.Group("/products")
	{
		productGroup.GET("", r.productHandler.ListProducts)
		productGroup.GET("/:id", r.productHandler.GetProduct)

		adminOnly := []echo.MiddlewareFunc{r.authMiddleware.Authenticate, r.authMiddleware.RequireRole(admin)}
		productGroup.POST("", r.productHandler.CreateProduct, adminOnly...)
		productGroup.PUT("/:id", r.productHandler.UpdateProduct, adminOnly...)
		productGroup.DELETE("/:id", r.productHandler.DeleteProduct, adminOnly...)
		productGroup.POST("/:id/image", r.productHandler.UploadProductImage, adminOnly...)
	}

	// Order routes: placement works for guests and logged-in customers,
	// management is admin-only
	orderGroup := e.Group("/orders")
	{
		orderGroup.POST("", r.orderHandler.PlaceOrder, r.authMiddleware.OptionalAuthenticate)
		orderGroup.GET("/mine", r.orderHandler.ListMyOrders, r.authMiddleware.Authenticate)

		// The order ID is an unguessable capability, so guests can fetch
		// their payment QR without an account.
		orderGroup.GET("/:id/payment-qr", r.orderHandler.PaymentQR)

		adminOnly := []echo.MiddlewareFunc{r.authMiddleware.Authenticate, r.authMiddleware.RequireRole(admin)}
		orderGroup.GET("", r.orderHandler.ListOrders, adminOnly...)
		orderGroup.GET("/:id", r.orderHandler.GetOrder, adminOnly...)
		orderGroup.PUT("/:id", r.orderHandler.UpdateOrder, adminOnly...)
		orderGroup.DELETE("/:id", r.orderHandler.DeleteOrder, adminOnly...)
	}

	// Sale routes: sellers and admins log sales, admins read the ledger
	saleGroup := e.Group("/sales")
	saleGroup.Use(r.authMiddleware.Authenticate)
	{
		saleGroup.POST("", r.saleHandler.LogSale, r.authMiddleware.RequireRole(seller, admin))
		saleGroup.GET("", r.saleHandler.ListSales, r.authMiddleware.RequireRole(admin))
		saleGroup.GET("/summary", r.saleHandler.Summary, r.authMiddleware.RequireRole(admin))
	}

	// Restock request routes
	requestGroup := e.Group("/product-requests")
	requestGroup.Use(r.authMiddleware.Authenticate)
	{
		requestGroup.POST("", r.requestHandler.CreateRequest, r.authMiddleware.RequireRole(seller))
		requestGroup.GET("", r.requestHandler.ListRequests, r.authMiddleware.RequireRole(seller, admin))
		requestGroup.PUT("/:id/status", r.requestHandler.TransitionStatus, r.authMiddleware.RequireRole(admin))
	}

	// Admin provisioning of seller accounts
	accountGroup := e.Group("/accounts")
	accountGroup.Use(r.authMiddleware.Authenticate)
	accountGroup.Use(r.authMiddleware.RequireRole(admin))
	{
		accountGroup.POST("/sellers", r.accountHandler.CreateSeller)
	}
}
