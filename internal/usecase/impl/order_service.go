package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "tienda/internal/delivery/context"
	"tienda/internal/domain/entity"
	domainerrors "tienda/internal/domain/errors"
	"tienda/internal/domain/repository"
	"tienda/internal/domain/service"
	"tienda/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager      repository.TransactionManager
	orderRepo      repository.OrderRepository
	hasher         service.PasswordHasher
	tokenService   service.TokenService
	qrcodeService  service.QRCodeService
	eventPublisher service.EventPublisher
	logger         *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	OrderRepo      repository.OrderRepository
	Hasher         service.PasswordHasher
	TokenService   service.TokenService
	QRCodeService  service.QRCodeService
	EventPublisher service.EventPublisher
	Logger         *slog.Logger
}

// NewOrderService is the constructor for orderService. It receives all dependencies as interfaces.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:      params.TxManager,
		orderRepo:      params.OrderRepo,
		hasher:         params.Hasher,
		tokenService:   params.TokenService,
		qrcodeService:  params.QRCodeService,
		eventPublisher: params.EventPublisher,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// PlaceOrder orchestrates the complete checkout: resolve the owning account
// (promoting a guest when a password is supplied), debit stock, freeze price
// snapshots, and persist the order with its paired sale record. Everything
// between the first stock check and the last write happens in one transaction.
func (srv *orderService) PlaceOrder(ctx context.Context, input usecase.PlaceOrderInput) (*usecase.PlaceOrderOutput, error) {
	if err := validateOrderInput(input); err != nil {
		return nil, err
	}

	// Bcrypt is CPU-bound; hash before entering the transaction.
	var passwordHash string
	if input.UserID == nil && input.Password != "" {
		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash guest password", slog.Any("error", err))

			return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash guest password")
		}
		passwordHash = hash
	}

	srv.log(ctx).Info("Placing order", slog.String("email", input.CustomerEmail), slog.Int("lines", len(input.Items)))

	var placedOrder *entity.Order
	var ownerAccount *entity.Account
	var createdAccount bool

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		products := repoFactory.ProductRepo()
		orders := repoFactory.OrderRepo()
		sales := repoFactory.SaleRepo()
		accounts := repoFactory.AccountRepo()

		owner, isNew, err := srv.resolveOwner(ctx, accounts, input, passwordHash)
		if err != nil {
			return err
		}

		// Lock and debit first; the locked rows make the price reads below
		// consistent with the stock we just took.
		if err := adjustStock(ctx, products, debitLines(input.Items), entity.StockDebit); err != nil {
			return err
		}

		items, total, err := priceOrderLines(ctx, products, input.Items)
		if err != nil {
			return err
		}

		order := &entity.Order{
			CustomerName:     input.CustomerName,
			CustomerEmail:    input.CustomerEmail,
			Items:            items,
			TotalAmount:      total,
			Status:           entity.OrderPending,
			PaymentStatus:    entity.PaymentUnpaid,
			ShippingAddress:  input.ShippingAddress,
			BillingRequested: input.BillingRequested,
			BillingDetails:   input.BillingDetails,
		}
		if owner != nil {
			order.UserID = &owner.ID
		}

		if err := orders.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		sale := onlineSaleRecord(order)
		if err := sales.Create(ctx, sale); err != nil {
			return errors.Wrap(err, "failed to create paired sale record")
		}

		if owner != nil {
			refreshAccountDefaults(owner, order)
			if err := accounts.Update(ctx, owner); err != nil {
				return errors.Wrap(err, "failed to refresh account defaults")
			}
		}

		placedOrder = order
		ownerAccount = owner
		createdAccount = isNew

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Order placement failed", slog.String("email", input.CustomerEmail), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute order placement transaction")
	}

	output := &usecase.PlaceOrderOutput{Order: placedOrder}

	// Token issuance has no side effect to roll back, so it stays outside
	// the transaction.
	if createdAccount {
		token, err := srv.tokenService.GenerateToken(ownerAccount.ID, ownerAccount.Role)
		if err != nil {
			srv.log(ctx).Error("Failed to generate token for promoted guest", slog.Any("userID", ownerAccount.ID), slog.Any("error", err))

			return nil, errors.Wrap(err, "failed to generate token for new account")
		}
		output.Account = ownerAccount
		output.Token = token
	}

	srv.publishEvent(ctx, service.EventOrderPlaced, placedOrder.ID, placedOrder.TotalAmount)

	srv.log(ctx).Info("Order placed", slog.Any("orderID", placedOrder.ID), slog.String("total", placedOrder.TotalAmount.String()))

	return output, nil
}

// resolveOwner returns the account that will own the order, creating one for
// a guest who supplied a password. A pure guest (no password) owns nothing.
func (srv *orderService) resolveOwner(ctx context.Context, accounts repository.AccountRepository, input usecase.PlaceOrderInput, passwordHash string) (*entity.Account, bool, error) {
	if input.UserID != nil {
		owner, err := accounts.FindByID(ctx, *input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return nil, false, errors.Wrap(domainerrors.ErrNotFound, "order owner account not found")
			}

			return nil, false, errors.Wrap(err, "failed to load order owner account")
		}

		return owner, false, nil
	}

	if input.Password == "" {
		return nil, false, nil
	}

	_, err := accounts.FindByEmail(ctx, input.CustomerEmail)
	if err == nil {
		return nil, false, errors.Wrap(domainerrors.ErrDuplicateAccount, "guest checkout email already registered")
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, false, errors.Wrap(err, "failed to check guest email")
	}

	newAccount := &entity.Account{
		Email:        input.CustomerEmail,
		Name:         input.CustomerName,
		Role:         entity.RoleCustomer,
		PasswordHash: passwordHash,
	}
	if err := accounts.Create(ctx, newAccount); err != nil {
		return nil, false, errors.Wrap(err, "failed to create account for guest checkout")
	}

	srv.log(ctx).Info("Guest promoted to account", slog.Any("userID", newAccount.ID), slog.String("email", newAccount.Email))

	return newAccount, true, nil
}

// GetOrder retrieves a single order with its line items.
func (srv *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "order not found")
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return order, nil
}

// ListOrders retrieves all orders, newest first.
func (srv *orderService) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// ListOrdersByUser retrieves the orders owned by an account.
func (srv *orderService) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders by user")
	}

	return orders, nil
}

// UpdateStatus applies a partial status update. The fulfillment and payment
// axes move independently.
func (srv *orderService) UpdateStatus(ctx context.Context, input usecase.UpdateOrderInput) (*entity.Order, error) {
	if input.Status == nil && input.PaymentStatus == nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "no status fields given")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails(input.Status.String()).
			WrapMessage("unknown order status")
	}
	if input.PaymentStatus != nil && !input.PaymentStatus.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails(input.PaymentStatus.String()).
			WrapMessage("unknown payment status")
	}

	var updated *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orders := repoFactory.OrderRepo()

		order, err := orders.FindByID(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "order not found")
			}

			return errors.Wrap(err, "failed to find order for status update")
		}

		if input.Status != nil {
			order.Status = *input.Status
		}
		if input.PaymentStatus != nil {
			order.PaymentStatus = *input.PaymentStatus
		}

		if err := orders.UpdateStatus(ctx, order); err != nil {
			return errors.Wrap(err, "failed to update order status")
		}

		updated = order

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to execute order status transaction")
	}

	srv.log(ctx).Info("Order status updated", slog.Any("orderID", updated.ID),
		slog.String("status", updated.Status.String()), slog.String("paymentStatus", updated.PaymentStatus.String()))

	return updated, nil
}

// DeleteOrder removes an order and its line items.
func (srv *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := srv.orderRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return errors.Wrap(domainerrors.ErrNotFound, "order not found")
		}

		return errors.Wrap(err, "failed to delete order")
	}

	srv.log(ctx).Info("Order deleted", slog.Any("orderID", id))

	return nil
}

// PaymentQR renders the bank-transfer reference QR for an order.
func (srv *orderService) PaymentQR(ctx context.Context, id uuid.UUID) ([]byte, error) {
	// Verify the order exists before encoding its reference.
	if _, err := srv.GetOrder(ctx, id); err != nil {
		return nil, err
	}

	png, err := srv.qrcodeService.GeneratePaymentQR(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate payment QR")
	}

	return png, nil
}

// publishEvent emits a store event; failures are logged, never propagated.
func (srv *orderService) publishEvent(ctx context.Context, eventType string, entityID uuid.UUID, total decimal.Decimal) {
	event := &service.StoreEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		Type:        eventType,
		EntityID:    entityID.String(),
		TotalAmount: total.String(),
		OccurredAt:  time.Now(),
	}

	if err := srv.eventPublisher.PublishStoreEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish store event", slog.String("type", eventType), slog.Any("error", err))
	}
}

func validateOrderInput(input usecase.PlaceOrderInput) error {
	if input.CustomerName == "" || input.CustomerEmail == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "customer name and email are required")
	}
	if len(input.Items) == 0 {
		return errors.Wrap(domainerrors.ErrValidationFailed, "order has no items")
	}
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return errors.Wrap(domainerrors.ErrValidationFailed, "line quantity must be positive")
		}
	}
	if input.BillingRequested && input.BillingDetails == nil {
		return errors.Wrap(domainerrors.ErrValidationFailed, "billing requested without billing details")
	}

	return nil
}

// debitLines converts request lines into stock adjustments.
func debitLines(items []usecase.OrderLineInput) []entity.StockAdjustment {
	lines := make([]entity.StockAdjustment, len(items))
	for i, item := range items {
		lines[i] = entity.StockAdjustment{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	return lines
}

// priceOrderLines freezes name/price snapshots from the live product rows.
// Callers must have locked those rows already via adjustStock.
func priceOrderLines(ctx context.Context, products repository.ProductRepository, items []usecase.OrderLineInput) ([]entity.OrderItem, decimal.Decimal, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	rows, err := products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, errors.Wrap(err, "failed to load products for pricing")
	}

	byID := make(map[uuid.UUID]*entity.Product, len(rows))
	for _, p := range rows {
		byID[p.ID] = p
	}

	result := make([]entity.OrderItem, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, decimal.Zero, domainerrors.ErrProductNotFound.WithDetails(item.ProductID.String()).
				WrapMessage("pricing references unknown product")
		}

		line := entity.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.UnitPrice,
			Quantity:    item.Quantity,
		}
		result = append(result, line)
		total = total.Add(line.Subtotal())
	}

	return result, total, nil
}

// onlineSaleRecord builds the sale record paired with an online order.
func onlineSaleRecord(order *entity.Order) *entity.SaleRecord {
	items := make([]entity.SaleItem, len(order.Items))
	for i, line := range order.Items {
		items[i] = entity.SaleItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
		}
	}

	return &entity.SaleRecord{
		Source:      entity.SaleSourceOnline,
		OrderID:     &order.ID,
		Items:       items,
		TotalAmount: order.TotalAmount,
	}
}

// refreshAccountDefaults copies the order's shipping and billing snapshots
// onto the owning account as its new defaults.
func refreshAccountDefaults(account *entity.Account, order *entity.Order) {
	shipping := order.ShippingAddress
	account.DefaultShipping = &shipping

	if order.BillingDetails != nil {
		billing := *order.BillingDetails
		account.DefaultBilling = &billing
	}
}
