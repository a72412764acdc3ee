package impl

import (
	"context"
	"strings"
	"sync"
	"testing"

	"tienda/internal/domain/entity"
	domainerrors "tienda/internal/domain/errors"
	"tienda/internal/domain/service"
	"tienda/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderServiceFixtures holds all test dependencies for order service tests.
type orderServiceFixtures struct {
	service   usecase.OrderUsecase
	store     *memStore
	publisher *fakePublisher
}

func createTestOrderService() orderServiceFixtures {
	store := newMemStore()
	publisher := &fakePublisher{}

	svc := NewOrderService(OrderServiceParams{
		TxManager:      &fakeTxManager{store: store},
		OrderRepo:      &fakeOrderRepo{store: store},
		Hasher:         fakeHasher{},
		TokenService:   fakeTokenService{},
		QRCodeService:  fakeQRCodeService{},
		EventPublisher: publisher,
		Logger:         newDiscardLogger(),
	})

	return orderServiceFixtures{service: svc, store: store, publisher: publisher}
}

func testShippingAddress() entity.Address {
	return entity.Address{
		Street:  "Av. Reforma 123",
		City:    "CDMX",
		Zip:     "06600",
		Country: "MX",
	}
}

func TestOrderService_PlaceOrder_GuestSuccess(t *testing.T) {
	fx := createTestOrderService()
	productID := seedProduct(fx.store, "Mezcal Joven", "10.50", 5)

	output, err := fx.service.PlaceOrder(context.Background(), usecase.PlaceOrderInput{
		CustomerName:    "Ana",
		CustomerEmail:   "ana@example.com",
		Items:           []usecase.OrderLineInput{{ProductID: productID, Quantity: 2}},
		ShippingAddress: testShippingAddress(),
	})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Nil(t, output.Account)
	assert.Empty(t, output.Token)

	order := output.Order
	require.NotNil(t, order)
	assert.Nil(t, order.UserID)
	assert.Equal(t, entity.OrderPending, order.Status)
	assert.Equal(t, entity.PaymentUnpaid, order.PaymentStatus)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Mezcal Joven", order.Items[0].ProductName)
	assert.True(t, order.TotalAmount.Equal(mustDecimal("21.00")), "total was %s", order.TotalAmount)

	assert.Equal(t, 3, fx.store.products[productID].Stock)

	require.Len(t, fx.store.sales, 1)
	sale := fx.store.sales[0]
	assert.Equal(t, entity.SaleSourceOnline, sale.Source)
	require.NotNil(t, sale.OrderID)
	assert.Equal(t, order.ID, *sale.OrderID)
	assert.True(t, sale.TotalAmount.Equal(order.TotalAmount))

	require.Len(t, fx.publisher.events, 1)
	assert.Equal(t, service.EventOrderPlaced, fx.publisher.events[0].Type)
}

func TestOrderService_PlaceOrder_InsufficientStock(t *testing.T) {
	fx := createTestOrderService()
	productID := seedProduct(fx.store, "Mezcal Joven", "10.50", 1)

	output, err := fx.service.PlaceOrder(context.Background(), usecase.PlaceOrderInput{
		CustomerName:    "Ana",
		CustomerEmail:   "ana@example.com",
		Items:           []usecase.OrderLineInput{{ProductID: productID, Quantity: 2}},
		ShippingAddress: testShippingAddress(),
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))

	// Nothing is written when any line fails.
	assert.Equal(t, 1, fx.store.products[productID].Stock)
	assert.Empty(t, fx.store.orders)
	assert.Empty(t, fx.store.sales)
	assert.Empty(t, fx.publisher.events)
}

func TestOrderService_PlaceOrder_UnknownProduct(t *testing.T) {
	fx := createTestOrderService()

	output, err := fx.service.PlaceOrder(context.Background(), usecase.PlaceOrderInput{
		CustomerName:    "Ana",
		CustomerEmail:   "ana@example.com",
		Items:           []usecase.OrderLineInput{{ProductID: uuid.New(), Quantity: 1}},
		ShippingAddress: testShippingAddress(),
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestOrderService_PlaceOrder_PromotesGuestWithPassword(t *testing.T) {
	fx := createTestOrderService()
	productID := seedProduct(fx.store, "Mezcal Joven", "10.50", 5)

	output, err := fx.service.PlaceOrder(context.Background(), usecase.PlaceOrderInput{
		CustomerName:    "Ana",
		CustomerEmail:   "ana@example.com",
		Items:           []usecase.OrderLineInput{{ProductID: productID, Quantity: 1}},
		ShippingAddress: testShippingAddress(),
		Password:        "secret123",
	})

	require.NoError(t, err)
	require.NotNil(t, output.Account)
	assert.Equal(t, entity.RoleCustomer, output.Account.Role)
	assert.Equal(t, "hashed:secret123", output.Account.PasswordHash)
	assert.NotEmpty(t, output.Token)

	require.NotNil(t, output.Order.UserID)
	assert.Equal(t, output.Account.ID, *output.Order.UserID)

	// The new account inherits the order's shipping address as its default.
	stored := fx.store.accounts[output.Account.ID]
	require.NotNil(t, stored.DefaultShipping)
	assert.Equal(t, testShippingAddress(), *stored.DefaultShipping)
}

func TestOrderService_PlaceOrder_DuplicateGuestEmail(t *testing.T) {
	fx := createTestOrderService()
	productID := seedProduct(fx.store, "Mezcal Joven", "10.50", 5)
	seedAccount(fx.store, "Ana", "ana@example.com", entity.RoleCustomer, "hashed:other")

	output, err := fx.service.PlaceOrder(context.Background(), usecase.PlaceOrderInput{
		CustomerName:    "Ana",
		CustomerEmail:   "ana@example.com",
		Items:           []usecase.OrderLineInput{{ProductID: productID, Quantity: 1}},
		ShippingAddress: testShippingAddress(),
		Password:        "secret123",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateAccount))

	// The whole placement rolls back, including the stock debit.
	assert.Equal(t, 5, fx.store.products[productID].Stock)
	assert.Empty(t, fx.store.orders)
	assert.Empty(t, fx.store.sales)
	assert.Len(t, fx.store.accounts, 1)
}

func TestOrderService_PlaceOrder_ExistingCustomerRefreshesDefaults(t *testing.T) {
	fx := createTestOrderService()
	productID := seedProduct(fx.store, "Mezcal Joven", "10.50", 5)
	userID := seedAccount(fx.store, "Ana", "ana@example.com", entity.RoleCustomer, "hashed:pw")

	billing := entity.BillingInfo{RFC: "XAXX010101000", RazonSocial: "Ana SA de CV"}
	output, err := fx.service.PlaceOrder(context.Background(), usecase.PlaceOrderInput{
		CustomerName:     "Ana",
		CustomerEmail:    "ana@example.com",
		Items:            []usecase.OrderLineInput{{ProductID: productID, Quantity: 1}},
		ShippingAddress:  testShippingAddress(),
		BillingRequested: true,
		BillingDetails:   &billing,
		UserID:           &userID,
	})

	require.NoError(t, err)
	assert.Nil(t, output.Account, "no new account for a logged-in customer")
	assert.Empty(t, output.Token)
	require.NotNil(t, output.Order.UserID)
	assert.Equal(t, userID, *output.Order.UserID)

	stored := fx.store.accounts[userID]
	require.NotNil(t, stored.DefaultShipping)
	assert.Equal(t, testShippingAddress(), *stored.DefaultShipping)
	require.NotNil(t, stored.DefaultBilling)
	assert.Equal(t, billing, *stored.DefaultBilling)
}

func TestOrderService_PlaceOrder_MergesDuplicateLines(t *testing.T) {
	fx := createTestOrderService()
	productID := seedProduct(fx.store, "Mezcal Joven", "10.00", 3)

	output, err := fx.service.PlaceOrder(context.Background(), usecase.PlaceOrderInput{
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		Items: []usecase.OrderLineInput{
			{ProductID: productID, Quantity: 2},
			{ProductID: productID, Quantity: 1},
		},
		ShippingAddress: testShippingAddress(),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, fx.store.products[productID].Stock)
	assert.True(t, output.Order.TotalAmount.Equal(mustDecimal("30.00")))
}

func TestOrderService_PlaceOrder_ConcurrentLastUnit(t *testing.T) {
	fx := createTestOrderService()
	productID := seedProduct(fx.store, "Mezcal Joven", "10.00", 1)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fx.service.PlaceOrder(context.Background(), usecase.PlaceOrderInput{
				CustomerName:    "Ana",
				CustomerEmail:   "ana@example.com",
				Items:           []usecase.OrderLineInput{{ProductID: productID, Quantity: 1}},
				ShippingAddress: testShippingAddress(),
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, stockFailures int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domainerrors.ErrInsufficientStock):
			stockFailures++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, stockFailures)
	assert.Equal(t, 0, fx.store.products[productID].Stock)
	assert.Len(t, fx.store.orders, 1)
	assert.Len(t, fx.store.sales, 1)
}

func TestOrderService_PlaceOrder_BillingRequestedWithoutDetails(t *testing.T) {
	fx := createTestOrderService()
	productID := seedProduct(fx.store, "Mezcal Joven", "10.00", 3)

	_, err := fx.service.PlaceOrder(context.Background(), usecase.PlaceOrderInput{
		CustomerName:     "Ana",
		CustomerEmail:    "ana@example.com",
		Items:            []usecase.OrderLineInput{{ProductID: productID, Quantity: 1}},
		ShippingAddress:  testShippingAddress(),
		BillingRequested: true,
	})

	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestOrderService_UpdateStatus_PartialUpdate(t *testing.T) {
	fx := createTestOrderService()
	productID := seedProduct(fx.store, "Mezcal Joven", "10.00", 3)

	output, err := fx.service.PlaceOrder(context.Background(), usecase.PlaceOrderInput{
		CustomerName:    "Ana",
		CustomerEmail:   "ana@example.com",
		Items:           []usecase.OrderLineInput{{ProductID: productID, Quantity: 1}},
		ShippingAddress: testShippingAddress(),
	})
	require.NoError(t, err)

	shipped := entity.OrderShipped
	updated, err := fx.service.UpdateStatus(context.Background(), usecase.UpdateOrderInput{
		OrderID: output.Order.ID,
		Status:  &shipped,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OrderShipped, updated.Status)
	assert.Equal(t, entity.PaymentUnpaid, updated.PaymentStatus, "payment axis moves independently")
}

func TestOrderService_UpdateStatus_Validation(t *testing.T) {
	fx := createTestOrderService()

	_, err := fx.service.UpdateStatus(context.Background(), usecase.UpdateOrderInput{OrderID: uuid.New()})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	bogus := entity.OrderStatus("Teleported")
	_, err = fx.service.UpdateStatus(context.Background(), usecase.UpdateOrderInput{OrderID: uuid.New(), Status: &bogus})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	pending := entity.OrderPending
	_, err = fx.service.UpdateStatus(context.Background(), usecase.UpdateOrderInput{OrderID: uuid.New(), Status: &pending})
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestOrderService_PaymentQR(t *testing.T) {
	fx := createTestOrderService()
	productID := seedProduct(fx.store, "Mezcal Joven", "10.00", 3)

	output, err := fx.service.PlaceOrder(context.Background(), usecase.PlaceOrderInput{
		CustomerName:    "Ana",
		CustomerEmail:   "ana@example.com",
		Items:           []usecase.OrderLineInput{{ProductID: productID, Quantity: 1}},
		ShippingAddress: testShippingAddress(),
	})
	require.NoError(t, err)

	png, err := fx.service.PaymentQR(context.Background(), output.Order.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(png), "qr:"))

	_, err = fx.service.PaymentQR(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
