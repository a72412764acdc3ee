package impl

import (
	"context"
	"testing"
	"time"

	"tienda/internal/domain/entity"
	domainerrors "tienda/internal/domain/errors"
	"tienda/internal/domain/service"
	"tienda/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// saleServiceFixtures holds all test dependencies for sale service tests.
type saleServiceFixtures struct {
	service   usecase.SaleUsecase
	store     *memStore
	publisher *fakePublisher
}

func createTestSaleService() saleServiceFixtures {
	store := newMemStore()
	publisher := &fakePublisher{}

	svc := NewSaleService(SaleServiceParams{
		TxManager:      &fakeTxManager{store: store},
		SaleRepo:       &fakeSaleRepo{store: store},
		EventPublisher: publisher,
		Logger:         newDiscardLogger(),
	})

	return saleServiceFixtures{service: svc, store: store, publisher: publisher}
}

func TestSaleService_LogSale_Success(t *testing.T) {
	fx := createTestSaleService()
	productID := seedProduct(fx.store, "Mezcal Joven", "12.00", 10)
	sellerID := uuid.New()

	record, err := fx.service.LogSale(context.Background(), usecase.LogSaleInput{
		SellerID:   sellerID,
		SellerRole: entity.RoleSeller,
		Items:      []usecase.OrderLineInput{{ProductID: productID, Quantity: 4}},
		Notes:      "mercado stand",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.SaleSourceSellerDirect, record.Source)
	require.NotNil(t, record.SellerID)
	assert.Equal(t, sellerID, *record.SellerID)
	assert.Nil(t, record.OrderID)
	assert.Equal(t, "mercado stand", record.Notes)

	// Prices come from the catalog, never from the caller.
	require.Len(t, record.Items, 1)
	assert.True(t, record.Items[0].UnitPrice.Equal(mustDecimal("12.00")))
	assert.True(t, record.TotalAmount.Equal(mustDecimal("48.00")))

	assert.Equal(t, 6, fx.store.products[productID].Stock)

	require.Len(t, fx.publisher.events, 1)
	assert.Equal(t, service.EventSaleLogged, fx.publisher.events[0].Type)
}

func TestSaleService_LogSale_RoleGate(t *testing.T) {
	fx := createTestSaleService()
	productID := seedProduct(fx.store, "Mezcal Joven", "12.00", 10)

	_, err := fx.service.LogSale(context.Background(), usecase.LogSaleInput{
		SellerID:   uuid.New(),
		SellerRole: entity.RoleCustomer,
		Items:      []usecase.OrderLineInput{{ProductID: productID, Quantity: 1}},
	})

	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
	assert.Equal(t, 10, fx.store.products[productID].Stock)
}

func TestSaleService_LogSale_AdminAllowed(t *testing.T) {
	fx := createTestSaleService()
	productID := seedProduct(fx.store, "Mezcal Joven", "12.00", 10)

	_, err := fx.service.LogSale(context.Background(), usecase.LogSaleInput{
		SellerID:   uuid.New(),
		SellerRole: entity.RoleAdmin,
		Items:      []usecase.OrderLineInput{{ProductID: productID, Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, 9, fx.store.products[productID].Stock)
}

func TestSaleService_LogSale_InsufficientStockRollsBack(t *testing.T) {
	fx := createTestSaleService()
	okID := seedProduct(fx.store, "Mezcal Joven", "12.00", 10)
	shortID := seedProduct(fx.store, "Mezcal Reposado", "15.00", 1)

	_, err := fx.service.LogSale(context.Background(), usecase.LogSaleInput{
		SellerID:   uuid.New(),
		SellerRole: entity.RoleSeller,
		Items: []usecase.OrderLineInput{
			{ProductID: okID, Quantity: 2},
			{ProductID: shortID, Quantity: 3},
		},
	})

	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))
	assert.Equal(t, 10, fx.store.products[okID].Stock, "no partial debit on failure")
	assert.Equal(t, 1, fx.store.products[shortID].Stock)
	assert.Empty(t, fx.store.sales)
}

func TestSaleService_Summary(t *testing.T) {
	fx := createTestSaleService()
	productID := seedProduct(fx.store, "Mezcal Joven", "10.00", 100)
	sellerID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := fx.service.LogSale(context.Background(), usecase.LogSaleInput{
			SellerID:   sellerID,
			SellerRole: entity.RoleSeller,
			Items:      []usecase.OrderLineInput{{ProductID: productID, Quantity: 2}},
		})
		require.NoError(t, err)
	}

	now := time.Now()
	summary, err := fx.service.Summary(context.Background(), now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.RecordCount)
	assert.True(t, summary.TotalAmount.Equal(mustDecimal("60.00")))
	assert.Equal(t, 6, summary.UnitsByProduct[productID])
}

func TestSaleService_Summary_EmptyRange(t *testing.T) {
	fx := createTestSaleService()

	now := time.Now()
	_, err := fx.service.Summary(context.Background(), now, now)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}
