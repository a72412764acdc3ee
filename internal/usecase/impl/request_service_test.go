package impl

import (
	"context"
	"testing"

	"tienda/internal/domain/entity"
	domainerrors "tienda/internal/domain/errors"
	"tienda/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requestServiceFixtures holds all test dependencies for request service tests.
type requestServiceFixtures struct {
	service usecase.RequestUsecase
	store   *memStore
}

func createTestRequestService() requestServiceFixtures {
	store := newMemStore()

	svc := NewRequestService(RequestServiceParams{
		TxManager:   &fakeTxManager{store: store},
		RequestRepo: &fakeRequestRepo{store: store},
		ProductRepo: &fakeProductRepo{store: store},
		Logger:      newDiscardLogger(),
	})

	return requestServiceFixtures{service: svc, store: store}
}

func TestRequestService_CreateRequest(t *testing.T) {
	fx := createTestRequestService()
	productID := seedProduct(fx.store, "Mezcal Joven", "10.00", 2)
	sellerID := uuid.New()

	request, err := fx.service.CreateRequest(context.Background(), usecase.CreateRequestInput{
		SellerID:          sellerID,
		ProductID:         productID,
		QuantityRequested: 24,
		Notes:             "running low before the weekend",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RequestPending, request.Status)
	assert.Equal(t, sellerID, request.SellerID)
	assert.Equal(t, 24, request.QuantityRequested)
}

func TestRequestService_CreateRequest_UnknownProduct(t *testing.T) {
	fx := createTestRequestService()

	_, err := fx.service.CreateRequest(context.Background(), usecase.CreateRequestInput{
		SellerID:          uuid.New(),
		ProductID:         uuid.New(),
		QuantityRequested: 5,
	})

	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestRequestService_CreateRequest_InvalidQuantity(t *testing.T) {
	fx := createTestRequestService()
	productID := seedProduct(fx.store, "Mezcal Joven", "10.00", 2)

	_, err := fx.service.CreateRequest(context.Background(), usecase.CreateRequestInput{
		SellerID:          uuid.New(),
		ProductID:         productID,
		QuantityRequested: 0,
	})

	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestRequestService_TransitionStatus_CompletedCreditsStockOnce(t *testing.T) {
	fx := createTestRequestService()
	productID := seedProduct(fx.store, "Mezcal Joven", "10.00", 2)

	request, err := fx.service.CreateRequest(context.Background(), usecase.CreateRequestInput{
		SellerID:          uuid.New(),
		ProductID:         productID,
		QuantityRequested: 24,
	})
	require.NoError(t, err)

	// Walk the request through its normal lifecycle; only Completed credits.
	for _, status := range []entity.RequestStatus{entity.RequestApproved, entity.RequestProcessing} {
		_, err = fx.service.TransitionStatus(context.Background(), usecase.TransitionRequestInput{
			RequestID: request.ID,
			Status:    status,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, fx.store.products[productID].Stock)
	}

	updated, err := fx.service.TransitionStatus(context.Background(), usecase.TransitionRequestInput{
		RequestID:  request.ID,
		Status:     entity.RequestCompleted,
		AdminNotes: "received shipment",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RequestCompleted, updated.Status)
	assert.Equal(t, "received shipment", updated.AdminNotes)
	assert.Equal(t, 26, fx.store.products[productID].Stock)

	// A completed request is terminal; a second completion must not credit again.
	_, err = fx.service.TransitionStatus(context.Background(), usecase.TransitionRequestInput{
		RequestID: request.ID,
		Status:    entity.RequestCompleted,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))
	assert.Equal(t, 26, fx.store.products[productID].Stock)
}

func TestRequestService_TransitionStatus_CancelledIsTerminalWithoutCredit(t *testing.T) {
	fx := createTestRequestService()
	productID := seedProduct(fx.store, "Mezcal Joven", "10.00", 2)

	request, err := fx.service.CreateRequest(context.Background(), usecase.CreateRequestInput{
		SellerID:          uuid.New(),
		ProductID:         productID,
		QuantityRequested: 24,
	})
	require.NoError(t, err)

	_, err = fx.service.TransitionStatus(context.Background(), usecase.TransitionRequestInput{
		RequestID: request.ID,
		Status:    entity.RequestCancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, fx.store.products[productID].Stock, "cancellation never touches stock")

	_, err = fx.service.TransitionStatus(context.Background(), usecase.TransitionRequestInput{
		RequestID: request.ID,
		Status:    entity.RequestApproved,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))
}

func TestRequestService_TransitionStatus_UnknownStatus(t *testing.T) {
	fx := createTestRequestService()

	_, err := fx.service.TransitionStatus(context.Background(), usecase.TransitionRequestInput{
		RequestID: uuid.New(),
		Status:    entity.RequestStatus("Vanished"),
	})

	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestRequestService_ListRequestsBySeller(t *testing.T) {
	fx := createTestRequestService()
	productID := seedProduct(fx.store, "Mezcal Joven", "10.00", 2)
	sellerA := uuid.New()
	sellerB := uuid.New()

	for _, sellerID := range []uuid.UUID{sellerA, sellerA, sellerB} {
		_, err := fx.service.CreateRequest(context.Background(), usecase.CreateRequestInput{
			SellerID:          sellerID,
			ProductID:         productID,
			QuantityRequested: 5,
		})
		require.NoError(t, err)
	}

	mine, err := fx.service.ListRequestsBySeller(context.Background(), sellerA)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := fx.service.ListRequests(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
