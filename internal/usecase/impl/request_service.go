package impl

import (
	"context"
	"log/slog"

	deliverycontext "tienda/internal/delivery/context"
	"tienda/internal/domain/entity"
	domainerrors "tienda/internal/domain/errors"
	"tienda/internal/domain/repository"
	"tienda/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// requestService implements the RequestUsecase interface.
type requestService struct {
	txManager   repository.TransactionManager
	requestRepo repository.ProductRequestRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// RequestServiceParams holds dependencies for RequestService, injected by Fx.
type RequestServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	RequestRepo repository.ProductRequestRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewRequestService is the constructor for requestService.
func NewRequestService(params RequestServiceParams) usecase.RequestUsecase {
	return &requestService{
		txManager:   params.TxManager,
		requestRepo: params.RequestRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *requestService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateRequest files a new restock request in Pending state.
func (srv *requestService) CreateRequest(ctx context.Context, input usecase.CreateRequestInput) (*entity.ProductRequest, error) {
	if input.QuantityRequested <= 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "requested quantity must be positive")
	}

	if _, err := srv.productRepo.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "restock request references unknown product")
		}

		return nil, errors.Wrap(err, "failed to verify requested product")
	}

	request := &entity.ProductRequest{
		ProductID:         input.ProductID,
		SellerID:          input.SellerID,
		QuantityRequested: input.QuantityRequested,
		Status:            entity.RequestPending,
		Notes:             input.Notes,
	}

	if err := srv.requestRepo.Create(ctx, request); err != nil {
		srv.log(ctx).Error("Failed to create restock request", slog.Any("productID", input.ProductID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create restock request")
	}

	srv.log(ctx).Info("Restock request filed", slog.Any("requestID", request.ID),
		slog.Any("productID", input.ProductID), slog.Int("quantity", input.QuantityRequested))

	return request, nil
}

// ListRequests retrieves all restock requests, newest first.
func (srv *requestService) ListRequests(ctx context.Context) ([]*entity.ProductRequest, error) {
	requests, err := srv.requestRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list restock requests")
	}

	return requests, nil
}

// ListRequestsBySeller retrieves the restock requests filed by one seller.
func (srv *requestService) ListRequestsBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.ProductRequest, error) {
	requests, err := srv.requestRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list restock requests by seller")
	}

	return requests, nil
}

// TransitionStatus moves a request through its lifecycle. Completed and
// Cancelled are terminal; the first transition into Completed credits the
// requested quantity back to stock in the same transaction, so stock is
// never credited twice for one request.
func (srv *requestService) TransitionStatus(ctx context.Context, input usecase.TransitionRequestInput) (*entity.ProductRequest, error) {
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails(input.Status.String()).
			WrapMessage("unknown request status")
	}

	var updated *entity.ProductRequest
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		requests := repoFactory.RequestRepo()
		products := repoFactory.ProductRepo()

		request, err := requests.FindByID(ctx, input.RequestID)
		if err != nil {
			if errors.Is(err, repository.ErrRequestNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "restock request not found")
			}

			return errors.Wrap(err, "failed to find restock request")
		}

		if request.Status.IsTerminal() {
			return domainerrors.ErrInvalidTransition.
				WithDetails(request.Status.String()).
				WrapMessage("request is already in a terminal state")
		}

		if input.Status == entity.RequestCompleted {
			credit := []entity.StockAdjustment{{ProductID: request.ProductID, Quantity: request.QuantityRequested}}
			if err := adjustStock(ctx, products, credit, entity.StockCredit); err != nil {
				return err
			}
		}

		request.Status = input.Status
		request.AdminNotes = input.AdminNotes

		if err := requests.Update(ctx, request); err != nil {
			return errors.Wrap(err, "failed to update restock request")
		}

		updated = request

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Restock request transition failed", slog.Any("requestID", input.RequestID),
			slog.String("status", input.Status.String()), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute request transition transaction")
	}

	srv.log(ctx).Info("Restock request transitioned", slog.Any("requestID", updated.ID), slog.String("status", updated.Status.String()))

	return updated, nil
}
