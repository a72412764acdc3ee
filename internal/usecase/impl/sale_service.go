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

// saleService implements the SaleUsecase interface.
type saleService struct {
	txManager      repository.TransactionManager
	saleRepo       repository.SaleRepository
	eventPublisher service.EventPublisher
	logger         *slog.Logger
}

// SaleServiceParams holds dependencies for SaleService, injected by Fx.
type SaleServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	SaleRepo       repository.SaleRepository
	EventPublisher service.EventPublisher
	Logger         *slog.Logger
}

// NewSaleService is the constructor for saleService.
func NewSaleService(params SaleServiceParams) usecase.SaleUsecase {
	return &saleService{
		txManager:      params.TxManager,
		saleRepo:       params.SaleRepo,
		eventPublisher: params.EventPublisher,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *saleService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// LogSale records a seller-direct sale: debit stock and persist one immutable
// sale record in the same transaction. Line prices always come from the live
// product rows, never from the caller.
func (srv *saleService) LogSale(ctx context.Context, input usecase.LogSaleInput) (*entity.SaleRecord, error) {
	if input.SellerRole != entity.RoleSeller && input.SellerRole != entity.RoleAdmin {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only sellers and admins may log sales")
	}
	if len(input.Items) == 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "sale has no items")
	}
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed, "line quantity must be positive")
		}
	}

	srv.log(ctx).Info("Logging direct sale", slog.Any("sellerID", input.SellerID), slog.Int("lines", len(input.Items)))

	var record *entity.SaleRecord
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		products := repoFactory.ProductRepo()
		sales := repoFactory.SaleRepo()

		if err := adjustStock(ctx, products, debitLines(input.Items), entity.StockDebit); err != nil {
			return err
		}

		items, total, err := priceOrderLines(ctx, products, input.Items)
		if err != nil {
			return err
		}

		sellerID := input.SellerID
		record = &entity.SaleRecord{
			Source:      entity.SaleSourceSellerDirect,
			SellerID:    &sellerID,
			Items:       saleItemsFromOrderItems(items),
			TotalAmount: total,
			Notes:       input.Notes,
		}

		if err := sales.Create(ctx, record); err != nil {
			return errors.Wrap(err, "failed to create sale record")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Direct sale failed", slog.Any("sellerID", input.SellerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute sale logging transaction")
	}

	srv.publishEvent(ctx, record)

	srv.log(ctx).Info("Direct sale logged", slog.Any("saleID", record.ID), slog.String("total", record.TotalAmount.String()))

	return record, nil
}

// ListSales retrieves all sale records, newest first.
func (srv *saleService) ListSales(ctx context.Context) ([]*entity.SaleRecord, error) {
	records, err := srv.saleRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sale records")
	}

	return records, nil
}

// Summary aggregates totals and per-product quantities over [from, to).
func (srv *saleService) Summary(ctx context.Context, from, to time.Time) (*usecase.SalesSummary, error) {
	if !to.After(from) {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "summary range is empty")
	}

	records, err := srv.saleRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sale records for summary")
	}

	summary := &usecase.SalesSummary{
		From:           from,
		To:             to,
		TotalAmount:    decimal.Zero,
		RecordCount:    len(records),
		UnitsByProduct: make(map[uuid.UUID]int),
	}
	for _, record := range records {
		summary.TotalAmount = summary.TotalAmount.Add(record.TotalAmount)
		for _, item := range record.Items {
			summary.UnitsByProduct[item.ProductID] += item.Quantity
		}
	}

	return summary, nil
}

func (srv *saleService) publishEvent(ctx context.Context, record *entity.SaleRecord) {
	event := &service.StoreEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		Type:        service.EventSaleLogged,
		EntityID:    record.ID.String(),
		TotalAmount: record.TotalAmount.String(),
		OccurredAt:  time.Now(),
	}

	if err := srv.eventPublisher.PublishStoreEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish store event", slog.String("type", event.Type), slog.Any("error", err))
	}
}

func saleItemsFromOrderItems(items []entity.OrderItem) []entity.SaleItem {
	result := make([]entity.SaleItem, len(items))
	for i, item := range items {
		result[i] = entity.SaleItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		}
	}

	return result
}
