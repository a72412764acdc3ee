package postgres

import (
	"context"
	"time"

	"tienda/internal/domain/entity"
	domainerrors "tienda/internal/domain/errors"
	"tienda/internal/domain/repository"
	"tienda/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// saleRepository implements the domain.SaleRepository interface using GORM.
type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository is the constructor for saleRepository.
func NewSaleRepository(db *gorm.DB) repository.SaleRepository {
	return &saleRepository{db: db}
}

// Create persists a new sale record with its line items.
func (repo *saleRepository) Create(ctx context.Context, sale *entity.SaleRecord) error {
	saleM := fromSaleDomain(sale)

	if err := repo.db.WithContext(ctx).Create(saleM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("sale references unknown record")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create sale record")
	}

	sale.ID = saleM.ID
	sale.CreatedAt = saleM.CreatedAt

	return nil
}

// List retrieves all sale records, newest first.
func (repo *saleRepository) List(ctx context.Context) ([]*entity.SaleRecord, error) {
	var salesM []model.SaleRecordModel
	if err := repo.db.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&salesM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list sale records")
	}

	return toSaleDomains(salesM), nil
}

// ListBetween retrieves the sale records created in [from, to), newest first.
func (repo *saleRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.SaleRecord, error) {
	var salesM []model.SaleRecordModel
	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at DESC").
		Find(&salesM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list sale records between dates")
	}

	return toSaleDomains(salesM), nil
}

// --- Mapper Functions ---

func toSaleDomain(data *model.SaleRecordModel) *entity.SaleRecord {
	if data == nil {
		return nil
	}

	items := make([]entity.SaleItem, len(data.Items))
	for i, item := range data.Items {
		items[i] = entity.SaleItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		}
	}

	return &entity.SaleRecord{
		ID:          data.ID,
		Source:      entity.SaleSource(data.Source),
		OrderID:     data.OrderID,
		SellerID:    data.SellerID,
		Items:       items,
		TotalAmount: data.TotalAmount,
		Notes:       data.Notes,
		CreatedAt:   data.CreatedAt,
	}
}

func toSaleDomains(data []model.SaleRecordModel) []*entity.SaleRecord {
	result := make([]*entity.SaleRecord, len(data))
	for i := range data {
		result[i] = toSaleDomain(&data[i])
	}

	return result
}

func fromSaleDomain(data *entity.SaleRecord) *model.SaleRecordModel {
	if data == nil {
		return nil
	}

	items := make([]model.SaleItemModel, len(data.Items))
	for i, item := range data.Items {
		items[i] = model.SaleItemModel{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		}
	}

	return &model.SaleRecordModel{
		ID:          data.ID,
		Source:      data.Source.String(),
		OrderID:     data.OrderID,
		SellerID:    data.SellerID,
		TotalAmount: data.TotalAmount,
		Notes:       data.Notes,
		Items:       items,
	}
}
