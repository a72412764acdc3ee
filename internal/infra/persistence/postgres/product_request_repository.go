package postgres

import (
	"context"

	"tienda/internal/domain/entity"
	domainerrors "tienda/internal/domain/errors"
	"tienda/internal/domain/repository"
	"tienda/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRequestRepository implements the domain.ProductRequestRepository interface using GORM.
type productRequestRepository struct {
	db *gorm.DB
}

// NewProductRequestRepository is the constructor for productRequestRepository.
func NewProductRequestRepository(db *gorm.DB) repository.ProductRequestRepository {
	return &productRequestRepository{db: db}
}

// FindByID retrieves a single product request by its unique ID.
func (repo *productRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ProductRequest, error) {
	var requestM model.ProductRequestModel
	if err := repo.db.WithContext(ctx).First(&requestM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find product request by id")
	}

	return toRequestDomain(&requestM), nil
}

// List retrieves all product requests, newest first.
func (repo *productRequestRepository) List(ctx context.Context) ([]*entity.ProductRequest, error) {
	var requestsM []model.ProductRequestModel
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&requestsM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list product requests")
	}

	return toRequestDomains(requestsM), nil
}

// ListBySeller retrieves the requests filed by the given seller, newest first.
func (repo *productRequestRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.ProductRequest, error) {
	var requestsM []model.ProductRequestModel
	if err := repo.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&requestsM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list product requests by seller")
	}

	return toRequestDomains(requestsM), nil
}

// Create persists a new product request entity.
func (repo *productRequestRepository) Create(ctx context.Context, request *entity.ProductRequest) error {
	requestM := fromRequestDomain(request)

	if err := repo.db.WithContext(ctx).Create(requestM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProductNotFound.WrapMessage("request references unknown product")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid request data")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product request")
	}

	request.ID = requestM.ID
	request.CreatedAt = requestM.CreatedAt
	request.UpdatedAt = requestM.UpdatedAt

	return nil
}

// Update modifies an existing product request entity in the database.
func (repo *productRequestRepository) Update(ctx context.Context, request *entity.ProductRequest) error {
	requestM := fromRequestDomain(request)

	if err := repo.db.WithContext(ctx).Save(requestM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update product request")
	}

	request.UpdatedAt = requestM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

func toRequestDomain(data *model.ProductRequestModel) *entity.ProductRequest {
	if data == nil {
		return nil
	}

	return &entity.ProductRequest{
		ID:                data.ID,
		ProductID:         data.ProductID,
		SellerID:          data.SellerID,
		QuantityRequested: data.QuantityRequested,
		Status:            entity.RequestStatus(data.Status),
		Notes:             data.Notes,
		AdminNotes:        data.AdminNotes,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

func toRequestDomains(data []model.ProductRequestModel) []*entity.ProductRequest {
	result := make([]*entity.ProductRequest, len(data))
	for i := range data {
		result[i] = toRequestDomain(&data[i])
	}

	return result
}

func fromRequestDomain(data *entity.ProductRequest) *model.ProductRequestModel {
	if data == nil {
		return nil
	}

	return &model.ProductRequestModel{
		ID:                data.ID,
		ProductID:         data.ProductID,
		SellerID:          data.SellerID,
		QuantityRequested: data.QuantityRequested,
		Status:            data.Status.String(),
		Notes:             data.Notes,
		AdminNotes:        data.AdminNotes,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}
