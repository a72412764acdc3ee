package postgres

import (
	"context"
	"encoding/json"

	"tienda/internal/domain/entity"
	domainerrors "tienda/internal/domain/errors"
	"tienda/internal/domain/repository"
	"tienda/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// orderRepository implements the domain.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// FindByID retrieves a single order with its line items.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := repo.db.WithContext(ctx).Preload("Items").First(&orderM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM)
}

// List retrieves all orders, newest first.
func (repo *orderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	var ordersM []model.OrderModel
	if err := repo.db.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&ordersM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return toOrderDomains(ordersM)
}

// ListByUser retrieves the orders owned by the given account, newest first.
func (repo *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var ordersM []model.OrderModel
	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ordersM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by user")
	}

	return toOrderDomains(ordersM)
}

// Create persists a new order entity with its line items.
// GORM's Create with associations inserts the items alongside the order.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM, err := fromOrderDomain(order)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("order references unknown record")
		}
		if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid order data")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	// Update the entity with the generated ID and timestamps
	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// UpdateStatus persists the order's current status and payment status.
func (repo *orderRepository) UpdateStatus(ctx context.Context, order *entity.Order) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":         order.Status.String(),
			"payment_status": order.PaymentStatus.String(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// Delete removes an order; its line items cascade at the database level.
func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.OrderModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) (*entity.Order, error) {
	if data == nil {
		return nil, nil
	}

	var shipping entity.Address
	if err := json.Unmarshal(data.ShippingAddress, &shipping); err != nil {
		return nil, errors.Wrap(err, "failed to decode shipping address snapshot")
	}

	var billing *entity.BillingInfo
	if len(data.BillingDetails) > 0 {
		billing = &entity.BillingInfo{}
		if err := json.Unmarshal(data.BillingDetails, billing); err != nil {
			return nil, errors.Wrap(err, "failed to decode billing snapshot")
		}
	}

	items := make([]entity.OrderItem, len(data.Items))
	for i, item := range data.Items {
		items[i] = entity.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		}
	}

	return &entity.Order{
		ID:               data.ID,
		UserID:           data.UserID,
		CustomerName:     data.CustomerName,
		CustomerEmail:    data.CustomerEmail,
		Items:            items,
		TotalAmount:      data.TotalAmount,
		Status:           entity.OrderStatus(data.Status),
		PaymentStatus:    entity.PaymentStatus(data.PaymentStatus),
		ShippingAddress:  shipping,
		BillingRequested: data.BillingRequested,
		BillingDetails:   billing,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}, nil
}

func toOrderDomains(data []model.OrderModel) ([]*entity.Order, error) {
	result := make([]*entity.Order, len(data))
	for i := range data {
		order, err := toOrderDomain(&data[i])
		if err != nil {
			return nil, err
		}
		result[i] = order
	}

	return result, nil
}

func fromOrderDomain(data *entity.Order) (*model.OrderModel, error) {
	if data == nil {
		return nil, nil
	}

	shipping, err := json.Marshal(data.ShippingAddress)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode shipping address snapshot")
	}

	var billing datatypes.JSON
	if data.BillingDetails != nil {
		encoded, err := json.Marshal(data.BillingDetails)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode billing snapshot")
		}
		billing = encoded
	}

	items := make([]model.OrderItemModel, len(data.Items))
	for i, item := range data.Items {
		items[i] = model.OrderItemModel{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		}
	}

	return &model.OrderModel{
		ID:               data.ID,
		UserID:           data.UserID,
		CustomerName:     data.CustomerName,
		CustomerEmail:    data.CustomerEmail,
		TotalAmount:      data.TotalAmount,
		Status:           data.Status.String(),
		PaymentStatus:    data.PaymentStatus.String(),
		ShippingAddress:  shipping,
		BillingRequested: data.BillingRequested,
		BillingDetails:   billing,
		Items:            items,
	}, nil
}
