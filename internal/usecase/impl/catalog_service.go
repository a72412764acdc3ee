package impl

import (
	"context"
	"log/slog"

	deliverycontext "tienda/internal/delivery/context"
	"tienda/internal/domain/entity"
	domainerrors "tienda/internal/domain/errors"
	"tienda/internal/domain/repository"
	"tienda/internal/domain/service"
	"tienda/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	productRepo repository.ProductRepository
	imageStore  service.ImageStore
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	ImageStore  service.ImageStore
	Logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		productRepo: params.ProductRepo,
		imageStore:  params.ImageStore,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateProduct adds a new product to the catalog.
func (srv *catalogService) CreateProduct(ctx context.Context, input usecase.CreateProductInput) (*entity.Product, error) {
	if err := validateProductFields(input.Name, input.UnitPrice.IsPositive(), input.Stock); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:        input.Name,
		Description: input.Description,
		UnitPrice:   input.UnitPrice,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		srv.log(ctx).Error("Failed to create product", slog.String("name", input.Name), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.Any("productID", product.ID), slog.String("name", product.Name))

	return product, nil
}

// UpdateProduct replaces the catalog fields of an existing product.
func (srv *catalogService) UpdateProduct(ctx context.Context, input usecase.UpdateProductInput) (*entity.Product, error) {
	if err := validateProductFields(input.Name, input.UnitPrice.IsPositive(), input.Stock); err != nil {
		return nil, err
	}

	product, err := srv.findProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.UnitPrice = input.UnitPrice
	product.Stock = input.Stock
	product.ImageURL = input.ImageURL

	if err := srv.productRepo.Update(ctx, product); err != nil {
		srv.log(ctx).Error("Failed to update product", slog.Any("productID", input.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (srv *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := srv.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return errors.Wrap(domainerrors.ErrProductNotFound, "delete failed")
		}

		return errors.Wrap(err, "failed to delete product")
	}

	srv.log(ctx).Info("Product deleted", slog.Any("productID", id))

	return nil
}

// GetProduct retrieves a single product.
func (srv *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return srv.findProduct(ctx, id)
}

// ListProducts retrieves the whole catalog.
func (srv *catalogService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// UploadProductImage stores the image in the blob bucket and records its URL.
func (srv *catalogService) UploadProductImage(ctx context.Context, input usecase.UploadImageInput) (*entity.Product, error) {
	product, err := srv.findProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	url, err := srv.imageStore.SaveProductImage(ctx, input.ProductID, input.ContentType, input.Body)
	if err != nil {
		srv.log(ctx).Error("Failed to store product image", slog.Any("productID", input.ProductID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to store product image")
	}

	product.ImageURL = url
	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to record product image URL")
	}

	srv.log(ctx).Info("Product image uploaded", slog.Any("productID", input.ProductID), slog.String("url", url))

	return product, nil
}

func (srv *catalogService) findProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return product, nil
}

func validateProductFields(name string, pricePositive bool, stock int) error {
	if name == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "product name is required")
	}
	if !pricePositive {
		return errors.Wrap(domainerrors.ErrValidationFailed, "unit price must be positive")
	}
	if stock < 0 {
		return errors.Wrap(domainerrors.ErrValidationFailed, "stock must not be negative")
	}

	return nil
}
