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

// accountRepository implements the domain.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).First(&accountM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return toAccountDomain(&accountM)
}

// FindByEmail retrieves a single account by its email address.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).First(&accountM, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM)
}

// Create persists a new account entity to the database.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM, err := fromAccountDomain(account)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateAccount.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	// Update the entity with the generated ID and timestamps
	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// Update modifies an existing account entity in the database.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM, err := fromAccountDomain(account)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Save(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateAccount.WrapMessage("email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update account")
	}

	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

func toAccountDomain(data *model.AccountModel) (*entity.Account, error) {
	if data == nil {
		return nil, nil
	}

	var shipping *entity.Address
	if len(data.DefaultShipping) > 0 {
		shipping = &entity.Address{}
		if err := json.Unmarshal(data.DefaultShipping, shipping); err != nil {
			return nil, errors.Wrap(err, "failed to decode default shipping snapshot")
		}
	}

	var billing *entity.BillingInfo
	if len(data.DefaultBilling) > 0 {
		billing = &entity.BillingInfo{}
		if err := json.Unmarshal(data.DefaultBilling, billing); err != nil {
			return nil, errors.Wrap(err, "failed to decode default billing snapshot")
		}
	}

	return &entity.Account{
		ID:              data.ID,
		Email:           data.Email,
		Name:            data.Name,
		Role:            entity.Role(data.Role),
		PasswordHash:    data.PasswordHash,
		DefaultShipping: shipping,
		DefaultBilling:  billing,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}, nil
}

func fromAccountDomain(data *entity.Account) (*model.AccountModel, error) {
	if data == nil {
		return nil, nil
	}

	var shipping datatypes.JSON
	if data.DefaultShipping != nil {
		encoded, err := json.Marshal(data.DefaultShipping)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode default shipping snapshot")
		}
		shipping = encoded
	}

	var billing datatypes.JSON
	if data.DefaultBilling != nil {
		encoded, err := json.Marshal(data.DefaultBilling)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode default billing snapshot")
		}
		billing = encoded
	}

	return &model.AccountModel{
		ID:              data.ID,
		Email:           data.Email,
		Name:            data.Name,
		Role:            data.Role.String(),
		PasswordHash:    data.PasswordHash,
		DefaultShipping: shipping,
		DefaultBilling:  billing,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}, nil
}
