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

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a customer account and logs it in.
func (srv *accountService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	account, err := srv.createAccount(ctx, input.Name, input.Email, input.Password, entity.RoleCustomer)
	if err != nil {
		return nil, err
	}

	token, err := srv.tokenService.GenerateToken(account.ID, account.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token after registration")
	}

	return &usecase.AuthOutput{Account: account, Token: token}, nil
}

// CreateSeller creates a seller account on behalf of an admin.
func (srv *accountService) CreateSeller(ctx context.Context, input usecase.CreateSellerInput) (*entity.Account, error) {
	return srv.createAccount(ctx, input.Name, input.Email, input.Password, entity.RoleSeller)
}

func (srv *accountService) createAccount(ctx context.Context, name, email, password string, role entity.Role) (*entity.Account, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "name, email and password are required")
	}

	hash, err := srv.hasher.Hash(password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password")
	}

	var created *entity.Account
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accounts := repoFactory.AccountRepo()

		_, findErr := accounts.FindByEmail(ctx, email)
		if findErr == nil {
			return errors.Wrap(domainerrors.ErrDuplicateAccount, "email already registered")
		}
		if !errors.Is(findErr, repository.ErrAccountNotFound) {
			return errors.Wrap(findErr, "failed to check email availability")
		}

		account := &entity.Account{
			Email:        email,
			Name:         name,
			Role:         role,
			PasswordHash: hash,
		}
		if err := accounts.Create(ctx, account); err != nil {
			return errors.Wrap(err, "failed to create account")
		}

		created = account

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Account creation failed", slog.String("email", email), slog.Any("role", role), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute account creation transaction")
	}

	srv.log(ctx).Info("Account created", slog.Any("userID", created.ID), slog.Any("role", created.Role))

	return created, nil
}

// Login verifies credentials and issues an access token.
func (srv *accountService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	// Bcrypt comparison is CPU-bound and needs no transaction.
	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenService.GenerateToken(account.ID, account.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	srv.log(ctx).Debug("Account logged in", slog.Any("userID", account.ID))

	return &usecase.AuthOutput{Account: account, Token: token}, nil
}

// GetProfile retrieves an account by ID.
func (srv *accountService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "profile lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return account, nil
}

// UpdateProfile applies a partial update to the caller's own profile.
// Role and email never change through this path.
func (srv *accountService) UpdateProfile(ctx context.Context, input usecase.UpdateProfileInput) (*entity.Account, error) {
	var updated *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accounts := repoFactory.AccountRepo()

		account, err := accounts.FindByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return errors.Wrap(domainerrors.ErrAccountNotFound, "profile update failed")
			}

			return errors.Wrap(err, "failed to find account for profile update")
		}

		if input.Name != nil {
			if *input.Name == "" {
				return errors.Wrap(domainerrors.ErrValidationFailed, "name must not be empty")
			}
			account.Name = *input.Name
		}
		if input.DefaultShipping != nil {
			account.DefaultShipping = input.DefaultShipping
		}
		if input.DefaultBilling != nil {
			account.DefaultBilling = input.DefaultBilling
		}

		if err := accounts.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to update account profile")
		}

		updated = account

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute profile update transaction")
	}

	return updated, nil
}
