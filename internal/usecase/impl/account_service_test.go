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

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service usecase.AccountUsecase
	store   *memStore
}

func createTestAccountService() accountServiceFixtures {
	store := newMemStore()

	svc := NewAccountService(AccountServiceParams{
		TxManager:    &fakeTxManager{store: store},
		AccountRepo:  &fakeAccountRepo{store: store},
		Hasher:       fakeHasher{},
		TokenService: fakeTokenService{},
		Logger:       newDiscardLogger(),
	})

	return accountServiceFixtures{service: svc, store: store}
}

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService()

	output, err := fx.service.Register(context.Background(), usecase.RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, output.Account.Role)
	assert.Equal(t, "hashed:secret123", output.Account.PasswordHash)
	assert.NotEmpty(t, output.Token)
	assert.Len(t, fx.store.accounts, 1)
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAccountService()
	seedAccount(fx.store, "Ana", "ana@example.com", entity.RoleCustomer, "hashed:pw")

	output, err := fx.service.Register(context.Background(), usecase.RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateAccount))
	assert.Len(t, fx.store.accounts, 1)
}

func TestAccountService_Register_MissingFields(t *testing.T) {
	fx := createTestAccountService()

	_, err := fx.service.Register(context.Background(), usecase.RegisterInput{Email: "ana@example.com"})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAccountService_CreateSeller(t *testing.T) {
	fx := createTestAccountService()

	account, err := fx.service.CreateSeller(context.Background(), usecase.CreateSellerInput{
		Name:     "Benito",
		Email:    "benito@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleSeller, account.Role)
}

func TestAccountService_Login(t *testing.T) {
	fx := createTestAccountService()
	seedAccount(fx.store, "Ana", "ana@example.com", entity.RoleCustomer, "hashed:secret123")

	output, err := fx.service.Login(context.Background(), usecase.LoginInput{
		Email:    "ana@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, output.Token)
	assert.Equal(t, "ana@example.com", output.Account.Email)
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	fx := createTestAccountService()
	seedAccount(fx.store, "Ana", "ana@example.com", entity.RoleCustomer, "hashed:secret123")

	_, err := fx.service.Login(context.Background(), usecase.LoginInput{
		Email:    "ana@example.com",
		Password: "nope",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAccountService()

	_, err := fx.service.Login(context.Background(), usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "secret123",
	})

	// Unknown email and wrong password are indistinguishable to the caller.
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_GetProfile_NotFound(t *testing.T) {
	fx := createTestAccountService()

	_, err := fx.service.GetProfile(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestAccountService_UpdateProfile_Partial(t *testing.T) {
	fx := createTestAccountService()
	userID := seedAccount(fx.store, "Ana", "ana@example.com", entity.RoleCustomer, "hashed:pw")

	shipping := entity.Address{Street: "Av. Juarez 5", City: "Oaxaca", Zip: "68000", Country: "MX"}
	updated, err := fx.service.UpdateProfile(context.Background(), usecase.UpdateProfileInput{
		UserID:          userID,
		DefaultShipping: &shipping,
	})

	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.Name, "untouched fields stay as they were")
	require.NotNil(t, updated.DefaultShipping)
	assert.Equal(t, shipping, *updated.DefaultShipping)

	newName := ""
	_, err = fx.service.UpdateProfile(context.Background(), usecase.UpdateProfileInput{
		UserID: userID,
		Name:   &newName,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}
