package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"tienda/internal/domain/entity"
	"tienda/internal/domain/repository"
	"tienda/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}

	return d
}

// memStore is an in-memory stand-in for the database. The transaction
// manager serializes access with the mutex and restores a snapshot on
// rollback, which mirrors the row-locking and atomicity the services rely on.
type memStore struct {
	mu       sync.Mutex
	products map[uuid.UUID]entity.Product
	orders   map[uuid.UUID]entity.Order
	sales    []entity.SaleRecord
	requests map[uuid.UUID]entity.ProductRequest
	accounts map[uuid.UUID]entity.Account
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[uuid.UUID]entity.Product),
		orders:   make(map[uuid.UUID]entity.Order),
		requests: make(map[uuid.UUID]entity.ProductRequest),
		accounts: make(map[uuid.UUID]entity.Account),
	}
}

type memSnapshot struct {
	products map[uuid.UUID]entity.Product
	orders   map[uuid.UUID]entity.Order
	sales    []entity.SaleRecord
	requests map[uuid.UUID]entity.ProductRequest
	accounts map[uuid.UUID]entity.Account
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		products: make(map[uuid.UUID]entity.Product, len(s.products)),
		orders:   make(map[uuid.UUID]entity.Order, len(s.orders)),
		sales:    append([]entity.SaleRecord(nil), s.sales...),
		requests: make(map[uuid.UUID]entity.ProductRequest, len(s.requests)),
		accounts: make(map[uuid.UUID]entity.Account, len(s.accounts)),
	}
	for id, p := range s.products {
		snap.products[id] = p
	}
	for id, o := range s.orders {
		snap.orders[id] = o
	}
	for id, r := range s.requests {
		snap.requests[id] = r
	}
	for id, a := range s.accounts {
		snap.accounts[id] = a
	}

	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.products = snap.products
	s.orders = snap.orders
	s.sales = snap.sales
	s.requests = snap.requests
	s.accounts = snap.accounts
}

// --- transaction manager ---

type fakeTxManager struct {
	store *memStore
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	snap := m.store.snapshot()
	if err := fn(&fakeFactory{store: m.store}); err != nil {
		m.store.restore(snap)

		return err
	}

	return nil
}

type fakeFactory struct {
	store *memStore
}

func (f *fakeFactory) ProductRepo() repository.ProductRepository        { return &fakeProductRepo{f.store} }
func (f *fakeFactory) OrderRepo() repository.OrderRepository            { return &fakeOrderRepo{f.store} }
func (f *fakeFactory) SaleRepo() repository.SaleRepository              { return &fakeSaleRepo{f.store} }
func (f *fakeFactory) RequestRepo() repository.ProductRequestRepository { return &fakeRequestRepo{f.store} }
func (f *fakeFactory) AccountRepo() repository.AccountRepository        { return &fakeAccountRepo{f.store} }

// --- product repository ---

type fakeProductRepo struct {
	store *memStore
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	return &p, nil
}

func (r *fakeProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	result := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.store.products[id]; ok {
			found := p
			result = append(result, &found)
		}
	}

	return result, nil
}

func (r *fakeProductRepo) FindForUpdate(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	return r.FindByIDs(ctx, ids)
}

func (r *fakeProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	result := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		found := p
		result = append(result, &found)
	}

	return result, nil
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	r.store.products[product.ID] = *product

	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	if _, ok := r.store.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	product.UpdatedAt = time.Now()
	r.store.products[product.ID] = *product

	return nil
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, id uuid.UUID, stock int) error {
	p, ok := r.store.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.Stock = stock
	r.store.products[id] = p

	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.store.products, id)

	return nil
}

// --- order repository ---

type fakeOrderRepo struct {
	store *memStore
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	o, ok := r.store.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}

	return &o, nil
}

func (r *fakeOrderRepo) List(_ context.Context) ([]*entity.Order, error) {
	result := make([]*entity.Order, 0, len(r.store.orders))
	for _, o := range r.store.orders {
		found := o
		result = append(result, &found)
	}

	return result, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var result []*entity.Order
	for _, o := range r.store.orders {
		if o.UserID != nil && *o.UserID == userID {
			found := o
			result = append(result, &found)
		}
	}

	return result, nil
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.store.orders[order.ID] = *order

	return nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, order *entity.Order) error {
	stored, ok := r.store.orders[order.ID]
	if !ok {
		return repository.ErrOrderNotFound
	}
	stored.Status = order.Status
	stored.PaymentStatus = order.PaymentStatus
	r.store.orders[order.ID] = stored

	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.orders[id]; !ok {
		return repository.ErrOrderNotFound
	}
	delete(r.store.orders, id)

	return nil
}

// --- sale repository ---

type fakeSaleRepo struct {
	store *memStore
}

func (r *fakeSaleRepo) Create(_ context.Context, sale *entity.SaleRecord) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now()
	}
	r.store.sales = append(r.store.sales, *sale)

	return nil
}

func (r *fakeSaleRepo) List(_ context.Context) ([]*entity.SaleRecord, error) {
	result := make([]*entity.SaleRecord, 0, len(r.store.sales))
	for i := range r.store.sales {
		found := r.store.sales[i]
		result = append(result, &found)
	}

	return result, nil
}

func (r *fakeSaleRepo) ListBetween(_ context.Context, from, to time.Time) ([]*entity.SaleRecord, error) {
	var result []*entity.SaleRecord
	for i := range r.store.sales {
		created := r.store.sales[i].CreatedAt
		if !created.Before(from) && created.Before(to) {
			found := r.store.sales[i]
			result = append(result, &found)
		}
	}

	return result, nil
}

// --- product request repository ---

type fakeRequestRepo struct {
	store *memStore
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ProductRequest, error) {
	req, ok := r.store.requests[id]
	if !ok {
		return nil, repository.ErrRequestNotFound
	}

	return &req, nil
}

func (r *fakeRequestRepo) List(_ context.Context) ([]*entity.ProductRequest, error) {
	result := make([]*entity.ProductRequest, 0, len(r.store.requests))
	for _, req := range r.store.requests {
		found := req
		result = append(result, &found)
	}

	return result, nil
}

func (r *fakeRequestRepo) ListBySeller(_ context.Context, sellerID uuid.UUID) ([]*entity.ProductRequest, error) {
	var result []*entity.ProductRequest
	for _, req := range r.store.requests {
		if req.SellerID == sellerID {
			found := req
			result = append(result, &found)
		}
	}

	return result, nil
}

func (r *fakeRequestRepo) Create(_ context.Context, request *entity.ProductRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	r.store.requests[request.ID] = *request

	return nil
}

func (r *fakeRequestRepo) Update(_ context.Context, request *entity.ProductRequest) error {
	if _, ok := r.store.requests[request.ID]; !ok {
		return repository.ErrRequestNotFound
	}
	request.UpdatedAt = time.Now()
	r.store.requests[request.ID] = *request

	return nil
}

// --- account repository ---

type fakeAccountRepo struct {
	store *memStore
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	a, ok := r.store.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return &a, nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	for _, a := range r.store.accounts {
		if a.Email == email {
			found := a
			return &found, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	r.store.accounts[account.ID] = *account

	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *entity.Account) error {
	if _, ok := r.store.accounts[account.ID]; !ok {
		return repository.ErrAccountNotFound
	}
	account.UpdatedAt = time.Now()
	r.store.accounts[account.ID] = *account

	return nil
}

// --- domain service fakes ---

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

type fakeTokenService struct{}

func (fakeTokenService) GenerateToken(userID uuid.UUID, role entity.Role) (string, error) {
	return "token:" + userID.String() + ":" + role.String(), nil
}

func (fakeTokenService) ValidateToken(token string) (*service.Claims, error) {
	return nil, errors.New("not implemented")
}

type fakeQRCodeService struct{}

func (fakeQRCodeService) GeneratePaymentQR(orderID uuid.UUID) ([]byte, error) {
	return []byte("qr:" + orderID.String()), nil
}

func (fakeQRCodeService) ParsePaymentQR(string) (uuid.UUID, error) {
	return uuid.Nil, errors.New("not implemented")
}

// fakePublisher records every published event.
type fakePublisher struct {
	mu     sync.Mutex
	events []service.StoreEvent
}

func (p *fakePublisher) PublishStoreEvent(_ context.Context, event *service.StoreEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, *event)

	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeImageStore struct{}

func (fakeImageStore) SaveProductImage(_ context.Context, productID uuid.UUID, _ string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}

	return "https://cdn.example.com/products/" + productID.String() + ".png", nil
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seedProduct inserts a product directly into the store and returns its ID.
func seedProduct(store *memStore, name string, price string, stock int) uuid.UUID {
	id := uuid.New()
	store.products[id] = entity.Product{
		ID:        id,
		Name:      name,
		UnitPrice: mustDecimal(price),
		Stock:     stock,
	}

	return id
}

// seedAccount inserts an account directly into the store and returns its ID.
func seedAccount(store *memStore, name, email string, role entity.Role, passwordHash string) uuid.UUID {
	id := uuid.New()
	store.accounts[id] = entity.Account{
		ID:           id,
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: passwordHash,
	}

	return id
}
