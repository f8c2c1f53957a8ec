package service

import (
	"context"
	"sync"
	"time"

	"github.com/Pakayi/pos-kasir/internal/domain"
	"github.com/Pakayi/pos-kasir/internal/repository"
)

// memStore is an in-memory RecordStore for tests.
type memStore struct {
	mu       sync.Mutex
	txs      []domain.Transaction
	products map[string]domain.Product
	settings domain.AppSettings
	profile  domain.UserProfile
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]domain.Product),
		profile:  domain.UserProfile{Role: domain.RoleOwner},
	}
}

func (m *memStore) ListTransactions(context.Context) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Transaction, len(m.txs))
	copy(out, m.txs)
	return out, nil
}

func (m *memStore) CreateTransaction(_ context.Context, tx domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs = append(m.txs, tx)
	return nil
}

func (m *memStore) ListProducts(context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) GetProductByID(_ context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m *memStore) CreateProduct(_ context.Context, id string, input repository.ProductCreateInput) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	p := domain.Product{
		ID:            id,
		ProductName:   input.ProductName,
		SellPrice:     input.SellPrice,
		Stock:         input.Stock,
		MinStockAlert: input.MinStockAlert,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	m.products[id] = p
	return p, nil
}

func (m *memStore) PatchProduct(_ context.Context, id string, input repository.ProductPatchInput) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if input.ProductName != nil {
		p.ProductName = *input.ProductName
	}
	if input.SellPrice != nil {
		p.SellPrice = *input.SellPrice
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.MinStockAlert != nil {
		p.MinStockAlert = *input.MinStockAlert
	}
	p.UpdatedAt = time.Now()
	m.products[id] = p
	return &p, nil
}

func (m *memStore) DeleteProduct(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memStore) GetSettings(context.Context) (domain.AppSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings, nil
}

func (m *memStore) SaveSettings(_ context.Context, s domain.AppSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s
	return nil
}

func (m *memStore) GetProfile(context.Context) (domain.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profile, nil
}

func (m *memStore) SaveProfile(_ context.Context, p domain.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = p
	return nil
}

func (m *memStore) SetProfileRole(_ context.Context, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile.Role = role
	return nil
}
