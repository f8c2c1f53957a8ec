package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Pakayi/pos-kasir/internal/domain"
	"github.com/Pakayi/pos-kasir/internal/event"
	"github.com/Pakayi/pos-kasir/internal/repository"
)

// RecordStore is the persistence boundary. The dashboard only ever reads;
// the writer methods publish the matching bus signal after the commit.
type RecordStore interface {
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	CreateTransaction(ctx context.Context, tx domain.Transaction) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, id string, input repository.ProductCreateInput) (domain.Product, error)
	PatchProduct(ctx context.Context, id string, input repository.ProductPatchInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	GetSettings(ctx context.Context) (domain.AppSettings, error)
	SaveSettings(ctx context.Context, s domain.AppSettings) error
	GetProfile(ctx context.Context) (domain.UserProfile, error)
	SaveProfile(ctx context.Context, p domain.UserProfile) error
	SetProfileRole(ctx context.Context, role string) error
}

type Service struct {
	store RecordStore
	bus   *event.Bus
	now   func() time.Time
}

func New(store RecordStore, bus *event.Bus, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, bus: bus, now: now}
}

func (s *Service) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

// RecordTransaction appends a sale to the log and signals every dashboard
// subscriber once the write has committed. The timestamp defaults to now;
// importing writers may supply their own.
func (s *Service) RecordTransaction(ctx context.Context, amount int64, method domain.PaymentMethod, ts *time.Time) (domain.Transaction, error) {
	if amount < 0 {
		return domain.Transaction{}, fmt.Errorf("total_amount must not be negative")
	}
	if !method.Known() {
		return domain.Transaction{}, fmt.Errorf("unknown payment_method %q", method)
	}

	tx := domain.Transaction{
		ID:            uuid.NewString(),
		Timestamp:     s.now(),
		TotalAmount:   amount,
		PaymentMethod: method,
	}
	if ts != nil {
		tx.Timestamp = *ts
	}

	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		return domain.Transaction{}, err
	}
	s.bus.Publish(event.TransactionsChanged)
	return tx, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.store.ListProducts(ctx)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.store.GetProductByID(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, input repository.ProductCreateInput) (domain.Product, error) {
	input.ProductName = strings.TrimSpace(input.ProductName)
	if input.ProductName == "" {
		return domain.Product{}, fmt.Errorf("product_name is required")
	}
	if input.Stock < 0 || input.MinStockAlert < 0 || input.SellPrice < 0 {
		return domain.Product{}, fmt.Errorf("stock, min_stock_alert and sell_price must not be negative")
	}

	product, err := s.store.CreateProduct(ctx, uuid.NewString(), input)
	if err != nil {
		return domain.Product{}, err
	}
	s.bus.Publish(event.TransactionsChanged)
	return product, nil
}

func (s *Service) PatchProduct(ctx context.Context, id string, input repository.ProductPatchInput) (*domain.Product, error) {
	product, err := s.store.PatchProduct(ctx, id, input)
	if err != nil {
		return nil, err
	}
	// Stock and threshold edits move the low-stock count, so any patch
	// refreshes the dashboard.
	s.bus.Publish(event.TransactionsChanged)
	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.bus.Publish(event.TransactionsChanged)
	return nil
}

func (s *Service) GetSettings(ctx context.Context) (domain.AppSettings, error) {
	return s.store.GetSettings(ctx)
}

func (s *Service) SaveSettings(ctx context.Context, settings domain.AppSettings) error {
	return s.store.SaveSettings(ctx, settings)
}

func (s *Service) GetProfile(ctx context.Context) (domain.UserProfile, error) {
	return s.store.GetProfile(ctx)
}

func (s *Service) SaveProfile(ctx context.Context, profile domain.UserProfile) error {
	if profile.Role != domain.RoleOwner && profile.Role != domain.RoleStaff {
		return fmt.Errorf("role must be %q or %q", domain.RoleOwner, domain.RoleStaff)
	}
	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return err
	}
	s.bus.Publish(event.ProfileChanged)
	return nil
}

// ForceOwnerRole is the manual recovery action for a profile stuck on the
// staff role.
func (s *Service) ForceOwnerRole(ctx context.Context) error {
	if err := s.store.SetProfileRole(ctx, domain.RoleOwner); err != nil {
		return err
	}
	s.bus.Publish(event.ProfileChanged)
	return nil
}
