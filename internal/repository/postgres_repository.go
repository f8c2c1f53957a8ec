package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Pakayi/pos-kasir/internal/domain"
)

var ErrNotFound = errors.New("not found")

type ProductCreateInput struct {
	ProductName   string
	SellPrice     int64
	Stock         int
	MinStockAlert int
}

type ProductPatchInput struct {
	ProductName   *string
	SellPrice     *int64
	Stock         *int
	MinStockAlert *int
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListTransactions reads the full transaction log in insertion order. The
// log is assumed to fit in memory; the dashboard aggregates it wholesale.
func (r *Repository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, ts, total_amount, payment_method
		FROM transactions
		ORDER BY ts ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]domain.Transaction, 0, 256)
	for rows.Next() {
		var tx domain.Transaction
		var method string
		if err := rows.Scan(&tx.ID, &tx.Timestamp, &tx.TotalAmount, &method); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.PaymentMethod = domain.PaymentMethod(method)
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

func (r *Repository) CreateTransaction(ctx context.Context, tx domain.Transaction) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO transactions (id, ts, total_amount, payment_method)
		VALUES ($1, $2, $3, $4)
	`, tx.ID, tx.Timestamp, tx.TotalAmount, string(tx.PaymentMethod))
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *Repository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_name, sell_price, stock, min_stock_alert, created_at, updated_at
		FROM products
		ORDER BY product_name ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, 64)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (r *Repository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, product_name, sell_price, stock, min_stock_alert, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) CreateProduct(ctx context.Context, id string, input ProductCreateInput) (domain.Product, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (id, product_name, sell_price, stock, min_stock_alert)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, product_name, sell_price, stock, min_stock_alert, created_at, updated_at
	`, id, input.ProductName, input.SellPrice, input.Stock, input.MinStockAlert)
	p, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

func (r *Repository) PatchProduct(ctx context.Context, id string, input ProductPatchInput) (*domain.Product, error) {
	sets := make([]string, 0, 4)
	args := []any{id}
	argIndex := 2

	appendSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if input.ProductName != nil {
		appendSet("product_name", strings.TrimSpace(*input.ProductName))
	}
	if input.SellPrice != nil {
		appendSet("sell_price", *input.SellPrice)
	}
	if input.Stock != nil {
		appendSet("stock", *input.Stock)
	}
	if input.MinStockAlert != nil {
		appendSet("min_stock_alert", *input.MinStockAlert)
	}
	if len(sets) == 0 {
		return r.GetProductByID(ctx, id)
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE products SET %s
		WHERE id = $1
		RETURNING id, product_name, sell_price, stock, min_stock_alert, created_at, updated_at
	`, strings.Join(sets, ", "))

	row := r.pool.QueryRow(ctx, query, args...)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("patch product: %w", err)
	}
	return &p, nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) GetSettings(ctx context.Context) (domain.AppSettings, error) {
	var s domain.AppSettings
	err := r.pool.QueryRow(ctx, `
		SELECT store_name, store_address, store_phone, enable_tax, tax_rate, footer_message, updated_at
		FROM app_settings
		WHERE id = 1
	`).Scan(&s.StoreName, &s.StoreAddress, &s.StorePhone, &s.EnableTax, &s.TaxRate, &s.FooterMessage, &s.UpdatedAt)
	if err != nil {
		return domain.AppSettings{}, fmt.Errorf("get settings: %w", err)
	}
	return s, nil
}

func (r *Repository) SaveSettings(ctx context.Context, s domain.AppSettings) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE app_settings
		SET store_name = $1, store_address = $2, store_phone = $3,
		    enable_tax = $4, tax_rate = $5, footer_message = $6, updated_at = NOW()
		WHERE id = 1
	`, s.StoreName, s.StoreAddress, s.StorePhone, s.EnableTax, s.TaxRate, s.FooterMessage)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (r *Repository) GetProfile(ctx context.Context) (domain.UserProfile, error) {
	var p domain.UserProfile
	err := r.pool.QueryRow(ctx, `
		SELECT owner_name, store_name, role, warung_id, updated_at
		FROM user_profile
		WHERE id = 1
	`).Scan(&p.OwnerName, &p.StoreName, &p.Role, &p.WarungID, &p.UpdatedAt)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (r *Repository) SaveProfile(ctx context.Context, p domain.UserProfile) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE user_profile
		SET owner_name = $1, store_name = $2, role = $3, warung_id = $4, updated_at = NOW()
		WHERE id = 1
	`, p.OwnerName, p.StoreName, p.Role, p.WarungID)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// SetProfileRole is the data-correction escape hatch behind the
// "force role to owner" action.
func (r *Repository) SetProfileRole(ctx context.Context, role string) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE user_profile SET role = $1, updated_at = NOW() WHERE id = 1", role)
	if err != nil {
		return fmt.Errorf("set profile role: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.ProductName, &p.SellPrice, &p.Stock, &p.MinStockAlert, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, err
		}
		return domain.Product{}, fmt.Errorf("scan product: %w", err)
	}
	return p, nil
}
