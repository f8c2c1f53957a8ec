package domain

import "time"

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentQRIS PaymentMethod = "qris"
	PaymentDebt PaymentMethod = "debt"
)

// Known reports whether the method is one of the three supported values.
// Writers guarantee this; readers treat anything else as an upstream bug.
func (m PaymentMethod) Known() bool {
	switch m {
	case PaymentCash, PaymentQRIS, PaymentDebt:
		return true
	}
	return false
}

// Transaction is an append-only sale record. Amounts are whole rupiah.
type Transaction struct {
	ID            string        `json:"id"`
	Timestamp     time.Time     `json:"timestamp"`
	TotalAmount   int64         `json:"total_amount"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

type Product struct {
	ID            string    `json:"id"`
	ProductName   string    `json:"product_name"`
	SellPrice     int64     `json:"sell_price"`
	Stock         int       `json:"stock"`
	MinStockAlert int       `json:"min_stock_alert"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LowStock is threshold-inclusive: a product sitting exactly at its
// configured minimum already needs restocking.
func (p Product) LowStock() bool {
	return p.Stock <= p.MinStockAlert
}

const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

type UserProfile struct {
	OwnerName string    `json:"owner_name"`
	StoreName string    `json:"store_name"`
	Role      string    `json:"role"`
	WarungID  string    `json:"warung_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AppSettings struct {
	StoreName     string    `json:"store_name"`
	StoreAddress  string    `json:"store_address"`
	StorePhone    string    `json:"store_phone"`
	EnableTax     bool      `json:"enable_tax"`
	TaxRate       float64   `json:"tax_rate"`
	FooterMessage string    `json:"footer_message"`
	UpdatedAt     time.Time `json:"updated_at"`
}
