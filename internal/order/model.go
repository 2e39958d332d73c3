package order

import (
	"time"

	"github.com/google/uuid"
)

// Order status is a display string, not an enforced state machine. The
// provider is the source of truth; updates are last-write-wins.
type Order struct {
	ID            uuid.UUID
	UserID        uint
	Total         int64 // centavos
	Status        string
	TransactionID *string // id_transacao, correlates to the provider charge
	BrCode        string
	QRCodeImage   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []OrderItem
}

type OrderItem struct {
	ID            uint
	OrderID       uuid.UUID
	ProductID     uint
	ProductName   string
	Quantity      int
	Price         int64 // unit price in centavos
	SellerPixKey  string
}

type Filter struct {
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
}
