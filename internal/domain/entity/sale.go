package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleSource distinguishes how a sale happened.
type SaleSource string

const (
	// SaleSourceOnline marks the sale record paired with an online order.
	SaleSourceOnline SaleSource = "Online"
	// SaleSourceSellerDirect marks a sale logged manually by a seller.
	SaleSourceSellerDirect SaleSource = "Seller Direct"
)

// String returns the string representation of the SaleSource.
func (s SaleSource) String() string {
	return string(s)
}

// SaleRecord is an immutable audit entry. Every online order produces exactly
// one, and sellers produce one per direct sale.
type SaleRecord struct {
	ID          uuid.UUID       // The Global Unique Identifier (GUID) for the record.
	Source      SaleSource      // Online or Seller Direct.
	OrderID     *uuid.UUID      // The paired order, nil for seller-direct sales.
	SellerID    *uuid.UUID      // The logging seller, nil for online sales.
	Items       []SaleItem      // Line items with frozen name/price snapshots.
	TotalAmount decimal.Decimal // Sum of all line subtotals.
	Notes       string          // Optional free-form note from the seller.
	CreatedAt   time.Time       // Timestamp of when the sale happened.
}

// SaleItem is one line of a sale record.
type SaleItem struct {
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// Subtotal returns unit price times quantity for this line.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
