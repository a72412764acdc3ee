package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus tracks fulfillment progress of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderConfirmed OrderStatus = "Confirmed"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
	OrderCancelled OrderStatus = "Cancelled"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	default:
		return false
	}
}

// PaymentStatus tracks payment progress, independently of fulfillment.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "Unpaid"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentRefunded PaymentStatus = "Refunded"
)

// String returns the string representation of the PaymentStatus.
func (s PaymentStatus) String() string {
	return string(s)
}

// IsValid checks if the PaymentStatus is a valid value.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentUnpaid, PaymentPaid, PaymentRefunded:
		return true
	default:
		return false
	}
}

// Order is a customer purchase. Prices and the shipping/billing blocks are
// frozen snapshots taken at placement time.
type Order struct {
	ID               uuid.UUID       // The Global Unique Identifier (GUID) for the order.
	UserID           *uuid.UUID      // Owning account, nil for pure guest orders.
	CustomerName     string          // Name given at checkout.
	CustomerEmail    string          // Email given at checkout.
	Items            []OrderItem     // Line items with frozen name/price snapshots.
	TotalAmount      decimal.Decimal // Sum of all line subtotals.
	Status           OrderStatus     // Fulfillment status.
	PaymentStatus    PaymentStatus   // Payment status, moves on its own axis.
	ShippingAddress  Address         // Shipping snapshot.
	BillingRequested bool            // Whether the customer asked for an invoice.
	BillingDetails   *BillingInfo    // Billing snapshot, nil when no invoice requested.
	CreatedAt        time.Time       // Timestamp of when this order was placed.
	UpdatedAt        time.Time       // Timestamp of the last status change.
}

// OrderItem is one line of an order. ProductName and UnitPrice are copies
// taken from the product row inside the placement transaction.
type OrderItem struct {
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// Subtotal returns unit price times quantity for this line.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
