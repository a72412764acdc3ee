package entity

import "github.com/google/uuid"

// StockDirection selects whether an adjustment takes stock or returns it.
type StockDirection int

const (
	// StockDebit removes units from stock, failing on shortfall.
	StockDebit StockDirection = iota
	// StockCredit adds units back to stock.
	StockCredit
)

// StockAdjustment is one product/quantity pair of a stock adjustment set.
type StockAdjustment struct {
	ProductID uuid.UUID
	Quantity  int
}
