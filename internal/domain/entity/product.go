// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable item in the catalog. Stock is the single source of
// truth for availability and must never go negative.
type Product struct {
	ID          uuid.UUID       // The Global Unique Identifier (GUID) for the product.
	Name        string          // Display name shown in the catalog.
	Description string          // Free-form product description.
	UnitPrice   decimal.Decimal // Current unit price; line snapshots freeze it at order time.
	Stock       int             // Units currently on hand.
	ImageURL    string          // URL of the stored product image, empty if none uploaded.
	CreatedAt   time.Time       // Timestamp of when this product was created.
	UpdatedAt   time.Time       // Timestamp of the last modification to this product.
}
