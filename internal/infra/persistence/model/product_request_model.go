package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductRequestModel mirrors the 'product_requests' table.
type ProductRequestModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProductID         uuid.UUID `gorm:"type:uuid;not null;index"`
	SellerID          uuid.UUID `gorm:"type:uuid;not null;index"`
	QuantityRequested int       `gorm:"not null;check:quantity_requested > 0"`
	Status            string    `gorm:"type:varchar(20);not null"`
	Notes             string    `gorm:"type:text"`
	AdminNotes        string    `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductRequestModel) TableName() string {
	return "product_requests"
}
