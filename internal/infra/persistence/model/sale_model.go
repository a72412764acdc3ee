package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleRecordModel mirrors the 'sale_records' table. Rows are append-only.
type SaleRecordModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Source      string          `gorm:"type:varchar(20);not null"`
	OrderID     *uuid.UUID      `gorm:"type:uuid;index"`
	SellerID    *uuid.UUID      `gorm:"type:uuid;index"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Notes       string          `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"index"`

	Items []SaleItemModel `gorm:"foreignKey:SaleRecordID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (SaleRecordModel) TableName() string {
	return "sale_records"
}

// SaleItemModel mirrors the 'sale_items' table.
type SaleItemModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	SaleRecordID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName  string          `gorm:"type:varchar(255);not null"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity     int             `gorm:"not null;check:quantity > 0"`
}

// TableName explicitly sets the table name for GORM.
func (SaleItemModel) TableName() string {
	return "sale_items"
}
