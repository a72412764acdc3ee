package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AccountModel mirrors the 'accounts' table. Default shipping/billing
// snapshots are stored as JSON documents since they are read and written
// whole, never queried by field.
type AccountModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email           string    `gorm:"type:varchar(255);unique;not null"`
	Name            string    `gorm:"type:varchar(100);not null"`
	Role            string    `gorm:"type:varchar(20);not null"`
	PasswordHash    string    `gorm:"type:varchar(255);not null"`
	DefaultShipping datatypes.JSON
	DefaultBilling  datatypes.JSON
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
