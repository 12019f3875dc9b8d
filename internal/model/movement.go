package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type MovementType string

const (
	MovementIn  MovementType = "inbound"
	MovementOut MovementType = "outbound"
)

// DefaultMovementReason is recorded when a manual entry arrives with a
// blank reason. Sale-derived entries carry "sale #<id>" instead.
const DefaultMovementReason = "inventory adjustment"

// Movement is one row of the append-only stock ledger. Entries are
// never updated or deleted except by the debug wipe, and every entry is
// written in the same atomic scope as the stock change it describes.
type Movement struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ProductID uint            `gorm:"index;not null" json:"product_id" validate:"required"`
	Type      MovementType    `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=inbound outbound"`
	Quantity  decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity" validate:"gt=0"`
	Date      time.Time       `gorm:"index;not null" json:"date"`
	Reason    string          `gorm:"type:text" json:"reason"`

	// Ledger rows follow their product out of the database.
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}
