package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Measurement units a product can be sold in. Weight-based units allow
// fractional stock and quantities.
const (
	UnitPiece    = "unit"
	UnitKilogram = "kilogram"
	UnitPound    = "pound"
)

type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category  string          `gorm:"type:varchar(120);index" json:"category"`
	CostPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"cost_price" validate:"gte=0"`
	SalePrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"sale_price" validate:"gte=0"`
	Unit      string          `gorm:"type:varchar(20)" json:"unit" validate:"omitempty,oneof=unit kilogram pound"`
	Stock     decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"stock" validate:"gte=0"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductPatch is a partial update; nil fields are left unchanged.
type ProductPatch struct {
	Name      *string          `json:"name"`
	Category  *string          `json:"category"`
	CostPrice *decimal.Decimal `json:"cost_price" validate:"omitempty,gte=0"`
	SalePrice *decimal.Decimal `json:"sale_price" validate:"omitempty,gte=0"`
	Unit      *string          `json:"unit" validate:"omitempty,oneof=unit kilogram pound"`
	Stock     *decimal.Decimal `json:"stock" validate:"omitempty,gte=0"`
}

// Empty reports whether the patch would change nothing.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Category == nil && p.CostPrice == nil &&
		p.SalePrice == nil && p.Unit == nil && p.Stock == nil
}
