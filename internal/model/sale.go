package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is immutable after creation: the only lifecycle events are the
// atomic insert performed by the sale engine and the debug wipe.
type Sale struct {
	ID    uint            `gorm:"primaryKey" json:"id"`
	Date  time.Time       `gorm:"index;not null" json:"date"`
	Total decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`

	Items []SaleLineItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// SaleLineItem captures quantity and unit price at sale time; it never
// tracks later product price changes.
type SaleLineItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	SaleID    uint            `gorm:"index;not null" json:"sale_id"`
	ProductID uint            `gorm:"index;not null" json:"product_id"`
	Quantity  decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`

	// A product with live line items cannot be deleted.
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"-"`
}

// SaleItemInput is one cart entry as supplied by the caller. The unit
// price is trusted as captured at cart-build time, not re-read from the
// product.
type SaleItemInput struct {
	ProductID uint            `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gte=0"`
}

// Subtotal applies the single money-rounding policy: two decimal
// places, fixed at subtotal computation time.
func (i SaleItemInput) SubtotalValue() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice).Round(2)
}
