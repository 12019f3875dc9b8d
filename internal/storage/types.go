package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleSummary is one row of the sales list view.
type SaleSummary struct {
	ID        uint            `json:"id"`
	Date      time.Time       `json:"date"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// LineItemEntry is a sale line item joined with its product name.
type LineItemEntry struct {
	ID          uint            `json:"id"`
	SaleID      uint            `json:"sale_id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// MovementEntry is a ledger row joined with its product name.
type MovementEntry struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Date        time.Time       `json:"date"`
	Reason      string          `json:"reason"`
}

// SaleTotal is the raw (timestamp, total) pair consumed by the report
// layer; day/month bucketing happens there, in one configured timezone.
type SaleTotal struct {
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// Stats is the dashboard overview.
type Stats struct {
	TotalProducts  int64           `json:"total_products"`
	LowStockCount  int64           `json:"low_stock_count"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}

// FinanceSummary aggregates all recorded sales. Profit and the average
// ticket are derived by the report service.
type FinanceSummary struct {
	Income    decimal.Decimal `json:"income"`
	Cost      decimal.Decimal `json:"cost"`
	SaleCount int64           `json:"sale_count"`
}
