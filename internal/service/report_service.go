package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Informaticspro/proyecto-factura/internal/model"
	"github.com/Informaticspro/proyecto-factura/internal/storage"
)

// DailyTotal is one bucket of the daily sales chart.
type DailyTotal struct {
	Day   string          `json:"day"` // 2006-01-02 in the report zone
	Total decimal.Decimal `json:"total"`
}

// MonthlyTotal is one bucket of the annual statistics chart.
type MonthlyTotal struct {
	Month string          `json:"month"` // 2006-01 in the report zone
	Total decimal.Decimal `json:"total"`
}

// FinanceReport is the financial overview derived from all sales.
type FinanceReport struct {
	Income    decimal.Decimal `json:"income"`
	Cost      decimal.Decimal `json:"cost"`
	Profit    decimal.Decimal `json:"profit"`
	SaleCount int64           `json:"sale_count"`
	Average   decimal.Decimal `json:"average_per_sale"`
}

type ReportService interface {
	DailyTotals(days int) ([]DailyTotal, error)
	MonthlyTotals(year int) ([]MonthlyTotal, error)
	LowStock() ([]model.Product, error)
	Stats() (*storage.Stats, error)
	Finance() (*FinanceReport, error)
	// RawQuery is the escape hatch for reporting views. Backends
	// without a dialect degrade to an empty result set.
	RawQuery(query string, args ...interface{}) ([]map[string]interface{}, error)
}

type reportService struct {
	store    storage.Store
	loc      *time.Location
	lowStock decimal.Decimal
	log      *zap.Logger
}

// NewReportService wires the single canonical timezone: every
// time-bucketed query converts timestamps into loc before grouping.
func NewReportService(store storage.Store, loc *time.Location, lowStockThreshold int, log *zap.Logger) ReportService {
	return &reportService{
		store:    store,
		loc:      loc,
		lowStock: decimal.NewFromInt(int64(lowStockThreshold)),
		log:      log,
	}
}

func (s *reportService) DailyTotals(days int) ([]DailyTotal, error) {
	if days <= 0 {
		days = 14
	}
	now := time.Now().In(s.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, -(days - 1))
	end := start.AddDate(0, 0, days)

	rows, err := s.store.SalesBetween(start, end)
	if err != nil {
		return nil, err
	}

	buckets := map[string]decimal.Decimal{}
	for _, r := range rows {
		key := r.Date.In(s.loc).Format("2006-01-02")
		buckets[key] = buckets[key].Add(r.Total)
	}

	// Empty days render as zero so charts stay continuous.
	totals := make([]DailyTotal, 0, days)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		totals = append(totals, DailyTotal{Day: key, Total: buckets[key]})
	}
	return totals, nil
}

func (s *reportService) MonthlyTotals(year int) ([]MonthlyTotal, error) {
	if year <= 0 {
		year = time.Now().In(s.loc).Year()
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc)
	end := start.AddDate(1, 0, 0)

	rows, err := s.store.SalesBetween(start, end)
	if err != nil {
		return nil, err
	}

	buckets := map[string]decimal.Decimal{}
	for _, r := range rows {
		key := r.Date.In(s.loc).Format("2006-01")
		buckets[key] = buckets[key].Add(r.Total)
	}

	totals := make([]MonthlyTotal, 0, 12)
	for m := time.January; m <= time.December; m++ {
		key := fmt.Sprintf("%04d-%02d", year, int(m))
		totals = append(totals, MonthlyTotal{Month: key, Total: buckets[key]})
	}
	return totals, nil
}

func (s *reportService) LowStock() ([]model.Product, error) {
	return s.store.LowStockProducts(s.lowStock)
}

func (s *reportService) Stats() (*storage.Stats, error) {
	return s.store.Stats(s.lowStock)
}

func (s *reportService) Finance() (*FinanceReport, error) {
	summary, err := s.store.FinanceSummary()
	if err != nil {
		return nil, err
	}

	report := &FinanceReport{
		Income:    summary.Income,
		Cost:      summary.Cost,
		Profit:    summary.Income.Sub(summary.Cost),
		SaleCount: summary.SaleCount,
	}
	if summary.SaleCount > 0 {
		report.Average = summary.Income.Div(decimal.NewFromInt(summary.SaleCount)).Round(2)
	} else {
		report.Average = decimal.Zero
	}
	return report, nil
}

func (s *reportService) RawQuery(query string, args ...interface{}) ([]map[string]interface{}, error) {
	rows, err := s.store.RawQuery(query, args...)
	if errors.Is(err, storage.ErrRawQueryUnsupported) {
		s.log.Debug("raw query unsupported by active backend, returning empty result")
		return []map[string]interface{}{}, nil
	}
	return rows, err
}
