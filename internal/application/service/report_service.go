package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
	"github.com/Naveenv26/mobile-bill/internal/domain/repository"
	"github.com/Naveenv26/mobile-bill/pkg/apperror"
)

// DailySales is one row of the sales summary.
type DailySales struct {
	Date     string
	Invoices int
	Tax      float64
	Total    float64
}

// SalesSummary aggregates a date range of invoices.
type SalesSummary struct {
	From       time.Time
	To         time.Time
	Days       []DailySales
	Invoices   int
	TaxTotal   float64
	GrandTotal float64
}

// ReportService aggregates invoices into sales summaries and spreadsheet
// exports. Both operations are plan-gated.
type ReportService struct {
	invoices repository.InvoiceRepository
	features FeatureChecker
}

// NewReportService creates a new report service.
func NewReportService(invoices repository.InvoiceRepository, features FeatureChecker) *ReportService {
	return &ReportService{invoices: invoices, features: features}
}

// SalesSummary builds a per-day aggregation of invoices in the range.
// Requires the reports feature.
func (s *ReportService) SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error) {
	if err := s.require(ctx, "reports"); err != nil {
		return nil, err
	}

	invoices, err := s.invoices.List(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*DailySales)
	summary := &SalesSummary{From: from, To: to, Invoices: len(invoices)}
	for _, inv := range invoices {
		day := inv.CreatedAt.Format("2006-01-02")
		row, ok := byDay[day]
		if !ok {
			row = &DailySales{Date: day}
			byDay[day] = row
		}
		row.Invoices++
		row.Tax += inv.TaxTotal.Float()
		row.Total += inv.GrandTotal.Float()
		summary.TaxTotal += inv.TaxTotal.Float()
		summary.GrandTotal += inv.GrandTotal.Float()
	}

	for _, row := range byDay {
		summary.Days = append(summary.Days, *row)
	}
	sort.Slice(summary.Days, func(i, j int) bool {
		return summary.Days[i].Date < summary.Days[j].Date
	})
	return summary, nil
}

// ExportXLSX writes the invoices in the range to a spreadsheet with one
// row per invoice and a totals row. Requires the export feature.
func (s *ReportService) ExportXLSX(ctx context.Context, from, to time.Time, path string) error {
	if err := s.require(ctx, "export"); err != nil {
		return err
	}

	invoices, err := s.invoices.List(ctx, from, to)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sales"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("report: failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Invoice No", "Date", "Customer", "Mobile", "Items", "Grand Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	var grandTotal float64
	for row, inv := range invoices {
		values := []any{
			inv.Ref(),
			inv.CreatedAt.Format("02/01/2006"),
			inv.CustomerName,
			inv.CustomerMobile,
			itemCount(inv),
			inv.GrandTotal.Float(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
		grandTotal += inv.GrandTotal.Float()
	}

	totalRow := len(invoices) + 2
	labelCell, _ := excelize.CoordinatesToCellName(5, totalRow)
	valueCell, _ := excelize.CoordinatesToCellName(6, totalRow)
	f.SetCellValue(sheet, labelCell, "Total")
	f.SetCellValue(sheet, valueCell, grandTotal)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: failed to save %s: %w", path, err)
	}
	return nil
}

func (s *ReportService) require(ctx context.Context, feature string) error {
	if s.features == nil {
		return nil
	}
	ok, err := s.features.HasFeature(ctx, feature)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrPlanRequired
	}
	return nil
}

func itemCount(inv entity.Invoice) int {
	n := 0
	for _, item := range inv.Items {
		n += item.Qty
	}
	return n
}
