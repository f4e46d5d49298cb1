package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
	"github.com/Naveenv26/mobile-bill/pkg/apperror"
)

func reportInvoices() []entity.Invoice {
	day1 := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 12, 9, 30, 0, 0, time.UTC)
	return []entity.Invoice{
		{ID: 1, Number: "INV-1", CustomerName: "Asha", TaxTotal: 36, GrandTotal: 286, CreatedAt: day1,
			Items: []entity.InvoiceItem{{Product: 1, Qty: 2}, {Product: 2, Qty: 1}}},
		{ID: 2, Number: "INV-2", CustomerName: "Ravi", GrandTotal: 100, CreatedAt: day1},
		{ID: 3, Number: "INV-3", GrandTotal: 50, CreatedAt: day2},
	}
}

type listingInvoiceRepo struct {
	fakeInvoiceRepo
	invoices []entity.Invoice
}

func (f *listingInvoiceRepo) List(ctx context.Context, from, to time.Time) ([]entity.Invoice, error) {
	return f.invoices, nil
}

func TestSalesSummaryAggregatesByDay(t *testing.T) {
	repo := &listingInvoiceRepo{invoices: reportInvoices()}
	svc := NewReportService(repo, &fakeFeatures{enabled: map[string]bool{"reports": true}})

	summary, err := svc.SalesSummary(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Invoices)
	assert.InDelta(t, 436.0, summary.GrandTotal, 1e-9)
	assert.InDelta(t, 36.0, summary.TaxTotal, 1e-9)
	require.Len(t, summary.Days, 2)
	assert.Equal(t, "2025-03-10", summary.Days[0].Date)
	assert.Equal(t, 2, summary.Days[0].Invoices)
	assert.InDelta(t, 386.0, summary.Days[0].Total, 1e-9)
	assert.InDelta(t, 36.0, summary.Days[0].Tax, 1e-9)
	assert.Equal(t, "2025-03-12", summary.Days[1].Date)
}

func TestSalesSummaryRequiresReportsFeature(t *testing.T) {
	svc := NewReportService(&listingInvoiceRepo{}, &fakeFeatures{enabled: map[string]bool{}})
	_, err := svc.SalesSummary(context.Background(), time.Time{}, time.Time{})
	assert.ErrorIs(t, err, apperror.ErrPlanRequired)
}

func TestExportXLSX(t *testing.T) {
	repo := &listingInvoiceRepo{invoices: reportInvoices()}
	svc := NewReportService(repo, &fakeFeatures{enabled: map[string]bool{"export": true}})

	path := filepath.Join(t.TempDir(), "sales.xlsx")
	require.NoError(t, svc.ExportXLSX(context.Background(), time.Time{}, time.Time{}, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sales")
	require.NoError(t, err)
	// Header, three invoices, totals row.
	require.Len(t, rows, 5)
	assert.Equal(t, "Invoice No", rows[0][0])
	assert.Equal(t, "INV-1", rows[1][0])
	assert.Equal(t, "Asha", rows[1][2])
	assert.Equal(t, "3", rows[1][4], "item quantities are summed")
	assert.Equal(t, "Total", rows[4][4])
}

func TestExportXLSXRequiresExportFeature(t *testing.T) {
	svc := NewReportService(&listingInvoiceRepo{}, &fakeFeatures{enabled: map[string]bool{"reports": true}})
	err := svc.ExportXLSX(context.Background(), time.Time{}, time.Time{}, filepath.Join(t.TempDir(), "x.xlsx"))
	assert.ErrorIs(t, err, apperror.ErrPlanRequired)
}
