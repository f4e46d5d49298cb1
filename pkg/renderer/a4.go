package renderer

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
)

// a4Renderer lays the receipt out on a standard sheet: shop identity block
// with a right-aligned INVOICE title, a Bill To block opposite the invoice
// number and date, a numbered full item table with alternating row shading,
// a totals block ending in a bold Grand Total, and a centered footer.
type a4Renderer struct{}

const (
	a4Width  = 210.0
	a4Margin = 15.0
)

func (r *a4Renderer) Render(receipt *entity.Receipt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetMargins(a4Margin, a4Margin, a4Margin)
	pdf.AddPage()

	usable := a4Width - 2*a4Margin

	// Shop identity on the left, INVOICE title on the right.
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(usable/2, 8, receipt.Header.ShopName, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(usable/2, 8, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.MultiCell(usable/2, 4.5, receipt.Header.Address, "", "L", false)
	pdf.CellFormat(usable/2, 4.5, "Ph: "+receipt.Header.Phone, "", 1, "L", false, 0, "")
	if receipt.Header.GSTIN != "" {
		pdf.CellFormat(usable/2, 4.5, "GSTIN: "+receipt.Header.GSTIN, "", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(8)

	// Bill To block and invoice metadata on opposite sides.
	top := pdf.GetY()
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(usable/2, 5, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(usable/2, 5, receipt.CustomerName, "", 1, "L", false, 0, "")
	if receipt.CustomerMobile != "" {
		pdf.CellFormat(usable/2, 5, receipt.CustomerMobile, "", 1, "L", false, 0, "")
	}

	pdf.SetXY(a4Margin+usable/2, top)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(usable/2, 5, "Invoice No: #"+receipt.InvoiceNo, "", 2, "R", false, 0, "")
	pdf.CellFormat(usable/2, 5, "Date: "+receipt.Date, "", 2, "R", false, 0, "")
	pdf.Ln(10)

	// Item table: numbered rows, unit price, qty, tax percent, line total.
	colW := []float64{12, 78, 25, 15, 20, 30}
	headers := []string{"#", "Item", "Price", "Qty", "Tax %", "Total"}
	aligns := []string{"C", "L", "R", "C", "R", "R"}

	pdf.SetY(top + 22)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(50, 50, 50)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(colW[i], 8, h, "", 0, aligns[i], true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(245, 245, 245)
	for i, item := range receipt.Items {
		fill := i%2 == 1
		cells := []string{
			fmt.Sprintf("%d", i+1),
			item.Name,
			fmt.Sprintf("%.2f", item.UnitPrice),
			fmt.Sprintf("%d", item.Quantity),
			fmt.Sprintf("%.1f", item.TaxRate),
			fmt.Sprintf("%.2f", item.Total),
		}
		for j, cell := range cells {
			pdf.CellFormat(colW[j], 7, cell, "", 0, aligns[j], fill, 0, "")
		}
		pdf.Ln(-1)
	}

	// Totals block
	pdf.Ln(4)
	labelW := usable - 40
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(labelW, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", receipt.SubTotal), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, 6, "Tax", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", receipt.Tax), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(labelW, 8, "Grand Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("Rs. %.2f", receipt.GrandTotal), "", 1, "R", false, 0, "")

	if receipt.Header.UPIID != "" {
		if err := drawPaymentQR(pdf, receipt, a4Margin, pdf.GetY()+4, 30); err != nil {
			return nil, err
		}
	}

	// Bank details and terms go in the footer area when configured.
	if receipt.BankDetails != "" {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(usable, 5, "Bank Details", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(usable, 4.5, receipt.BankDetails, "", "L", false)
	}
	if receipt.Terms != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(usable, 5, "Terms & Conditions", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(usable, 4.5, receipt.Terms, "", "L", false)
	}

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(usable, 6, "Thank you for your business!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("renderer: A4 output failed: %w", err)
	}
	return buf.Bytes(), nil
}
