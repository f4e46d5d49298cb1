package renderer

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
)

// thermalRenderer lays the receipt out on an 80mm roll: centered shop
// header, dashed rule, two-column metadata, a compact item table with
// truncated names and integer-rounded amounts, totals with a larger bold
// grand total, and a fixed footer line.
type thermalRenderer struct{}

const (
	thermalWidth  = 80.0
	thermalHeight = 200.0
	thermalLeft   = 4.0
	thermalRight  = 76.0
	thermalCenter = 40.0
)

func (r *thermalRenderer) Render(receipt *entity.Receipt) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: thermalWidth, Ht: thermalHeight},
	})
	pdf.SetCompression(false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(0, 5)
	pdf.CellFormat(thermalWidth, 4, receipt.Header.ShopName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(thermalWidth, 3.5, receipt.Header.Address, "", 1, "C", false, 0, "")
	pdf.CellFormat(thermalWidth, 3.5, "Ph: "+receipt.Header.Phone, "", 1, "C", false, 0, "")
	if receipt.Header.GSTIN != "" {
		pdf.CellFormat(thermalWidth, 3.5, "GSTIN: "+receipt.Header.GSTIN, "", 1, "C", false, 0, "")
	}

	rule := pdf.GetY() + 1
	pdf.SetDashPattern([]float64{1, 1}, 0)
	pdf.Line(thermalLeft, rule, thermalRight, rule)
	pdf.SetDashPattern([]float64{}, 0)

	// Customer metadata: name/date on one row, mobile/bill number on the next.
	y := rule + 4
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(thermalLeft, y, "Name: "+receipt.CustomerName)
	rightText(pdf, thermalRight, y, receipt.Date)
	y += 5
	if receipt.CustomerMobile != "" {
		pdf.Text(thermalLeft, y, "Mob: "+receipt.CustomerMobile)
	}
	rightText(pdf, thermalRight, y, "Bill No: #"+receipt.InvoiceNo)
	y += 4

	// Item table
	pdf.SetXY(3, y)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(220, 220, 220)
	pdf.CellFormat(30, 4, "Item", "", 0, "L", true, 0, "")
	pdf.CellFormat(10, 4, "Qty", "", 0, "C", true, 0, "")
	pdf.CellFormat(15, 4, "Price", "", 0, "R", true, 0, "")
	pdf.CellFormat(15, 4, "Tot", "", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, item := range receipt.Items {
		pdf.SetX(3)
		pdf.CellFormat(30, 4, truncateName(item.Name, 12), "", 0, "L", false, 0, "")
		pdf.CellFormat(10, 4, fmt.Sprintf("%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(15, 4, fmt.Sprintf("%.0f", math.Round(item.UnitPrice)), "", 0, "R", false, 0, "")
		pdf.CellFormat(15, 4, fmt.Sprintf("%.0f", math.Round(item.Total)), "", 1, "R", false, 0, "")
	}

	// Totals block
	y = pdf.GetY() + 5
	pdf.SetFont("Helvetica", "", 8)
	rightText(pdf, thermalRight, y, fmt.Sprintf("Subtotal: %.2f", receipt.SubTotal))
	y += 4
	rightText(pdf, thermalRight, y, fmt.Sprintf("Tax: %.2f", receipt.Tax))
	y += 5
	pdf.SetFont("Helvetica", "B", 11)
	rightText(pdf, thermalRight, y, fmt.Sprintf("TOTAL: Rs. %.2f", receipt.GrandTotal))

	if receipt.Header.UPIID != "" {
		if err := drawPaymentQR(pdf, receipt, thermalCenter-11, y+4, 22); err != nil {
			return nil, err
		}
		y += 28
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 7)
	pdf.SetXY(0, y+6)
	pdf.CellFormat(thermalWidth, 3.5, "*** Thank You Visit Again ***", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("renderer: thermal output failed: %w", err)
	}
	return buf.Bytes(), nil
}

// rightText draws a string with its right edge at x.
func rightText(pdf *gofpdf.Fpdf, x, y float64, s string) {
	pdf.Text(x-pdf.GetStringWidth(s), y, s)
}
