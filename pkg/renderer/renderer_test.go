package renderer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
	"github.com/Naveenv26/mobile-bill/internal/domain/enum"
)

func testShop(paperSize string) *entity.Shop {
	return &entity.Shop{
		ID:           1,
		Name:         "Sri Ganesh Stores",
		Address:      "12 Market Road, Chennai",
		ContactPhone: "044-1234567",
		GSTIN:        "33AAAAA0000A1Z5",
		Config: entity.ShopConfig{
			Invoice: entity.InvoiceConfig{PaperSize: paperSize},
		},
	}
}

func testInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID:             42,
		Number:         "INV-42",
		CustomerName:   "Asha",
		CustomerMobile: "9876543210",
		Items: []entity.InvoiceItem{
			{Product: 1, ProductName: "Tea Powder Premium Gold", Qty: 2, UnitPrice: 100, TaxRate: 18},
			{Product: 2, ProductName: "Sugar", Qty: 1, UnitPrice: 50, TaxRate: 0},
		},
		Subtotal:    250,
		TaxTotal:    36,
		TotalAmount: 250,
		GrandTotal:  286,
		CreatedAt:   time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestBuildReceiptNormalization(t *testing.T) {
	receipt := BuildReceipt(testInvoice(), testShop(""))

	assert.Equal(t, "INV-42", receipt.InvoiceNo)
	assert.Equal(t, "Asha", receipt.CustomerName)
	assert.Equal(t, "15/03/2025", receipt.Date)
	assert.Equal(t, "Sri Ganesh Stores", receipt.Header.ShopName)
	require.Len(t, receipt.Items, 2)
	assert.Equal(t, "Tea Powder Premium Gold", receipt.Items[0].Name)
	assert.InDelta(t, 200.0, receipt.Items[0].Total, 1e-9)
	assert.InDelta(t, 250.0, receipt.SubTotal, 1e-9)
	assert.InDelta(t, 36.0, receipt.Tax, 1e-9)
	assert.InDelta(t, 286.0, receipt.GrandTotal, 1e-9)
}

func TestBuildReceiptFallbacks(t *testing.T) {
	invoice := &entity.Invoice{
		ID: 7,
		Items: []entity.InvoiceItem{
			{Product: 1, Qty: 1, UnitPrice: 100},
		},
		TotalAmount: 100,
		GrandTotal:  118,
	}

	receipt := BuildReceipt(invoice, nil)

	assert.Equal(t, "7", receipt.InvoiceNo, "numeric id stands in for a missing number")
	assert.Equal(t, "Walk-in", receipt.CustomerName)
	assert.Equal(t, "My Shop", receipt.Header.ShopName)
	assert.Equal(t, "Item", receipt.Items[0].Name, "unexpanded product relation gets a placeholder")
	assert.NotEmpty(t, receipt.Date, "missing created_at falls back to now")

	// subtotal from total_amount, tax derived from the grand total.
	assert.InDelta(t, 100.0, receipt.SubTotal, 1e-9)
	assert.InDelta(t, 18.0, receipt.Tax, 1e-9)
	assert.InDelta(t, 118.0, receipt.GrandTotal, 1e-9)
}

func TestBuildReceiptGrandTotalDerived(t *testing.T) {
	invoice := &entity.Invoice{ID: 8, Subtotal: 200, TaxTotal: 10}
	receipt := BuildReceipt(invoice, nil)
	assert.InDelta(t, 210.0, receipt.GrandTotal, 1e-9)
}

func TestForShopSelectsLayout(t *testing.T) {
	assert.IsType(t, &thermalRenderer{}, ForShop(nil))
	assert.IsType(t, &thermalRenderer{}, ForShop(testShop("")))
	assert.IsType(t, &thermalRenderer{}, ForShop(testShop("Thermal 80mm")))
	assert.IsType(t, &a4Renderer{}, ForShop(testShop("A4")))
	assert.IsType(t, &a4Renderer{}, ForShop(testShop("a4 sheet")))

	assert.IsType(t, &a4Renderer{}, ForPaperSize(enum.PaperSizeA4))
	assert.IsType(t, &thermalRenderer{}, ForPaperSize(enum.PaperSizeThermal80))
}

// Compression is disabled in both layouts, so rendered text is visible in
// the raw PDF stream and layouts can be checked structurally.
func TestThermalLayout(t *testing.T) {
	receipt := BuildReceipt(testInvoice(), testShop(""))
	data, err := ForPaperSize(enum.PaperSizeThermal80).Render(receipt)
	require.NoError(t, err)

	pdf := string(data)
	assert.Contains(t, pdf, "%PDF")
	assert.Contains(t, pdf, "Sri Ganesh Stores")
	assert.Contains(t, pdf, "Bill No: #INV-42")
	// Long names are truncated to twelve characters for the narrow column.
	assert.Contains(t, pdf, "Tea Powder P..")
	assert.NotContains(t, pdf, "Tea Powder Premium Gold")
	assert.Contains(t, pdf, "TOTAL: Rs. 286.00")
	assert.Contains(t, pdf, "*** Thank You Visit Again ***")
}

func TestA4Layout(t *testing.T) {
	receipt := BuildReceipt(testInvoice(), testShop("A4"))
	data, err := ForPaperSize(enum.PaperSizeA4).Render(receipt)
	require.NoError(t, err)

	pdf := string(data)
	assert.Contains(t, pdf, "%PDF")
	assert.Contains(t, pdf, "INVOICE")
	assert.Contains(t, pdf, "Bill To")
	// The wide table keeps full item names.
	assert.Contains(t, pdf, "Tea Powder Premium Gold")
	assert.Contains(t, pdf, "Grand Total")
	assert.Contains(t, pdf, "Thank you for your business!")
}

func TestLayoutsRenderAllItems(t *testing.T) {
	invoice := testInvoice()
	for _, size := range []enum.PaperSize{enum.PaperSizeThermal80, enum.PaperSizeA4} {
		receipt := BuildReceipt(invoice, testShop(size.String()))
		data, err := ForPaperSize(size).Render(receipt)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Sugar")
	}
}

func TestRenderWithPaymentQR(t *testing.T) {
	shop := testShop("")
	shop.Config.Invoice.UPIID = "shop@upi"
	receipt := BuildReceipt(testInvoice(), shop)

	data, err := ForPaperSize(enum.PaperSizeThermal80).Render(receipt)
	require.NoError(t, err)
	assert.Contains(t, string(data), "/Image", "QR must be embedded as an image")
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "Sugar", truncateName("Sugar", 12))
	assert.Equal(t, "ExactlyTwelv", truncateName("ExactlyTwelv", 12))
	assert.Equal(t, "ThirteenChar..", truncateName("ThirteenChars", 12))
}
