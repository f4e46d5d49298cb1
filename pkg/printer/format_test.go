package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
)

func testReceipt() *entity.Receipt {
	return &entity.Receipt{
		Header: entity.ReceiptHeader{
			ShopName: "Sri Ganesh Stores",
			Address:  "12 Market Road",
			Phone:    "044-1234567",
		},
		InvoiceNo:    "INV-42",
		Date:         "15/03/2025",
		CustomerName: "Asha",
		Items: []entity.ReceiptItem{
			{Name: "Tea", Quantity: 2, UnitPrice: 100, Total: 200},
			{Name: "Sugar", Quantity: 1, UnitPrice: 50, Total: 50},
		},
		SubTotal:   250,
		Tax:        36,
		GrandTotal: 286,
	}
}

func TestFormatReceiptContent(t *testing.T) {
	data := FormatReceipt(testReceipt(), 48)
	require.NotEmpty(t, data)

	// Starts with printer initialization.
	assert.True(t, bytes.HasPrefix(data, []byte{0x1B, 0x40}))

	for _, want := range []string{
		"Sri Ganesh Stores",
		"Name: Asha",
		"Bill No: #INV-42",
		"Tea",
		"Sugar",
		"Subtotal",
		"286.00",
		"TOTAL",
		"*** Thank You Visit Again ***",
	} {
		assert.True(t, bytes.Contains(data, []byte(want)), "missing %q", want)
	}

	// Ends with a partial cut.
	assert.True(t, bytes.Contains(data, []byte{0x1D, 0x56, 0x01}))
}

func TestFormatReceiptOmitsEmptyHeaderLines(t *testing.T) {
	receipt := testReceipt()
	receipt.Header.Phone = ""
	receipt.Header.GSTIN = ""
	receipt.CustomerMobile = ""

	data := FormatReceipt(receipt, 48)
	assert.False(t, bytes.Contains(data, []byte("Ph:")))
	assert.False(t, bytes.Contains(data, []byte("GSTIN:")))
	assert.False(t, bytes.Contains(data, []byte("Mob:")))
}
