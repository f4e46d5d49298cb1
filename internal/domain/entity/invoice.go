package entity

import (
	"strconv"
	"time"
)

// Invoice is a server-issued invoice record. Immutable from the client's
// perspective; it is only read back to render a receipt.
//
// The totals fields are optional: some API versions omit subtotal/tax_total
// and callers must derive them (see renderer normalization).
type Invoice struct {
	ID             int64         `json:"id"`
	Number         string        `json:"number"`
	CustomerName   string        `json:"customer_name"`
	CustomerMobile string        `json:"customer_mobile"`
	Items          []InvoiceItem `json:"items"`
	Subtotal       Decimal       `json:"subtotal"`
	TaxTotal       Decimal       `json:"tax_total"`
	TotalAmount    Decimal       `json:"total_amount"`
	GrandTotal     Decimal       `json:"grand_total"`
	CreatedAt      time.Time     `json:"created_at"`
}

// InvoiceItem is a single line on an invoice.
type InvoiceItem struct {
	Product     int64   `json:"product"`
	ProductName string  `json:"product_name,omitempty"`
	Qty         int     `json:"qty"`
	UnitPrice   Decimal `json:"unit_price"`
	TaxRate     Decimal `json:"tax_rate"`
}

// DisplayName returns the item name with a fallback for records where the
// server did not expand the product relation.
func (i InvoiceItem) DisplayName() string {
	if i.ProductName != "" {
		return i.ProductName
	}
	return "Item"
}

// Ref returns the human-facing invoice reference: the number when present,
// otherwise the numeric id.
func (inv *Invoice) Ref() string {
	if inv.Number != "" {
		return inv.Number
	}
	return strconv.FormatInt(inv.ID, 10)
}
