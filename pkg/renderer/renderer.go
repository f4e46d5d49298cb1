// Package renderer turns a finalized invoice plus the shop profile into a
// printable PDF document. Two layout strategies share one normalization
// step: an 80mm thermal roll and a standard A4 sheet, selected by the
// shop's invoice paper-size setting.
package renderer

import (
	"time"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
	"github.com/Naveenv26/mobile-bill/internal/domain/enum"
)

// Renderer produces a PDF document from a normalized receipt.
type Renderer interface {
	Render(receipt *entity.Receipt) ([]byte, error)
}

// ForPaperSize returns the layout strategy for the given paper size.
func ForPaperSize(size enum.PaperSize) Renderer {
	if size == enum.PaperSizeA4 {
		return &a4Renderer{}
	}
	return &thermalRenderer{}
}

// ForShop resolves the strategy from the shop's invoice settings. A nil
// shop or an unset paper size falls back to the thermal layout.
func ForShop(shop *entity.Shop) Renderer {
	if shop == nil {
		return &thermalRenderer{}
	}
	return ForPaperSize(enum.ParsePaperSize(shop.Config.Invoice.PaperSize))
}

// BuildReceipt normalizes an invoice and shop profile into the receipt
// value object both layouts render. Missing totals are derived rather than
// failing: subtotal falls back to total_amount, tax to grand_total minus
// subtotal, and any still-missing amount defaults to zero.
func BuildReceipt(invoice *entity.Invoice, shop *entity.Shop) *entity.Receipt {
	receipt := &entity.Receipt{
		InvoiceNo:      invoice.Ref(),
		CustomerName:   invoice.CustomerName,
		CustomerMobile: invoice.CustomerMobile,
	}
	if receipt.CustomerName == "" {
		receipt.CustomerName = "Walk-in"
	}

	when := invoice.CreatedAt
	if when.IsZero() {
		when = time.Now()
	}
	receipt.Date = when.Format("02/01/2006")

	if shop != nil {
		receipt.Header = entity.ReceiptHeader{
			ShopName: shop.Name,
			Address:  shop.Address,
			Phone:    shop.ContactPhone,
			GSTIN:    shop.GSTIN,
			UPIID:    shop.Config.Invoice.UPIID,
		}
		receipt.Terms = shop.Config.Invoice.Terms
		receipt.BankDetails = shop.Config.Invoice.BankDetails
	}
	if receipt.Header.ShopName == "" {
		receipt.Header.ShopName = "My Shop"
	}

	for _, item := range invoice.Items {
		qty := item.Qty
		price := item.UnitPrice.Float()
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      item.DisplayName(),
			Quantity:  qty,
			UnitPrice: price,
			TaxRate:   item.TaxRate.Float(),
			Total:     float64(qty) * price,
		})
	}

	subtotal := invoice.Subtotal.Float()
	if subtotal == 0 {
		subtotal = invoice.TotalAmount.Float()
	}
	tax := invoice.TaxTotal.Float()
	if tax == 0 && invoice.GrandTotal.Float() > subtotal {
		tax = invoice.GrandTotal.Float() - subtotal
	}
	grand := invoice.GrandTotal.Float()
	if grand == 0 {
		grand = subtotal + tax
	}

	receipt.SubTotal = subtotal
	receipt.Tax = tax
	receipt.GrandTotal = grand
	return receipt
}

// truncateName shortens long item names for the narrow thermal columns:
// twelve characters plus an ellipsis marker.
func truncateName(name string, max int) string {
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}
	return string(runes[:max]) + ".."
}
