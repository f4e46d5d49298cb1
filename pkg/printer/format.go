package printer

import (
	"fmt"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
)

// FormatReceipt renders a receipt as an ESC/POS byte stream for thermal
// printers. Layout mirrors the 80mm PDF renderer: centered header, dashed
// rule, customer metadata, compact item table, totals with an enlarged
// grand total, fixed footer.
func FormatReceipt(receipt *entity.Receipt, charWidth int) []byte {
	d := NewDocument(charWidth)

	d.SetAlign(AlignCenter).
		SetBold(true).
		Text(receipt.Header.ShopName).
		SetBold(false)
	if receipt.Header.Address != "" {
		d.Text(receipt.Header.Address)
	}
	if receipt.Header.Phone != "" {
		d.Text("Ph: " + receipt.Header.Phone)
	}
	if receipt.Header.GSTIN != "" {
		d.Text("GSTIN: " + receipt.Header.GSTIN)
	}

	d.SetAlign(AlignLeft).Separator('-')
	d.KeyValue("Name: "+receipt.CustomerName, receipt.Date)
	mobile := ""
	if receipt.CustomerMobile != "" {
		mobile = "Mob: " + receipt.CustomerMobile
	}
	d.KeyValue(mobile, "Bill No: #"+receipt.InvoiceNo)
	d.Separator('-')

	for _, item := range receipt.Items {
		d.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Total))
	}

	d.Separator('-')
	d.KeyValue("Subtotal", fmt.Sprintf("%.2f", receipt.SubTotal))
	d.KeyValue("Tax", fmt.Sprintf("%.2f", receipt.Tax))
	d.SetBold(true).
		SetFontSize(FontDouble).
		KeyValue("TOTAL", fmt.Sprintf("%.2f", receipt.GrandTotal)).
		SetFontSize(FontNormal).
		SetBold(false)

	d.SetAlign(AlignCenter).
		Text("*** Thank You Visit Again ***").
		FeedLines(3).
		PartialCut()

	return d.Bytes()
}
