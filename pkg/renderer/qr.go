package renderer

import (
	"bytes"
	"fmt"
	"net/url"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
)

// drawPaymentQR embeds a UPI payment QR for the receipt's grand total.
// Rendered only when the shop has a UPI id configured.
func drawPaymentQR(pdf *gofpdf.Fpdf, receipt *entity.Receipt, x, y, size float64) error {
	payload := fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%.2f&cu=INR",
		url.QueryEscape(receipt.Header.UPIID),
		url.QueryEscape(receipt.Header.ShopName),
		receipt.GrandTotal,
	)

	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("renderer: failed to encode payment QR: %w", err)
	}

	name := "upi-qr-" + receipt.InvoiceNo
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	pdf.ImageOptions(name, x, y, size, size, false, opts, 0, "")
	return nil
}
