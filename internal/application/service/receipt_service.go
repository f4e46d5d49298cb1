package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
	"github.com/Naveenv26/mobile-bill/internal/domain/repository"
	"github.com/Naveenv26/mobile-bill/pkg/printer"
	"github.com/Naveenv26/mobile-bill/pkg/renderer"
	"github.com/Naveenv26/mobile-bill/pkg/share"
)

// ReceiptService turns finalized invoices into shareable PDFs and thermal
// print jobs. The paper layout follows the shop's configured paper size.
type ReceiptService struct {
	invoices  repository.InvoiceRepository
	shopCache repository.ShopCache
	device    printer.Printer
	charWidth int
	outDir    string
}

// NewReceiptService creates a new receipt service. PDFs are written under
// outDir; device may be a null printer when no hardware is configured.
func NewReceiptService(
	invoices repository.InvoiceRepository,
	shopCache repository.ShopCache,
	device printer.Printer,
	charWidth int,
	outDir string,
) *ReceiptService {
	return &ReceiptService{
		invoices:  invoices,
		shopCache: shopCache,
		device:    device,
		charWidth: charWidth,
		outDir:    outDir,
	}
}

// GeneratePDF renders the invoice with the shop's configured layout and
// writes it to disk. Returns the written file path.
func (s *ReceiptService) GeneratePDF(ctx context.Context, invoice *entity.Invoice) (string, error) {
	shop, err := s.shopCache.Get()
	if err != nil {
		return "", err
	}

	receipt := renderer.BuildReceipt(invoice, shop)
	data, err := renderer.ForShop(shop).Render(receipt)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.outDir, 0o755); err != nil {
		return "", fmt.Errorf("receipt: failed to create output dir: %w", err)
	}
	path := filepath.Join(s.outDir, fmt.Sprintf("Invoice_%s.pdf", invoice.Ref()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("receipt: failed to write %s: %w", path, err)
	}
	return path, nil
}

// Share generates the PDF and hands it to the platform share sheet,
// falling back to the default viewer when sharing is unavailable.
func (s *ReceiptService) Share(ctx context.Context, invoice *entity.Invoice) (string, error) {
	path, err := s.GeneratePDF(ctx, invoice)
	if err != nil {
		return "", err
	}
	if err := share.File(path, "Invoice #"+invoice.Ref()); err != nil {
		return path, err
	}
	return path, nil
}

// Print sends the invoice to the configured thermal printer as ESC/POS.
func (s *ReceiptService) Print(invoice *entity.Invoice) error {
	if !s.device.IsConnected() {
		return fmt.Errorf("receipt: no printer connected")
	}

	shop, err := s.shopCache.Get()
	if err != nil {
		return err
	}
	receipt := renderer.BuildReceipt(invoice, shop)
	return s.device.Print(printer.FormatReceipt(receipt, s.charWidth))
}

// GeneratePDFByID fetches an older invoice and regenerates its PDF.
func (s *ReceiptService) GeneratePDFByID(ctx context.Context, id int64) (string, error) {
	invoice, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.GeneratePDF(ctx, invoice)
}

// PrintByID fetches an older invoice and reprints it.
func (s *ReceiptService) PrintByID(ctx context.Context, id int64) error {
	invoice, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.Print(invoice)
}
