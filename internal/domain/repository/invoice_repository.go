package repository

import (
	"context"
	"time"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
)

// CreateInvoiceRequest is the payload submitted to the invoice-creation
// endpoint. Totals are precomputed by the cart so the server and the
// receipt agree on amounts.
type CreateInvoiceRequest struct {
	Shop           int64               `json:"shop" validate:"required"`
	CustomerName   string              `json:"customer_name" validate:"required"`
	CustomerMobile string              `json:"customer_mobile"`
	Items          []CreateInvoiceItem `json:"items" validate:"required,min=1,dive"`
	TotalAmount    float64             `json:"total_amount" validate:"gte=0"`
	GrandTotal     float64             `json:"grand_total" validate:"gte=0"`
}

// CreateInvoiceItem is one line of the invoice-creation payload.
type CreateInvoiceItem struct {
	Product   int64   `json:"product" validate:"required"`
	Qty       int     `json:"qty" validate:"gte=1"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
	TaxRate   float64 `json:"tax_rate" validate:"gte=0,lte=100"`
}

// InvoiceRepository defines invoice operations against the API.
type InvoiceRepository interface {
	// Create submits a finalized sale. The idempotency key makes the
	// confirm action safe to retry at the transport level.
	Create(ctx context.Context, req *CreateInvoiceRequest, idempotencyKey string) (*entity.Invoice, error)
	List(ctx context.Context, from, to time.Time) ([]entity.Invoice, error)
	GetByID(ctx context.Context, id int64) (*entity.Invoice, error)
}
