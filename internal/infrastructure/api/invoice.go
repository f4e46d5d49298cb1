package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
	"github.com/Naveenv26/mobile-bill/internal/domain/repository"
)

// InvoiceRepository implements repository.InvoiceRepository against the API.
type InvoiceRepository struct {
	client *Client
}

// NewInvoiceRepository creates a new invoice repository.
func NewInvoiceRepository(client *Client) repository.InvoiceRepository {
	return &InvoiceRepository{client: client}
}

// Create submits a finalized sale. The idempotency key rides a header so a
// transport-level retry of the same confirm action cannot double-create.
func (r *InvoiceRepository) Create(ctx context.Context, req *repository.CreateInvoiceRequest, idempotencyKey string) (*entity.Invoice, error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}

	var invoice entity.Invoice
	if err := r.client.post(ctx, "/invoices/", req, &invoice, headers); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepository) List(ctx context.Context, from, to time.Time) ([]entity.Invoice, error) {
	path := "/invoices/"
	query := url.Values{}
	if !from.IsZero() {
		query.Set("from", from.Format("2006-01-02"))
	}
	if !to.IsZero() {
		query.Set("to", to.Format("2006-01-02"))
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return getList[entity.Invoice](ctx, r.client, path)
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	var invoice entity.Invoice
	if err := r.client.get(ctx, fmt.Sprintf("/invoices/%d/", id), &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}
