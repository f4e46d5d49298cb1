package service

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
	"github.com/Naveenv26/mobile-bill/internal/domain/repository"
	"github.com/Naveenv26/mobile-bill/pkg/apperror"
)

// FeatureChecker resolves subscription feature flags for gated operations.
type FeatureChecker interface {
	HasFeature(ctx context.Context, name string) (bool, error)
}

// BillingService owns one billing session: the in-memory cart, its derived
// totals, and invoice finalization. The cart is keyed by product id (one
// line per product) with insertion order preserved for display.
//
// Finalize holds an explicit in-flight guard so at most one invoice can
// result from a confirm action, regardless of how callers drive it.
type BillingService struct {
	invoiceRepo repository.InvoiceRepository
	shopCache   repository.ShopCache
	features    FeatureChecker
	validate    *validator.Validate

	mu       sync.Mutex
	lines    map[int64]*entity.CartLine
	order    []int64
	inFlight bool
	invoice  *entity.Invoice
}

// NewBillingService creates a new billing service with an empty cart.
func NewBillingService(
	invoiceRepo repository.InvoiceRepository,
	shopCache repository.ShopCache,
	features FeatureChecker,
) *BillingService {
	return &BillingService{
		invoiceRepo: invoiceRepo,
		shopCache:   shopCache,
		features:    features,
		validate:    validator.New(),
		lines:       make(map[int64]*entity.CartLine),
	}
}

// AddToCart adds one unit of the product. A second add for the same
// product id increments the existing line instead of creating another.
func (s *BillingService) AddToCart(product entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if line, ok := s.lines[product.ID]; ok {
		line.Qty++
		return
	}
	s.lines[product.ID] = &entity.CartLine{Product: product, Qty: 1}
	s.order = append(s.order, product.ID)
}

// UpdateQty sets a line's quantity exactly. A quantity of zero or less
// removes the line; the cart never holds a non-positive line.
func (s *BillingService) UpdateQty(productID int64, newQty int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, ok := s.lines[productID]
	if !ok {
		return
	}
	if newQty <= 0 {
		delete(s.lines, productID)
		for i, id := range s.order {
			if id == productID {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return
	}
	line.Qty = newQty
}

// Lines returns the cart lines in insertion order.
func (s *BillingService) Lines() []entity.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Totals derives the cart amounts. Always recomputed from the lines;
// nothing is cached across mutations. Tax is summed per line so mixed
// rates stay correct.
func (s *BillingService) Totals() entity.CartTotals {
	s.mu.Lock()
	defer s.mu.Unlock()

	var totals entity.CartTotals
	for _, id := range s.order {
		line := s.lines[id]
		totals.Subtotal += line.LineTotal()
		totals.Tax += line.LineTax()
		totals.TotalItems += line.Qty
	}
	totals.Total = totals.Subtotal + totals.Tax
	return totals
}

// Empty reports whether the cart has no lines.
func (s *BillingService) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order) == 0
}

// Finalize submits the cart as an invoice. Customer name defaults to
// "Walk-in" when blank. The cart is left untouched on failure so the user
// can retry; on success it stays visible until Reset starts a new sale.
func (s *BillingService) Finalize(ctx context.Context, customerName, customerMobile string) (*entity.Invoice, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, apperror.ErrSaleInProgress
	}
	if len(s.order) == 0 {
		s.mu.Unlock()
		return nil, apperror.ErrEmptyCart
	}
	s.inFlight = true
	lines := s.snapshotLocked()
	totals := entity.CartTotals{}
	for _, line := range lines {
		totals.Subtotal += line.LineTotal()
		totals.Tax += line.LineTax()
	}
	totals.Total = totals.Subtotal + totals.Tax
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	if s.features != nil {
		ok, err := s.features.HasFeature(ctx, "billing")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.ErrPlanRequired
		}
	}

	shop, err := s.shopCache.Get()
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperror.ErrShopUnavailable
	}

	if customerName == "" {
		customerName = "Walk-in"
	}

	req := &repository.CreateInvoiceRequest{
		Shop:           shop.ID,
		CustomerName:   customerName,
		CustomerMobile: customerMobile,
		TotalAmount:    totals.Total,
		GrandTotal:     totals.Total,
	}
	for _, line := range lines {
		req.Items = append(req.Items, repository.CreateInvoiceItem{
			Product:   line.Product.ID,
			Qty:       line.Qty,
			UnitPrice: line.Product.Price.Float(),
			TaxRate:   line.Product.TaxRate.Float(),
		})
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.NewBusinessError("Invalid sale: " + err.Error())
	}

	// One idempotency key per confirm action: a transport-level retry of
	// this request cannot create a second invoice.
	invoice, err := s.invoiceRepo.Create(ctx, req, uuid.NewString())
	if err != nil {
		return nil, err
	}

	// The server may omit the customer fields it was sent; merge the
	// locally known values back so the receipt shows them.
	if invoice.CustomerName == "" {
		invoice.CustomerName = customerName
	}
	if invoice.CustomerMobile == "" {
		invoice.CustomerMobile = customerMobile
	}

	s.mu.Lock()
	s.invoice = invoice
	s.mu.Unlock()
	return invoice, nil
}

// LastInvoice returns the invoice from the most recent successful
// finalize, or nil before any sale completed.
func (s *BillingService) LastInvoice() *entity.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invoice
}

// Reset starts a new sale: cart and finalized invoice are cleared.
func (s *BillingService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make(map[int64]*entity.CartLine)
	s.order = nil
	s.invoice = nil
}

func (s *BillingService) snapshotLocked() []entity.CartLine {
	out := make([]entity.CartLine, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.lines[id])
	}
	return out
}
