package entity

// CartLine is one product in the billing cart. A cart holds at most one
// line per product id; quantity is always >= 1 (a line at zero is removed,
// never kept).
type CartLine struct {
	Product Product `json:"product"`
	Qty     int     `json:"qty"`
}

// LineTotal returns qty * price for this line.
func (l CartLine) LineTotal() float64 {
	return float64(l.Qty) * l.Product.Price.Float()
}

// LineTax returns the tax amount for this line. Tax is computed per line
// (qty * price * rate / 100) so carts mixing tax rates stay correct.
func (l CartLine) LineTax() float64 {
	return l.LineTotal() * l.Product.TaxRate.Float() / 100
}

// CartTotals holds the derived cart amounts. Never stored; recomputed on
// every cart mutation.
type CartTotals struct {
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
	TotalItems int     `json:"total_items"`
}
