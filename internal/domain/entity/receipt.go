package entity

// ReceiptHeader holds the shop identity printed at the top of a receipt.
type ReceiptHeader struct {
	ShopName string `json:"shop_name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	GSTIN    string `json:"gstin,omitempty"`
	UPIID    string `json:"upi_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	TaxRate   float64 `json:"tax_rate"`
	Total     float64 `json:"total"`
}

// Receipt is a value object representing a printable receipt. It is
// composed from an invoice plus the shop profile at render time and is
// never persisted.
type Receipt struct {
	Header         ReceiptHeader `json:"header"`
	InvoiceNo      string        `json:"invoice_no"`
	Date           string        `json:"date"`
	CustomerName   string        `json:"customer_name"`
	CustomerMobile string        `json:"customer_mobile,omitempty"`
	Items          []ReceiptItem `json:"items"`
	SubTotal       float64       `json:"sub_total"`
	Tax            float64       `json:"tax"`
	GrandTotal     float64       `json:"grand_total"`
	Terms          string        `json:"terms,omitempty"`
	BankDetails    string        `json:"bank_details,omitempty"`
}
