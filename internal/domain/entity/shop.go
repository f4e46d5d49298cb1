package entity

import "time"

// Shop represents the shop profile. Fetched with the current user at login,
// cached locally, and refreshed whenever settings are saved.
type Shop struct {
	ID                  int64      `json:"id"`
	Name                string     `json:"name"`
	Address             string     `json:"address"`
	GSTIN               string     `json:"gstin"`
	ContactPhone        string     `json:"contact_phone"`
	ContactEmail        string     `json:"contact_email"`
	Logo                string     `json:"logo,omitempty"`
	Language            string     `json:"language,omitempty"`
	BusinessType        string     `json:"business_type,omitempty"`
	WhatsappNumber      string     `json:"whatsapp_number,omitempty"`
	Config              ShopConfig `json:"config"`
	ActiveSubscription  *int64     `json:"active_subscription,omitempty"`
	SubscriptionEndDate string     `json:"subscription_end_date,omitempty"`
	IsActive            bool       `json:"is_active"`
	CreatedAt           time.Time  `json:"created_at"`
}

// ShopConfig groups the per-shop settings categories. Each category is
// patched independently from its settings screen.
type ShopConfig struct {
	Invoice       InvoiceConfig      `json:"invoice"`
	Inventory     InventoryConfig    `json:"inventory"`
	Tax           TaxConfig          `json:"tax"`
	Customer      CustomerConfig     `json:"customer"`
	Notifications NotificationConfig `json:"notifications"`
}

// InvoiceConfig controls receipt generation. PaperSize "A4" selects the A4
// layout; anything else (including empty) selects the 80mm thermal layout.
type InvoiceConfig struct {
	PaperSize   string `json:"paper_size"`
	Prefix      string `json:"prefix"`
	Terms       string `json:"terms"`
	BankDetails string `json:"bank_details"`
	UPIID       string `json:"upi_id"`
}

// InventoryConfig holds stock-tracking settings.
type InventoryConfig struct {
	LowStockAlert      bool `json:"low_stock_alert"`
	LowStockThreshold  int  `json:"low_stock_threshold"`
	NegativeStockBlock bool `json:"negative_stock_block"`
}

// TaxConfig holds default tax behavior.
type TaxConfig struct {
	DefaultRate     Decimal `json:"default_rate"`
	PricesInclusive bool    `json:"prices_inclusive"`
}

// CustomerConfig holds customer-facing defaults.
type CustomerConfig struct {
	DefaultName   string `json:"default_name"`
	RequireMobile bool   `json:"require_mobile"`
}

// NotificationConfig holds notification toggles.
type NotificationConfig struct {
	DailySummary    bool `json:"daily_summary"`
	LowStockAlerts  bool `json:"low_stock_alerts"`
	WhatsappReports bool `json:"whatsapp_reports"`
}
