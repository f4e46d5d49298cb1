package entity

import "encoding/json"

// Product represents a catalog product. The backend owns the record; the
// client keeps a read-mostly copy fetched on demand and cached locally.
type Product struct {
	ID      int64   `json:"id" gorm:"primaryKey"`
	Name    string  `json:"name" gorm:"size:255;not null"`
	Price   Decimal `json:"price"`
	Unit    string  `json:"unit" gorm:"size:50"`
	TaxRate Decimal `json:"tax_rate"`
	Stock   int     `json:"quantity"`
}

// UnmarshalJSON normalizes the two tax field spellings the API uses:
// newer records carry "tax_rate", older ones only "gst_percent".
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	aux := struct {
		*alias
		GSTPercent *Decimal `json:"gst_percent"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.TaxRate == 0 && aux.GSTPercent != nil {
		p.TaxRate = *aux.GSTPercent
	}
	return nil
}

// TableName returns the local cache table name for the Product model.
func (Product) TableName() string {
	return "cached_products"
}
