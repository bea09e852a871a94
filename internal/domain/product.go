package domain

// DefaultLowStockThreshold is the stock level a product is compared against
// when it has no threshold of its own. Every low-stock check in the system
// goes through EffectiveThreshold so this constant is applied in one place.
const DefaultLowStockThreshold = 10

// Category groups products. Names are display strings and are not required
// to be unique; the id is the only identity.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product is a tracked inventory item.
// The json tags match the persisted collection shape, so records round-trip
// unchanged through storage and through snapshot export/import files.
type Product struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Image             *string `json:"image,omitempty"`             // local URI of a picked image; nil means no image
	Quantity          int     `json:"quantity"`                    // current stock count, never negative
	LowStockThreshold *int    `json:"lowStockThreshold,omitempty"` // nil means DefaultLowStockThreshold
	Category          *string `json:"category,omitempty"`          // Category.ID; nil or dangling means uncategorized
}

// EffectiveThreshold returns the product's low-stock threshold, falling back
// to DefaultLowStockThreshold when none is set.
func (p *Product) EffectiveThreshold() int {
	if p.LowStockThreshold != nil {
		return *p.LowStockThreshold
	}
	return DefaultLowStockThreshold
}

// IsLowStock reports whether the product's quantity is at or below its
// effective threshold.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.EffectiveThreshold()
}

// Snapshot is the full persisted state as a single document. It is the
// exchange format of the export/import commands and of the /data endpoints:
// a JSON object {"products": [...], "categories": [...]}.
type Snapshot struct {
	Products   []Product  `json:"products"`
	Categories []Category `json:"categories"`
}
