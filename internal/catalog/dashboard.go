package catalog

// Summary is the headline dashboard data: collection sizes and how much of
// the inventory is running low.
type Summary struct {
	TotalProducts   int `json:"totalProducts"`
	TotalCategories int `json:"totalCategories"`
	TotalQuantity   int `json:"totalQuantity"`
	LowStockCount   int `json:"lowStockCount"`
}

// CategorySlice is one segment of the category distribution chart: the
// summed stock quantity held under one category.
type CategorySlice struct {
	CategoryID string `json:"categoryId,omitempty"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
}

// uncategorizedName labels the slice for products with no category or a
// category id that no longer resolves.
const uncategorizedName = "Uncategorized"

// Summary computes the dashboard totals over the cached collections.
func (c *Catalog) Summary() Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Summary{
		TotalProducts:   len(c.products),
		TotalCategories: len(c.categories),
	}
	for i := range c.products {
		s.TotalQuantity += c.products[i].Quantity
		if c.products[i].IsLowStock() {
			s.LowStockCount++
		}
	}
	return s
}

// CategoryDistribution sums product quantities per category over the cached
// collections, in category insertion order, with a trailing slice for
// uncategorized stock. A product whose category id does not resolve counts
// as uncategorized. Slices with zero quantity are omitted.
func (c *Catalog) CategoryDistribution() []CategorySlice {
	c.mu.RLock()
	defer c.mu.RUnlock()

	totals := make(map[string]int, len(c.categories))
	uncategorized := 0
	for i := range c.products {
		p := &c.products[i]
		if p.Category == nil {
			uncategorized += p.Quantity
			continue
		}
		if _, ok := totals[*p.Category]; !ok {
			if !c.categoryExistsLocked(*p.Category) {
				uncategorized += p.Quantity
				continue
			}
		}
		totals[*p.Category] += p.Quantity
	}

	slices := make([]CategorySlice, 0, len(c.categories)+1)
	for _, cat := range c.categories {
		if q := totals[cat.ID]; q > 0 {
			slices = append(slices, CategorySlice{CategoryID: cat.ID, Name: cat.Name, Quantity: q})
		}
	}
	if uncategorized > 0 {
		slices = append(slices, CategorySlice{Name: uncategorizedName, Quantity: uncategorized})
	}
	return slices
}

func (c *Catalog) categoryExistsLocked(id string) bool {
	for i := range c.categories {
		if c.categories[i].ID == id {
			return true
		}
	}
	return false
}
