package cart

// HydrationState tells the display layer whether persisted cart state has
// been read yet.
type HydrationState int

const (
	Uninitialized HydrationState = iota
	Hydrated
)

func (s HydrationState) String() string {
	if s == Hydrated {
		return "hydrated"
	}
	return "uninitialized"
}

// MarshalText encodes the state by name
func (s HydrationState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// View is the read-only projection handed to renderers. Before hydration it
// carries no lines and no counts, so a stale badge is never shown.
type View struct {
	State  HydrationState `json:"state"`
	Items  []ViewItem     `json:"items"`
	Totals *Totals        `json:"totals,omitempty"`
}

// ViewItem is a display line
type ViewItem struct {
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	Image         string  `json:"image"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	StockQuantity int     `json:"stockQuantity"`
	LineTotal     string  `json:"lineTotal"`
}

// NewView projects c for display. A nil cart or an Uninitialized state
// yields an empty, count-free view.
func NewView(state HydrationState, c *Cart, pricing Pricing) View {
	if state != Hydrated || c == nil {
		return View{State: Uninitialized, Items: []ViewItem{}}
	}

	items := c.Items()
	lines := make([]ViewItem, len(items))
	for i, item := range items {
		lines[i] = ViewItem{
			ProductID:     item.Product.ID,
			Name:          item.Product.Name,
			Slug:          item.Product.Slug,
			Image:         item.Product.Image,
			Price:         item.Product.Price,
			Quantity:      item.Quantity,
			StockQuantity: item.Product.StockQuantity,
			LineTotal:     item.Subtotal().StringFixed(2),
		}
	}

	totals := ComputeTotals(c, pricing)
	return View{State: Hydrated, Items: lines, Totals: &totals}
}

// BadgeCount is the number shown on the cart icon, or false while the
// persisted cart has not been read.
func (v View) BadgeCount() (int, bool) {
	if v.State != Hydrated || v.Totals == nil {
		return 0, false
	}
	return v.Totals.ItemCount, true
}

// Hydrated reports whether the view reflects persisted state
func (v View) Hydrated() bool {
	return v.State == Hydrated
}
