// Package cart holds the shopping cart aggregation engine. A Cart is a plain
// value owned by one session; callers serialize access to it.
package cart

import (
	"github.com/shopspring/decimal"

	"shophub/internal/domain"
)

// Item is one cart line: a product reference and how many of it
type Item struct {
	Product  *domain.Product
	Quantity int
}

// Subtotal is the line price at the product's current price
func (i Item) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Product.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Outcome reports the result of a cart mutation. OutOfStock is set whenever
// the requested quantity could not be honored in full.
type Outcome struct {
	Quantity   int  `json:"quantity"`
	OutOfStock bool `json:"outOfStock"`
	Removed    bool `json:"removed"`
}

// Cart keeps lines in insertion order with at most one line per product
type Cart struct {
	items []*Item
	index map[string]int
}

// New returns an empty cart
func New() *Cart {
	return &Cart{index: make(map[string]int)}
}

// Add puts quantity units of product into the cart, merging with an existing
// line. The resulting quantity is clamped to [1, available]. When nothing is
// available the cart is left unchanged.
func (c *Cart) Add(product *domain.Product, quantity int) Outcome {
	available := product.Available()
	if available < 1 {
		return Outcome{OutOfStock: true}
	}

	current := 0
	pos, exists := c.index[product.ID]
	if exists {
		current = c.items[pos].Quantity
	}

	requested := current + quantity
	next := clamp(requested, available)

	if exists {
		c.items[pos].Product = product
		c.items[pos].Quantity = next
	} else {
		c.index[product.ID] = len(c.items)
		c.items = append(c.items, &Item{Product: product, Quantity: next})
	}

	return Outcome{Quantity: next, OutOfStock: requested > available}
}

// UpdateQuantity overwrites the quantity of an existing line. A quantity of
// zero or less removes the line. Unknown products are ignored.
func (c *Cart) UpdateQuantity(productID string, quantity int) Outcome {
	pos, ok := c.index[productID]
	if !ok {
		return Outcome{}
	}
	if quantity <= 0 {
		c.Remove(productID)
		return Outcome{Removed: true}
	}

	item := c.items[pos]
	available := item.Product.Available()
	if available < 1 {
		c.Remove(productID)
		return Outcome{Removed: true, OutOfStock: true}
	}

	item.Quantity = clamp(quantity, available)
	return Outcome{Quantity: item.Quantity, OutOfStock: quantity > available}
}

// Remove drops the line for productID and reports whether one existed
func (c *Cart) Remove(productID string) bool {
	pos, ok := c.index[productID]
	if !ok {
		return false
	}

	c.items = append(c.items[:pos], c.items[pos+1:]...)
	delete(c.index, productID)
	for i := pos; i < len(c.items); i++ {
		c.index[c.items[i].Product.ID] = i
	}
	return true
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = nil
	c.index = make(map[string]int)
}

// Refresh replaces product snapshots with fresher ones and re-clamps
// quantities against their stock. Lines whose product is missing from
// products or no longer available are dropped. It returns the IDs dropped.
func (c *Cart) Refresh(products map[string]*domain.Product) []string {
	var dropped []string
	kept := c.items[:0]
	for _, item := range c.items {
		fresh, ok := products[item.Product.ID]
		if !ok || fresh.Available() < 1 {
			dropped = append(dropped, item.Product.ID)
			continue
		}
		item.Product = fresh
		item.Quantity = clamp(item.Quantity, fresh.Available())
		kept = append(kept, item)
	}

	c.items = kept
	c.index = make(map[string]int, len(kept))
	for i, item := range kept {
		c.index[item.Product.ID] = i
	}
	return dropped
}

// Quantity returns the quantity held for productID, or 0
func (c *Cart) Quantity(productID string) int {
	if pos, ok := c.index[productID]; ok {
		return c.items[pos].Quantity
	}
	return 0
}

// Items returns a copy of the lines in insertion order
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	for i, item := range c.items {
		out[i] = *item
	}
	return out
}

// Len is the number of distinct lines
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// ItemCount is the sum of quantities across lines
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// Total sums price times quantity, reading each product's price now
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Line is the persisted form of a cart line
type Line struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Lines returns the cart as product ID and quantity pairs in insertion order
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.items))
	for i, item := range c.items {
		lines[i] = Line{ProductID: item.Product.ID, Quantity: item.Quantity}
	}
	return lines
}

// Restore rebuilds a cart from persisted lines against current product
// snapshots. Duplicate lines are merged, quantities are re-clamped, and lines
// whose product is missing or unavailable are dropped and returned.
func Restore(lines []Line, products map[string]*domain.Product) (*Cart, []string) {
	c := New()
	var dropped []string
	for _, line := range lines {
		p, ok := products[line.ProductID]
		if !ok || p.Available() < 1 {
			dropped = append(dropped, line.ProductID)
			continue
		}
		if pos, exists := c.index[p.ID]; exists {
			c.items[pos].Quantity = clamp(c.items[pos].Quantity+line.Quantity, p.Available())
			continue
		}
		c.index[p.ID] = len(c.items)
		c.items = append(c.items, &Item{Product: p, Quantity: clamp(line.Quantity, p.Available())})
	}
	return c, dropped
}

func clamp(quantity, available int) int {
	if quantity < 1 {
		return 1
	}
	if quantity > available {
		return available
	}
	return quantity
}
