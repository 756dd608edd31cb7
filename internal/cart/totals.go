package cart

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Pricing holds the constants order totals are derived from
type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	TaxRate               decimal.Decimal
}

// DefaultPricing matches the storefront's published policy: free shipping
// above $100, otherwise a $10 flat fee, and 8% estimated tax.
func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: decimal.NewFromInt(100),
		ShippingFee:           decimal.NewFromInt(10),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

// ParsePricing reads pricing constants from their decimal string form
func ParsePricing(threshold, fee, taxRate string) (Pricing, error) {
	var p Pricing
	var err error
	if p.FreeShippingThreshold, err = decimal.NewFromString(threshold); err != nil {
		return Pricing{}, fmt.Errorf("invalid free shipping threshold %q: %w", threshold, err)
	}
	if p.ShippingFee, err = decimal.NewFromString(fee); err != nil {
		return Pricing{}, fmt.Errorf("invalid shipping fee %q: %w", fee, err)
	}
	if p.TaxRate, err = decimal.NewFromString(taxRate); err != nil {
		return Pricing{}, fmt.Errorf("invalid tax rate %q: %w", taxRate, err)
	}
	if p.FreeShippingThreshold.IsNegative() || p.ShippingFee.IsNegative() || p.TaxRate.IsNegative() {
		return Pricing{}, fmt.Errorf("pricing constants must not be negative")
	}
	return p, nil
}

// Totals is the order summary for a cart
type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Shipping     decimal.Decimal `json:"shipping"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	FreeShipping bool            `json:"freeShipping"`
	ItemCount    int             `json:"itemCount"`
}

// ComputeTotals derives the order summary from the cart's current lines.
// Shipping is free once the subtotal exceeds the threshold; an empty cart
// owes nothing. Tax is rounded to cents.
func ComputeTotals(c *Cart, pricing Pricing) Totals {
	subtotal := c.Total()

	shipping := pricing.ShippingFee
	free := subtotal.GreaterThan(pricing.FreeShippingThreshold)
	if free || c.IsEmpty() {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(pricing.TaxRate).Round(2)

	return Totals{
		Subtotal:     subtotal.Round(2),
		Shipping:     shipping,
		Tax:          tax,
		Total:        subtotal.Add(shipping).Add(tax).Round(2),
		FreeShipping: free,
		ItemCount:    c.ItemCount(),
	}
}
