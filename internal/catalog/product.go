// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog holds the furniture catalog: product records and the
// read-only store the agent and the purchase flow query.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidProduct is wrapped by every product validation failure.
var ErrInvalidProduct = errors.New("invalid product")

// hundred is used for percentage arithmetic.
var hundred = decimal.NewFromInt(100)

// =============================================================================
// PRODUCT TYPE
// =============================================================================

// Product is a single purchasable furniture record.
// Products are values: the store hands out copies and never mutates them.
type Product struct {
	// ID is a stable 1-based handle used by /buy and /info.
	ID int `json:"id"`

	Name        string `json:"name"`
	Description string `json:"description"`

	// BasePrice is the list price before discount.
	BasePrice decimal.Decimal `json:"base_price"`

	// DiscountPercent is an integer percentage in [0,100].
	DiscountPercent int `json:"discount_percent"`

	Available bool   `json:"available"`
	ImageRef  string `json:"image_ref"`
}

// FinalPrice returns BasePrice * (1 - DiscountPercent/100) rounded to 2 decimals.
func (p Product) FinalPrice() decimal.Decimal {
	factor := hundred.Sub(decimal.NewFromInt(int64(p.DiscountPercent))).Div(hundred)
	return p.BasePrice.Mul(factor).Round(2)
}

// HasDiscount reports whether a discount applies.
func (p Product) HasDiscount() bool {
	return p.DiscountPercent > 0
}

// StatusLabel returns the availability tag shown on product cards.
func (p Product) StatusLabel() string {
	if p.Available {
		return "DISPONIBLE"
	}
	return "AGOTADO"
}

// Initials returns the upper-case initials of the product name.
func (p Product) Initials() string {
	var sb strings.Builder
	for _, word := range strings.Fields(p.Name) {
		for _, r := range word {
			sb.WriteString(strings.ToUpper(string(r)))
			break
		}
	}
	return sb.String()
}

// Validate checks the product invariants.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidProduct)
	}
	if p.BasePrice.IsNegative() {
		return fmt.Errorf("%w: %s: base price %s is negative", ErrInvalidProduct, p.Name, p.BasePrice)
	}
	if p.DiscountPercent < 0 || p.DiscountPercent > 100 {
		return fmt.Errorf("%w: %s: discount %d outside [0,100]", ErrInvalidProduct, p.Name, p.DiscountPercent)
	}
	return nil
}

// FormatPrice renders an amount the way cards and notices show it ("$960.00").
func FormatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
