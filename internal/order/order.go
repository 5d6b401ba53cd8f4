// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package order validates and finalizes single-item purchases.
package order

import (
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/Lavavago/Agente/internal/catalog"
)

// =============================================================================
// TYPES
// =============================================================================

// Contact holds the buyer's details from the purchase form.
type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Zip     string `json:"zip"`
}

// Request is a purchase confirmed by the user. It is consumed immediately
// by a Submitter and never stored.
type Request struct {
	Product    catalog.Product
	Quantity   int
	Contact    Contact
	PaymentRef string
}

// Confirmation is returned by a successful submission.
type Confirmation struct {
	OrderID     string          `json:"order_id"`
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	PaymentRef  string          `json:"payment_ref"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

// =============================================================================
// TOTALS
// =============================================================================

// ComputeTotal returns the product's final price times quantity, rounded to
// two decimals. Quantity below 1 is rejected.
func ComputeTotal(product catalog.Product, quantity int) (decimal.Decimal, error) {
	if quantity < 1 {
		return decimal.Zero, invalid("quantity", "must be at least 1, got %d", quantity)
	}
	return product.FinalPrice().Mul(decimal.NewFromInt(int64(quantity))).Round(2), nil
}

// ParseQuantity parses form text into a quantity. Non-integer and
// non-positive values are rejected, never coerced.
func ParseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, invalid("quantity", "is required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, invalid("quantity", "%q is not a whole number", s)
	}
	if n < 1 {
		return 0, invalid("quantity", "must be at least 1, got %d", n)
	}
	return n, nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks a request before submission. All problems are reported
// together as ValidationErrors.
func Validate(req Request) error {
	var errs ValidationErrors

	if req.Quantity < 1 {
		errs = append(errs, invalid("quantity", "must be at least 1, got %d", req.Quantity))
	}
	if !req.Product.Available {
		errs = append(errs, invalid("product", "%s is not available", req.Product.Name))
	}

	required := []struct {
		field string
		value string
	}{
		{"name", req.Contact.Name},
		{"email", req.Contact.Email},
		{"phone", req.Contact.Phone},
		{"address", req.Contact.Address},
		{"zip", req.Contact.Zip},
		{"card", req.PaymentRef},
	}
	missing := make(map[string]bool)
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, invalid(r.field, "is required"))
			missing[r.field] = true
		}
	}

	if !missing["email"] {
		if _, err := mail.ParseAddress(strings.TrimSpace(req.Contact.Email)); err != nil {
			errs = append(errs, invalid("email", "%q is not a valid address", req.Contact.Email))
		}
	}
	if !missing["zip"] && !allDigits(strings.TrimSpace(req.Contact.Zip)) {
		errs = append(errs, invalid("zip", "must contain only digits"))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// MaskPaymentRef hides everything except the last four characters.
func MaskPaymentRef(ref string) string {
	ref = strings.ReplaceAll(strings.TrimSpace(ref), " ", "")
	if len(ref) <= 4 {
		return strings.Repeat("*", len(ref))
	}
	return "**** " + ref[len(ref)-4:]
}
