// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"fmt"
	"strings"
)

// =============================================================================
// PREDICATES
// =============================================================================

// Predicate selects products in Filter.
type Predicate func(Product) bool

// NameContains matches products whose name contains substr, ignoring case.
func NameContains(substr string) Predicate {
	needle := strings.ToLower(substr)
	return func(p Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle)
	}
}

// DiscountAbove matches products with a discount strictly greater than percent.
func DiscountAbove(percent int) Predicate {
	return func(p Product) bool {
		return p.DiscountPercent > percent
	}
}

// =============================================================================
// STORE
// =============================================================================

// Store is the read-only product catalog.
// The zero value is an empty catalog. Safe for concurrent reads since nothing
// ever writes after construction.
type Store struct {
	products []Product
	byID     map[int]int
}

// NewStore builds a store from products in the given (seed) order.
// Products without an ID get their 1-based position. Invalid products and
// duplicate IDs are rejected.
func NewStore(products []Product) (*Store, error) {
	s := &Store{
		products: make([]Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	for i, p := range products {
		if p.ID == 0 {
			p.ID = i + 1
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidProduct, p.ID)
		}
		s.byID[p.ID] = len(s.products)
		s.products = append(s.products, p)
	}
	return s, nil
}

// Default returns a store holding the built-in seed catalog.
func Default() *Store {
	s, err := NewStore(Seed())
	if err != nil {
		// The seed is a compile-time constant; failing here is a programming error.
		panic(err)
	}
	return s
}

// ListAll returns every product in seed order.
// The returned slice is a copy.
func (s *Store) ListAll() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// Filter returns the products matching pred, preserving seed order.
// The result is never nil: no match yields an empty slice.
func (s *Store) Filter(pred Predicate) []Product {
	out := make([]Product, 0)
	for _, p := range s.products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// Get looks up a product by ID.
func (s *Store) Get(id int) (Product, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return Product{}, false
	}
	return s.products[idx], true
}

// Len returns the number of products.
func (s *Store) Len() int {
	return len(s.products)
}
