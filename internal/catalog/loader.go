// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

// =============================================================================
// CATALOG FILE FORMAT
// =============================================================================

// File is the on-disk catalog layout.
//
// TOML:
//
//	[[products]]
//	name = "Sillón Modular Lusso"
//	price = 1200.00
//	discount = 20
//	available = true
type File struct {
	Products []Record `toml:"products" json:"products"`
}

// Record is one product entry in a catalog file.
// Prices are plain numbers in the file and become decimals on load.
type Record struct {
	ID          int     `toml:"id" json:"id"`
	Name        string  `toml:"name" json:"name"`
	Description string  `toml:"description" json:"description"`
	Price       float64 `toml:"price" json:"price"`
	Discount    int     `toml:"discount" json:"discount"`
	Available   bool    `toml:"available" json:"available"`
	Image       string  `toml:"image" json:"image"`
}

// Product converts the record into a catalog product.
func (r Record) Product() Product {
	return Product{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		BasePrice:       decimal.NewFromFloat(r.Price).Round(2),
		DiscountPercent: r.Discount,
		Available:       r.Available,
		ImageRef:        r.Image,
	}
}

// =============================================================================
// LOADING
// =============================================================================

// LoadFile reads a .toml or .json catalog file and builds a store from it.
func LoadFile(path string) (*Store, error) {
	var f File

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog file: %w", err)
		}
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode catalog JSON %s: %w", path, err)
		}
	case ".toml", "":
		if _, err := toml.DecodeFile(path, &f); err != nil {
			return nil, fmt.Errorf("decode catalog TOML %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q (use .toml or .json)", filepath.Ext(path))
	}

	if len(f.Products) == 0 {
		return nil, fmt.Errorf("%w: catalog %s has no products", ErrInvalidProduct, path)
	}

	products := make([]Product, 0, len(f.Products))
	for _, r := range f.Products {
		products = append(products, r.Product())
	}

	store, err := NewStore(products)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return store, nil
}

// Open returns the store for path, or the built-in seed when path is empty.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
