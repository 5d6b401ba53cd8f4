// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// PRODUCT TESTS
// =============================================================================

func TestProduct_FinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		discount int
		want     string
	}{
		{"twenty percent", "1200.00", 20, "960.00"},
		{"five percent", "350.50", 5, "332.98"},
		{"thirty percent rounds", "180.99", 30, "126.69"},
		{"no discount", "89.99", 0, "89.99"},
		{"full discount", "65.00", 100, "0.00"},
		{"free item", "0", 50, "0.00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{Name: "x", BasePrice: decimal.RequireFromString(tc.base), DiscountPercent: tc.discount}
			got := p.FinalPrice().StringFixed(2)
			if got != tc.want {
				t.Errorf("FinalPrice() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestProduct_Validate(t *testing.T) {
	base := decimal.NewFromInt(10)
	tests := []struct {
		name    string
		product Product
		wantErr bool
	}{
		{"valid", Product{Name: "Mesa", BasePrice: base, DiscountPercent: 10}, false},
		{"empty name", Product{Name: "  ", BasePrice: base}, true},
		{"negative price", Product{Name: "Mesa", BasePrice: decimal.NewFromInt(-1)}, true},
		{"discount above 100", Product{Name: "Mesa", BasePrice: base, DiscountPercent: 101}, true},
		{"negative discount", Product{Name: "Mesa", BasePrice: base, DiscountPercent: -5}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.product.Validate()
			if tc.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrInvalidProduct))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestProduct_Labels(t *testing.T) {
	p := Seed()[0]
	require.Equal(t, "DISPONIBLE", p.StatusLabel())
	require.Equal(t, "SML", p.Initials())
	require.Equal(t, "AGOTADO", Seed()[2].StatusLabel())
	require.Equal(t, "$960.00", FormatPrice(p.FinalPrice()))
}

// TestSeed_Invariants checks every seed product against the price invariants.
func TestSeed_Invariants(t *testing.T) {
	for _, p := range Seed() {
		t.Run(p.Name, func(t *testing.T) {
			require.NoError(t, p.Validate())
			require.GreaterOrEqual(t, p.DiscountPercent, 0)
			require.LessOrEqual(t, p.DiscountPercent, 100)
			require.False(t, p.FinalPrice().IsNegative())
			require.True(t, p.FinalPrice().Equal(p.FinalPrice().Round(2)))
		})
	}
}

// =============================================================================
// STORE TESTS
// =============================================================================

func TestStore_ListAllSeedOrder(t *testing.T) {
	s := Default()
	all := s.ListAll()
	require.Len(t, all, 6)
	for i, p := range all {
		require.Equal(t, Seed()[i].Name, p.Name)
	}
}

func TestStore_ListAllReturnsCopy(t *testing.T) {
	s := Default()
	all := s.ListAll()
	all[0].Name = "mutated"
	require.Equal(t, "Sillón Modular Lusso", s.ListAll()[0].Name)
}

func TestStore_Filter(t *testing.T) {
	s := Default()

	mesas := s.Filter(NameContains("mesa"))
	require.Len(t, mesas, 1)
	require.Equal(t, "Mesa de Centro Nórdica", mesas[0].Name)

	modular := s.Filter(NameContains("MODULAR"))
	require.Len(t, modular, 1)

	popular := s.Filter(DiscountAbove(10))
	require.Len(t, popular, 2)
	require.Equal(t, "Sillón Modular Lusso", popular[0].Name)
	require.Equal(t, "Silla Ergonómica Pro", popular[1].Name)
}

func TestStore_FilterNoMatchIsEmptyNotNil(t *testing.T) {
	got := Default().Filter(NameContains("cama"))
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestStore_Get(t *testing.T) {
	s := Default()
	p, ok := s.Get(3)
	require.True(t, ok)
	require.Equal(t, "Silla Ergonómica Pro", p.Name)

	_, ok = s.Get(99)
	require.False(t, ok)
}

func TestNewStore_AssignsIDsAndRejectsDuplicates(t *testing.T) {
	s, err := NewStore([]Product{
		{Name: "A", BasePrice: decimal.NewFromInt(1)},
		{Name: "B", BasePrice: decimal.NewFromInt(2)},
	})
	require.NoError(t, err)
	p, ok := s.Get(2)
	require.True(t, ok)
	require.Equal(t, "B", p.Name)

	_, err = NewStore([]Product{
		{ID: 1, Name: "A", BasePrice: decimal.NewFromInt(1)},
		{ID: 1, Name: "B", BasePrice: decimal.NewFromInt(2)},
	})
	require.ErrorIs(t, err, ErrInvalidProduct)
}

func TestStore_ZeroValue(t *testing.T) {
	var s Store
	require.Empty(t, s.ListAll())
	require.NotNil(t, s.Filter(NameContains("x")))
	require.Equal(t, 0, s.Len())
}

// =============================================================================
// LOADER TESTS
// =============================================================================

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile_TOML(t *testing.T) {
	path := writeFile(t, "catalog.toml", `
[[products]]
name = "Sofá Cama"
price = 800.50
discount = 15
available = true

[[products]]
name = "Mesa Plegable"
price = 120.0
discount = 0
available = false
`)
	s, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())

	p, ok := s.Get(1)
	require.True(t, ok)
	require.Equal(t, "Sofá Cama", p.Name)
	require.Equal(t, "680.43", p.FinalPrice().StringFixed(2))
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeFile(t, "catalog.json", `{"products":[{"id":7,"name":"Banco","price":45.5,"discount":10,"available":true}]}`)
	s, err := LoadFile(path)
	require.NoError(t, err)
	p, ok := s.Get(7)
	require.True(t, ok)
	require.Equal(t, "40.95", p.FinalPrice().StringFixed(2))
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"discount out of range", "bad.toml", "[[products]]\nname = \"X\"\nprice = 1\ndiscount = 120\n"},
		{"negative price", "bad.toml", "[[products]]\nname = \"X\"\nprice = -3.0\n"},
		{"empty catalog", "empty.toml", ""},
		{"unsupported extension", "catalog.yaml", "products: []"},
		{"broken json", "bad.json", "{"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, tc.file, tc.content))
			require.Error(t, err)
		})
	}
}

func TestOpen_EmptyPathUsesSeed(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	require.Equal(t, 6, s.Len())
}
