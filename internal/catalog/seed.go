// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import "github.com/shopspring/decimal"

const placeholderImage = "https://placehold.co/120x120/"

// Seed returns the built-in catalog in seed order.
func Seed() []Product {
	return []Product{
		{
			ID:              1,
			Name:            "Sillón Modular Lusso",
			Description:     "Elegante sofá de tres plazas...",
			BasePrice:       decimal.RequireFromString("1200.00"),
			DiscountPercent: 20,
			Available:       true,
			ImageRef:        placeholderImage + "4CAF50/ffffff?text=SOFA",
		},
		{
			ID:              2,
			Name:            "Mesa de Centro Nórdica",
			Description:     "Madera de roble macizo...",
			BasePrice:       decimal.RequireFromString("350.50"),
			DiscountPercent: 5,
			Available:       true,
			ImageRef:        placeholderImage + "3F51B5/ffffff?text=MESA",
		},
		{
			ID:              3,
			Name:            "Silla Ergonómica Pro",
			Description:     "Malla transpirable y soporte lumbar...",
			BasePrice:       decimal.RequireFromString("180.99"),
			DiscountPercent: 30,
			Available:       false,
			ImageRef:        placeholderImage + "9C27B0/ffffff?text=SILLA",
		},
		{
			ID:              4,
			Name:            "Lámpara de Pie Minimalista",
			Description:     "Diseño moderno en metal negro.",
			BasePrice:       decimal.RequireFromString("89.99"),
			DiscountPercent: 0,
			Available:       true,
			ImageRef:        placeholderImage + "FF9800/ffffff?text=LAMP",
		},
		{
			ID:              5,
			Name:            "Estantería Flotante Fina",
			Description:     "Estantes de pared de alta resistencia.",
			BasePrice:       decimal.RequireFromString("65.00"),
			DiscountPercent: 10,
			Available:       true,
			ImageRef:        placeholderImage + "00BCD4/ffffff?text=EST",
		},
		{
			ID:              6,
			Name:            "Escritorio Ejecutivo",
			Description:     "Amplia superficie y cajones con llave.",
			BasePrice:       decimal.RequireFromString("499.00"),
			DiscountPercent: 0,
			Available:       true,
			ImageRef:        placeholderImage + "FF5722/ffffff?text=ESC",
		},
	}
}
