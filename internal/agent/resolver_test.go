// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Lavavago/Agente/internal/catalog"
)

func newTestResolver(opts ...Option) *Resolver {
	opts = append([]Option{WithDelay(0)}, opts...)
	return NewResolver(catalog.Default(), opts...)
}

// =============================================================================
// RULE TESTS
// =============================================================================

func TestRules_Order(t *testing.T) {
	names := make([]string, 0)
	for _, r := range Rules() {
		names = append(names, r.Name)
	}
	require.Equal(t, []string{"greeting", "modular", "catalog", "popular", "tables"}, names)
}

func TestRule_MatchesInIsolation(t *testing.T) {
	rules := make(map[string]Rule)
	for _, r := range Rules() {
		rules[r.Name] = r
	}

	tests := []struct {
		rule  string
		input string
		want  bool
	}{
		{"greeting", "Hola", true},
		{"greeting", "HOLA amigo", true},
		{"greeting", "buenas", false},
		{"modular", "quiero algo Modular", true},
		{"modular", "modulo", false},
		{"catalog", "ver catálogo", true},
		{"catalog", "muéstrame productos", true},
		{"catalog", "catalogo", false},
		{"popular", "los populares", true},
		{"popular", "popular", false},
		{"tables", "busco mesas", true},
		{"tables", "una mesa", false},
	}

	for _, tc := range tests {
		t.Run(tc.rule+"/"+tc.input, func(t *testing.T) {
			if got := rules[tc.rule].Matches(tc.input); got != tc.want {
				t.Errorf("%s.Matches(%q) = %v, want %v", tc.rule, tc.input, got, tc.want)
			}
		})
	}
}

// =============================================================================
// RESOLVE TESTS
// =============================================================================

func TestResolve(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name         string
		input        string
		wantRule     string
		wantText     string
		wantProducts int // -1 means absent
	}{
		{"greeting", "Hola, buenas", "greeting", GreetingText, -1},
		{"greeting wins over later rules", "hola, quiero ver productos modulares", "greeting", GreetingText, -1},
		{"modular", "me interesa el sillón modular", "modular", ModularText, 1},
		{"catalog", "quiero ver el catálogo", "catalog", CatalogText, 6},
		{"catalog quick action", "Ver catálogo", "catalog", CatalogText, 6},
		{"productos beats populares", "Productos populares", "catalog", CatalogText, 6},
		{"popular", "cuáles son los populares", "popular", PopularText, 2},
		{"tables", "busco mesas", "tables", TablesText, 1},
		{"fallback", "algo random", "fallback", FallbackText, -1},
		{"empty input", "", "fallback", FallbackText, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reply, rule := r.Match(tc.input)
			require.Equal(t, tc.wantRule, rule)
			require.Equal(t, tc.wantText, reply.Text)
			if tc.wantProducts < 0 {
				require.Nil(t, reply.Products)
				require.False(t, reply.HasProducts())
			} else {
				require.True(t, reply.HasProducts())
				require.Len(t, reply.Products, tc.wantProducts)
			}
		})
	}
}

func TestResolve_DecomposedAccentMatchesCatalog(t *testing.T) {
	r := newTestResolver()
	// "catálogo" with a combining acute accent.
	reply := r.Resolve("ver el CATA\u0301LOGO")
	require.Equal(t, CatalogText, reply.Text)
	require.Len(t, reply.Products, 6)
}

func TestResolve_TablesEmptyIsPresentNotAbsent(t *testing.T) {
	store, err := catalog.NewStore([]catalog.Product{
		{Name: "Sofá Cama", BasePrice: decimal.NewFromInt(500), Available: true},
	})
	require.NoError(t, err)

	reply := NewResolver(store, WithDelay(0)).Resolve("busco mesas")
	require.Equal(t, TablesText, reply.Text)
	require.NotNil(t, reply.Products)
	require.Empty(t, reply.Products)
	require.True(t, reply.HasProducts())
}

func TestResolve_Deterministic(t *testing.T) {
	r := newTestResolver()
	first := r.Resolve("busco mesas")
	for i := 0; i < 5; i++ {
		require.Equal(t, first, r.Resolve("busco mesas"))
	}
}

func TestResolve_CustomRules(t *testing.T) {
	r := newTestResolver(WithRules([]Rule{
		{Name: "sofa", Match: containsAny("sofá"), Handle: textOnly("sofás")},
	}))
	require.Equal(t, "sofás", r.Resolve("Un SOFÁ").Text)
	require.Equal(t, FallbackText, r.Resolve("hola").Text)
}

// =============================================================================
// LATENCY TESTS
// =============================================================================

func TestResolveContext_NoDelay(t *testing.T) {
	r := newTestResolver()
	reply, err := r.ResolveContext(context.Background(), "busco mesas")
	require.NoError(t, err)
	require.Equal(t, TablesText, reply.Text)
}

func TestResolveContext_WaitsForDelay(t *testing.T) {
	r := newTestResolver(WithDelay(20 * time.Millisecond))
	start := time.Now()
	_, err := r.ResolveContext(context.Background(), "hola")
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestResolveContext_Cancelled(t *testing.T) {
	r := newTestResolver(WithDelay(time.Minute))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := r.ResolveContext(ctx, "hola")
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		require.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("ResolveContext did not return after cancel")
	}
}

func TestResolveContext_AlreadyCancelled(t *testing.T) {
	r := newTestResolver()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reply, err := r.ResolveContext(ctx, "hola")
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, reply.Text)
}

func TestNewResolver_Defaults(t *testing.T) {
	r := NewResolver(nil)
	require.Equal(t, DefaultDelay, r.Delay())
	require.Equal(t, 6, r.Store().Len())
}
