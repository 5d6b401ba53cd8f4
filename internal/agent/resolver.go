// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package agent maps free-text shopper input to canned replies.
//
// Matching is plain substring search over the normalized input against an
// ordered list of keyword rules. The first rule that matches wins; when none
// matches the fallback reply is used. Resolution never fails.
package agent

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/Lavavago/Agente/internal/catalog"
)

// DefaultDelay is the simulated thinking time before a reply is produced.
const DefaultDelay = 1500 * time.Millisecond

// Reply is what the assistant answers to one user input.
//
// Products is nil when the reply carries no product list at all, and a
// non-nil (possibly empty) slice when it does. Callers must keep the two apart.
type Reply struct {
	Text     string
	Products []catalog.Product
}

// HasProducts reports whether the reply carries a product list, empty or not.
func (r Reply) HasProducts() bool {
	return r.Products != nil
}

// Normalize prepares input for matching: NFC composition then lower case, so
// a decomposed "catálogo" matches the same rule as the composed one.
func Normalize(input string) string {
	return strings.ToLower(norm.NFC.String(input))
}

// =============================================================================
// RESOLVER
// =============================================================================

// Resolver evaluates the rule list against a catalog.
type Resolver struct {
	store *catalog.Store
	rules []Rule
	delay time.Duration
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDelay sets the thinking delay. Zero or negative disables it.
func WithDelay(d time.Duration) Option {
	return func(r *Resolver) {
		r.delay = d
	}
}

// WithRules replaces the rule list.
func WithRules(rules []Rule) Option {
	return func(r *Resolver) {
		r.rules = rules
	}
}

// NewResolver creates a resolver over store with the default rules and delay.
func NewResolver(store *catalog.Store, opts ...Option) *Resolver {
	if store == nil {
		store = catalog.Default()
	}
	r := &Resolver{
		store: store,
		rules: Rules(),
		delay: DefaultDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Delay returns the configured thinking delay.
func (r *Resolver) Delay() time.Duration {
	return r.delay
}

// Store returns the catalog the resolver answers from.
func (r *Resolver) Store() *catalog.Store {
	return r.store
}

// Resolve returns the reply for input immediately, without the delay.
func (r *Resolver) Resolve(input string) Reply {
	reply, _ := r.Match(input)
	return reply
}

// Match returns the reply and the name of the rule that produced it.
// The name is "fallback" when no rule matched.
func (r *Resolver) Match(input string) (Reply, string) {
	normalized := Normalize(input)
	for _, rule := range r.rules {
		if rule.Match(normalized) {
			return rule.Handle(r.store), rule.Name
		}
	}
	return fallbackReply(), "fallback"
}

// ResolveContext waits out the thinking delay and then resolves input.
// Returns ctx.Err() if the context ends first; no reply is produced then.
func (r *Resolver) ResolveContext(ctx context.Context, input string) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}

	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return Reply{}, ctx.Err()
		case <-timer.C:
		}
	}

	return r.Resolve(input), nil
}
