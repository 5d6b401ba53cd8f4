// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Lavavago/Agente/internal/obs"
)

// Submitter hands a validated request to whatever fulfills it.
type Submitter interface {
	Submit(ctx context.Context, req Request) (Confirmation, error)
}

// LocalSubmitter accepts orders in-process. Nothing is sent anywhere and
// nothing is stored; submitting always succeeds once validation passes.
type LocalSubmitter struct {
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// NewLocalSubmitter creates a LocalSubmitter using the wall clock.
func NewLocalSubmitter() *LocalSubmitter {
	return &LocalSubmitter{}
}

// Submit validates req, computes the total and returns a confirmation.
func (s *LocalSubmitter) Submit(ctx context.Context, req Request) (Confirmation, error) {
	if err := ctx.Err(); err != nil {
		return Confirmation{}, err
	}
	if err := Validate(req); err != nil {
		obs.Logger.Warn("order rejected", "product", req.Product.Name, "error", err.Error())
		return Confirmation{}, err
	}

	total, err := ComputeTotal(req.Product, req.Quantity)
	if err != nil {
		return Confirmation{}, err
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	conf := Confirmation{
		OrderID:     uuid.New().String(),
		ProductID:   req.Product.ID,
		ProductName: req.Product.Name,
		Quantity:    req.Quantity,
		UnitPrice:   req.Product.FinalPrice(),
		Total:       total,
		PaymentRef:  MaskPaymentRef(req.PaymentRef),
		SubmittedAt: now(),
	}

	obs.Logger.Info("order submitted",
		"order_id", conf.OrderID,
		"product", conf.ProductName,
		"quantity", conf.Quantity,
		"total", conf.Total.StringFixed(2))

	return conf, nil
}

// =============================================================================
// CAPTURE
// =============================================================================

// Capture is the purchase entry point used by the UI and the REPL.
type Capture struct {
	submitter Submitter
}

// NewCapture wraps submitter. A nil submitter means a LocalSubmitter.
func NewCapture(submitter Submitter) *Capture {
	if submitter == nil {
		submitter = NewLocalSubmitter()
	}
	return &Capture{submitter: submitter}
}

// Submit forwards req to the submitter.
func (c *Capture) Submit(ctx context.Context, req Request) (Confirmation, error) {
	conf, err := c.submitter.Submit(ctx, req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return Confirmation{}, err
		}
		return Confirmation{}, fmt.Errorf("submit order: %w", err)
	}
	return conf, nil
}

// Notice is the success message shown after a purchase.
func Notice(conf Confirmation) string {
	return fmt.Sprintf("¡Compra de %s realizada con éxito!", conf.ProductName)
}
