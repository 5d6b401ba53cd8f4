// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Lavavago/Agente/internal/agent"
	"github.com/Lavavago/Agente/internal/catalog"
	"github.com/Lavavago/Agente/internal/model"
	"github.com/Lavavago/Agente/internal/obs"
	"github.com/Lavavago/Agente/internal/order"
)

// DefaultWelcome is the first agent message of every session.
const DefaultWelcome = "¡Hola! Soy tu asistente de diseño. ¿En qué puedo ayudarte hoy? Escribe \"catálogo\" para ver nuestros productos."

var (
	// ErrDisposed is returned by Submit after Dispose.
	ErrDisposed = errors.New("session disposed")

	// ErrEmptyInput is returned by Submit for blank text.
	ErrEmptyInput = errors.New("empty input")

	// ErrStale is returned by Ask when a newer request superseded it.
	ErrStale = errors.New("request superseded")
)

// =============================================================================
// CONFIG
// =============================================================================

// Config holds configuration for a session.
type Config struct {
	// Welcome is the seeded agent message. Empty means DefaultWelcome.
	Welcome string

	// Audio is the initial audio state.
	Audio AudioConfig
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		Welcome: DefaultWelcome,
		Audio:   DefaultAudioConfig(),
	}
}

// =============================================================================
// SESSION
// =============================================================================

// Pending is an in-flight request. Ctx is cancelled when the request is
// superseded, cancelled or the session is disposed.
type Pending struct {
	Seq   uint64
	Input string
	Ctx   context.Context
}

// Session owns the conversation log and the state around it: the in-flight
// request, audio settings and the collaborators that answer and take orders.
//
// All methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	id        string
	startTime time.Time

	conv     *model.Conversation
	resolver *agent.Resolver
	capture  *order.Capture

	// Request tracking. seq is the last sequence handed out; pending is
	// non-nil while that request is in flight.
	seq      uint64
	pending  *Pending
	cancel   context.CancelFunc
	disposed bool

	audio *audioState
	now   func() time.Time
}

// New creates a session answering with resolver and taking orders through
// capture. Nil collaborators get defaults over the built-in catalog.
func New(cfg Config, resolver *agent.Resolver, capture *order.Capture) *Session {
	if resolver == nil {
		resolver = agent.NewResolver(catalog.Default())
	}
	if capture == nil {
		capture = order.NewCapture(nil)
	}
	welcome := cfg.Welcome
	if strings.TrimSpace(welcome) == "" {
		welcome = DefaultWelcome
	}

	s := &Session{
		id:        uuid.New().String(),
		startTime: time.Now(),
		conv:      model.NewConversation(),
		resolver:  resolver,
		capture:   capture,
		audio:     newAudioState(cfg.Audio),
		now:       time.Now,
	}
	s.conv.AddAgentMessage(welcome, nil)

	obs.Logger.Info("session started", "session_id", s.id, "products", resolver.Store().Len())
	return s
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// StartTime returns when the session started.
func (s *Session) StartTime() time.Time {
	return s.startTime
}

// Store returns the catalog the session sells from.
func (s *Session) Store() *catalog.Store {
	return s.resolver.Store()
}

// Resolver returns the session's resolver.
func (s *Session) Resolver() *agent.Resolver {
	return s.resolver
}

// Conversation returns a snapshot of the conversation log.
func (s *Session) Conversation() *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.Clone()
}

// Messages returns a snapshot of the messages.
func (s *Session) Messages() []*model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Message, len(s.conv.Messages))
	copy(out, s.conv.Messages)
	return out
}

// LastAgentMessage returns the most recent agent message, or nil.
func (s *Session) LastAgentMessage() *model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.LastAgentMessage()
}

// Clear empties the visible history. Message ids keep increasing.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv.Clear()
}

// SetClock overrides the clock for timestamps and audio timing. Used by tests.
func (s *Session) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	s.conv.SetClock(now)
}

// =============================================================================
// REQUESTS
// =============================================================================

// Submit appends the user's text and starts a new request for it.
// Any older in-flight request is cancelled; only the newest one can
// complete.
func (s *Session) Submit(text string) (*Pending, error) {
	return s.SubmitContext(context.Background(), text)
}

// SubmitContext is Submit with a parent context for the request.
func (s *Session) SubmitContext(parent context.Context, text string) (*Pending, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return nil, ErrDisposed
	}

	if s.pending != nil {
		obs.Logger.Debug("request superseded", "session_id", s.id, "seq", s.pending.Seq)
		s.cancelLocked()
	}

	s.conv.AddUserMessage(text)

	ctx, cancel := context.WithCancel(parent)
	s.seq++
	s.pending = &Pending{Seq: s.seq, Input: text, Ctx: ctx}
	s.cancel = cancel

	obs.Logger.Info("request dispatched", "session_id", s.id, "seq", s.seq)
	return s.pending, nil
}

// Resolve runs the resolver for p, honoring its context.
func (s *Session) Resolve(p *Pending) (agent.Reply, error) {
	return s.resolver.ResolveContext(p.Ctx, p.Input)
}

// Complete appends the agent reply for request seq. It returns false and
// appends nothing when seq is not the current request or the session has
// been disposed.
func (s *Session) Complete(seq uint64, reply agent.Reply) (*model.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed || s.pending == nil || s.pending.Seq != seq {
		obs.Logger.Debug("stale reply dropped", "session_id", s.id, "seq", seq)
		return nil, false
	}

	s.cancelLocked()
	msg := s.conv.AddAgentMessage(reply.Text, reply.Products)
	s.audio.startSpeaking(s.now())
	return msg, true
}

// Fail ends request seq without a reply, e.g. after its context was
// cancelled. Returns false if seq is not the current request.
func (s *Session) Fail(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil || s.pending.Seq != seq {
		return false
	}
	s.cancelLocked()
	return true
}

// Cancel aborts the in-flight request, if any. Returns true if one was
// cancelled.
func (s *Session) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return false
	}
	obs.Logger.Info("request cancelled", "session_id", s.id, "seq", s.pending.Seq)
	s.cancelLocked()
	return true
}

// IsPending reports whether a request is in flight.
func (s *Session) IsPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// CurrentSeq returns the sequence of the in-flight request, or 0.
func (s *Session) CurrentSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return 0
	}
	return s.pending.Seq
}

// Dispose cancels any in-flight request and makes every later Submit and
// Complete a no-op. Safe to call more than once.
func (s *Session) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}
	s.cancelLocked()
	s.disposed = true
	obs.Logger.Info("session disposed", "session_id", s.id, "messages", s.conv.LastID())
}

// IsDisposed reports whether Dispose has been called.
func (s *Session) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// Ask submits text, waits for the reply and appends it. Used where there is
// no event loop, like the REPL and the one-shot ask command.
func (s *Session) Ask(ctx context.Context, text string) (*model.Message, error) {
	p, err := s.SubmitContext(ctx, text)
	if err != nil {
		return nil, err
	}

	reply, err := s.Resolve(p)
	if err != nil {
		s.Fail(p.Seq)
		return nil, err
	}

	msg, ok := s.Complete(p.Seq, reply)
	if !ok {
		return nil, ErrStale
	}
	return msg, nil
}

// cancelLocked cancels the in-flight context and forgets the request.
// Also used on completion to release the finished request's context.
func (s *Session) cancelLocked() {
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = nil
	s.pending = nil
}

// =============================================================================
// ORDERS
// =============================================================================

// PlaceOrder submits a purchase through the session's capture.
func (s *Session) PlaceOrder(ctx context.Context, req order.Request) (order.Confirmation, error) {
	if s.IsDisposed() {
		return order.Confirmation{}, ErrDisposed
	}
	return s.capture.Submit(ctx, req)
}

// =============================================================================
// MOOD
// =============================================================================

// Mood is the avatar expression.
type Mood string

const (
	MoodNeutral  Mood = "neutral"
	MoodThinking Mood = "thinking"
)

// Mood returns thinking while a request is in flight, neutral otherwise.
func (s *Session) Mood() Mood {
	if s.IsPending() {
		return MoodThinking
	}
	return MoodNeutral
}
