// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Lavavago/Agente/internal/agent"
	"github.com/Lavavago/Agente/internal/catalog"
	"github.com/Lavavago/Agente/internal/order"
)

func newTestSession(t *testing.T, delay time.Duration) *Session {
	t.Helper()
	resolver := agent.NewResolver(catalog.Default(), agent.WithDelay(delay))
	return New(DefaultConfig(), resolver, nil)
}

// =============================================================================
// CREATION TESTS
// =============================================================================

func TestNew_SeedsWelcome(t *testing.T) {
	s := newTestSession(t, 0)

	_, err := uuid.Parse(s.ID())
	require.NoError(t, err)
	require.False(t, s.StartTime().IsZero())

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	require.True(t, msgs[0].IsAgent())
	require.Equal(t, DefaultWelcome, msgs[0].Text)
	require.Nil(t, msgs[0].Products)
	require.Equal(t, int64(1), msgs[0].ID)
}

func TestNew_CustomWelcomeAndDefaults(t *testing.T) {
	s := New(Config{Welcome: "Bienvenido"}, nil, nil)
	require.Equal(t, "Bienvenido", s.Messages()[0].Text)
	require.Equal(t, 6, s.Store().Len())
	require.Equal(t, agent.DefaultDelay, s.Resolver().Delay())
}

// =============================================================================
// REQUEST TESTS
// =============================================================================

func TestSubmitComplete(t *testing.T) {
	s := newTestSession(t, 0)

	p, err := s.Submit("busco mesas")
	require.NoError(t, err)
	require.Equal(t, uint64(1), p.Seq)
	require.True(t, s.IsPending())
	require.Equal(t, MoodThinking, s.Mood())

	reply, err := s.Resolve(p)
	require.NoError(t, err)

	msg, ok := s.Complete(p.Seq, reply)
	require.True(t, ok)
	require.Equal(t, agent.TablesText, msg.Text)
	require.Len(t, msg.Products, 1)
	require.False(t, s.IsPending())
	require.Equal(t, MoodNeutral, s.Mood())

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	require.True(t, msgs[1].IsUser())
	require.Equal(t, "busco mesas", msgs[1].Text)
}

func TestSubmit_EmptyInput(t *testing.T) {
	s := newTestSession(t, 0)
	_, err := s.Submit("   ")
	require.ErrorIs(t, err, ErrEmptyInput)
	require.Len(t, s.Messages(), 1)
}

func TestSubmit_LastRequestWins(t *testing.T) {
	s := newTestSession(t, 0)

	first, err := s.Submit("hola")
	require.NoError(t, err)
	second, err := s.Submit("busco mesas")
	require.NoError(t, err)

	// The superseded request's context is cancelled.
	select {
	case <-first.Ctx.Done():
	default:
		t.Fatal("first request context should be cancelled")
	}

	_, ok := s.Complete(first.Seq, agent.Reply{Text: agent.GreetingText})
	require.False(t, ok)

	msg, ok := s.Complete(second.Seq, s.Resolver().Resolve(second.Input))
	require.True(t, ok)
	require.Equal(t, agent.TablesText, msg.Text)

	// welcome + two user messages + one agent reply
	msgs := s.Messages()
	require.Len(t, msgs, 4)
	agentReplies := 0
	for _, m := range msgs[1:] {
		if m.IsAgent() {
			agentReplies++
		}
	}
	require.Equal(t, 1, agentReplies)
}

func TestComplete_TwiceIsDropped(t *testing.T) {
	s := newTestSession(t, 0)
	p, err := s.Submit("hola")
	require.NoError(t, err)

	_, ok := s.Complete(p.Seq, agent.Reply{Text: "a"})
	require.True(t, ok)
	_, ok = s.Complete(p.Seq, agent.Reply{Text: "b"})
	require.False(t, ok)
}

func TestCancel(t *testing.T) {
	s := newTestSession(t, time.Minute)
	require.False(t, s.Cancel())

	p, err := s.Submit("hola")
	require.NoError(t, err)
	require.Equal(t, p.Seq, s.CurrentSeq())

	require.True(t, s.Cancel())
	_, err = s.Resolve(p)
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, s.Fail(p.Seq))

	_, ok := s.Complete(p.Seq, agent.Reply{Text: "tarde"})
	require.False(t, ok)
	require.Equal(t, uint64(0), s.CurrentSeq())
}

func TestFail(t *testing.T) {
	s := newTestSession(t, 0)
	p, err := s.Submit("hola")
	require.NoError(t, err)
	require.True(t, s.Fail(p.Seq))
	require.False(t, s.IsPending())
	require.Len(t, s.Messages(), 2)
}

func TestDispose_SuppressesCompletion(t *testing.T) {
	s := newTestSession(t, time.Minute)
	p, err := s.Submit("hola")
	require.NoError(t, err)

	s.Dispose()
	s.Dispose()
	require.True(t, s.IsDisposed())

	select {
	case <-p.Ctx.Done():
	default:
		t.Fatal("pending context should be cancelled by Dispose")
	}

	_, ok := s.Complete(p.Seq, agent.Reply{Text: "tarde"})
	require.False(t, ok)
	require.Len(t, s.Messages(), 2)

	_, err = s.Submit("otra")
	require.ErrorIs(t, err, ErrDisposed)
}

func TestAsk(t *testing.T) {
	s := newTestSession(t, 0)

	msg, err := s.Ask(context.Background(), "quiero ver el catálogo")
	require.NoError(t, err)
	require.Equal(t, agent.CatalogText, msg.Text)
	require.Len(t, msg.Products, 6)

	msg, err = s.Ask(context.Background(), "algo random")
	require.NoError(t, err)
	require.Nil(t, msg.Products)
}

func TestAsk_ContextCancelled(t *testing.T) {
	s := newTestSession(t, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Ask(ctx, "hola")
	require.True(t, errors.Is(err, context.DeadlineExceeded))
	require.False(t, s.IsPending())
	// welcome + user message, no agent reply
	require.Len(t, s.Messages(), 2)
}

func TestMessageIDsStrictlyIncrease(t *testing.T) {
	s := newTestSession(t, 0)
	for _, q := range []string{"hola", "busco mesas", "modular", "populares", "algo"} {
		_, err := s.Ask(context.Background(), q)
		require.NoError(t, err)
	}
	s.Clear()
	_, err := s.Ask(context.Background(), "hola")
	require.NoError(t, err)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, int64(12), msgs[0].ID)
	require.Equal(t, int64(13), msgs[1].ID)
}

func TestConcurrentSubmit(t *testing.T) {
	s := newTestSession(t, 0)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := s.Submit("hola")
			if err != nil {
				return
			}
			if reply, err := s.Resolve(p); err == nil {
				s.Complete(p.Seq, reply)
			}
		}()
	}
	wg.Wait()

	seen := make(map[int64]bool)
	var last int64
	for _, m := range s.Messages() {
		require.False(t, seen[m.ID])
		require.Greater(t, m.ID, last)
		seen[m.ID] = true
		last = m.ID
	}
}

// =============================================================================
// ORDER TESTS
// =============================================================================

func TestPlaceOrder(t *testing.T) {
	s := newTestSession(t, 0)
	p, _ := s.Store().Get(2)

	req := order.Request{
		Product:  p,
		Quantity: 1,
		Contact: order.Contact{
			Name: "Luis", Email: "luis@example.com", Phone: "600", Address: "Calle 1", Zip: "1000",
		},
		PaymentRef: "4000000000000002",
	}
	conf, err := s.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "332.98", conf.Total.StringFixed(2))

	s.Dispose()
	_, err = s.PlaceOrder(context.Background(), req)
	require.ErrorIs(t, err, ErrDisposed)
}

// =============================================================================
// AUDIO TESTS
// =============================================================================

func TestAudio_Defaults(t *testing.T) {
	a := newTestSession(t, 0).Audio()
	require.True(t, a.Enabled)
	require.False(t, a.Speaking)
	require.Equal(t, 1.0, a.Volume)
	require.Equal(t, "Audio ON", a.Label())
	require.Equal(t, 100, a.VolumePercent())
}

func TestAudio_SpeakingAfterReply(t *testing.T) {
	s := newTestSession(t, 0)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return now })

	_, err := s.Ask(context.Background(), "hola")
	require.NoError(t, err)
	require.True(t, s.Audio().Speaking)
	require.Equal(t, "Hablando...", s.Audio().Label())

	now = now.Add(s.SpeakFor())
	require.False(t, s.Audio().Speaking)
}

func TestAudio_StopSpeaking(t *testing.T) {
	s := newTestSession(t, 0)
	_, err := s.Ask(context.Background(), "hola")
	require.NoError(t, err)
	s.StopSpeaking()
	require.False(t, s.Audio().Speaking)
}

func TestAudio_DisabledNeverSpeaks(t *testing.T) {
	s := newTestSession(t, 0)
	a := s.ToggleAudio()
	require.False(t, a.Enabled)
	require.Equal(t, "Audio OFF", a.Label())

	_, err := s.Ask(context.Background(), "hola")
	require.NoError(t, err)
	require.False(t, s.Audio().Speaking)

	require.True(t, s.ToggleAudio().Enabled)
}

func TestAudio_SetVolume(t *testing.T) {
	s := newTestSession(t, 0)

	require.NoError(t, s.SetVolume(0.4))
	require.Equal(t, 0.4, s.Audio().Volume)

	require.Error(t, s.SetVolume(1.5))
	require.Error(t, s.SetVolume(-0.1))

	s.SetAudioEnabled(false)
	require.ErrorIs(t, s.SetVolume(0.9), ErrAudioDisabled)
	require.Equal(t, 0.4, s.Audio().Volume)
}

func TestAudio_ConfigClampsVolume(t *testing.T) {
	s := New(Config{Audio: AudioConfig{Enabled: true, Volume: 3}}, nil, nil)
	require.Equal(t, 1.0, s.Audio().Volume)
	require.Equal(t, DefaultSpeakFor, s.SpeakFor())
}
