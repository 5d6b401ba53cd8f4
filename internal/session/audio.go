// Copyright (c) 2025 Lavavago
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"fmt"
	"time"
)

// ErrAudioDisabled is returned when changing the volume with audio off.
var ErrAudioDisabled = errors.New("audio is disabled")

// DefaultSpeakFor is how long the "speaking" indicator stays on after a reply.
const DefaultSpeakFor = time.Second

// AudioConfig is the initial audio state.
type AudioConfig struct {
	Enabled  bool
	Volume   float64
	SpeakFor time.Duration
}

// DefaultAudioConfig returns audio on at full volume.
func DefaultAudioConfig() AudioConfig {
	return AudioConfig{
		Enabled:  true,
		Volume:   1.0,
		SpeakFor: DefaultSpeakFor,
	}
}

// Audio is a snapshot of the audio controls.
type Audio struct {
	Enabled  bool
	Speaking bool
	Volume   float64
}

// Label is the status text for the audio bar.
func (a Audio) Label() string {
	switch {
	case a.Speaking:
		return "Hablando..."
	case a.Enabled:
		return "Audio ON"
	default:
		return "Audio OFF"
	}
}

// VolumePercent returns the volume rounded to a whole percentage.
func (a Audio) VolumePercent() int {
	return int(a.Volume*100 + 0.5)
}

// audioState is guarded by Session.mu.
type audioState struct {
	enabled       bool
	volume        float64
	speakFor      time.Duration
	speakingUntil time.Time
}

func newAudioState(cfg AudioConfig) *audioState {
	speakFor := cfg.SpeakFor
	if speakFor <= 0 {
		speakFor = DefaultSpeakFor
	}
	return &audioState{
		enabled:  cfg.Enabled,
		volume:   clampVolume(cfg.Volume),
		speakFor: speakFor,
	}
}

func (a *audioState) startSpeaking(now time.Time) {
	if a.enabled {
		a.speakingUntil = now.Add(a.speakFor)
	}
}

func (a *audioState) snapshot(now time.Time) Audio {
	return Audio{
		Enabled:  a.enabled,
		Speaking: a.enabled && now.Before(a.speakingUntil),
		Volume:   a.volume,
	}
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// =============================================================================
// SESSION AUDIO CONTROLS
// =============================================================================

// Audio returns the current audio state.
func (s *Session) Audio() Audio {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audio.snapshot(s.now())
}

// SpeakFor returns how long the speaking indicator lasts.
func (s *Session) SpeakFor() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audio.speakFor
}

// ToggleAudio flips audio on or off and returns the new state.
// Turning audio off also stops speaking.
func (s *Session) ToggleAudio() Audio {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setEnabledLocked(!s.audio.enabled)
	return s.audio.snapshot(s.now())
}

// SetAudioEnabled turns audio on or off.
func (s *Session) SetAudioEnabled(enabled bool) Audio {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setEnabledLocked(enabled)
	return s.audio.snapshot(s.now())
}

func (s *Session) setEnabledLocked(enabled bool) {
	s.audio.enabled = enabled
	if !enabled {
		s.audio.speakingUntil = time.Time{}
	}
}

// StopSpeaking ends the speaking indicator early.
func (s *Session) StopSpeaking() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audio.speakingUntil = time.Time{}
}

// SetVolume sets the volume in [0,1]. Ignored with ErrAudioDisabled while
// audio is off.
func (s *Session) SetVolume(v float64) error {
	if v < 0 || v > 1 || v != v {
		return fmt.Errorf("volume %v out of range [0,1]", v)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.audio.enabled {
		return ErrAudioDisabled
	}
	s.audio.volume = v
	return nil
}
