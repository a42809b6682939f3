// Package audio plays the game's sound effects. The prototype ships no
// audio assets, so every effect is synthesized as a short frequency
// sweep and mixed through a shared speaker.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/pkg/errors"
)

// DefaultSampleRate is the playback sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// Sound identifies a synthesized effect.
type Sound int

// Available effects.
const (
	SoundPortalFire Sound = iota
	SoundPortalDenied
	SoundTeleport
)

// Manager owns the speaker and mixes concurrent effects.
type Manager struct {
	mu sync.RWMutex

	initialized  bool
	sampleRate   beep.SampleRate
	masterVolume float64
	sfxVolume    float64
	muted        bool

	mixer *beep.Mixer
}

// New creates an audio manager. Call Init before playing anything.
func New() *Manager {
	return &Manager{
		masterVolume: 1.0,
		sfxVolume:    1.0,
		mixer:        &beep.Mixer{},
	}
}

// Init opens the speaker and starts the mixer.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return errors.Wrap(err, "init speaker")
	}
	speaker.Play(m.mixer)

	m.initialized = true
	return nil
}

// Close shuts the audio system down.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	speaker.Clear()
	m.initialized = false
}

// SetMasterVolume sets the master volume in [0, 1].
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the effect volume in [0, 1].
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolume = clamp(vol, 0, 1)
}

// SetMuted silences all playback without touching the volume settings.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// Play queues an effect. Playback failures are silent: a game without
// sound is still a game.
func (m *Manager) Play(s Sound) {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.masterVolume * m.sfxVolume
	muted := m.muted
	rate := m.sampleRate
	m.mu.RUnlock()

	if !initialized || muted || vol <= 0 {
		return
	}

	streamer := &effects.Volume{
		Streamer: synthesize(s, rate),
		Base:     2,
		Volume:   volumeToDb(vol),
	}

	speaker.Lock()
	m.mixer.Add(streamer)
	speaker.Unlock()
}

// volumeToDb converts a 0-1 volume to the decibel scale effects.Volume
// expects. vol=1 is 0dB, vol=0.5 about -6dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * math.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
