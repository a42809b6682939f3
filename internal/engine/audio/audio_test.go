package audio

import (
	"math"
	"testing"
)

func TestVolumeToDb(t *testing.T) {
	tests := []struct {
		vol float64
		min float64
		max float64
	}{
		{1.0, -1, 1},
		{0.5, -8, -4},
		{0.25, -14, -10},
		{0.0, -200, -90},
	}
	for _, tt := range tests {
		db := volumeToDb(tt.vol)
		if db < tt.min || db > tt.max {
			t.Errorf("volumeToDb(%f) = %f, want between %f and %f", tt.vol, db, tt.min, tt.max)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.min, tt.max); got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestSweepTerminates(t *testing.T) {
	for _, s := range []Sound{SoundPortalFire, SoundPortalDenied, SoundTeleport} {
		streamer := synthesize(s, DefaultSampleRate)
		buf := make([][2]float64, 512)
		total := 0
		for {
			n, ok := streamer.Stream(buf)
			for _, sample := range buf[:n] {
				if math.Abs(sample[0]) > 1 || math.IsNaN(sample[0]) {
					t.Fatalf("sound %d: sample out of range: %v", s, sample[0])
				}
			}
			total += n
			if !ok {
				break
			}
		}
		if total == 0 {
			t.Errorf("sound %d produced no samples", s)
		}
		// Half a second is the longest effect.
		if total > int(DefaultSampleRate/2)+1 {
			t.Errorf("sound %d too long: %d samples", s, total)
		}
	}
}

func TestPlayUninitializedIsNoop(t *testing.T) {
	m := New()
	// Must not panic or touch the speaker.
	m.Play(SoundPortalFire)
	m.SetMuted(true)
	m.SetMasterVolume(0.5)
	m.Play(SoundTeleport)
}
