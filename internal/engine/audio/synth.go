package audio

import (
	"math"

	"github.com/gopxl/beep/v2"
)

// sweep is a finite sine sweep with an exponential decay envelope.
type sweep struct {
	rate     beep.SampleRate
	startHz  float64
	endHz    float64
	duration float64

	pos   int
	phase float64
}

func synthesize(s Sound, rate beep.SampleRate) beep.Streamer {
	switch s {
	case SoundPortalFire:
		return &sweep{rate: rate, startHz: 320, endHz: 960, duration: 0.25}
	case SoundPortalDenied:
		return &sweep{rate: rate, startHz: 140, endHz: 110, duration: 0.15}
	case SoundTeleport:
		return &sweep{rate: rate, startHz: 880, endHz: 220, duration: 0.35}
	default:
		return beep.Silence(0)
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	total := int(float64(s.rate) * s.duration)
	if s.pos >= total {
		return 0, false
	}

	for i := range samples {
		if s.pos >= total {
			return i, true
		}
		t := float64(s.pos) / float64(total)
		freq := s.startHz + (s.endHz-s.startHz)*t
		s.phase += 2 * math.Pi * freq / float64(s.rate)
		v := math.Sin(s.phase) * math.Exp(-3*t) * 0.4
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error {
	return nil
}
