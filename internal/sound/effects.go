package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// sweep is a sine that glides from one frequency to another and fades out.
type sweep struct {
	rate     beep.SampleRate
	from, to float64
	total    int
	pos      int
	phase    float64
}

func newSweep(rate beep.SampleRate, from, to float64, d time.Duration) *sweep {
	return &sweep{rate: rate, from: from, to: to, total: rate.N(d)}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		t := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*t
		v := math.Sin(2*math.Pi*s.phase) * (1 - t)
		samples[i][0] = v
		samples[i][1] = v
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// crackle is decaying noise over a low rumble.
type crackle struct {
	rate   beep.SampleRate
	total  int
	pos    int
	seed   uint32
	rumble float64
}

func newCrackle(rate beep.SampleRate, rumble float64, d time.Duration, seed uint32) *crackle {
	if seed == 0 {
		seed = 1
	}
	return &crackle{rate: rate, total: rate.N(d), seed: seed, rumble: rumble}
}

func (c *crackle) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if c.pos >= c.total {
			return i, i > 0
		}
		t := float64(c.pos) / float64(c.rate)
		env := math.Exp(-t * 14)

		// xorshift32
		c.seed ^= c.seed << 13
		c.seed ^= c.seed >> 17
		c.seed ^= c.seed << 5
		noise := float64(c.seed)/float64(math.MaxUint32)*2 - 1

		v := env * (0.6*noise + 0.4*math.Sin(2*math.Pi*c.rumble*t))
		samples[i][0] = v
		samples[i][1] = v
		c.pos++
	}
	return len(samples), true
}

func (c *crackle) Err() error { return nil }

// newVolume scales s linearly; vol <= 0 silences it.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is a plain sine note of fixed length.
func tone(rate beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	s, err := generators.SineTone(rate, freq)
	if err != nil {
		return generators.Silence(rate.N(d))
	}
	return beep.Take(rate.N(d), s)
}

// Sound recipes.

func fireSound(rate beep.SampleRate) beep.Streamer {
	return newSweep(rate, 1400, 600, 60*time.Millisecond)
}

func hitSound(rate beep.SampleRate, seed uint32) beep.Streamer {
	return newCrackle(rate, 110, 220*time.Millisecond, seed)
}

func missSound(rate beep.SampleRate) beep.Streamer {
	return newSweep(rate, 320, 110, 260*time.Millisecond)
}

func cannonHitSound(rate beep.SampleRate, seed uint32) beep.Streamer {
	return beep.Mix(
		newVolume(newCrackle(rate, 70, 300*time.Millisecond, seed), 0.7),
		newVolume(newSweep(rate, 180, 60, 300*time.Millisecond), 0.5),
	)
}

func gameOverSound(rate beep.SampleRate) beep.Streamer {
	const note = 220 * time.Millisecond
	return beep.Seq(
		tone(rate, 392, note),
		tone(rate, 330, note),
		tone(rate, 262, 2*note),
	)
}
