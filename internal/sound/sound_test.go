package sound

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/tomz197/starfall/internal/loop"
)

const testRate = beep.SampleRate(22050)

func drain(t *testing.T, s beep.Streamer, limit int) (int, [2]float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	var peak [2]float64
	for total < limit {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			for ch := 0; ch < 2; ch++ {
				if math.IsNaN(smp[ch]) {
					t.Fatalf("NaN sample at %d", total)
				}
				if a := math.Abs(smp[ch]); a > peak[ch] {
					peak[ch] = a
				}
			}
		}
		total += n
		if !ok {
			break
		}
	}
	return total, peak
}

func TestSweepLength(t *testing.T) {
	s := newSweep(testRate, 1000, 500, 100*time.Millisecond)
	n, peak := drain(t, s, 1<<20)
	if want := testRate.N(100 * time.Millisecond); n != want {
		t.Fatalf("streamed %d samples, want %d", n, want)
	}
	if peak[0] > 1 || peak[0] == 0 {
		t.Fatalf("peak = %v, want (0, 1]", peak[0])
	}
}

func TestCrackleStaysInRange(t *testing.T) {
	s := newCrackle(testRate, 100, 200*time.Millisecond, 7)
	n, peak := drain(t, s, 1<<20)
	if want := testRate.N(200 * time.Millisecond); n != want {
		t.Fatalf("streamed %d samples, want %d", n, want)
	}
	if peak[0] > 1 || peak[1] > 1 {
		t.Fatalf("peak = %v, want <= 1", peak)
	}
}

func TestCrackleZeroSeed(t *testing.T) {
	s := newCrackle(testRate, 100, 50*time.Millisecond, 0)
	_, peak := drain(t, s, 1<<20)
	if peak[0] == 0 {
		t.Fatal("zero seed produced silence")
	}
}

func TestGameOverSoundIsFinite(t *testing.T) {
	n, _ := drain(t, gameOverSound(testRate), 1<<22)
	if want := testRate.N(880 * time.Millisecond); n != want {
		t.Fatalf("streamed %d samples, want %d", n, want)
	}
}

func TestNewVolumeSilent(t *testing.T) {
	s := newVolume(newSweep(testRate, 440, 440, 50*time.Millisecond), 0)
	_, peak := drain(t, s, 1<<20)
	if peak[0] != 0 {
		t.Fatalf("silent volume produced peak %v", peak[0])
	}
}

func TestPlayerQueuesEffects(t *testing.T) {
	p := NewPlayer(testRate, 1)

	p.HandleEvent(loop.Event{Kind: loop.EventSpawn})
	if got := p.Active(); got != 0 {
		t.Fatalf("spawn queued %d effects, want 0", got)
	}

	p.HandleEvent(loop.Event{Kind: loop.EventHit})
	p.HandleEvent(loop.Event{Kind: loop.EventMiss})
	if got := p.Active(); got != 2 {
		t.Fatalf("Active() = %d, want 2", got)
	}

	buf := make([][2]float64, 1024)
	for i := 0; i < 100 && p.Active() > 0; i++ {
		p.mixer.Stream(buf)
	}
	if got := p.Active(); got != 0 {
		t.Fatalf("effects still active after draining: %d", got)
	}
}

func TestPlayerEveryEventKind(t *testing.T) {
	p := NewPlayer(testRate, 0.5)
	for kind := range effectVolume {
		if s := p.streamer(kind); s == nil {
			t.Errorf("no sound for %v", kind)
		}
	}
}

func TestPlayerCloseWithoutInit(t *testing.T) {
	p := NewPlayer(testRate, 1)
	p.Close()
}
