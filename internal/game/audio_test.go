package game

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlayer satisfies oto.Player without a real audio device.
type fakePlayer struct {
	mu      sync.Mutex
	playing bool
	volume  float64
	closed  bool
}

func (p *fakePlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = true
}

func (p *fakePlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
}

func (p *fakePlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *fakePlayer) Reset() {}

func (p *fakePlayer) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

func (p *fakePlayer) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = v
}

func (p *fakePlayer) UnplayedBufferSize() int { return 0 }

func (p *fakePlayer) Err() error { return nil }

func (p *fakePlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func swapAudio(t *testing.T, a *AudioSystem) {
	t.Helper()
	prev := globalAudio
	globalAudio = a
	t.Cleanup(func() { globalAudio = prev })
}

func TestStartEngineWaitsForDeviceReady(t *testing.T) {
	ready := make(chan struct{})
	var fp *fakePlayer
	a := &AudioSystem{
		ready:  ready,
		volume: 1,
		newPlayer: func(io.Reader) oto.Player {
			fp = &fakePlayer{}
			return fp
		},
	}
	swapAudio(t, a)

	StartEngine()
	require.NotNil(t, a.engine, "hum reader must be armed immediately")

	// Device still initializing: no player yet, and the call must not block.
	a.mu.Lock()
	assert.Nil(t, a.enginePlayer)
	a.mu.Unlock()

	close(ready)
	deadline := time.Now().Add(2 * time.Second)
	started := false
	for !started && time.Now().Before(deadline) {
		a.mu.Lock()
		started = a.enginePlayer != nil
		a.mu.Unlock()
		if !started {
			time.Sleep(2 * time.Millisecond)
		}
	}
	require.True(t, started, "engine must start once the device reports ready")
	assert.True(t, fp.IsPlaying())
	assert.InDelta(t, 0.35, fp.Volume(), 1e-9)
}

func TestStopAudioBeforeDeviceReady(t *testing.T) {
	ready := make(chan struct{})
	created := false
	a := &AudioSystem{
		ready: ready,
		newPlayer: func(io.Reader) oto.Player {
			created = true
			return &fakePlayer{}
		},
	}
	swapAudio(t, a)

	StartEngine()
	StopAudio()
	close(ready)
	time.Sleep(30 * time.Millisecond)

	// Shutdown won the race: the pending start must not create a player.
	a.mu.Lock()
	defer a.mu.Unlock()
	assert.False(t, created)
	assert.Nil(t, a.enginePlayer)
}

func TestStartEngineIdempotent(t *testing.T) {
	ready := make(chan struct{})
	close(ready)
	players := 0
	a := &AudioSystem{
		ready: ready,
		newPlayer: func(io.Reader) oto.Player {
			players++
			return &fakePlayer{}
		},
	}
	swapAudio(t, a)

	StartEngine()
	StartEngine()
	time.Sleep(30 * time.Millisecond)

	a.mu.Lock()
	defer a.mu.Unlock()
	assert.Equal(t, 1, players)
}

func TestScrapeGate(t *testing.T) {
	var g scrapeGate

	assert.False(t, g.Due(false, MaxSpeed, 1.0), "on track never rumbles")
	assert.False(t, g.Due(true, ScrapeMinSpeed/2, 1.0), "crawling slides silently")
	assert.True(t, g.Due(true, 30, 1.0))
	assert.False(t, g.Due(true, 30, 1.0+ScrapeInterval/2), "throttled inside the interval")
	assert.True(t, g.Due(true, 30, 1.0+ScrapeInterval+0.01))
	assert.True(t, g.Due(true, -30, 2.0+2*ScrapeInterval), "reversing off track rumbles too")
}
