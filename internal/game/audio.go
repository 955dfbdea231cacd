package game

import (
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate    = 44100
	ChannelCount  = 2
	BytesPerDepth = 2 // 16-bit signed LE samples
	frameBytes    = ChannelCount * BytesPerDepth
)

// SoundKind identifies the one-shot sound effects.
type SoundKind int

const (
	SoundImpact SoundKind = iota
	SoundScrape
	SoundToggle
)

// AudioSystem manages the procedural engine loop and one-shot effects.
type AudioSystem struct {
	ctx       *oto.Context
	ready     chan struct{}
	newPlayer func(io.Reader) oto.Player
	engine    *engineReader
	volume    float64

	mu           sync.Mutex
	closed       bool
	enginePlayer oto.Player
}

var globalAudio *AudioSystem

// activeImpacts limits simultaneous impact sounds to avoid speaker clipping.
var activeImpacts int32

// InitAudio initializes the audio context. Callers treat failure as
// non-fatal: the game runs silent.
func InitAudio(volume float64) error {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BytesPerDepth)
	if err != nil {
		return err
	}
	globalAudio = &AudioSystem{
		ctx:       ctx,
		ready:     ready,
		newPlayer: ctx.NewPlayer,
		volume:    clampF(volume, 0, 1),
	}
	return nil
}

// StartEngine arms the continuous engine hum. The device is usually still
// initializing right after InitAudio, so playback begins from a goroutine
// once the ready channel closes. Idempotent.
func StartEngine() {
	a := globalAudio
	if a == nil || a.engine != nil {
		return
	}
	a.engine = &engineReader{}
	go func() {
		<-a.ready
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.closed {
			return
		}
		p := a.newPlayer(a.engine)
		p.SetVolume(a.volume * 0.35)
		p.Play()
		a.enginePlayer = p
	}()
}

// SetEngineSpeed feeds the engine hum the current speed fraction (0..1).
func SetEngineSpeed(frac float64) {
	if globalAudio == nil || globalAudio.engine == nil {
		return
	}
	globalAudio.engine.speedBits.Store(math.Float64bits(clampF(frac, 0, 1)))
}

// StopAudio tears down the engine loop. Safe to call while the engine start
// is still waiting on the device.
func StopAudio() {
	a := globalAudio
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	if a.enginePlayer != nil {
		a.enginePlayer.Close()
		a.enginePlayer = nil
	}
}

// PlaySound plays a one-shot effect at full gain.
func PlaySound(kind SoundKind) { playSound(kind, 1.0) }

// PlayImpact plays the collision thump, gain scaled by impact speed fraction.
func PlayImpact(magnitude float64) { playSound(SoundImpact, clampF(magnitude, 0.15, 1.0)) }

func playSound(kind SoundKind, gain float64) {
	if globalAudio == nil || gain <= 0 {
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		return
	}
	if kind == SoundImpact {
		if atomic.LoadInt32(&activeImpacts) >= 2 {
			return
		}
		atomic.AddInt32(&activeImpacts, 1)
	}
	samples := generateSound(kind)
	if len(samples) == 0 {
		if kind == SoundImpact {
			atomic.AddInt32(&activeImpacts, -1)
		}
		return
	}
	go func() {
		if kind == SoundImpact {
			defer atomic.AddInt32(&activeImpacts, -1)
		}
		reader := &soundReader{data: samples}
		player := globalAudio.newPlayer(reader)
		player.SetVolume(globalAudio.volume * clampF(gain, 0, 1))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// scrapeGate throttles the off-track rumble to one burst per interval while
// the car is sliding over grass at speed.
type scrapeGate struct {
	last float64
}

func (g *scrapeGate) Due(offTrack bool, speed, now float64) bool {
	if !offTrack || math.Abs(speed) < ScrapeMinSpeed || now-g.last < ScrapeInterval {
		return false
	}
	g.last = now
	return true
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// engineReader streams an endless engine hum whose pitch and growl follow
// the speed fraction published via SetEngineSpeed.
type engineReader struct {
	speedBits atomic.Uint64
	phase     float64
	noise     uint64
}

func (e *engineReader) Read(p []byte) (int, error) {
	frames := len(p) / frameBytes
	frac := math.Float64frombits(e.speedBits.Load())
	freq := 55.0 + frac*190.0
	growl := 0.25 + frac*0.55
	for i := 0; i < frames; i++ {
		e.phase += 2 * math.Pi * freq / SampleRate
		if e.phase > 2*math.Pi {
			e.phase -= 2 * math.Pi
		}
		s := math.Sin(e.phase)
		s += 0.45 * math.Sin(2*e.phase)
		s += growl * 0.25 * math.Sin(3*e.phase+0.7)
		s += lcg(&e.noise) * 0.04 * frac
		putStereo16(p, i, softSat(s*0.5))
	}
	return frames * frameBytes, nil
}

// putStereo16 writes a [-1,1] sample as int16 LE to both stereo channels at frame i.
func putStereo16(buf []byte, i int, sample float64) {
	v := uint16(int16(clampF(sample, -1, 1) * 32767))
	buf[i*frameBytes] = byte(v)
	buf[i*frameBytes+1] = byte(v >> 8)
	buf[i*frameBytes+2] = byte(v)
	buf[i*frameBytes+3] = byte(v >> 8)
}

// softSat applies gentle tanh-like saturation to avoid hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo 16-bit buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*frameBytes) }

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundImpact:
		return genImpact()
	case SoundScrape:
		return genScrape()
	case SoundToggle:
		return genToggle()
	}
	return nil
}

// genImpact: low thump with a burst of noise, car meeting a barrier.
func genImpact() []byte {
	n := int(0.22 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0x5EED)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.35, 0.15, 0.4)
		thump := math.Sin(2 * math.Pi * (90 - 60*p) * t)
		crunch := lcg(&seed) * math.Exp(-p*9)
		putStereo16(buf, i, softSat((thump*0.8+crunch*0.5)*env))
	}
	return buf
}

// genScrape: short filtered-noise rasp for glancing contact.
func genScrape() []byte {
	n := int(0.12 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0xC0FFEE)
	prev := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		env := adsr(p, 0.05, 0.3, 0.3, 0.4)
		// One-pole lowpass keeps the noise from hissing.
		prev = prev*0.82 + lcg(&seed)*0.18
		putStereo16(buf, i, softSat(prev*3.0*env))
	}
	return buf
}

// genToggle: two-note blip for the camera switch.
func genToggle() []byte {
	n := int(0.09 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.4, 0.2, 0.3)
		f := 620.0
		if p > 0.5 {
			f = 880.0
		}
		putStereo16(buf, i, math.Sin(2*math.Pi*f*t)*env*0.5)
	}
	return buf
}
