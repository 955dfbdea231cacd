package game

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// RunDesktop is the whole game shell: window, GL state, audio, and the
// fixed-step frame loop driving one Simulation.
func RunDesktop() {
	runtime.LockOSThread()

	settings, err := LoadSettings(".")
	if err != nil {
		settings = DefaultSettings()
	}
	log := NewLogger(settings.LogLevel)
	if err != nil {
		log.Warn().Err(err).Msg("config load failed, using defaults")
	}

	window, err := initWindow(settings.WindowWidth, settings.WindowHeight)
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)

	if settings.AudioEnabled {
		if err := InitAudio(settings.AudioVolume); err != nil {
			log.Warn().Err(err).Msg("audio init failed, continuing without sound")
		} else {
			defer StopAudio()
			StartEngine()
		}
	}

	// Seed from config, environment, or clock.
	seed := settings.Seed
	if s := os.Getenv("RACER_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed = v
		}
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	sim := NewSimulation(seed)
	sim.Rebuild()
	log.Info().
		Uint64("seed", seed).
		Int("waypoints", len(sim.Track.Waypoints)).
		Int("barriers", len(sim.Barriers)).
		Msg("track built")

	rend, err := NewRenderer()
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()
	rend.UploadTrack(sim.Track)

	cam := Camera{Mode: settings.StartCameraMode()}
	cam.Snap(&sim.Car)
	input := NewInput()
	var hud HUD
	var scrape scrapeGate

	last := glfw.GetTime()
	var acc float64
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		in := input.Poll(window)
		if in.CameraToggle {
			cam.Toggle()
			PlaySound(SoundToggle)
		}
		if in.Rebuild {
			sim.Rebuild()
			rend.UploadTrack(sim.Track)
			cam.Snap(&sim.Car)
			log.Info().
				Int("waypoints", len(sim.Track.Waypoints)).
				Int("barriers", len(sim.Barriers)).
				Msg("track rebuilt")
		}

		// Fixed-step physics; the same input snapshot drives every tick of
		// the frame.
		acc += dt
		for acc >= TickDelta {
			preSpeed := math.Abs(sim.Car.Speed)
			if hits := sim.Step(in); hits > 0 {
				PlayImpact(preSpeed / MaxSpeed)
			}
			acc -= TickDelta
		}

		SetEngineSpeed(math.Abs(sim.Car.Speed) / MaxSpeed)
		if scrape.Due(!sim.OnTrack(), sim.Car.Speed, now) {
			PlaySound(SoundScrape)
		}
		cam.Update(&sim.Car, dt)
		rend.DrawFrame(sim, &cam, fbW, fbH)
		hud.Update(window, sim, &cam, now)

		window.SwapBuffers()
	}

	log.Info().Msg("shutting down")
}
