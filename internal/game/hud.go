package game

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// HUD is the display sink: it receives the speed readout each tick and
// pushes it into the window title at a throttled rate.
type HUD struct {
	lastUpdate float64
}

func (h *HUD) Update(window *glfw.Window, sim *Simulation, cam *Camera, now float64) {
	if now-h.lastUpdate < 1.0/HUDRate {
		return
	}
	h.lastUpdate = now

	surface := "on track"
	if !sim.OnTrack() {
		surface = "off track"
	}
	mode := "chase"
	if cam.Mode == CameraOverhead {
		mode = "overhead"
	}
	window.SetTitle(fmt.Sprintf("%s | speed %d | %s | cam: %s",
		WindowTitle, sim.SpeedReadout(), surface, mode))
}
