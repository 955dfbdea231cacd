package game

import "github.com/go-gl/glfw/v3.3/glfw"

// InputState is the per-tick input snapshot the simulation consumes. The core
// never sees raw key codes, only these flags.
type InputState struct {
	Accelerate bool
	Brake      bool
	SteerLeft  bool
	SteerRight bool

	// Edge-triggered.
	CameraToggle bool
	Rebuild      bool
}

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) justPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

func keyDown(window *glfw.Window, keys ...glfw.Key) bool {
	for _, k := range keys {
		if window.GetKey(k) == glfw.Press {
			return true
		}
	}
	return false
}

// Poll reads the keyboard into an InputState. Arrows and WASD both drive;
// Space toggles the camera, R regenerates the track.
func (in *Input) Poll(window *glfw.Window) InputState {
	return InputState{
		Accelerate:   keyDown(window, glfw.KeyUp, glfw.KeyW),
		Brake:        keyDown(window, glfw.KeyDown, glfw.KeyS),
		SteerLeft:    keyDown(window, glfw.KeyLeft, glfw.KeyA),
		SteerRight:   keyDown(window, glfw.KeyRight, glfw.KeyD),
		CameraToggle: in.justPressed(window, glfw.KeySpace),
		Rebuild:      in.justPressed(window, glfw.KeyR),
	}
}
