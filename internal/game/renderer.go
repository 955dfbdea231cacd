package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene colors.
var (
	skyColor     = [3]float32{0.53, 0.77, 0.92}
	groundColor  = [3]float32{0.24, 0.52, 0.21}
	asphaltColor = [3]float32{0.22, 0.22, 0.24}
	carColor     = [3]float32{0.82, 0.12, 0.10}
	barrierColor = [3]float32{0.92, 0.46, 0.08}
)

// Half-size of the square ground plane.
const groundExtent = 1200.0

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Renderer draws the whole scene with one lit-mesh program: a static ground
// quad, the track ribbon (re-uploaded on rebuild), and a shared unit cube
// instanced by model matrix for the car and every barrier.
type Renderer struct {
	prog uint32

	uVP       int32
	uModel    int32
	uColor    int32
	uSunDir   int32
	uAmbient  int32
	uSkyColor int32
	uEyePos   int32

	groundVAO   uint32
	groundVBO   uint32
	groundCount int32

	ribbonVAO   uint32
	ribbonVBO   uint32
	ribbonCount int32

	cubeVAO   uint32
	cubeVBO   uint32
	cubeCount int32
}

func NewRenderer() (*Renderer, error) {
	prog, err := linkProgram(meshVertSrc, meshFragSrc)
	if err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}

	r := &Renderer{prog: prog}
	gl.UseProgram(prog)
	r.uVP = gl.GetUniformLocation(prog, gl.Str("uVP\x00"))
	r.uModel = gl.GetUniformLocation(prog, gl.Str("uModel\x00"))
	r.uColor = gl.GetUniformLocation(prog, gl.Str("uColor\x00"))
	r.uSunDir = gl.GetUniformLocation(prog, gl.Str("uSunDir\x00"))
	r.uAmbient = gl.GetUniformLocation(prog, gl.Str("uAmbient\x00"))
	r.uSkyColor = gl.GetUniformLocation(prog, gl.Str("uSkyColor\x00"))
	r.uEyePos = gl.GetUniformLocation(prog, gl.Str("uEyePos\x00"))

	gl.Uniform3f(r.uSunDir, 0.45, 1.0, 0.30)
	gl.Uniform1f(r.uAmbient, 0.45)
	gl.Uniform3f(r.uSkyColor, skyColor[0], skyColor[1], skyColor[2])

	r.groundVAO, r.groundVBO, r.groundCount = uploadMesh(groundVertices())
	r.cubeVAO, r.cubeVBO, r.cubeCount = uploadMesh(cubeVertices())

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.groundVBO, r.ribbonVBO, r.cubeVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.groundVAO, r.ribbonVAO, r.cubeVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	if r.prog != 0 {
		gl.DeleteProgram(r.prog)
	}
}

// UploadTrack (re)builds the ribbon mesh from the current track geometry.
// Called once per track build, never per frame.
func (r *Renderer) UploadTrack(t *Track) {
	if r.ribbonVBO != 0 {
		gl.DeleteBuffers(1, &r.ribbonVBO)
		gl.DeleteVertexArrays(1, &r.ribbonVAO)
		r.ribbonVAO, r.ribbonVBO, r.ribbonCount = 0, 0, 0
	}
	positions := t.RibbonVertices()
	if len(positions) == 0 {
		return
	}
	// The ribbon is flat; every vertex shares the up normal.
	verts := make([]float32, 0, len(positions)*2)
	for i := 0; i < len(positions); i += 3 {
		verts = append(verts, positions[i], positions[i+1], positions[i+2], 0, 1, 0)
	}
	r.ribbonVAO, r.ribbonVBO, r.ribbonCount = uploadMesh(verts)
	gl.BindVertexArray(0)
}

// DrawFrame renders one frame of the simulation from the given camera.
func (r *Renderer) DrawFrame(sim *Simulation, cam *Camera, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(skyColor[0], skyColor[1], skyColor[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.prog)
	vp := cam.ViewProjection(fbW, fbH)
	gl.UniformMatrix4fv(r.uVP, 1, false, &vp[0])
	eye := vec3f(cam.eye)
	gl.Uniform3f(r.uEyePos, eye[0], eye[1], eye[2])

	identity := mgl32.Ident4()

	// Ground.
	gl.UniformMatrix4fv(r.uModel, 1, false, &identity[0])
	gl.Uniform3f(r.uColor, groundColor[0], groundColor[1], groundColor[2])
	gl.BindVertexArray(r.groundVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, r.groundCount)

	// Track ribbon.
	if r.ribbonCount > 0 {
		gl.Uniform3f(r.uColor, asphaltColor[0], asphaltColor[1], asphaltColor[2])
		gl.BindVertexArray(r.ribbonVAO)
		gl.DrawArrays(gl.TRIANGLES, 0, r.ribbonCount)
	}

	// Car and barriers share the unit cube.
	gl.BindVertexArray(r.cubeVAO)

	car := &sim.Car
	carModel := mgl32.Translate3D(
		float32(car.Position.X),
		float32(car.Position.Y+CarHeight/2),
		float32(car.Position.Z),
	).Mul4(mgl32.HomogRotate3DY(float32(car.Rotation))).
		Mul4(mgl32.Scale3D(CarWidth, CarHeight, CarLength))
	gl.UniformMatrix4fv(r.uModel, 1, false, &carModel[0])
	gl.Uniform3f(r.uColor, carColor[0], carColor[1], carColor[2])
	gl.DrawArrays(gl.TRIANGLES, 0, r.cubeCount)

	gl.Uniform3f(r.uColor, barrierColor[0], barrierColor[1], barrierColor[2])
	for i := range sim.Barriers {
		b := &sim.Barriers[i]
		model := mgl32.Translate3D(
			float32(b.Position.X),
			float32(b.Position.Y),
			float32(b.Position.Z),
		).Mul4(mgl32.HomogRotate3DY(float32(b.Rotation))).
			Mul4(mgl32.Scale3D(float32(b.Width), float32(b.Height), float32(b.Length)))
		gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
		gl.DrawArrays(gl.TRIANGLES, 0, r.cubeCount)
	}

	gl.BindVertexArray(0)
}

// uploadMesh pushes interleaved pos+normal vertices into a fresh VAO/VBO.
func uploadMesh(verts []float32) (vao, vbo uint32, count int32) {
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

	stride := int32(6 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(3*4))
	return vao, vbo, int32(len(verts) / 6)
}

// groundVertices builds a flat square around the origin, normal up.
func groundVertices() []float32 {
	e := float32(groundExtent)
	quad := [][3]float32{
		{-e, 0, -e}, {e, 0, -e}, {e, 0, e},
		{-e, 0, -e}, {e, 0, e}, {-e, 0, e},
	}
	verts := make([]float32, 0, len(quad)*6)
	for _, p := range quad {
		verts = append(verts, p[0], p[1], p[2], 0, 1, 0)
	}
	return verts
}

// cubeVertices builds a unit cube centred at the origin with per-face normals.
func cubeVertices() []float32 {
	faces := []struct {
		n [3]float32
		v [4][3]float32
	}{
		{n: [3]float32{0, 0, 1}, v: [4][3]float32{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
		{n: [3]float32{0, 0, -1}, v: [4][3]float32{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
		{n: [3]float32{1, 0, 0}, v: [4][3]float32{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}},
		{n: [3]float32{-1, 0, 0}, v: [4][3]float32{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}},
		{n: [3]float32{0, 1, 0}, v: [4][3]float32{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
		{n: [3]float32{0, -1, 0}, v: [4][3]float32{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
	}
	verts := make([]float32, 0, 36*6)
	emit := func(p, n [3]float32) {
		verts = append(verts, p[0], p[1], p[2], n[0], n[1], n[2])
	}
	for _, f := range faces {
		emit(f.v[0], f.n)
		emit(f.v[1], f.n)
		emit(f.v[2], f.n)
		emit(f.v[0], f.n)
		emit(f.v[2], f.n)
		emit(f.v[3], f.n)
	}
	return verts
}
