package game

import "github.com/go-gl/mathgl/mgl32"

type CameraMode int

const (
	CameraChase CameraMode = iota
	CameraOverhead
)

// Camera produces the view/projection for the two presentation modes: a
// smoothed chase view behind the car and a fixed-height overhead view.
type Camera struct {
	Mode CameraMode

	eye  Vec3
	look Vec3
}

// Toggle flips between chase and overhead.
func (c *Camera) Toggle() {
	if c.Mode == CameraChase {
		c.Mode = CameraOverhead
	} else {
		c.Mode = CameraChase
	}
}

// Snap jumps the camera straight to its target pose (used after a rebuild so
// the view doesn't sweep across the whole track).
func (c *Camera) Snap(car *Car) {
	c.eye, c.look = c.targetPose(car)
}

// Update eases the camera toward its target pose.
func (c *Camera) Update(car *Car, dt float64) {
	eye, look := c.targetPose(car)
	t := clampF(CamFollowRate*dt, 0, 1)
	c.eye = c.eye.Add(eye.Sub(c.eye).Scale(t))
	c.look = c.look.Add(look.Sub(c.look).Scale(t))
}

func (c *Camera) targetPose(car *Car) (eye, look Vec3) {
	hx, hz := car.Heading()
	switch c.Mode {
	case CameraOverhead:
		// Slight horizontal offset keeps the look direction away from the
		// up axis, so the view basis stays well defined.
		eye = Vec3{X: car.Position.X - hx, Y: CamOverheadY, Z: car.Position.Z - hz}
		look = car.Position
	default:
		eye = Vec3{
			X: car.Position.X - hx*CamChaseBack,
			Y: car.Position.Y + CamChaseHeight,
			Z: car.Position.Z - hz*CamChaseBack,
		}
		look = Vec3{
			X: car.Position.X + hx*CamLookAheadDist,
			Y: car.Position.Y + 2,
			Z: car.Position.Z + hz*CamLookAheadDist,
		}
	}
	return eye, look
}

// ViewProjection returns the combined matrix for the current framebuffer size.
func (c *Camera) ViewProjection(fbW, fbH int) mgl32.Mat4 {
	aspect := float32(1)
	if fbH > 0 {
		aspect = float32(fbW) / float32(fbH)
	}
	proj := mgl32.Perspective(mgl32.DegToRad(CamFOVDegrees), aspect, CamNearPlane, CamFarPlane)
	view := mgl32.LookAtV(vec3f(c.eye), vec3f(c.look), mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

func vec3f(v Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
