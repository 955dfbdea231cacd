package game

import "math"

// Car is the player vehicle: a position, a yaw, and a signed scalar speed
// along the heading. Motion is a plain Euler step; the feel comes from the
// surface-dependent speed cap and the speed-scaled turn rate.
type Car struct {
	Position Vec3
	Rotation float64 // yaw, radians
	Speed    float64 // signed scalar along heading
}

// Heading returns the unit travel direction on the XZ plane.
func (c *Car) Heading() (x, z float64) {
	return math.Sin(c.Rotation), math.Cos(c.Rotation)
}

// EffectiveMaxSpeed is the surface-dependent speed ceiling.
func EffectiveMaxSpeed(onTrack bool) float64 {
	if onTrack {
		return MaxSpeed
	}
	return MaxSpeed * OffTrackSpeedCap
}

// Update applies one tick of input to the car. Going off track only lowers
// the cap; current speed is never cut directly, the clamp bleeds it off.
func (c *Car) Update(in InputState, onTrack bool) {
	effMax := EffectiveMaxSpeed(onTrack)

	switch {
	case in.Accelerate:
		c.Speed = math.Min(c.Speed+Acceleration, effMax)
	case in.Brake:
		c.Speed = math.Max(c.Speed-Acceleration, -effMax*ReverseSpeedCap)
	default:
		// Coasting: decay toward zero, never overshooting.
		c.Speed = approach(c.Speed, 0, Deceleration)
	}
	c.Speed = clampF(c.Speed, -effMax, effMax)

	// Steering needs a little motion but not much: the threshold allows
	// creeping turns. Turn rate scales with speed, remapped so even a slow
	// car keeps half its turning authority.
	if math.Abs(c.Speed) > SteerMinSpeed {
		speedFactor := math.Min(math.Abs(c.Speed)/MaxSpeed, 1)
		turn := TurnSpeed * (0.5 + 0.5*speedFactor) * 1.5
		if in.SteerLeft {
			c.Rotation += turn
		}
		if in.SteerRight {
			c.Rotation -= turn
		}
	}

	hx, hz := c.Heading()
	c.Position.X += hx * c.Speed * MoveStep
	c.Position.Z += hz * c.Speed * MoveStep
}

// BoundingBox returns the car's shrunk axis-aligned box at its current pose.
// Recomputed per call for the same reason as Barrier.BoundingBox.
func (c *Car) BoundingBox() Box3 {
	sinR := math.Abs(math.Sin(c.Rotation))
	cosR := math.Abs(math.Cos(c.Rotation))
	hl := CarLength / 2
	hw := CarWidth / 2
	// Car length runs along the heading vector (sin r, cos r).
	hx := (hl*sinR + hw*cosR) * BoundingShrink
	hz := (hl*cosR + hw*sinR) * BoundingShrink
	hy := CarHeight / 2 * BoundingShrink
	return Box3{
		MinX: c.Position.X - hx, MaxX: c.Position.X + hx,
		MinY: c.Position.Y, MaxY: c.Position.Y + 2*hy,
		MinZ: c.Position.Z - hz, MaxZ: c.Position.Z + hz,
	}
}
