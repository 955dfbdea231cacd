package game

import "math"

// Barrier is a movable obstacle placed along the outer track boundary. It is
// created once per track build and lives until the next rebuild; collisions
// leave it drifting with a residual velocity that friction bleeds off.
type Barrier struct {
	Position Vec3
	Rotation float64 // yaw, radians
	Length   float64
	Width    float64
	Height   float64
	Mass     float64
	Friction float64
	Velocity Vec2
}

// BoundingBox returns the axis-aligned box of the yawed barrier, shrunk by
// BoundingShrink. Derived from the current position on every call; collision
// tests must see this frame's mutations, so nothing is cached.
func (b *Barrier) BoundingBox() Box3 {
	sinR := math.Abs(math.Sin(b.Rotation))
	cosR := math.Abs(math.Cos(b.Rotation))
	hl := b.Length / 2
	hw := b.Width / 2
	hx := (hl*sinR + hw*cosR) * BoundingShrink
	hz := (hl*cosR + hw*sinR) * BoundingShrink
	hy := b.Height / 2 * BoundingShrink
	return Box3{
		MinX: b.Position.X - hx, MaxX: b.Position.X + hx,
		MinY: b.Position.Y - hy, MaxY: b.Position.Y + hy,
		MinZ: b.Position.Z - hz, MaxZ: b.Position.Z + hz,
	}
}

// CollisionRadius is the barrier's horizontal extent used for separation:
// half the larger footprint dimension, shrunk like the bounding box.
func (b *Barrier) CollisionRadius() float64 {
	return BoundingShrink * math.Max(b.Width, b.Length) / 2
}

// RespondToCar resolves contact with the car once the bounding boxes overlap.
// It mutates the barrier (displacement, velocity impulse, yaw jitter) and
// returns the bounce displacement the car must absorb plus the factor to
// scale the car's speed by. rng supplies the degenerate-direction fallback
// and the yaw jitter so collisions stay reproducible under a fixed seed.
func (b *Barrier) RespondToCar(carPos Vec3, carSpeed float64, rng *Rand) (bounce Vec3, speedScale float64) {
	dx := carPos.X - b.Position.X
	dz := carPos.Z - b.Position.Z
	dist := math.Hypot(dx, dz)
	var dirX, dirZ float64
	if dist > 1e-9 {
		dirX = dx / dist
		dirZ = dz / dist
	} else {
		// Centers coincide: push along a random horizontal direction rather
		// than dividing by zero.
		dirX, dirZ = rng.UnitDir2()
	}

	impact := math.Abs(carSpeed) * 0.5
	minSep := CarCollisionRadius + b.CollisionRadius() + 1

	if dist < minSep {
		// Overlapping: split the separation 60/40 between barrier and car.
		sep := minSep - dist
		b.Position.X -= dirX * sep * 0.6
		b.Position.Z -= dirZ * sep * 0.6
		b.Velocity.X -= dirX * impact * 0.4
		b.Velocity.Z -= dirZ * impact * 0.4
		b.Rotation += rng.RangeF(-0.15, 0.15)
		return Vec3{X: dirX * sep * 0.4, Z: dirZ * sep * 0.4}, 0.4
	}

	// Boxes touch at the edges without center overlap: gentler push.
	b.Velocity.X -= dirX * impact * 0.3
	b.Velocity.Z -= dirZ * impact * 0.3
	b.Rotation += rng.RangeF(-0.1, 0.1)
	return Vec3{X: dirX * impact * 0.1, Z: dirZ * impact * 0.1}, 0.3
}

// Update integrates residual motion for one tick. Runs every frame for every
// barrier regardless of collision state; a resting barrier is a cheap no-op.
func (b *Barrier) Update() {
	b.Position.X += b.Velocity.X
	b.Position.Z += b.Velocity.Z
	b.Velocity = b.Velocity.Scale(b.Friction)
	if b.Velocity.Len() < BarrierRestVelocity {
		b.Velocity = Vec2{}
	}
	if b.Position.Y < b.Height/2 {
		b.Position.Y = b.Height / 2
	}
}
