package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBarrier() Barrier {
	return Barrier{
		Position: Vec3{Y: BarrierHeight / 2},
		Length:   20,
		Width:    BarrierWidth,
		Height:   BarrierHeight,
		Mass:     BarrierMass,
		Friction: BarrierFriction,
	}
}

func TestBarrierFrictionDecay(t *testing.T) {
	b := testBarrier()
	b.Velocity = Vec2{X: 1}

	b.Update()
	assert.InDelta(t, 0.8, b.Velocity.X, 1e-12)
	assert.Zero(t, b.Velocity.Z)
	assert.InDelta(t, 1.0, b.Position.X, 1e-12, "position integrates before friction")

	// Keep ticking: once the magnitude drops under the rest threshold the
	// velocity snaps to exactly zero.
	for i := 0; i < 40; i++ {
		b.Update()
	}
	assert.Equal(t, Vec2{}, b.Velocity)
}

func TestBarrierRestSnapTiming(t *testing.T) {
	b := testBarrier()
	b.Velocity = Vec2{X: 1}
	ticks := 0
	for b.Velocity != (Vec2{}) {
		b.Update()
		ticks++
		require.Less(t, ticks, 100)
	}
	// 0.8^n drops below 0.01 at n=21; the snap happens on that tick.
	assert.Equal(t, 21, ticks)
}

func TestBarrierGroundFloor(t *testing.T) {
	b := testBarrier()
	b.Position.Y = -3
	b.Update()
	assert.Equal(t, BarrierHeight/2, b.Position.Y)

	// Sitting above the floor is left alone.
	b.Position.Y = BarrierHeight
	b.Update()
	assert.Equal(t, BarrierHeight, b.Position.Y)
}

func TestBarrierUpdateAtRestIsNoop(t *testing.T) {
	b := testBarrier()
	before := b
	b.Update()
	assert.Equal(t, before, b)
}

func TestBarrierBoundingBoxFollowsState(t *testing.T) {
	b := testBarrier()
	a := b.BoundingBox()
	b.Position.X += 7
	moved := b.BoundingBox()
	assert.InDelta(t, a.MinX+7, moved.MinX, 1e-12, "box must be derived from the current position")

	// Yaw zero: length runs along Z. A quarter turn swaps the axes.
	assert.Greater(t, a.MaxZ-a.MinZ, a.MaxX-a.MinX)
	b.Rotation = math.Pi / 2
	turned := b.BoundingBox()
	assert.Greater(t, turned.MaxX-turned.MinX, turned.MaxZ-turned.MinZ)
}

func TestBarrierBoundingBoxShrink(t *testing.T) {
	b := testBarrier()
	box := b.BoundingBox()
	assert.InDelta(t, b.Length*BoundingShrink, box.MaxZ-box.MinZ, 1e-9)
	assert.InDelta(t, b.Width*BoundingShrink, box.MaxX-box.MinX, 1e-9)
	assert.InDelta(t, b.Height*BoundingShrink, box.MaxY-box.MinY, 1e-9)
}

func TestBarrierCollisionRadius(t *testing.T) {
	b := testBarrier()
	assert.InDelta(t, BoundingShrink*b.Length/2, b.CollisionRadius(), 1e-12)

	// A stubby barrier is bounded by its width instead.
	b.Length = 1
	assert.InDelta(t, BoundingShrink*b.Width/2, b.CollisionRadius(), 1e-12)
}

func TestRespondToCar_OverlapSplit(t *testing.T) {
	b := testBarrier()
	b.Position = Vec3{Y: BarrierHeight / 2, Z: 50}
	carPos := Vec3{Z: 40} // 10 apart, inside minSeparation
	carSpeed := 10.0
	rng := NewRand(1)

	minSep := CarCollisionRadius + b.CollisionRadius() + 1
	dist := 10.0
	require.Less(t, dist, minSep)
	sep := minSep - dist

	bounce, scale := b.RespondToCar(carPos, carSpeed, rng)

	assert.Equal(t, 0.4, scale)
	// Direction from barrier to car is -Z: the barrier backs off +Z by 60%
	// of the separation, the car gets the other 40%.
	assert.InDelta(t, 50+sep*0.6, b.Position.Z, 1e-9)
	assert.InDelta(t, -sep*0.4, bounce.Z, 1e-9)
	assert.Zero(t, bounce.X)
	// Impulse pushes the barrier away from the car.
	assert.InDelta(t, math.Abs(carSpeed)*0.5*0.4, b.Velocity.Z, 1e-9)
	assert.Zero(t, b.Velocity.X)
	// Yaw jitter stays inside the documented band.
	assert.LessOrEqual(t, math.Abs(b.Rotation), 0.15+1e-12)
}

func TestRespondToCar_EdgeTouch(t *testing.T) {
	b := testBarrier()
	b.Length = 2
	b.Position = Vec3{Y: BarrierHeight / 2}
	carPos := Vec3{Z: -10} // outside minSeparation
	carSpeed := 10.0
	rng := NewRand(1)

	require.GreaterOrEqual(t, 10.0, CarCollisionRadius+b.CollisionRadius()+1)

	bounce, scale := b.RespondToCar(carPos, carSpeed, rng)

	impact := math.Abs(carSpeed) * 0.5
	assert.Equal(t, 0.3, scale)
	assert.InDelta(t, impact*0.3, b.Velocity.Z, 1e-9, "gentle push away from the car")
	assert.InDelta(t, -impact*0.1, bounce.Z, 1e-9)
	assert.LessOrEqual(t, math.Abs(b.Rotation), 0.1+1e-12)
}

func TestRespondToCar_CoincidentCenters(t *testing.T) {
	b := testBarrier()
	b.Position = Vec3{Y: BarrierHeight / 2}
	carPos := Vec3{Y: 0} // identical horizontal position
	rng := NewRand(42)

	bounce, scale := b.RespondToCar(carPos, 10, rng)

	require.False(t, math.IsNaN(bounce.X) || math.IsNaN(bounce.Z), "random fallback must not produce NaN")
	require.False(t, math.IsNaN(b.Position.X) || math.IsNaN(b.Position.Z))
	assert.Equal(t, 0.4, scale)

	// The full minSeparation is split 60/40 along the fallback direction.
	minSep := CarCollisionRadius + b.CollisionRadius() + 1
	moved := math.Hypot(b.Position.X, b.Position.Z)
	assert.InDelta(t, minSep*0.6, moved, 1e-9)
	assert.InDelta(t, minSep*0.4, math.Hypot(bounce.X, bounce.Z), 1e-9)
}
