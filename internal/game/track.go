package game

import "math"

// Waypoint is a sampled centerline point with the heading of travel at that
// point. The sequence is cyclic: the last waypoint connects back to the first.
type Waypoint struct {
	X, Z  float64
	Angle float64
}

// Track owns the generated centerline and the derived boundary curves. It is
// immutable after BuildTrack; a rebuild produces a whole new Track.
type Track struct {
	Waypoints []Waypoint
	Inner     []Vec3
	Outer     []Vec3

	halfWidth float64
}

// radiusProfile is the single source of the track's harmonic bend pattern.
// Both centerline generation and barrier placement sample this function; they
// differ only in the base radius they pass in.
func radiusProfile(base, theta float64) float64 {
	return base + math.Sin(theta*RadiusFrequency)*RadiusAmplitude
}

// GenerateWaypoints samples segments+1 centerline points over a full turn.
// Pure and deterministic: position follows radiusProfile, stored angle is the
// sample angle itself (used as the initial heading of travel).
func GenerateWaypoints(segments int, baseRadius float64) []Waypoint {
	if segments < 3 {
		return nil
	}
	wps := make([]Waypoint, 0, segments+1)
	for i := 0; i <= segments; i++ {
		theta := float64(i) / float64(segments) * 2 * math.Pi
		r := radiusProfile(baseRadius, theta)
		wps = append(wps, Waypoint{
			X:     math.Cos(theta) * r,
			Z:     math.Sin(theta) * r,
			Angle: theta,
		})
	}
	return wps
}

// BuildTrack generates the centerline and offsets it into inner/outer
// boundary curves, index-aligned with the waypoint sequence.
func BuildTrack(segments int, baseRadius, width float64) *Track {
	t := &Track{
		Waypoints: GenerateWaypoints(segments, baseRadius),
		halfWidth: width / 2,
	}
	n := len(t.Waypoints)
	if n == 0 {
		return t
	}
	t.Inner = make([]Vec3, n)
	t.Outer = make([]Vec3, n)
	for i := 0; i < n; i++ {
		cur := t.Waypoints[i]
		next := t.Waypoints[(i+1)%n]
		heading := math.Atan2(next.Z-cur.Z, next.X-cur.X)
		perp := heading + math.Pi/2
		ox := math.Cos(perp) * t.halfWidth
		oz := math.Sin(perp) * t.halfWidth
		t.Inner[i] = Vec3{X: cur.X - ox, Z: cur.Z - oz}
		t.Outer[i] = Vec3{X: cur.X + ox, Z: cur.Z + oz}
	}
	return t
}

// OnTrack reports whether (x,z) counts as track surface: within half the track
// width of any waypoint. Linear scan over the bounded waypoint set.
func (t *Track) OnTrack(x, z float64) bool {
	for i := range t.Waypoints {
		if math.Hypot(t.Waypoints[i].X-x, t.Waypoints[i].Z-z) <= t.halfWidth {
			return true
		}
	}
	return false
}

// HalfWidth returns the boundary offset distance from the centerline.
func (t *Track) HalfWidth() float64 { return t.halfWidth }

// StartPose returns the car spawn position and yaw: the first waypoint, facing
// toward the second. Ok is false when no track has been generated yet.
func (t *Track) StartPose() (pos Vec3, yaw float64, ok bool) {
	if len(t.Waypoints) < 2 {
		return Vec3{}, 0, false
	}
	w0 := t.Waypoints[0]
	w1 := t.Waypoints[1]
	return Vec3{X: w0.X, Y: 0, Z: w0.Z}, math.Atan2(w1.X-w0.X, w1.Z-w0.Z), true
}

// PlaceBarriers walks the outer boundary and creates a barrier along each
// segment whose local radius (sampled from the same radiusProfile the
// centerline uses, with the barrier base radius) exceeds the placement
// threshold. Tight bends stay open so the racing line is never walled off.
func (t *Track) PlaceBarriers() []Barrier {
	n := len(t.Outer)
	if n < 2 {
		return nil
	}
	barriers := make([]Barrier, 0, n)
	for i := 0; i < n; i++ {
		// Sample at the angle the waypoint was generated from, so placement
		// and centerline geometry agree on where the wide sections are.
		if radiusProfile(BarrierBaseRadius, t.Waypoints[i].Angle) <= BarrierRadiusThreshold {
			continue
		}
		a := t.Outer[i]
		b := t.Outer[(i+1)%n]
		dx := b.X - a.X
		dz := b.Z - a.Z
		length := math.Hypot(dx, dz)
		if length < 1e-9 {
			continue
		}
		barriers = append(barriers, Barrier{
			Position: Vec3{X: (a.X + b.X) / 2, Y: BarrierHeight / 2, Z: (a.Z + b.Z) / 2},
			Rotation: math.Atan2(dx, dz),
			Length:   length,
			Width:    BarrierWidth,
			Height:   BarrierHeight,
			Mass:     BarrierMass,
			Friction: BarrierFriction,
		})
	}
	return barriers
}

// RibbonVertices triangulates the drivable surface between the boundary
// curves into a flat triangle list (two triangles per quad, loop closed).
// Vertices are lifted slightly above the ground plane to avoid z-fighting.
func (t *Track) RibbonVertices() []float32 {
	n := len(t.Inner)
	if n < 2 {
		return nil
	}
	const lift = 0.05
	buf := make([]float32, 0, n*2*3*3)
	emit := func(p Vec3) {
		buf = append(buf, float32(p.X), lift, float32(p.Z))
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		i0, o0 := t.Inner[i], t.Outer[i]
		i1, o1 := t.Inner[j], t.Outer[j]
		emit(i0)
		emit(o0)
		emit(o1)
		emit(i0)
		emit(o1)
		emit(i1)
	}
	return buf
}
