package game

// Box3 is an axis-aligned box in world space.
type Box3 struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

func (b Box3) Intersects(o Box3) bool {
	return b.MinX < o.MaxX && b.MaxX > o.MinX &&
		b.MinY < o.MaxY && b.MaxY > o.MinY &&
		b.MinZ < o.MaxZ && b.MaxZ > o.MinZ
}

// ResolveCollisions runs the single collision pass for one tick: every
// barrier is tested against the car at most once, boxes are rebuilt from the
// entities' current state, and each hit's bounce is applied to the car
// immediately. There is no cascading re-check within the tick; a bounce that
// shoves the car into a neighbour resolves next frame.
//
// Returns the number of contacts resolved this tick (the presentation layer
// keys impact sound and camera shake off it).
func ResolveCollisions(car *Car, barriers []Barrier, rng *Rand) int {
	if len(barriers) == 0 {
		return 0
	}
	hits := 0
	carBox := car.BoundingBox()
	for i := range barriers {
		b := &barriers[i]
		if !carBox.Intersects(b.BoundingBox()) {
			continue
		}
		bounce, speedScale := b.RespondToCar(car.Position, car.Speed, rng)
		car.Position = car.Position.Add(bounce)
		car.Speed *= speedScale
		hits++
		// The bounce moved the car; later barriers must test the new box.
		carBox = car.BoundingBox()
	}
	return hits
}
