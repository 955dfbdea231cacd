package game

import "math"

// Simulation owns every mutable gameplay entity: the track, the car, and the
// barrier set. The frame loop holds the one instance and everything mutates
// through it; there are no package-level globals.
type Simulation struct {
	Track    *Track
	Car      Car
	Barriers []Barrier

	rng *Rand
}

func NewSimulation(seed uint64) *Simulation {
	return &Simulation{
		Track: &Track{},
		rng:   NewRand(seed),
	}
}

// Rebuild regenerates the track and barrier set wholesale and reseats the
// car at the start pose. Everything is built into fresh values first and
// swapped in at the end, so no frame can observe a half-built track.
func (s *Simulation) Rebuild() {
	track := BuildTrack(TrackSegments, TrackBaseRadius, TrackWidth)
	barriers := track.PlaceBarriers()

	s.Track = track
	s.Barriers = barriers
	s.Car = Car{}
	if pos, yaw, ok := track.StartPose(); ok {
		s.Car.Position = pos
		s.Car.Rotation = yaw
	}
}

// Step advances the simulation one tick: car motion, then the collision
// pass, then residual barrier physics. Returns the number of car/barrier
// contacts resolved. Before the first Rebuild there is no track and the
// step is a no-op.
func (s *Simulation) Step(in InputState) int {
	if len(s.Track.Waypoints) == 0 {
		return 0
	}

	onTrack := s.Track.OnTrack(s.Car.Position.X, s.Car.Position.Z)
	s.Car.Update(in, onTrack)

	hits := ResolveCollisions(&s.Car, s.Barriers, s.rng)

	// Barrier physics always runs, even for resting barriers.
	for i := range s.Barriers {
		s.Barriers[i].Update()
	}
	return hits
}

// OnTrack reports the car's current surface.
func (s *Simulation) OnTrack() bool {
	return s.Track.OnTrack(s.Car.Position.X, s.Car.Position.Z)
}

// SpeedReadout is the display sink value: |speed| scaled for the HUD.
func (s *Simulation) SpeedReadout() int {
	return int(math.Round(math.Abs(s.Car.Speed) * 10))
}
