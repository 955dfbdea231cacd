package game

// Track generation (world units).
// TrackBaseRadius shapes the drivable centerline; BarrierBaseRadius is the
// separate base used by barrier placement. Distinct constants, do not fold
// them together.
const (
	TrackSegments     = 200
	TrackBaseRadius   = 300.0
	BarrierBaseRadius = 500.0
	TrackWidth        = 120.0

	// Harmonic bend pattern shared by centerline generation and barrier
	// placement via radiusProfile.
	RadiusAmplitude = 50.0
	RadiusFrequency = 4.5

	// Barriers populate only wide/straight sections; segments whose local
	// radius is at or below this threshold stay open.
	BarrierRadiusThreshold = 520.0
)

// Car physics.
const (
	MaxSpeed           = 50.0
	Acceleration       = 0.8
	Deceleration       = 0.3
	TurnSpeed          = 0.05
	CarCollisionRadius = 6.0
	OffTrackSpeedCap   = 0.6  // fraction of MaxSpeed while off track
	ReverseSpeedCap    = 0.5  // fraction of effective max when reversing
	SteerMinSpeed      = 0.01 // |speed| below this disables steering
	MoveStep           = 0.1  // world units per speed unit per tick
)

// Car visual extents (box mesh, world units).
const (
	CarLength = 8.0
	CarWidth  = 4.0
	CarHeight = 2.2
)

// Barriers.
const (
	BarrierWidth    = 2.0
	BarrierHeight   = 3.0
	BarrierFriction = 0.8
	BarrierMass     = 10.0

	// Residual velocity below this magnitude snaps to zero.
	BarrierRestVelocity = 0.01
)

// Bounding volumes used for collision tests are shrunk from the nominal mesh
// extents to make contact more forgiving than visual overlap.
const BoundingShrink = 0.8

// Simulation tick rate.
const (
	TickRate  = 60.0
	TickDelta = 1.0 / TickRate
)

// Window defaults.
const (
	WindowWidth  = 1024
	WindowHeight = 768
	WindowTitle  = "racer"
)

// Camera.
const (
	CamChaseBack     = 28.0 // distance behind the car (chase mode)
	CamChaseHeight   = 12.0
	CamOverheadY     = 420.0
	CamFollowRate    = 8.0 // per-second approach rate toward the target pose
	CamFOVDegrees    = 60.0
	CamNearPlane     = 0.5
	CamFarPlane      = 2500.0
	CamLookAheadDist = 10.0
)

// HUD refresh (window title updates per second).
const HUDRate = 10.0

// Off-track rumble gating.
const (
	ScrapeMinSpeed = 2.0 // |speed| below this slides silently
	ScrapeInterval = 0.3 // seconds between rumble bursts
)
