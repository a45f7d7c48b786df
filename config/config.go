package config

// SimConfig contains simulation-wide constants. The simulation advances by
// discrete ticks only; none of these values may change mid-run.
type SimConfig struct {
	TickRate int // simulation ticks per second
	TileSize int // pixels per tile edge

	// Spatial hash cell size for the dynamic-entity space
	SpaceCellSize int

	// Maximum physics steps a frame may run before dropping time, so a
	// stalled render loop cannot spiral the accumulator.
	MaxStepsPerFrame int
}

// PlayerConfig contains all player-related constants.
type PlayerConfig struct {
	// Movement
	RunSpeed     float64 // horizontal displacement per tick of held input
	JumpVelocity float64 // negative = up
	Friction     float64 // per-tick decay of residual horizontal velocity

	// Wall interaction
	WallSlideMaxSpeed float64
	WallJumpVelocityX float64
	WallJumpVelocityY float64
	WallContactMinAir int // airborne ticks before wall contact becomes a slide

	// Dash
	DashDuration     int // ticks of |dashing| countdown at dash start
	DashActiveMin    int // |dashing| above this keeps full dash speed
	DashDecelTrigger int // |dashing| value at which velocity collapses
	DashSpeed        float64
	DashDecelFactor  float64

	// Air / falling
	AirTimeFatal int // consecutive airborne ticks before the fall kills

	// Combat
	ShootCooldown int
	HitStunTicks  int
	StartingLives int

	// Dimensions
	CollisionWidth  float64
	CollisionHeight float64
}

// EnemyConfig contains enemy behavior constants. Enemy decisions are the
// simulation's RNG consumers, so the call pattern here is part of the
// determinism contract.
type EnemyConfig struct {
	WalkSpeed       float64
	WalkChance      float64 // per-tick chance an idle enemy starts walking
	WalkTicksMin    int
	WalkTicksMax    int
	ShootRangeY     float64 // vertical window for taking a shot
	MuzzleOffsetX   float64
	CollisionWidth  float64
	CollisionHeight float64
}

// ProjectileConfig contains projectile constants.
type ProjectileConfig struct {
	Speed  float64
	MaxAge int
	Width  float64
	Height float64
}

// PhysicsConfig contains global physics constants shared by every entity.
type PhysicsConfig struct {
	Gravity      float64
	MaxFallSpeed float64
}

// ReplayConfig contains recording and ghost playback constants.
type ReplayConfig struct {
	SnapshotInterval int // ticks between LITE snapshots in a recording (K)

	GhostAlpha       float32 // overlay opacity once fully faded in
	GhostFadeSeconds float32
}

// CameraConfig contains view-follow constants.
type CameraConfig struct {
	FollowSmoothing         float64
	LookAheadDistanceX      float64
	LookAheadSmoothing      float64
	LookAheadSpeedThreshold float64
}

// Config holds general presentation configuration.
type Config struct {
	Width  int
	Height int
}

// Global configuration instances
var C *Config
var Sim SimConfig
var Player PlayerConfig
var Enemy EnemyConfig
var Projectile ProjectileConfig
var Physics PhysicsConfig
var Replay ReplayConfig
var Camera CameraConfig

// Direction constants for entity facing
const (
	DirectionLeft  = -1.0
	DirectionRight = 1.0
)

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
	}

	Sim = SimConfig{
		TickRate:         60,
		TileSize:         16,
		SpaceCellSize:    16,
		MaxStepsPerFrame: 5,
	}

	Physics = PhysicsConfig{
		Gravity:      0.1,
		MaxFallSpeed: 5.0,
	}

	Player = PlayerConfig{
		RunSpeed:     1.0,
		JumpVelocity: -3.0,
		Friction:     0.1,

		WallSlideMaxSpeed: 0.5,
		WallJumpVelocityX: 3.5,
		WallJumpVelocityY: -2.5,
		WallContactMinAir: 4,

		DashDuration:     60,
		DashActiveMin:    50,
		DashDecelTrigger: 51,
		DashSpeed:        8.0,
		DashDecelFactor:  0.1,

		AirTimeFatal: 180,

		ShootCooldown: 10,
		HitStunTicks:  30,
		StartingLives: 3,

		CollisionWidth:  8,
		CollisionHeight: 15,
	}

	Enemy = EnemyConfig{
		WalkSpeed:       0.5,
		WalkChance:      0.01,
		WalkTicksMin:    30,
		WalkTicksMax:    120,
		ShootRangeY:     16.0,
		MuzzleOffsetX:   7.0,
		CollisionWidth:  8,
		CollisionHeight: 15,
	}

	Projectile = ProjectileConfig{
		Speed:  1.5,
		MaxAge: 360,
		Width:  4,
		Height: 2,
	}

	Replay = ReplayConfig{
		SnapshotInterval: 10,

		GhostAlpha:       0.45,
		GhostFadeSeconds: 1.0,
	}

	Camera = CameraConfig{
		FollowSmoothing:         0.08,
		LookAheadDistanceX:      48,
		LookAheadSmoothing:      0.05,
		LookAheadSpeedThreshold: 0.2,
	}
}
