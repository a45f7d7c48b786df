package systems

import (
	"math"

	cfg "github.com/automoto/tilerunner/config"
)

// Camera follows a target with smoothing and a horizontal look-ahead in the
// facing direction, clamped so the view never leaves the level.
type Camera struct {
	X, Y       float64
	lookAheadX float64
}

// Update moves the camera toward the target position. velX and facingLeft
// drive the look-ahead; levelW/levelH bound the view.
func (c *Camera) Update(targetX, targetY, velX float64, facingLeft bool, levelW, levelH int) {
	// Only update look-ahead while the target is moving, so the view does
	// not snap around when the player merely turns in place.
	if math.Abs(velX) > cfg.Camera.LookAheadSpeedThreshold {
		target := cfg.Camera.LookAheadDistanceX
		if facingLeft {
			target = -target
		}
		c.lookAheadX += (target - c.lookAheadX) * cfg.Camera.LookAheadSmoothing
	}

	tx := targetX + c.lookAheadX
	ty := targetY

	screenW := float64(cfg.C.Width)
	screenH := float64(cfg.C.Height)
	tx = math.Max(screenW/2, math.Min(float64(levelW)-screenW/2, tx))
	ty = math.Max(screenH/2, math.Min(float64(levelH)-screenH/2, ty))

	c.X += (tx - c.X) * cfg.Camera.FollowSmoothing
	c.Y += (ty - c.Y) * cfg.Camera.FollowSmoothing
}

// Snap centers the camera immediately, used when a run (re)starts.
func (c *Camera) Snap(targetX, targetY float64) {
	c.X, c.Y = targetX, targetY
	c.lookAheadX = 0
}

// Offset returns the world-to-screen translation for the current position.
func (c *Camera) Offset() (float64, float64) {
	return float64(cfg.C.Width)/2 - c.X, float64(cfg.C.Height)/2 - c.Y
}
