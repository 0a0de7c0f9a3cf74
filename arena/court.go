package arena

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/shootout/physics"
	"github.com/lixenwraith/shootout/vmath"
)

// Court is a static world: one hoop, a planar backboard and floor shooting spots
type Court struct {
	hoop        mgl64.Vec3
	boardAnchor mgl64.Vec3
	boardNormal mgl64.Vec3
	gravity     float64
	positions   []mgl64.Vec3
}

// NewCourt copies positions; the board normal is normalized
func NewCourt(hoop, boardAnchor, boardNormal mgl64.Vec3, gravity float64, positions []mgl64.Vec3) *Court {
	ps := make([]mgl64.Vec3, len(positions))
	copy(ps, positions)
	return &Court{
		hoop:        hoop,
		boardAnchor: boardAnchor,
		boardNormal: vmath.Normalize(boardNormal),
		gravity:     gravity,
		positions:   ps,
	}
}

func (c *Court) Hoop() mgl64.Vec3 { return c.hoop }

func (c *Court) Backboard() (anchor, normal mgl64.Vec3) { return c.boardAnchor, c.boardNormal }

func (c *Court) Gravity() float64 { return c.gravity }

func (c *Court) ShotPositions() []mgl64.Vec3 { return c.positions }

// MirroredHoop is the bank shot aim point
func (c *Court) MirroredHoop() mgl64.Vec3 {
	return physics.ReflectAcrossPlane(c.hoop, c.boardAnchor, c.boardNormal)
}
