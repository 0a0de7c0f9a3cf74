package match

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/shootout/core"
)

// World supplies court geometry, read fresh for every trajectory calculation
type World interface {
	Hoop() mgl64.Vec3
	Backboard() (anchor, normal mgl64.Vec3)
	Gravity() float64
	ShotPositions() []mgl64.Vec3
}

// BallSpawner puts a released shot into flight
// Its outcome comes back as EventBasketMade or EventShotMissed
type BallSpawner interface {
	Launch(l core.Launch)
}

// Policy controls what happens after the last shooting position
type Policy uint8

const (
	// PolicyWrap cycles back to the first position
	PolicyWrap Policy = iota
	// PolicyExhaust finishes the competitor; the match ends when all are finished
	PolicyExhaust
)

func (p Policy) String() string {
	switch p {
	case PolicyWrap:
		return "wrap"
	case PolicyExhaust:
		return "exhaust"
	default:
		return "unknown"
	}
}

// ParsePolicy accepts "wrap" or "exhaust", case-insensitive
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wrap":
		return PolicyWrap, nil
	case "exhaust":
		return PolicyExhaust, nil
	default:
		return PolicyWrap, fmt.Errorf("unknown rotation policy %q", s)
	}
}
