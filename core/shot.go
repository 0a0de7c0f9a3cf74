package core

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// ShotKind is the trajectory family chosen for an attempt
type ShotKind uint8

const (
	ShotDirect ShotKind = iota
	ShotBank
)

func (k ShotKind) String() string {
	if k == ShotBank {
		return "bank"
	}
	return "direct"
}

// ShotAttempt is created at release time and consumed once by scoring
type ShotAttempt struct {
	ID         uuid.UUID
	Competitor CompetitorID
	Charge     float64 // Clamped to [0,1], zero for NPC attempts
	Kind       ShotKind
	Perfect    bool // Scoring flag, mirrors PerfectDirect for charged shots

	PerfectDirect bool
	PerfectBank   bool

	Velocity mgl64.Vec3 // Launch velocity actually released
	Power    float64    // Magnitude of Velocity
}

// IsBank reports whether the attempt was aimed off the backboard
func (a ShotAttempt) IsBank() bool {
	return a.Kind == ShotBank
}

// Launch is handed to the ball spawner when a shot is released
type Launch struct {
	Attempt    ShotAttempt
	Origin     mgl64.Vec3
	Velocity   mgl64.Vec3
	FireActive bool
}
