package match

import (
	"time"

	"github.com/lixenwraith/shootout/shot"
)

// BonusOption is one entry of the weighted backboard bonus table
type BonusOption struct {
	Value  int
	Weight int
}

// Config holds competition flow tuning
type Config struct {
	Duration    time.Duration
	SideOffset  float64 // Lateral spacing between player and NPC at one spot
	StartHeight float64 // Release height above the floor position
	ApexHeight  float64
	Policy      Policy

	Shot shot.Tuning
	NPC  shot.NPCTuning

	NPCInitialDelay time.Duration
	NPCMinInterval  time.Duration
	NPCMaxInterval  time.Duration

	BonusMinInterval time.Duration
	BonusMaxInterval time.Duration
	BonusMinDuration time.Duration
	BonusMaxDuration time.Duration
	BonusTable       []BonusOption
}
