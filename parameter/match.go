package parameter

import "time"

// Match Flow
const (
	MatchDurationSeconds = 90

	// SideOffset separates player and NPC at the same shooting spot, meters
	SideOffset = 1.5

	// TickInterval is the real-time simulation step
	TickInterval = 16 * time.Millisecond

	// TimerWarningSeconds starts the countdown warning cue
	TimerWarningSeconds = 5
)

// Backboard Bonus
const (
	BonusMinIntervalSeconds = 5.0
	BonusMaxIntervalSeconds = 10.0
	BonusMinDurationSeconds = 5.0
	BonusMaxDurationSeconds = 10.0
)

// BonusValues and BonusWeights are the default weighted bonus table
var (
	BonusValues  = []int{4, 6, 8}
	BonusWeights = []int{8, 8, 4}
)
