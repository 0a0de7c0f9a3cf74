package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/shootout/core"
)

// ShotReleasedPayload carries the attempt handed to the ball spawner
type ShotReleasedPayload struct {
	Attempt    core.ShotAttempt
	FireActive bool
}

// BasketMadePayload carries the scored attempt
type BasketMadePayload struct {
	Attempt core.ShotAttempt
}

// ShotMissedPayload identifies who missed
type ShotMissedPayload struct {
	Competitor core.CompetitorID
	AttemptID  uuid.UUID
}

// ShotInfeasiblePayload reports a skipped release
type ShotInfeasiblePayload struct {
	Competitor core.CompetitorID
	Reason     string
}

// PerfectZonesPayload contains normalized charge positions of the ideal shots
type PerfectZonesPayload struct {
	Competitor core.CompetitorID
	Direct     float64
	Bank       float64
	Threshold  float64
}

// ScoreChangedPayload contains the new running total and the points just added
type ScoreChangedPayload struct {
	Competitor core.CompetitorID
	Total      int
	Added      int
	Bonus      int // Backboard share of Added, multiplier included
	Perfect    bool
}

// FireChargePayload contains normalized charge in [0,1]
// While fire is active it carries remaining fire time instead
type FireChargePayload struct {
	Competitor core.CompetitorID
	Charge     float64
}

// FireStatePayload signals fire activation or end
type FireStatePayload struct {
	Competitor core.CompetitorID
	Active     bool
}

// BonusChangedPayload contains the backboard bonus value and its lifetime
type BonusChangedPayload struct {
	Value    int
	Duration time.Duration // Zero when cleared
}

// MatchStartedPayload identifies the match
type MatchStartedPayload struct {
	MatchID  uuid.UUID
	Duration int // Seconds
}

// TimerTickPayload contains remaining whole seconds
type TimerTickPayload struct {
	Remaining int
}

// MatchEndedPayload contains final standings
type MatchEndedPayload struct {
	MatchID uuid.UUID
	Scores  [core.CompetitorCount]int
	Winner  core.CompetitorID // core.NoCompetitor on tie
}

// PlayerAdvancedPayload contains the new position index
type PlayerAdvancedPayload struct {
	Competitor core.CompetitorID
	Index      int
}

// PlayerFinishedPayload identifies a competitor done with all positions
type PlayerFinishedPayload struct {
	Competitor core.CompetitorID
}
