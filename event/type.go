package event

import "time"

// EventType represents the type of match event
type EventType int

const (
	// eventNone is the zero value, never emitted
	eventNone EventType = iota

	// === Shot Event ===

	// EventShotReleased signals a ball left a competitor's hands
	// Trigger: Competition on player release or NPC shot
	// Consumer: Recorder, Scoreboard | Payload: *ShotReleasedPayload
	EventShotReleased

	// EventBasketMade signals the ball dropped through the hoop
	// Trigger: Ball spawner (physics provider)
	// Consumer: Score machine, Competition | Payload: *BasketMadePayload
	EventBasketMade

	// EventShotMissed signals the ball expired without scoring
	// Trigger: Ball spawner after ball lifetime
	// Consumer: Score machine (ends fire mode), Competition | Payload: *ShotMissedPayload
	EventShotMissed

	// EventShotInfeasible signals a release was skipped because no arc exists
	// Trigger: Competition when trajectories are invalid
	// Consumer: Recorder | Payload: *ShotInfeasiblePayload
	EventShotInfeasible

	// EventPerfectZonesChanged publishes charge positions of the ideal trajectories
	// Trigger: Competition after recomputing the player's trajectories
	// Consumer: Scoreboard | Payload: *PerfectZonesPayload
	EventPerfectZonesChanged

	// === Score Event ===

	// EventScoreChanged publishes a competitor's running total
	// Trigger: Score machine on make
	// Consumer: Scoreboard, Audio | Payload: *ScoreChangedPayload
	EventScoreChanged

	// EventFireChargeChanged publishes normalized fire charge or remaining fire time
	// Trigger: Score machine on accrual and every decay tick
	// Consumer: Scoreboard | Payload: *FireChargePayload
	EventFireChargeChanged

	// EventFireStateChanged signals entering or leaving fire mode
	// Trigger: Score machine
	// Consumer: Scoreboard, Audio, Recorder | Payload: *FireStatePayload
	EventFireStateChanged

	// EventBonusChanged publishes the backboard bonus value, zero when cleared
	// Trigger: Backboard bonus board
	// Consumer: Competition (NPC bank bias), Scoreboard, Audio | Payload: *BonusChangedPayload
	EventBonusChanged

	// === Match Event ===

	// EventMatchStarted signals a new match began
	// Trigger: Competition.Start
	// Consumer: Score machine (reset), Recorder, Scoreboard | Payload: *MatchStartedPayload
	EventMatchStarted

	// EventTimerTick publishes remaining whole seconds
	// Trigger: Match clock once at start and every second
	// Consumer: Scoreboard, Audio | Payload: *TimerTickPayload
	EventTimerTick

	// EventMatchEnded is the terminal match signal
	// Trigger: Match clock reaching zero, or all competitors finished
	// Consumer: Score machine (ends fire mode), Competition, Scoreboard, Audio | Payload: *MatchEndedPayload
	EventMatchEnded

	// EventPlayerAdvanced signals a competitor moved to the next shooting position
	// Trigger: Competition on make
	// Consumer: Scoreboard, Recorder | Payload: *PlayerAdvancedPayload
	EventPlayerAdvanced

	// EventPlayerFinished signals a competitor exhausted the position list
	// Trigger: Competition under the exhaust rotation policy
	// Consumer: Scoreboard | Payload: *PlayerFinishedPayload
	EventPlayerFinished

	eventCount
)

// GameEvent is a single routed notification
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64         // Scheduler tick at emission
	At      time.Duration // Match time at emission
}
