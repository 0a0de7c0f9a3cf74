package score

import (
	"log"
	"time"

	"github.com/lixenwraith/shootout/core"
	"github.com/lixenwraith/shootout/engine"
	"github.com/lixenwraith/shootout/event"
)

// Phase is the fireball state of one competitor
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseFireBuilding
	PhaseFireActive
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFireBuilding:
		return "building"
	case PhaseFireActive:
		return "active"
	default:
		return "unknown"
	}
}

// Config holds scoring and fireball tuning
type Config struct {
	NormalPoints     int
	PerfectPoints    int
	ChargeCap        float64       // Charge that activates fire mode
	UnitCharge       float64       // Accrued per normal make, doubled on perfect
	FireDuration     time.Duration // Fire length at decay rate 1
	FireDecayRate    float64
	PointsMultiplier int // Applied to every make while fire is active
}

// State is the per-competitor scoring record
type State struct {
	TotalPoints   int
	FireCharge    float64 // [0, ChargeCap]
	FireActive    bool
	FireRemaining float64 // [0, 1], meaningful while FireActive
}

// Phase derives the fireball state from the record
func (s State) Phase() Phase {
	switch {
	case s.FireActive:
		return PhaseFireActive
	case s.FireCharge > 0:
		return PhaseFireBuilding
	default:
		return PhaseIdle
	}
}

// Machine applies makes and misses to both competitors' scores and fire meters
//
// Transitions per competitor:
//
//	Idle --make--> FireBuilding --charge reaches cap--> FireActive
//	FireActive --miss | decay to zero | match end--> Idle
//	FireBuilding --miss | match end--> Idle
//
// Runs on the game timeline only; decay is a scheduler task
type Machine struct {
	cfg    Config
	sched  *engine.Scheduler
	router *event.Router
	bonus  *Backboard
	logger *log.Logger

	states [core.CompetitorCount]State
	decay  [core.CompetitorCount]engine.Handle
	ended  bool
}

// NewMachine creates a machine with negative tuning clamped to zero
// bonus may be nil when bank makes earn nothing extra
func NewMachine(cfg Config, sched *engine.Scheduler, router *event.Router, bonus *Backboard, logger *log.Logger) *Machine {
	if cfg.NormalPoints < 0 {
		cfg.NormalPoints = 0
	}
	if cfg.PerfectPoints < 0 {
		cfg.PerfectPoints = 0
	}
	if cfg.ChargeCap < 0 {
		cfg.ChargeCap = 0
	}
	if cfg.UnitCharge < 0 {
		cfg.UnitCharge = 0
	}
	if cfg.FireDecayRate < 0 {
		cfg.FireDecayRate = 0
	}
	if cfg.PointsMultiplier < 1 {
		cfg.PointsMultiplier = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Machine{
		cfg:    cfg,
		sched:  sched,
		router: router,
		bonus:  bonus,
		logger: logger,
	}
}

// EventTypes implements event.Handler
func (m *Machine) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventBasketMade,
		event.EventShotMissed,
		event.EventMatchStarted,
		event.EventMatchEnded,
	}
}

// HandleEvent implements event.Handler
func (m *Machine) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventBasketMade:
		if p, ok := ev.Payload.(*event.BasketMadePayload); ok {
			m.OnMake(p.Attempt)
		}
	case event.EventShotMissed:
		if p, ok := ev.Payload.(*event.ShotMissedPayload); ok {
			m.OnMiss(p.Competitor)
		}
	case event.EventMatchStarted:
		m.Reset()
	case event.EventMatchEnded:
		m.OnMatchEnd()
	}
}

// OnMake scores a made attempt and returns the points added
func (m *Machine) OnMake(a core.ShotAttempt) int {
	c := a.Competitor
	if m.ended || !c.Valid() {
		return 0
	}
	st := &m.states[c]

	points := m.cfg.NormalPoints
	if a.Perfect {
		points = m.cfg.PerfectPoints
	}
	bonus := 0
	if a.IsBank() && m.bonus != nil {
		bonus = m.bonus.Value(m.sched.Now())
	}
	points += bonus

	// Multiplier depends on state before this make's accrual
	wasActive := st.FireActive
	if wasActive {
		points *= m.cfg.PointsMultiplier
		bonus *= m.cfg.PointsMultiplier
	}

	st.TotalPoints += points
	m.emit(event.EventScoreChanged, &event.ScoreChangedPayload{
		Competitor: c,
		Total:      st.TotalPoints,
		Added:      points,
		Bonus:      bonus,
		Perfect:    a.Perfect,
	})

	if !wasActive {
		m.accrue(c, a.Perfect)
	}
	return points
}

// OnMiss ends fire mode and discards accumulated charge
func (m *Machine) OnMiss(c core.CompetitorID) {
	if !c.Valid() {
		return
	}
	m.EndFireMode(c)
}

// OnMatchEnd ends fire for both competitors and freezes totals
func (m *Machine) OnMatchEnd() {
	for _, c := range core.Competitors {
		m.EndFireMode(c)
	}
	m.ended = true
}

// EndFireMode forces competitor c back to Idle
// Emits only for state that actually changed
func (m *Machine) EndFireMode(c core.CompetitorID) {
	if !c.Valid() {
		return
	}
	if h := m.decay[c]; h != 0 {
		m.sched.Cancel(h)
		m.decay[c] = 0
	}

	st := &m.states[c]
	wasActive := st.FireActive
	hadCharge := st.FireCharge > 0

	st.FireActive = false
	st.FireCharge = 0
	st.FireRemaining = 0

	if hadCharge || wasActive {
		m.emit(event.EventFireChargeChanged, &event.FireChargePayload{Competitor: c})
	}
	if wasActive {
		m.logger.Printf("score: %s fire ended", c)
		m.emit(event.EventFireStateChanged, &event.FireStatePayload{Competitor: c})
	}
}

// Reset clears both competitors for a new match
func (m *Machine) Reset() {
	for _, c := range core.Competitors {
		if h := m.decay[c]; h != 0 {
			m.sched.Cancel(h)
			m.decay[c] = 0
		}
		m.states[c] = State{}
		m.emit(event.EventScoreChanged, &event.ScoreChangedPayload{Competitor: c})
		m.emit(event.EventFireChargeChanged, &event.FireChargePayload{Competitor: c})
	}
	m.ended = false
}

// State returns a copy of competitor c's record
func (m *Machine) State(c core.CompetitorID) State {
	if !c.Valid() {
		return State{}
	}
	return m.states[c]
}

// FireActive reports whether c currently scores with the fire multiplier
func (m *Machine) FireActive(c core.CompetitorID) bool {
	return c.Valid() && m.states[c].FireActive
}

// Scores returns both running totals indexed by CompetitorID
func (m *Machine) Scores() [core.CompetitorCount]int {
	var out [core.CompetitorCount]int
	for _, c := range core.Competitors {
		out[c] = m.states[c].TotalPoints
	}
	return out
}

// Ended reports whether scoring is frozen
func (m *Machine) Ended() bool {
	return m.ended
}

func (m *Machine) accrue(c core.CompetitorID, perfect bool) {
	st := &m.states[c]
	gain := m.cfg.UnitCharge
	if perfect {
		gain *= 2
	}
	st.FireCharge += gain
	if st.FireCharge > m.cfg.ChargeCap {
		st.FireCharge = m.cfg.ChargeCap
	}

	if st.FireCharge >= m.cfg.ChargeCap {
		m.activate(c)
		return
	}
	m.emit(event.EventFireChargeChanged, &event.FireChargePayload{
		Competitor: c,
		Charge:     m.chargeFraction(st.FireCharge),
	})
}

func (m *Machine) activate(c core.CompetitorID) {
	if h := m.decay[c]; h != 0 {
		m.sched.Cancel(h)
		m.decay[c] = 0
	}

	st := &m.states[c]
	st.FireActive = true
	st.FireRemaining = 1

	m.logger.Printf("score: %s fire activated", c)
	m.emit(event.EventFireStateChanged, &event.FireStatePayload{Competitor: c, Active: true})
	m.emit(event.EventFireChargeChanged, &event.FireChargePayload{Competitor: c, Charge: 1})

	m.decay[c] = m.sched.Start("fire-decay-"+c.String(), m.decayTask(c))
}

// decayTask drains FireRemaining each tick and ends fire at zero
func (m *Machine) decayTask(c core.CompetitorID) engine.Task {
	return engine.TaskFunc(func(dt time.Duration) bool {
		st := &m.states[c]
		if !st.FireActive {
			m.decay[c] = 0
			return false
		}

		if m.cfg.FireDuration <= 0 {
			st.FireRemaining = 0
		} else {
			st.FireRemaining -= dt.Seconds() / m.cfg.FireDuration.Seconds() * m.cfg.FireDecayRate
		}

		if st.FireRemaining <= 0 {
			st.FireRemaining = 0
			// Handle is released by returning false
			m.decay[c] = 0
			m.EndFireMode(c)
			return false
		}

		m.emit(event.EventFireChargeChanged, &event.FireChargePayload{Competitor: c, Charge: st.FireRemaining})
		return true
	})
}

// chargeFraction normalizes accumulated charge for display
func (m *Machine) chargeFraction(charge float64) float64 {
	if m.cfg.ChargeCap <= 0 {
		return 0
	}
	return charge / m.cfg.ChargeCap
}

func (m *Machine) emit(t event.EventType, payload any) {
	if m.router != nil {
		m.router.Emit(t, payload)
	}
}
