package arena

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/shootout/core"
	"github.com/lixenwraith/shootout/engine"
	"github.com/lixenwraith/shootout/event"
	"github.com/lixenwraith/shootout/physics"
)

// Spawner resolves launches analytically instead of simulating a rigid body
// A make is reported when the ball would drop through the hoop, a miss when
// the ball's lifetime runs out
type Spawner struct {
	court    *Court
	judge    physics.Judge
	lifetime time.Duration
	sched    *engine.Scheduler
	router   *event.Router
	logger   *log.Logger

	pending map[uuid.UUID]engine.Handle
}

// NewSpawner creates a spawner judging against court
func NewSpawner(court *Court, rimRadius float64, lifetime time.Duration, sched *engine.Scheduler, router *event.Router, logger *log.Logger) *Spawner {
	if logger == nil {
		logger = log.Default()
	}
	return &Spawner{
		court:    court,
		judge:    physics.Judge{RimRadius: rimRadius},
		lifetime: lifetime,
		sched:    sched,
		router:   router,
		logger:   logger,
		pending:  make(map[uuid.UUID]engine.Handle),
	}
}

// Launch implements match.BallSpawner
func (s *Spawner) Launch(l core.Launch) {
	aim := s.court.Hoop()
	if l.Attempt.IsBank() {
		aim = s.court.MirroredHoop()
	}

	v := s.judge.Resolve(l.Origin, l.Velocity, s.court.Gravity(), aim)
	flight := time.Duration(v.Time * float64(time.Second))
	a := l.Attempt

	var task engine.Task
	if v.Made && flight <= s.lifetime {
		task = engine.After(flight, func() {
			delete(s.pending, a.ID)
			s.router.Emit(event.EventBasketMade, &event.BasketMadePayload{Attempt: a})
		})
	} else {
		task = engine.After(s.lifetime, func() {
			delete(s.pending, a.ID)
			s.router.Emit(event.EventShotMissed, &event.ShotMissedPayload{Competitor: a.Competitor, AttemptID: a.ID})
		})
	}

	s.logger.Printf("arena: %s %s shot power %.2f made=%v off by %.2fm", a.Competitor, a.Kind, a.Power, v.Made, v.Distance)
	s.pending[a.ID] = s.sched.Start("ball-"+a.ID.String()[:8], task)
}

// EventTypes implements event.Handler
func (s *Spawner) EventTypes() []event.EventType {
	return []event.EventType{event.EventMatchStarted, event.EventMatchEnded}
}

// HandleEvent drops balls still in the air when a match starts or ends
func (s *Spawner) HandleEvent(ev event.GameEvent) {
	s.Clear()
}

// Clear cancels every ball in flight without reporting an outcome
func (s *Spawner) Clear() {
	for id, h := range s.pending {
		s.sched.Cancel(h)
		delete(s.pending, id)
	}
}

// InFlight returns the number of unresolved balls
func (s *Spawner) InFlight() int {
	return len(s.pending)
}
