package status

import (
	"fmt"
	"sync/atomic"

	"github.com/lixenwraith/shootout/core"
	"github.com/lixenwraith/shootout/event"
)

// Per-competitor counter names, prefixed with the competitor name
const (
	MetricShots           = "shots"
	MetricMakes           = "makes"
	MetricMisses          = "misses"
	MetricPerfects        = "perfects"
	MetricBanks           = "banks"
	MetricFireActivations = "fire_activations"
	MetricBonusPoints     = "bonus_points"
	MetricStreak          = "streak"
	MetricBestStreak      = "best_streak"
	MetricPoints          = "points"
	MetricInfeasible      = "infeasible"
	MetricAccuracy        = "accuracy"
	MetricFireActive      = "fire"
)

// Match-wide metric names
const (
	MetricMatchID   = "match.id"
	MetricWinner    = "match.winner"
	MetricRemaining = "match.remaining"
	MetricMatches   = "match.count"
	MetricBonus     = "match.bonus"
)

// Key builds a per-competitor metric name such as "player.makes"
func Key(c core.CompetitorID, metric string) string {
	return fmt.Sprintf("%s.%s", c, metric)
}

type competitorMetrics struct {
	shots, makes, misses, perfects, banks *atomic.Int64
	fires, bonusPoints, streak, best      *atomic.Int64
	points, infeasible                    *atomic.Int64
	accuracy                              *Float
	fireActive                            *atomic.Bool
}

// Recorder turns match events into registry metrics
// Pointers are cached at construction so handling is lock-free
type Recorder struct {
	reg *Registry
	per [core.CompetitorCount]competitorMetrics

	matchID   *Text
	winner    *Text
	remaining *atomic.Int64
	matches   *atomic.Int64
	bonus     *atomic.Int64
}

func NewRecorder(reg *Registry) *Recorder {
	r := &Recorder{
		reg:       reg,
		matchID:   reg.Texts.Lookup(MetricMatchID),
		winner:    reg.Texts.Lookup(MetricWinner),
		remaining: reg.Ints.Lookup(MetricRemaining),
		matches:   reg.Ints.Lookup(MetricMatches),
		bonus:     reg.Ints.Lookup(MetricBonus),
	}
	for _, c := range core.Competitors {
		r.per[c] = competitorMetrics{
			shots:       reg.Ints.Lookup(Key(c, MetricShots)),
			makes:       reg.Ints.Lookup(Key(c, MetricMakes)),
			misses:      reg.Ints.Lookup(Key(c, MetricMisses)),
			perfects:    reg.Ints.Lookup(Key(c, MetricPerfects)),
			banks:       reg.Ints.Lookup(Key(c, MetricBanks)),
			fires:       reg.Ints.Lookup(Key(c, MetricFireActivations)),
			bonusPoints: reg.Ints.Lookup(Key(c, MetricBonusPoints)),
			streak:      reg.Ints.Lookup(Key(c, MetricStreak)),
			best:        reg.Ints.Lookup(Key(c, MetricBestStreak)),
			points:      reg.Ints.Lookup(Key(c, MetricPoints)),
			infeasible:  reg.Ints.Lookup(Key(c, MetricInfeasible)),
			accuracy:    reg.Floats.Lookup(Key(c, MetricAccuracy)),
			fireActive:  reg.Bools.Lookup(Key(c, MetricFireActive)),
		}
	}
	return r
}

// EventTypes implements event.Handler
func (r *Recorder) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventMatchStarted,
		event.EventMatchEnded,
		event.EventTimerTick,
		event.EventShotReleased,
		event.EventShotInfeasible,
		event.EventBasketMade,
		event.EventShotMissed,
		event.EventScoreChanged,
		event.EventFireStateChanged,
		event.EventBonusChanged,
	}
}

// HandleEvent implements event.Handler
func (r *Recorder) HandleEvent(ev event.GameEvent) {
	switch p := ev.Payload.(type) {
	case *event.MatchStartedPayload:
		r.reset()
		r.matches.Add(1)
		r.matchID.Store(p.MatchID.String())
		r.remaining.Store(int64(p.Duration))

	case *event.MatchEndedPayload:
		r.winner.Store(p.Winner.String())
		r.bonus.Store(0)

	case *event.TimerTickPayload:
		r.remaining.Store(int64(p.Remaining))

	case *event.ShotReleasedPayload:
		if m := r.metrics(p.Attempt.Competitor); m != nil {
			m.shots.Add(1)
			r.updateAccuracy(m)
		}

	case *event.ShotInfeasiblePayload:
		if m := r.metrics(p.Competitor); m != nil {
			m.infeasible.Add(1)
		}

	case *event.BasketMadePayload:
		a := p.Attempt
		m := r.metrics(a.Competitor)
		if m == nil {
			return
		}
		m.makes.Add(1)
		if a.Perfect {
			m.perfects.Add(1)
		}
		if a.IsBank() {
			m.banks.Add(1)
		}
		StoreMax(m.best, m.streak.Add(1))
		r.updateAccuracy(m)

	case *event.ShotMissedPayload:
		if m := r.metrics(p.Competitor); m != nil {
			m.misses.Add(1)
			m.streak.Store(0)
			r.updateAccuracy(m)
		}

	case *event.ScoreChangedPayload:
		if m := r.metrics(p.Competitor); m != nil {
			m.points.Store(int64(p.Total))
			m.bonusPoints.Add(int64(p.Bonus))
		}

	case *event.FireStatePayload:
		if m := r.metrics(p.Competitor); m != nil {
			if p.Active {
				m.fires.Add(1)
			}
			m.fireActive.Store(p.Active)
		}

	case *event.BonusChangedPayload:
		r.bonus.Store(int64(p.Value))
	}
}

func (r *Recorder) metrics(c core.CompetitorID) *competitorMetrics {
	if !c.Valid() {
		return nil
	}
	return &r.per[c]
}

func (r *Recorder) updateAccuracy(m *competitorMetrics) {
	resolved := m.makes.Load() + m.misses.Load()
	if resolved == 0 {
		m.accuracy.Store(0)
		return
	}
	m.accuracy.Store(float64(m.makes.Load()) / float64(resolved))
}

func (r *Recorder) reset() {
	for i := range r.per {
		m := &r.per[i]
		for _, v := range []*atomic.Int64{
			m.shots, m.makes, m.misses, m.perfects, m.banks,
			m.fires, m.bonusPoints, m.streak, m.best, m.points, m.infeasible,
		} {
			v.Store(0)
		}
		m.accuracy.Store(0)
		m.fireActive.Store(false)
	}
	r.winner.Store("")
	r.bonus.Store(0)
}

// Summary is a plain copy of one competitor's counters
type Summary struct {
	Shots, Makes, Misses, Perfects, Banks int64
	FireActivations, BonusPoints          int64
	BestStreak, Points                    int64
	Accuracy                              float64
}

// Summary snapshots competitor c's counters
func (r *Recorder) Summary(c core.CompetitorID) Summary {
	m := r.metrics(c)
	if m == nil {
		return Summary{}
	}
	return Summary{
		Shots:           m.shots.Load(),
		Makes:           m.makes.Load(),
		Misses:          m.misses.Load(),
		Perfects:        m.perfects.Load(),
		Banks:           m.banks.Load(),
		FireActivations: m.fires.Load(),
		BonusPoints:     m.bonusPoints.Load(),
		BestStreak:      m.best.Load(),
		Points:          m.points.Load(),
		Accuracy:        m.accuracy.Load(),
	}
}
