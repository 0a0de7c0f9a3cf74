package score

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/lixenwraith/shootout/core"
	"github.com/lixenwraith/shootout/engine"
	"github.com/lixenwraith/shootout/event"
)

func testConfig() Config {
	return Config{
		NormalPoints:     2,
		PerfectPoints:    3,
		ChargeCap:        10,
		UnitCharge:       1,
		FireDuration:     5 * time.Second,
		FireDecayRate:    1,
		PointsMultiplier: 2,
	}
}

type fixture struct {
	sched  *engine.Scheduler
	router *event.Router
	bonus  *Backboard
	m      *Machine
	events []event.GameEvent
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		sched:  engine.NewScheduler(),
		router: event.NewRouter(),
	}
	f.router.SetClock(f.sched)
	f.bonus = NewBackboard(f.sched, f.router)
	f.m = NewMachine(testConfig(), f.sched, f.router, f.bonus, log.New(io.Discard, "", 0))
	f.router.Register(f.m)
	f.router.Register(event.HandlerFunc(func(ev event.GameEvent) {
		f.events = append(f.events, ev)
	}, event.EventScoreChanged, event.EventFireStateChanged, event.EventFireChargeChanged, event.EventBonusChanged))
	return f
}

func (f *fixture) count(t event.EventType) int {
	n := 0
	for _, ev := range f.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func attempt(c core.CompetitorID, kind core.ShotKind, perfect bool) core.ShotAttempt {
	return core.ShotAttempt{Competitor: c, Kind: kind, Perfect: perfect, PerfectDirect: perfect}
}

// TestMakePoints verifies base, perfect and bank bonus points
func TestMakePoints(t *testing.T) {
	tests := []struct {
		name    string
		kind    core.ShotKind
		perfect bool
		bonus   int
		want    int
	}{
		{"normal direct", core.ShotDirect, false, 0, 2},
		{"perfect direct", core.ShotDirect, true, 0, 3},
		{"normal bank no bonus", core.ShotBank, false, 0, 2},
		{"bank with bonus", core.ShotBank, false, 6, 8},
		{"perfect bank with bonus", core.ShotBank, true, 4, 7},
		{"direct ignores bonus", core.ShotDirect, false, 8, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.bonus > 0 {
				f.bonus.Set(tt.bonus, 5*time.Second)
			}
			got := f.m.OnMake(attempt(core.Player, tt.kind, tt.perfect))
			if got != tt.want {
				t.Errorf("points = %d, want %d", got, tt.want)
			}
			if total := f.m.State(core.Player).TotalPoints; total != tt.want {
				t.Errorf("total = %d, want %d", total, tt.want)
			}
		})
	}
}

// TestFireActivation verifies perfect makes accrue double and activate at the cap
func TestFireActivation(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 4; i++ {
		f.m.OnMake(attempt(core.Player, core.ShotDirect, true))
	}
	st := f.m.State(core.Player)
	if st.FireCharge != 8 || st.FireActive {
		t.Fatalf("after 4 perfects: charge %v active %v", st.FireCharge, st.FireActive)
	}
	if st.Phase() != PhaseFireBuilding {
		t.Errorf("phase = %v, want building", st.Phase())
	}

	// Activating make is not doubled
	if got := f.m.OnMake(attempt(core.Player, core.ShotDirect, true)); got != 3 {
		t.Errorf("activating make = %d, want 3", got)
	}
	st = f.m.State(core.Player)
	if !st.FireActive || st.FireCharge != 10 || st.FireRemaining != 1 {
		t.Fatalf("fire not active: %+v", st)
	}
	if f.count(event.EventFireStateChanged) != 1 {
		t.Errorf("fire state events = %d, want 1", f.count(event.EventFireStateChanged))
	}

	// Perfect direct during fire scores 6 and accrues nothing
	if got := f.m.OnMake(attempt(core.Player, core.ShotDirect, true)); got != 6 {
		t.Errorf("fire make = %d, want 6", got)
	}
	if st := f.m.State(core.Player); st.FireCharge != 10 {
		t.Errorf("charge changed during fire: %v", st.FireCharge)
	}
	if f.m.State(core.NPC).TotalPoints != 0 {
		t.Error("NPC affected by player makes")
	}
}

// TestFireDoublesBankBonus verifies the reported bonus share includes the fire multiplier
func TestFireDoublesBankBonus(t *testing.T) {
	f := newFixture(t)
	f.bonus.Set(6, 0)

	if got := f.m.OnMake(attempt(core.Player, core.ShotBank, false)); got != 8 {
		t.Fatalf("bank make = %d, want 8", got)
	}
	if b := f.lastScore(t).Bonus; b != 6 {
		t.Errorf("bonus share = %d, want 6", b)
	}

	for !f.m.FireActive(core.Player) {
		f.m.OnMake(attempt(core.Player, core.ShotDirect, true))
	}
	if got := f.m.OnMake(attempt(core.Player, core.ShotBank, false)); got != 16 {
		t.Errorf("fire bank make = %d, want 16", got)
	}
	if p := f.lastScore(t); p.Bonus != 12 || p.Added != 16 {
		t.Errorf("score payload = %+v, want bonus 12 added 16", p)
	}

	f.m.OnMake(attempt(core.Player, core.ShotDirect, true))
	if b := f.lastScore(t).Bonus; b != 0 {
		t.Errorf("direct make bonus share = %d, want 0", b)
	}
}

func (f *fixture) lastScore(t *testing.T) *event.ScoreChangedPayload {
	t.Helper()
	for i := len(f.events) - 1; i >= 0; i-- {
		if p, ok := f.events[i].Payload.(*event.ScoreChangedPayload); ok {
			return p
		}
	}
	t.Fatal("no score event")
	return nil
}

// TestChargeClamp verifies charge never exceeds the cap
func TestChargeClamp(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 9; i++ {
		f.m.OnMake(attempt(core.NPC, core.ShotDirect, false))
	}
	f.m.OnMake(attempt(core.NPC, core.ShotDirect, true))
	st := f.m.State(core.NPC)
	if st.FireCharge != 10 || !st.FireActive {
		t.Errorf("charge = %v active = %v, want 10 true", st.FireCharge, st.FireActive)
	}
}

// TestMissResetsFire verifies a miss ends fire and discards charge
func TestMissResetsFire(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.m.OnMake(attempt(core.Player, core.ShotDirect, true))
	}
	f.router.Emit(event.EventShotMissed, &event.ShotMissedPayload{Competitor: core.Player})

	st := f.m.State(core.Player)
	if st.FireActive || st.FireCharge != 0 || st.FireRemaining != 0 {
		t.Errorf("after miss: %+v", st)
	}
	if st.TotalPoints != 15 {
		t.Errorf("total = %d, want 15 (no decrement)", st.TotalPoints)
	}
	if f.sched.Len() != 0 {
		t.Errorf("decay task still scheduled: %v", f.sched.Names())
	}
}

// TestDecayEndsFire verifies fire lasts FireDuration at decay rate 1
func TestDecayEndsFire(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.m.OnMake(attempt(core.Player, core.ShotDirect, true))
	}

	step := 100 * time.Millisecond
	for i := 0; i < 49; i++ {
		f.sched.Advance(step)
	}
	st := f.m.State(core.Player)
	if !st.FireActive {
		t.Fatal("fire ended early")
	}
	if st.FireRemaining > 0.03 || st.FireRemaining <= 0 {
		t.Errorf("remaining = %v, want about 0.02", st.FireRemaining)
	}

	f.sched.Advance(step)
	f.sched.Advance(step)
	st = f.m.State(core.Player)
	if st.FireActive || st.FireCharge != 0 {
		t.Errorf("fire still active after duration: %+v", st)
	}
	if f.sched.Len() != 0 {
		t.Errorf("decay task not released: %v", f.sched.Names())
	}
}

// TestReactivationCancelsDecay verifies only one decay task runs per competitor
func TestReactivationCancelsDecay(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.m.OnMake(attempt(core.Player, core.ShotDirect, true))
	}
	f.sched.Advance(time.Second)
	f.m.OnMiss(core.Player)
	for i := 0; i < 5; i++ {
		f.m.OnMake(attempt(core.Player, core.ShotDirect, true))
	}
	if n := f.sched.Len(); n != 1 {
		t.Fatalf("scheduled tasks = %d, want 1", n)
	}

	// Fresh activation restarts from full
	f.sched.Advance(time.Second)
	if got := f.m.State(core.Player).FireRemaining; got < 0.79 || got > 0.81 {
		t.Errorf("remaining = %v, want 0.8", got)
	}
}

// TestMatchEndFreezes verifies end-of-match resets fire and ignores later makes
func TestMatchEndFreezes(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.m.OnMake(attempt(core.NPC, core.ShotDirect, true))
	}
	f.router.Emit(event.EventMatchEnded, &event.MatchEndedPayload{})

	if f.m.FireActive(core.NPC) {
		t.Error("fire active after match end")
	}
	if got := f.m.OnMake(attempt(core.NPC, core.ShotDirect, true)); got != 0 {
		t.Errorf("make after end scored %d", got)
	}
	if f.m.Scores()[core.NPC] != 15 {
		t.Errorf("scores = %v", f.m.Scores())
	}

	f.router.Emit(event.EventMatchStarted, &event.MatchStartedPayload{})
	if f.m.Ended() || f.m.Scores()[core.NPC] != 0 {
		t.Errorf("reset failed: ended %v scores %v", f.m.Ended(), f.m.Scores())
	}
}

// TestNegativeConfigClamped verifies negative points are treated as zero
func TestNegativeConfigClamped(t *testing.T) {
	cfg := testConfig()
	cfg.NormalPoints = -4
	m := NewMachine(cfg, engine.NewScheduler(), nil, nil, log.New(io.Discard, "", 0))
	if got := m.OnMake(attempt(core.Player, core.ShotDirect, false)); got != 0 {
		t.Errorf("points = %d, want 0", got)
	}
}

// TestScoresMonotonic verifies totals never decrease across makes and misses
func TestScoresMonotonic(t *testing.T) {
	f := newFixture(t)
	prev := 0
	for i := 0; i < 40; i++ {
		switch i % 7 {
		case 3:
			f.m.OnMiss(core.Player)
		default:
			f.m.OnMake(attempt(core.Player, core.ShotKind(i%2), i%3 == 0))
		}
		f.sched.Advance(250 * time.Millisecond)
		total := f.m.State(core.Player).TotalPoints
		if total < prev {
			t.Fatalf("step %d: total dropped %d -> %d", i, prev, total)
		}
		prev = total
	}
}
