package status

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/shootout/core"
	"github.com/lixenwraith/shootout/event"
)

type manualClock struct {
	frame int64
	now   time.Duration
}

func (c *manualClock) Frame() int64       { return c.frame }
func (c *manualClock) Now() time.Duration { return c.now }

// TestRecorderCounts verifies per-competitor counters and streaks
func TestRecorderCounts(t *testing.T) {
	reg := NewRegistry()
	rec := NewRecorder(reg)
	clock := &manualClock{}
	router := event.NewRouter()
	router.SetClock(clock)
	router.Register(rec)

	id := uuid.New()
	router.Emit(event.EventMatchStarted, &event.MatchStartedPayload{MatchID: id, Duration: 90})

	makeShot := func(kind core.ShotKind, perfect bool) {
		a := core.ShotAttempt{Competitor: core.Player, Kind: kind, Perfect: perfect}
		router.Emit(event.EventShotReleased, &event.ShotReleasedPayload{Attempt: a})
		router.Emit(event.EventBasketMade, &event.BasketMadePayload{Attempt: a})
	}
	miss := func() {
		router.Emit(event.EventShotReleased, &event.ShotReleasedPayload{Attempt: core.ShotAttempt{Competitor: core.Player}})
		router.Emit(event.EventShotMissed, &event.ShotMissedPayload{Competitor: core.Player})
	}

	makeShot(core.ShotDirect, true)
	makeShot(core.ShotDirect, false)
	makeShot(core.ShotDirect, true)
	miss()

	clock.now = 10 * time.Second
	router.Emit(event.EventBonusChanged, &event.BonusChangedPayload{Value: 6, Duration: 5 * time.Second})
	makeShot(core.ShotBank, false)
	router.Emit(event.EventScoreChanged, &event.ScoreChangedPayload{Competitor: core.Player, Total: 18, Added: 8, Bonus: 6})
	// Fire doubles the bonus share
	makeShot(core.ShotBank, false)
	router.Emit(event.EventScoreChanged, &event.ScoreChangedPayload{Competitor: core.Player, Total: 34, Added: 16, Bonus: 12})

	router.Emit(event.EventFireStateChanged, &event.FireStatePayload{Competitor: core.Player, Active: true})

	s := rec.Summary(core.Player)
	want := Summary{
		Shots: 6, Makes: 5, Misses: 1, Perfects: 2, Banks: 2,
		FireActivations: 1, BonusPoints: 18, BestStreak: 3, Points: 34,
		Accuracy: 5.0 / 6.0,
	}
	if s != want {
		t.Errorf("summary = %+v\nwant      %+v", s, want)
	}
	if reg.Int(Key(core.Player, MetricStreak)) != 2 {
		t.Errorf("current streak = %d, want 2", reg.Int(Key(core.Player, MetricStreak)))
	}
	if !reg.Bools.Lookup(Key(core.Player, MetricFireActive)).Load() {
		t.Error("fire flag not set")
	}
	if got := reg.Texts.Lookup(MetricMatchID).Load(); got != id.String() {
		t.Errorf("match id = %q", got)
	}
	if rec.Summary(core.NPC) != (Summary{}) {
		t.Errorf("npc summary = %+v", rec.Summary(core.NPC))
	}

	router.Emit(event.EventMatchEnded, &event.MatchEndedPayload{Winner: core.NoCompetitor})
	if got := reg.Texts.Lookup(MetricWinner).Load(); got != "none" {
		t.Errorf("winner = %q", got)
	}

	router.Emit(event.EventMatchStarted, &event.MatchStartedPayload{MatchID: uuid.New(), Duration: 90})
	if rec.Summary(core.Player) != (Summary{}) {
		t.Error("new match did not reset counters")
	}
	if reg.Int(MetricMatches) != 2 {
		t.Errorf("matches = %d", reg.Int(MetricMatches))
	}
}

// TestRegistryConcurrentLookup verifies concurrent first use yields one value
func TestRegistryConcurrentLookup(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				reg.Ints.Lookup("shared").Add(1)
				reg.Floats.Lookup("f").Add(0.5)
			}
		}()
	}
	wg.Wait()

	if got := reg.Int("shared"); got != 1600 {
		t.Errorf("shared = %d, want 1600", got)
	}
	if got := reg.Floats.Lookup("f").Load(); got != 800 {
		t.Errorf("f = %v, want 800", got)
	}
	var names []string
	reg.Ints.Each(func(name string, _ *atomic.Int64) { names = append(names, name) })
	if len(names) != 1 || reg.Len() != 2 {
		t.Errorf("names = %v, len = %d", names, reg.Len())
	}
}
