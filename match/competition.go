package match

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/lixenwraith/shootout/core"
	"github.com/lixenwraith/shootout/engine"
	"github.com/lixenwraith/shootout/event"
	"github.com/lixenwraith/shootout/score"
	"github.com/lixenwraith/shootout/shot"
	"github.com/lixenwraith/shootout/vmath"
)

var (
	ErrNotRunning = errors.New("match not running")
	ErrCooldown   = errors.New("ball already in flight")
	ErrFinished   = errors.New("competitor finished all positions")
	ErrNoPosition = errors.New("world has no shooting positions")
)

// Deps are the collaborators a Competition drives
type Deps struct {
	World     World
	Spawner   BallSpawner
	Router    *event.Router
	Scheduler *engine.Scheduler
	Score     *score.Machine
	Bonus     *score.Backboard
	Logger    *log.Logger
	Rand      *rand.Rand
}

// shooter is the per-competitor progression record
type shooter struct {
	index    int
	origin   mgl64.Vec3
	pair     shot.Pair
	finished bool
	inFlight uuid.UUID // Player cooldown; uuid.Nil when free
}

// Competition owns match flow: positions, clock, NPC shots and the bonus spawner
type Competition struct {
	cfg     Config
	world   World
	spawner BallSpawner
	router  *event.Router
	sched   *engine.Scheduler
	score   *score.Machine
	bonus   *score.Backboard
	logger  *log.Logger
	rng     *rand.Rand
	npc     *shot.NPCShooter

	shooters  [core.CompetitorCount]shooter
	running   bool
	matchID   uuid.UUID
	remaining int
	result    Result
	hasResult bool

	clockH engine.Handle
	npcH   engine.Handle
	bonusH engine.Handle
}

// New validates collaborators and creates an idle competition
func New(cfg Config, deps Deps) (*Competition, error) {
	switch {
	case deps.World == nil:
		return nil, errors.New("match: world provider required")
	case deps.Spawner == nil:
		return nil, errors.New("match: ball spawner required")
	case deps.Router == nil:
		return nil, errors.New("match: event router required")
	case deps.Scheduler == nil:
		return nil, errors.New("match: scheduler required")
	case deps.Score == nil:
		return nil, errors.New("match: score machine required")
	}
	if len(deps.World.ShotPositions()) == 0 {
		return nil, fmt.Errorf("match: %w", ErrNoPosition)
	}
	if deps.Bonus == nil {
		deps.Bonus = score.NewBackboard(deps.Scheduler, deps.Router)
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		deps.Rand = rand.New(rand.NewPCG(seed, seed))
	}

	return &Competition{
		cfg:     cfg,
		world:   deps.World,
		spawner: deps.Spawner,
		router:  deps.Router,
		sched:   deps.Scheduler,
		score:   deps.Score,
		bonus:   deps.Bonus,
		logger:  deps.Logger,
		rng:     deps.Rand,
		npc:     shot.NewNPCShooter(cfg.NPC, deps.Rand),
	}, nil
}

// EventTypes implements event.Handler
func (c *Competition) EventTypes() []event.EventType {
	return []event.EventType{event.EventBasketMade, event.EventShotMissed, event.EventPlayerFinished}
}

// HandleEvent implements event.Handler
func (c *Competition) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventBasketMade:
		if p, ok := ev.Payload.(*event.BasketMadePayload); ok {
			c.onMake(p.Attempt)
		}
	case event.EventShotMissed:
		if p, ok := ev.Payload.(*event.ShotMissedPayload); ok {
			c.onMiss(p.Competitor, p.AttemptID)
		}
	case event.EventPlayerFinished:
		// Queued behind the finishing make, so every handler has scored it
		if c.running && c.allFinished() {
			c.end()
		}
	}
}

// Start begins a new match, cancelling anything left from the previous one
func (c *Competition) Start() uuid.UUID {
	c.cancelTasks()
	c.bonus.Clear()

	c.matchID = uuid.New()
	c.remaining = int(c.cfg.Duration / time.Second)
	c.running = true
	c.hasResult = false
	c.shooters = [core.CompetitorCount]shooter{}

	c.logger.Printf("match: %s started, %ds, policy %s", c.matchID, c.remaining, c.cfg.Policy)
	c.router.Emit(event.EventMatchStarted, &event.MatchStartedPayload{MatchID: c.matchID, Duration: c.remaining})
	c.router.Emit(event.EventTimerTick, &event.TimerTickPayload{Remaining: c.remaining})

	for _, id := range core.Competitors {
		c.reposition(id)
	}

	if c.remaining <= 0 {
		c.end()
		return c.matchID
	}

	c.clockH = c.sched.Start("match-clock", engine.Every(time.Second, c.tickClock))
	c.npcH = c.sched.Start("npc-shooter", c.npcLoop())
	c.bonusH = c.sched.Start("bonus-spawner", c.bonusTask())
	return c.matchID
}

// Stop ends the match early with the current scores
func (c *Competition) Stop() {
	if c.running {
		c.end()
	}
}

// Release fires the player's shot with charge in [0,1]
// Ignored with an error while a ball is in flight, after the match or after finishing
func (c *Competition) Release(charge float64) (core.ShotAttempt, error) {
	if !c.running {
		return core.ShotAttempt{}, ErrNotRunning
	}
	s := &c.shooters[core.Player]
	if s.finished {
		return core.ShotAttempt{}, ErrFinished
	}
	if s.inFlight != uuid.Nil {
		return core.ShotAttempt{}, ErrCooldown
	}

	cl, err := shot.Classify(charge, s.pair, c.cfg.Shot)
	if err != nil {
		c.infeasible(core.Player, err)
		return core.ShotAttempt{}, fmt.Errorf("release: %w", err)
	}

	a := cl.Attempt(core.Player, charge)
	a.ID = uuid.New()
	// Cooldown is set first; the spawner may resolve synchronously
	s.inFlight = a.ID
	c.launch(a, s.origin)
	return a, nil
}

// shootNPC draws and launches one NPC shot
func (c *Competition) shootNPC() {
	s := &c.shooters[core.NPC]
	if s.finished {
		return
	}
	cl, err := c.npc.Decide(s.pair, c.bonus.Active(c.sched.Now()))
	if err != nil {
		c.infeasible(core.NPC, err)
		return
	}
	a := cl.Attempt(core.NPC, 0)
	a.ID = uuid.New()
	c.launch(a, s.origin)
}

func (c *Competition) launch(a core.ShotAttempt, origin mgl64.Vec3) {
	fire := c.score.FireActive(a.Competitor)

	c.router.Emit(event.EventShotReleased, &event.ShotReleasedPayload{Attempt: a, FireActive: fire})
	c.spawner.Launch(core.Launch{
		Attempt:    a,
		Origin:     origin,
		Velocity:   a.Velocity,
		FireActive: fire,
	})
}

// npcLoop shoots after the initial delay, then at uniform random intervals
func (c *Competition) npcLoop() engine.Task {
	wait := engine.NewCountdown(c.cfg.NPCInitialDelay)
	return engine.TaskFunc(func(dt time.Duration) bool {
		if !c.running {
			return false
		}
		if !wait.Step(dt) {
			return true
		}
		c.shootNPC()
		wait.Rearm(uniformDuration(c.rng, c.cfg.NPCMinInterval, c.cfg.NPCMaxInterval))
		return c.running
	})
}

// tickClock counts down one whole second
func (c *Competition) tickClock() bool {
	if !c.running {
		return false
	}
	c.remaining--
	if c.remaining < 0 {
		c.remaining = 0
	}
	c.router.Emit(event.EventTimerTick, &event.TimerTickPayload{Remaining: c.remaining})
	if c.remaining == 0 {
		c.end()
		return false
	}
	return true
}

func (c *Competition) onMake(a core.ShotAttempt) {
	id := a.Competitor
	if !c.running || !id.Valid() {
		return
	}
	s := &c.shooters[id]
	if id == core.Player && s.inFlight == a.ID {
		s.inFlight = uuid.Nil
	}
	if s.finished {
		return
	}

	n := len(c.world.ShotPositions())
	next := s.index + 1
	if next >= n {
		if c.cfg.Policy == PolicyExhaust {
			s.finished = true
			c.logger.Printf("match: %s finished all %d positions", id, n)
			c.router.Emit(event.EventPlayerFinished, &event.PlayerFinishedPayload{Competitor: id})
			return
		}
		next = 0
	}
	s.index = next
	c.router.Emit(event.EventPlayerAdvanced, &event.PlayerAdvancedPayload{Competitor: id, Index: next})
	c.reposition(id)
}

func (c *Competition) onMiss(id core.CompetitorID, attemptID uuid.UUID) {
	if id != core.Player {
		return
	}
	s := &c.shooters[id]
	if s.inFlight == attemptID {
		s.inFlight = uuid.Nil
	}
}

func (c *Competition) allFinished() bool {
	for _, id := range core.Competitors {
		if !c.shooters[id].finished {
			return false
		}
	}
	return true
}

// reposition places a competitor at its current spot and recomputes trajectories
func (c *Competition) reposition(id core.CompetitorID) {
	positions := c.world.ShotPositions()
	s := &c.shooters[id]
	if s.index >= len(positions) {
		s.index = 0
	}

	hoop := c.world.Hoop()
	base := positions[s.index]
	right := vmath.Right(vmath.FlatForward(base, hoop))
	half := right.Mul(c.cfg.SideOffset / 2)
	if id == core.Player {
		base = base.Sub(half)
	} else {
		base = base.Add(half)
	}
	s.origin = base.Add(vmath.Up.Mul(c.cfg.StartHeight))

	pair, err := shot.Solve(s.origin, c.geometry())
	s.pair = pair
	if err != nil {
		c.logger.Printf("match: %s at position %d: %v", id, s.index, err)
		if !pair.Direct.Valid {
			c.infeasible(id, err)
		}
	}

	z := shot.PerfectZones(pair, c.cfg.Shot)
	c.router.Emit(event.EventPerfectZonesChanged, &event.PerfectZonesPayload{
		Competitor: id,
		Direct:     z.Direct,
		Bank:       z.Bank,
		Threshold:  z.Threshold,
	})
}

func (c *Competition) geometry() shot.Geometry {
	anchor, normal := c.world.Backboard()
	return shot.Geometry{
		Hoop:        c.world.Hoop(),
		BoardAnchor: anchor,
		BoardNormal: normal,
		ApexHeight:  c.cfg.ApexHeight,
		Gravity:     c.world.Gravity(),
	}
}

func (c *Competition) infeasible(id core.CompetitorID, err error) {
	c.logger.Printf("match: %s shot skipped: %v", id, err)
	c.router.Emit(event.EventShotInfeasible, &event.ShotInfeasiblePayload{Competitor: id, Reason: err.Error()})
}

func (c *Competition) end() {
	c.running = false
	c.cancelTasks()
	c.bonus.Clear()

	scores := c.score.Scores()
	c.result = Result{MatchID: c.matchID, Scores: scores, Winner: decideWinner(scores)}
	c.hasResult = true

	c.logger.Printf("match: %s ended %d-%d winner %s", c.matchID, scores[core.Player], scores[core.NPC], c.result.Winner)
	c.router.Emit(event.EventMatchEnded, &event.MatchEndedPayload{
		MatchID: c.matchID,
		Scores:  scores,
		Winner:  c.result.Winner,
	})
}

func (c *Competition) cancelTasks() {
	for _, h := range []*engine.Handle{&c.clockH, &c.npcH, &c.bonusH} {
		if *h != 0 {
			c.sched.Cancel(*h)
			*h = 0
		}
	}
}

// Running reports whether a match is in progress
func (c *Competition) Running() bool {
	return c.running
}

// MatchID returns the current or last match identifier
func (c *Competition) MatchID() uuid.UUID {
	return c.matchID
}

// Remaining returns whole seconds left on the match clock
func (c *Competition) Remaining() int {
	return c.remaining
}

// Result returns the last finished match result
func (c *Competition) Result() (Result, bool) {
	return c.result, c.hasResult
}

// Position returns competitor id's spot index and release origin
func (c *Competition) Position(id core.CompetitorID) (int, mgl64.Vec3) {
	if !id.Valid() {
		return 0, mgl64.Vec3{}
	}
	return c.shooters[id].index, c.shooters[id].origin
}

// Trajectories returns competitor id's current ideal trajectories
func (c *Competition) Trajectories(id core.CompetitorID) shot.Pair {
	if !id.Valid() {
		return shot.Pair{}
	}
	return c.shooters[id].pair
}

// Zones returns competitor id's perfect zones on the charge bar
func (c *Competition) Zones(id core.CompetitorID) shot.Zones {
	return shot.PerfectZones(c.Trajectories(id), c.cfg.Shot)
}

// Finished reports whether competitor id has exhausted its positions
func (c *Competition) Finished(id core.CompetitorID) bool {
	return id.Valid() && c.shooters[id].finished
}

// CoolingDown reports whether the player's ball is still in flight
func (c *Competition) CoolingDown() bool {
	return c.shooters[core.Player].inFlight != uuid.Nil
}
