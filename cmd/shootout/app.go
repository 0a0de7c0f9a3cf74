package main

import (
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/shootout/arena"
	"github.com/lixenwraith/shootout/audio"
	"github.com/lixenwraith/shootout/config"
	"github.com/lixenwraith/shootout/core"
	"github.com/lixenwraith/shootout/engine"
	"github.com/lixenwraith/shootout/event"
	"github.com/lixenwraith/shootout/match"
	"github.com/lixenwraith/shootout/render"
	"github.com/lixenwraith/shootout/score"
	"github.com/lixenwraith/shootout/status"
)

// App wires one match timeline: scheduler, router and every handler on it
type App struct {
	cfg    *config.Config
	logger *log.Logger
	seed   uint64

	sched     *engine.Scheduler
	router    *event.Router
	score     *score.Machine
	bonus     *score.Backboard
	comp      *match.Competition
	spawner   *arena.Spawner
	autopilot *arena.Autopilot

	registry *status.Registry
	recorder *status.Recorder
	board    *render.Scoreboard
	sound    *audio.Player
}

// NewApp builds the timeline from a validated config
func NewApp(cfg *config.Config, logger *log.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	a := &App{
		cfg:      cfg,
		logger:   logger,
		seed:     seed,
		sched:    engine.NewScheduler(),
		router:   event.NewRouter(),
		registry: status.NewRegistry(),
		board:    render.NewScoreboard(),
	}
	a.router.SetClock(a.sched)

	court := cfg.NewCourt()
	a.bonus = score.NewBackboard(a.sched, a.router)
	a.score = score.NewMachine(cfg.ScoreConfig(), a.sched, a.router, a.bonus, logger)
	a.spawner = arena.NewSpawner(court, cfg.Court.RimRadius, cfg.BallLifetime(), a.sched, a.router, logger)

	comp, err := match.New(cfg.MatchConfig(), match.Deps{
		World:     court,
		Spawner:   a.spawner,
		Router:    a.router,
		Scheduler: a.sched,
		Score:     a.score,
		Bonus:     a.bonus,
		Logger:    logger,
		Rand:      rng,
	})
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	a.comp = comp
	a.autopilot = arena.NewAutopilot(comp, cfg.AutopilotCadence(), cfg.Autopilot.Spread, cfg.Autopilot.BankBias, rng)
	a.recorder = status.NewRecorder(a.registry)
	a.sound = audio.NewPlayer(cfg.AudioConfig(), logger)

	a.router.Register(a.score)
	a.router.Register(a.comp)
	a.router.Register(a.spawner)
	a.router.Register(a.recorder)
	a.router.Register(a.board)
	a.router.Register(a.sound)
	return a, nil
}

// Start begins a match with the autopilot shooting for the player
func (a *App) Start() {
	a.comp.Start()
	a.sched.Start("autopilot", a.autopilot.Task())
}

// Step advances the timeline by dt; false once the match is over
func (a *App) Step(dt time.Duration) bool {
	a.sched.Advance(dt)
	return a.comp.Running()
}

// RunHeadless plays a whole match at fixed dt without sleeping
func (a *App) RunHeadless(dt time.Duration) (match.Result, error) {
	a.Start()
	limit := int(time.Duration(a.cfg.Match.Duration)*time.Second/dt) + 2
	engine.RunFixed(a.Step, dt, limit)

	res, ok := a.comp.Result()
	if !ok {
		return match.Result{}, fmt.Errorf("match did not finish within %d steps", limit)
	}
	return res, nil
}

// Summary prints the result and per-competitor statistics
func (a *App) Summary(w io.Writer, res match.Result) {
	fmt.Fprintf(w, "match %s (seed %d)\n", res.MatchID, a.seed)
	for _, c := range core.Competitors {
		s := a.recorder.Summary(c)
		fmt.Fprintf(w, "  %-6s %3d pts  %2d/%-2d made  %2d perfect  %2d bank  %d fire  +%d bonus  best streak %d\n",
			c, res.Scores[c], s.Makes, s.Shots, s.Perfects, s.Banks, s.FireActivations, s.BonusPoints, s.BestStreak)
	}
	fmt.Fprintf(w, "  %s\n", render.Banner(res.Winner))
}
