package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/shootout/config"
	"github.com/lixenwraith/shootout/engine"
	"github.com/lixenwraith/shootout/parameter"
)

var (
	configFlag   = flag.String("config", "", "TOML config file")
	envFlag      = flag.String("env", ".env", "dotenv file with SHOOTOUT_* overrides")
	headlessFlag = flag.Bool("headless", false, "Simulate at fixed step without a terminal and print the result")
	durationFlag = flag.Int("duration", 0, "Match length in seconds, overrides config")
	seedFlag     = flag.Uint64("seed", 0, "Random seed, overrides config")
	policyFlag   = flag.String("policy", "", "Position rotation: wrap or exhaust")
	muteFlag     = flag.Bool("mute", false, "Disable audio cues")
	debugFlag    = flag.Bool("debug", false, "Write logs to logs/shootout.log")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "shootout: %v\n", err)
		os.Exit(2)
	}

	app, err := NewApp(cfg, log.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "shootout: %v\n", err)
		os.Exit(2)
	}

	if *headlessFlag {
		res, err := app.RunHeadless(parameter.TickInterval)
		if err != nil {
			fmt.Fprintf(os.Stderr, "shootout: %v\n", err)
			os.Exit(1)
		}
		app.Summary(os.Stdout, res)
		return
	}

	if err := runTerminal(app); err != nil {
		fmt.Fprintf(os.Stderr, "shootout: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, the TOML file, dotenv, environment and flags
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := config.LoadDotEnv(*envFlag); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if *durationFlag > 0 {
		cfg.Match.Duration = *durationFlag
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if *policyFlag != "" {
		cfg.Match.Policy = *policyFlag
	}
	if *muteFlag || *headlessFlag {
		cfg.Audio.Enabled = false
	}
	return cfg, cfg.Validate()
}

// runTerminal plays one match in real time with the scoreboard on screen
func runTerminal(app *App) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mSHOOTOUT CRASHED: %v\x1b[0m\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	if err := app.sound.Open(); err != nil {
		log.Printf("audio unavailable: %v (continuing without audio)", err)
	}
	defer app.sound.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Input polling only watches for quit keys and resizes
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					cancel()
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	app.Start()
	ended := false
	var endedAt time.Duration
	step := func(dt time.Duration) bool {
		running := app.Step(dt)
		app.board.Draw(screen)
		screen.Show()
		if !running && !ended {
			ended = true
			endedAt = app.sched.Now()
		}
		// Keep the final banner up briefly before exiting
		return !ended || app.sched.Now()-endedAt < 3*time.Second
	}

	clock := engine.NewClockScheduler(parameter.TickInterval, step, log.Default())
	if err := clock.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	app.comp.Stop()

	screen.Fini()
	if res, ok := app.comp.Result(); ok {
		app.Summary(os.Stdout, res)
	}
	return nil
}
