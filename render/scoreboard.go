package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/shootout/core"
	"github.com/lixenwraith/shootout/event"
)

const (
	meterWidth  = 20
	chargeWidth = 40
	warnSeconds = 5

	// Height is the number of rows Draw paints
	Height = 7
)

// View is the scoreboard state derived from events
type View struct {
	Scores     [core.CompetitorCount]int
	Fire       [core.CompetitorCount]float64 // [0,1]; remaining time while active
	FireActive [core.CompetitorCount]bool
	Remaining  int
	Bonus      int
	Direct     float64 // Player perfect zone, negative when unavailable
	Bank       float64
	Threshold  float64
	Ended      bool
	Winner     core.CompetitorID
	LastShot   string
}

// Scoreboard collects events into a View and draws it
// Events arrive on the game timeline; Draw may run elsewhere
type Scoreboard struct {
	mu   sync.Mutex
	view View
}

func NewScoreboard() *Scoreboard {
	return &Scoreboard{view: View{Direct: -1, Bank: -1, Winner: core.NoCompetitor}}
}

// EventTypes implements event.Handler
func (s *Scoreboard) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventMatchStarted,
		event.EventTimerTick,
		event.EventScoreChanged,
		event.EventFireChargeChanged,
		event.EventFireStateChanged,
		event.EventBonusChanged,
		event.EventPerfectZonesChanged,
		event.EventShotReleased,
		event.EventMatchEnded,
	}
}

// HandleEvent implements event.Handler
func (s *Scoreboard) HandleEvent(ev event.GameEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := &s.view

	switch p := ev.Payload.(type) {
	case *event.MatchStartedPayload:
		*v = View{Remaining: p.Duration, Direct: v.Direct, Bank: v.Bank, Threshold: v.Threshold, Winner: core.NoCompetitor}
	case *event.TimerTickPayload:
		v.Remaining = p.Remaining
	case *event.ScoreChangedPayload:
		if p.Competitor.Valid() {
			v.Scores[p.Competitor] = p.Total
		}
	case *event.FireChargePayload:
		if p.Competitor.Valid() {
			v.Fire[p.Competitor] = p.Charge
		}
	case *event.FireStatePayload:
		if p.Competitor.Valid() {
			v.FireActive[p.Competitor] = p.Active
		}
	case *event.BonusChangedPayload:
		v.Bonus = p.Value
	case *event.PerfectZonesPayload:
		if p.Competitor == core.Player {
			v.Direct, v.Bank, v.Threshold = p.Direct, p.Bank, p.Threshold
		}
	case *event.ShotReleasedPayload:
		a := p.Attempt
		label := a.Kind.String()
		if a.Perfect {
			label = "perfect " + label
		}
		v.LastShot = fmt.Sprintf("%s: %s", a.Competitor, label)
	case *event.MatchEndedPayload:
		v.Ended = true
		v.Winner = p.Winner
		v.Scores = p.Scores
		v.Bonus = 0
	}
}

// Snapshot returns a copy of the current view
func (s *Scoreboard) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Draw paints the view at the top of screen; Show is left to the caller
func (s *Scoreboard) Draw(screen tcell.Screen) {
	v := s.Snapshot()
	width, _ := screen.Size()
	base := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbText)

	for y := 0; y < Height; y++ {
		for x := 0; x < width; x++ {
			screen.SetContent(x, y, ' ', nil, base)
		}
	}

	// Row 0: scores and clock
	x := drawText(screen, 1, 0, fmt.Sprintf("PLAYER %3d", v.Scores[core.Player]), base.Foreground(RgbPlayer).Bold(true))
	clockStyle := base
	if v.Remaining <= warnSeconds && !v.Ended {
		clockStyle = base.Foreground(RgbWarning).Bold(true)
	}
	x = drawText(screen, x+3, 0, FormatClock(v.Remaining), clockStyle)
	drawText(screen, x+3, 0, fmt.Sprintf("NPC %3d", v.Scores[core.NPC]), base.Foreground(RgbNPC).Bold(true))

	// Rows 1-2: fire meters
	for i, c := range core.Competitors {
		drawFireMeter(screen, 1, 1+i, c, v.Fire[c], v.FireActive[c], base)
	}

	// Row 3: bonus badge
	if v.Bonus > 0 {
		drawText(screen, 1, 3, fmt.Sprintf("BACKBOARD +%d", v.Bonus), base.Foreground(RgbBonus).Bold(true))
	}

	// Row 4: charge bar with perfect zones
	drawChargeBar(screen, 1, 4, v.Direct, v.Bank, v.Threshold, base)

	// Row 5: last release
	if v.LastShot != "" {
		drawText(screen, 1, 5, v.LastShot, base.Foreground(RgbDim))
	}

	// Row 6: result banner
	if v.Ended {
		drawText(screen, 1, 6, Banner(v.Winner), base.Reverse(true).Bold(true))
	}
}

// FormatClock renders whole seconds as mm:ss
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Banner is the end-of-match headline
func Banner(winner core.CompetitorID) string {
	switch winner {
	case core.Player:
		return " PLAYER WINS "
	case core.NPC:
		return " NPC WINS "
	default:
		return " TIE "
	}
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func drawFireMeter(screen tcell.Screen, x, y int, c core.CompetitorID, fill float64, active bool, base tcell.Style) {
	label := fmt.Sprintf("%-6s", strings.ToUpper(c.String()))
	x = drawText(screen, x, y, label, base.Foreground(competitorColor(int(c))))

	filled := int(fill*meterWidth + 0.5)
	filled = max(0, min(filled, meterWidth))
	color := RgbFireBuilding
	if active {
		color = RgbFireActive
	}
	for i := 0; i < meterWidth; i++ {
		if i < filled {
			screen.SetContent(x+i, y, '█', nil, base.Foreground(color))
		} else {
			screen.SetContent(x+i, y, '░', nil, base.Foreground(RgbDim))
		}
	}
	if active {
		drawText(screen, x+meterWidth+1, y, "FIRE", base.Foreground(RgbFireActive).Bold(true))
	}
}

// drawChargeBar marks the direct zone 'D' and bank zone 'B' on a charge track
func drawChargeBar(screen tcell.Screen, x, y int, direct, bank, threshold float64, base tcell.Style) {
	x = drawText(screen, x, y, "CHARGE ", base)
	for i := 0; i < chargeWidth; i++ {
		screen.SetContent(x+i, y, '─', nil, base.Foreground(RgbDim))
	}

	// Approximate tolerance band around each mark
	band := int(threshold * chargeWidth / 2)
	mark := func(zone float64, r rune) {
		if zone < 0 || zone > 1 {
			return
		}
		col := ZoneColumn(zone, chargeWidth)
		for i := col - band; i <= col+band; i++ {
			if i >= 0 && i < chargeWidth {
				screen.SetContent(x+i, y, '━', nil, base.Foreground(RgbPerfect))
			}
		}
		screen.SetContent(x+col, y, r, nil, base.Foreground(RgbPerfect).Bold(true))
	}
	mark(direct, 'D')
	mark(bank, 'B')
}

// ZoneColumn maps a charge fraction to a bar cell
func ZoneColumn(zone float64, width int) int {
	col := int(zone * float64(width-1))
	return max(0, min(col, width-1))
}
