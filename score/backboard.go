package score

import (
	"time"

	"github.com/lixenwraith/shootout/event"
)

// Clock supplies the current timeline time
type Clock interface {
	Now() time.Duration
}

// Bonus is a snapshot of the backboard bonus
type Bonus struct {
	Value       int
	ActiveUntil time.Duration // Meaningful only when HasDeadline
	HasDeadline bool
}

// Backboard is the match-wide bonus for bank makes, shared by both competitors
// Written by the spawner, read by scoring at the moment of the make
type Backboard struct {
	clock  Clock
	router *event.Router
	bonus  Bonus
}

// NewBackboard creates an inactive bonus board
func NewBackboard(clock Clock, router *event.Router) *Backboard {
	return &Backboard{clock: clock, router: router}
}

// Set activates value for d; d <= 0 keeps it active until Clear
// Negative values clamp to zero, which clears the bonus
func (b *Backboard) Set(value int, d time.Duration) {
	if value <= 0 {
		b.Clear()
		return
	}
	b.bonus = Bonus{Value: value}
	if d > 0 {
		b.bonus.ActiveUntil = b.clock.Now() + d
		b.bonus.HasDeadline = true
	}
	if b.router != nil {
		b.router.Emit(event.EventBonusChanged, &event.BonusChangedPayload{Value: value, Duration: d})
	}
}

// Clear removes any active bonus
func (b *Backboard) Clear() {
	wasSet := b.bonus.Value != 0
	b.bonus = Bonus{}
	if wasSet && b.router != nil {
		b.router.Emit(event.EventBonusChanged, &event.BonusChangedPayload{})
	}
}

// Active reports whether a bonus applies at now
func (b *Backboard) Active(now time.Duration) bool {
	if b.bonus.Value <= 0 {
		return false
	}
	if b.bonus.HasDeadline && now >= b.bonus.ActiveUntil {
		return false
	}
	return true
}

// Value returns the bonus points a bank make earns at now, zero if inactive
func (b *Backboard) Value(now time.Duration) int {
	if !b.Active(now) {
		return 0
	}
	return b.bonus.Value
}

// Snapshot returns the stored bonus regardless of expiry
func (b *Backboard) Snapshot() Bonus {
	return b.bonus
}
