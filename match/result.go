package match

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/shootout/core"
)

// Result is the final standing of one match
type Result struct {
	MatchID uuid.UUID
	Scores  [core.CompetitorCount]int
	Winner  core.CompetitorID // core.NoCompetitor on tie
}

// Tie reports whether both competitors finished level
func (r Result) Tie() bool {
	return r.Winner == core.NoCompetitor
}

// decideWinner returns the higher scorer, or NoCompetitor on a tie
func decideWinner(scores [core.CompetitorCount]int) core.CompetitorID {
	for _, id := range core.Competitors {
		if scores[id] > scores[id.Opponent()] {
			return id
		}
	}
	return core.NoCompetitor
}
