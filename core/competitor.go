package core

// CompetitorID identifies one side of the contest
// Used as an index into per-competitor arrays
type CompetitorID uint8

const (
	Player CompetitorID = iota
	NPC

	// CompetitorCount is the fixed number of competitors in a match
	CompetitorCount = 2
)

// NoCompetitor marks an absent competitor, e.g. the winner of a tied match
const NoCompetitor CompetitorID = 0xFF

// Competitors lists all competitors in index order
var Competitors = [CompetitorCount]CompetitorID{Player, NPC}

func (c CompetitorID) String() string {
	switch c {
	case Player:
		return "player"
	case NPC:
		return "npc"
	case NoCompetitor:
		return "none"
	default:
		return "unknown"
	}
}

// Valid reports whether c indexes a real competitor
func (c CompetitorID) Valid() bool {
	return c < CompetitorCount
}

// Opponent returns the other competitor
func (c CompetitorID) Opponent() CompetitorID {
	if c == Player {
		return NPC
	}
	return Player
}
