// Package diag classifies finished matches for the analytics layer. All
// functions are pure over a terminal state (plus, optionally, the action
// log); nothing here feeds back into the engine.
package diag

import (
	"fmt"
	"math"

	"trilane/internal/rules"
	"trilane/internal/state"
)

type DrawReason string

const (
	ReasonBothTwentyOne DrawReason = "both-21"
	ReasonAllLanesTied  DrawReason = "all-lanes-tied"
	ReasonOneWinEach    DrawReason = "one-win-each"
	ReasonMutualBust    DrawReason = "mutual-bust"
	ReasonStalemate     DrawReason = "stalemate"
)

// AnalyzeDraw classifies a terminal draw by structural pattern. The rules
// are ordered and the first match wins. Calling it on a live match or a
// decided one is a caller error.
func AnalyzeDraw(st *state.MatchState) (DrawReason, error) {
	if !st.GameOver {
		return "", fmt.Errorf("analyze draw: match still live")
	}
	if st.Winner != "" {
		return "", fmt.Errorf("analyze draw: match was won by %s", st.Winner)
	}

	wins := [2]int{}
	ties := 0
	for i := 0; i < state.NumLanes; i++ {
		switch rules.LaneOutcome(st.Players[0].Lanes[i], st.Players[1].Lanes[i]) {
		case 1:
			wins[0]++
		case -1:
			wins[1]++
		default:
			ties++
		}
	}

	switch {
	case hasStanding21(&st.Players[0]) && hasStanding21(&st.Players[1]):
		return ReasonBothTwentyOne, nil
	case ties == state.NumLanes:
		return ReasonAllLanesTied, nil
	case wins[0] == 1 && wins[1] == 1:
		return ReasonOneWinEach, nil
	case bustedLanes(&st.Players[0]) >= 2 && bustedLanes(&st.Players[1]) >= 2:
		return ReasonMutualBust, nil
	default:
		return ReasonStalemate, nil
	}
}

func hasStanding21(p *state.Player) bool {
	for i := range p.Lanes {
		if p.Lanes[i].Total == 21 && !p.Lanes[i].Busted {
			return true
		}
	}
	return false
}

func bustedLanes(p *state.Player) int {
	n := 0
	for i := range p.Lanes {
		if p.Lanes[i].Busted {
			n++
		}
	}
	return n
}

// DecisivenessScore rates how committed a player's final position is, 0-100:
// locked lanes (24), best open lane's proximity to 21 (26), locked lane wins
// (30), and energy spent (20). Unknown ids score 0.
func DecisivenessScore(st *state.MatchState, playerID string) int {
	me := st.PlayerIndex(playerID)
	if me < 0 {
		return 0
	}
	p := &st.Players[me]
	opp := &st.Players[state.Opponent(me)]

	var v float64

	locked := 0
	lockedWins := 0
	bestOpen := -1
	for i := range p.Lanes {
		l := p.Lanes[i]
		if l.Locked {
			locked++
			if rules.LaneOutcome(l, opp.Lanes[i]) == 1 {
				lockedWins++
			}
			continue
		}
		if !l.Busted && l.Total > bestOpen {
			bestOpen = l.Total
		}
	}
	v += 8 * float64(locked)
	if bestOpen < 0 {
		// Nothing left to play: fully committed.
		v += 26
	} else {
		v += float64(bestOpen) * 26 / 21
	}
	v += 10 * float64(lockedWins)

	spent := state.InitialEnergy - p.Energy
	if spent < 0 {
		spent = 0
	}
	v += 20 * float64(spent) / state.InitialEnergy

	out := int(math.Round(v))
	if out < 0 {
		out = 0
	}
	if out > 100 {
		out = 100
	}
	return out
}

// MissedWinOpportunities counts open lanes the player could plausibly have
// converted: open lanes at 17-20 where the opponent locked lower, plus open
// lanes left at 19-20. Capped at the lane count.
func MissedWinOpportunities(st *state.MatchState, playerID string) int {
	me := st.PlayerIndex(playerID)
	if me < 0 {
		return 0
	}
	p := &st.Players[me]
	opp := &st.Players[state.Opponent(me)]

	n := 0
	for i := range p.Lanes {
		l := p.Lanes[i]
		if l.Locked || l.Busted {
			continue
		}
		ol := opp.Lanes[i]
		if l.Total >= 17 && l.Total <= 20 && ol.Locked && !ol.Busted && ol.Total < l.Total {
			n++
		}
		if l.Total >= 19 && l.Total <= 20 {
			n++
		}
	}
	if n > state.NumLanes {
		n = state.NumLanes
	}
	return n
}

// WasForcedDraw reports whether the player had no path left: every lane
// locked, no energy with no viable open lane, or the card supply exhausted.
func WasForcedDraw(st *state.MatchState, playerID string) bool {
	me := st.PlayerIndex(playerID)
	if me < 0 {
		return false
	}
	p := &st.Players[me]

	if len(st.Deck) == 0 && len(st.Queue) == 0 {
		return true
	}

	allLocked := true
	viable := false
	for i := range p.Lanes {
		l := p.Lanes[i]
		if !l.Locked {
			allLocked = false
			if !l.Busted && l.Total < 21 {
				viable = true
			}
		}
	}
	if allLocked {
		return true
	}
	return p.Energy == 0 && !viable
}
