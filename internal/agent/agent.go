// Package agent chooses legal actions at three difficulty tiers. Medium and
// Hard are pure functions of the position; Easy is the one place in the core
// that touches a non-seeded random source, and exists to stress legality.
package agent

import (
	"fmt"
	"math/rand"
	"sort"

	"trilane/internal/rules"
	"trilane/internal/state"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty maps a config string to a tier.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case Easy, Medium, Hard:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Choose returns a legal action for the player. An empty legal set on a
// live state is an engine-contract breach and comes back as an error.
func Choose(st *state.MatchState, playerID string, d Difficulty) (state.Action, error) {
	legal := rules.LegalActions(st, playerID)
	if len(legal) == 0 {
		if st.GameOver {
			return state.Action{}, fmt.Errorf("choose: game over")
		}
		return state.Action{}, fmt.Errorf("choose: no legal actions for %s on a live state (engine bug)", playerID)
	}
	if len(legal) == 1 {
		return legal[0], nil
	}

	switch d {
	case Easy:
		return legal[rand.Intn(len(legal))], nil
	case Medium:
		idx := st.PlayerIndex(playerID)
		scores := make([]float64, len(legal))
		for i, a := range legal {
			scores[i] = actionScore(st, idx, a)
		}
		return pickBest(playerID, legal, scores), nil
	case Hard:
		idx := st.PlayerIndex(playerID)
		opp := state.Opponent(idx)
		oppID := st.Players[opp].ID
		oppLegal := rules.LegalActions(st, oppID)
		scores := make([]float64, len(legal))
		for i, a := range legal {
			scores[i] = worstCase(st, idx, a, oppID, oppLegal)
		}
		return pickBest(playerID, legal, scores), nil
	default:
		return state.Action{}, fmt.Errorf("unknown difficulty %q", d)
	}
}

// worstCase resolves the candidate against every opponent reply and keeps
// the minimum evaluation: two-ply minimax.
func worstCase(st *state.MatchState, me int, a state.Action, oppID string, oppLegal []state.Action) float64 {
	turn := state.Turn{}
	turn[me] = state.Submission{Player: st.Players[me].ID, Action: a}
	worst := 0.0
	for i, b := range oppLegal {
		turn[state.Opponent(me)] = state.Submission{Player: oppID, Action: b}
		child := rules.Resolve(st, turn)
		v := evaluate(child, me)
		if i == 0 || v < worst {
			worst = v
		}
	}
	return worst
}

// pickBest applies the deterministic tie-break: among max-scoring candidates
// sorted by (type name, lane, amount), the first mover takes the first and
// the second mover the last. The asymmetry breaks mirror-match spirals.
func pickBest(playerID string, legal []state.Action, scores []float64) state.Action {
	best := scores[0]
	for _, s := range scores[1:] {
		if s > best {
			best = s
		}
	}
	top := make([]state.Action, 0, len(legal))
	for i, a := range legal {
		if scores[i] == best {
			top = append(top, a)
		}
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Type != top[j].Type {
			return top[i].Type < top[j].Type
		}
		if top[i].Lane != top[j].Lane {
			return top[i].Lane < top[j].Lane
		}
		return top[i].Amount < top[j].Amount
	})
	if playerID == "player1" || playerID < "player2" {
		return top[0]
	}
	return top[len(top)-1]
}
