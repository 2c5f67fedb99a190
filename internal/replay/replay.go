// Package replay folds resolution over an action list. A (seed, turn list)
// pair is a complete match archive; the async envelope leans on that.
package replay

import (
	"bytes"
	"encoding/json"

	"trilane/internal/rules"
	"trilane/internal/state"
)

// Run applies the turns in order, stopping early once the match is over,
// and returns the final state.
func Run(initial *state.MatchState, turns []state.Turn) *state.MatchState {
	cur := initial
	for _, t := range turns {
		if cur.GameOver {
			break
		}
		cur = rules.Resolve(cur, t)
	}
	return cur
}

// RunWithHistory records every state along the way. The first element is the
// initial state; each subsequent element is the state after one resolved
// turn.
func RunWithHistory(initial *state.MatchState, turns []state.Turn) []*state.MatchState {
	history := []*state.MatchState{initial}
	cur := initial
	for _, t := range turns {
		if cur.GameOver {
			break
		}
		cur = rules.Resolve(cur, t)
		history = append(history, cur)
	}
	return history
}

// Compare reports whether two states are structurally equal. Equality is
// defined over the canonical JSON encoding, the same encoding Digest hashes.
func Compare(a, b *state.MatchState) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}

// Turns chunks a flat even-length submission log into turn pairs. The async
// log stores completed pairs in canonical order, two entries per turn; a
// trailing odd entry is dropped.
func Turns(log []state.Submission) []state.Turn {
	turns := make([]state.Turn, 0, len(log)/2)
	for i := 0; i+1 < len(log); i += 2 {
		turns = append(turns, state.Turn{log[i], log[i+1]})
	}
	return turns
}
