// Package rules is the single rule authority: legality enumeration,
// simultaneous-turn resolution, and match adjudication. Every other
// component (replay, async envelope, agent) defers to it.
package rules

import (
	"trilane/internal/state"
)

// LegalActions enumerates the legal actions for a player in deterministic
// order: bid (fallback-lane ascending, amount ascending), take (lane
// ascending), burn, stand (lane ascending), blind-hit (lane ascending). The
// order is load-bearing: agents tie-break on it.
//
// The list is empty only for a terminal state (or an unknown player id,
// which is a caller error). A non-terminal state with no rule-bearing action
// yields the singleton [pass].
func LegalActions(st *state.MatchState, playerID string) []state.Action {
	if st.GameOver {
		return nil
	}
	idx := st.PlayerIndex(playerID)
	if idx < 0 {
		return nil
	}
	p := &st.Players[idx]

	var out []state.Action

	if state.IsAuctionTurn(st.TurnNumber) {
		// Auction turns admit bids and nothing else.
		for lane := 0; lane < state.NumLanes; lane++ {
			if p.Lanes[lane].HasBeenShackled {
				continue
			}
			for amount := 0; amount <= p.Energy; amount++ {
				out = append(out, state.Bid(amount, lane))
			}
		}
		if len(out) == 0 {
			return []state.Action{state.Pass()}
		}
		return out
	}

	if len(st.Queue) > 0 {
		for lane := 0; lane < state.NumLanes; lane++ {
			if !p.Lanes[lane].Locked {
				out = append(out, state.Take(lane))
			}
		}
		if p.Energy >= state.BurnCost && p.Overheat == 0 {
			out = append(out, state.Burn())
		}
	}

	for lane := 0; lane < state.NumLanes; lane++ {
		l := &p.Lanes[lane]
		if l.Locked {
			continue
		}
		if l.Shackled && l.Total < state.ShackledStandMin {
			continue
		}
		out = append(out, state.Stand(lane))
	}

	if len(st.Deck) > 0 && p.Overheat == 0 {
		for lane := 0; lane < state.NumLanes; lane++ {
			l := &p.Lanes[lane]
			if l.Shackled && !l.Locked {
				out = append(out, state.BlindHit(lane))
			}
		}
	}

	if len(out) == 0 {
		return []state.Action{state.Pass()}
	}
	return out
}

// IsLegal is membership in LegalActions. Pass is legal iff it is the only
// legal action; maintaining a parallel predicate here would drift.
func IsLegal(st *state.MatchState, playerID string, a state.Action) bool {
	legal := LegalActions(st, playerID)
	if a.Type == state.ActionPass {
		return len(legal) == 1 && legal[0].Type == state.ActionPass
	}
	for _, l := range legal {
		if l.Equal(a) {
			return true
		}
	}
	return false
}
