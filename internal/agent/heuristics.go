package agent

import (
	"trilane/internal/rules"
	"trilane/internal/score"
	"trilane/internal/state"
)

// actionScore is the Medium tier: a scalar over (state, action) with no
// lookahead. It rewards progress toward 21, exact 21s, strong stands, and
// same-lane leads; it punishes busts, weak stands, and passing.
func actionScore(st *state.MatchState, me int, a state.Action) float64 {
	p := &st.Players[me]
	opp := &st.Players[state.Opponent(me)]

	switch a.Type {
	case state.ActionTake:
		lane := p.Lanes[a.Lane]
		cards := append(append([]state.Card(nil), lane.Cards...), st.Queue[0])
		newTotal := score.Total(cards)
		if newTotal > 21 {
			return -60
		}
		v := float64(newTotal)
		if newTotal == 21 {
			v += 40
		}
		oppLane := opp.Lanes[a.Lane]
		if !oppLane.Busted && newTotal > oppLane.Total {
			v += 6
		}
		return v

	case state.ActionBurn:
		// Denial value scales with the front card.
		return 2 + float64(score.Total(st.Queue[:1]))/2

	case state.ActionStand:
		t := p.Lanes[a.Lane].Total
		var v float64
		switch {
		case t >= 20:
			v = 30 + float64(t)
		case t == 19:
			v = 24
		case t >= 17:
			v = 12
		default:
			v = -12
		}
		if rules.LaneOutcome(p.Lanes[a.Lane], opp.Lanes[a.Lane]) == 1 {
			v += 8
		}
		return v

	case state.ActionBlindHit:
		// No peeking at the deck: rate by how much room the lane has.
		t := p.Lanes[a.Lane].Total
		switch {
		case t <= 11:
			return 10
		case t <= 15:
			return 4
		case t <= 18:
			return -5
		default:
			return -20
		}

	case state.ActionBid:
		// Prefer staking over eating a shackle, and prefer sacrificing the
		// emptiest lane if it comes to that.
		fallback := p.Lanes[a.Lane]
		risk := float64(fallback.Total)
		if fallback.Locked && !fallback.Busted {
			risk += 6
		}
		return 5 + 1.5*float64(a.Amount) - risk/2

	default: // pass
		return -25
	}
}

// evaluate is the Hard tier's whole-state heuristic, from the evaluated
// player's side.
func evaluate(st *state.MatchState, me int) float64 {
	opp := state.Opponent(me)
	if st.GameOver {
		switch st.Winner {
		case st.Players[me].ID:
			return 100000
		case st.Players[opp].ID:
			return -100000
		default:
			// A draw beats a loss but aggression beats a safe draw.
			return -50
		}
	}

	var v float64
	wins, oppWins := 0, 0
	for i := 0; i < state.NumLanes; i++ {
		o := rules.LaneOutcome(st.Players[me].Lanes[i], st.Players[opp].Lanes[i])
		v += 20 * float64(o)
		if o == 1 {
			wins++
		} else if o == -1 {
			oppWins++
		}
	}
	if wins >= 2 {
		v += 500
	}
	if oppWins >= 2 {
		v -= 500
	}

	ownOpen, oppOpen := 0, 0
	for i := 0; i < state.NumLanes; i++ {
		l := st.Players[me].Lanes[i]
		if l.Busted {
			v -= 30
		} else if !l.Locked {
			ownOpen++
			v += float64(l.Total)
		}
		ol := st.Players[opp].Lanes[i]
		if !ol.Busted && !ol.Locked {
			oppOpen++
		}
	}

	v += 10 * float64(ownOpen-oppOpen)
	v += 5 * float64(st.Players[me].Energy-st.Players[opp].Energy)
	return v
}
