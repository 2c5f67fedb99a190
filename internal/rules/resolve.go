package rules

import (
	"trilane/internal/score"
	"trilane/internal/state"
)

// placement describes what the interaction matrix decided for one player.
type placement struct {
	card   *state.Card
	lane   int
	cost   int
	burned bool
}

// Resolve applies one simultaneous turn and returns the next state. The
// input is never modified. Preconditions: both actions legal, both players
// present in the turn; on a missing submission the input is returned
// unchanged, and a terminal state short-circuits to itself.
//
// The step order is fixed; reordering changes the game.
func Resolve(st *state.MatchState, turn state.Turn) *state.MatchState {
	if st.GameOver {
		return st
	}

	var acts [state.NumPlayers]state.Action
	for i := range st.Players {
		found := false
		for _, sub := range turn {
			if sub.Player == st.Players[i].ID {
				acts[i] = sub.Action
				found = true
				break
			}
		}
		if !found {
			return st
		}
	}

	next := st.Clone()

	// Interaction matrix over the front queue card. Only take and burn
	// interact; stand, pass, bid, and blind-hit leave the queue alone.
	var places [state.NumPlayers]placement
	consumed := false
	if len(next.Queue) > 0 {
		front := next.Queue[0]
		taking := [2]bool{acts[0].Type == state.ActionTake, acts[1].Type == state.ActionTake}
		burning := [2]bool{acts[0].Type == state.ActionBurn, acts[1].Type == state.ActionBurn}

		switch {
		case taking[0] && taking[1]:
			// Both claim the same card; identity is deliberately shared.
			for i := 0; i < 2; i++ {
				c := front
				places[i] = placement{card: &c, lane: acts[i].Lane}
			}
			consumed = true
		case burning[0] && burning[1]:
			for i := 0; i < 2; i++ {
				places[i] = placement{cost: state.BurnCost, burned: true}
			}
			consumed = true
		case taking[0] && burning[1]:
			ash := state.AshCard(st.TurnNumber, next.Players[0].ID)
			places[0] = placement{card: &ash, lane: acts[0].Lane}
			places[1] = placement{cost: state.BurnCost, burned: true}
			consumed = true
		case burning[0] && taking[1]:
			ash := state.AshCard(st.TurnNumber, next.Players[1].ID)
			places[0] = placement{cost: state.BurnCost, burned: true}
			places[1] = placement{card: &ash, lane: acts[1].Lane}
			consumed = true
		case taking[0]:
			c := front
			places[0] = placement{card: &c, lane: acts[0].Lane}
			consumed = true
		case taking[1]:
			c := front
			places[1] = placement{card: &c, lane: acts[1].Lane}
			consumed = true
		case burning[0]:
			places[0] = placement{cost: state.BurnCost, burned: true}
			consumed = true
		case burning[1]:
			places[1] = placement{cost: state.BurnCost, burned: true}
			consumed = true
		}
	}

	// Card placement.
	for i := range places {
		if places[i].card == nil {
			continue
		}
		l := &next.Players[i].Lanes[places[i].lane]
		l.Cards = append(l.Cards, *places[i].card)
		l.Total = score.Total(l.Cards)
	}

	// Energy debits.
	for i := range places {
		next.Players[i].Energy -= places[i].cost
	}

	// Stand application.
	for i := range acts {
		if acts[i].Type == state.ActionStand {
			next.Players[i].Lanes[acts[i].Lane].Locked = true
		}
	}

	// Bust/21 sweep. Shackled lanes bust without locking and never auto-lock
	// at 21; they need an explicit stand at 20+.
	for i := range next.Players {
		for l := range next.Players[i].Lanes {
			sweepLane(&next.Players[i].Lanes[l])
		}
	}

	// Blind-hit application.
	for i := range acts {
		if acts[i].Type != state.ActionBlindHit || len(next.Deck) == 0 {
			continue
		}
		top := next.Deck[0]
		next.Deck = next.Deck[1:]
		l := &next.Players[i].Lanes[acts[i].Lane]
		l.Cards = append(l.Cards, top)
		l.Total = score.Total(l.Cards)
		if l.Total > 21 {
			l.Busted = true
			if !l.Shackled {
				l.Locked = true
			}
		}
		next.Players[i].Overheat = maxInt(next.Players[i].Overheat, state.OverheatSet)
	}

	// Bid resolution on auction turns: the higher bidder pays and keeps the
	// void stone away; the loser pays nothing and eats the shackle on their
	// declared fallback lane. Player 1 wins ties.
	if state.IsAuctionTurn(st.TurnNumber) &&
		acts[0].Type == state.ActionBid && acts[1].Type == state.ActionBid {
		winner := 0
		if acts[1].Amount > acts[0].Amount {
			winner = 1
		}
		loser := state.Opponent(winner)
		next.Players[winner].Energy -= acts[winner].Amount
		shackleLane(&next.Players[loser].Lanes[acts[loser].Lane])
	}

	// Burn overheat.
	for i := range places {
		if places[i].burned {
			next.Players[i].Overheat = maxInt(next.Players[i].Overheat, state.OverheatSet)
		}
	}

	// Queue refill.
	if consumed {
		next.Queue = next.Queue[1:]
	}
	for len(next.Queue) < state.QueueTarget && len(next.Deck) > 0 {
		next.Queue = append(next.Queue, next.Deck[0])
		next.Deck = next.Deck[1:]
	}

	// Overheat decay.
	for i := range next.Players {
		if next.Players[i].Overheat > 0 {
			next.Players[i].Overheat--
		}
	}

	next.TurnNumber++

	// End-of-match test.
	bothPassed := acts[0].Type == state.ActionPass && acts[1].Type == state.ActionPass
	if allLanesLocked(next) || (len(next.Deck) == 0 && len(next.Queue) == 0) || bothPassed {
		next.GameOver = true
		next.Winner = Winner(next)
	}

	return next
}

func sweepLane(l *state.Lane) {
	if l.Locked {
		return
	}
	if l.Total > 21 {
		l.Busted = true
		if !l.Shackled {
			l.Locked = true
		}
		return
	}
	if l.Total == 21 && !l.Shackled {
		l.Locked = true
	}
}

// shackleLane places the void stone: a second stone on the same lane is
// discarded, and a locked non-busted lane reopens as part of the transition.
func shackleLane(l *state.Lane) {
	if l.HasBeenShackled {
		return
	}
	l.Shackled = true
	l.HasBeenShackled = true
	if l.Locked && !l.Busted {
		l.Locked = false
	}
}

func allLanesLocked(st *state.MatchState) bool {
	for i := range st.Players {
		for l := range st.Players[i].Lanes {
			if !st.Players[i].Lanes[l].Locked {
				return false
			}
		}
	}
	return true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
