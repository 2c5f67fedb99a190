package rules

import (
	"testing"

	"trilane/internal/state"
)

func TestResolve_TakeVsTake(t *testing.T) {
	st := state.NewMatch(42, "player1", "player2")
	front := st.Queue[0]
	secondInQueue := st.Queue[1]
	deckTop := st.Deck[0]

	next := Resolve(st, turnOf(state.Take(0), state.Take(0)))
	mustCheck(t, next)

	for i := range next.Players {
		lane := next.Players[i].Lanes[0]
		if len(lane.Cards) != 1 || lane.Cards[0].ID != front.ID {
			t.Fatalf("player %d lane 0 = %+v, want the front card %q", i, lane.Cards, front.ID)
		}
		if next.Players[i].Energy != state.InitialEnergy {
			t.Fatalf("player %d energy changed to %d", i, next.Players[i].Energy)
		}
	}
	if len(next.Queue) != 3 {
		t.Fatalf("queue not refilled: %d cards", len(next.Queue))
	}
	if next.Queue[0].ID != secondInQueue.ID {
		t.Fatalf("queue did not shift: front is %q", next.Queue[0].ID)
	}
	if next.Queue[2].ID != deckTop.ID {
		t.Fatalf("refill did not come from the deck top")
	}
	if len(next.Deck) != 48 {
		t.Fatalf("deck has %d cards, want 48", len(next.Deck))
	}
	if next.TurnNumber != 2 || next.GameOver {
		t.Fatalf("turn %d over=%v, want 2/false", next.TurnNumber, next.GameOver)
	}

	// The input is untouched.
	if len(st.Players[0].Lanes[0].Cards) != 0 || st.TurnNumber != 1 {
		t.Fatalf("resolve mutated its input")
	}
}

func TestResolve_BurnVsBurn(t *testing.T) {
	st := state.NewMatch(42, "player1", "player2")
	front := st.Queue[0]

	next := Resolve(st, turnOf(state.Burn(), state.Burn()))
	mustCheck(t, next)

	for i := range next.Players {
		if next.Players[i].Energy != state.InitialEnergy-state.BurnCost {
			t.Fatalf("player %d energy %d, want %d", i, next.Players[i].Energy, state.InitialEnergy-state.BurnCost)
		}
		// Overheat was set to 2 and decayed once at end of turn.
		if next.Players[i].Overheat != 1 {
			t.Fatalf("player %d overheat %d, want 1", i, next.Players[i].Overheat)
		}
		for l := range next.Players[i].Lanes {
			if len(next.Players[i].Lanes[l].Cards) != 0 {
				t.Fatalf("burned card landed in a lane")
			}
		}
	}
	if len(next.Queue) != 3 {
		t.Fatalf("queue not refilled")
	}
	for _, c := range next.Queue {
		if c.ID == front.ID {
			t.Fatalf("burned card %q still visible", front.ID)
		}
	}
	for _, c := range next.Deck {
		if c.ID == front.ID {
			t.Fatalf("burned card %q back in the deck", front.ID)
		}
	}
}

func TestResolve_TakeVsBurnMintsAsh(t *testing.T) {
	st := state.NewMatch(42, "player1", "player2")

	next := Resolve(st, turnOf(state.Take(1), state.Burn()))
	mustCheck(t, next)

	lane := next.Players[0].Lanes[1]
	if len(lane.Cards) != 1 {
		t.Fatalf("taker lane holds %d cards, want 1", len(lane.Cards))
	}
	ash := lane.Cards[0]
	if ash.Rank != state.RankAsh || ash.Suit != state.SuitNone {
		t.Fatalf("expected an ash card, got %+v", ash)
	}
	if ash.ID != "ash-turn1-player1" {
		t.Fatalf("ash id %q", ash.ID)
	}
	if lane.Total != 1 {
		t.Fatalf("ash lane total %d, want 1", lane.Total)
	}

	if next.Players[0].Energy != 2 || next.Players[0].Overheat != 0 {
		t.Fatalf("taker paid: energy=%d overheat=%d", next.Players[0].Energy, next.Players[0].Overheat)
	}
	if next.Players[1].Energy != 1 {
		t.Fatalf("burner energy %d, want 1", next.Players[1].Energy)
	}
	if next.Players[1].Overheat != 1 {
		t.Fatalf("burner overheat %d after decay, want 1", next.Players[1].Overheat)
	}
	if len(next.Queue) != 3 || len(next.Deck) != 48 {
		t.Fatalf("queue/deck not consumed and refilled: %d/%d", len(next.Queue), len(next.Deck))
	}
}

func TestResolve_SoloTakeAndNonInteracting(t *testing.T) {
	st := state.NewMatch(42, "player1", "player2")
	front := st.Queue[0]

	next := Resolve(st, turnOf(state.Take(2), state.Stand(0)))
	mustCheck(t, next)

	if next.Players[0].Lanes[2].Cards[0].ID != front.ID {
		t.Fatalf("solo taker did not receive the front card")
	}
	if !next.Players[1].Lanes[0].Locked {
		t.Fatalf("stand did not lock the lane")
	}
	if len(next.Queue) != 3 {
		t.Fatalf("queue not refilled after solo take")
	}
}

func TestResolve_NeitherInteractsKeepsQueue(t *testing.T) {
	st := state.NewMatch(42, "player1", "player2")
	front := st.Queue[0]

	next := Resolve(st, turnOf(state.Stand(0), state.Stand(1)))
	mustCheck(t, next)

	if next.Queue[0].ID != front.ID {
		t.Fatalf("queue advanced without an interaction")
	}
	if len(next.Deck) != 49 {
		t.Fatalf("deck changed without an interaction")
	}
	if !next.Players[0].Lanes[0].Locked || !next.Players[1].Lanes[1].Locked {
		t.Fatalf("stands not applied")
	}
}

func TestResolve_SweepBustsAndLocks(t *testing.T) {
	st := queueState(3, []state.Card{testCard(10)}, []state.Card{testCard(2)})
	st.Players[0].Lanes[0] = testLane(10, 5) // 15 -> 25 busts
	st.Players[1].Lanes[1] = testLane(5, 6)  // 11 -> 21 locks

	next := Resolve(st, turnOf(state.Take(0), state.Take(1)))
	mustCheck(t, next)

	l0 := next.Players[0].Lanes[0]
	if !l0.Busted || !l0.Locked || l0.Total != 25 {
		t.Fatalf("bust sweep failed: %+v", l0)
	}
	l1 := next.Players[1].Lanes[1]
	if l1.Busted || !l1.Locked || l1.Total != 21 {
		t.Fatalf("21 sweep failed: %+v", l1)
	}
}

func TestResolve_ShackledLaneNoAutoLockAt21(t *testing.T) {
	st := queueState(3, []state.Card{testCard(2)}, []state.Card{testCard(9)})
	st.Players[0].Lanes[0] = testLane(10, 9) // 19 -> 21
	st.Players[0].Lanes[0].Shackled = true
	st.Players[0].Lanes[0].HasBeenShackled = true

	next := Resolve(st, turnOf(state.Take(0), state.Stand(2)))
	mustCheck(t, next)

	l := next.Players[0].Lanes[0]
	if l.Total != 21 {
		t.Fatalf("total %d, want 21", l.Total)
	}
	if l.Locked {
		t.Fatalf("shackled lane auto-locked at 21")
	}
}

func TestResolve_ShackledLaneBustsWithoutLocking(t *testing.T) {
	st := queueState(3, []state.Card{testCard(10)}, []state.Card{testCard(9)})
	st.Players[0].Lanes[0] = testLane(10, 5) // 15 -> 25
	st.Players[0].Lanes[0].Shackled = true
	st.Players[0].Lanes[0].HasBeenShackled = true

	next := Resolve(st, turnOf(state.Take(0), state.Stand(2)))
	mustCheck(t, next)

	l := next.Players[0].Lanes[0]
	if !l.Busted || l.Locked {
		t.Fatalf("shackled bust handling wrong: %+v", l)
	}
}

func TestResolve_BlindHit(t *testing.T) {
	deckTop := testCard(7)
	st := queueState(5, []state.Card{testCard(3)}, []state.Card{deckTop, testCard(4)})
	st.Players[0].Lanes[1] = testLane(5)
	st.Players[0].Lanes[1].Shackled = true
	st.Players[0].Lanes[1].HasBeenShackled = true

	next := Resolve(st, turnOf(state.BlindHit(1), state.Stand(0)))
	mustCheck(t, next)

	l := next.Players[0].Lanes[1]
	if len(l.Cards) != 2 || l.Cards[1].ID != deckTop.ID {
		t.Fatalf("blind hit did not draw the deck top: %+v", l.Cards)
	}
	if l.Total != 12 {
		t.Fatalf("blind hit total %d, want 12", l.Total)
	}
	if next.Players[0].Overheat != 1 {
		t.Fatalf("blind hitter overheat %d after decay, want 1", next.Players[0].Overheat)
	}
	// The front card is not consumed; the drawn card came off the deck.
	if len(next.Queue) != 2 {
		// One refill card moved up because the queue was short.
		t.Fatalf("queue length %d", len(next.Queue))
	}
}

func TestResolve_AuctionLoserShackled(t *testing.T) {
	st := queueState(4, []state.Card{testCard(5)}, []state.Card{testCard(6)})

	next := Resolve(st, turnOf(state.Bid(2, 0), state.Bid(1, 2)))
	mustCheck(t, next)

	if next.Players[0].Energy != 0 {
		t.Fatalf("winner paid %d, want full bid of 2", state.InitialEnergy-next.Players[0].Energy)
	}
	if next.Players[1].Energy != state.InitialEnergy {
		t.Fatalf("loser paid energy")
	}
	win := next.Players[0].Lanes[0]
	if win.Shackled || win.HasBeenShackled {
		t.Fatalf("winner's fallback lane was shackled")
	}
	lose := next.Players[1].Lanes[2]
	if !lose.Shackled || !lose.HasBeenShackled {
		t.Fatalf("loser's fallback lane not shackled: %+v", lose)
	}
}

func TestResolve_AuctionTieGoesToPlayerOne(t *testing.T) {
	st := queueState(4, []state.Card{testCard(5)}, []state.Card{testCard(6)})

	next := Resolve(st, turnOf(state.Bid(1, 1), state.Bid(1, 1)))
	mustCheck(t, next)

	if next.Players[0].Energy != 1 {
		t.Fatalf("player 1 should win the tie and pay 1, energy %d", next.Players[0].Energy)
	}
	if next.Players[1].Energy != 2 {
		t.Fatalf("player 2 should pay nothing, energy %d", next.Players[1].Energy)
	}
	if next.Players[0].Lanes[1].Shackled {
		t.Fatalf("tie winner got shackled")
	}
	if !next.Players[1].Lanes[1].Shackled {
		t.Fatalf("tie loser not shackled")
	}
}

func TestResolve_AuctionShackleUnlocksLockedLane(t *testing.T) {
	st := queueState(8, []state.Card{testCard(5)}, []state.Card{testCard(6)})
	st.Players[1].Lanes[0] = testLane(10, 8) // 18, locked by an earlier stand
	st.Players[1].Lanes[0].Locked = true

	next := Resolve(st, turnOf(state.Bid(1, 0), state.Bid(0, 0)))
	mustCheck(t, next)

	l := next.Players[1].Lanes[0]
	if l.Locked {
		t.Fatalf("void stone should unlock a locked, non-busted lane")
	}
	if !l.Shackled || !l.HasBeenShackled {
		t.Fatalf("lane not shackled: %+v", l)
	}
}

func TestResolve_AuctionSecondStoneDiscarded(t *testing.T) {
	st := queueState(8, []state.Card{testCard(5)}, []state.Card{testCard(6)})
	st.Players[1].Lanes[1].HasBeenShackled = true // shackle already spent

	next := Resolve(st, turnOf(state.Bid(1, 1), state.Bid(0, 1)))
	mustCheck(t, next)

	l := next.Players[1].Lanes[1]
	if l.Shackled {
		t.Fatalf("second void stone must be discarded")
	}
	if !l.HasBeenShackled {
		t.Fatalf("hasBeenShackled must stay set")
	}
}

func TestResolve_ForcedPassEndsMatch(t *testing.T) {
	st := emptySupplyState(12)
	// Player 1 locks two winning lanes.
	st.Players[0].Lanes[0] = testLane(10, 9) // 19
	st.Players[0].Lanes[1] = testLane(10, 8) // 18
	st.Players[0].Lanes[2] = testLane(5)
	st.Players[1].Lanes[0] = testLane(10, 7) // 17
	st.Players[1].Lanes[1] = testLane(9, 5)  // 14
	st.Players[1].Lanes[2] = testLane(5)
	for p := range st.Players {
		for l := range st.Players[p].Lanes {
			st.Players[p].Lanes[l].Locked = true
		}
	}

	actionsEqual(t, LegalActions(st, "player1"), state.Pass())
	actionsEqual(t, LegalActions(st, "player2"), state.Pass())

	next := Resolve(st, turnOf(state.Pass(), state.Pass()))
	mustCheck(t, next)

	if !next.GameOver {
		t.Fatalf("pass/pass on a dead board must end the match")
	}
	if next.Winner != "player1" {
		t.Fatalf("winner %q, want player1", next.Winner)
	}
}

func TestResolve_SupplyExhaustionEndsMatch(t *testing.T) {
	st := queueState(6, []state.Card{testCard(4)}, nil)

	next := Resolve(st, turnOf(state.Take(0), state.Take(0)))
	mustCheck(t, next)

	if len(next.Queue) != 0 || len(next.Deck) != 0 {
		t.Fatalf("supply not exhausted: queue=%d deck=%d", len(next.Queue), len(next.Deck))
	}
	if !next.GameOver {
		t.Fatalf("match must end when deck and queue are both empty")
	}
}

func TestResolve_TerminalIdempotent(t *testing.T) {
	st := emptySupplyState(20)
	st.GameOver = true
	st.Winner = "player2"

	next := Resolve(st, turnOf(state.Pass(), state.Pass()))
	if next != st {
		t.Fatalf("terminal resolve must return the input unchanged")
	}
}

func TestResolve_MissingSubmissionUnchanged(t *testing.T) {
	st := state.NewMatch(42, "player1", "player2")
	turn := state.Turn{
		{Player: "player1", Action: state.Take(0)},
		{Player: "stranger", Action: state.Take(0)},
	}
	next := Resolve(st, turn)
	if next != st {
		t.Fatalf("missing player 2 submission must leave the state unchanged")
	}
}

func TestResolve_EnergyNeverNegative(t *testing.T) {
	st := state.NewMatch(42, "player1", "player2")
	cur := st
	// Burn twice with overheat gaps in between; energy bottoms out at 0 and
	// the invariant holds throughout.
	script := []state.Turn{
		turnOf(state.Burn(), state.Take(0)),
		turnOf(state.Take(0), state.Take(0)),
		turnOf(state.Burn(), state.Take(1)),
		turnOf(state.Take(1), state.Take(1)),
	}
	for _, turn := range script {
		cur = Resolve(cur, turn)
		mustCheck(t, cur)
	}
	if cur.Players[0].Energy != 0 {
		t.Fatalf("energy %d after two burns, want 0", cur.Players[0].Energy)
	}
}
