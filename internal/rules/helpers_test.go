package rules

import (
	"fmt"
	"testing"

	"trilane/internal/score"
	"trilane/internal/state"
)

var testCardSeq int

// testCard mints a numeric card with a unique id. Values 2..10 only.
func testCard(v int) state.Card {
	testCardSeq++
	return state.Card{
		ID:   fmt.Sprintf("tc-%d-%d", v, testCardSeq),
		Suit: state.SuitSpade,
		Rank: state.Rank(fmt.Sprintf("%d", v)),
	}
}

// testLane builds a lane from numeric card values with a consistent total.
func testLane(vals ...int) state.Lane {
	l := state.Lane{Cards: []state.Card{}}
	for _, v := range vals {
		l.Cards = append(l.Cards, testCard(v))
	}
	l.Total = score.Total(l.Cards)
	return l
}

// emptySupplyState builds a two-player state with no deck and no queue, so
// tests control the card economy entirely through the lanes.
func emptySupplyState(turn int) *state.MatchState {
	st := &state.MatchState{
		Deck:       []state.Card{},
		Queue:      []state.Card{},
		TurnNumber: turn,
	}
	st.Players[0] = testPlayer("player1")
	st.Players[1] = testPlayer("player2")
	return st
}

// queueState builds a state with an explicit queue and deck.
func queueState(turn int, queue, deck []state.Card) *state.MatchState {
	st := emptySupplyState(turn)
	st.Queue = queue
	st.Deck = deck
	return st
}

func testPlayer(id string) state.Player {
	p := state.Player{ID: id, Energy: state.InitialEnergy}
	for i := range p.Lanes {
		p.Lanes[i] = testLane()
	}
	return p
}

func turnOf(a1, a2 state.Action) state.Turn {
	return state.Turn{
		{Player: "player1", Action: a1},
		{Player: "player2", Action: a2},
	}
}

func mustCheck(t *testing.T, st *state.MatchState) {
	t.Helper()
	if err := CheckState(st); err != nil {
		t.Fatalf("invariant violation: %v", err)
	}
}

func actionsEqual(t *testing.T, got []state.Action, want ...state.Action) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d actions %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("action %d = %v, want %v (full list %v)", i, got[i], want[i], got)
		}
	}
}
