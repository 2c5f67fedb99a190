package score

import (
	"fmt"
	"testing"

	"trilane/internal/state"
)

func cards(ranks ...state.Rank) []state.Card {
	out := make([]state.Card, 0, len(ranks))
	for i, r := range ranks {
		out = append(out, state.Card{
			ID:   fmt.Sprintf("c-%d", i),
			Suit: state.SuitSpade,
			Rank: r,
		})
	}
	return out
}

func TestTotal(t *testing.T) {
	cases := []struct {
		name  string
		cards []state.Card
		want  int
	}{
		{"empty", nil, 0},
		{"numeric", cards("2", "9"), 11},
		{"faces", cards(state.RankJack, state.RankQueen), 20},
		{"ace high", cards(state.RankAce), 11},
		{"blackjack", cards(state.RankAce, state.RankKing), 21},
		{"ace downgraded", cards(state.RankAce, "5", "10"), 16},
		{"two aces", cards(state.RankAce, state.RankAce), 12},
		{"two aces to 21", cards(state.RankAce, state.RankAce, "9"), 21},
		{"only necessary downgrades", cards(state.RankAce, state.RankAce, "8"), 20},
		{"ash", cards(state.RankAsh), 1},
		{"ash with ten", cards("10", state.RankAsh), 11},
		{"bust stays over", cards(state.RankJack, state.RankQueen, state.RankKing), 30},
		{"bust after all aces downgraded", cards(state.RankAce, state.RankAce, "10", state.RankKing), 22},
		{"twenty one exact", cards("10", "9", "2"), 21},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Total(tc.cards); got != tc.want {
				t.Fatalf("Total(%v) = %d, want %d", tc.cards, got, tc.want)
			}
		})
	}
}
