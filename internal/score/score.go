// Package score computes lane totals with Ace optimization: every Ace counts
// 11 or 1, downgrading only as many as needed to get back to 21 or below.
package score

import (
	"strconv"

	"trilane/internal/state"
)

// Total sums base values (A=11, face=10, ASH=1, numerics by face), then
// downgrades Aces one at a time while the total exceeds 21. The loop halts
// as soon as the total fits or no upgraded Ace remains, so no Ace is
// downgraded unnecessarily.
func Total(cards []state.Card) int {
	total := 0
	aces := 0
	for _, c := range cards {
		switch c.Rank {
		case state.RankAce:
			total += 11
			aces++
		case state.RankJack, state.RankQueen, state.RankKing:
			total += 10
		case state.RankAsh:
			total += 1
		default:
			n, err := strconv.Atoi(string(c.Rank))
			if err == nil {
				total += n
			}
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}
