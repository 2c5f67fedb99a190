package rules

import "trilane/internal/state"

// LaneOutcome compares one lane pair: +1 means a wins, -1 means b wins, 0 is
// a tie. A busted lane loses to any non-busted lane; two busts tie.
func LaneOutcome(a, b state.Lane) int {
	switch {
	case a.Busted && b.Busted:
		return 0
	case a.Busted:
		return -1
	case b.Busted:
		return 1
	case a.Total > b.Total:
		return 1
	case b.Total > a.Total:
		return -1
	default:
		return 0
	}
}

// Winner adjudicates a finished match and returns the winning player id, or
// "" for a draw. First to two lane wins takes the match; a 1-1 split with a
// tied third lane goes to the higher winning total, and everything else is a
// draw.
func Winner(st *state.MatchState) string {
	wins := [2]int{}
	winTotal := [2]int{}
	for i := 0; i < state.NumLanes; i++ {
		a := st.Players[0].Lanes[i]
		b := st.Players[1].Lanes[i]
		switch LaneOutcome(a, b) {
		case 1:
			wins[0]++
			winTotal[0] = a.Total
		case -1:
			wins[1]++
			winTotal[1] = b.Total
		}
	}

	if wins[0] >= 2 {
		return st.Players[0].ID
	}
	if wins[1] >= 2 {
		return st.Players[1].ID
	}
	if wins[0] == 1 && wins[1] == 1 {
		if winTotal[0] > winTotal[1] {
			return st.Players[0].ID
		}
		if winTotal[1] > winTotal[0] {
			return st.Players[1].ID
		}
	}
	return ""
}
