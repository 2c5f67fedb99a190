package rules

import (
	"fmt"

	"trilane/internal/score"
	"trilane/internal/state"
)

// CheckState verifies every data-model invariant. A failure is an engine
// bug, never a user error; the async envelope's Verify and the test harness
// call this after every transition.
func CheckState(st *state.MatchState) error {
	if st == nil {
		return fmt.Errorf("nil state")
	}
	if st.TurnNumber < 1 {
		return fmt.Errorf("turnNumber %d < 1", st.TurnNumber)
	}
	if len(st.Queue) > state.QueueTarget {
		return fmt.Errorf("queue holds %d cards, max %d", len(st.Queue), state.QueueTarget)
	}
	if st.Winner != "" {
		if !st.GameOver {
			return fmt.Errorf("winner %q set on a live match", st.Winner)
		}
		if st.PlayerIndex(st.Winner) < 0 {
			return fmt.Errorf("winner %q is not a player", st.Winner)
		}
	}

	seen := map[string]string{}
	for _, c := range st.Deck {
		if where, dup := seen[c.ID]; dup {
			return fmt.Errorf("card %q in deck and %s", c.ID, where)
		}
		seen[c.ID] = "deck"
	}
	for _, c := range st.Queue {
		if where, dup := seen[c.ID]; dup {
			return fmt.Errorf("card %q in queue and %s", c.ID, where)
		}
		seen[c.ID] = "queue"
	}

	for i := range st.Players {
		p := &st.Players[i]
		if p.ID == "" {
			return fmt.Errorf("player %d has empty id", i)
		}
		if p.Energy < 0 {
			return fmt.Errorf("player %q energy %d < 0", p.ID, p.Energy)
		}
		if p.Overheat < 0 {
			return fmt.Errorf("player %q overheat %d < 0", p.ID, p.Overheat)
		}
		for l := range p.Lanes {
			if err := checkLane(&p.Lanes[l]); err != nil {
				return fmt.Errorf("player %q lane %d: %w", p.ID, l, err)
			}
			// Lane cards must not alias the supply. A shared id across the
			// two players' lanes is fine (take-vs-take copies identity).
			for _, c := range p.Lanes[l].Cards {
				if where, dup := seen[c.ID]; dup && where != "lane" {
					return fmt.Errorf("card %q in lane and %s", c.ID, where)
				}
				seen[c.ID] = "lane"
			}
		}
	}
	return nil
}

func checkLane(l *state.Lane) error {
	if got := score.Total(l.Cards); got != l.Total {
		return fmt.Errorf("cached total %d, recomputed %d", l.Total, got)
	}
	if l.Total > 21 && !l.Busted {
		return fmt.Errorf("total %d over 21 but not busted", l.Total)
	}
	if l.Busted {
		if l.Total <= 21 {
			return fmt.Errorf("busted at total %d", l.Total)
		}
		if !l.Shackled && !l.Locked {
			return fmt.Errorf("busted, unshackled, but unlocked")
		}
	}
	if l.Total == 21 && !l.Shackled && !l.Locked {
		return fmt.Errorf("unshackled 21 must be locked")
	}
	if l.Shackled && !l.HasBeenShackled {
		return fmt.Errorf("shackled without hasBeenShackled")
	}
	return nil
}
