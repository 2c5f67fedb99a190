package diag

import (
	"trilane/internal/rules"
	"trilane/internal/state"
)

// Metrics is the per-player slice of a draw post-mortem.
type Metrics struct {
	ContestableLanes int `json:"contestableLanes"`
	EnergyRemaining  int `json:"energyRemaining"`
	ForcedPasses     int `json:"forcedPasses"`
	WinThreats       int `json:"winThreats"`
}

// DecisivenessMetrics derives the per-player counters. ForcedPasses needs
// the action log and is zero without one.
func DecisivenessMetrics(st *state.MatchState, playerID string, log []state.Submission) Metrics {
	me := st.PlayerIndex(playerID)
	if me < 0 {
		return Metrics{}
	}
	p := &st.Players[me]
	opp := &st.Players[state.Opponent(me)]

	m := Metrics{EnergyRemaining: p.Energy}
	for i := range p.Lanes {
		l := p.Lanes[i]
		if !l.Locked && !l.Busted {
			m.ContestableLanes++
		}
		if !l.Busted && l.Total >= 17 && l.Total <= 21 && rules.LaneOutcome(l, opp.Lanes[i]) >= 0 {
			m.WinThreats++
		}
	}
	for _, sub := range log {
		if sub.Player == playerID && sub.Action.Type == state.ActionPass {
			m.ForcedPasses++
		}
	}
	return m
}

// Diagnostics is one draw's classification plus both players' metrics.
type Diagnostics struct {
	Reason DrawReason `json:"reason"`
	P1     Metrics    `json:"p1"`
	P2     Metrics    `json:"p2"`
}

// DrawDiagnostics runs the full post-mortem on a terminal draw.
func DrawDiagnostics(st *state.MatchState, p1ID, p2ID string, log []state.Submission) (Diagnostics, error) {
	reason, err := AnalyzeDraw(st)
	if err != nil {
		return Diagnostics{}, err
	}
	return Diagnostics{
		Reason: reason,
		P1:     DecisivenessMetrics(st, p1ID, log),
		P2:     DecisivenessMetrics(st, p2ID, log),
	}, nil
}

// AggregateStats summarizes a batch of draws: counts by reason and the mean
// of each metric, where every draw contributes the average of its two
// players.
type AggregateStats struct {
	Draws           int                `json:"draws"`
	CountsByReason  map[DrawReason]int `json:"countsByReason"`
	AvgContestable  float64            `json:"avgContestableLanes"`
	AvgEnergy       float64            `json:"avgEnergyRemaining"`
	AvgForcedPasses float64            `json:"avgForcedPasses"`
	AvgWinThreats   float64            `json:"avgWinThreats"`
}

func AggregateDrawStats(list []Diagnostics) AggregateStats {
	out := AggregateStats{
		Draws:          len(list),
		CountsByReason: map[DrawReason]int{},
	}
	if len(list) == 0 {
		return out
	}
	for _, d := range list {
		out.CountsByReason[d.Reason]++
		out.AvgContestable += mean(d.P1.ContestableLanes, d.P2.ContestableLanes)
		out.AvgEnergy += mean(d.P1.EnergyRemaining, d.P2.EnergyRemaining)
		out.AvgForcedPasses += mean(d.P1.ForcedPasses, d.P2.ForcedPasses)
		out.AvgWinThreats += mean(d.P1.WinThreats, d.P2.WinThreats)
	}
	n := float64(len(list))
	out.AvgContestable /= n
	out.AvgEnergy /= n
	out.AvgForcedPasses /= n
	out.AvgWinThreats /= n
	return out
}

func mean(a, b int) float64 {
	return float64(a+b) / 2
}
