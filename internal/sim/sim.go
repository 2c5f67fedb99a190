// Package sim drives agent-vs-agent matches in batch for balance analysis.
// It is a consumer of the engine, never a rule authority: every move goes
// through the agent and every transition through Resolve.
package sim

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"trilane/internal/agent"
	"trilane/internal/diag"
	"trilane/internal/rng"
	"trilane/internal/rules"
	"trilane/internal/state"
)

type Config struct {
	Games    int    `yaml:"games"`
	Seed     uint32 `yaml:"seed"`
	P1       string `yaml:"p1"`
	P2       string `yaml:"p2"`
	MaxTurns int    `yaml:"maxTurns"`
	Workers  int    `yaml:"workers"`
}

func (c *Config) normalize() (p1, p2 agent.Difficulty, err error) {
	if c.Games <= 0 {
		c.Games = 100
	}
	if c.MaxTurns <= 0 {
		c.MaxTurns = 200
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if p1, err = agent.ParseDifficulty(c.P1); err != nil {
		return "", "", fmt.Errorf("p1: %w", err)
	}
	if p2, err = agent.ParseDifficulty(c.P2); err != nil {
		return "", "", fmt.Errorf("p2: %w", err)
	}
	return p1, p2, nil
}

// MatchResult is the outcome of one self-play game.
type MatchResult struct {
	Seed     uint32            `json:"seed"`
	Finished bool              `json:"finished"`
	Winner   string            `json:"winner,omitempty"`
	Turns    int               `json:"turns"`
	Draw     *diag.Diagnostics `json:"draw,omitempty"`
}

// RunMatch plays a single seeded match to termination or the turn cap.
func RunMatch(seed uint32, p1d, p2d agent.Difficulty, maxTurns int) (MatchResult, error) {
	st := state.NewMatch(seed, "player1", "player2")
	var log []state.Submission

	for !st.GameOver && st.TurnNumber <= maxTurns {
		a1, err := agent.Choose(st, "player1", p1d)
		if err != nil {
			return MatchResult{}, fmt.Errorf("seed %d turn %d: %w", seed, st.TurnNumber, err)
		}
		a2, err := agent.Choose(st, "player2", p2d)
		if err != nil {
			return MatchResult{}, fmt.Errorf("seed %d turn %d: %w", seed, st.TurnNumber, err)
		}
		turn := state.Turn{
			{Player: "player1", Action: a1},
			{Player: "player2", Action: a2},
		}
		st = rules.Resolve(st, turn)
		log = append(log, turn[0], turn[1])
	}

	res := MatchResult{
		Seed:     seed,
		Finished: st.GameOver,
		Winner:   st.Winner,
		Turns:    st.TurnNumber - 1,
	}
	if st.GameOver && st.Winner == "" {
		d, err := diag.DrawDiagnostics(st, "player1", "player2", log)
		if err != nil {
			return MatchResult{}, fmt.Errorf("seed %d: %w", seed, err)
		}
		res.Draw = &d
	}
	return res, nil
}

// Stats aggregates a batch.
type Stats struct {
	Games      int                 `json:"games"`
	P1Wins     int                 `json:"p1Wins"`
	P2Wins     int                 `json:"p2Wins"`
	Draws      int                 `json:"draws"`
	Unfinished int                 `json:"unfinished"`
	AvgTurns   float64             `json:"avgTurns"`
	DrawStats  diag.AggregateStats `json:"drawStats"`
}

// RunBatch fans the configured number of games out over a bounded worker
// pool. Per-game seeds derive from the batch seed through the engine's own
// PRNG, so a batch is reproducible end to end (modulo the Easy tier's host
// randomness).
func RunBatch(ctx context.Context, cfg Config) (Stats, error) {
	p1d, p2d, err := cfg.normalize()
	if err != nil {
		return Stats{}, err
	}

	seeds := make([]uint32, cfg.Games)
	r := rng.New(cfg.Seed)
	for i := range seeds {
		seeds[i] = r.Uint32()
	}

	results := make([]MatchResult, cfg.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range seeds {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := RunMatch(seeds[i], p1d, p2d, cfg.MaxTurns)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return aggregate(results), nil
}

func aggregate(results []MatchResult) Stats {
	stats := Stats{Games: len(results)}
	var turns int
	var draws []diag.Diagnostics
	for _, res := range results {
		turns += res.Turns
		if !res.Finished {
			stats.Unfinished++
			continue
		}
		switch res.Winner {
		case "player1":
			stats.P1Wins++
		case "player2":
			stats.P2Wins++
		default:
			stats.Draws++
			if res.Draw != nil {
				draws = append(draws, *res.Draw)
			}
		}
	}
	if len(results) > 0 {
		stats.AvgTurns = float64(turns) / float64(len(results))
	}
	stats.DrawStats = diag.AggregateDrawStats(draws)
	return stats
}
