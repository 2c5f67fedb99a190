// trilane-sim runs agent-vs-agent batches and prints an aggregate JSON
// summary. Flags override the optional YAML config file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"trilane/internal/sim"
)

func main() {
	var (
		configPath = flag.String("config", "", "optional YAML config file with batch presets")
		games      = flag.Int("games", 0, "number of games to simulate")
		seed       = flag.Uint("seed", 0, "batch seed (per-game seeds derive from it)")
		p1         = flag.String("p1", "", "player 1 difficulty (easy|medium|hard)")
		p2         = flag.String("p2", "", "player 2 difficulty (easy|medium|hard)")
		maxTurns   = flag.Int("max-turns", 0, "abort a game after this many turns")
		workers    = flag.Int("workers", 0, "concurrent games (default: NumCPU)")
	)
	flag.Parse()

	cfg := sim.Config{Games: 100, Seed: 1, P1: "medium", P2: "medium"}
	if *configPath != "" {
		b, err := os.ReadFile(*configPath)
		if err != nil {
			fatalf("read config: %v", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			fatalf("parse config: %v", err)
		}
	}
	if *games > 0 {
		cfg.Games = *games
	}
	if *seed > 0 {
		cfg.Seed = uint32(*seed)
	}
	if *p1 != "" {
		cfg.P1 = *p1
	}
	if *p2 != "" {
		cfg.P2 = *p2
	}
	if *maxTurns > 0 {
		cfg.MaxTurns = *maxTurns
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	stats, err := sim.RunBatch(context.Background(), cfg)
	if err != nil {
		fatalf("run batch: %v", err)
	}

	out, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		fatalf("encode stats: %v", err)
	}
	fmt.Println(string(out))
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
