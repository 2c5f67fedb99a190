// Package match is the store-and-forward envelope for asynchronous play.
// The envelope carries only the seed, the player ids, the append-only action
// log, and the half-turn in flight; the current position is always
// reconstructed by replay, never cached.
package match

import (
	"fmt"

	"trilane/internal/replay"
	"trilane/internal/rules"
	"trilane/internal/state"
)

// Result codes for Apply. Recoverable rejections come back as values, not
// errors, so the transport above can relay them without unwrapping.
const (
	CodeOK            uint32 = 0
	CodeGameOver      uint32 = 1
	CodeNotYourTurn   uint32 = 2
	CodeIllegalAction uint32 = 3
)

type Envelope struct {
	MatchID string `json:"matchId"`
	Seed    uint32 `json:"seed"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`

	// Log holds completed turn pairs only, in canonical (player1, player2)
	// order. An in-flight half-turn lives in Pending, never in the log.
	Log       []state.Submission `json:"log"`
	Pending   *state.Submission  `json:"pending,omitempty"`
	NextMover string             `json:"nextMover"`
}

// ApplyResult reports one Apply call. On any non-zero code the envelope is
// the input, unchanged; an illegal action additionally carries the legal set.
type ApplyResult struct {
	Code     uint32         `json:"code"`
	Log      string         `json:"log,omitempty"`
	Envelope Envelope       `json:"envelope"`
	Legal    []state.Action `json:"legal,omitempty"`
}

// Create opens a fresh envelope. Player 1 moves first.
func Create(matchID, p1ID, p2ID string, seed uint32) Envelope {
	return Envelope{
		MatchID:   matchID,
		Seed:      seed,
		Player1:   p1ID,
		Player2:   p2ID,
		Log:       []state.Submission{},
		NextMover: p1ID,
	}
}

// Replay reconstructs the current state from the seed and the completed log.
// The pending half-turn does not contribute.
func Replay(env Envelope) *state.MatchState {
	initial := state.NewMatch(env.Seed, env.Player1, env.Player2)
	return replay.Run(initial, replay.Turns(env.Log))
}

// Apply validates and records one submission. The call is transactional: any
// rejection returns the input envelope untouched. A first submission parks
// in Pending and hands the move to the opponent; the completing submission
// resolves the pair into the log and hands the next turn back to player 1.
func Apply(env Envelope, playerID string, a state.Action) ApplyResult {
	cur := Replay(env)

	if cur.GameOver {
		return ApplyResult{Code: CodeGameOver, Log: "game over", Envelope: env}
	}
	if playerID != env.NextMover {
		return ApplyResult{
			Code:     CodeNotYourTurn,
			Log:      fmt.Sprintf("not your turn: waiting for %s", env.NextMover),
			Envelope: env,
		}
	}
	if !rules.IsLegal(cur, playerID, a) {
		return ApplyResult{
			Code:     CodeIllegalAction,
			Log:      fmt.Sprintf("illegal action %s for %s", a, playerID),
			Envelope: env,
			Legal:    rules.LegalActions(cur, playerID),
		}
	}

	sub := state.Submission{Player: playerID, Action: a}
	out := env
	if env.Pending == nil {
		out.Pending = &sub
		out.NextMover = opponentOf(env, playerID)
		return ApplyResult{Code: CodeOK, Envelope: out}
	}

	// Second half of the turn: assemble the pair in canonical order and
	// commit it. The resolved state itself is never stored.
	first, second := *env.Pending, sub
	if first.Player != env.Player1 {
		first, second = second, first
	}
	out.Log = append(append([]state.Submission{}, env.Log...), first, second)
	out.Pending = nil
	out.NextMover = env.Player1
	return ApplyResult{Code: CodeOK, Envelope: out}
}

// Status summarizes the envelope for one player. Every field derives from
// replay.
type Status struct {
	YourTurn   bool           `json:"yourTurn"`
	WaitingFor string         `json:"waitingFor"`
	GameOver   bool           `json:"gameOver"`
	Winner     string         `json:"winner,omitempty"`
	TurnNumber int            `json:"turnNumber"`
	Legal      []state.Action `json:"legal,omitempty"`
}

func GetStatus(env Envelope, playerID string) Status {
	cur := Replay(env)
	s := Status{
		WaitingFor: env.NextMover,
		GameOver:   cur.GameOver,
		Winner:     cur.Winner,
		TurnNumber: cur.TurnNumber,
	}
	if !cur.GameOver && playerID == env.NextMover {
		s.YourTurn = true
		s.Legal = rules.LegalActions(cur, playerID)
	}
	return s
}

// Verify reports whether the envelope is a well-formed archive: identifiers
// present and distinct, an even log of canonical pairs, and a replay that
// preserves every state invariant.
func Verify(env Envelope) bool {
	if env.MatchID == "" || env.Player1 == "" || env.Player2 == "" || env.Player1 == env.Player2 {
		return false
	}
	if len(env.Log)%2 != 0 {
		return false
	}
	for i := 0; i+1 < len(env.Log); i += 2 {
		if env.Log[i].Player != env.Player1 || env.Log[i+1].Player != env.Player2 {
			return false
		}
	}

	cur := state.NewMatch(env.Seed, env.Player1, env.Player2)
	if rules.CheckState(cur) != nil {
		return false
	}
	for _, t := range replay.Turns(env.Log) {
		if cur.GameOver {
			return false
		}
		cur = rules.Resolve(cur, t)
		if rules.CheckState(cur) != nil {
			return false
		}
	}
	return true
}

func opponentOf(env Envelope, playerID string) string {
	if playerID == env.Player1 {
		return env.Player2
	}
	return env.Player1
}
