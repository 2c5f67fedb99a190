// Package codec decodes the engine's wire payloads. Everything is JSON with
// stable field names; this is also the encoding replay equality and the
// state digest are defined over.
package codec

import (
	"encoding/json"
	"fmt"

	"trilane/internal/match"
	"trilane/internal/state"
)

func validLane(lane int) bool {
	return lane >= 0 && lane < state.NumLanes
}

// DecodeAction parses and shape-checks a single action. Legality against a
// position is the rules package's business; this only rejects payloads that
// could never be legal.
func DecodeAction(b []byte) (state.Action, error) {
	var a state.Action
	if err := json.Unmarshal(b, &a); err != nil {
		return state.Action{}, fmt.Errorf("invalid action json: %w", err)
	}
	switch a.Type {
	case state.ActionTake, state.ActionStand, state.ActionBlindHit:
		if !validLane(a.Lane) {
			return state.Action{}, fmt.Errorf("%s: lane %d out of range", a.Type, a.Lane)
		}
		if a.Amount != 0 {
			return state.Action{}, fmt.Errorf("%s carries no amount", a.Type)
		}
	case state.ActionBid:
		if !validLane(a.Lane) {
			return state.Action{}, fmt.Errorf("bid: fallback lane %d out of range", a.Lane)
		}
		if a.Amount < 0 {
			return state.Action{}, fmt.Errorf("bid: negative amount %d", a.Amount)
		}
	case state.ActionBurn, state.ActionPass:
		if a.Lane != 0 || a.Amount != 0 {
			return state.Action{}, fmt.Errorf("%s carries no lane or amount", a.Type)
		}
	case "":
		return state.Action{}, fmt.Errorf("missing action.type")
	default:
		return state.Action{}, fmt.Errorf("unknown action type %q", a.Type)
	}
	return a, nil
}

// DecodeSubmission parses a (player, action) log entry.
func DecodeSubmission(b []byte) (state.Submission, error) {
	var raw struct {
		Player string          `json:"player"`
		Action json.RawMessage `json:"action"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return state.Submission{}, fmt.Errorf("invalid submission json: %w", err)
	}
	if raw.Player == "" {
		return state.Submission{}, fmt.Errorf("missing submission.player")
	}
	if len(raw.Action) == 0 {
		return state.Submission{}, fmt.Errorf("missing submission.action")
	}
	a, err := DecodeAction(raw.Action)
	if err != nil {
		return state.Submission{}, err
	}
	return state.Submission{Player: raw.Player, Action: a}, nil
}

// DecodeEnvelope parses a stored match envelope and checks its identifiers.
// Log consistency is match.Verify's business.
func DecodeEnvelope(b []byte) (match.Envelope, error) {
	var env match.Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return match.Envelope{}, fmt.Errorf("invalid envelope json: %w", err)
	}
	if env.MatchID == "" {
		return match.Envelope{}, fmt.Errorf("missing envelope.matchId")
	}
	if env.Player1 == "" || env.Player2 == "" {
		return match.Envelope{}, fmt.Errorf("missing envelope player ids")
	}
	if env.Log == nil {
		env.Log = []state.Submission{}
	}
	return env, nil
}

// EncodeState renders a state in the canonical encoding.
func EncodeState(st *state.MatchState) ([]byte, error) {
	b, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return b, nil
}

// DecodeState parses a state previously produced by EncodeState.
func DecodeState(b []byte) (*state.MatchState, error) {
	var st state.MatchState
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, fmt.Errorf("invalid state json: %w", err)
	}
	return &st, nil
}
