package state

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"trilane/internal/rng"
)

// Boundary constants. InitialEnergy is a tunable: changing it breaks
// cross-version replay equivalence and must be versioned.
const (
	NumLanes      = 3
	NumPlayers    = 2
	QueueTarget   = 3
	InitialEnergy = 2
	BurnCost      = 1
	OverheatSet   = 2

	// A shackled lane can only be stood on at this total or above.
	ShackledStandMin = 20
)

// IsAuctionTurn reports whether the given turn number resolves bids.
func IsAuctionTurn(turn int) bool {
	return turn == 4 || turn == 8
}

type Suit string

const (
	SuitSpade   Suit = "spade"
	SuitHeart   Suit = "heart"
	SuitDiamond Suit = "diamond"
	SuitClub    Suit = "club"
	SuitNone    Suit = "none"
)

type Rank string

const (
	RankJack  Rank = "J"
	RankQueen Rank = "Q"
	RankKing  Rank = "K"
	RankAce   Rank = "A"

	// RankAsh is the synthesized consolation card minted when a take meets a
	// burn. Value 1, suit none; never present in a fresh deck.
	RankAsh Rank = "ASH"
)

// Card identity is its ID, not its rank/suit pair: two kings of spades from
// different decks are distinct entities.
type Card struct {
	ID   string `json:"id"`
	Suit Suit   `json:"suit"`
	Rank Rank   `json:"rank"`
}

// AshCard mints the consolation card for taker on the given turn. The ID
// embeds both so at most one Ash card per player per turn stays unique
// within any replay.
func AshCard(turn int, taker string) Card {
	return Card{
		ID:   fmt.Sprintf("ash-turn%d-%s", turn, taker),
		Suit: SuitNone,
		Rank: RankAsh,
	}
}

type Lane struct {
	Cards  []Card `json:"cards"`
	Total  int    `json:"total"`
	Locked bool   `json:"locked"`
	Busted bool   `json:"busted"`

	// Shackled suspends the auto-lock at 21 and raises the stand threshold;
	// HasBeenShackled is monotonic and blocks a second void stone.
	Shackled        bool `json:"shackled"`
	HasBeenShackled bool `json:"hasBeenShackled"`
}

type Player struct {
	ID       string         `json:"id"`
	Energy   int            `json:"energy"`
	Overheat int            `json:"overheat"`
	Lanes    [NumLanes]Lane `json:"lanes"`
}

// MatchState is the full, mutually visible game position. Values returned by
// the engine are never mutated in place; every transition yields a fresh
// value via Clone.
type MatchState struct {
	Deck       []Card             `json:"deck"`
	Queue      []Card             `json:"queue"`
	Players    [NumPlayers]Player `json:"players"`
	TurnNumber int                `json:"turnNumber"`
	GameOver   bool               `json:"gameOver"`
	Winner     string             `json:"winner,omitempty"`
}

var suits = [4]Suit{SuitSpade, SuitHeart, SuitDiamond, SuitClub}

var ranks = [13]Rank{
	"2", "3", "4", "5", "6", "7", "8", "9", "10",
	RankJack, RankQueen, RankKing, RankAce,
}

// NewDeck returns the 52-card deck in its fixed enumeration order: suits
// spade, heart, diamond, club, ranks 2..A within each suit. Identifiers are
// "<suit>-<rank>-<index>" with the global index 0..51.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range suits {
		for _, r := range ranks {
			deck = append(deck, Card{
				ID:   fmt.Sprintf("%s-%s-%d", s, r, len(deck)),
				Suit: s,
				Rank: r,
			})
		}
	}
	return deck
}

// NewShuffledDeck shuffles the fixed enumeration with a seeded Fisher-Yates
// walk from the last index down to 1.
func NewShuffledDeck(seed uint32) []Card {
	deck := NewDeck()
	r := rng.New(seed)
	for i := len(deck) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}

// NewMatch constructs the initial state for a seed: the first three shuffled
// cards form the visible queue, the rest stay face-down in the deck.
func NewMatch(seed uint32, p1ID, p2ID string) *MatchState {
	deck := NewShuffledDeck(seed)
	st := &MatchState{
		Queue:      deck[:QueueTarget],
		Deck:       deck[QueueTarget:],
		TurnNumber: 1,
	}
	st.Players[0] = newPlayer(p1ID)
	st.Players[1] = newPlayer(p2ID)
	return st
}

func newPlayer(id string) Player {
	p := Player{ID: id, Energy: InitialEnergy}
	for i := range p.Lanes {
		p.Lanes[i].Cards = []Card{}
	}
	return p
}

// PlayerIndex returns the index of the player with the given id, or -1.
func (s *MatchState) PlayerIndex(id string) int {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// Opponent returns the index of the other player.
func Opponent(idx int) int {
	return 1 - idx
}

// Clone returns a deep copy. Resolution and agent lookahead run on clones so
// the caller's value is never observable mid-transition.
func (s *MatchState) Clone() *MatchState {
	// Empty slices stay empty (not nil) so the copy is structurally equal to
	// the original and encodes identically.
	copyCards := func(c []Card) []Card {
		if c == nil {
			return nil
		}
		return append(make([]Card, 0, len(c)), c...)
	}
	out := &MatchState{
		Deck:       copyCards(s.Deck),
		Queue:      copyCards(s.Queue),
		TurnNumber: s.TurnNumber,
		GameOver:   s.GameOver,
		Winner:     s.Winner,
	}
	for i := range s.Players {
		out.Players[i] = s.Players[i]
		for l := range s.Players[i].Lanes {
			out.Players[i].Lanes[l].Cards = copyCards(s.Players[i].Lanes[l].Cards)
		}
	}
	return out
}

// Digest is a deterministic sha256 over the canonical JSON encoding. The
// state holds no maps, so encoding/json output is stable and two states are
// equal iff their digests match.
func (s *MatchState) Digest() ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	sum := sha256.Sum256(b)
	return sum[:], nil
}
