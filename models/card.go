package models

import "fmt"

type Suit byte
type Rank byte

const (
	Spades   Suit = 'S'
	Clubs    Suit = 'C'
	Diamonds Suit = 'D'
	Hearts   Suit = 'H'
)

const (
	Two   Rank = '2'
	Three Rank = '3'
	Four  Rank = '4'
	Five  Rank = '5'
	Six   Rank = '6'
	Seven Rank = '7'
	Eight Rank = '8'
	Nine  Rank = '9'
	Ten   Rank = 'T'
	Jack  Rank = 'J'
	Queen Rank = 'Q'
	King  Rank = 'K'
	Ace   Rank = 'A'
)

// Suits in deck order; Ranks ascending by strength.
var (
	Suits = []Suit{Spades, Clubs, Diamonds, Hearts}
	Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}
)

func (s Suit) Valid() bool {
	switch s {
	case Spades, Clubs, Diamonds, Hearts:
		return true
	}
	return false
}

func (r Rank) Valid() bool {
	return r.Value() > 0
}

// Value returns the rank's strength for trick comparisons (2 lowest, ace highest).
func (r Rank) Value() int {
	if r >= '2' && r <= '9' {
		return int(r - '0')
	}
	switch r {
	case Ten:
		return 10
	case Jack:
		return 11
	case Queen:
		return 12
	case King:
		return 13
	case Ace:
		return 14
	}
	return 0
}

type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) String() string {
	return string(c.Rank) + string(c.Suit)
}

// ParseCard parses a 2-character rank+suit token such as "TD".
func ParseCard(token string) (Card, error) {
	if len(token) != 2 {
		return Card{}, fmt.Errorf("card token must be 2 characters, got %q", token)
	}
	card := Card{Rank: Rank(token[0]), Suit: Suit(token[1])}
	if !card.Rank.Valid() {
		return Card{}, fmt.Errorf("invalid rank %q", token[0])
	}
	if !card.Suit.Valid() {
		return Card{}, fmt.Errorf("invalid suit %q", token[1])
	}
	return card, nil
}

// Beats reports whether c wins over other given the trick's lead suit.
// There is no trump suit: a card off the lead suit never wins.
func (c Card) Beats(other Card, lead Suit) bool {
	if c.Suit != lead {
		return false
	}
	if other.Suit != lead {
		return true
	}
	return c.Rank.Value() > other.Rank.Value()
}
