package models

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	// DeckSize is the number of cards in a full deck.
	DeckSize = 52
	// HandSize is the number of cards dealt to each of the four seats.
	HandSize = DeckSize / NumSeats
	// NumSeats is the number of players at a full table.
	NumSeats = 4
)

// ShuffleFunc produces a fresh random permutation of the full deck,
// encoded as a 104-character string of rank+suit tokens.
type ShuffleFunc func() (string, error)

var deckRNG = rand.New(rand.NewSource(time.Now().UnixNano()))

// ShuffledDeck is the default shuffler.
func ShuffledDeck() (string, error) {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	deckRNG.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	encoded := make([]byte, 0, DeckSize*2)
	for _, c := range cards {
		encoded = append(encoded, byte(c.Rank), byte(c.Suit))
	}
	return string(encoded), nil
}

// ParseDeck decodes a shuffler string into its 52 cards.
func ParseDeck(s string) ([]Card, error) {
	if len(s) != DeckSize*2 {
		return nil, fmt.Errorf("deck must be %d characters, got %d", DeckSize*2, len(s))
	}
	cards := make([]Card, 0, DeckSize)
	seen := make(map[Card]bool, DeckSize)
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, fmt.Errorf("deck position %d: %v", i/2, err)
		}
		if seen[card] {
			return nil, fmt.Errorf("duplicate card %s in deck", card)
		}
		seen[card] = true
		cards = append(cards, card)
	}
	return cards, nil
}

// DealHands partitions a deck into four hands by round-robin
// distribution: hand p receives deck positions p, p+4, p+8, ...
// exactly as a one-at-a-time physical deal would produce.
func DealHands(deck []Card) ([NumSeats]Hand, error) {
	var hands [NumSeats]Hand
	if len(deck) != DeckSize {
		return hands, fmt.Errorf("cannot deal from %d cards", len(deck))
	}
	for p := 0; p < NumSeats; p++ {
		hands[p] = make(Hand, 0, HandSize)
		for i := p; i < DeckSize; i += NumSeats {
			hands[p] = append(hands[p], deck[i])
		}
	}
	return hands, nil
}
