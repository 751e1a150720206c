package models

import "fmt"

// Hand is the ordered set of cards a seat still holds.
type Hand []Card

func (h Hand) Contains(c Card) bool {
	for _, held := range h {
		if held == c {
			return true
		}
	}
	return false
}

// Remove takes one card out of the hand, compacting in place.
// Returns false if the card was not held.
func (h *Hand) Remove(c Card) bool {
	for i, held := range *h {
		if held == c {
			*h = append((*h)[:i], (*h)[i+1:]...)
			return true
		}
	}
	return false
}

func (h Hand) HasSuit(s Suit) bool {
	for _, held := range h {
		if held.Suit == s {
			return true
		}
	}
	return false
}

// Encode renders the hand as concatenated rank+suit tokens with no
// separators, in held order.
func (h Hand) Encode() string {
	encoded := make([]byte, 0, len(h)*2)
	for _, c := range h {
		encoded = append(encoded, byte(c.Rank), byte(c.Suit))
	}
	return string(encoded)
}

// ParseHand decodes an encoded hand payload back into cards.
func ParseHand(payload string) (Hand, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("hand payload has odd length %d", len(payload))
	}
	hand := make(Hand, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		card, err := ParseCard(payload[i : i+2])
		if err != nil {
			return nil, err
		}
		hand = append(hand, card)
	}
	return hand, nil
}
