package models

// TrickPlay records one card played into a trick and the seat that played it.
type TrickPlay struct {
	Seat int
	Card Card
}

// Trick is one round of four plays, in seating order from the leader.
// The first card played fixes the lead suit.
type Trick struct {
	Plays    []TrickPlay
	LeadSuit Suit
}

func NewTrick() *Trick {
	return &Trick{Plays: make([]TrickPlay, 0, NumSeats)}
}

func (t *Trick) AddPlay(seat int, c Card) {
	if len(t.Plays) == 0 {
		t.LeadSuit = c.Suit
	}
	t.Plays = append(t.Plays, TrickPlay{Seat: seat, Card: c})
}

func (t *Trick) IsComplete() bool {
	return len(t.Plays) == NumSeats
}

// Winner returns the seat that won the trick: the highest rank among
// the cards of the lead suit. With follow-suit enforced upstream at
// least the leader's card matches, so the fallback to the leader is
// unreachable in a correctly run game.
func (t *Trick) Winner() int {
	if len(t.Plays) == 0 {
		return -1
	}
	winner := t.Plays[0]
	for _, play := range t.Plays[1:] {
		if play.Card.Beats(winner.Card, t.LeadSuit) {
			winner = play
		}
	}
	return winner.Seat
}
