package engine

import (
	"fmt"
	"sort"
	"time"

	"rats-server/models"
)

// Table is one four-player game instance, pending while filling and
// running once the fourth seat is taken.
type Table struct {
	Name      string
	Seats     []*Seat
	CreatedAt time.Time
}

func NewTable(name string) *Table {
	return &Table{
		Name:      name,
		Seats:     make([]*Seat, 0, models.NumSeats),
		CreatedAt: time.Now(),
	}
}

func (t *Table) IsFull() bool {
	return len(t.Seats) == models.NumSeats
}

// Reseat orders the four players by ascending display name. Ties keep
// join order. Seat numbers are fixed from here on.
func (t *Table) Reseat() {
	sort.SliceStable(t.Seats, func(i, j int) bool {
		return t.Seats[i].Name < t.Seats[j].Name
	})
}

// Broadcast sends one informational line to every seat.
func (t *Table) Broadcast(text string) {
	for _, seat := range t.Seats {
		seat.SendMessage(text)
	}
}

// BroadcastExcept sends one informational line to every seat but one.
func (t *Table) BroadcastExcept(skip int, text string) {
	for i, seat := range t.Seats {
		if i != skip {
			seat.SendMessage(text)
		}
	}
}

// AnnounceTeams names the two fixed partnerships: seats 0 and 2 are
// Team 1, seats 1 and 3 are Team 2.
func (t *Table) AnnounceTeams() {
	t.Broadcast(fmt.Sprintf("Team 1: %s and %s", t.Seats[0].Name, t.Seats[2].Name))
	t.Broadcast(fmt.Sprintf("Team 2: %s and %s", t.Seats[1].Name, t.Seats[3].Name))
}

// Deal requests one deck from the shuffler, partitions it round-robin
// into four hands, transmits each hand to its owner, and announces the
// start of play. A shuffler failure is returned to the caller, which
// must treat it as fatal: there is no safe way to deal cards.
func (t *Table) Deal(shuffle models.ShuffleFunc) error {
	raw, err := shuffle()
	if err != nil {
		return fmt.Errorf("shuffler unavailable: %v", err)
	}
	deck, err := models.ParseDeck(raw)
	if err != nil {
		return fmt.Errorf("shuffler returned a bad deck: %v", err)
	}
	hands, err := models.DealHands(deck)
	if err != nil {
		return err
	}
	for i, seat := range t.Seats {
		seat.Hand = hands[i]
		seat.SendLine(models.FormatHand(seat.Hand))
	}
	t.Broadcast("Game starting")
	return nil
}

// Close releases every seat's connection.
func (t *Table) Close() {
	for _, seat := range t.Seats {
		seat.Close()
	}
}
