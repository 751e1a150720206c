package engine

import (
	"errors"
	"fmt"

	"rats-server/models"
)

// ErrTerminated reports that a game ended early because a seat
// disconnected during play.
var ErrTerminated = errors.New("game terminated by disconnect")

// Game runs the trick-play state machine for one full table: thirteen
// sequential tricks with ownership and follow-suit enforcement. All
// four connections are driven by the single goroutine that calls Run,
// so per-table state is never concurrently mutated.
type Game struct {
	table      *Table
	leader     int
	teamTricks [2]int
	onEvent    func(models.Event)
}

func NewGame(table *Table, onEvent func(models.Event)) *Game {
	return &Game{table: table, onEvent: onEvent}
}

// TeamTricks returns the trick counts for Team 1 and Team 2.
func (g *Game) TeamTricks() (int, int) {
	return g.teamTricks[0], g.teamTricks[1]
}

// Run plays the game to completion. Seat 0 leads the first trick; each
// later trick is led by the previous winner. Returns ErrTerminated if
// any seat disconnects mid-game.
func (g *Game) Run() error {
	for trickNum := 0; trickNum < models.HandSize; trickNum++ {
		winner, err := g.playTrick()
		if err != nil {
			return err
		}
		g.teamTricks[winner%2]++
		g.leader = winner
		g.emit(models.EventTrickComplete)
	}
	g.announceResult()
	g.sendGameOver()
	g.emit(models.EventGameComplete)
	return nil
}

// playTrick prompts each seat in order from the current leader and
// resolves the winner once all four cards are down.
func (g *Game) playTrick() (int, error) {
	trick := models.NewTrick()
	for offset := 0; offset < models.NumSeats; offset++ {
		seat := (g.leader + offset) % models.NumSeats
		card, err := g.promptForCard(seat, trick)
		if err != nil {
			g.terminate(seat)
			return -1, ErrTerminated
		}
		trick.AddPlay(seat, card)
		g.table.Seats[seat].SendLine(string(models.TagAccept))
		g.table.BroadcastExcept(seat, fmt.Sprintf("%s plays %s", g.table.Seats[seat].Name, card))
	}
	winner := trick.Winner()
	g.table.Broadcast(fmt.Sprintf("Trick won by player %d", winner))
	return winner, nil
}

// promptForCard repeats the prompt/read cycle until the seat offers a
// legal card, then removes it from the hand. A malformed or unowned
// card is rejected by silently re-prompting; breaking follow-suit
// additionally earns an invalid notice before the re-prompt. A read
// failure means the peer is gone.
func (g *Game) promptForCard(seatIdx int, trick *models.Trick) (models.Card, error) {
	seat := g.table.Seats[seatIdx]
	leading := len(trick.Plays) == 0

	for {
		if leading {
			seat.SendLine(string(models.TagLead))
		} else {
			seat.SendLine(models.FormatPlayPrompt(trick.LeadSuit))
		}

		line, err := seat.ReadLine()
		if err != nil {
			return models.Card{}, err
		}
		card, err := models.ParseCard(line)
		if err != nil {
			continue
		}
		if !seat.Hand.Contains(card) {
			continue
		}
		if !leading && card.Suit != trick.LeadSuit && seat.Hand.HasSuit(trick.LeadSuit) {
			seat.SendLine(string(models.TagInvalid))
			continue
		}

		seat.Hand.Remove(card)
		return card, nil
	}
}

func (g *Game) announceResult() {
	switch {
	case g.teamTricks[0] > g.teamTricks[1]:
		g.table.Broadcast(fmt.Sprintf("Team 1 won %d tricks", g.teamTricks[0]))
	case g.teamTricks[1] > g.teamTricks[0]:
		g.table.Broadcast(fmt.Sprintf("Team 2 won %d tricks", g.teamTricks[1]))
	default:
		g.table.Broadcast("The game is a draw")
	}
}

func (g *Game) sendGameOver() {
	for _, seat := range g.table.Seats {
		seat.SendLine(string(models.TagGameOver))
	}
}

// terminate tells every surviving seat who vanished, marks the game
// over for them, and says nothing further to the dead connection.
func (g *Game) terminate(deadSeat int) {
	name := g.table.Seats[deadSeat].Name
	for i, seat := range g.table.Seats {
		if i == deadSeat {
			continue
		}
		seat.SendMessage(fmt.Sprintf("%s disconnected early", name))
		seat.SendLine(string(models.TagGameOver))
	}
	g.emit(models.EventGameTerminated)
}

func (g *Game) emit(event string) {
	if g.onEvent != nil {
		g.onEvent(models.Event{Event: event, Table: g.table.Name})
	}
}
