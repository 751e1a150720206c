package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"sort"
	"strings"

	"rats-server/models"
)

const (
	exitUsage    = 3
	exitConnect  = 5
	exitProtocol = 7
	exitUserQuit = 17
	exitBadArgs  = 20
)

// client relays the tagged-line protocol between the server and the
// terminal: server prompts become local input loops, informational
// lines are printed, and the hand model tracks accepted plays.
type client struct {
	server *bufio.Reader
	out    *bufio.Writer
	stdin  *bufio.Reader

	hand     models.Hand
	lastSent models.Card
	hasLast  bool
	dealt    bool
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "Usage: ./ratsclient clientname game port")
		os.Exit(exitUsage)
	}
	name, game, port := os.Args[1], os.Args[2], os.Args[3]
	if name == "" || game == "" || port == "" {
		fmt.Fprintln(os.Stderr, "ratsclient: invalid arguments")
		os.Exit(exitBadArgs)
	}

	conn, err := net.Dial("tcp", net.JoinHostPort("localhost", port))
	if err != nil {
		dieConnect()
	}

	c := &client{
		server: bufio.NewReader(conn),
		out:    bufio.NewWriter(conn),
		stdin:  bufio.NewReader(os.Stdin),
	}

	// Join handshake: player name then game name, one line each.
	c.sendLine(name)
	c.sendLine(game)

	for {
		line, err := c.server.ReadString('\n')
		if err != nil {
			dieProtocol()
		}
		c.handleMessage(strings.TrimRight(line, "\r\n"))
	}
}

func (c *client) handleMessage(line string) {
	if line == "" {
		dieProtocol()
	}
	payload := strings.TrimPrefix(line[1:], " ")

	switch line[0] {
	case models.TagMessage:
		fmt.Printf("Info: %s\n", payload)
	case models.TagAccept:
		c.handleAccept()
	case models.TagHand:
		c.handleHand(payload)
	case models.TagLead:
		c.promptForCard(0, false)
	case models.TagPlay:
		if len(payload) != 1 {
			dieProtocol()
		}
		lead := models.Suit(payload[0])
		if !lead.Valid() {
			dieProtocol()
		}
		c.promptForCard(lead, true)
	case models.TagGameOver:
		os.Exit(0)
	default:
		dieProtocol()
	}
}

// handleHand loads the dealt hand. A second deal is a protocol error.
func (c *client) handleHand(payload string) {
	if c.dealt {
		dieProtocol()
	}
	hand, err := models.ParseHand(payload)
	if err != nil || len(hand) != models.HandSize {
		dieProtocol()
	}
	c.hand = hand
	c.dealt = true
	c.displayHand()
}

// handleAccept removes the last transmitted card from the local hand.
func (c *client) handleAccept() {
	if c.hasLast {
		c.hand.Remove(c.lastSent)
		c.hasLast = false
	}
}

// promptForCard loops on local input until the user enters a card that
// would be legal to send: valid syntax, held, and following suit when
// required. Illegal input never reaches the server.
func (c *client) promptForCard(lead models.Suit, following bool) {
	for {
		c.displayHand()
		if following {
			fmt.Printf("[%c] play> ", lead)
		} else {
			fmt.Print("Lead> ")
		}

		input, err := c.stdin.ReadString('\n')
		if err != nil {
			fmt.Fprintln(os.Stderr, "ratsclient: user has quit")
			os.Exit(exitUserQuit)
		}
		input = strings.TrimSpace(input)

		card, err := models.ParseCard(input)
		if err != nil {
			continue
		}
		if !c.hand.Contains(card) {
			continue
		}
		if following && card.Suit != lead && c.hand.HasSuit(lead) {
			continue
		}

		c.sendLine(card.String())
		c.lastSent = card
		c.hasLast = true
		return
	}
}

// displayHand prints the hand one suit per row, strongest rank first.
func (c *client) displayHand() {
	for _, suit := range models.Suits {
		ranks := make([]models.Rank, 0, models.HandSize)
		for _, card := range c.hand {
			if card.Suit == suit {
				ranks = append(ranks, card.Rank)
			}
		}
		sort.Slice(ranks, func(i, j int) bool {
			return ranks[i].Value() > ranks[j].Value()
		})

		fmt.Printf("%c:", suit)
		for _, r := range ranks {
			fmt.Printf(" %c", r)
		}
		fmt.Println()
	}
}

func (c *client) sendLine(line string) {
	if _, err := c.out.WriteString(line + "\n"); err != nil {
		dieConnect()
	}
	if err := c.out.Flush(); err != nil {
		dieConnect()
	}
}

func dieConnect() {
	fmt.Fprintln(os.Stderr, "ratsclient: unable to connect to the server")
	os.Exit(exitConnect)
}

func dieProtocol() {
	fmt.Fprintln(os.Stderr, "ratsclient: a protocol error occurred")
	os.Exit(exitProtocol)
}
