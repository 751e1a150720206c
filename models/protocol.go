package models

// Wire protocol tags. Every server-to-client record is one
// newline-terminated line starting with a tag character.
const (
	TagMessage  = 'M' // informational text
	TagHand     = 'H' // dealt hand, rank+suit pairs concatenated
	TagLead     = 'L' // prompt: you are on lead
	TagPlay     = 'P' // prompt: follow this suit if you can
	TagInvalid  = 'I' // your last line was invalid; a re-prompt follows
	TagAccept   = 'A' // your card was accepted
	TagGameOver = 'O' // game over; no further lines will be sent
)

// FormatMessage builds an informational line.
func FormatMessage(text string) string {
	return string(TagMessage) + " " + text
}

// FormatHand builds the dealt-hand line for one seat.
func FormatHand(h Hand) string {
	return string(TagHand) + h.Encode()
}

// FormatPlayPrompt builds the follow prompt carrying the lead suit.
func FormatPlayPrompt(lead Suit) string {
	return string(TagPlay) + " " + string(lead)
}

type Event struct {
	Event string `json:"event"`
	Table string `json:"table"`
}

const (
	EventTrickComplete  = "trickComplete"
	EventGameComplete   = "gameComplete"
	EventGameTerminated = "gameTerminated"
)
