package models

import "testing"

func TestParseCard(t *testing.T) {
	card, err := ParseCard("TD")
	if err != nil {
		t.Fatalf("ParseCard failed: %v", err)
	}
	if card.Rank != Ten || card.Suit != Diamonds {
		t.Errorf("expected TD, got %s", card)
	}

	invalid := []string{"", "T", "TDX", "1S", "tS", "Ts", "T♦", "XS", "TX"}
	for _, token := range invalid {
		if _, err := ParseCard(token); err == nil {
			t.Errorf("expected %q to be rejected", token)
		}
	}
}

func TestRankOrder(t *testing.T) {
	prev := 0
	for _, rank := range Ranks {
		v := rank.Value()
		if v <= prev {
			t.Errorf("rank %c value %d not greater than previous %d", rank, v, prev)
		}
		prev = v
	}
	if Two.Value() != 2 || Ace.Value() != 14 {
		t.Errorf("rank extremes wrong: 2=%d A=%d", Two.Value(), Ace.Value())
	}
}

func TestCardBeats(t *testing.T) {
	tests := []struct {
		name  string
		card  string
		other string
		lead  Suit
		want  bool
	}{
		{"higher rank same lead suit wins", "KS", "2S", Spades, true},
		{"lower rank same lead suit loses", "2S", "KS", Spades, false},
		{"lead suit beats off suit", "2S", "AH", Spades, true},
		{"off suit never wins", "AH", "2S", Spades, false},
		{"two off-suit cards never win", "AH", "AD", Spades, false},
	}
	for _, tt := range tests {
		a, _ := ParseCard(tt.card)
		b, _ := ParseCard(tt.other)
		if got := a.Beats(b, tt.lead); got != tt.want {
			t.Errorf("%s: %s.Beats(%s, %c) = %v, want %v", tt.name, a, b, tt.lead, got, tt.want)
		}
	}
}

func TestCardString(t *testing.T) {
	card := Card{Rank: Queen, Suit: Hearts}
	if card.String() != "QH" {
		t.Errorf("expected QH, got %s", card)
	}
}
