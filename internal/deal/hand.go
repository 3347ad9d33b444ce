package deal

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidHand reports a holding with a rank outside the alphabet,
	// a duplicated rank within a suit, or a wrong total card count.
	ErrInvalidHand = errors.New("invalid hand")

	// ErrDealInconsistent reports three hands that collectively duplicate
	// a card, making the fourth hand unreconstructable.
	ErrDealInconsistent = errors.New("deal inconsistent")

	// ErrCardCountMismatch reports a deal where some seat holds a number
	// of cards other than thirteen.
	ErrCardCountMismatch = errors.New("card count mismatch")
)

// Hand holds one seat's cards as four rank-descending suit holdings in
// spades-hearts-diamonds-clubs order. The external notation is PBN:
// "S.H.D.C" with voids rendered as the empty string.
type Hand [4]string

// ParseHand parses a PBN hand string such as "K86.QJT7.AQT.832".
// A void may be written as the empty string or as a literal "-".
// The hand must contain exactly thirteen cards.
func ParseHand(pbn string) (Hand, error) {
	parts := strings.Split(strings.TrimSpace(pbn), ".")
	if len(parts) != 4 {
		return Hand{}, fmt.Errorf("%w: %q has %d suits, want 4", ErrInvalidHand, pbn, len(parts))
	}

	var h Hand
	total := 0
	for i, part := range parts {
		holding, err := normalizeHolding(part)
		if err != nil {
			return Hand{}, fmt.Errorf("%w: %q suit %s: %v", ErrInvalidHand, pbn, SuitLetters[i], err)
		}
		h[i] = holding
		total += len(holding)
	}

	if total != 13 {
		return Hand{}, fmt.Errorf("%w: %q has %d cards, want 13", ErrInvalidHand, pbn, total)
	}
	return h, nil
}

// normalizeHolding validates the ranks of one suit holding and returns it
// sorted rank-descending. "-" denotes a void.
func normalizeHolding(part string) (string, error) {
	part = strings.ToUpper(strings.TrimSpace(part))
	if part == "-" || part == "" {
		return "", nil
	}

	seen := [13]bool{}
	ranks := make([]int, 0, len(part))
	for i := 0; i < len(part); i++ {
		idx := rankIndex(part[i])
		if idx < 0 {
			return "", fmt.Errorf("rank %q outside alphabet", string(part[i]))
		}
		if seen[idx] {
			return "", fmt.Errorf("duplicate rank %q", string(part[i]))
		}
		seen[idx] = true
		ranks = append(ranks, idx)
	}

	sort.Ints(ranks)
	var b strings.Builder
	for _, idx := range ranks {
		b.WriteByte(Ranks[idx])
	}
	return b.String(), nil
}

// ParseLINHand parses a hand as it appears inside a LIN md token: either a
// concatenation of suit markers and ranks ("SK86HQJT7DAQTC832") or the
// dotted PBN form some Vugraph exports use.
func ParseLINHand(text string) (Hand, error) {
	text = strings.ToUpper(strings.TrimSpace(text))
	if strings.Contains(text, ".") {
		return ParseHand(text)
	}

	holdings := map[byte]string{}
	var current byte
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch ch {
		case 'S', 'H', 'D', 'C':
			if _, dup := holdings[ch]; dup {
				return Hand{}, fmt.Errorf("%w: %q repeats suit %s", ErrInvalidHand, text, string(ch))
			}
			current = ch
			holdings[ch] = ""
		default:
			if current == 0 {
				return Hand{}, fmt.Errorf("%w: %q starts before a suit marker", ErrInvalidHand, text)
			}
			holdings[current] += string(ch)
		}
	}

	var parts [4]string
	for i, letter := range SuitLetters {
		parts[i] = holdings[letter[0]]
	}
	return ParseHand(strings.Join(parts[:], "."))
}

// String renders the hand in PBN notation.
func (h Hand) String() string {
	return strings.Join(h[:], ".")
}

// Count returns the number of cards in the hand.
func (h Hand) Count() int {
	return len(h[0]) + len(h[1]) + len(h[2]) + len(h[3])
}

// Holding returns the ranks held in the given suit (0=S .. 3=C).
func (h Hand) Holding(suit int) string {
	return h[suit]
}

// IsZero reports whether the hand is entirely empty (unparsed), as opposed
// to holding voids.
func (h Hand) IsZero() bool {
	return h == Hand{}
}

// MarshalJSON renders the hand as its PBN string.
func (h Hand) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON accepts a PBN string, validating the hand on the way in.
func (h *Hand) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseHand(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
