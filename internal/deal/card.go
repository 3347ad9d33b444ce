package deal

import (
	"fmt"
	"strings"
)

// Ranks lists the 13 card ranks in descending order. T is the ten.
const Ranks = "AKQJT98765432"

// Seat identifies a compass position at the table.
type Seat string

const (
	North Seat = "N"
	East  Seat = "E"
	South Seat = "S"
	West  Seat = "W"
)

// Seats lists the four seats in clockwise order starting from North.
var Seats = [4]Seat{North, East, South, West}

// SuitLetters lists the suit labels in PBN holding order.
var SuitLetters = [4]string{"S", "H", "D", "C"}

// Next returns the seat to the left (clockwise).
func (s Seat) Next() Seat {
	switch s {
	case North:
		return East
	case East:
		return South
	case South:
		return West
	default:
		return North
	}
}

// Valid reports whether s is one of the four compass seats.
func (s Seat) Valid() bool {
	return s == North || s == East || s == South || s == West
}

// ParseSeat parses a seat letter, accepting lowercase.
func ParseSeat(text string) (Seat, error) {
	s := Seat(strings.ToUpper(strings.TrimSpace(text)))
	if !s.Valid() {
		return "", fmt.Errorf("invalid seat %q", text)
	}
	return s, nil
}

// Vulnerability indicates which sides are vulnerable on a board.
type Vulnerability string

const (
	VulnNone Vulnerability = "None"
	VulnNS   Vulnerability = "NS"
	VulnEW   Vulnerability = "EW"
	VulnBoth Vulnerability = "Both"
)

// ParseVulnerability canonicalises the label forms found in the wild:
// "N-S", "E-W", "All", "Love", "-" and the lowercase variants all map onto
// the four canonical values.
func ParseVulnerability(text string) (Vulnerability, error) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "NONE", "LOVE", "-", "O", "0":
		return VulnNone, nil
	case "NS", "N-S", "N/S":
		return VulnNS, nil
	case "EW", "E-W", "E/W":
		return VulnEW, nil
	case "BOTH", "ALL", "B":
		return VulnBoth, nil
	}
	return "", fmt.Errorf("invalid vulnerability %q", text)
}

// rankIndex returns the position of r within Ranks, or -1 if r is not a rank.
func rankIndex(r byte) int {
	return strings.IndexByte(Ranks, r)
}
