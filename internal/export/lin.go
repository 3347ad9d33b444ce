package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hosgoru/vugraph-archive/internal/deal"
	"github.com/hosgoru/vugraph-archive/internal/store"
)

// linVuln maps store vulnerability onto the LIN sv token.
var linVuln = map[deal.Vulnerability]string{
	deal.VulnNone: "o",
	deal.VulnNS:   "n",
	deal.VulnEW:   "e",
	deal.VulnBoth: "b",
}

// linDealerDigit maps the dealer seat onto the digit opening an md token.
var linDealerDigit = map[deal.Seat]string{
	deal.North: "1",
	deal.East:  "2",
	deal.South: "3",
	deal.West:  "4",
}

// WriteLIN writes one LIN line per record, in the BBO dialect Bridge
// Solver accepts: the md token carries the dealer digit and three hands
// clockwise from the dealer, the fourth hand being implied.
func WriteLIN(w io.Writer, records []store.BoardRecord) error {
	for _, r := range records {
		md := linDealerDigit[r.Dealer]
		seat := r.Dealer
		for i := 0; i < 3; i++ {
			if i > 0 {
				md += ","
			}
			md += linHand(r.Hands[seat])
			seat = seat.Next()
		}

		sv, ok := linVuln[r.Vulnerability]
		if !ok {
			sv = "o"
		}
		if _, err := fmt.Fprintf(w, "qx|o%d|md|%s|sv|%s|ah|Board %d|pg||\n",
			r.Board, md, sv, r.Board); err != nil {
			return err
		}
	}
	return nil
}

// linHand renders a hand in LIN suit-marker notation: SK86HQJT7DAQTC832.
func linHand(h deal.Hand) string {
	return "S" + h.Holding(0) + "H" + h.Holding(1) + "D" + h.Holding(2) + "C" + h.Holding(3)
}

// ReadLIN parses LIN text written by WriteLIN, or any BBO export carrying
// qx and md tokens, into board records for the given event. Lines without
// an md token are skipped; a malformed deal fails the import.
func ReadLIN(r io.Reader, eventID string) ([]store.BoardRecord, error) {
	records := make([]store.BoardRecord, 0)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		tokens := strings.Split(scanner.Text(), "|")

		board := 0
		md := ""
		for i := 0; i+1 < len(tokens); i += 2 {
			switch tokens[i] {
			case "qx":
				board = linBoardNumber(tokens[i+1])
			case "ah":
				if board == 0 {
					board = linBoardNumber(tokens[i+1])
				}
			case "md":
				md = tokens[i+1]
			}
		}
		if md == "" {
			continue
		}

		d, err := deal.ParseLINBoard(md, board)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, store.BoardRecord{
			EventID:       eventID,
			Board:         d.Board,
			Dealer:        d.Dealer,
			Vulnerability: d.Vulnerability,
			Hands:         d.Hands,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading lin: %w", err)
	}
	return records, nil
}

// linBoardNumber pulls the board number out of a qx value such as "o3" or
// an ah value such as "Board 3".
func linBoardNumber(value string) int {
	value = strings.TrimSpace(value)
	start := strings.LastIndexFunc(value, func(r rune) bool {
		return r < '0' || r > '9'
	}) + 1
	n, err := strconv.Atoi(value[start:])
	if err != nil {
		return 0
	}
	return n
}
