package deal

import (
	"fmt"
	"strings"
)

// Deal is a full board: four hands keyed by seat plus the dealer and
// vulnerability. Dealer and vulnerability are derivable from the board
// number but stored explicitly so stored records can be cross-checked.
type Deal struct {
	Board         int           `json:"board"`
	Dealer        Seat          `json:"dealer"`
	Vulnerability Vulnerability `json:"vulnerability"`
	Hands         map[Seat]Hand `json:"hands"`
}

// NewDeal builds a Deal for the given board number, deriving dealer and
// vulnerability, and validates it.
func NewDeal(board int, hands map[Seat]Hand) (Deal, error) {
	d := Deal{
		Board:         board,
		Dealer:        DealerFor(board),
		Vulnerability: VulnerabilityFor(board),
		Hands:         hands,
	}
	if err := d.Validate(); err != nil {
		return Deal{}, err
	}
	return d, nil
}

// Validate checks the deal invariants: four hands of thirteen cards each,
// every one of the 52 cards appearing exactly once, and dealer plus
// vulnerability matching the board number when one is set.
func (d Deal) Validate() error {
	if len(d.Hands) != 4 {
		return fmt.Errorf("%w: %d hands, want 4", ErrCardCountMismatch, len(d.Hands))
	}

	var seen [4][13]bool
	for _, seat := range Seats {
		h, ok := d.Hands[seat]
		if !ok {
			return fmt.Errorf("%w: seat %s missing", ErrCardCountMismatch, seat)
		}
		if h.Count() != 13 {
			return fmt.Errorf("%w: seat %s holds %d cards", ErrCardCountMismatch, seat, h.Count())
		}
		for suit := 0; suit < 4; suit++ {
			for i := 0; i < len(h[suit]); i++ {
				idx := rankIndex(h[suit][i])
				if idx < 0 {
					return fmt.Errorf("%w: seat %s rank %q", ErrInvalidHand, seat, string(h[suit][i]))
				}
				if seen[suit][idx] {
					return fmt.Errorf("%w: %s%s held twice", ErrDealInconsistent, string(h[suit][i]), SuitLetters[suit])
				}
				seen[suit][idx] = true
			}
		}
	}

	if d.Board > 0 {
		if d.Dealer != DealerFor(d.Board) {
			return fmt.Errorf("%w: board %d dealer %s, want %s", ErrDealInconsistent, d.Board, d.Dealer, DealerFor(d.Board))
		}
		if d.Vulnerability != VulnerabilityFor(d.Board) {
			return fmt.Errorf("%w: board %d vulnerability %s, want %s", ErrDealInconsistent, d.Board, d.Vulnerability, VulnerabilityFor(d.Board))
		}
	}
	return nil
}

// ReconstructFourth returns the hand formed by the 52-card complement of
// three valid hands. The complement is taken suit by suit in rank-descending
// order, exactly as the missing seat would hold it.
func ReconstructFourth(h1, h2, h3 Hand) (Hand, error) {
	var fourth Hand
	for suit := 0; suit < 4; suit++ {
		var seen [13]bool
		for _, h := range []Hand{h1, h2, h3} {
			for i := 0; i < len(h[suit]); i++ {
				idx := rankIndex(h[suit][i])
				if idx < 0 {
					return Hand{}, fmt.Errorf("%w: rank %q", ErrInvalidHand, string(h[suit][i]))
				}
				if seen[idx] {
					return Hand{}, fmt.Errorf("%w: %s%s held twice", ErrDealInconsistent,
						string(h[suit][i]), SuitLetters[suit])
				}
				seen[idx] = true
			}
		}
		var b strings.Builder
		for idx := 0; idx < 13; idx++ {
			if !seen[idx] {
				b.WriteByte(Ranks[idx])
			}
		}
		fourth[suit] = b.String()
	}

	if fourth.Count() != 13 {
		return Hand{}, fmt.Errorf("%w: complement has %d cards", ErrDealInconsistent, fourth.Count())
	}
	return fourth, nil
}

// RotateByDealer maps three hands given in dealer-first clockwise order
// onto compass seats and reconstructs the fourth. With dealer East the
// hands belong to E, S and W and North is reconstructed.
func RotateByDealer(inDealerOrder [3]Hand, dealer Seat) (map[Seat]Hand, error) {
	if !dealer.Valid() {
		return nil, fmt.Errorf("invalid dealer %q", dealer)
	}

	fourth, err := ReconstructFourth(inDealerOrder[0], inDealerOrder[1], inDealerOrder[2])
	if err != nil {
		return nil, err
	}

	hands := make(map[Seat]Hand, 4)
	seat := dealer
	for _, h := range inDealerOrder {
		hands[seat] = h
		seat = seat.Next()
	}
	hands[seat] = fourth
	return hands, nil
}

// CanonicalPBN renders the deal in PBN deal-tag notation, listing the four
// hands clockwise from first: "N:<N> <E> <S> <W>".
func CanonicalPBN(d Deal, first Seat) string {
	parts := make([]string, 0, 4)
	seat := first
	for i := 0; i < 4; i++ {
		parts = append(parts, d.Hands[seat].String())
		seat = seat.Next()
	}
	return string(first) + ":" + strings.Join(parts, " ")
}

// ParseDealPBN parses PBN deal-tag notation as produced by CanonicalPBN.
// The board number is not part of the notation; callers supply it so the
// dealer and vulnerability can be derived.
func ParseDealPBN(text string, board int) (Deal, error) {
	text = strings.TrimSpace(text)
	if len(text) < 2 || text[1] != ':' {
		return Deal{}, fmt.Errorf("%w: missing seat prefix in %q", ErrInvalidHand, text)
	}
	first, err := ParseSeat(text[:1])
	if err != nil {
		return Deal{}, err
	}

	fields := strings.Fields(text[2:])
	if len(fields) != 4 {
		return Deal{}, fmt.Errorf("%w: %d hands in %q, want 4", ErrCardCountMismatch, len(fields), text)
	}

	hands := make(map[Seat]Hand, 4)
	seat := first
	for _, field := range fields {
		h, err := ParseHand(field)
		if err != nil {
			return Deal{}, err
		}
		hands[seat] = h
		seat = seat.Next()
	}
	return NewDeal(board, hands)
}

// linDealers maps the digit after "md|" onto the dealer seat.
var linDealers = map[byte]Seat{'1': North, '2': East, '3': South, '4': West}

// ParseLINBoard parses the payload of a LIN md token: a dealer digit
// followed by three comma-separated hands in dealer-first clockwise order.
// The fourth hand is reconstructed. A trailing fourth hand, when present,
// is parsed and checked against the reconstruction.
func ParseLINBoard(md string, board int) (Deal, error) {
	md = strings.TrimSpace(md)
	if md == "" {
		return Deal{}, fmt.Errorf("%w: empty md token", ErrInvalidHand)
	}
	dealer, ok := linDealers[md[0]]
	if !ok {
		return Deal{}, fmt.Errorf("%w: md dealer digit %q", ErrInvalidHand, string(md[0]))
	}

	fields := strings.Split(md[1:], ",")
	if len(fields) < 3 {
		return Deal{}, fmt.Errorf("%w: md token has %d hands, want at least 3", ErrCardCountMismatch, len(fields))
	}

	var three [3]Hand
	for i := 0; i < 3; i++ {
		h, err := ParseLINHand(fields[i])
		if err != nil {
			return Deal{}, err
		}
		three[i] = h
	}

	hands, err := RotateByDealer(three, dealer)
	if err != nil {
		return Deal{}, err
	}

	if board > 0 && DealerFor(board) != dealer {
		return Deal{}, fmt.Errorf("%w: md dealer %s contradicts board %d dealer %s",
			ErrDealInconsistent, dealer, board, DealerFor(board))
	}

	if len(fields) >= 4 && strings.TrimSpace(fields[3]) != "" {
		given, err := ParseLINHand(fields[3])
		if err != nil {
			return Deal{}, err
		}
		seat := dealer.Next().Next().Next()
		if given != hands[seat] {
			return Deal{}, fmt.Errorf("%w: fourth hand %s contradicts complement %s",
				ErrDealInconsistent, given, hands[seat])
		}
	}

	// Without a board number only the md dealer digit is known; the
	// consistency check above already pinned dealer == DealerFor(board)
	// for positive boards.
	d := Deal{Board: board, Dealer: dealer, Hands: hands}
	if board > 0 {
		d.Vulnerability = VulnerabilityFor(board)
	}
	if err := d.Validate(); err != nil {
		return Deal{}, err
	}
	return d, nil
}
