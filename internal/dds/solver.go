package dds

import (
	"context"
	"fmt"
	"math/bits"
	"strings"

	"github.com/hosgoru/vugraph-archive/internal/deal"
)

// Solver is the in-process exact double-dummy backend: alpha-beta search
// over the full play of the hand, driven through zero-window searches
// against a per-strain transposition table of rank-relative positions.
type Solver struct{}

// Solve computes the trick table for a valid deal. The North and South
// entries come from full searches with the defender on lead (East against
// North, West against South); the East and West entries are the remaining
// tricks of those same games, so a returned table always satisfies
// Table.Validate. The context is polled during the search.
func (Solver) Solve(ctx context.Context, d deal.Deal) (Table, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSolverFailure, err)
	}

	var hands [4][4]cards
	for seatIdx, seat := range deal.Seats {
		h := d.Hands[seat]
		for suit := 0; suit < 4; suit++ {
			mask, err := holdingMask(h.Holding(suit))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSolverFailure, err)
			}
			hands[seatIdx][suit] = mask
		}
	}

	table := Table{}
	guess := 0
	for strainIdx, strain := range Strains {
		trump := strainIdx - 1 // Strains[0] is NT
		s := newSearcher(ctx, trump, hands)
		s.guess = guess

		nsEast, err := s.tricks(1) // East on lead
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSolverFailure, err)
		}
		nsWest, err := s.tricks(3) // West on lead
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSolverFailure, err)
		}
		guess = nsEast

		table[strain] = map[deal.Seat]int{
			deal.North: nsEast,
			deal.East:  13 - nsEast,
			deal.South: nsWest,
			deal.West:  13 - nsWest,
		}
	}
	return table, nil
}

// cards is a bitmask of ranks within one suit; bit 12 is the ace, bit 0
// the deuce, so numeric comparison follows trick-taking strength.
type cards uint16

func holdingMask(holding string) (cards, error) {
	var m cards
	for i := 0; i < len(holding); i++ {
		idx := strings.IndexByte(deal.Ranks, holding[i])
		if idx < 0 {
			return 0, fmt.Errorf("rank %q outside alphabet", string(holding[i]))
		}
		m |= 1 << (12 - idx)
	}
	return m, nil
}

type ttKey struct {
	packed [4]uint64
	leader int8
}

type ttVal struct {
	lower, upper int8
}

type searcher struct {
	ctx       context.Context
	trump     int // 0..3, or -1 for no-trump
	hands     [4][4]cards
	suitOrder [4]int
	tt        map[ttKey]ttVal
	nodes     uint64
	guess     int
	stopped   bool
}

func newSearcher(ctx context.Context, trump int, hands [4][4]cards) *searcher {
	s := &searcher{
		ctx:       ctx,
		trump:     trump,
		hands:     hands,
		suitOrder: [4]int{0, 1, 2, 3},
		tt:        make(map[ttKey]ttVal),
	}
	if trump >= 0 {
		// Leading trumps is usually the critical line; search it first.
		s.suitOrder[0] = trump
		i := 1
		for suit := 0; suit < 4; suit++ {
			if suit != trump {
				s.suitOrder[i] = suit
				i++
			}
		}
	}
	return s
}

// tricks returns the exact North-South trick count with the given seat on
// lead, bracketing it with zero-window searches. Every pass shares the
// strain's transposition table, so later passes mostly replay stored
// bounds.
func (s *searcher) tricks(leader int) (int, error) {
	lo, hi := 0, 13
	for lo < hi {
		target := (lo + hi + 1) / 2
		if s.guess > lo && s.guess <= hi {
			target = s.guess
			s.guess = 0
		}
		v := s.search(leader, target-1, target)
		if s.stopped {
			return 0, s.ctx.Err()
		}
		if v >= target {
			lo = target
		} else {
			hi = target - 1
		}
	}
	s.guess = lo
	return lo, nil
}

// key canonicalizes the position: only the relative order of the cards
// still in play matters, so each suit holding is compressed onto the low
// bits before packing. Positions reached through different play orders
// that leave the same shape then share one table entry.
func (s *searcher) key(leader int) ttKey {
	var k ttKey
	for suit := 0; suit < 4; suit++ {
		live := s.hands[0][suit] | s.hands[1][suit] | s.hands[2][suit] | s.hands[3][suit]
		shift := uint(13 * suit)
		for seat := 0; seat < 4; seat++ {
			k.packed[seat] |= uint64(compress(s.hands[seat][suit], live)) << shift
		}
	}
	k.leader = int8(leader)
	return k
}

// compress extracts the bits of hand at the positions set in live,
// packing them contiguously from bit 0.
func compress(hand, live cards) cards {
	var out cards
	for bit := cards(1); live != 0; bit <<= 1 {
		low := live & -live
		live &^= low
		if hand&low != 0 {
			out |= bit
		}
	}
	return out
}

func (s *searcher) remaining(seat int) int {
	n := 0
	for suit := 0; suit < 4; suit++ {
		n += bits.OnesCount16(uint16(s.hands[seat][suit]))
	}
	return n
}

// search returns the North-South tricks in the remaining play with both
// sides playing perfectly, within the (alpha, beta) window.
func (s *searcher) search(leader, alpha, beta int) int {
	tricksLeft := s.remaining(leader)
	if tricksLeft == 0 {
		return 0
	}
	if alpha >= tricksLeft {
		return tricksLeft
	}
	if beta <= 0 {
		return 0
	}

	s.nodes++
	if s.nodes&0x1fff == 0 {
		select {
		case <-s.ctx.Done():
			s.stopped = true
		default:
		}
	}
	if s.stopped {
		return 0
	}

	key := s.key(leader)
	entry, found := s.tt[key]
	if found {
		if int(entry.lower) >= beta {
			return int(entry.lower)
		}
		if int(entry.upper) <= alpha {
			return int(entry.upper)
		}
		if entry.lower == entry.upper {
			return int(entry.lower)
		}
		alpha = max(alpha, int(entry.lower))
		beta = min(beta, int(entry.upper))
	} else {
		entry = ttVal{lower: 0, upper: int8(tricksLeft)}
	}

	var trick [4]trickPlay
	val := s.playTrick(leader, 0, -1, &trick, alpha, beta)
	if s.stopped {
		return 0
	}

	if val <= alpha {
		entry.upper = min(entry.upper, int8(val))
	} else if val >= beta {
		entry.lower = max(entry.lower, int8(val))
	} else {
		entry.lower = int8(val)
		entry.upper = int8(val)
	}
	s.tt[key] = entry
	return val
}

type trickPlay struct {
	seat, suit int
	rank       cards // single-bit mask
}

// playTrick recurses through the four plays of one trick. pos is the play
// index within the trick; ledSuit is -1 until the leader commits.
func (s *searcher) playTrick(leader, pos, ledSuit int, trick *[4]trickPlay, alpha, beta int) int {
	if pos == 4 {
		winner := s.trickWinner(trick, ledSuit)
		won := 0
		if winner%2 == 0 {
			won = 1
		}
		return won + s.search(winner, alpha-won, beta-won)
	}

	seat := (leader + pos) % 4
	maximizing := seat%2 == 0

	var suits [4]int
	n := 0
	if ledSuit >= 0 && s.hands[seat][ledSuit] != 0 {
		// Must follow suit.
		suits[0], n = ledSuit, 1
	} else {
		for _, suit := range s.suitOrder {
			if s.hands[seat][suit] != 0 {
				suits[n] = suit
				n++
			}
		}
	}

	best := -1
	for i := 0; i < n; i++ {
		playSuit := suits[i]
		moves := s.reducedMoves(seat, playSuit, trick, pos)
		if pos == 3 {
			moves = s.lastHandMoves(moves, playSuit, trick)
		}
		for moves != 0 {
			bit := cards(1) << (bits.Len16(uint16(moves)) - 1)
			moves &^= bit

			trick[pos] = trickPlay{seat: seat, suit: playSuit, rank: bit}
			s.hands[seat][playSuit] &^= bit
			led := ledSuit
			if pos == 0 {
				led = playSuit
			}
			v := s.playTrick(leader, pos+1, led, trick, alpha, beta)
			s.hands[seat][playSuit] |= bit

			if s.stopped {
				return 0
			}
			if best < 0 {
				best = v
			} else if maximizing && v > best {
				best = v
			} else if !maximizing && v < best {
				best = v
			}
			if maximizing {
				alpha = max(alpha, best)
			} else {
				beta = min(beta, best)
			}
			if alpha >= beta {
				return best
			}
		}
	}
	return best
}

// reducedMoves returns the playable cards of one suit with touching
// equivalents collapsed: of a run of held ranks unbroken by any live card,
// only the highest is searched. Live means still held by anyone or played
// earlier in the current trick.
func (s *searcher) reducedMoves(seat, suit int, trick *[4]trickPlay, pos int) cards {
	held := s.hands[seat][suit]
	if held == 0 {
		return 0
	}

	live := s.hands[0][suit] | s.hands[1][suit] | s.hands[2][suit] | s.hands[3][suit]
	for i := 0; i < pos; i++ {
		if trick[i].suit == suit {
			live |= trick[i].rank
		}
	}

	var out cards
	prevHeld := false
	for r := 12; r >= 0; r-- {
		bit := cards(1) << r
		if live&bit == 0 {
			continue
		}
		if held&bit != 0 {
			if !prevHeld {
				out |= bit
			}
			prevHeld = true
		} else {
			prevHeld = false
		}
	}
	return out
}

// lastHandMoves keeps every losing candidate but only the cheapest
// winning one: in fourth seat the trick outcome is settled, and winning
// with the lowest sufficient card keeps the stronger cards for later.
func (s *searcher) lastHandMoves(moves cards, playSuit int, trick *[4]trickPlay) cards {
	ledSuit := trick[0].suit
	best := trick[0]
	for i := 1; i < 3; i++ {
		if s.beats(trick[i], best, ledSuit) {
			best = trick[i]
		}
	}

	var winning cards
	switch {
	case playSuit == best.suit:
		winning = moves &^ (best.rank | (best.rank - 1))
	case s.trump >= 0 && playSuit == s.trump:
		winning = moves
	}
	if winning != 0 {
		moves = moves&^winning | winning&-winning
	}
	return moves
}

func (s *searcher) trickWinner(trick *[4]trickPlay, ledSuit int) int {
	best := 0
	for i := 1; i < 4; i++ {
		if s.beats(trick[i], trick[best], ledSuit) {
			best = i
		}
	}
	return trick[best].seat
}

// beats reports whether play a wins over the currently winning play b.
func (s *searcher) beats(a, b trickPlay, ledSuit int) bool {
	if a.suit == b.suit {
		return a.rank > b.rank
	}
	if s.trump >= 0 && a.suit == s.trump {
		return true
	}
	return false
}
