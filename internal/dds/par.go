package dds

import (
	"fmt"

	"github.com/hosgoru/vugraph-archive/internal/deal"
)

// Contract is a par contract: the outcome of both sides bidding rationally
// against the known trick table. Level 0 means the board is passed out.
// Score is from North-South's point of view.
type Contract struct {
	Level    int       `json:"level"`
	Strain   Strain    `json:"strain,omitempty"`
	Declarer deal.Seat `json:"declarer,omitempty"`
	Doubled  bool      `json:"doubled,omitempty"`
	Score    int       `json:"score"`
}

// String renders the contract like "4S N +420" or "5Hx E +300";
// a passed-out board renders as "Pass".
func (c Contract) String() string {
	if c.Level == 0 {
		return "Pass"
	}
	x := ""
	if c.Doubled {
		x = "x"
	}
	return fmt.Sprintf("%d%s%s %s %+d", c.Level, c.Strain, x, c.Declarer, c.Score)
}

// bidStrains orders strains by bidding rank within a level.
var bidStrains = [5]Strain{Clubs, Diamonds, Hearts, Spades, NoTrump}

const contractRanks = 35 // 7 levels x 5 strains

type parState struct {
	score    int
	contract Contract
}

// ComputePar derives the par contract from a trick table. Both sides are
// assumed to bid whenever it improves their result; failing contracts are
// always doubled, making ones never.
func ComputePar(t Table, vul deal.Vulnerability) Contract {
	// value[r][0] is the final North-South score when NS has just bid the
	// contract of rank r; value[r][1] the same for EW. Filled from 7NT down,
	// since a bid can only be answered by a higher one.
	var value [contractRanks][2]parState

	for r := contractRanks - 1; r >= 0; r-- {
		for sideIdx := 0; sideIdx < 2; sideIdx++ {
			ns := sideIdx == 0
			best := bidOutcome(t, vul, r, ns)

			// The opponents choose between passing and any higher bid.
			for r2 := r + 1; r2 < contractRanks; r2++ {
				cand := value[r2][1-sideIdx]
				if ns && cand.score < best.score {
					best = cand
				}
				if !ns && cand.score > best.score {
					best = cand
				}
			}
			value[r][sideIdx] = best
		}
	}

	par := parState{contract: Contract{Level: 0, Score: 0}}
	for r := 0; r < contractRanks; r++ {
		if value[r][0].score > par.score {
			par = value[r][0]
		}
	}
	if par.score == 0 {
		for r := 0; r < contractRanks; r++ {
			if value[r][1].score < par.score {
				par = value[r][1]
			}
		}
	}
	par.contract.Score = par.score
	return par.contract
}

// bidOutcome scores the contract of the given rank declared by the given
// side's better-placed partner, doubled when it fails.
func bidOutcome(t Table, vul deal.Vulnerability, rank int, ns bool) parState {
	level := rank/5 + 1
	strain := bidStrains[rank%5]

	var declarer deal.Seat
	if ns {
		declarer = deal.North
		if t[strain][deal.South] > t[strain][deal.North] {
			declarer = deal.South
		}
	} else {
		declarer = deal.East
		if t[strain][deal.West] > t[strain][deal.East] {
			declarer = deal.West
		}
	}
	tricks := t[strain][declarer]

	vulnerable := vul == deal.VulnBoth || (ns && vul == deal.VulnNS) || (!ns && vul == deal.VulnEW)
	doubled := 0
	if tricks < level+6 {
		doubled = 1
	}

	score := contractScore(level, strain, doubled, vulnerable, tricks)
	if !ns {
		score = -score
	}
	return parState{
		score: score,
		contract: Contract{
			Level:    level,
			Strain:   strain,
			Declarer: declarer,
			Doubled:  doubled > 0,
			Score:    score,
		},
	}
}
