package dds

import (
	"github.com/hosgoru/vugraph-archive/internal/deal"
)

// Fit is one side's longest trump fit: the suit, the combined length of
// the two partners' holdings, and the side's double-dummy tricks with that
// suit as trumps.
type Fit struct {
	Suit   Strain `json:"suit"`
	Length int    `json:"length"`
	Tricks int    `json:"tricks"`
}

// LoTT is the Law-of-Total-Tricks statistic: each side's best fit and the
// sum of their trick counts.
type LoTT struct {
	NS          Fit `json:"ns"`
	EW          Fit `json:"ew"`
	TotalTricks int `json:"total_tricks"`
}

// ComputeLoTT derives the statistic from the hands and the trick table.
// Ties in fit length break towards the suit with more tricks.
func ComputeLoTT(d deal.Deal, t Table) LoTT {
	ns := bestFit(d.Hands[deal.North], d.Hands[deal.South], t, true)
	ew := bestFit(d.Hands[deal.East], d.Hands[deal.West], t, false)
	return LoTT{
		NS:          ns,
		EW:          ew,
		TotalTricks: ns.Tricks + ew.Tricks,
	}
}

func bestFit(a, b deal.Hand, t Table, ns bool) Fit {
	var best Fit
	for suit := 0; suit < 4; suit++ {
		fit := Fit{
			Suit:   SuitStrains[suit],
			Length: len(a.Holding(suit)) + len(b.Holding(suit)),
			Tricks: t.SideTricks(SuitStrains[suit], ns),
		}
		if fit.Length > best.Length ||
			(fit.Length == best.Length && fit.Tricks > best.Tricks) {
			best = fit
		}
	}
	return best
}
