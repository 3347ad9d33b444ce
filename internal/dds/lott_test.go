package dds

import (
	"testing"

	"github.com/hosgoru/vugraph-archive/internal/deal"
)

func TestComputeLoTT(t *testing.T) {
	d := testDeal(t)

	// NS owns eight clubs, EW eight hearts; the other suits split shorter.
	table := Table{
		NoTrump:  {deal.North: 6, deal.South: 6, deal.East: 7, deal.West: 7},
		Spades:   {deal.North: 6, deal.South: 6, deal.East: 7, deal.West: 7},
		Hearts:   {deal.North: 4, deal.South: 4, deal.East: 9, deal.West: 9},
		Diamonds: {deal.North: 7, deal.South: 7, deal.East: 6, deal.West: 6},
		Clubs:    {deal.North: 8, deal.South: 8, deal.East: 5, deal.West: 5},
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("test table invalid: %v", err)
	}

	got := ComputeLoTT(d, table)

	if got.NS != (Fit{Suit: Clubs, Length: 8, Tricks: 8}) {
		t.Errorf("NS fit = %+v, want eight clubs for 8 tricks", got.NS)
	}
	if got.EW != (Fit{Suit: Hearts, Length: 8, Tricks: 9}) {
		t.Errorf("EW fit = %+v, want eight hearts for 9 tricks", got.EW)
	}
	if got.TotalTricks != 17 {
		t.Errorf("TotalTricks = %d, want 17", got.TotalTricks)
	}
}

func TestComputeLoTTTieBreaksOnTricks(t *testing.T) {
	// Both black suits split 4-4 for NS; the table says clubs play a
	// trick better, so the club fit wins the tie.
	hands := map[deal.Seat]deal.Hand{
		deal.North: {"AKQJ", "AKQ", "AK", "AKQJ"},
		deal.South: {"T987", "JT9", "QJ", "T987"},
		deal.East:  {"6543", "8765", "T987", "6"},
		deal.West:  {"2", "432", "65432", "5432"},
	}
	d, err := deal.NewDeal(1, hands)
	if err != nil {
		t.Fatalf("NewDeal failed: %v", err)
	}

	table := Table{
		NoTrump:  {deal.North: 13, deal.South: 13, deal.East: 0, deal.West: 0},
		Spades:   {deal.North: 12, deal.South: 12, deal.East: 1, deal.West: 1},
		Hearts:   {deal.North: 11, deal.South: 11, deal.East: 2, deal.West: 2},
		Diamonds: {deal.North: 11, deal.South: 11, deal.East: 2, deal.West: 2},
		Clubs:    {deal.North: 13, deal.South: 13, deal.East: 0, deal.West: 0},
	}

	got := ComputeLoTT(d, table)
	if got.NS.Suit != Clubs || got.NS.Length != 8 || got.NS.Tricks != 13 {
		t.Errorf("NS fit = %+v, want the club fit on the tricks tie-break", got.NS)
	}
}
