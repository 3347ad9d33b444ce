package dds

import (
	"testing"

	"github.com/hosgoru/vugraph-archive/internal/deal"
)

// tableRows builds a table from NS trick counts per strain; both members
// of a side are given the same count so the complement rule holds.
func tableRows(ns map[Strain]int) Table {
	t := Table{}
	for _, strain := range Strains {
		n := ns[strain]
		t[strain] = map[deal.Seat]int{
			deal.North: n,
			deal.South: n,
			deal.East:  13 - n,
			deal.West:  13 - n,
		}
	}
	return t
}

func TestComputeParPlainGame(t *testing.T) {
	// NS takes nine tricks everywhere, so 3NT makes and any EW sacrifice
	// goes for far more than the game is worth.
	table := tableRows(map[Strain]int{NoTrump: 9, Spades: 9, Hearts: 9, Diamonds: 9, Clubs: 9})
	if err := table.Validate(); err != nil {
		t.Fatalf("test table invalid: %v", err)
	}

	got := ComputePar(table, deal.VulnNone)
	want := Contract{Level: 3, Strain: NoTrump, Declarer: deal.North, Score: 400}
	if got != want {
		t.Errorf("par = %+v (%s), want %+v", got, got, want)
	}
}

func TestComputeParSacrifice(t *testing.T) {
	// NS makes 4S for 420; EW holds nine heart tricks, so 5H doubled down
	// two at 300 is the cheaper outcome for the defenders.
	table := tableRows(map[Strain]int{NoTrump: 7, Spades: 10, Hearts: 4, Diamonds: 9, Clubs: 9})
	if err := table.Validate(); err != nil {
		t.Fatalf("test table invalid: %v", err)
	}

	got := ComputePar(table, deal.VulnNone)
	want := Contract{Level: 5, Strain: Hearts, Declarer: deal.East, Doubled: true, Score: 300}
	if got != want {
		t.Errorf("par = %+v (%s), want %+v", got, got, want)
	}
}

func TestComputeParDefendersPartscore(t *testing.T) {
	// NS never reaches seven tricks, so the board belongs to EW and the
	// par score is negative. 1NT outscores the one-level suit partials.
	table := tableRows(map[Strain]int{NoTrump: 6, Spades: 6, Hearts: 6, Diamonds: 6, Clubs: 6})
	if err := table.Validate(); err != nil {
		t.Fatalf("test table invalid: %v", err)
	}

	got := ComputePar(table, deal.VulnNone)
	want := Contract{Level: 1, Strain: NoTrump, Declarer: deal.East, Score: -90}
	if got != want {
		t.Errorf("par = %+v (%s), want %+v", got, got, want)
	}
}

func TestComputeParVulnerabilityRaisesSacrificePrice(t *testing.T) {
	// Same layout as the sacrifice case, but with EW vulnerable 5H doubled
	// down two costs 500, so the defenders let 4S through.
	table := tableRows(map[Strain]int{NoTrump: 7, Spades: 10, Hearts: 4, Diamonds: 9, Clubs: 9})

	got := ComputePar(table, deal.VulnEW)
	want := Contract{Level: 4, Strain: Spades, Declarer: deal.North, Score: 420}
	if got != want {
		t.Errorf("par = %+v (%s), want %+v", got, got, want)
	}
}

func TestContractString(t *testing.T) {
	tests := []struct {
		contract Contract
		want     string
	}{
		{Contract{Level: 4, Strain: Spades, Declarer: deal.North, Score: 420}, "4S N +420"},
		{Contract{Level: 5, Strain: Hearts, Declarer: deal.East, Doubled: true, Score: 300}, "5Hx E +300"},
		{Contract{Level: 1, Strain: NoTrump, Declarer: deal.East, Score: -90}, "1NT E -90"},
		{Contract{}, "Pass"},
	}
	for _, tt := range tests {
		if got := tt.contract.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
