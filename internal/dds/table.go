package dds

import (
	"errors"
	"fmt"

	"github.com/hosgoru/vugraph-archive/internal/deal"
)

// ErrSolverFailure reports a backend that failed or kept returning an
// invariant-violating table.
var ErrSolverFailure = errors.New("solver failure")

// Strain is a trump suit or No-Trump.
type Strain string

const (
	NoTrump  Strain = "NT"
	Spades   Strain = "S"
	Hearts   Strain = "H"
	Diamonds Strain = "D"
	Clubs    Strain = "C"
)

// Strains lists the five strains in table order.
var Strains = [5]Strain{NoTrump, Spades, Hearts, Diamonds, Clubs}

// SuitStrains lists the four suit strains in spades-first order, matching
// the holding order inside a Hand.
var SuitStrains = [4]Strain{Spades, Hearts, Diamonds, Clubs}

// Table maps strain and declarer to the tricks that declarer can take
// against perfect defence.
type Table map[Strain]map[deal.Seat]int

// Validate checks the table shape: twenty values in [0,13] with each
// strain satisfying N+E == 13 and S+W == 13, since either member of a
// partnership faces the same pair of defenders.
func (t Table) Validate() error {
	if len(t) != len(Strains) {
		return fmt.Errorf("%w: table has %d strains, want %d", ErrSolverFailure, len(t), len(Strains))
	}
	for _, strain := range Strains {
		row, ok := t[strain]
		if !ok || len(row) != 4 {
			return fmt.Errorf("%w: strain %s incomplete", ErrSolverFailure, strain)
		}
		for _, seat := range deal.Seats {
			v, ok := row[seat]
			if !ok {
				return fmt.Errorf("%w: strain %s missing seat %s", ErrSolverFailure, strain, seat)
			}
			if v < 0 || v > 13 {
				return fmt.Errorf("%w: strain %s seat %s tricks %d", ErrSolverFailure, strain, seat, v)
			}
		}
		if row[deal.North]+row[deal.East] != 13 {
			return fmt.Errorf("%w: strain %s N+E = %d, want 13", ErrSolverFailure, strain, row[deal.North]+row[deal.East])
		}
		if row[deal.South]+row[deal.West] != 13 {
			return fmt.Errorf("%w: strain %s S+W = %d, want 13", ErrSolverFailure, strain, row[deal.South]+row[deal.West])
		}
	}
	return nil
}

// SideTricks returns the better trick count of the two partners of the
// given side in the given strain.
func (t Table) SideTricks(strain Strain, ns bool) int {
	row := t[strain]
	if ns {
		return max(row[deal.North], row[deal.South])
	}
	return max(row[deal.East], row[deal.West])
}
