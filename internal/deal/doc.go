// Package deal provides the card model for bridge deals.
//
// A Hand is four rank-descending suit holdings; a Deal maps the four seats
// to their hands together with the dealer and vulnerability derived from the
// board number. The package parses PBN and LIN notation, reconstructs a
// missing fourth hand from the 52-card complement, and rotates LIN hand
// lists (given in dealer-first clockwise order) onto compass seats.
package deal
