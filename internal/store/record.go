package store

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/hosgoru/vugraph-archive/internal/dds"
	"github.com/hosgoru/vugraph-archive/internal/deal"
)

// ErrIdentityConflict reports an upsert whose record carries a different
// event id or board number than the key it was declared under.
var ErrIdentityConflict = errors.New("record identity conflict")

// Key identifies one board of one event.
type Key struct {
	EventID string `json:"event_id"`
	Board   int    `json:"board"`
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%d", k.EventID, k.Board)
}

// BoardRecord is one stored board: the deal, the tournament context it
// was found in, and whatever analysis has been computed so far. Analysis
// fields stay null until a solve pass fills them.
type BoardRecord struct {
	EventID       string                  `json:"event_id"`
	Board         int                     `json:"board"`
	EventName     string                  `json:"event_name,omitempty"`
	Date          string                  `json:"date,omitempty"` // DD.MM.YYYY
	Dealer        deal.Seat               `json:"dealer"`
	Vulnerability deal.Vulnerability      `json:"vulnerability"`
	Hands         map[deal.Seat]deal.Hand `json:"hands,omitempty"`
	DD            dds.Table               `json:"dd_table,omitempty"`
	Par           *dds.Contract           `json:"par,omitempty"`
	LoTT          *dds.LoTT               `json:"lott,omitempty"`
}

// Key returns the record's identity.
func (r BoardRecord) Key() Key {
	return Key{EventID: r.EventID, Board: r.Board}
}

// Deal assembles the record's deal.
func (r BoardRecord) Deal() deal.Deal {
	return deal.Deal{
		Board:         r.Board,
		Dealer:        r.Dealer,
		Vulnerability: r.Vulnerability,
		Hands:         r.Hands,
	}
}

// Validate checks the at-rest invariants: a full consistent deal, dealer
// and vulnerability matching the board number, and a well-formed trick
// table when one is present.
func (r BoardRecord) Validate() error {
	if r.EventID == "" || r.Board < 1 {
		return fmt.Errorf("%w: key %s", ErrIdentityConflict, r.Key())
	}
	if err := r.Deal().Validate(); err != nil {
		return fmt.Errorf("record %s: %w", r.Key(), err)
	}
	if r.DD != nil {
		if err := r.DD.Validate(); err != nil {
			return fmt.Errorf("record %s: %w", r.Key(), err)
		}
	}
	return nil
}

// merge folds an incoming record into the stored one. Hands are immutable
// truth, so the stored value wins there; analysis results are expected to
// improve, so the incoming value wins for dd_table, par and lott. Context
// fields fill in only when previously empty.
func merge(stored, incoming BoardRecord) BoardRecord {
	out := stored
	if len(out.Hands) == 0 {
		out.Hands = incoming.Hands
	}
	if incoming.DD != nil {
		out.DD = incoming.DD
	}
	if incoming.Par != nil {
		out.Par = incoming.Par
	}
	if incoming.LoTT != nil {
		out.LoTT = incoming.LoTT
	}
	if out.EventName == "" {
		out.EventName = incoming.EventName
	}
	if out.Date == "" {
		out.Date = incoming.Date
	}
	if out.Dealer == "" {
		out.Dealer = incoming.Dealer
	}
	if out.Vulnerability == "" {
		out.Vulnerability = incoming.Vulnerability
	}
	return out
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4})$`),
	regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`),
}

var isoDatePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// NormalizeDate canonicalises the date forms found across Vugraph pages
// and old store files onto DD.MM.YYYY. Unrecognised text passes through
// unchanged.
func NormalizeDate(date string) string {
	date = strings.TrimSpace(date)
	for _, p := range datePatterns {
		if m := p.FindStringSubmatch(date); m != nil {
			return fmt.Sprintf("%s.%s.%s", m[1], m[2], m[3])
		}
	}
	if m := isoDatePattern.FindStringSubmatch(date); m != nil {
		return fmt.Sprintf("%s.%s.%s", m[3], m[2], m[1])
	}
	return date
}
