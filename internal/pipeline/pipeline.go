package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hosgoru/vugraph-archive/internal/dds"
	"github.com/hosgoru/vugraph-archive/internal/deal"
	"github.com/hosgoru/vugraph-archive/internal/logger"
	"github.com/hosgoru/vugraph-archive/internal/store"
	"github.com/hosgoru/vugraph-archive/internal/vugraph"
)

// BoardsPerEvent is how many boards a club tournament day plays.
const BoardsPerEvent = 30

// ErrNetworkExhausted reports a refresh pass in which every request
// failed, meaning the site or the network is down rather than individual
// pages being broken.
var ErrNetworkExhausted = errors.New("network exhausted")

// Fetcher is the subset of the Vugraph client the pipeline uses.
type Fetcher interface {
	FetchCalendar(ctx context.Context, month, year int) ([]vugraph.Event, error)
	FetchEventPairs(ctx context.Context, eventID string) ([]vugraph.Pair, error)
	FetchBoardListForPair(ctx context.Context, eventID string, pair int, direction string) ([]int, error)
	FetchBoardDetails(ctx context.Context, eventID, section string, pair int, direction string, board int) (vugraph.BoardDetails, error)
}

// Solver produces a validated trick table for a deal.
type Solver interface {
	Solve(ctx context.Context, d deal.Deal) (dds.Table, error)
}

// Pipeline wires the fetcher, the store and the solver into passes.
type Pipeline struct {
	Fetcher        Fetcher
	Store          *store.Store
	Solver         Solver
	BoardsPerEvent int
	Counters       *logger.Counters
}

// New creates a pipeline with the default boards-per-event count.
func New(f Fetcher, st *store.Store, solver Solver) *Pipeline {
	return &Pipeline{
		Fetcher:        f,
		Store:          st,
		Solver:         solver,
		BoardsPerEvent: BoardsPerEvent,
		Counters:       logger.NewCounters(),
	}
}

// Refresh walks the calendar between from and to inclusive, fetches the
// hands of every board not yet stored, and saves the store after each
// event. Item failures are logged and counted; the pass only fails when
// no request succeeded at all.
func (p *Pipeline) Refresh(ctx context.Context, from, to time.Time) error {
	succeeded, failed := 0, 0

	for year, month := from.Year(), from.Month(); !afterMonth(year, month, to); year, month = nextMonth(year, month) {
		events, err := p.Fetcher.FetchCalendar(ctx, int(month), year)
		if err != nil {
			logger.Error("calendar fetch failed", logger.Fields{"month": int(month), "year": year}, err)
			p.Counters.Incr("requests.failed")
			failed++
			continue
		}
		succeeded++

		for _, evt := range events {
			if !eventInRange(evt, from, to) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.Counters.Incr("events.seen")

			ok, fail := p.refreshEvent(ctx, evt)
			succeeded += ok
			failed += fail

			if err := p.Store.Save(); err != nil {
				return fmt.Errorf("saving store: %w", err)
			}
		}
	}

	if failed > 0 && succeeded == 0 {
		return fmt.Errorf("%w: %d requests failed", ErrNetworkExhausted, failed)
	}
	return nil
}

// refreshEvent fetches every missing board of one event. Returns how many
// requests succeeded and failed, for the network-exhaustion verdict.
func (p *Pipeline) refreshEvent(ctx context.Context, evt vugraph.Event) (succeeded, failed int) {
	if p.eventComplete(evt.ID) {
		p.Counters.Incr("events.skipped")
		return 0, 0
	}

	pairs, err := p.Fetcher.FetchEventPairs(ctx, evt.ID)
	if err != nil {
		logger.Error("event pairs fetch failed", logger.Fields{"event": evt.ID}, err)
		p.Counters.Incr("requests.failed")
		return 0, 1
	}
	succeeded++

	// Any one pair's board pages show all four hands; one pair per
	// direction covers boards the other direction never played.
	sources := pickPairs(pairs)
	if len(sources) == 0 {
		logger.Warn("event has no ranked pairs", logger.Fields{"event": evt.ID})
		return succeeded, failed
	}

	boardSources := make(map[int][]vugraph.Pair)
	for _, pair := range sources {
		boards, err := p.Fetcher.FetchBoardListForPair(ctx, evt.ID, pair.Number, pair.Direction)
		if err != nil {
			logger.Warn("board list fetch failed", logger.Fields{
				"event": evt.ID, "pair": pair.Number, "direction": pair.Direction,
			})
			p.Counters.Incr("requests.failed")
			failed++
			continue
		}
		succeeded++
		for _, b := range boards {
			boardSources[b] = append(boardSources[b], pair)
		}
	}

	limit := p.BoardsPerEvent
	if limit <= 0 {
		limit = BoardsPerEvent
	}
	for board := 1; board <= limit; board++ {
		if ctx.Err() != nil {
			return succeeded, failed
		}
		key := store.Key{EventID: evt.ID, Board: board}
		if p.Store.IsMissing(key) {
			continue
		}
		if rec, ok := p.Store.Get(key); ok && len(rec.Hands) == 4 {
			continue
		}

		candidates := boardSources[board]
		if len(candidates) == 0 {
			candidates = sources[:1]
		}
		ok, fail := p.fetchBoard(ctx, evt, key, candidates)
		succeeded += ok
		failed += fail
	}
	return succeeded, failed
}

// fetchBoard tries the candidate pairs in turn until one page yields a
// usable deal. A 404 from every candidate puts the board in the negative
// cache.
func (p *Pipeline) fetchBoard(ctx context.Context, evt vugraph.Event, key store.Key, candidates []vugraph.Pair) (succeeded, failed int) {
	notFound := 0
	for _, pair := range candidates {
		details, err := p.Fetcher.FetchBoardDetails(ctx, key.EventID, "A", pair.Number, pair.Direction, key.Board)
		switch {
		case errors.Is(err, vugraph.ErrNotFound):
			notFound++
			continue
		case err != nil:
			logger.Warn("board fetch failed", logger.Fields{"board": key.String()})
			p.Counters.Incr("requests.failed")
			failed++
			continue
		}
		succeeded++
		p.Counters.Incr("boards.fetched")

		d, err := assembleDeal(key.Board, details)
		if err != nil {
			logger.Warn("board page did not yield a deal", logger.Fields{
				"board": key.String(), "hands": len(details.Hands),
			})
			p.Counters.Incr("boards.parse_failed")
			continue
		}

		date := details.Date
		if date == "" {
			date = evt.Date
		}
		_, err = p.Store.Upsert(key, store.BoardRecord{
			EventID:       key.EventID,
			Board:         key.Board,
			EventName:     evt.Name,
			Date:          date,
			Dealer:        d.Dealer,
			Vulnerability: d.Vulnerability,
			Hands:         d.Hands,
		})
		if err != nil {
			logger.Error("upsert rejected board", logger.Fields{"board": key.String()}, err)
			p.Counters.Incr("boards.rejected")
			return succeeded, failed
		}
		p.Counters.Incr("boards.upserted")
		return succeeded, failed
	}

	if notFound > 0 && notFound == len(candidates) {
		p.Store.MarkMissing(key)
		p.Counters.Incr("boards.missing")
	}
	return succeeded, failed
}

// assembleDeal turns a parsed board page into a validated deal,
// reconstructing the fourth hand when exactly one seat failed to parse.
func assembleDeal(board int, details vugraph.BoardDetails) (deal.Deal, error) {
	hands := details.Hands
	if len(hands) == 3 {
		var present []deal.Hand
		var absent deal.Seat
		for _, seat := range deal.Seats {
			h, ok := hands[seat]
			if !ok {
				absent = seat
				continue
			}
			present = append(present, h)
		}
		fourth, err := deal.ReconstructFourth(present[0], present[1], present[2])
		if err != nil {
			return deal.Deal{}, err
		}
		hands = map[deal.Seat]deal.Hand{absent: fourth}
		for seat, h := range details.Hands {
			hands[seat] = h
		}
	}
	return deal.NewDeal(board, hands)
}

// eventComplete reports whether every board of the event already has
// hands or is known to be missing.
func (p *Pipeline) eventComplete(eventID string) bool {
	limit := p.BoardsPerEvent
	if limit <= 0 {
		limit = BoardsPerEvent
	}
	for board := 1; board <= limit; board++ {
		key := store.Key{EventID: eventID, Board: board}
		if p.Store.IsMissing(key) {
			continue
		}
		rec, ok := p.Store.Get(key)
		if !ok || len(rec.Hands) != 4 {
			return false
		}
	}
	return true
}

// pickPairs selects the first ranked pair of each direction.
func pickPairs(pairs []vugraph.Pair) []vugraph.Pair {
	picked := make([]vugraph.Pair, 0, 2)
	seen := make(map[string]bool)
	for _, pair := range pairs {
		if pair.Number == 0 || seen[pair.Direction] {
			continue
		}
		seen[pair.Direction] = true
		picked = append(picked, pair)
	}
	return picked
}

// SolveMissing runs the solver over every record without a trick table
// and stores the table, the par contract and the LoTT statistic. Solver
// failures leave the record unsolved for a later pass.
func (p *Pipeline) SolveMissing(ctx context.Context) error {
	return p.solve(ctx, store.Filter{MissingDD: true})
}

// SolveAll recomputes the analysis of every stored record, overwriting
// previous results.
func (p *Pipeline) SolveAll(ctx context.Context) error {
	return p.solve(ctx, store.Filter{})
}

func (p *Pipeline) solve(ctx context.Context, filter store.Filter) error {
	for _, rec := range p.Store.Scan(filter) {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		d := rec.Deal()
		table, err := p.Solver.Solve(ctx, d)
		if err != nil {
			logger.Error("solver failed", logger.Fields{"board": rec.Key().String()}, err)
			p.Counters.Incr("solver.failures")
			continue
		}

		par := dds.ComputePar(table, rec.Vulnerability)
		lott := dds.ComputeLoTT(d, table)
		_, err = p.Store.Upsert(rec.Key(), store.BoardRecord{
			EventID: rec.EventID,
			Board:   rec.Board,
			DD:      table,
			Par:     &par,
			LoTT:    &lott,
		})
		if err != nil {
			logger.Error("upsert rejected analysis", logger.Fields{"board": rec.Key().String()}, err)
			p.Counters.Incr("boards.rejected")
			continue
		}
		p.Counters.Incr("boards.solved")
	}
	return p.Store.Save()
}

// Verify runs every at-rest invariant over the store and returns the
// violations.
func (p *Pipeline) Verify() []error {
	var violations []error
	for _, rec := range p.Store.Scan(store.Filter{}) {
		if err := rec.Validate(); err != nil {
			violations = append(violations, err)
		}
	}
	return violations
}

// afterMonth reports whether year/month lies beyond the month of t.
func afterMonth(year int, month time.Month, t time.Time) bool {
	if year != t.Year() {
		return year > t.Year()
	}
	return month > t.Month()
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// eventInRange checks the calendar date against the requested window.
// Events with unparseable dates stay in, since skipping silently would
// hide data.
func eventInRange(evt vugraph.Event, from, to time.Time) bool {
	t, err := time.Parse("02.01.2006", store.NormalizeDate(evt.Date))
	if err != nil {
		return true
	}
	return !t.Before(from) && !t.After(to)
}
