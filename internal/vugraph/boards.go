package vugraph

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hosgoru/vugraph-archive/internal/deal"
	"github.com/hosgoru/vugraph-archive/internal/logger"
)

// BoardDetails holds what a board detail page yielded: the hands of the
// seats that parsed cleanly and the event date from the page heading.
type BoardDetails struct {
	Hands map[deal.Seat]deal.Hand
	Date  string // DD.MM.YYYY, empty when the heading is missing
}

// The player cells appear in fixed page order around the table diagram.
var cellSeats = [4]deal.Seat{deal.South, deal.East, deal.North, deal.West}

// Suit images carry the suit in their alt attribute; the holding follows
// as raw text, possibly behind a <br/> and whitespace. A dash is a void.
var suitPatterns = [4]*regexp.Regexp{
	compileSuitPattern("spades"),
	compileSuitPattern("hearts"),
	compileSuitPattern("diamonds"),
	compileSuitPattern("clubs"),
}

func compileSuitPattern(alt string) *regexp.Regexp {
	return regexp.MustCompile(`alt="` + alt + `"[^>]*>(?:\s|<br\s*/?>)*(-|[AKQJTakqjt0-9]*)`)
}

var boardDatePattern = regexp.MustCompile(`(\d{2})-(\d{2})-(\d{4})`)

// FetchBoardListForPair fetches a pair's summary page and returns the
// board numbers it links to, in ascending order.
func (c *Client) FetchBoardListForPair(ctx context.Context, eventID string, pair int, direction string) ([]int, error) {
	query := url.Values{
		"event":     {eventID},
		"section":   {"A"},
		"pair":      {strconv.Itoa(pair)},
		"direction": {direction},
	}
	doc, err := c.get(ctx, "pairsummary.php", query)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	boards := make([]int, 0)
	doc.Find("tr[onclick]").Each(func(i int, row *goquery.Selection) {
		onclick, _ := row.Attr("onclick")
		if !strings.Contains(onclick, "boarddetails.php") {
			return
		}
		link := boardLinkPattern.FindString(onclick)
		board, err := strconv.Atoi(queryParam(link, "board"))
		if err != nil || board < 1 || seen[board] {
			return
		}
		seen[board] = true
		boards = append(boards, board)
	})
	sort.Ints(boards)
	return boards, nil
}

var boardLinkPattern = regexp.MustCompile(`boarddetails\.php\?[^'"]*`)

// FetchBoardDetails fetches one board's detail page and extracts the
// hands. Seats whose cell does not yield exactly thirteen cards are left
// out of the result; the caller reconstructs a single missing hand.
func (c *Client) FetchBoardDetails(ctx context.Context, eventID, section string, pair int, direction string, board int) (BoardDetails, error) {
	query := url.Values{
		"event":     {eventID},
		"section":   {section},
		"pair":      {strconv.Itoa(pair)},
		"direction": {direction},
		"board":     {strconv.Itoa(board)},
	}
	doc, err := c.get(ctx, "boarddetails.php", query)
	if err != nil {
		return BoardDetails{}, err
	}
	return parseBoardDetails(doc, board)
}

func parseBoardDetails(doc *goquery.Document, board int) (BoardDetails, error) {
	details := BoardDetails{Hands: make(map[deal.Seat]deal.Hand)}

	if m := boardDatePattern.FindStringSubmatch(doc.Find("h3").First().Text()); m != nil {
		details.Date = fmt.Sprintf("%s.%s.%s", m[1], m[2], m[3])
	}

	cells := doc.Find("table.bridgetable td.oyuncu")
	if cells.Length() < len(cellSeats) {
		return details, fmt.Errorf("board %d: found %d player cells, want %d", board, cells.Length(), len(cellSeats))
	}

	for idx, seat := range cellSeats {
		html, err := goquery.OuterHtml(cells.Eq(idx))
		if err != nil {
			continue
		}
		hand, ok := parseHandCell(html)
		if !ok {
			continue
		}
		parsed, err := deal.ParseHand(hand.String())
		if err != nil {
			logger.Warn("discarding unparseable hand", logger.Fields{
				"board": board,
				"seat":  string(seat),
				"hand":  hand.String(),
			})
			continue
		}
		details.Hands[seat] = parsed
	}

	return details, nil
}

// parseHandCell extracts the four suit holdings from one player cell's
// serialised HTML. Suits are matched by alt attribute, never by position,
// since the images appear in arbitrary order. Returns false when the cell
// carries no suit images at all.
func parseHandCell(html string) (deal.Hand, bool) {
	var hand deal.Hand
	found := false
	for suit, pattern := range suitPatterns {
		m := pattern.FindStringSubmatch(html)
		if m == nil {
			continue
		}
		found = true
		holding := strings.ToUpper(m[1])
		if holding == "-" {
			holding = ""
		}
		hand[suit] = strings.ReplaceAll(holding, "10", "T")
	}
	return hand, found
}
