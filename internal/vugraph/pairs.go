package vugraph

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Pair is one row of the event results table: a partnership's rank within
// its direction, the players, and the matchpoint percentage.
type Pair struct {
	Number    int     `json:"number"`
	Direction string  `json:"direction"` // NS or EW
	Rank      int     `json:"rank"`
	Names     string  `json:"names"`
	Score     float64 `json:"score"`
}

var pairLinkPattern = regexp.MustCompile(`pairsummary\.php\?[^'"]*`)

// FetchEventPairs fetches the results page of an event and returns every
// ranked pair from both direction sections. The sections are headed by
// the Turkish direction names; rows carry their pair number and direction
// in an onclick link to the pair summary page.
func (c *Client) FetchEventPairs(ctx context.Context, eventID string) ([]Pair, error) {
	doc, err := c.get(ctx, "eventresults.php", url.Values{"event": {eventID}})
	if err != nil {
		return nil, err
	}
	return parseEventPairs(doc), nil
}

func parseEventPairs(doc *goquery.Document) []Pair {
	pairs := make([]Pair, 0)
	direction := ""

	doc.Find("table.colored").First().Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() == 0 {
			return
		}

		// Single-cell rows are the direction headings.
		if cells.Length() == 1 {
			heading := cells.First().Text()
			switch {
			case strings.Contains(heading, "Kuzey") || strings.Contains(heading, "North"):
				direction = "NS"
			case strings.Contains(heading, "Doğu") || strings.Contains(heading, "East"):
				direction = "EW"
			}
			return
		}
		if direction == "" || cells.Length() < 3 {
			return
		}

		rank, err := strconv.Atoi(strings.TrimSpace(cells.Eq(0).Text()))
		if err != nil {
			// Column header row, or a separator.
			return
		}
		names := strings.TrimSpace(cells.Eq(1).Text())

		// Turkish pages print decimals with a comma.
		scoreText := strings.ReplaceAll(strings.TrimSpace(cells.Eq(2).Text()), ",", ".")
		score, err := strconv.ParseFloat(scoreText, 64)
		if err != nil {
			return
		}

		pair := Pair{Direction: direction, Rank: rank, Names: names, Score: score}
		if onclick, ok := row.Attr("onclick"); ok {
			if link := pairLinkPattern.FindString(onclick); link != "" {
				if n, err := strconv.Atoi(queryParam(link, "pair")); err == nil {
					pair.Number = n
				}
				if d := queryParam(link, "direction"); d != "" {
					pair.Direction = d
				}
			}
		}
		pairs = append(pairs, pair)
	})

	return pairs
}
