package vugraph

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Event is one tournament day found on the calendar page.
type Event struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"` // DD.MM.YYYY
}

// FetchCalendar fetches the calendar grid for a month and returns one
// Event per unique event id. The calendar repeats an event's anchor for
// every session it lists, so duplicates keep only the first occurrence.
func (c *Client) FetchCalendar(ctx context.Context, month, year int) ([]Event, error) {
	query := url.Values{
		"month": {strconv.Itoa(month)},
		"year":  {strconv.Itoa(year)},
	}
	doc, err := c.get(ctx, "calendar.php", query)
	if err != nil {
		return nil, err
	}
	return parseCalendar(doc, month, year), nil
}

func parseCalendar(doc *goquery.Document, month, year int) []Event {
	events := make([]Event, 0)
	seen := make(map[string]bool)

	doc.Find("td.days").Each(func(i int, cell *goquery.Selection) {
		dayText := strings.TrimSpace(cell.Find("td.days2").First().Text())
		day, err := strconv.Atoi(dayText)
		if err != nil {
			return
		}
		date := fmt.Sprintf("%02d.%02d.%04d", day, month, year)

		cell.Find("a[href]").Each(func(j int, link *goquery.Selection) {
			href, _ := link.Attr("href")
			if !strings.Contains(href, "eventresults.php") {
				return
			}
			id := queryParam(href, "event")
			if id == "" || seen[id] {
				return
			}
			seen[id] = true
			events = append(events, Event{
				ID:   id,
				Name: strings.TrimSpace(link.Text()),
				Date: date,
			})
		})
	})

	return events
}
