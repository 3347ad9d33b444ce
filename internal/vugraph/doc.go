// Package vugraph provides HTTP fetching and HTML parsing for the Vugraph
// club pages.
//
// The client fetches the public calendar, event results, pair summary and
// board detail pages and extracts tournament events, pair rosters, board
// lists and card holdings. Responses are decoded as ISO-8859-9 regardless
// of the declared charset, since the site serves Turkish legacy text with
// inconsistent headers. Requests are rate limited per host and retried
// once on transient failures.
package vugraph
