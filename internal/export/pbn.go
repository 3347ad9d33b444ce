package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/hosgoru/vugraph-archive/internal/deal"
	"github.com/hosgoru/vugraph-archive/internal/store"
)

// pbnVulnerable maps store vulnerability onto the PBN tag values.
var pbnVulnerable = map[deal.Vulnerability]string{
	deal.VulnNone: "None",
	deal.VulnNS:   "NS",
	deal.VulnEW:   "EW",
	deal.VulnBoth: "All",
}

// WritePBN writes the records as a sequence of PBN board tags. The deal
// tag lists the hands clockwise from the dealer.
func WritePBN(w io.Writer, records []store.BoardRecord) error {
	for i, r := range records {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if r.EventName != "" {
			if _, err := fmt.Fprintf(w, "[Event %q]\n", r.EventName); err != nil {
				return err
			}
		}
		if r.Date != "" {
			if _, err := fmt.Fprintf(w, "[Date %q]\n", pbnDate(r.Date)); err != nil {
				return err
			}
		}
		vulnerable, ok := pbnVulnerable[r.Vulnerability]
		if !ok {
			vulnerable = string(r.Vulnerability)
		}
		if _, err := fmt.Fprintf(w, "[Board \"%d\"]\n[Dealer %q]\n[Vulnerable %q]\n[Deal %q]\n",
			r.Board, string(r.Dealer), vulnerable, deal.CanonicalPBN(r.Deal(), r.Dealer)); err != nil {
			return err
		}
	}
	return nil
}

// pbnDate converts the store's DD.MM.YYYY onto PBN's YYYY.MM.DD.
func pbnDate(date string) string {
	parts := strings.Split(date, ".")
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "." + parts[1] + "." + parts[0]
}
