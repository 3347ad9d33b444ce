package dds

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hosgoru/vugraph-archive/internal/deal"
)

// RemoteBackend asks an external double-dummy service for trick tables.
// The request carries the deal in PBN deal-tag notation; the response is
// the JSON table keyed by strain and seat.
type RemoteBackend struct {
	url    string
	client *http.Client
}

// NewRemoteBackend creates a backend posting to the given URL.
func NewRemoteBackend(url string) *RemoteBackend {
	return &RemoteBackend{
		url:    url,
		client: &http.Client{},
	}
}

type remoteRequest struct {
	PBN           string `json:"pbn"`
	Dealer        string `json:"dealer"`
	Vulnerability string `json:"vulnerability"`
}

type remoteResponse struct {
	Table Table `json:"table"`
}

// Solve posts the deal and decodes the returned table. Shape validation is
// the Adapter's job; this only normalises the transport.
func (b *RemoteBackend) Solve(ctx context.Context, d deal.Deal) (Table, error) {
	body, err := json.Marshal(remoteRequest{
		PBN:           deal.CanonicalPBN(d, deal.North),
		Dealer:        string(d.Dealer),
		Vulnerability: string(d.Vulnerability),
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling solver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("solver returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading solver response: %w", err)
	}

	var decoded remoteResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("parsing solver response: %w", err)
	}
	if decoded.Table == nil {
		return nil, fmt.Errorf("solver response has no table")
	}
	return decoded.Table, nil
}
