package vugraph

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fixtureServer serves the named fixture files, keyed by request page,
// exactly as the live site would: ISO-8859-9 bytes behind a utf-8 header.
func fixtureServer(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, ok := pages[strings.TrimPrefix(r.URL.Path, "/")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		data, err := os.ReadFile(filepath.Join("testdata", "fixtures", name))
		if err != nil {
			t.Errorf("loading fixture %s: %v", name, err)
			http.Error(w, "missing fixture", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(data)
	}))
}

func testClient(baseURL string) *Client {
	return NewClient(baseURL, time.Millisecond)
}

func TestClientRetriesServerError(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			http.Error(w, "temporary", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("<html><body></body></html>"))
	}))
	defer server.Close()

	if _, err := testClient(server.URL).FetchCalendar(context.Background(), 6, 2025); err != nil {
		t.Fatalf("FetchCalendar failed after retry: %v", err)
	}
	if requests != 2 {
		t.Errorf("expected 2 requests, got %d", requests)
	}
}

func TestClientGivesUpAfterOneRetry(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "broken", http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := testClient(server.URL).FetchCalendar(context.Background(), 6, 2025); err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if requests != 2 {
		t.Errorf("expected 2 requests, got %d", requests)
	}
}

func TestClientNotFoundIsPermanent(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchBoardDetails(context.Background(), "404377", "A", 1, "NS", 31)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if requests != 1 {
		t.Errorf("404 should not be retried, got %d requests", requests)
	}
}

func TestClientRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body></body></html>"))
	}))
	defer server.Close()

	c := NewClient(server.URL, 30*time.Millisecond)
	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := c.FetchCalendar(context.Background(), 6, 2025); err != nil {
			t.Fatalf("FetchCalendar failed: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Errorf("three requests finished in %v, want at least two rate intervals", elapsed)
	}
}

func TestClientHonoursContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body></body></html>"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(server.URL, time.Second)
	if _, err := c.FetchCalendar(ctx, 6, 2025); err == nil {
		t.Error("expected error from cancelled context")
	}
}
