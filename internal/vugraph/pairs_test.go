package vugraph

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFetchEventPairs(t *testing.T) {
	server := fixtureServer(t, map[string]string{"eventresults.php": "eventresults.html"})
	defer server.Close()

	pairs, err := testClient(server.URL).FetchEventPairs(context.Background(), "404377")
	if err != nil {
		t.Fatalf("FetchEventPairs failed: %v", err)
	}

	want := []Pair{
		{Number: 1, Direction: "NS", Rank: 1, Names: "AYŞE YILMAZ - MEHMET ÖZTÜRK", Score: 62.5},
		{Number: 3, Direction: "NS", Rank: 2, Names: "FATMA DEMİR - ALİ KAYA", Score: 58.33},
		{Number: 2, Direction: "EW", Rank: 1, Names: "ZEYNEP ÇELİK - MUSTAFA ŞAHİN", Score: 55},
	}
	if diff := cmp.Diff(want, pairs); diff != "" {
		t.Errorf("pairs mismatch (-want +got):\n%s", diff)
	}
}
