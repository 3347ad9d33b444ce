package deal

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseHand(t *testing.T) {
	h, err := ParseHand("K86.QJT7.AQT.832")
	if err != nil {
		t.Fatalf("ParseHand failed: %v", err)
	}
	if h.Count() != 13 {
		t.Errorf("expected 13 cards, got %d", h.Count())
	}
	if h.String() != "K86.QJT7.AQT.832" {
		t.Errorf("unexpected round-trip: %s", h.String())
	}
}

func TestParseHandNormalizesOrder(t *testing.T) {
	h, err := ParseHand("68k.7tjq.qta.238")
	if err != nil {
		t.Fatalf("ParseHand failed: %v", err)
	}
	if h.String() != "K86.QJT7.AQT.832" {
		t.Errorf("expected rank-descending normalization, got %s", h.String())
	}
}

func TestParseHandVoids(t *testing.T) {
	// A void is the empty string, but a literal "-" is accepted on input.
	for _, pbn := range []string{"AKQJT98765432...", "AKQJT98765432.-.-.-"} {
		h, err := ParseHand(pbn)
		if err != nil {
			t.Fatalf("ParseHand(%q) failed: %v", pbn, err)
		}
		if h.String() != "AKQJT98765432..." {
			t.Errorf("ParseHand(%q) = %s", pbn, h.String())
		}
	}
}

func TestParseHandErrors(t *testing.T) {
	tests := []struct {
		name string
		pbn  string
	}{
		{"three suits", "AKQ.JT9.876"},
		{"bad rank", "AK1.QJT7.AQT.832Z"},
		{"duplicate rank", "AKK6.QJT7.AQT.832"},
		{"twelve cards", "K86.QJT7.AQT.83"},
		{"fourteen cards", "K862.QJT7.AQT.8432"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseHand(tt.pbn); !errors.Is(err, ErrInvalidHand) {
				t.Errorf("ParseHand(%q) = %v, want ErrInvalidHand", tt.pbn, err)
			}
		})
	}
}

func TestParseLINHand(t *testing.T) {
	h, err := ParseLINHand("SK86HQJT7DAQTC832")
	if err != nil {
		t.Fatalf("ParseLINHand failed: %v", err)
	}
	if h.String() != "K86.QJT7.AQT.832" {
		t.Errorf("unexpected hand: %s", h.String())
	}
}

func TestParseLINHandVoid(t *testing.T) {
	// A void is the suit letter immediately followed by the next.
	h, err := ParseLINHand("SAKQJT98765432HDC")
	if err != nil {
		t.Fatalf("ParseLINHand failed: %v", err)
	}
	if h.String() != "AKQJT98765432..." {
		t.Errorf("unexpected hand: %s", h.String())
	}
}

func TestParseLINHandDottedForm(t *testing.T) {
	// Vugraph LIN exports carry dotted PBN hands inside md tokens.
	h, err := ParseLINHand("975.A53.KJ93.J76")
	if err != nil {
		t.Fatalf("ParseLINHand failed: %v", err)
	}
	if h.String() != "975.A53.KJ93.J76" {
		t.Errorf("unexpected hand: %s", h.String())
	}
}

func TestHandJSONRoundTrip(t *testing.T) {
	h, err := ParseHand("T42.2.8542.KQT54")
	if err != nil {
		t.Fatalf("ParseHand failed: %v", err)
	}

	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"T42.2.8542.KQT54"` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var back Hand
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back != h {
		t.Errorf("round-trip mismatch: %s != %s", back, h)
	}
}
