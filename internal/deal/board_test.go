package deal

import "testing"

func TestDealerFor(t *testing.T) {
	tests := []struct {
		board int
		want  Seat
	}{
		{1, North}, {2, East}, {3, South}, {4, West},
		{5, North}, {16, West}, {17, North}, {32, West},
	}
	for _, tt := range tests {
		if got := DealerFor(tt.board); got != tt.want {
			t.Errorf("DealerFor(%d) = %s, want %s", tt.board, got, tt.want)
		}
	}
}

func TestVulnerabilityFor(t *testing.T) {
	tests := []struct {
		board int
		want  Vulnerability
	}{
		{1, VulnNone}, {2, VulnNS}, {3, VulnEW}, {4, VulnBoth},
		{8, VulnNone}, {11, VulnNone}, {16, VulnEW},
		{17, VulnNone}, {18, VulnNS}, {33, VulnNone},
	}
	for _, tt := range tests {
		if got := VulnerabilityFor(tt.board); got != tt.want {
			t.Errorf("VulnerabilityFor(%d) = %s, want %s", tt.board, got, tt.want)
		}
	}
}

func TestVulnerabilityCycleLength(t *testing.T) {
	for board := 1; board <= 16; board++ {
		if VulnerabilityFor(board) != VulnerabilityFor(board+16) {
			t.Errorf("board %d and %d disagree", board, board+16)
		}
		if DealerFor(board) != DealerFor(board+16) {
			t.Errorf("dealer for board %d and %d disagree", board, board+16)
		}
	}
}
