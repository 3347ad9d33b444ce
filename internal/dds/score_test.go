package dds

import "testing"

func TestContractScoreMaking(t *testing.T) {
	tests := []struct {
		name    string
		level   int
		strain  Strain
		doubled int
		vul     bool
		tricks  int
		want    int
	}{
		{"1NT just in", 1, NoTrump, 0, false, 7, 90},
		{"2H partscore", 2, Hearts, 0, false, 8, 110},
		{"3NT nonvul", 3, NoTrump, 0, false, 9, 400},
		{"3NT vul", 3, NoTrump, 0, true, 9, 600},
		{"3NT with overtrick", 3, NoTrump, 0, false, 10, 430},
		{"4S vul", 4, Spades, 0, true, 10, 620},
		{"5C nonvul", 5, Clubs, 0, false, 11, 400},
		{"6C vul", 6, Clubs, 0, true, 12, 1370},
		{"7NT nonvul", 7, NoTrump, 0, false, 13, 1520},
		{"2S doubled into game", 2, Spades, 1, false, 8, 470},
		{"1NT redoubled vul", 1, NoTrump, 2, true, 7, 760},
		{"4H doubled vul overtrick", 4, Hearts, 1, true, 11, 990},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := contractScore(tt.level, tt.strain, tt.doubled, tt.vul, tt.tricks)
			if got != tt.want {
				t.Errorf("contractScore = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestContractScoreGoingDown(t *testing.T) {
	tests := []struct {
		name    string
		level   int
		strain  Strain
		doubled int
		vul     bool
		tricks  int
		want    int
	}{
		{"down 1 undoubled nonvul", 4, Spades, 0, false, 9, -50},
		{"down 2 undoubled vul", 3, NoTrump, 0, true, 7, -200},
		{"down 1 doubled nonvul", 4, Spades, 1, false, 9, -100},
		{"down 2 doubled nonvul", 5, Hearts, 1, false, 9, -300},
		{"down 3 doubled nonvul", 5, Hearts, 1, false, 8, -500},
		{"down 4 doubled nonvul", 5, Hearts, 1, false, 7, -800},
		{"down 1 doubled vul", 3, NoTrump, 1, true, 8, -200},
		{"down 3 doubled vul", 5, Diamonds, 1, true, 8, -800},
		{"down 1 redoubled nonvul", 2, Clubs, 2, false, 7, -200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := contractScore(tt.level, tt.strain, tt.doubled, tt.vul, tt.tricks)
			if got != tt.want {
				t.Errorf("contractScore = %d, want %d", got, tt.want)
			}
		})
	}
}
