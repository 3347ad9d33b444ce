package dds

// trickValue returns the points per contracted trick in a strain; the
// first no-trump trick scores 40 and is handled by the caller.
func trickValue(strain Strain) int {
	switch strain {
	case Clubs, Diamonds:
		return 20
	case Hearts, Spades:
		return 30
	default:
		return 30
	}
}

// contractScore returns the duplicate score, from the declaring side's
// point of view, for a contract at the given level and strain when the
// declarer takes the given number of tricks. doubled is 0 (undoubled),
// 1 (doubled) or 2 (redoubled).
func contractScore(level int, strain Strain, doubled int, vulnerable bool, tricks int) int {
	needed := level + 6
	if tricks < needed {
		return -penalty(needed-tricks, doubled, vulnerable)
	}

	points := trickValue(strain) * level
	if strain == NoTrump {
		points += 10
	}
	points <<= doubled

	score := points
	if points >= 100 {
		if vulnerable {
			score += 500
		} else {
			score += 300
		}
	} else {
		score += 50
	}

	switch level {
	case 6:
		if vulnerable {
			score += 750
		} else {
			score += 500
		}
	case 7:
		if vulnerable {
			score += 1500
		} else {
			score += 1000
		}
	}

	score += 50 * doubled

	over := tricks - needed
	if over > 0 {
		if doubled == 0 {
			score += over * trickValue(strain)
		} else if vulnerable {
			score += over * 200 * doubled
		} else {
			score += over * 100 * doubled
		}
	}
	return score
}

// penalty returns the positive undertrick penalty for going down the
// given number of tricks.
func penalty(down, doubled int, vulnerable bool) int {
	if doubled == 0 {
		if vulnerable {
			return down * 100
		}
		return down * 50
	}

	var p int
	if vulnerable {
		p = 200 + 300*(down-1)
	} else {
		switch {
		case down == 1:
			p = 100
		case down <= 3:
			p = 100 + 200*(down-1)
		default:
			p = 500 + 300*(down-3)
		}
	}
	return p * doubled
}
