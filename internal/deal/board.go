package deal

// dealers repeats every four boards starting from North on board 1.
var dealers = [4]Seat{North, East, South, West}

// vulnerabilities repeats every sixteen boards; the offset shifts by one
// extra step each group of four, which is what makes boards 8 and 11
// non-vulnerable while board 16 is EW.
var vulnerabilities = [16]Vulnerability{
	VulnNone, VulnNS, VulnEW, VulnBoth,
	VulnNS, VulnEW, VulnBoth, VulnNone,
	VulnEW, VulnBoth, VulnNone, VulnNS,
	VulnBoth, VulnNone, VulnNS, VulnEW,
}

// DealerFor returns the dealer encoded by a 1-based board number.
func DealerFor(board int) Seat {
	return dealers[(board-1)%4]
}

// VulnerabilityFor returns the vulnerability encoded by a 1-based board
// number.
func VulnerabilityFor(board int) Vulnerability {
	return vulnerabilities[(board-1)%16]
}
