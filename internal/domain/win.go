package domain

// Lines lists the eight index triples that complete a game, rows first, then
// columns, then the two diagonals.
var Lines = [8][3]int{
	// rows
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	// cols
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	// diags
	{0, 4, 8}, {2, 4, 6},
}

// HasWinner reports whether any line on b is held entirely by one mark.
//
// A full board without a line reports false, the same as a game in progress.
// The winning mark is not returned: it belongs to the player who moved last,
// which is the opposite of GameState.CurrentTurn once the move is applied.
func HasWinner(b Board) bool {
	return hasLine(b, Lines[:])
}

func hasLine(b Board, lines [][3]int) bool {
	for _, ln := range lines {
		a := b[ln[0]]
		if a != Empty && a == b[ln[1]] && a == b[ln[2]] {
			return true
		}
	}
	return false
}
