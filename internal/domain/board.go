package domain

// Mark represents the content of a board cell.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

// String returns "X", "O" or "" for Empty.
func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Opponent returns the other player's mark. Empty has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// Cells is the number of cells on a board.
const Cells = 9

// Board is a fixed 3x3 board stored row-major (index = row*3 + col).
// It is a value type: updating a copy never touches the original.
type Board [Cells]Mark

// With returns a copy of b with cell idx set to m.
func (b Board) With(idx int, m Mark) Board {
	b[idx] = m
	return b
}

// Occupied returns the number of non-empty cells.
func (b Board) Occupied() int {
	n := 0
	for _, c := range b {
		if c != Empty {
			n++
		}
	}
	return n
}

// Index converts a row and column (0..2) to a board index.
func Index(row, col int) int { return row*3 + col }
