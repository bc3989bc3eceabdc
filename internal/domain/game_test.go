package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// play applies moves in order, each one placing the current turn's mark.
func play(t *testing.T, g *GameState, cells ...int) {
	t.Helper()
	for i, c := range cells {
		b := g.CurrentBoard()
		require.Equalf(t, Empty, b[c], "move %d: cell %d occupied", i, c)
		g.ApplyMove(b.With(c, g.CurrentTurn()))
	}
}

func TestNewGameInitialState(t *testing.T) {
	g := New()

	assert.Equal(t, 1, g.Len())
	assert.Equal(t, 0, g.CurrentIndex())
	assert.Equal(t, X, g.CurrentTurn())
	assert.Equal(t, Board{}, g.CurrentBoard())
	assert.False(t, HasWinner(g.CurrentBoard()))
}

func TestApplyMoveGrowsHistory(t *testing.T) {
	// ends in a draw, so no prefix completes a line
	draw := []int{0, 1, 2, 4, 3, 5, 7, 6, 8}
	for n := 1; n <= len(draw); n++ {
		g := New()
		play(t, g, draw[:n]...)

		assert.False(t, HasWinner(g.CurrentBoard()))
		assert.Equalf(t, n+1, g.Len(), "history length after %d moves", n)
		assert.Equalf(t, n, g.CurrentIndex(), "index after %d moves", n)
	}
}

func TestEveryEntryAddsOneMark(t *testing.T) {
	g := New()
	play(t, g, 4, 0, 8, 2, 1)

	h := g.History()
	for i, b := range h {
		assert.Equalf(t, i, b.Occupied(), "entry %d", i)
	}
}

func TestTurnFollowsIndexParity(t *testing.T) {
	g := New()
	play(t, g, 0, 4, 1, 5)

	for i := 0; i < g.Len(); i++ {
		require.NoError(t, g.JumpTo(i))
		want := O
		if i%2 == 0 {
			want = X
		}
		assert.Equalf(t, want, g.CurrentTurn(), "index %d", i)
	}
}

func TestJumpDoesNotAlterHistory(t *testing.T) {
	g := New()
	play(t, g, 0, 4, 1)
	before := g.History()

	require.NoError(t, g.JumpTo(1))

	assert.Equal(t, before, g.History())
	assert.Equal(t, before[1], g.CurrentBoard())
	assert.Equal(t, O, g.CurrentTurn())
}

func TestJumpThenMoveTruncatesFuture(t *testing.T) {
	g := New()
	play(t, g, 0, 4, 1, 5, 2)
	old := g.History()

	require.NoError(t, g.JumpTo(2))
	next := g.CurrentBoard().With(8, g.CurrentTurn())
	g.ApplyMove(next)

	h := g.History()
	require.Len(t, h, 4)
	assert.Equal(t, old[:3], h[:3])
	assert.Equal(t, next, h[3])
	assert.Equal(t, 3, g.CurrentIndex())
	for _, b := range old[3:] {
		assert.NotContains(t, h, b)
	}
}

func TestRestartKeepsForwardHistoryUntilNextMove(t *testing.T) {
	g := New()
	play(t, g, 0, 4, 1, 5, 2)

	require.NoError(t, g.JumpTo(0))
	assert.Equal(t, 6, g.Len())
	require.NoError(t, g.JumpTo(5))
	assert.True(t, HasWinner(g.CurrentBoard()))

	require.NoError(t, g.JumpTo(0))
	g.ApplyMove(g.CurrentBoard().With(0, X))

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, 1, g.CurrentIndex())
	assert.Equal(t, Board{}.With(0, X), g.CurrentBoard())
}

func TestJumpOutOfRange(t *testing.T) {
	g := New()
	play(t, g, 0, 4)

	for _, idx := range []int{-1, 3, 7} {
		err := g.JumpTo(idx)
		assert.ErrorIsf(t, err, ErrInvalidArgument, "index %d", idx)
	}
	assert.Equal(t, 2, g.CurrentIndex(), "failed jump must not move the index")
}

func TestHistoryReturnsCopy(t *testing.T) {
	g := New()
	play(t, g, 0)

	h := g.History()
	h[1] = Board{}

	assert.Equal(t, X, g.CurrentBoard()[0])
}

func TestTopRowWinAttributedToPreviousTurn(t *testing.T) {
	g := New()
	play(t, g, 0, 4, 1, 5)

	require.Equal(t, 4, g.CurrentIndex())
	mover := g.CurrentTurn()
	require.Equal(t, X, mover)

	play(t, g, 2)

	assert.True(t, HasWinner(g.CurrentBoard()))
	// the turn has already flipped; the winner is its opponent
	assert.Equal(t, mover, g.CurrentTurn().Opponent())
}

func TestApplyMoveDoesNotValidate(t *testing.T) {
	g := New()
	// two marks at once, and played after a win: accepted as given
	illegal := Board{X, X, X}
	g.ApplyMove(illegal)
	g.ApplyMove(illegal.With(3, X))

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 4, g.CurrentBoard().Occupied())
}

func TestHasWinnerEveryLine(t *testing.T) {
	for _, m := range []Mark{X, O} {
		for _, ln := range Lines {
			var b Board
			for _, i := range ln {
				b[i] = m
			}
			assert.Truef(t, HasWinner(b), "%v on %v", m, ln)
		}
	}
}

func TestHasWinnerMixedLine(t *testing.T) {
	b := Board{
		X, X, O,
		Empty, Empty, Empty,
		Empty, Empty, Empty,
	}
	assert.False(t, HasWinner(b))
}

func TestDrawReportsNoWinner(t *testing.T) {
	b := Board{
		X, O, X,
		X, O, O,
		O, X, X,
	}
	require.Equal(t, Cells, b.Occupied())
	assert.False(t, HasWinner(b), "a draw is indistinguishable from a game in progress")
}

func TestHasWinnerIgnoresLineOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	marks := []Mark{Empty, X, O}

	for i := 0; i < 500; i++ {
		var b Board
		for c := range b {
			b[c] = marks[rng.Intn(len(marks))]
		}

		permuted := make([][3]int, len(Lines))
		for j, k := range rng.Perm(len(Lines)) {
			ln := Lines[k]
			// the cells of a line may be read in any order too
			permuted[j] = [3]int{ln[2], ln[0], ln[1]}
		}

		assert.Equalf(t, HasWinner(b), hasLine(b, permuted), "board %v", b)
	}
}
