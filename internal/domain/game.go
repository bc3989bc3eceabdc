package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when an operation receives a value outside
// its accepted range.
var ErrInvalidArgument = errors.New("invalid argument")

// GameState holds the ordered history of boards of one game and the point in
// that history currently shown. The zero value is not usable; call New.
//
// GameState is not safe for concurrent use. It belongs to a single session.
type GameState struct {
	history []Board
	current int
}

// New returns a game with the empty board as its only history entry.
func New() *GameState {
	return &GameState{history: []Board{{}}}
}

// ApplyMove records next as the board following the current one.
//
// Entries after the current index are discarded first, so playing after a
// jump back replaces the previously reachable future. The board is not
// checked for legality; callers validate taps before building next.
func (g *GameState) ApplyMove(next Board) {
	g.history = append(g.history[:g.current+1:g.current+1], next)
	g.current = len(g.history) - 1
}

// JumpTo selects history entry index without altering the history.
func (g *GameState) JumpTo(index int) error {
	if index < 0 || index >= len(g.history) {
		return fmt.Errorf("jump to %d of %d entries: %w", index, len(g.history), ErrInvalidArgument)
	}
	g.current = index
	return nil
}

// CurrentBoard returns the board at the current index.
func (g *GameState) CurrentBoard() Board { return g.history[g.current] }

// CurrentIndex returns the selected history index.
func (g *GameState) CurrentIndex() int { return g.current }

// CurrentTurn returns the mark that plays next: X on even indexes, O on odd.
func (g *GameState) CurrentTurn() Mark {
	if g.current%2 == 0 {
		return X
	}
	return O
}

// History returns a copy of every board recorded so far.
func (g *GameState) History() []Board {
	out := make([]Board, len(g.history))
	copy(out, g.history)
	return out
}

// Len returns the number of history entries.
func (g *GameState) Len() int { return len(g.history) }
