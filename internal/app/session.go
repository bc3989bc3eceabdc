package app

import (
	"errors"
	"fmt"

	"github.com/kasperro3/tictactoe/internal/domain"
)

// Errors returned for taps the surface must ignore.
var (
	ErrOutOfBounds = errors.New("out of bounds")
	ErrOccupied    = errors.New("cell occupied")
	ErrGameOver    = errors.New("game over")
)

// Entry is one selectable item of the history list.
type Entry struct {
	Move    int
	Label   string
	Current bool
}

// Snapshot is an immutable view of a session handed to rendering surfaces.
type Snapshot struct {
	Board   domain.Board
	Move    int
	Turn    domain.Mark
	Over    bool
	Winner  domain.Mark
	Status  string
	History []Entry
}

// Session applies the tap and history events of one player to a game.
// It is not safe for concurrent use; Service serialises access.
type Session struct {
	game *domain.GameState
}

// NewSession starts a session on an empty board.
func NewSession() *Session {
	return &Session{game: domain.New()}
}

// Tap plays the current turn's mark into cell. Taps on occupied cells, taps
// after a line is complete and cells outside 0..8 are rejected and leave the
// session unchanged.
func (s *Session) Tap(cell int) (Snapshot, error) {
	if cell < 0 || cell >= domain.Cells {
		return s.Snapshot(), fmt.Errorf("tap cell %d: %w", cell, ErrOutOfBounds)
	}
	board := s.game.CurrentBoard()
	if board[cell] != domain.Empty {
		return s.Snapshot(), fmt.Errorf("tap cell %d: %w", cell, ErrOccupied)
	}
	if domain.HasWinner(board) {
		return s.Snapshot(), fmt.Errorf("tap cell %d: %w", cell, ErrGameOver)
	}
	s.game.ApplyMove(board.With(cell, s.game.CurrentTurn()))
	return s.Snapshot(), nil
}

// Select jumps to history entry move. Restart is Select(0).
func (s *Session) Select(move int) (Snapshot, error) {
	if err := s.game.JumpTo(move); err != nil {
		return s.Snapshot(), err
	}
	return s.Snapshot(), nil
}

// Snapshot returns the current view of the session.
func (s *Session) Snapshot() Snapshot {
	board := s.game.CurrentBoard()
	snap := Snapshot{
		Board: board,
		Move:  s.game.CurrentIndex(),
		Turn:  s.game.CurrentTurn(),
		Over:  domain.HasWinner(board),
	}
	if snap.Over {
		// The turn flips with every applied move, so the player who
		// completed the line is the opponent of the one to move.
		snap.Winner = snap.Turn.Opponent()
		snap.Status = "Winner is " + snap.Winner.String()
	} else {
		snap.Status = "Next player: " + snap.Turn.String()
	}
	snap.History = make([]Entry, s.game.Len())
	for i := range snap.History {
		snap.History[i] = Entry{Move: i, Label: MoveLabel(i), Current: i == snap.Move}
	}
	return snap
}

// MoveLabel names history entry move: "Restart" for the empty board,
// "Go to move N" otherwise.
func MoveLabel(move int) string {
	if move == 0 {
		return "Restart"
	}
	return fmt.Sprintf("Go to move %d", move)
}
