// Package term renders a game session in the terminal. Cells are tapped with
// Enter or a mouse click on the grid; history entries are picked from the
// list beside it.
package term

import (
	"errors"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/kasperro3/tictactoe/internal/app"
	"github.com/kasperro3/tictactoe/internal/domain"
	"github.com/kasperro3/tictactoe/internal/logger"
)

// View binds one session to a tview application.
type View struct {
	app     *tview.Application
	session *app.Session
	log     *slog.Logger

	root    *tview.Flex
	board   *tview.Table
	history *tview.List
	status  *tview.TextView
	hint    *tview.TextView
}

// New builds the widgets for session. A nil logger discards output.
func New(session *app.Session, log *slog.Logger) *View {
	if log == nil {
		log = logger.Discard()
	}
	v := &View{
		app:     tview.NewApplication(),
		session: session,
		log:     log.With("component", "term"),
		board:   tview.NewTable(),
		history: tview.NewList(),
		status:  tview.NewTextView(),
		hint:    tview.NewTextView(),
	}

	v.board.SetBorders(true).SetSelectable(true, true)
	v.board.SetSelectedFunc(func(row, col int) { v.tap(domain.Index(row, col)) })
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			cell := domain.Index(r, c)
			v.board.SetCell(r, c, tview.NewTableCell("   ").
				SetAlign(tview.AlignCenter).
				SetClickedFunc(func() bool {
					v.tap(cell)
					return false
				}))
		}
	}

	v.history.ShowSecondaryText(false).SetBorder(true).SetTitle("History")
	v.hint.SetTextColor(tcell.ColorRed)

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.status, 1, 0, false).
		AddItem(v.board, 7, 0, true).
		AddItem(v.hint, 1, 0, false)
	v.root = tview.NewFlex().
		AddItem(left, 15, 0, true).
		AddItem(v.history, 0, 1, false)

	v.app.SetInputCapture(v.capture)
	v.render(session.Snapshot())
	return v
}

// Run draws on screen until Stop is called or the user quits. A nil screen
// uses the terminal.
func (v *View) Run(screen tcell.Screen) error {
	if screen != nil {
		v.app.SetScreen(screen)
	}
	return v.app.SetRoot(v.root, true).SetFocus(v.board).EnableMouse(true).Run()
}

// Stop ends Run.
func (v *View) Stop() { v.app.Stop() }

func (v *View) capture(ev *tcell.EventKey) *tcell.EventKey {
	switch {
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
		v.app.Stop()
		return nil
	case ev.Key() == tcell.KeyTab:
		if v.board.HasFocus() {
			v.app.SetFocus(v.history)
		} else {
			v.app.SetFocus(v.board)
		}
		return nil
	}
	return ev
}

func (v *View) tap(cell int) {
	snap, err := v.session.Tap(cell)
	v.show(snap, err)
}

func (v *View) jump(move int) {
	snap, err := v.session.Select(move)
	v.show(snap, err)
}

func (v *View) show(snap app.Snapshot, err error) {
	v.hint.SetText(hintFor(err))
	if err != nil {
		v.log.Debug("event rejected", "err", err)
	}
	v.render(snap)
}

func hintFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, app.ErrOccupied):
		return "Cell is occupied"
	case errors.Is(err, app.ErrGameOver):
		return "Game is over"
	default:
		return "Invalid move"
	}
}

func (v *View) render(snap app.Snapshot) {
	v.status.SetText(snap.Status)
	for i, m := range snap.Board {
		sym := m.String()
		if sym == "" {
			sym = " "
		}
		v.board.GetCell(i/3, i%3).SetText(" " + sym + " ")
	}

	// Labels depend only on the position, so the list is resized in place.
	// Entries are never cleared while one of their callbacks is running.
	for v.history.GetItemCount() > len(snap.History) {
		v.history.RemoveItem(v.history.GetItemCount() - 1)
	}
	for i := v.history.GetItemCount(); i < len(snap.History); i++ {
		move := snap.History[i].Move
		v.history.AddItem(snap.History[i].Label, "", 0, func() { v.jump(move) })
	}
	v.history.SetCurrentItem(snap.Move)
}
