package web

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kasperro3/tictactoe/internal/app"
	"github.com/kasperro3/tictactoe/internal/domain"
)

type handlers struct {
	svc       *app.Service
	tpl       *templates
	log       *slog.Logger
	heartbeat time.Duration
}

func (h *handlers) renderBoard(g app.Game, errMsg string) []byte {
	return renderTemplate(h.tpl.board, boardData{ID: g.ID, Snap: g.Snapshot, Error: errMsg})
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, http.StatusOK, renderTemplate(h.tpl.index, nil))
}

func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	g, err := h.svc.CreateGame()
	if err != nil {
		h.log.Error("create game", "err", err)
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+g.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	g, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeHTML(w, http.StatusOK, renderTemplate(h.tpl.game, boardData{ID: g.ID, Snap: g.Snapshot}))
}

// tap handles a cell tap. Rejected taps re-render the unchanged board with
// the reason; the request itself succeeded.
func (h *handlers) tap(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cell, err := formInt(r, "cell")
	if err != nil {
		h.reject(w, r, id, http.StatusBadRequest, "Invalid move")
		return
	}
	g, err := h.svc.Tap(id, cell)
	switch {
	case errors.Is(err, app.ErrNotFound):
		http.NotFound(w, r)
	case err != nil:
		writeHTML(w, http.StatusOK, h.renderBoard(*g, tapMessage(err)))
	default:
		writeHTML(w, http.StatusOK, h.renderBoard(*g, ""))
	}
}

// jump handles a history entry selection.
func (h *handlers) jump(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	move, err := formInt(r, "move")
	if err != nil {
		h.reject(w, r, id, http.StatusBadRequest, "Invalid move")
		return
	}
	g, err := h.svc.Jump(id, move)
	switch {
	case errors.Is(err, app.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, domain.ErrInvalidArgument):
		writeHTML(w, http.StatusBadRequest, h.renderBoard(*g, fmt.Sprintf("No move %d in history", move)))
	case err != nil:
		h.log.Error("jump", "game", id, "move", move, "err", err)
		http.Error(w, "failed to jump", http.StatusInternalServerError)
	default:
		writeHTML(w, http.StatusOK, h.renderBoard(*g, ""))
	}
}

func (h *handlers) reject(w http.ResponseWriter, r *http.Request, id string, status int, msg string) {
	g, ok := h.svc.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeHTML(w, status, h.renderBoard(*g, msg))
}

func formInt(r *http.Request, key string) (int, error) {
	if err := r.ParseForm(); err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(r.Form.Get(key)))
}

func tapMessage(err error) string {
	switch {
	case errors.Is(err, app.ErrOccupied):
		return "Cell is occupied"
	case errors.Is(err, app.ErrOutOfBounds):
		return "Out of bounds"
	case errors.Is(err, app.ErrGameOver):
		return "Game is over"
	default:
		return "Invalid move"
	}
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")

	// In tests or non-EventSource requests, just acknowledge headers and return
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx := r.Context()
	ch, unsub := h.svc.Subscribe(ctx, id)
	defer unsub()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, "board", b)
			flusher.Flush()
		}
	}
}

// writeEvent writes one SSE event; every payload line gets its own data field.
func writeEvent(w io.Writer, name string, payload []byte) {
	_, _ = fmt.Fprintf(w, "event: %s\n", name)
	for _, line := range strings.Split(strings.TrimRight(string(payload), "\n"), "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = io.WriteString(w, "\n")
}
