package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kasperro3/tictactoe/internal/logger"
)

// ErrNotFound is returned for unknown game ids.
var ErrNotFound = errors.New("game not found")

// Game is a copy of the state tracked per game.
type Game struct {
	ID       string
	Snapshot Snapshot
	Created  time.Time
	Updated  time.Time
}

type record struct {
	session *Session
	created time.Time
	updated time.Time
}

func (r *record) game(id string) *Game {
	return &Game{ID: id, Snapshot: r.session.Snapshot(), Created: r.created, Updated: r.updated}
}

type subscriber struct {
	ch        chan []byte
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service manages game sessions and the surfaces subscribed to them.
type Service struct {
	mu     sync.Mutex
	games  map[string]*record
	subs   map[string]map[*subscriber]struct{}
	render func(Game) []byte
	log    *slog.Logger
	now    func() time.Time
}

// NewService creates a service whose broadcasts carry no payload.
func NewService() *Service { return NewServiceWithRenderer(nil) }

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(renderer func(Game) []byte) *Service {
	s := &Service{
		games: make(map[string]*record),
		subs:  make(map[string]map[*subscriber]struct{}),
		log:   logger.Discard(),
		now:   time.Now,
	}
	s.SetRenderer(renderer)
	return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(Game) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		renderer = func(Game) []byte { return nil }
	}
	s.render = renderer
}

// SetLogger replaces the service logger. A nil logger discards output.
func (s *Service) SetLogger(l *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l == nil {
		l = logger.Discard()
	}
	s.log = l.With("component", "app")
}

// CreateGame registers a new session on an empty board.
func (s *Service) CreateGame() (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	now := s.now()
	rec := &record{session: NewSession(), created: now, updated: now}
	s.games[id] = rec
	s.log.Info("game created", "game", id)
	return rec.game(id), nil
}

// Get returns a copy of the game if present.
func (s *Service) Get(id string) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.games[id]
	if !ok {
		return nil, false
	}
	return rec.game(id), true
}

// Tap forwards a cell tap to the game's session. Rejected taps return the
// unchanged game together with the rejection.
func (s *Service) Tap(id string, cell int) (*Game, error) {
	return s.apply(id, "tap", cell, (*Session).Tap)
}

// Jump selects a history entry of the game.
func (s *Service) Jump(id string, move int) (*Game, error) {
	return s.apply(id, "jump", move, (*Session).Select)
}

func (s *Service) apply(id, event string, arg int, fn func(*Session, int) (Snapshot, error)) (*Game, error) {
	s.mu.Lock()
	rec, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	if _, err := fn(rec.session, arg); err != nil {
		gm := rec.game(id)
		s.log.Debug("event rejected", "game", id, "event", event, "arg", arg, "err", err)
		s.mu.Unlock()
		return gm, err
	}
	rec.updated = s.now()
	gm := rec.game(id)
	s.log.Debug("event applied", "game", id, "event", event, "arg", arg, "move", gm.Snapshot.Move)
	s.broadcastLocked(id, s.render(*gm))
	s.mu.Unlock()
	return gm, nil
}

// broadcastLocked fans payload out without blocking; slow subscribers are
// closed and dropped. Channels are only closed with s.mu held, so a send here
// never races with an unsubscribe.
func (s *Service) broadcastLocked(id string, payload []byte) {
	set := s.subs[id]
	dropped := 0
	for sub := range set {
		select {
		case sub.ch <- payload:
		default:
			sub.close()
			delete(set, sub)
			dropped++
		}
	}
	if dropped > 0 {
		s.log.Warn("dropped slow subscribers", "game", id, "count", dropped)
	}
}

// Subscribe registers a subscriber for a game. Returns a channel and an
// unsubscribe func; the subscription also ends when ctx is done.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 1)}
	set[sub] = struct{}{}
	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
				if len(set) == 0 {
					delete(s.subs, id)
				}
			}
			sub.close()
			s.mu.Unlock()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub
}
