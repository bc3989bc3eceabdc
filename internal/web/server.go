package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kasperro3/tictactoe/internal/app"
	"github.com/kasperro3/tictactoe/internal/logger"
)

// DefaultHeartbeat is the SSE keep-alive interval.
const DefaultHeartbeat = 15 * time.Second

// Option configures the handler built by NewServer.
type Option func(*handlers)

// WithLogger sets the logger used for requests and handler errors.
func WithLogger(l *slog.Logger) Option {
	return func(h *handlers) {
		if l != nil {
			h.log = l.With("component", "web")
		}
	}
}

// WithHeartbeat sets the SSE keep-alive interval.
func WithHeartbeat(d time.Duration) Option {
	return func(h *handlers) {
		if d > 0 {
			h.heartbeat = d
		}
	}
}

// NewServer wires routes and returns an http.Handler. It installs the board
// fragment as the service's broadcast renderer so SSE clients receive the
// same markup as tap responses.
func NewServer(s *app.Service, opts ...Option) http.Handler {
	h := &handlers{
		svc:       s,
		tpl:       loadTemplates(),
		log:       logger.Discard(),
		heartbeat: DefaultHeartbeat,
	}
	for _, opt := range opts {
		opt(h)
	}
	s.SetRenderer(func(g app.Game) []byte { return h.renderBoard(g, "") })

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)

	r.Get("/", h.index)
	r.Get("/healthz", h.healthz)
	r.Post("/game", h.create)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", h.view)
		r.Post("/tap", h.tap)
		r.Post("/jump", h.jump)
		r.Get("/events", h.events)
	})
	return r
}

func requestLogger(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				l.Debug("request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
