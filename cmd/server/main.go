package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kasperro3/tictactoe/internal/app"
	"github.com/kasperro3/tictactoe/internal/config"
	"github.com/kasperro3/tictactoe/internal/logger"
	"github.com/kasperro3/tictactoe/internal/web"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	log, err := logger.New(conf.Log.Level, conf.Log.Format, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(log, conf); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, conf *config.Config) error {
	svc := app.NewService()
	svc.SetLogger(log)

	srv := &http.Server{
		Addr:    conf.HTTP.Addr,
		Handler: web.NewServer(svc, web.WithLogger(log), web.WithHeartbeat(conf.HTTP.Heartbeat)),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server started", "addr", conf.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server exiting")
	return nil
}
