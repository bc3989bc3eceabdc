package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kasperro3/tictactoe/internal/app"
	"github.com/kasperro3/tictactoe/internal/logger"
	"github.com/kasperro3/tictactoe/internal/term"
)

func main() {
	logPath := flag.String("log", "", "write debug logs to this file")
	flag.Parse()

	if err := run(*logPath); err != nil {
		fmt.Fprintf(os.Stderr, "tictactoe: %v\n", err)
		os.Exit(1)
	}
}

func run(logPath string) error {
	// The terminal is owned by the UI, so logs only go to a file.
	var w io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		w = f
	}
	log, err := logger.New("debug", "text", w)
	if err != nil {
		return err
	}
	log.Info("session started")
	return term.New(app.NewSession(), log).Run(nil)
}
