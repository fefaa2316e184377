package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/Brendon-Hablutzel/crontab-ls/internal/config"
	"github.com/Brendon-Hablutzel/crontab-ls/internal/document"
	"github.com/Brendon-Hablutzel/crontab-ls/internal/generator"
	"github.com/Brendon-Hablutzel/crontab-ls/internal/lsp"
)

var sessionIDGenerator = generator.UUIDV4Generator{}

func newLogger(cfg *config.ServerConfig) (*slog.Logger, func(), error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}

	// stdout belongs to the protocol; logs go to stderr or a file.
	var out io.Writer = os.Stderr
	cleanup := func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		cleanup = func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
			}
		}
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(handler), cleanup, nil
}

func runServer() error {
	if err := config.LoadEnv(); err != nil {
		if os.IsNotExist(err) {
			slog.Warn("No .env file found, continuing without it")
		} else {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg, err := config.NewServerConfigFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, cleanup, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	sessionID, err := sessionIDGenerator.Next()
	if err != nil {
		return fmt.Errorf("failed to generate session ID: %w", err)
	}

	store := document.NewStore()
	server := lsp.NewServer(os.Stdin, os.Stdout, store, logger, sessionID)
	return server.Run()
}

func main() {
	if err := runServer(); err != nil {
		var exit lsp.ExitError
		if errors.As(err, &exit) {
			os.Exit(exit.Code)
		}
		log.Fatalf("failed to run server: %v", err)
	}
}
