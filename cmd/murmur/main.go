// Command murmur is a terminal chat client with image generation.
//
// Usage:
//
//	murmur [flags]
//	GEMINI_API_KEY=gk-... murmur -backend gemini
//
// Flags:
//
//	-backend string         Backend: converse, gemini (default: converse, or gemini when only GEMINI_API_KEY is set)
//	-endpoint string        Converse API base URL (overrides MURMUR_ENDPOINT)
//	-image-endpoint string  Image generation URL prefix
//	-model string           Gemini model ID
//	-api-key string         Gemini API key (overrides GEMINI_API_KEY)
//	-draft-file string      Draft file (default: ~/.murmur/drafts.json)
//	-log-file string        Log file (default: ~/.murmur/murmur.log)
//	-timeout duration       Per-request timeout (default: none)
//	-debug                  Enable debug logging
//
// A .env file in the working directory is loaded before flags are resolved.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"time"

	"github.com/fwojciec/murmur"
	bt "github.com/fwojciec/murmur/bubbletea"
	murmurjson "github.com/fwojciec/murmur/json"
	"github.com/fwojciec/murmur/snowflake"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "murmur: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var f flags
	flag.StringVar(&f.backend, "backend", "", "Backend: converse, gemini (auto-detected from env vars if omitted)")
	flag.StringVar(&f.endpoint, "endpoint", "", "Converse API base URL")
	flag.StringVar(&f.imageEndpoint, "image-endpoint", "", "Image generation URL prefix")
	flag.StringVar(&f.model, "model", "", "Gemini model ID")
	flag.StringVar(&f.apiKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY)")
	flag.StringVar(&f.draftFile, "draft-file", "", "Draft file path")
	flag.StringVar(&f.logFile, "log-file", "", "Log file path")
	flag.DurationVar(&f.timeout, "timeout", 0, "Per-request timeout (0 waits for the API)")
	flag.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	flag.Parse()

	// A missing .env is the common case.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Env vars are read here and passed as values.
	home, _ := os.UserHomeDir()
	cfg, err := resolveConfig(f, env{
		backend:      os.Getenv("MURMUR_BACKEND"),
		endpoint:     os.Getenv("MURMUR_ENDPOINT"),
		geminiKey:    os.Getenv("GEMINI_API_KEY"),
		otelEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		otelHeaders:  os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		home:         home,
	})
	if err != nil {
		return err
	}

	logger, shutdown, err := setupLogging(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(sctx)
	}()

	client, err := resolveClient(ctx, cfg, logger)
	if err != nil {
		return err
	}

	ids, err := snowflake.New(1)
	if err != nil {
		return err
	}

	conv := murmur.NewConversation(ids)
	dispatcher := murmur.NewDispatcher(client, conv,
		murmur.WithDraftStore(murmurjson.NewDraftStore(cfg.draftPath)),
		murmur.WithImageEndpoint(cfg.images),
		murmur.WithLogger(logger),
	)
	logger.Info("starting", "backend", cfg.backend, "draft_file", cfg.draftPath)

	tuiModel := bt.New(dispatcher, murmur.DefaultTheme(),
		bt.WithLogger(logger),
		bt.WithRequestTimeout(cfg.timeout),
	)
	if err := bt.Run(ctx, tuiModel); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}
