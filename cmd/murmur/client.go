package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/murmur"
	"github.com/fwojciec/murmur/converse"
	"github.com/fwojciec/murmur/gemini"
)

// resolveClient constructs the chat backend selected by cfg.
func resolveClient(ctx context.Context, cfg config, logger *slog.Logger) (murmur.Client, error) {
	switch cfg.backend {
	case backendConverse:
		opts := []converse.Option{converse.WithLogger(logger)}
		if cfg.endpoint != "" {
			opts = append(opts, converse.WithBaseURL(cfg.endpoint))
		}
		return converse.New(opts...), nil
	case backendGemini:
		client, err := gemini.New(ctx, cfg.key, gemini.WithModel(cfg.model))
		if err != nil {
			return nil, fmt.Errorf("gemini: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.backend)
	}
}
