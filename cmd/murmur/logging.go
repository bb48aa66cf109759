package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const serviceName = "murmur"

// setupLogging returns the application logger and a function that flushes
// and releases it. The TUI owns stdout, so logs go either to a JSON file or,
// when an OTLP endpoint is configured, to the collector.
func setupLogging(ctx context.Context, cfg config) (*slog.Logger, func(context.Context) error, error) {
	level := slog.LevelInfo
	if cfg.debug {
		level = slog.LevelDebug
	}

	if cfg.otelEndpoint != "" {
		provider, err := newLoggerProvider(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		global.SetLoggerProvider(provider)
		h := otelslog.NewHandler(serviceName, otelslog.WithLoggerProvider(global.GetLoggerProvider()))
		return slog.New(levelHandler{Handler: h, level: level}), provider.Shutdown, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.logPath), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(h), func(context.Context) error { return f.Close() }, nil
}

func newLoggerProvider(ctx context.Context, cfg config) (*sdklog.LoggerProvider, error) {
	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(semconv.ServiceName(serviceName)))
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}
	exporter, err := otlploghttp.New(ctx,
		otlploghttp.WithEndpointURL(cfg.otelEndpoint+"/v1/logs"),
		otlploghttp.WithHeaders(cfg.otelHeaders),
	)
	if err != nil {
		return nil, fmt.Errorf("creating log exporter: %w", err)
	}
	return sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	), nil
}

// levelHandler drops records below level. The OTel bridge has no level
// option of its own.
type levelHandler struct {
	slog.Handler
	level slog.Level
}

func (h levelHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= h.level && h.Handler.Enabled(ctx, l)
}

func (h levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return levelHandler{Handler: h.Handler.WithAttrs(attrs), level: h.level}
}

func (h levelHandler) WithGroup(name string) slog.Handler {
	return levelHandler{Handler: h.Handler.WithGroup(name), level: h.level}
}
