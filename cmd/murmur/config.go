package main

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/murmur"
)

const (
	backendConverse = "converse"
	backendGemini   = "gemini"

	stateDir = ".murmur"
)

// flags holds raw command-line values.
type flags struct {
	backend       string
	endpoint      string
	imageEndpoint string
	model         string
	apiKey        string
	draftFile     string
	logFile       string
	timeout       time.Duration
	debug         bool
}

// env holds the environment values murmur reads. Only main reads the
// process environment.
type env struct {
	backend      string
	endpoint     string
	geminiKey    string
	otelEndpoint string
	otelHeaders  string
	home         string
}

// config is the resolved configuration.
type config struct {
	backend      string
	endpoint     string // empty selects the converse default
	key          string
	model        string
	images       murmur.ImageEndpoint
	draftPath    string
	logPath      string
	timeout      time.Duration
	debug        bool
	otelEndpoint string
	otelHeaders  map[string]string
}

// resolveConfig merges flags over environment values. Flags win.
func resolveConfig(f flags, e env) (config, error) {
	cfg := config{
		model:        f.model,
		timeout:      f.timeout,
		debug:        f.debug,
		otelEndpoint: strings.TrimRight(e.otelEndpoint, "/"),
		otelHeaders:  parseHeaders(e.otelHeaders),
	}

	cfg.endpoint = firstNonEmpty(f.endpoint, e.endpoint)
	cfg.backend = firstNonEmpty(f.backend, e.backend)
	if cfg.backend == "" {
		// Gemini is picked only when it is the sole thing configured.
		cfg.backend = backendConverse
		if e.geminiKey != "" && cfg.endpoint == "" {
			cfg.backend = backendGemini
		}
	}

	switch cfg.backend {
	case backendConverse:
		if cfg.endpoint != "" {
			if err := validateURL(cfg.endpoint); err != nil {
				return config{}, fmt.Errorf("endpoint: %w", err)
			}
		}
	case backendGemini:
		cfg.key = firstNonEmpty(f.apiKey, e.geminiKey)
		if cfg.key == "" {
			return config{}, fmt.Errorf("GEMINI_API_KEY not set (use -api-key flag or environment variable)")
		}
	default:
		return config{}, fmt.Errorf("unknown backend %q: must be %q or %q", cfg.backend, backendConverse, backendGemini)
	}

	cfg.images = murmur.DefaultImageEndpoint()
	if f.imageEndpoint != "" {
		if err := validateURL(f.imageEndpoint); err != nil {
			return config{}, fmt.Errorf("image endpoint: %w", err)
		}
		cfg.images.BaseURL = strings.TrimRight(f.imageEndpoint, "/") + "/"
	}

	cfg.draftPath = firstNonEmpty(f.draftFile, statePath(e.home, "drafts.json"))
	cfg.logPath = firstNonEmpty(f.logFile, statePath(e.home, "murmur.log"))
	return cfg, nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q: missing host", raw)
	}
	return nil
}

func statePath(home, name string) string {
	if home == "" {
		home = "."
	}
	return filepath.Join(home, stateDir, name)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseHeaders parses OTLP headers in "k1=v1,k2=v2" form.
func parseHeaders(s string) map[string]string {
	headers := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		headers[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return headers
}
