// Package json persists murmur state as JSON files on disk.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// envelope is the v1 wire format for the draft file. Drafts are keyed so the
// file format can hold more than one input without a version bump.
type envelope struct {
	Version int               `json:"version"`
	Drafts  map[string]string `json:"drafts"`
}

func marshalEnvelope(env envelope) ([]byte, error) {
	env.Version = 1
	return json.MarshalIndent(env, "", "  ")
}

func unmarshalEnvelope(data []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return envelope{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	if env.Drafts == nil {
		env.Drafts = make(map[string]string)
	}
	return env, nil
}

// readEnvelope loads the file at path. A missing file yields an empty envelope.
func readEnvelope(path string) (envelope, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return envelope{Version: 1, Drafts: make(map[string]string)}, nil
	}
	if err != nil {
		return envelope{}, fmt.Errorf("read file: %w", err)
	}
	return unmarshalEnvelope(data)
}

// writeEnvelope writes env to path atomically, creating parent directories
// as needed.
func writeEnvelope(path string, env envelope) error {
	data, err := marshalEnvelope(env)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
