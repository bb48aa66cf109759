package json

import (
	"fmt"

	"github.com/fwojciec/murmur"
)

// Interface compliance check.
var _ murmur.DraftStore = (*DraftStore)(nil)

// DraftStore implements [murmur.DraftStore] on a JSON file. The draft lives
// under [murmur.DraftKey]; every call reads or rewrites the whole file.
type DraftStore struct {
	path string
	key  string
}

// NewDraftStore creates a DraftStore backed by the file at path. The file is
// created on the first Save.
func NewDraftStore(path string) *DraftStore {
	return &DraftStore{path: path, key: murmur.DraftKey}
}

// Path returns the backing file path.
func (s *DraftStore) Path() string { return s.path }

// Load returns the saved draft, or "" when none exists.
func (s *DraftStore) Load() (string, error) {
	env, err := readEnvelope(s.path)
	if err != nil {
		return "", fmt.Errorf("load draft: %w", err)
	}
	return env.Drafts[s.key], nil
}

// Save overwrites the draft with value.
func (s *DraftStore) Save(value string) error {
	env, err := readEnvelope(s.path)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	env.Drafts[s.key] = value
	if err := writeEnvelope(s.path, env); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Clear removes the draft. Clearing a missing draft is not an error.
func (s *DraftStore) Clear() error {
	env, err := readEnvelope(s.path)
	if err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	if _, ok := env.Drafts[s.key]; !ok {
		return nil
	}
	delete(env.Drafts, s.key)
	if err := writeEnvelope(s.path, env); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
