package murmur

// DraftKey is the fixed key under which the in-progress input is persisted.
const DraftKey = "chat-draft"

// DraftStore persists the single in-progress input string outside the process
// lifetime. Implementations are pass-through: no validation, last write wins.
type DraftStore interface {
	Load() (string, error)
	Save(value string) error
	Clear() error
}

type nopDraftStore struct{}

func (nopDraftStore) Load() (string, error) { return "", nil }
func (nopDraftStore) Save(string) error     { return nil }
func (nopDraftStore) Clear() error          { return nil }
