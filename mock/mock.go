// Package mock provides test doubles for murmur interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/murmur"
)

// Interface compliance checks.
var (
	_ murmur.Client      = (*Client)(nil)
	_ murmur.DraftStore  = (*DraftStore)(nil)
	_ murmur.IDGenerator = (*IDGenerator)(nil)
)

// Client is a test double for murmur.Client.
// Set ChatFn before calling Chat.
type Client struct {
	ChatFn func(ctx context.Context, req murmur.ChatRequest) (*murmur.ChatResponse, error)
}

// Chat delegates to ChatFn.
func (c *Client) Chat(ctx context.Context, req murmur.ChatRequest) (*murmur.ChatResponse, error) {
	return c.ChatFn(ctx, req)
}

// DraftStore is a test double for murmur.DraftStore.
// Set the function fields for the methods you need.
type DraftStore struct {
	LoadFn  func() (string, error)
	SaveFn  func(value string) error
	ClearFn func() error
}

// Load delegates to LoadFn.
func (s *DraftStore) Load() (string, error) {
	return s.LoadFn()
}

// Save delegates to SaveFn.
func (s *DraftStore) Save(value string) error {
	return s.SaveFn(value)
}

// Clear delegates to ClearFn.
func (s *DraftStore) Clear() error {
	return s.ClearFn()
}

// IDGenerator is a test double for murmur.IDGenerator.
type IDGenerator struct {
	NewIDFn func() string
}

// NewID delegates to NewIDFn.
func (g *IDGenerator) NewID() string {
	return g.NewIDFn()
}
