package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/fwojciec/murmur"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ murmur.Client = (*Client)(nil)

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Client implements [murmur.Client] on top of the Gemini API.
//
// Chat may be called from any goroutine; history access is serialized.
type Client struct {
	model    string
	generate generateFunc
	newID    func() string

	mu        sync.Mutex
	histories map[string][]*genai.Content
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the model ID. Default is gemini-2.5-flash.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// New creates a new Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return newClient(gc.Models.GenerateContent, opts...), nil
}

func newClient(generate generateFunc, opts ...Option) *Client {
	c := &Client{
		model:     defaultModel,
		generate:  generate,
		newID:     uuid.NewString,
		histories: make(map[string][]*genai.Content),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Chat sends req.Message with the stored history of req.ConversationID. An
// empty or unknown conversation identifier starts a new conversation whose
// identifier is returned in the response.
func (c *Client) Chat(ctx context.Context, req murmur.ChatRequest) (*murmur.ChatResponse, error) {
	id, history := c.history(req.ConversationID)

	user := &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: req.Message}},
	}
	contents := append(history, user)

	resp, err := c.generate(ctx, c.model, contents, buildConfig(req))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	reply := ExtractText(resp)
	if reply == "" {
		// Blocked or empty answers keep the conversation known but add no
		// turns, so roles in the history still alternate.
		c.record(id)
		return &murmur.ChatResponse{ConversationID: id}, nil
	}

	c.record(id, user, &genai.Content{
		Role:  "model",
		Parts: []*genai.Part{{Text: reply}},
	})
	return &murmur.ChatResponse{Reply: reply, ConversationID: id}, nil
}

// history returns the conversation identifier to use and a copy of its
// stored turns.
func (c *Client) history(id string) (string, []*genai.Content) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.histories[id]
	if id == "" || !ok {
		return c.newID(), nil
	}
	out := make([]*genai.Content, len(h))
	copy(out, h)
	return id, out
}

func (c *Client) record(id string, turns ...*genai.Content) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.histories[id] = append(c.histories[id], turns...)
}

func buildConfig(req murmur.ChatRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: defaultMaxTokens,
	}
	if req.GenerateImage {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: imageInstruction}},
		}
	}
	return config
}

// ExtractText joins the non-thought text parts of the first candidate.
// Exported for testing.
func ExtractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		if p == nil || p.Thought || p.Text == "" {
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}
