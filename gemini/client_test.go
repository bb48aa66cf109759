package gemini_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/murmur"
	"github.com/fwojciec/murmur/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func textResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: parts},
		}},
	}
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("conv-%d", n)
	}
}

func TestClient_Chat(t *testing.T) {
	t.Parallel()

	t.Run("first message issues conversation id", func(t *testing.T) {
		t.Parallel()
		var gotModel string
		var gotContents []*genai.Content
		client := gemini.NewForTest(func(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			gotModel = model
			gotContents = contents
			return textResponse(&genai.Part{Text: "hi there"}), nil
		}, sequentialIDs())

		resp, err := client.Chat(context.Background(), murmur.ChatRequest{Message: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "hi there", resp.Reply)
		assert.Equal(t, "conv-1", resp.ConversationID)
		assert.Equal(t, "gemini-2.5-flash", gotModel)
		require.Len(t, gotContents, 1)
		assert.Equal(t, "user", gotContents[0].Role)
		assert.Equal(t, "hello", gotContents[0].Parts[0].Text)
	})

	t.Run("follow-up carries history", func(t *testing.T) {
		t.Parallel()
		var calls [][]*genai.Content
		client := gemini.NewForTest(func(_ context.Context, _ string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			calls = append(calls, contents)
			return textResponse(&genai.Part{Text: fmt.Sprintf("reply %d", len(calls))}), nil
		}, sequentialIDs())

		first, err := client.Chat(context.Background(), murmur.ChatRequest{Message: "one"})
		require.NoError(t, err)
		second, err := client.Chat(context.Background(), murmur.ChatRequest{Message: "two", ConversationID: first.ConversationID})
		require.NoError(t, err)

		assert.Equal(t, first.ConversationID, second.ConversationID)
		require.Len(t, calls, 2)
		require.Len(t, calls[1], 3)
		assert.Equal(t, "one", calls[1][0].Parts[0].Text)
		assert.Equal(t, "model", calls[1][1].Role)
		assert.Equal(t, "reply 1", calls[1][1].Parts[0].Text)
		assert.Equal(t, "two", calls[1][2].Parts[0].Text)
	})

	t.Run("unknown conversation id starts fresh", func(t *testing.T) {
		t.Parallel()
		client := gemini.NewForTest(func(_ context.Context, _ string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			assert.Len(t, contents, 1)
			return textResponse(&genai.Part{Text: "ok"}), nil
		}, sequentialIDs())

		resp, err := client.Chat(context.Background(), murmur.ChatRequest{Message: "x", ConversationID: "stale"})
		require.NoError(t, err)
		assert.Equal(t, "conv-1", resp.ConversationID)
	})

	t.Run("image request sets system instruction", func(t *testing.T) {
		t.Parallel()
		var cfg *genai.GenerateContentConfig
		client := gemini.NewForTest(func(_ context.Context, _ string, _ []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			cfg = config
			return textResponse(&genai.Part{Text: "a sunset"}), nil
		}, sequentialIDs())

		_, err := client.Chat(context.Background(), murmur.ChatRequest{Message: "draw a sunset", GenerateImage: true})
		require.NoError(t, err)
		require.NotNil(t, cfg.SystemInstruction)
		assert.Contains(t, cfg.SystemInstruction.Parts[0].Text, "caption")
	})

	t.Run("failed call records nothing", func(t *testing.T) {
		t.Parallel()
		fail := true
		var lastLen int
		client := gemini.NewForTest(func(_ context.Context, _ string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			lastLen = len(contents)
			if fail {
				return nil, errors.New("quota exceeded")
			}
			return textResponse(&genai.Part{Text: "ok"}), nil
		}, func() string { return "fixed" })

		_, err := client.Chat(context.Background(), murmur.ChatRequest{Message: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gemini: quota exceeded")

		fail = false
		_, err = client.Chat(context.Background(), murmur.ChatRequest{Message: "y", ConversationID: "fixed"})
		require.NoError(t, err)
		assert.Equal(t, 1, lastLen)
	})

	t.Run("empty response yields empty reply", func(t *testing.T) {
		t.Parallel()
		responses := []*genai.GenerateContentResponse{
			{},
			{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}}},
		}
		for _, r := range responses {
			client := gemini.NewForTest(func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return r, nil
			}, sequentialIDs())

			resp, err := client.Chat(context.Background(), murmur.ChatRequest{Message: "x"})
			require.NoError(t, err)
			assert.Empty(t, resp.Reply)
			assert.Equal(t, "conv-1", resp.ConversationID)
			assert.Equal(t, murmur.FallbackReply, resp.Text())
		}
	})

	t.Run("empty response keeps conversation without adding turns", func(t *testing.T) {
		t.Parallel()
		empty := true
		var lastLen int
		client := gemini.NewForTest(func(_ context.Context, _ string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			lastLen = len(contents)
			if empty {
				return &genai.GenerateContentResponse{}, nil
			}
			return textResponse(&genai.Part{Text: "ok"}), nil
		}, sequentialIDs())

		first, err := client.Chat(context.Background(), murmur.ChatRequest{Message: "x"})
		require.NoError(t, err)

		empty = false
		second, err := client.Chat(context.Background(), murmur.ChatRequest{Message: "y", ConversationID: first.ConversationID})
		require.NoError(t, err)
		assert.Equal(t, first.ConversationID, second.ConversationID)
		assert.Equal(t, 1, lastLen)
	})

	t.Run("custom model", func(t *testing.T) {
		t.Parallel()
		var gotModel string
		client := gemini.NewForTest(func(_ context.Context, model string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			gotModel = model
			return textResponse(&genai.Part{Text: "ok"}), nil
		}, sequentialIDs(), gemini.WithModel("gemini-2.5-pro"))

		_, err := client.Chat(context.Background(), murmur.ChatRequest{Message: "x"})
		require.NoError(t, err)
		assert.Equal(t, "gemini-2.5-pro", gotModel)
	})
}

func TestExtractText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{"nil response", nil, ""},
		{"no candidates", &genai.GenerateContentResponse{}, ""},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, ""},
		{"joins text parts", textResponse(&genai.Part{Text: "a"}, &genai.Part{Text: "b"}), "ab"},
		{"skips thoughts", textResponse(&genai.Part{Text: "hmm", Thought: true}, &genai.Part{Text: "answer"}), "answer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, gemini.ExtractText(tt.resp))
		})
	}
}
