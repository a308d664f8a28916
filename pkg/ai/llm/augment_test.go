package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient returns a canned completion or error.
type stubClient struct {
	completion string
	err        error
}

func (s *stubClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ChatResponse{Message: s.completion}, nil
}

func (s *stubClient) Complete(ctx context.Context, prompt string, systemPrompt ...string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.completion, nil
}

func (s *stubClient) CountTokens(text string) int { return len(text) / 4 }

type payload struct {
	Reasoning string `json:"reasoning"`
}

func parsePayload(completion string) (payload, error) {
	var p payload
	if err := json.Unmarshal([]byte(ExtractJSON(completion)), &p); err != nil {
		return payload{}, err
	}
	return p, nil
}

func fallbackPayload() payload {
	return payload{Reasoning: "fallback"}
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - AI path", func(t *testing.T) {
		aug := NewAugmenter(&stubClient{completion: `{"reasoning": "looks strong"}`}, nil, nil, time.Second)

		result, ok := Generate(ctx, aug, "test_op", "system", "prompt", parsePayload, fallbackPayload)

		assert.True(t, ok)
		assert.Equal(t, "looks strong", result.Reasoning)
	})

	t.Run("Success - strips markdown fences", func(t *testing.T) {
		aug := NewAugmenter(&stubClient{completion: "```json\n{\"reasoning\": \"fenced\"}\n```"}, nil, nil, time.Second)

		result, ok := Generate(ctx, aug, "test_op", "", "prompt", parsePayload, fallbackPayload)

		assert.True(t, ok)
		assert.Equal(t, "fenced", result.Reasoning)
	})

	t.Run("Fallback - nil augmenter", func(t *testing.T) {
		result, ok := Generate(ctx, nil, "test_op", "", "prompt", parsePayload, fallbackPayload)

		assert.False(t, ok)
		assert.Equal(t, "fallback", result.Reasoning)
	})

	t.Run("Fallback - nil client", func(t *testing.T) {
		aug := NewAugmenter(nil, nil, nil, time.Second)

		result, ok := Generate(ctx, aug, "test_op", "", "prompt", parsePayload, fallbackPayload)

		assert.False(t, ok)
		assert.Equal(t, "fallback", result.Reasoning)
	})

	t.Run("Fallback - client error", func(t *testing.T) {
		aug := NewAugmenter(&stubClient{err: errors.New("connection refused")}, nil, nil, time.Second)

		result, ok := Generate(ctx, aug, "test_op", "", "prompt", parsePayload, fallbackPayload)

		assert.False(t, ok)
		assert.Equal(t, "fallback", result.Reasoning)
	})

	t.Run("Fallback - unparseable completion", func(t *testing.T) {
		aug := NewAugmenter(&stubClient{completion: "I cannot answer that."}, nil, nil, time.Second)

		result, ok := Generate(ctx, aug, "test_op", "", "prompt", parsePayload, fallbackPayload)

		assert.False(t, ok)
		assert.Equal(t, "fallback", result.Reasoning)
	})

	t.Run("Fallback - empty completion", func(t *testing.T) {
		aug := NewAugmenter(&stubClient{completion: "   "}, nil, nil, time.Second)

		result, ok := Generate(ctx, aug, "test_op", "", "prompt", parsePayload, fallbackPayload)

		assert.False(t, ok)
		assert.Equal(t, "fallback", result.Reasoning)
	})
}

func TestExtractJSON(t *testing.T) {
	t.Run("Success - plain object", func(t *testing.T) {
		assert.Equal(t, `{"a":1}`, ExtractJSON(`{"a":1}`))
	})

	t.Run("Success - prose around object", func(t *testing.T) {
		in := `Here is the result: {"a": 1} Hope that helps!`
		assert.Equal(t, `{"a": 1}`, ExtractJSON(in))
	})

	t.Run("Success - fenced array", func(t *testing.T) {
		in := "```json\n[{\"a\":1},{\"a\":2}]\n```"
		out := ExtractJSON(in)

		var steps []map[string]int
		require.NoError(t, json.Unmarshal([]byte(out), &steps))
		assert.Len(t, steps, 2)
	})

	t.Run("No JSON - returned unchanged", func(t *testing.T) {
		assert.Equal(t, "no json here", ExtractJSON("no json here"))
	})
}
