package sentiment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/leadpulse/pkg/ai/llm"
)

// stubClient returns a canned completion or error.
type stubClient struct {
	completion string
	err        error
}

func (s *stubClient) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.ChatResponse{Message: s.completion}, nil
}

func (s *stubClient) Complete(ctx context.Context, prompt string, systemPrompt ...string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.completion, nil
}

func (s *stubClient) CountTokens(text string) int { return len(text) / 4 }

func newTestService(client llm.LLMClient) *Service {
	var aug *llm.Augmenter
	if client != nil {
		aug = llm.NewAugmenter(client, nil, nil, time.Second)
	}
	return NewService(aug, nil, nil)
}

const buyingCompletion = `{
  "sentiment": "positive",
  "confidence": 90,
  "emotions": {"interest": 95, "urgency": 80, "skepticism": 5, "enthusiasm": 85, "frustration": 0},
  "intent": "buying",
  "keywords": ["ready to proceed", "this week"],
  "recommendations": ["Send the contract today"],
  "next_action": "Send the proposal"
}`

func TestAnalyzeMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - AI analysis", func(t *testing.T) {
		svc := newTestService(&stubClient{completion: buyingCompletion})

		got := svc.AnalyzeMessage(ctx, "lead-1", "We're ready to proceed, can we start this week?")

		assert.True(t, got.AIGenerated)
		assert.Equal(t, SentimentPositive, got.Sentiment)
		assert.Equal(t, IntentBuying, got.Intent)
		assert.Equal(t, 90, got.Confidence)
		assert.Equal(t, 95, got.Emotions.Interest)
		assert.Equal(t, "Send the proposal", got.NextAction)
	})

	t.Run("Success - out-of-range values clamped", func(t *testing.T) {
		svc := newTestService(&stubClient{completion: `{
			"sentiment": "positive", "confidence": 150,
			"emotions": {"interest": 120, "urgency": -10, "skepticism": 0, "enthusiasm": 0, "frustration": 0},
			"intent": "browsing", "keywords": [],
			"recommendations": ["keep nurturing"], "next_action": "wait"
		}`})

		got := svc.AnalyzeMessage(ctx, "lead-1", "ok")

		assert.Equal(t, 100, got.Confidence)
		assert.Equal(t, 100, got.Emotions.Interest)
		assert.Equal(t, 0, got.Emotions.Urgency)
	})

	t.Run("Fallback - invalid sentiment label from model", func(t *testing.T) {
		svc := newTestService(&stubClient{completion: `{
			"sentiment": "ecstatic", "confidence": 90,
			"emotions": {"interest": 1, "urgency": 1, "skepticism": 1, "enthusiasm": 1, "frustration": 1},
			"intent": "buying", "keywords": [],
			"recommendations": ["x"], "next_action": "y"
		}`})

		got := svc.AnalyzeMessage(ctx, "lead-1", "great, I'm interested")

		assert.False(t, got.AIGenerated)
		assert.Equal(t, SentimentPositive, got.Sentiment)
	})

	t.Run("Fallback - pricing objection classified without AI", func(t *testing.T) {
		svc := newTestService(&stubClient{err: errors.New("connection refused")})

		got := svc.AnalyzeMessage(ctx, "lead-1", "This is too expensive for me")

		assert.False(t, got.AIGenerated)
		assert.Equal(t, SentimentNegative, got.Sentiment)
		assert.Equal(t, IntentObjection, got.Intent)
		assert.LessOrEqual(t, got.Confidence, 70)
		assert.Contains(t, got.Keywords, "too expensive")
		require.NotEmpty(t, got.Recommendations)
		assert.NotEmpty(t, got.NextAction)
	})

	t.Run("Fallback - neutral browsing for flat message", func(t *testing.T) {
		svc := newTestService(nil)

		got := svc.AnalyzeMessage(ctx, "lead-1", "ok noted")

		assert.Equal(t, SentimentNeutral, got.Sentiment)
		assert.Equal(t, IntentBrowsing, got.Intent)
		assert.Equal(t, 40, got.Confidence)
	})
}

func TestHeuristicAnalysis(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		sentiment string
		intent    string
	}{
		{"buying signal", "We're ready to sign up, send the invoice", SentimentNeutral, IntentBuying},
		{"positive interest", "Sounds good, I'm interested, thanks!", SentimentPositive, IntentBrowsing},
		{"comparison shopping", "How do you compare to your competitor?", SentimentNeutral, IntentComparison},
		{"information request", "Can you explain how does the onboarding work?", SentimentNeutral, IntentInformation},
		{"question mark alone", "Do you work with clinics in Pune?", SentimentNeutral, IntentInformation},
		{"hard no", "Not interested, please stop messaging", SentimentNegative, IntentBrowsing},
		{"bare negation", "I'm not interested", SentimentNegative, IntentBrowsing},
		{"budget objection", "That's too much for our budget", SentimentNeutral, IntentObjection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := heuristicAnalysis(tt.message)

			assert.Equal(t, tt.sentiment, got.Sentiment)
			assert.Equal(t, tt.intent, got.Intent)
			assert.NotEmpty(t, got.Recommendations)
			assert.NotEmpty(t, got.NextAction)
		})
	}
}
