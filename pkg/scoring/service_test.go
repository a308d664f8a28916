package scoring

import (
	"context"
	"errors"
	"fmt"
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

func TestScoreLead(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - strong real estate lead scores hot", func(t *testing.T) {
		svc := newTestService(nil)

		score := svc.ScoreLead(ctx, Criteria{
			Industry:        "real_estate",
			CompanySize:     "enterprise",
			JobTitle:        "Founder",
			Location:        "Mumbai",
			Budget:          "2 crore",
			Timeline:        "immediate",
			Source:          "facebook_lead_ads",
			EngagementLevel: "high",
		})

		assert.Equal(t, 98, score.Overall)
		assert.Equal(t, TierHot, score.Tier)
		assert.Equal(t, IndustryRealEstate, score.Industry)
		assert.Equal(t, 100, score.Breakdown[FactorIndustryMatch])
		assert.Equal(t, 90, score.Breakdown[FactorLocation])
		assert.False(t, score.ScoredAt.IsZero())
	})

	t.Run("Success - minimal lead with unknown industry scores cold", func(t *testing.T) {
		svc := newTestService(nil)

		score := svc.ScoreLead(ctx, Criteria{
			Industry: "space_tourism",
			Source:   "carrier_pigeon",
		})

		// Every optional factor degrades to 50, industry match stays 100:
		// (100*10 + 50*90) / 100 = 55.
		assert.Equal(t, 55, score.Overall)
		assert.Equal(t, TierCold, score.Tier)
		assert.Equal(t, IndustryDefault, score.Industry)
	})

	t.Run("Success - breakdown carries every factor", func(t *testing.T) {
		svc := newTestService(nil)

		score := svc.ScoreLead(ctx, Criteria{Industry: "healthcare", Source: "referral"})

		require.Len(t, score.Breakdown, len(Factors))
		for _, factor := range Factors {
			assert.Contains(t, score.Breakdown, factor)
		}
	})

	t.Run("Success - deterministic for identical criteria", func(t *testing.T) {
		svc := newTestService(nil)
		criteria := Criteria{
			Industry:    "finance",
			CompanySize: "medium",
			JobTitle:    "Director of Operations",
			Budget:      "50 lakh",
			Source:      "website_form",
		}

		first := svc.ScoreLead(ctx, criteria)
		second := svc.ScoreLead(ctx, criteria)

		assert.Equal(t, first.Overall, second.Overall)
		assert.Equal(t, first.Tier, second.Tier)
		assert.Equal(t, first.Breakdown, second.Breakdown)
	})

	t.Run("Success - AI rationale used when available", func(t *testing.T) {
		svc := newTestService(&stubClient{
			completion: `{"reasoning": "Senior decision-maker with urgent timeline.", "recommendations": ["Call today", "Send pricing deck"]}`,
		})

		score := svc.ScoreLead(ctx, Criteria{Industry: "real_estate", Source: "referral"})

		assert.Equal(t, "Senior decision-maker with urgent timeline.", score.Rationale)
		assert.Equal(t, []string{"Call today", "Send pricing deck"}, score.Recommendations)
	})

	t.Run("Fallback - rationale complete when generation fails", func(t *testing.T) {
		svc := newTestService(&stubClient{err: errors.New("connection refused")})

		score := svc.ScoreLead(ctx, Criteria{Industry: "space_tourism", Source: "carrier_pigeon"})

		assert.Equal(t, 55, score.Overall)
		assert.Equal(t, "Lead scored 55/100 based on default industry criteria.", score.Rationale)
		assert.Len(t, score.Recommendations, 3)
	})

	t.Run("Fallback - unparseable completion", func(t *testing.T) {
		svc := newTestService(&stubClient{completion: "I'd rather not say."})

		score := svc.ScoreLead(ctx, Criteria{Industry: "ecommerce", Source: "google_ads"})

		assert.NotEmpty(t, score.Rationale)
		assert.NotEmpty(t, score.Recommendations)
	})
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		overall  int
		expected string
	}{
		{100, TierHot},
		{80, TierHot},
		{79, TierWarm},
		{60, TierWarm},
		{59, TierCold},
		{0, TierCold},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d is %s", tt.overall, tt.expected), func(t *testing.T) {
			assert.Equal(t, tt.expected, TierFor(tt.overall))
		})
	}
}
