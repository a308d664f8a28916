package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jordanlanch/leadpulse/pkg/ai/llm"
	"github.com/jordanlanch/leadpulse/pkg/logger"
	"github.com/jordanlanch/leadpulse/pkg/metrics"
)

// Intent tiers. Thresholds are part of the deterministic core and do not
// depend on the AI rationale step.
const (
	TierHot  = "hot"
	TierWarm = "warm"
	TierCold = "cold"
)

// Service handles lead scoring operations.
type Service struct {
	augmenter *llm.Augmenter
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// NewService creates a new lead scoring service. metrics may be nil.
func NewService(augmenter *llm.Augmenter, log logger.Logger, m *metrics.Metrics) *Service {
	if log == nil {
		log = logger.Default()
	}
	return &Service{augmenter: augmenter, logger: log, metrics: m}
}

// Criteria holds the raw contact attributes a lead is scored on. Consumed
// per call and discarded; it carries no identity.
type Criteria struct {
	Industry        string `json:"industry" validate:"required"`
	CompanySize     string `json:"company_size,omitempty"`
	JobTitle        string `json:"job_title,omitempty"`
	Location        string `json:"location,omitempty"`
	Budget          string `json:"budget,omitempty"`
	Timeline        string `json:"timeline,omitempty"`
	Source          string `json:"source" validate:"required"`
	EngagementLevel string `json:"engagement_level,omitempty"`
}

// LeadScore is the scored result: a deterministic overall score and factor
// breakdown, plus AI-augmented (or fallback) rationale and recommendations.
type LeadScore struct {
	Overall         int            `json:"overall"`
	Tier            string         `json:"tier"`
	Industry        Industry       `json:"industry"`
	Breakdown       map[string]int `json:"breakdown"`
	Rationale       string         `json:"rationale"`
	Recommendations []string       `json:"recommendations"`
	ScoredAt        time.Time      `json:"scored_at"`
}

// ScoreLead scores a lead. The numeric part is pure: the same criteria and
// weight table always produce the same overall score and breakdown. Only
// rationale and recommendations involve the text-generation service, and
// those degrade to a deterministic fallback, so this never fails.
func (s *Service) ScoreLead(ctx context.Context, criteria Criteria) *LeadScore {
	industry := ResolveIndustry(criteria.Industry)
	weights := WeightsFor(industry)

	breakdown := map[string]int{
		// Leads entering the pipeline are pre-filtered to the target
		// industry, so the match factor is a constant.
		FactorIndustryMatch: 100,
		FactorCompanySize:   scoreCompanySize(criteria.CompanySize),
		FactorJobTitle:      scoreJobTitle(criteria.JobTitle),
		FactorLocation:      scoreLocation(criteria.Location),
		FactorBudget:        scoreBudget(criteria.Budget),
		FactorTimeline:      scoreTimeline(criteria.Timeline),
		FactorSource:        scoreSource(criteria.Source),
		FactorEngagement:    scoreEngagement(criteria.EngagementLevel),
	}

	weighted := 0
	for _, factor := range Factors {
		weighted += breakdown[factor] * weights[factor]
	}
	overall := int(math.Round(float64(weighted) / 100))

	score := &LeadScore{
		Overall:   overall,
		Tier:      TierFor(overall),
		Industry:  industry,
		Breakdown: breakdown,
		ScoredAt:  time.Now(),
	}

	s.augmentRationale(ctx, criteria, score)

	if s.metrics != nil {
		s.metrics.RecordLeadScored(score.Tier, score.Overall)
	}
	s.logger.Debug("lead scored", "industry", industry, "overall", overall, "tier", score.Tier)

	return score
}

// TierFor classifies an overall score into an intent tier.
func TierFor(overall int) string {
	switch {
	case overall >= 80:
		return TierHot
	case overall >= 60:
		return TierWarm
	default:
		return TierCold
	}
}

const rationaleSystemPrompt = `You are a sales qualification assistant. Given a lead's factor scores you explain the overall score and suggest next actions.

Respond with a single JSON object:
{"reasoning": "1-3 sentence explanation", "recommendations": ["2-4 short actionable recommendations"]}

Respond with JSON only, no surrounding text.`

type rationaleResponse struct {
	Reasoning       string   `json:"reasoning"`
	Recommendations []string `json:"recommendations"`
}

// augmentRationale fills Rationale and Recommendations, via the
// text-generation service when available and a deterministic fallback
// otherwise.
func (s *Service) augmentRationale(ctx context.Context, criteria Criteria, score *LeadScore) {
	prompt := s.buildRationalePrompt(criteria, score)

	result, _ := llm.Generate(ctx, s.augmenter, "score_rationale", rationaleSystemPrompt, prompt,
		func(completion string) (rationaleResponse, error) {
			var parsed rationaleResponse
			if err := json.Unmarshal([]byte(llm.ExtractJSON(completion)), &parsed); err != nil {
				return rationaleResponse{}, fmt.Errorf("failed to parse rationale response: %w", err)
			}
			if strings.TrimSpace(parsed.Reasoning) == "" || len(parsed.Recommendations) == 0 {
				return rationaleResponse{}, fmt.Errorf("rationale response missing reasoning or recommendations")
			}
			if len(parsed.Recommendations) > 4 {
				parsed.Recommendations = parsed.Recommendations[:4]
			}
			return parsed, nil
		},
		func() rationaleResponse {
			return fallbackRationale(score)
		},
	)

	score.Rationale = result.Reasoning
	score.Recommendations = result.Recommendations
}

func (s *Service) buildRationalePrompt(criteria Criteria, score *LeadScore) string {
	var b strings.Builder

	fmt.Fprintf(&b, "A %s lead scored %d/100 (%s tier).\n\n", score.Industry, score.Overall, score.Tier)
	b.WriteString("Lead profile:\n")
	fmt.Fprintf(&b, "- Company size: %s\n", orUnknown(criteria.CompanySize))
	fmt.Fprintf(&b, "- Job title: %s\n", orUnknown(criteria.JobTitle))
	fmt.Fprintf(&b, "- Location: %s\n", orUnknown(criteria.Location))
	fmt.Fprintf(&b, "- Budget: %s\n", orUnknown(criteria.Budget))
	fmt.Fprintf(&b, "- Timeline: %s\n", orUnknown(criteria.Timeline))
	fmt.Fprintf(&b, "- Source: %s\n", criteria.Source)
	b.WriteString("\nFactor scores (0-100):\n")
	for _, factor := range Factors {
		fmt.Fprintf(&b, "- %s: %d\n", factor, score.Breakdown[factor])
	}
	b.WriteString("\nExplain the score and recommend next actions for the sales team.")

	return b.String()
}

// fallbackRationale is the deterministic, network-free rationale used when
// text generation is unavailable. Never empty.
func fallbackRationale(score *LeadScore) rationaleResponse {
	return rationaleResponse{
		Reasoning: fmt.Sprintf("Lead scored %d/100 based on %s industry criteria.", score.Overall, score.Industry),
		Recommendations: []string{
			"Follow up within 24-48 hours",
			"Personalize message based on role and company",
			"Offer industry-specific value proposition",
		},
	}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
