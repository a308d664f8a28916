package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jordanlanch/leadpulse/pkg/ai/llm"
	"github.com/jordanlanch/leadpulse/pkg/logger"
	"github.com/jordanlanch/leadpulse/pkg/metrics"
)

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Intent categories.
const (
	IntentBuying      = "buying"
	IntentBrowsing    = "browsing"
	IntentObjection   = "objection"
	IntentInformation = "information"
	IntentComparison  = "comparison"
)

// Emotions is a 0-100 reading on each tracked dimension.
type Emotions struct {
	Interest    int `json:"interest"`
	Urgency     int `json:"urgency"`
	Skepticism  int `json:"skepticism"`
	Enthusiasm  int `json:"enthusiasm"`
	Frustration int `json:"frustration"`
}

// Analysis is the structured read on a single inbound message.
type Analysis struct {
	Sentiment       string   `json:"sentiment"`
	Confidence      int      `json:"confidence"`
	Emotions        Emotions `json:"emotions"`
	Intent          string   `json:"intent"`
	Keywords        []string `json:"keywords,omitempty"`
	Recommendations []string `json:"recommendations"`
	NextAction      string   `json:"next_action"`
	AIGenerated     bool     `json:"ai_generated"`
}

// Service analyzes inbound lead messages.
type Service struct {
	augmenter *llm.Augmenter
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// NewService creates a new sentiment service. metrics may be nil.
func NewService(augmenter *llm.Augmenter, log logger.Logger, m *metrics.Metrics) *Service {
	if log == nil {
		log = logger.Default()
	}
	return &Service{augmenter: augmenter, logger: log, metrics: m}
}

const analyzeSystemPrompt = `You analyze inbound messages from sales leads.

Respond with a single JSON object:
{
  "sentiment": "positive|neutral|negative",
  "confidence": 0-100,
  "emotions": {"interest": 0-100, "urgency": 0-100, "skepticism": 0-100, "enthusiasm": 0-100, "frustration": 0-100},
  "intent": "buying|browsing|objection|information|comparison",
  "keywords": ["notable words or phrases from the message"],
  "recommendations": ["1-3 short recommendations for the sales team"],
  "next_action": "one concrete next step"
}

Respond with JSON only, no surrounding text.`

var validSentiments = map[string]bool{
	SentimentPositive: true,
	SentimentNeutral:  true,
	SentimentNegative: true,
}

var validIntents = map[string]bool{
	IntentBuying:      true,
	IntentBrowsing:    true,
	IntentObjection:   true,
	IntentInformation: true,
	IntentComparison:  true,
}

// AnalyzeMessage produces a structured read on one inbound message. When
// text generation is unavailable a keyword heuristic stands in, so the
// result is always usable.
func (s *Service) AnalyzeMessage(ctx context.Context, leadID, message string) *Analysis {
	prompt := fmt.Sprintf("Analyze this message from a sales lead:\n\n%q", message)

	analysis, aiGenerated := llm.Generate(ctx, s.augmenter, "message_analysis",
		analyzeSystemPrompt, prompt,
		func(completion string) (Analysis, error) {
			var parsed Analysis
			if err := json.Unmarshal([]byte(llm.ExtractJSON(completion)), &parsed); err != nil {
				return Analysis{}, fmt.Errorf("failed to parse analysis response: %w", err)
			}
			parsed.Sentiment = strings.ToLower(strings.TrimSpace(parsed.Sentiment))
			parsed.Intent = strings.ToLower(strings.TrimSpace(parsed.Intent))
			if !validSentiments[parsed.Sentiment] {
				return Analysis{}, fmt.Errorf("analysis response has invalid sentiment %q", parsed.Sentiment)
			}
			if !validIntents[parsed.Intent] {
				return Analysis{}, fmt.Errorf("analysis response has invalid intent %q", parsed.Intent)
			}
			parsed.Confidence = clamp(parsed.Confidence)
			parsed.Emotions = clampEmotions(parsed.Emotions)
			if len(parsed.Recommendations) == 0 || strings.TrimSpace(parsed.NextAction) == "" {
				return Analysis{}, fmt.Errorf("analysis response missing recommendations or next action")
			}
			return parsed, nil
		},
		func() Analysis {
			return heuristicAnalysis(message)
		},
	)

	analysis.AIGenerated = aiGenerated

	if s.metrics != nil {
		s.metrics.RecordMessageAnalyzed()
	}
	s.logger.Debug("message analyzed",
		"lead_id", leadID, "sentiment", analysis.Sentiment, "intent", analysis.Intent, "ai", aiGenerated)

	return &analysis
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampEmotions(e Emotions) Emotions {
	return Emotions{
		Interest:    clamp(e.Interest),
		Urgency:     clamp(e.Urgency),
		Skepticism:  clamp(e.Skepticism),
		Enthusiasm:  clamp(e.Enthusiasm),
		Frustration: clamp(e.Frustration),
	}
}
