package engagement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jordanlanch/leadpulse/pkg/conversation"
	"github.com/jordanlanch/leadpulse/pkg/domain"
	"github.com/jordanlanch/leadpulse/pkg/logger"
)

// Engagement levels.
const (
	LevelHigh   = "high"
	LevelMedium = "medium"
	LevelLow    = "low"
)

// Communication styles.
const (
	StyleFormal    = "formal"
	StyleCasual    = "casual"
	StyleTechnical = "technical"
	StyleFriendly  = "friendly"
)

// Pattern summarizes how a lead engages across their whole conversation.
// Recomputed from history on every call; there is no incremental state.
type Pattern struct {
	InboundMessages    int            `json:"inbound_messages"`
	AvgResponseHours   float64        `json:"avg_response_hours"`
	AvgResponseLength  int            `json:"avg_response_length"`
	QuestionCount      int            `json:"question_count"`
	Level              string         `json:"level"`
	PreferredChannel   domain.Channel `json:"preferred_channel,omitempty"`
	BestTimeToContact  string         `json:"best_time_to_contact"`
	CommunicationStyle string         `json:"communication_style"`
	ComputedAt         time.Time      `json:"computed_at"`
}

// Service computes engagement patterns from stored conversations.
type Service struct {
	store  conversation.Store
	logger logger.Logger
}

// NewService creates a new engagement service.
func NewService(store conversation.Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.Default()
	}
	return &Service{store: store, logger: log}
}

// ComputeEngagementPattern loads the lead's history and computes their
// pattern. Same history in, same pattern out.
func (s *Service) ComputeEngagementPattern(ctx context.Context, leadID string) (*Pattern, error) {
	history, err := s.store.History(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation history: %w", err)
	}

	pattern := ComputePattern(history)
	pattern.ComputedAt = time.Now()

	s.logger.Debug("engagement pattern computed",
		"lead_id", leadID, "level", pattern.Level, "inbound", pattern.InboundMessages)

	return &pattern, nil
}

// ComputePattern aggregates a message history into a Pattern. Pure; the
// ComputedAt field is left zero for the caller to fill.
func ComputePattern(history []domain.Message) Pattern {
	pattern := Pattern{
		Level:              LevelLow,
		BestTimeToContact:  "morning",
		CommunicationStyle: StyleCasual,
	}

	var (
		responseHours []float64
		totalLength   int
		lastOutbound  time.Time
		channelCounts = map[domain.Channel]int{}
		hourBuckets   = map[string]int{}
		inboundText   strings.Builder
	)

	for _, msg := range history {
		if !msg.IsInbound() {
			lastOutbound = msg.At
			continue
		}

		pattern.InboundMessages++
		totalLength += len(msg.Content)
		pattern.QuestionCount += strings.Count(msg.Content, "?")
		channelCounts[msg.Channel]++
		hourBuckets[timeBucket(msg.At.Hour())]++
		inboundText.WriteString(strings.ToLower(msg.Content))
		inboundText.WriteString(" ")

		if !lastOutbound.IsZero() && msg.At.After(lastOutbound) {
			responseHours = append(responseHours, msg.At.Sub(lastOutbound).Hours())
			// Consumed; the next inbound without an outbound in between is
			// a follow-on, not a response.
			lastOutbound = time.Time{}
		}
	}

	if pattern.InboundMessages == 0 {
		return pattern
	}

	pattern.AvgResponseLength = totalLength / pattern.InboundMessages
	if len(responseHours) > 0 {
		total := 0.0
		for _, h := range responseHours {
			total += h
		}
		pattern.AvgResponseHours = total / float64(len(responseHours))
	}

	pattern.PreferredChannel = modeChannel(channelCounts)
	pattern.BestTimeToContact = modeBucket(hourBuckets)
	pattern.Level = level(pattern.InboundMessages, pattern.AvgResponseHours)
	pattern.CommunicationStyle = style(inboundText.String())

	return pattern
}

// level grades engagement from reply volume and responsiveness.
func level(inbound int, avgResponseHours float64) string {
	switch {
	case inbound >= 4 && avgResponseHours <= 6:
		return LevelHigh
	case inbound >= 2 && avgResponseHours <= 48:
		return LevelMedium
	default:
		return LevelLow
	}
}

func timeBucket(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 22:
		return "evening"
	default:
		return "night"
	}
}

// bucketOrder breaks ties deterministically, earliest slot first.
var bucketOrder = []string{"morning", "afternoon", "evening", "night"}

func modeBucket(counts map[string]int) string {
	best, bestCount := "morning", 0
	for _, bucket := range bucketOrder {
		if counts[bucket] > bestCount {
			best, bestCount = bucket, counts[bucket]
		}
	}
	return best
}

// channelOrder breaks ties deterministically.
var channelOrder = []domain.Channel{domain.ChannelEmail, domain.ChannelWhatsApp, domain.ChannelSMS}

func modeChannel(counts map[domain.Channel]int) domain.Channel {
	var best domain.Channel
	bestCount := 0
	for _, ch := range channelOrder {
		if counts[ch] > bestCount {
			best, bestCount = ch, counts[ch]
		}
	}
	return best
}

var (
	formalMarkers    = []string{"dear", "regards", "kindly", "sincerely", "pursuant", "herewith"}
	technicalMarkers = []string{"api", "integration", "crm", "dashboard", "export", "webhook", "database", "sso"}
	friendlyMarkers  = []string{"thanks", "thank you", "appreciate", "great", "awesome", ":)", "!"}
)

// style picks a communication style from vocabulary markers. Technical
// vocabulary wins over tone markers.
func style(text string) string {
	switch {
	case containsAny(text, technicalMarkers):
		return StyleTechnical
	case containsAny(text, formalMarkers):
		return StyleFormal
	case containsAny(text, friendlyMarkers):
		return StyleFriendly
	default:
		return StyleCasual
	}
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
