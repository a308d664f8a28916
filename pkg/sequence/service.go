package sequence

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jordanlanch/leadpulse/pkg/ai/llm"
	"github.com/jordanlanch/leadpulse/pkg/domain"
	"github.com/jordanlanch/leadpulse/pkg/logger"
	"github.com/jordanlanch/leadpulse/pkg/metrics"
	"github.com/jordanlanch/leadpulse/pkg/scoring"
)

// Service generates follow-up sequences and related message operations.
type Service struct {
	augmenter *llm.Augmenter
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// NewService creates a new sequence service. metrics may be nil.
func NewService(augmenter *llm.Augmenter, log logger.Logger, m *metrics.Metrics) *Service {
	if log == nil {
		log = logger.Default()
	}
	return &Service{augmenter: augmenter, logger: log, metrics: m}
}

// Context carries everything the generator knows about the lead and the
// business sending the sequence.
type Context struct {
	Industry         string            `json:"industry" validate:"required"`
	LeadName         string            `json:"lead_name,omitempty"`
	LeadCompany      string            `json:"lead_company,omitempty"`
	LeadRole         string            `json:"lead_role,omitempty"`
	LeadSource       string            `json:"lead_source,omitempty"`
	BusinessName     string            `json:"business_name" validate:"required"`
	BusinessIndustry string            `json:"business_industry,omitempty"`
	LeadData         map[string]string `json:"lead_data,omitempty"`
}

// FollowUpStep is one touchpoint in a sequence. DelayDays is relative to
// the previous step; DayOffset is cumulative from step one.
type FollowUpStep struct {
	StepNumber            int            `json:"step_number"`
	Purpose               string         `json:"purpose"`
	DelayDays             int            `json:"delay_days"`
	DayOffset             int            `json:"day_offset"`
	Channel               domain.Channel `json:"channel"`
	Subject               string         `json:"subject,omitempty"`
	Body                  string         `json:"body"`
	AIGenerated           bool           `json:"ai_generated"`
	PersonalizationTokens []string       `json:"personalization_tokens,omitempty"`
}

// FollowUpSequence is a complete 21-day nurture plan for one lead.
type FollowUpSequence struct {
	Industry          scoring.Industry `json:"industry"`
	Steps             []FollowUpStep   `json:"steps"`
	TotalDurationDays int              `json:"total_duration_days"`
	GeneratedAt       time.Time        `json:"generated_at"`
}

// stepPlan fixes the cadence and channel of every sequence. Copy varies per
// lead; structure never does.
var stepPlan = []struct {
	purpose   string
	delayDays int
	channel   domain.Channel
}{
	{"welcome", 0, domain.ChannelEmail},
	{"value_proposition", 3, domain.ChannelEmail},
	{"case_study", 4, domain.ChannelEmail},
	{"engagement_nudge", 7, domain.ChannelWhatsApp},
	{"limited_offer", 7, domain.ChannelEmail},
}

// stepCopy is the per-step content the AI is asked to produce.
type stepCopy struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

const sequenceSystemPrompt = `You are a B2B sales copywriter. You write short follow-up messages for lead nurturing.

Respond with a JSON array of exactly 5 objects, one per step, in order:
[{"subject": "email subject (empty string for whatsapp)", "body": "message body"}]

Keep each body under 120 words, conversational, no markdown. Respond with JSON only.`

// GenerateSequence builds the 5-step nurture sequence for the lead. Copy
// comes from the text-generation service when available and from the
// industry templates otherwise; cadence, channels and purposes are fixed
// either way, so this never fails.
func (s *Service) GenerateSequence(ctx context.Context, c Context) *FollowUpSequence {
	industry := scoring.ResolveIndustry(c.Industry)
	tmpl := templateFor(industry)

	copies, aiGenerated := llm.Generate(ctx, s.augmenter, "sequence_generation",
		sequenceSystemPrompt, s.buildSequencePrompt(c, tmpl),
		func(completion string) ([]stepCopy, error) {
			var parsed []stepCopy
			if err := json.Unmarshal([]byte(llm.ExtractJSON(completion)), &parsed); err != nil {
				return nil, fmt.Errorf("failed to parse sequence response: %w", err)
			}
			if len(parsed) != len(stepPlan) {
				return nil, fmt.Errorf("expected %d steps, got %d", len(stepPlan), len(parsed))
			}
			for i, plan := range stepPlan {
				if strings.TrimSpace(parsed[i].Body) == "" {
					return nil, fmt.Errorf("step %d has an empty body", i+1)
				}
				if plan.channel == domain.ChannelEmail && strings.TrimSpace(parsed[i].Subject) == "" {
					return nil, fmt.Errorf("email step %d is missing a subject", i+1)
				}
			}
			return parsed, nil
		},
		func() []stepCopy {
			return fallbackCopies(c, industry, tmpl)
		},
	)

	seq := &FollowUpSequence{
		Industry:    industry,
		Steps:       make([]FollowUpStep, 0, len(stepPlan)),
		GeneratedAt: time.Now(),
	}

	offset := 0
	for i, plan := range stepPlan {
		offset += plan.delayDays
		step := FollowUpStep{
			StepNumber:  i + 1,
			Purpose:     plan.purpose,
			DelayDays:   plan.delayDays,
			DayOffset:   offset,
			Channel:     plan.channel,
			Body:        copies[i].Body,
			AIGenerated: aiGenerated,
		}
		if plan.channel == domain.ChannelEmail {
			step.Subject = copies[i].Subject
		}
		step.PersonalizationTokens = tokensIn(step.Subject + " " + step.Body)
		seq.Steps = append(seq.Steps, step)
	}
	seq.TotalDurationDays = offset

	if s.metrics != nil {
		s.metrics.RecordSequenceGenerated(aiGenerated)
	}
	s.logger.Debug("sequence generated", "industry", industry, "ai", aiGenerated)

	return seq
}

func (s *Service) buildSequencePrompt(c Context, tmpl industryTemplate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a 5-step follow-up sequence from %s", orBusiness(c.BusinessName))
	if c.BusinessIndustry != "" {
		fmt.Fprintf(&b, " (%s)", c.BusinessIndustry)
	}
	fmt.Fprintf(&b, " to a %s lead.\n\n", c.Industry)

	b.WriteString("Lead:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orThere(c.LeadName))
	if c.LeadCompany != "" {
		fmt.Fprintf(&b, "- Company: %s\n", c.LeadCompany)
	}
	if c.LeadRole != "" {
		fmt.Fprintf(&b, "- Role: %s\n", c.LeadRole)
	}
	if c.LeadSource != "" {
		fmt.Fprintf(&b, "- Source: %s\n", c.LeadSource)
	}
	for _, k := range sortedKeys(c.LeadData) {
		fmt.Fprintf(&b, "- %s: %s\n", k, c.LeadData[k])
	}

	b.WriteString("\nSteps, in order:\n")
	for i, plan := range stepPlan {
		fmt.Fprintf(&b, "%d. %s via %s\n", i+1, strings.ReplaceAll(plan.purpose, "_", " "), plan.channel)
	}

	fmt.Fprintf(&b, "\nIndustry pain points: %s\n", strings.Join(tmpl.PainPoints, "; "))
	fmt.Fprintf(&b, "Value propositions: %s\n", strings.Join(tmpl.ValueProps, "; "))
	fmt.Fprintf(&b, "Urgency angle for the final step: %s\n", tmpl.UrgencyPhrase)

	return b.String()
}

var titleCaser = cases.Title(language.English)

// fallbackCopies renders the deterministic template sequence with the
// lead's details substituted in.
func fallbackCopies(c Context, industry scoring.Industry, tmpl industryTemplate) []stepCopy {
	name := orThere(c.LeadName)
	business := orBusiness(c.BusinessName)
	vertical := titleCaser.String(strings.ReplaceAll(string(industry), "_", " "))

	painPoint := tmpl.PainPoints[0]
	valueProp := tmpl.ValueProps[0]
	secondValue := tmpl.ValueProps[len(tmpl.ValueProps)-1]

	return []stepCopy{
		{
			Subject: fmt.Sprintf("Welcome, %s - here's how %s can help", name, business),
			Body: fmt.Sprintf("Hi %s,\n\nThanks for reaching out to %s. We work with %s businesses dealing with %s, and I'd love to learn more about what you're looking for.\n\nIs there a good time this week for a quick chat?",
				name, business, vertical, painPoint),
		},
		{
			Subject: fmt.Sprintf("How %s businesses handle %s", vertical, painPoint),
			Body: fmt.Sprintf("Hi %s,\n\nMost %s teams we talk to struggle with %s. Our approach: %s.\n\nHappy to walk you through how that would look for you.",
				name, vertical, painPoint, valueProp),
		},
		{
			Subject: fmt.Sprintf("A result from a %s business like yours", vertical),
			Body: fmt.Sprintf("Hi %s,\n\nA %s client of ours recently used %s to get %s. I can share the details if you're interested - just reply to this email.",
				name, vertical, business, secondValue),
		},
		{
			// WhatsApp step, no subject.
			Body: fmt.Sprintf("Hi %s, this is %s. Just checking in - did you get a chance to look at what I sent over? Happy to answer any questions here.",
				name, business),
		},
		{
			Subject: fmt.Sprintf("%s - let's talk this week", tmpl.UrgencyPhrase),
			Body: fmt.Sprintf("Hi %s,\n\n%s, so I wanted to reach out one more time. If you'd like to move forward, reply and we'll set something up this week.\n\nEither way, thanks for considering %s.",
				name, tmpl.UrgencyPhrase, business),
		},
	}
}

// tokensIn lists the {{token}} placeholders referenced in a piece of copy.
func tokensIn(text string) []string {
	seen := map[string]bool{}
	var tokens []string
	for {
		start := strings.Index(text, "{{")
		if start < 0 {
			break
		}
		end := strings.Index(text[start:], "}}")
		if end < 0 {
			break
		}
		token := strings.TrimSpace(text[start+2 : start+end])
		if token != "" && !seen[token] {
			seen[token] = true
			tokens = append(tokens, token)
		}
		text = text[start+end+2:]
	}
	sort.Strings(tokens)
	return tokens
}

// sortedKeys keeps prompts byte-stable across runs.
func sortedKeys(data map[string]string) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func orThere(name string) string {
	if strings.TrimSpace(name) == "" {
		return "there"
	}
	return name
}

func orBusiness(name string) string {
	if strings.TrimSpace(name) == "" {
		return "our team"
	}
	return name
}
