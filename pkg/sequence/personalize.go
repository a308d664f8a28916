package sequence

import (
	"context"
	"fmt"
	"strings"

	"github.com/jordanlanch/leadpulse/pkg/ai/llm"
)

const personalizeSystemPrompt = `You are a B2B sales copywriter. Rewrite the given message template so it reads as a personal message to this specific lead. Keep the intent and length of the original. Replace any {{token}} placeholders with real values from the lead context.

Respond with the rewritten message only, no quotes, no commentary.`

// PersonalizeMessage rewrites a message template for a specific lead,
// weaving in the supplied talking points. When text generation is
// unavailable the template is returned unchanged.
func (s *Service) PersonalizeMessage(ctx context.Context, template string, pctx Context, points []string) (string, bool) {
	prompt := buildPersonalizePrompt(template, pctx, points)

	return llm.Generate(ctx, s.augmenter, "message_personalization",
		personalizeSystemPrompt, prompt,
		func(completion string) (string, error) {
			out := strings.TrimSpace(completion)
			if out == "" {
				return "", fmt.Errorf("personalization produced an empty message")
			}
			return out, nil
		},
		func() string {
			return template
		},
	)
}

func buildPersonalizePrompt(template string, pctx Context, points []string) string {
	var b strings.Builder

	b.WriteString("Template:\n")
	b.WriteString(template)
	b.WriteString("\n\nLead context:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orThere(pctx.LeadName))
	fmt.Fprintf(&b, "- Industry: %s\n", pctx.Industry)
	if pctx.LeadCompany != "" {
		fmt.Fprintf(&b, "- Company: %s\n", pctx.LeadCompany)
	}
	if pctx.LeadRole != "" {
		fmt.Fprintf(&b, "- Role: %s\n", pctx.LeadRole)
	}
	fmt.Fprintf(&b, "- Sender: %s\n", orBusiness(pctx.BusinessName))
	for _, k := range sortedKeys(pctx.LeadData) {
		fmt.Fprintf(&b, "- %s: %s\n", k, pctx.LeadData[k])
	}

	if len(points) > 0 {
		b.WriteString("\nWork in these points where natural:\n")
		for _, p := range points {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}

	return b.String()
}
