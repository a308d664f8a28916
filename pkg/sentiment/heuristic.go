package sentiment

import "strings"

// Keyword lexicons for the no-AI path. Matching is substring-based on the
// lowercased message, so multi-word phrases work.
var (
	positiveWords = []string{
		"interested", "sounds good", "great", "perfect", "love", "yes please",
		"looking forward", "thank you", "thanks", "let's do", "sign me up",
	}
	negativeWords = []string{
		"not interested", "too expensive", "expensive", "costly", "can't afford",
		"cannot afford", "no thanks", "stop", "unsubscribe", "waste", "disappointed",
	}
	buyingWords = []string{
		"ready to", "sign up", "buy", "purchase", "send the contract",
		"proceed", "when can we start", "payment", "invoice",
	}
	objectionWords = []string{
		"too expensive", "expensive", "costly", "can't afford", "cannot afford",
		"budget", "cheaper", "too much", "not worth",
	}
	comparisonWords = []string{
		"competitor", "other vendor", "other option", "comparing", "compare",
		"versus", " vs ", "alternative",
	}
	informationWords = []string{
		"how does", "how do", "what is", "what are", "tell me more",
		"more details", "more information", "can you explain", "pricing", "how much",
	}
	urgencyWords = []string{
		"urgent", "asap", "immediately", "today", "right away", "deadline",
	}
	frustrationWords = []string{
		"again", "still waiting", "no response", "annoyed", "frustrated", "why haven't",
	}
)

// heuristicAnalysis classifies a message from keyword lexicons alone.
// Confidence stays low; it is a stand-in, not a model.
func heuristicAnalysis(message string) Analysis {
	m := " " + strings.ToLower(message) + " "

	// Negated phrases must not also feed the positive tally ("not
	// interested" contains "interested", "no thanks" contains "thanks").
	mPositive := m
	for _, w := range negativeWords {
		mPositive = strings.ReplaceAll(mPositive, w, " ")
	}

	positive := matchLexicon(mPositive, positiveWords)
	negative := matchLexicon(m, negativeWords)
	buying := matchLexicon(m, buyingWords)
	objection := matchLexicon(m, objectionWords)
	comparison := matchLexicon(m, comparisonWords)
	information := matchLexicon(m, informationWords)
	urgency := matchLexicon(m, urgencyWords)
	frustration := matchLexicon(m, frustrationWords)

	sentiment := SentimentNeutral
	hits := 0
	switch {
	case len(positive) > len(negative):
		sentiment = SentimentPositive
		hits = len(positive)
	case len(negative) > len(positive):
		sentiment = SentimentNegative
		hits = len(negative)
	}

	confidence := 40
	if hits > 0 {
		confidence = clamp(40 + 10*hits)
		if confidence > 70 {
			confidence = 70
		}
	}

	intent := IntentBrowsing
	switch {
	case len(objection) > 0:
		intent = IntentObjection
	case len(buying) > 0:
		intent = IntentBuying
	case len(comparison) > 0:
		intent = IntentComparison
	case len(information) > 0 || strings.Contains(m, "?"):
		intent = IntentInformation
	}

	analysis := Analysis{
		Sentiment:  sentiment,
		Confidence: confidence,
		Emotions: Emotions{
			Interest:    clamp(30 + 20*(len(positive)+len(buying)+len(information))),
			Urgency:     clamp(10 + 30*len(urgency)),
			Skepticism:  clamp(10 + 25*(len(objection)+len(comparison))),
			Enthusiasm:  clamp(10 + 20*len(positive)),
			Frustration: clamp(5 + 30*(len(frustration)+len(negative))),
		},
		Intent:   intent,
		Keywords: dedupe(positive, negative, buying, objection, comparison, information, urgency, frustration),
	}
	analysis.Recommendations, analysis.NextAction = adviceFor(sentiment, intent)
	return analysis
}

func matchLexicon(message string, lexicon []string) []string {
	var matched []string
	for _, word := range lexicon {
		if strings.Contains(message, word) {
			matched = append(matched, strings.TrimSpace(word))
		}
	}
	return matched
}

func dedupe(groups ...[]string) []string {
	seen := map[string]bool{}
	var out []string
	for _, group := range groups {
		for _, word := range group {
			if !seen[word] {
				seen[word] = true
				out = append(out, word)
			}
		}
	}
	return out
}

// adviceFor maps sentiment and intent to canned guidance.
func adviceFor(sentiment, intent string) ([]string, string) {
	switch intent {
	case IntentObjection:
		return []string{
			"Acknowledge the concern directly instead of repeating the pitch",
			"Share pricing options or a smaller starting package",
		}, "Reply addressing the objection with a concrete alternative"
	case IntentBuying:
		return []string{
			"Strike while intent is high",
			"Remove friction from the next step",
		}, "Send the proposal or payment link today"
	case IntentComparison:
		return []string{
			"Ask which alternatives they are weighing",
			"Lead with the differentiators that matter to their vertical",
		}, "Send a short comparison tailored to their use case"
	case IntentInformation:
		return []string{
			"Answer the question directly before adding anything else",
			"Offer a quick call if the answer is involved",
		}, "Reply with the requested information"
	default:
		if sentiment == SentimentNegative {
			return []string{
				"Slow the cadence down",
				"Ask an open question to surface the real blocker",
			}, "Send a low-pressure check-in"
		}
		return []string{
			"Keep the conversation warm with relevant value",
			"Watch for stronger intent signals before pushing",
		}, "Continue the nurture sequence as planned"
	}
}
