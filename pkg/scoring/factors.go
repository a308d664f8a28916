package scoring

import "strings"

// Factor scores are pure functions of a single criteria field, each in
// [0,100]. Missing or unrecognized optional values degrade to a documented
// default instead of erroring.

// Company size class -> score. Unrecognized sizes score 50.
var companySizeScores = map[string]int{
	"enterprise": 100,
	"large":      85,
	"medium":     70,
	"small":      55,
	"startup":    45,
	"solo":       35,
}

// Acquisition source -> score. Paid lead-form sources score higher than
// manual entry. Unknown sources score 50.
var sourceScores = map[string]int{
	"referral":          95,
	"facebook_lead_ads": 90,
	"instagram_ads":     85,
	"google_ads":        85,
	"whatsapp_inbound":  85,
	"linkedin":          80,
	"website_form":      80,
	"walk_in":           70,
	"manual_entry":      50,
	"cold_call":         45,
}

// Declared engagement level -> score. Missing level scores 50.
var engagementScores = map[string]int{
	"high":   100,
	"medium": 70,
	"low":    40,
	"none":   20,
}

// Tier-1 Indian metros score 90, tier-2 cities 75.
var tier1Cities = []string{"mumbai", "new delhi", "delhi", "bangalore", "bengaluru", "hyderabad", "chennai", "kolkata", "pune"}
var tier2Cities = []string{"ahmedabad", "jaipur", "surat", "lucknow", "indore", "nagpur", "chandigarh", "kochi", "coimbatore", "bhopal", "visakhapatnam"}

func scoreCompanySize(size string) int {
	if score, ok := companySizeScores[normalize(size)]; ok {
		return score
	}
	return 50
}

// Missing and unrecognized titles both score 50, like the other factors.
func scoreJobTitle(title string) int {
	t := normalize(title)

	switch {
	case containsAny(t, "ceo", "founder", "owner", "president", "chairman", "managing director"):
		return 100
	case containsAny(t, "director", "vp", "vice president", "head"):
		return 90
	case containsAny(t, "manager", "management"):
		return 80
	case containsAny(t, "senior", "lead", "principal"):
		return 75
	case containsAny(t, "specialist", "analyst", "executive", "consultant", "associate"):
		return 60
	default:
		return 50
	}
}

func scoreLocation(location string) int {
	loc := normalize(location)
	if loc == "" {
		return 50
	}

	if containsAny(loc, tier1Cities...) {
		return 90
	}
	if containsAny(loc, tier2Cities...) {
		return 75
	}
	return 60
}

func scoreBudget(budget string) int {
	b := normalize(budget)

	switch {
	case strings.Contains(b, "crore"):
		return 100
	case containsAny(b, "lakh", "lac"):
		return 80
	case strings.Contains(b, "thousand") || hasThousandsSuffix(b):
		return 60
	default:
		return 50
	}
}

// hasThousandsSuffix matches shorthand like "500k" or "50 k".
func hasThousandsSuffix(b string) bool {
	for _, field := range strings.Fields(b) {
		trimmed := strings.TrimSuffix(field, "k")
		if trimmed == field || trimmed == "" {
			continue
		}
		allDigits := true
		for _, r := range trimmed {
			if (r < '0' || r > '9') && r != ',' && r != '.' {
				allDigits = false
				break
			}
		}
		if allDigits {
			return true
		}
	}
	return false
}

func scoreTimeline(timeline string) int {
	t := normalize(timeline)

	switch {
	case containsAny(t, "immediate", "urgent", "asap", "right away", "now"):
		return 100
	// Long-horizon phrasing is matched before the month/quarter tiers so
	// that "6 months" and "next year" don't hit the shorter-term keywords.
	case containsAny(t, "long", "year", "6 month", "eventually", "someday"):
		return 40
	case containsAny(t, "quarter", "3 month", "90 day"):
		return 60
	case containsAny(t, "month", "30 day", "week"):
		return 80
	default:
		return 50
	}
}

func scoreSource(source string) int {
	if score, ok := sourceScores[normalize(source)]; ok {
		return score
	}
	return 50
}

func scoreEngagement(level string) int {
	if score, ok := engagementScores[normalize(level)]; ok {
		return score
	}
	return 50
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
