package sequence

import "github.com/jordanlanch/leadpulse/pkg/scoring"

// industryTemplate carries the vertical-specific copy fed to both the AI
// prompt and the deterministic fallback templates.
type industryTemplate struct {
	PainPoints    []string
	ValueProps    []string
	UrgencyPhrase string
}

// industryTemplates is keyed by the same closed industry set the scorer
// uses. Loaded once, read-only.
var industryTemplates = map[scoring.Industry]industryTemplate{
	scoring.IndustryRealEstate: {
		PainPoints: []string{
			"finding serious buyers in a crowded market",
			"long sales cycles on high-value properties",
			"site visits that never convert",
		},
		ValueProps: []string{
			"pre-qualified buyer leads matched to your listings",
			"automated follow-up that keeps prospects warm between visits",
		},
		UrgencyPhrase: "Property prices in your area are moving fast",
	},
	scoring.IndustryHealthcare: {
		PainPoints: []string{
			"no-shows eating into appointment slots",
			"patients dropping off after the first enquiry",
			"front-desk staff buried in repetitive follow-up calls",
		},
		ValueProps: []string{
			"automated appointment reminders that cut no-shows",
			"patient enquiry follow-up without adding front-desk load",
		},
		UrgencyPhrase: "Every unfilled slot this week is revenue you can't recover",
	},
	scoring.IndustryEducation: {
		PainPoints: []string{
			"admission enquiries going cold before counselling calls",
			"parents comparing multiple institutes at once",
			"seasonal enrollment spikes overwhelming the admissions team",
		},
		ValueProps: []string{
			"instant enquiry response that keeps you first in line",
			"structured nurture from enquiry to enrollment",
		},
		UrgencyPhrase: "Admission season windows close quickly",
	},
	scoring.IndustryFinance: {
		PainPoints: []string{
			"compliance-heavy onboarding slowing down conversions",
			"clients going silent after the first consultation",
			"low-intent enquiries wasting advisor time",
		},
		ValueProps: []string{
			"qualified prospects routed straight to your advisors",
			"consistent follow-up that builds trust before the pitch",
		},
		UrgencyPhrase: "Current rates won't hold for long",
	},
	scoring.IndustryEcommerce: {
		PainPoints: []string{
			"abandoned carts and one-time buyers",
			"rising ad costs per acquired customer",
			"support queries drowning out sales conversations",
		},
		ValueProps: []string{
			"recover abandoned carts with timely personal nudges",
			"turn one-time buyers into repeat customers",
		},
		UrgencyPhrase: "Your current offer expires soon",
	},
	scoring.IndustryDefault: {
		PainPoints: []string{
			"leads going cold before anyone follows up",
			"manual follow-up that doesn't scale",
		},
		ValueProps: []string{
			"every lead followed up on time, automatically",
			"more conversations converted without extra headcount",
		},
		UrgencyPhrase: "Spots for this month are filling up",
	},
}

// templateFor returns the copy table for the industry, falling back to the
// default table for unknown verticals.
func templateFor(industry scoring.Industry) industryTemplate {
	if t, ok := industryTemplates[industry]; ok {
		return t
	}
	return industryTemplates[scoring.IndustryDefault]
}
