package scoring

// Industry is a closed enumeration of the verticals the pipeline is tuned
// for. Unknown keys resolve to IndustryDefault rather than failing.
type Industry string

const (
	IndustryRealEstate  Industry = "real_estate"
	IndustryHealthcare  Industry = "healthcare"
	IndustryEducation   Industry = "education"
	IndustryFinance     Industry = "finance"
	IndustryEcommerce   Industry = "ecommerce"
	IndustryHospitality Industry = "hospitality"
	IndustryDefault     Industry = "default"
)

// The eight scoring factors. Every breakdown map carries exactly these keys.
const (
	FactorIndustryMatch = "industry_match"
	FactorCompanySize   = "company_size"
	FactorJobTitle      = "job_title"
	FactorLocation      = "location"
	FactorBudget        = "budget"
	FactorTimeline      = "timeline"
	FactorSource        = "source"
	FactorEngagement    = "engagement"
)

// Factors lists the factor names in a stable order.
var Factors = []string{
	FactorIndustryMatch,
	FactorCompanySize,
	FactorJobTitle,
	FactorLocation,
	FactorBudget,
	FactorTimeline,
	FactorSource,
	FactorEngagement,
}

// Weights maps factor name to its integer weight. Weights for an industry
// are expected to sum to 100; ValidateTables checks this at startup.
type Weights map[string]int

// Sum returns the total weight across all factors.
func (w Weights) Sum() int {
	total := 0
	for _, v := range w {
		total += v
	}
	return total
}

// weightTables holds the per-industry factor weights. Loaded once, read-only.
var weightTables = map[Industry]Weights{
	IndustryDefault: {
		FactorIndustryMatch: 10,
		FactorCompanySize:   15,
		FactorJobTitle:      15,
		FactorLocation:      10,
		FactorBudget:        20,
		FactorTimeline:      15,
		FactorSource:        10,
		FactorEngagement:    5,
	},
	IndustryRealEstate: {
		FactorIndustryMatch: 5,
		FactorCompanySize:   10,
		FactorJobTitle:      10,
		FactorLocation:      15,
		FactorBudget:        25,
		FactorTimeline:      20,
		FactorSource:        10,
		FactorEngagement:    5,
	},
	IndustryHealthcare: {
		FactorIndustryMatch: 10,
		FactorCompanySize:   20,
		FactorJobTitle:      15,
		FactorLocation:      10,
		FactorBudget:        15,
		FactorTimeline:      10,
		FactorSource:        10,
		FactorEngagement:    10,
	},
	IndustryEducation: {
		FactorIndustryMatch: 10,
		FactorCompanySize:   15,
		FactorJobTitle:      20,
		FactorLocation:      5,
		FactorBudget:        15,
		FactorTimeline:      15,
		FactorSource:        10,
		FactorEngagement:    10,
	},
	IndustryFinance: {
		FactorIndustryMatch: 10,
		FactorCompanySize:   15,
		FactorJobTitle:      20,
		FactorLocation:      5,
		FactorBudget:        25,
		FactorTimeline:      10,
		FactorSource:        10,
		FactorEngagement:    5,
	},
	IndustryEcommerce: {
		FactorIndustryMatch: 10,
		FactorCompanySize:   10,
		FactorJobTitle:      10,
		FactorLocation:      5,
		FactorBudget:        20,
		FactorTimeline:      20,
		FactorSource:        15,
		FactorEngagement:    10,
	},
	IndustryHospitality: {
		FactorIndustryMatch: 10,
		FactorCompanySize:   15,
		FactorJobTitle:      10,
		FactorLocation:      20,
		FactorBudget:        15,
		FactorTimeline:      15,
		FactorSource:        10,
		FactorEngagement:    5,
	},
}

// ResolveIndustry maps a raw industry key to a known Industry, falling back
// to IndustryDefault for unknown or empty keys.
func ResolveIndustry(raw string) Industry {
	ind := Industry(raw)
	if _, ok := weightTables[ind]; ok {
		return ind
	}
	return IndustryDefault
}

// WeightsFor returns the weight table for the industry. The industry's own
// table is used whenever one exists; otherwise the default table.
func WeightsFor(industry Industry) Weights {
	if w, ok := weightTables[industry]; ok {
		return w
	}
	return weightTables[IndustryDefault]
}

// TableWarning describes a weight table whose weights do not sum to 100.
// A bad table never fails scoring; the overall score is simply not bounded
// to the intended 0-100 scale, which operators should know about.
type TableWarning struct {
	Industry Industry `json:"industry"`
	Sum      int      `json:"sum"`
}

// ValidateTables checks every industry weight table and returns a warning
// for each one whose weights do not sum to 100. Intended to run at process
// start and from the maintenance sweep, not on the per-call scoring path.
func ValidateTables() []TableWarning {
	var warnings []TableWarning
	for industry, weights := range weightTables {
		if sum := weights.Sum(); sum != 100 {
			warnings = append(warnings, TableWarning{Industry: industry, Sum: sum})
		}
	}
	return warnings
}
