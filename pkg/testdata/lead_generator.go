package testdata

import (
	"fmt"
	"math/rand"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/jordanlanch/leadpulse/pkg/scoring"
	"github.com/jordanlanch/leadpulse/pkg/sequence"
)

// Seed seeds both random sources so generated leads are reproducible.
func Seed(seed int64) *rand.Rand {
	gofakeit.Seed(seed)
	return rand.New(rand.NewSource(seed))
}

var industries = []string{
	"real_estate", "healthcare", "education", "finance", "ecommerce", "hospitality",
}

var companySizes = []string{"solo", "startup", "small", "medium", "large", "enterprise"}

var jobTitles = []string{
	"Founder", "CEO", "Owner", "Managing Director",
	"Director of Operations", "VP Sales", "Head of Marketing",
	"Marketing Manager", "Sales Manager", "Senior Consultant",
	"Business Analyst", "Marketing Specialist",
}

var cities = []string{
	"Mumbai", "Bengaluru", "Delhi", "Hyderabad", "Chennai", "Pune",
	"Jaipur", "Kochi", "Indore", "Shimla", "Udaipur",
}

var budgets = []string{
	"2 crore", "50 lakh", "10 lakh", "500k", "flexible", "",
}

var timelines = []string{
	"immediate", "within a month", "this quarter", "6 months", "next year", "",
}

var sources = []string{
	"referral", "facebook_lead_ads", "instagram_ads", "google_ads",
	"whatsapp_inbound", "website_form", "walk_in", "cold_call",
}

var engagementLevels = []string{"high", "medium", "low", "none", ""}

// RandomCriteria generates realistic scoring criteria.
func RandomCriteria(r *rand.Rand) scoring.Criteria {
	return scoring.Criteria{
		Industry:        pick(r, industries),
		CompanySize:     pick(r, companySizes),
		JobTitle:        pick(r, jobTitles),
		Location:        pick(r, cities),
		Budget:          pick(r, budgets),
		Timeline:        pick(r, timelines),
		Source:          pick(r, sources),
		EngagementLevel: pick(r, engagementLevels),
	}
}

// RandomSequenceContext generates a sequence context for a fake lead.
func RandomSequenceContext(r *rand.Rand) sequence.Context {
	return sequence.Context{
		Industry:         pick(r, industries),
		LeadName:         gofakeit.FirstName(),
		LeadCompany:      gofakeit.Company(),
		LeadRole:         pick(r, jobTitles),
		LeadSource:       pick(r, sources),
		BusinessName:     fmt.Sprintf("%s %s", gofakeit.Company(), gofakeit.BuzzWord()),
		BusinessIndustry: pick(r, industries),
	}
}

func pick(r *rand.Rand, options []string) string {
	return options[r.Intn(len(options))]
}
