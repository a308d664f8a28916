package testdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jordanlanch/leadpulse/pkg/scoring"
)

func TestRandomCriteria(t *testing.T) {
	r := Seed(42)
	svc := scoring.NewService(nil, nil, nil)

	// Generated criteria must always score within the 0-100 scale.
	for i := 0; i < 200; i++ {
		criteria := RandomCriteria(r)

		score := svc.ScoreLead(context.Background(), criteria)

		assert.GreaterOrEqual(t, score.Overall, 0)
		assert.LessOrEqual(t, score.Overall, 100)
		assert.NotEmpty(t, score.Tier)
	}
}

func TestRandomSequenceContext(t *testing.T) {
	r := Seed(42)

	c := RandomSequenceContext(r)

	assert.NotEmpty(t, c.Industry)
	assert.NotEmpty(t, c.LeadName)
	assert.NotEmpty(t, c.BusinessName)
}
