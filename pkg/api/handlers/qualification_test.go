package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/leadpulse/pkg/conversation"
	"github.com/jordanlanch/leadpulse/pkg/outbound"
	"github.com/jordanlanch/leadpulse/pkg/scoring"
	"github.com/jordanlanch/leadpulse/pkg/sequence"
)

// capturingEmail records sent emails for assertions.
type capturingEmail struct {
	to      string
	subject string
}

func (s *capturingEmail) SendEmail(ctx context.Context, to outbound.Recipient, subject, body string) error {
	s.to, s.subject = to.Email, subject
	return nil
}

func newQualificationHandler(email outbound.EmailSender) *QualificationHandler {
	// Services run without an AI client, so responses come from the
	// deterministic fallbacks.
	scoringService := scoring.NewService(nil, nil, nil)
	sequenceService := sequence.NewService(nil, nil, nil)
	dispatcher := outbound.NewDispatcher(email, nil, nil, conversation.NewMemoryStore(), "IN", nil, nil)
	return NewQualificationHandler(scoringService, sequenceService, dispatcher, BusinessDefaults{})
}

func doJSON(t *testing.T, handler echo.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, handler(c))
	return rec
}

func TestScoreLeadHandler(t *testing.T) {
	h := newQualificationHandler(nil)

	t.Run("Success", func(t *testing.T) {
		body := `{"industry": "real_estate", "source": "referral", "job_title": "Founder", "timeline": "immediate"}`
		rec := doJSON(t, h.ScoreLead, http.MethodPost, "/api/v1/leads/score", body)

		require.Equal(t, http.StatusOK, rec.Code)

		var score scoring.LeadScore
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &score))
		assert.Greater(t, score.Overall, 0)
		assert.NotEmpty(t, score.Tier)
		assert.NotEmpty(t, score.Rationale)
		assert.Len(t, score.Breakdown, 8)
	})

	t.Run("Validation error - missing required fields", func(t *testing.T) {
		rec := doJSON(t, h.ScoreLead, http.MethodPost, "/api/v1/leads/score", `{"job_title": "CEO"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "validation_error")
	})

	t.Run("Validation error - malformed JSON", func(t *testing.T) {
		rec := doJSON(t, h.ScoreLead, http.MethodPost, "/api/v1/leads/score", `{"industry":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGenerateSequenceHandler(t *testing.T) {
	h := newQualificationHandler(nil)

	t.Run("Success", func(t *testing.T) {
		body := `{"industry": "healthcare", "lead_name": "Priya", "business_name": "LeadPulse"}`
		rec := doJSON(t, h.GenerateSequence, http.MethodPost, "/api/v1/sequences/generate", body)

		require.Equal(t, http.StatusOK, rec.Code)

		var seq sequence.FollowUpSequence
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &seq))
		assert.Len(t, seq.Steps, 5)
		assert.Equal(t, 21, seq.TotalDurationDays)
	})

	t.Run("Success - business identity defaulted from config", func(t *testing.T) {
		h := NewQualificationHandler(
			scoring.NewService(nil, nil, nil),
			sequence.NewService(nil, nil, nil),
			outbound.NewDispatcher(nil, nil, nil, conversation.NewMemoryStore(), "IN", nil, nil),
			BusinessDefaults{Name: "Acme Realty", Industry: "real_estate"})

		body := `{"industry": "healthcare", "lead_name": "Priya"}`
		rec := doJSON(t, h.GenerateSequence, http.MethodPost, "/api/v1/sequences/generate", body)

		require.Equal(t, http.StatusOK, rec.Code)

		var seq sequence.FollowUpSequence
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &seq))
		require.Len(t, seq.Steps, 5)
		assert.Contains(t, seq.Steps[0].Body, "Acme Realty")
	})

	t.Run("Validation error - missing business name", func(t *testing.T) {
		rec := doJSON(t, h.GenerateSequence, http.MethodPost, "/api/v1/sequences/generate", `{"industry": "finance"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDispatchStepHandler(t *testing.T) {
	t.Run("Success - email step", func(t *testing.T) {
		email := &capturingEmail{}
		h := newQualificationHandler(email)

		body := `{
			"lead": {"lead_id": "lead-1", "name": "Priya", "email": "priya@example.com"},
			"step": {"step_number": 1, "channel": "email", "subject": "Welcome", "body": "Hi Priya"}
		}`
		rec := doJSON(t, h.DispatchStep, http.MethodPost, "/api/v1/sequences/dispatch", body)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "priya@example.com", email.to)
		assert.Equal(t, "Welcome", email.subject)
		assert.Contains(t, rec.Body.String(), `"status":"sent"`)
	})

	t.Run("Validation error - lead has no email", func(t *testing.T) {
		h := newQualificationHandler(&capturingEmail{})

		body := `{
			"lead": {"lead_id": "lead-1"},
			"step": {"step_number": 1, "channel": "email", "subject": "Welcome", "body": "Hi"}
		}`
		rec := doJSON(t, h.DispatchStep, http.MethodPost, "/api/v1/sequences/dispatch", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "no email address")
	})
}

func TestPersonalizeMessageHandler(t *testing.T) {
	h := newQualificationHandler(nil)

	t.Run("Fallback returns template unchanged", func(t *testing.T) {
		body := `{
			"template": "Hi {{lead_name}}, quick question",
			"context": {"industry": "finance", "business_name": "LeadPulse"}
		}`
		rec := doJSON(t, h.PersonalizeMessage, http.MethodPost, "/api/v1/messages/personalize", body)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Hi {{lead_name}}, quick question", resp["message"])
		assert.Equal(t, false, resp["ai_generated"])
	})

	t.Run("Validation error - missing template", func(t *testing.T) {
		body := `{"context": {"industry": "finance", "business_name": "LeadPulse"}}`
		rec := doJSON(t, h.PersonalizeMessage, http.MethodPost, "/api/v1/messages/personalize", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSuggestTimingHandler(t *testing.T) {
	h := newQualificationHandler(nil)

	t.Run("Fallback suggestion", func(t *testing.T) {
		body := `{"industry": "real_estate", "channel": "whatsapp"}`
		rec := doJSON(t, h.SuggestTiming, http.MethodPost, "/api/v1/timing/suggest", body)

		require.Equal(t, http.StatusOK, rec.Code)

		var suggestion sequence.TimingSuggestion
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &suggestion))
		assert.Equal(t, "Tuesday", suggestion.Day)
		assert.Equal(t, "10:00 AM", suggestion.Time)
	})

	t.Run("Validation error - bad channel", func(t *testing.T) {
		body := `{"industry": "real_estate", "channel": "carrier_pigeon"}`
		rec := doJSON(t, h.SuggestTiming, http.MethodPost, "/api/v1/timing/suggest", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
