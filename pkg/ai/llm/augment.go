package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/jordanlanch/leadpulse/pkg/logger"
	"github.com/jordanlanch/leadpulse/pkg/metrics"
)

// ErrNoClient is returned internally when no LLM client is configured.
var ErrNoClient = errors.New("no llm client configured")

// Augmenter runs best-effort text generation with a guaranteed deterministic
// fallback. Every AI-touching operation in the pipeline goes through Generate,
// so callers never observe an error from AI unavailability.
type Augmenter struct {
	client  LLMClient
	logger  logger.Logger
	metrics *metrics.Metrics
	timeout time.Duration
}

// NewAugmenter creates an augmenter. client may be nil, in which case every
// operation takes the fallback path. metrics may be nil (tests).
func NewAugmenter(client LLMClient, log logger.Logger, m *metrics.Metrics, timeout time.Duration) *Augmenter {
	if log == nil {
		log = logger.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Augmenter{
		client:  client,
		logger:  log,
		metrics: m,
		timeout: timeout,
	}
}

// Generate runs the primary AI path for op: build a completion from prompt,
// parse it into T, and return it. On any failure (no client, network error,
// timeout, unparseable response) it logs, reports, and returns fallback()
// instead. The second return value reports whether the AI path succeeded.
func Generate[T any](ctx context.Context, a *Augmenter, op, systemPrompt, prompt string, parse func(string) (T, error), fallback func() T) (T, bool) {
	// A nil augmenter behaves like one with no client.
	if a == nil {
		return fallback(), false
	}

	start := time.Now()

	result, err := generate(ctx, a, systemPrompt, prompt, parse)
	duration := time.Since(start)

	if a.metrics != nil {
		a.metrics.RecordAIRequest(op, err != nil, duration)
	}

	if err != nil {
		if !errors.Is(err, ErrNoClient) {
			a.logger.Warn("text generation failed, using fallback",
				"operation", op, "error", err, "duration", duration)
			sentry.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("operation", op)
				scope.SetLevel(sentry.LevelWarning)
				sentry.CaptureException(err)
			})
		}
		return fallback(), false
	}

	a.logger.Debug("text generation succeeded", "operation", op, "duration", duration)
	return result, true
}

func generate[T any](ctx context.Context, a *Augmenter, systemPrompt, prompt string, parse func(string) (T, error)) (T, error) {
	var zero T

	if a.client == nil {
		return zero, ErrNoClient
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	completion, err := a.client.Complete(ctx, prompt, systemPrompt)
	if err != nil {
		return zero, err
	}

	if strings.TrimSpace(completion) == "" {
		return zero, errors.New("empty completion")
	}

	return parse(completion)
}

// ExtractJSON pulls a JSON object or array out of a completion that may wrap
// it in markdown fences or prose. Returns the input unchanged if no JSON
// delimiters are found; the subsequent unmarshal reports the real error.
func ExtractJSON(s string) string {
	s = strings.TrimSpace(s)

	// Strip markdown code fences
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')

	start := objStart
	end := strings.LastIndexByte(s, '}')
	if arrStart >= 0 && (objStart < 0 || arrStart < objStart) {
		start = arrStart
		end = strings.LastIndexByte(s, ']')
	}

	if start < 0 || end <= start {
		return s
	}

	return s[start : end+1]
}
