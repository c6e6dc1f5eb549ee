package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"text/template"
	"time"

	"google.golang.org/genai"

	"github.com/arunika-app/arunika-api/internal/config"
	"github.com/arunika-app/arunika-api/internal/domain"
	"github.com/arunika-app/arunika-api/internal/generation"
)

// promptTemplate asks the model for strict JSON so the response can be
// unmarshaled directly into responseSchema.
const promptTemplate = `You are a career advisor for Indonesian tech talent.
A user finished a skill assessment for the "{{.RoleCategory}}" track.
Their aggregated trait scores are:
{{range $trait, $score := .Result}}- {{$trait}}: {{$score}}
{{end}}
Suggest up to 3 jobs and up to 3 courses that fit this profile.
Respond with JSON only, no prose, in exactly this shape:
{
  "jobs": [
    {"title": "", "company": "", "role_category": "{{.RoleCategory}}", "level": "", "score": 0.0, "reason": ""}
  ],
  "courses": [
    {"title": "", "provider": "", "bidang": "", "level": "", "score": 0.0, "reason": ""}
  ]
}
Scores are floats between 0 and 1 expressing fit. Level must be one of
junior/mid/senior for jobs and beginner/intermediate/advanced for courses.`

// responseSchema is the JSON shape the model is instructed to return.
type responseSchema struct {
	Jobs []struct {
		Title        string  `json:"title"`
		Company      string  `json:"company"`
		RoleCategory string  `json:"role_category"`
		Level        string  `json:"level"`
		Score        float64 `json:"score"`
		Reason       string  `json:"reason"`
	} `json:"jobs"`
	Courses []struct {
		Title    string  `json:"title"`
		Provider string  `json:"provider"`
		Bidang   string  `json:"bidang"`
		Level    string  `json:"level"`
		Score    float64 `json:"score"`
		Reason   string  `json:"reason"`
	} `json:"courses"`
}

// promptData is the template input for one recommendation request.
type promptData struct {
	RoleCategory string
	Result       map[string]int
}

// Recommender implements the generation.Recommender interface using Google's
// Gemini API.
type Recommender struct {
	logger *slog.Logger
	config config.LLMConfig
	tmpl   *template.Template
	client *genai.Client
	model  string
}

// Ensure Recommender implements generation.Recommender.
var _ generation.Recommender = (*Recommender)(nil)

// NewRecommender creates a Recommender from the LLM configuration.
// Returns generation.ErrInvalidConfig when required settings are missing.
func NewRecommender(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Recommender, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	tmpl, err := template.New("recommendation").Parse(promptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Recommender{
		logger: logger.With(slog.String("component", "gemini_recommender")),
		config: cfg,
		tmpl:   tmpl,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// Recommend implements generation.Recommender.
func (r *Recommender) Recommend(ctx context.Context, p *domain.Personalization) (*generation.RecommendationSet, error) {
	prompt, err := r.createPrompt(p)
	if err != nil {
		return nil, err
	}

	response, err := r.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return r.parseResponse(p, response)
}

// createPrompt renders the prompt template for the assessment.
func (r *Recommender) createPrompt(p *domain.Personalization) (string, error) {
	if p == nil {
		return "", fmt.Errorf("%w: personalization is nil", generation.ErrGenerationFailed)
	}
	if len(p.Result) == 0 {
		return "", fmt.Errorf("%w: assessment has no aggregated result", generation.ErrGenerationFailed)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, promptData{RoleCategory: p.RoleCategory, Result: p.Result}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// callWithRetry calls the Gemini API with exponential backoff and jitter.
// Permanent errors (blocked content, unparseable output) return immediately;
// transport errors retry up to MaxRetries times.
func (r *Recommender) callWithRetry(ctx context.Context, prompt string) (*responseSchema, error) {
	maxRetries := r.config.MaxRetries
	baseDelaySeconds := r.config.RetryDelaySeconds
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if maxRetries < 0 {
		r.logger.WarnContext(ctx, "invalid max retries value, using default", "max_retries", 3)
		maxRetries = 3
	}
	if baseDelaySeconds < 1 {
		r.logger.WarnContext(ctx, "invalid retry delay value, using default", "base_delay_seconds", 2)
		baseDelaySeconds = 2
	}

	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	for attempt := 0; attempt <= maxRetries; attempt++ {
		attemptNum := attempt + 1
		r.logger.InfoContext(ctx, "calling Gemini API",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		resp, err := r.client.Models.GenerateContent(ctx, r.model, genai.Text(prompt), genConfig)

		var parsed *responseSchema
		transient := false
		switch {
		case err != nil:
			transient = true
			r.logger.ErrorContext(ctx, "Gemini API call error", "error", err, "attempt", attemptNum)
		case resp == nil || len(resp.Candidates) == 0:
			err = fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
		case resp.Candidates[0].FinishReason == genai.FinishReasonSafety:
			err = fmt.Errorf("%w: blocked by safety filters", generation.ErrContentBlocked)
		default:
			text := resp.Text()
			var schema responseSchema
			if jsonErr := json.Unmarshal([]byte(text), &schema); jsonErr != nil {
				err = fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, jsonErr)
			} else {
				parsed = &schema
			}
		}

		if err == nil {
			r.logger.InfoContext(ctx, "Gemini API call successful", "attempt", attemptNum)
			return parsed, nil
		}

		if errors.Is(err, generation.ErrContentBlocked) || errors.Is(err, generation.ErrInvalidResponse) {
			r.logger.WarnContext(ctx, "permanent error, not retrying", "error", err)
			return nil, err
		}

		if attempt >= maxRetries {
			r.logger.WarnContext(ctx, "maximum retry attempts reached", "max_retries", maxRetries)
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				generation.ErrTransientFailure, maxRetries)
		}
		if !transient {
			return nil, err
		}

		// delay = baseDelay * (2^attempt) * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		r.logger.InfoContext(ctx, "retrying after delay",
			"attempt", attemptNum,
			"delay", delay.String())

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			r.logger.WarnContext(ctx, "API call cancelled during retry delay", "ctx_err", ctx.Err())
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}

	return nil, fmt.Errorf("%w: failed after %d attempts",
		generation.ErrTransientFailure, maxRetries+1)
}

// parseResponse converts the model output into domain recommendations.
// Suggestions with missing titles or out-of-range scores are invalid and fail
// the whole response; the caller treats generation as all-or-nothing.
func (r *Recommender) parseResponse(p *domain.Personalization, response *responseSchema) (*generation.RecommendationSet, error) {
	if response == nil {
		return nil, fmt.Errorf("%w: response is nil", generation.ErrInvalidResponse)
	}
	if len(response.Jobs) == 0 && len(response.Courses) == 0 {
		return nil, fmt.Errorf("%w: no recommendations in response", generation.ErrInvalidResponse)
	}

	set := &generation.RecommendationSet{
		Jobs:    make([]*domain.JobRecommendation, 0, len(response.Jobs)),
		Courses: make([]*domain.CourseRecommendation, 0, len(response.Courses)),
	}

	for i, j := range response.Jobs {
		rec := &domain.JobRecommendation{
			PersonalizationID: p.ID,
			Title:             j.Title,
			Company:           j.Company,
			RoleCategory:      j.RoleCategory,
			Level:             j.Level,
			Score:             clampScore(j.Score),
			Reason:            j.Reason,
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("%w: job %d: %v", generation.ErrInvalidResponse, i, err)
		}
		set.Jobs = append(set.Jobs, rec)
	}

	for i, c := range response.Courses {
		rec := &domain.CourseRecommendation{
			PersonalizationID: p.ID,
			Title:             c.Title,
			Provider:          c.Provider,
			Bidang:            c.Bidang,
			Level:             c.Level,
			Score:             clampScore(c.Score),
			Reason:            c.Reason,
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("%w: course %d: %v", generation.ErrInvalidResponse, i, err)
		}
		set.Courses = append(set.Courses, rec)
	}

	return set, nil
}

// clampScore keeps model-supplied fit scores inside [0, 1].
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
