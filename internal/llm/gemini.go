package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

// geminiModels is the slice of the genai Models API the client needs.
// Narrowed to an interface so tests can stub the provider.
type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiConfig holds construction options for the Gemini client.
type GeminiConfig struct {
	Model string
	// Timeout bounds the wall clock of a single call. Generation calls can
	// stall indefinitely without it.
	Timeout time.Duration
	Logger  zerolog.Logger
}

// GeminiClient implements Client against the Gemini API. It holds a single
// provider handle for the lifetime of the process and keeps no other state
// between calls.
type GeminiClient struct {
	models geminiModels
	cfg    GeminiConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewGeminiClient wraps an already constructed genai.Client.
func NewGeminiClient(client *genai.Client, cfg GeminiConfig) *GeminiClient {
	return newGeminiClient(client.Models, cfg)
}

func newGeminiClient(models geminiModels, cfg GeminiConfig) *GeminiClient {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &GeminiClient{
		models: models,
		cfg:    cfg,
		tracer: otel.Tracer("github.com/prepstack/interview-coach/internal/llm/gemini"),
		logger: cfg.Logger.With().Str("component", "gemini_client").Logger(),
	}
}

// Model returns the configured model identifier.
func (g *GeminiClient) Model() string { return g.cfg.Model }

// Generate issues one GenerateContent call and extracts the candidate text.
// The provider response shape is not trusted to be uniform; extraction tries
// an ordered chain of shape hypotheses and classifies the call as a typed
// failure when none yields text.
func (g *GeminiClient) Generate(parent context.Context, prompt string, maxOutputTokens int) (Generation, error) {
	ctx, span := g.tracer.Start(parent, "gemini.generate", trace.WithAttributes(
		attribute.String("model", g.cfg.Model),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}}
	config := &genai.GenerateContentConfig{}
	if maxOutputTokens > 0 {
		config.MaxOutputTokens = int32(maxOutputTokens)
	}

	start := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.cfg.Model, contents, config)
	generationDuration.WithLabelValues("gemini", g.cfg.Model).Observe(time.Since(start).Seconds())

	if err != nil {
		return Generation{}, g.fail(span, &Error{Kind: ErrTransport, Cause: err})
	}

	if len(resp.Candidates) == 0 {
		return Generation{}, g.fail(span, &Error{
			Kind:        ErrNoCandidates,
			Diagnostics: Diagnostics{RawResponse: compactRepr(resp)},
		})
	}

	cand := resp.Candidates[0]
	diag := candidateDiagnostics(cand)
	diag.RawResponse = compactRepr(resp)

	text, strategy := extractCandidateText(cand, resp)
	diag.Strategy = strategy
	if text == "" {
		return Generation{}, g.fail(span, &Error{Kind: ErrNoTextReturned, Diagnostics: diag})
	}

	return Generation{Text: text, Diagnostics: diag}, nil
}

func (g *GeminiClient) fail(span trace.Span, genErr *Error) error {
	generationFailures.WithLabelValues("gemini", g.cfg.Model, failureKind(genErr)).Inc()
	span.RecordError(genErr)
	span.SetStatus(codes.Error, genErr.Error())
	g.logger.Error().
		Err(genErr).
		Str("finish_reason", genErr.Diagnostics.FinishReason).
		Str("raw_response", genErr.Diagnostics.RawResponse).
		Msg("generation failed")
	return genErr
}

// extractCandidateText tries shape hypotheses in order and reports which one
// succeeded: joined part texts, the response-level text helper, then a
// last-resort string coercion of the candidate content when it differs from
// an empty content's representation. Finish-reason and safety metadata are
// deliberately excluded from the coercion; a safety-filtered candidate with
// no payload classifies as no text, not as text.
func extractCandidateText(cand *genai.Candidate, resp *genai.GenerateContentResponse) (string, string) {
	if cand.Content != nil {
		texts := make([]string, 0, len(cand.Content.Parts))
		for _, part := range cand.Content.Parts {
			if part != nil && part.Text != "" {
				texts = append(texts, part.Text)
			}
		}
		if len(texts) > 0 {
			return strings.Join(texts, " "), "parts_join"
		}
	}

	if text := strings.TrimSpace(resp.Text()); text != "" {
		return text, "response_text"
	}

	if cand.Content != nil {
		if repr := compactRepr(cand.Content); repr != compactRepr(&genai.Content{}) {
			return repr, "candidate_coercion"
		}
	}

	return "", "none"
}

func candidateDiagnostics(cand *genai.Candidate) Diagnostics {
	diag := Diagnostics{FinishReason: string(cand.FinishReason)}
	for _, rating := range cand.SafetyRatings {
		if rating == nil {
			continue
		}
		diag.SafetyRatings = append(diag.SafetyRatings, fmt.Sprintf("%s=%s", rating.Category, rating.Probability))
	}
	return diag
}

func compactRepr(v any) string {
	return fmt.Sprintf("%+v", v)
}

var _ Client = (*GeminiClient)(nil)
