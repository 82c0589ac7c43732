package eval

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/prepstack/interview-coach/internal/llm"
)

// DefaultMaxOutputTokens bounds the evaluation response length.
const DefaultMaxOutputTokens = 700

// Evaluator runs the answer-evaluation pipeline: build prompt, generate,
// extract JSON, parse, normalize. Each stage's failure short-circuits to a
// terminal variant; there is no retry within the pipeline. Evaluators hold no
// mutable state, so concurrent calls are independent.
type Evaluator struct {
	client    llm.Client
	maxTokens int
	logger    zerolog.Logger
}

// NewEvaluator wires the pipeline around a generation client.
func NewEvaluator(client llm.Client, maxOutputTokens int, logger zerolog.Logger) *Evaluator {
	if maxOutputTokens <= 0 {
		maxOutputTokens = DefaultMaxOutputTokens
	}

	return &Evaluator{
		client:    client,
		maxTokens: maxOutputTokens,
		logger:    logger.With().Str("component", "evaluator").Logger(),
	}
}

// Evaluate scores one answer. Generation failures surface as the error
// variant; unusable text degrades to the raw-text variant; everything else
// yields the canonical normalized evaluation.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) Result {
	prompt := BuildPrompt(req.Question, req.Answer, req.Role, req.Level)

	gen, err := e.client.Generate(ctx, prompt, e.maxTokens)
	if err != nil {
		e.logger.Error().Err(err).Str("role", req.Role).Str("level", req.Level).Msg("generation failed")
		return FailedResult(err.Error())
	}

	e.logger.Debug().
		Str("strategy", gen.Diagnostics.Strategy).
		Str("finish_reason", gen.Diagnostics.FinishReason).
		Int("text_len", len(gen.Text)).
		Msg("generation succeeded")

	candidate, ok := ExtractJSONObject(gen.Text)
	if !ok {
		e.logger.Warn().Msg("no balanced JSON object in model output")
		return DegradedResult(gen.Text, "")
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(candidate), &data); err != nil {
		e.logger.Warn().Err(err).Msg("extracted JSON failed to parse")
		return DegradedResult(gen.Text, err.Error())
	}

	return CanonicalResult(Normalize(data))
}
