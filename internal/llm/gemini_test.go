package llm

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type stubModels struct {
	resp       *genai.GenerateContentResponse
	err        error
	lastModel  string
	lastConfig *genai.GenerateContentConfig
	sawDeadline bool
}

func (s *stubModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	s.lastModel = model
	s.lastConfig = config
	_, s.sawDeadline = ctx.Deadline()
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func testGeminiClient(models geminiModels) *GeminiClient {
	return newGeminiClient(models, GeminiConfig{
		Model:   "gemini-2.5-flash",
		Timeout: time.Second,
		Logger:  zerolog.New(io.Discard),
	})
}

func textResponse(texts ...string) *genai.GenerateContentResponse {
	parts := make([]*genai.Part, 0, len(texts))
	for _, text := range texts {
		parts = append(parts, &genai.Part{Text: text})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Role: "model", Parts: parts},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func TestGeminiGenerateJoinsParts(t *testing.T) {
	models := &stubModels{resp: textResponse(`{"scores":`, `{"technical_accuracy": 2}}`)}
	client := testGeminiClient(models)

	gen, err := client.Generate(context.Background(), "prompt", 700)
	require.NoError(t, err)
	require.Equal(t, `{"scores": {"technical_accuracy": 2}}`, gen.Text)
	require.Equal(t, "parts_join", gen.Diagnostics.Strategy)
	require.Equal(t, string(genai.FinishReasonStop), gen.Diagnostics.FinishReason)

	require.Equal(t, "gemini-2.5-flash", models.lastModel)
	require.Equal(t, int32(700), models.lastConfig.MaxOutputTokens)
	require.True(t, models.sawDeadline, "outbound call must carry a wall-clock deadline")
}

func TestGeminiGenerateTransportError(t *testing.T) {
	models := &stubModels{err: errors.New("connection refused")}
	client := testGeminiClient(models)

	_, err := client.Generate(context.Background(), "prompt", 700)
	require.ErrorIs(t, err, ErrTransport)

	var genErr *Error
	require.ErrorAs(t, err, &genErr)
	require.ErrorContains(t, genErr.Cause, "connection refused")
}

func TestGeminiGenerateNoCandidates(t *testing.T) {
	models := &stubModels{resp: &genai.GenerateContentResponse{}}
	client := testGeminiClient(models)

	_, err := client.Generate(context.Background(), "prompt", 700)
	require.ErrorIs(t, err, ErrNoCandidates)

	var genErr *Error
	require.ErrorAs(t, err, &genErr)
	require.NotEmpty(t, genErr.Diagnostics.RawResponse)
}

func TestGeminiGenerateNoTextReturned(t *testing.T) {
	models := &stubModels{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			FinishReason: genai.FinishReasonSafety,
			SafetyRatings: []*genai.SafetyRating{{
				Category:    genai.HarmCategoryHarassment,
				Probability: genai.HarmProbabilityHigh,
			}},
		}},
	}}
	client := testGeminiClient(models)

	_, err := client.Generate(context.Background(), "prompt", 700)
	require.ErrorIs(t, err, ErrNoTextReturned)

	var genErr *Error
	require.ErrorAs(t, err, &genErr)
	require.Equal(t, string(genai.FinishReasonSafety), genErr.Diagnostics.FinishReason)
	require.NotEmpty(t, genErr.Diagnostics.SafetyRatings)
}

func TestGeminiGenerateEmptyPartsFallsBackToCoercion(t *testing.T) {
	// A candidate with metadata but no text parts should still yield its
	// string coercion rather than being classified as empty.
	models := &stubModels{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Role: "model"},
			FinishReason: genai.FinishReasonMaxTokens,
		}},
	}}
	client := testGeminiClient(models)

	gen, err := client.Generate(context.Background(), "prompt", 700)
	require.NoError(t, err)
	require.Equal(t, "candidate_coercion", gen.Diagnostics.Strategy)
	require.NotEmpty(t, gen.Text)
}
