package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var errMissingAPIKey = errors.New("openai api key is required")

// OpenAIConfig holds construction options for the OpenAI client.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// OpenAIClient implements Client against the OpenAI chat completion API. It
// is the secondary provider; the evaluation pipeline itself is provider
// agnostic.
type OpenAIClient struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIClient builds the client from configuration.
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, &Error{Kind: ErrTransport, Cause: errMissingAPIKey}
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &OpenAIClient{
		client: openai.NewClient(cfg.APIKey),
		cfg:    cfg,
		tracer: otel.Tracer("github.com/prepstack/interview-coach/internal/llm/openai"),
		logger: cfg.Logger.With().Str("component", "openai_client").Logger(),
	}, nil
}

// Model returns the configured model identifier.
func (o *OpenAIClient) Model() string { return o.cfg.Model }

// Generate issues one chat completion call.
func (o *OpenAIClient) Generate(parent context.Context, prompt string, maxOutputTokens int) (Generation, error) {
	ctx, span := o.tracer.Start(parent, "openai.generate", trace.WithAttributes(
		attribute.String("model", o.cfg.Model),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	request := openai.ChatCompletionRequest{
		Model:     o.cfg.Model,
		MaxTokens: maxOutputTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, request)
	generationDuration.WithLabelValues("openai", o.cfg.Model).Observe(time.Since(start).Seconds())

	if err != nil {
		return Generation{}, o.fail(span, &Error{Kind: ErrTransport, Cause: err})
	}

	if len(resp.Choices) == 0 {
		return Generation{}, o.fail(span, &Error{
			Kind:        ErrNoCandidates,
			Diagnostics: Diagnostics{RawResponse: compactRepr(resp)},
		})
	}

	choice := resp.Choices[0]
	diag := Diagnostics{
		Strategy:     "message_content",
		FinishReason: string(choice.FinishReason),
		RawResponse:  compactRepr(resp),
	}

	text := strings.TrimSpace(choice.Message.Content)
	if text == "" {
		diag.Strategy = "none"
		return Generation{}, o.fail(span, &Error{Kind: ErrNoTextReturned, Diagnostics: diag})
	}

	return Generation{Text: text, Diagnostics: diag}, nil
}

func (o *OpenAIClient) fail(span trace.Span, genErr *Error) error {
	generationFailures.WithLabelValues("openai", o.cfg.Model, failureKind(genErr)).Inc()
	span.RecordError(genErr)
	span.SetStatus(codes.Error, genErr.Error())
	o.logger.Error().
		Err(genErr).
		Str("finish_reason", genErr.Diagnostics.FinishReason).
		Msg("generation failed")
	return genErr
}

var _ Client = (*OpenAIClient)(nil)
