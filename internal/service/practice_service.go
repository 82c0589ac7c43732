package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/prepstack/interview-coach/internal/dto"
	"github.com/prepstack/interview-coach/internal/eval"
	"github.com/prepstack/interview-coach/internal/models"
	"github.com/prepstack/interview-coach/internal/repository"
)

const (
	defaultEvalCacheTTL = 15 * time.Minute
	historyLimitDefault = 10
	historyLimitMax     = 50
)

// ErrEmptyAnswer indicates the submitted answer contained no usable text.
var ErrEmptyAnswer = errors.New("answer must not be empty")

// QuestionSource provides interview questions per role and level. An empty
// result is tolerated, not an error.
type QuestionSource interface {
	Random(ctx context.Context, role, level string) (string, bool, error)
}

// AnswerEvaluator scores one answer. Each call is independent and stateless.
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, req eval.Request) eval.Result
}

// PracticeService exposes the interview practice operations.
type PracticeService interface {
	NextQuestion(ctx context.Context, query dto.QuestionQuery) (dto.QuestionResponse, error)
	SubmitAnswer(ctx context.Context, payload dto.AttemptRequest) (dto.AttemptResponse, error)
	RecentAttempts(ctx context.Context, limit int) ([]dto.AttemptResponse, error)
}

// PracticeConfig carries service-level knobs.
type PracticeConfig struct {
	Provider     string
	Model        string
	EvalCacheTTL time.Duration
}

type practiceService struct {
	questions QuestionSource
	evaluator AnswerEvaluator
	attempts  repository.AttemptRepository
	redis     *redis.Client
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	config    PracticeConfig
}

// NewPracticeService wires the practice workflow. redisClient may be nil, in
// which case evaluation caching is disabled.
func NewPracticeService(questions QuestionSource, evaluator AnswerEvaluator, attempts repository.AttemptRepository, redisClient *redis.Client, validate *validator.Validate, logger zerolog.Logger, cfg PracticeConfig) PracticeService {
	if cfg.EvalCacheTTL <= 0 {
		cfg.EvalCacheTTL = defaultEvalCacheTTL
	}

	return &practiceService{
		questions: questions,
		evaluator: evaluator,
		attempts:  attempts,
		redis:     redisClient,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "practice_service").Logger(),
		config:    cfg,
	}
}

func (s *practiceService) NextQuestion(ctx context.Context, query dto.QuestionQuery) (dto.QuestionResponse, error) {
	if err := s.validator.Struct(query); err != nil {
		return dto.QuestionResponse{}, err
	}

	role := s.cleanText(query.Role)
	question, ok, err := s.questions.Random(ctx, role, query.Level)
	if err != nil {
		return dto.QuestionResponse{}, err
	}

	return dto.QuestionResponse{
		Role:      role,
		Level:     query.Level,
		Question:  question,
		Available: ok,
	}, nil
}

func (s *practiceService) SubmitAnswer(ctx context.Context, payload dto.AttemptRequest) (dto.AttemptResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AttemptResponse{}, err
	}

	request := eval.Request{
		Question: s.cleanText(payload.Question),
		Answer:   s.cleanText(payload.Answer),
		Role:     s.cleanText(payload.Role),
		Level:    payload.Level,
	}
	if request.Answer == "" {
		return dto.AttemptResponse{}, ErrEmptyAnswer
	}

	evaluation, cached := s.cachedEvaluation(ctx, request)
	var result eval.Result
	if cached {
		result = eval.CanonicalResult(evaluation)
	} else {
		result = s.evaluator.Evaluate(ctx, request)
	}

	attempt := models.Attempt{
		ReferenceID: uuid.NewString(),
		UserName:    s.cleanText(payload.UserName),
		Role:        request.Role,
		Level:       request.Level,
		Question:    request.Question,
		Answer:      request.Answer,
		Evaluation:  datatypes.JSONMap(result.AsMap()),
		Outcome:     outcomeFor(result),
		Provider:    s.config.Provider,
		Model:       s.config.Model,
	}

	// History is best effort: the evaluation has already been produced (and
	// paid for), so a failed append must not fail the submission.
	if err := s.attempts.Append(ctx, &attempt); err != nil {
		s.logger.Error().Err(err).Str("reference_id", attempt.ReferenceID).Msg("failed to append attempt to history")
	}

	if !cached && result.IsCanonical() {
		s.storeEvaluation(ctx, request, result.Evaluation())
	}

	response := dto.NewAttemptResponse(attempt)
	response.Cached = cached
	return response, nil
}

func (s *practiceService) RecentAttempts(ctx context.Context, limit int) ([]dto.AttemptResponse, error) {
	if limit <= 0 {
		limit = historyLimitDefault
	}
	if limit > historyLimitMax {
		limit = historyLimitMax
	}

	attempts, err := s.attempts.MostRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AttemptResponse, 0, len(attempts))
	for _, attempt := range attempts {
		responses = append(responses, dto.NewAttemptResponse(attempt))
	}

	return responses, nil
}

// cachedEvaluation looks up a previously computed canonical evaluation for an
// identical request. Only canonical results are ever cached; degraded and
// failed outcomes are always recomputed.
func (s *practiceService) cachedEvaluation(ctx context.Context, request eval.Request) (map[string]any, bool) {
	if s.redis == nil {
		return nil, false
	}

	raw, err := s.redis.Get(ctx, s.cacheKey(request)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("evaluation cache lookup failed")
		}
		return nil, false
	}

	var evaluation map[string]any
	if err := json.Unmarshal([]byte(raw), &evaluation); err != nil {
		s.logger.Warn().Err(err).Msg("evaluation cache entry is corrupt, ignoring")
		return nil, false
	}

	return eval.Normalize(evaluation), true
}

func (s *practiceService) storeEvaluation(ctx context.Context, request eval.Request, evaluation map[string]any) {
	if s.redis == nil {
		return
	}

	payload, err := json.Marshal(evaluation)
	if err != nil {
		return
	}

	if err := s.redis.Set(ctx, s.cacheKey(request), payload, s.config.EvalCacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache evaluation")
	}
}

func (s *practiceService) cacheKey(request eval.Request) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{
		s.config.Provider,
		s.config.Model,
		request.Role,
		request.Level,
		request.Question,
		request.Answer,
	}, "\x1f")))
	return "coach:eval:" + hex.EncodeToString(sum[:])
}

// cleanText strips markup and surrounding whitespace from free-form input
// before it reaches the prompt or the history store.
func (s *practiceService) cleanText(input string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(input))
}

func outcomeFor(result eval.Result) string {
	switch {
	case result.IsFailed():
		return models.OutcomeFailed
	case result.IsDegraded():
		return models.OutcomeDegraded
	default:
		return models.OutcomeEvaluated
	}
}
