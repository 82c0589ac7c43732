package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/prepstack/interview-coach/internal/dto"
	"github.com/prepstack/interview-coach/internal/service"
	"github.com/prepstack/interview-coach/internal/utils"
)

// QuestionHandler serves interview questions.
type QuestionHandler struct {
	service service.PracticeService
	logger  zerolog.Logger
}

// NewQuestionHandler constructs a question handler.
func NewQuestionHandler(service service.PracticeService, logger zerolog.Logger) *QuestionHandler {
	return &QuestionHandler{
		service: service,
		logger:  logger.With().Str("component", "question_handler").Logger(),
	}
}

// Register wires question routes.
func (h *QuestionHandler) Register(router fiber.Router) {
	router.Get("", h.next)
}

func (h *QuestionHandler) next(c *fiber.Ctx) error {
	query := dto.QuestionQuery{
		Role:  c.Query("role"),
		Level: c.Query("level"),
	}

	response, err := h.service.NextQuestion(c.Context(), query)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "role and level are required; level must be Junior, Intermediate or Senior")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to pick a question")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to pick a question")
	}

	return utils.SendSuccess(c, "question selected", response)
}
