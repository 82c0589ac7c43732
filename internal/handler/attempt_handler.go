package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/prepstack/interview-coach/internal/dto"
	"github.com/prepstack/interview-coach/internal/service"
	"github.com/prepstack/interview-coach/internal/utils"
)

// AttemptHandler handles answer submissions and practice history.
type AttemptHandler struct {
	service service.PracticeService
	logger  zerolog.Logger
}

// NewAttemptHandler constructs an attempt handler.
func NewAttemptHandler(service service.PracticeService, logger zerolog.Logger) *AttemptHandler {
	return &AttemptHandler{
		service: service,
		logger:  logger.With().Str("component", "attempt_handler").Logger(),
	}
}

// Register wires attempt routes.
func (h *AttemptHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
	router.Get("/recent", h.recent)
}

func (h *AttemptHandler) submit(c *fiber.Ctx) error {
	var payload dto.AttemptRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.SubmitAnswer(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		case errors.Is(err, service.ErrEmptyAnswer):
			return utils.SendError(c, fiber.StatusBadRequest, "answer must not be empty")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to evaluate answer")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to evaluate answer")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "answer evaluated", response)
}

func (h *AttemptHandler) recent(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "limit must be an integer")
	}

	responses, err := h.service.RecentAttempts(c.Context(), limit)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load practice history")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load practice history")
	}

	return utils.SendSuccess(c, "recent attempts", responses)
}
