package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prepstack/interview-coach/internal/dto"
	"github.com/prepstack/interview-coach/internal/handler"
	"github.com/prepstack/interview-coach/internal/service"
)

type mockPracticeService struct {
	question    dto.QuestionResponse
	questionErr error
	attempt     dto.AttemptResponse
	attemptErr  error
	recent      []dto.AttemptResponse
	recentErr   error
	lastPayload dto.AttemptRequest
	lastLimit   int
}

func (m *mockPracticeService) NextQuestion(_ context.Context, query dto.QuestionQuery) (dto.QuestionResponse, error) {
	if err := validator.New().Struct(query); err != nil {
		return dto.QuestionResponse{}, err
	}
	return m.question, m.questionErr
}

func (m *mockPracticeService) SubmitAnswer(_ context.Context, payload dto.AttemptRequest) (dto.AttemptResponse, error) {
	m.lastPayload = payload
	if m.attemptErr != nil {
		return dto.AttemptResponse{}, m.attemptErr
	}
	return m.attempt, nil
}

func (m *mockPracticeService) RecentAttempts(_ context.Context, limit int) ([]dto.AttemptResponse, error) {
	m.lastLimit = limit
	return m.recent, m.recentErr
}

func newAttemptApp(svc service.PracticeService) *fiber.App {
	app := fiber.New()
	handler.NewAttemptHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/attempts"))
	return app
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func TestAttemptHandlerSubmitSuccess(t *testing.T) {
	score := 7.0
	svc := &mockPracticeService{attempt: dto.AttemptResponse{
		ReferenceID: "ref-1",
		Outcome:     "evaluated",
		TotalScore:  &score,
		Evaluation:  map[string]any{"total_score_out_of_10": 7.0},
	}}
	app := newAttemptApp(svc)

	payload := dto.AttemptRequest{Role: "Data Scientist", Level: "Junior", Question: "Q?", Answer: "A."}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attempts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var response struct {
		Success bool                `json:"success"`
		Data    dto.AttemptResponse `json:"data"`
		Message string              `json:"message"`
	}
	decodeResponse(t, resp, &response)

	require.True(t, response.Success)
	require.Equal(t, "answer evaluated", response.Message)
	require.Equal(t, "ref-1", response.Data.ReferenceID)
	require.Equal(t, "Data Scientist", svc.lastPayload.Role)
}

func TestAttemptHandlerSubmitInvalidBody(t *testing.T) {
	app := newAttemptApp(&mockPracticeService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attempts", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAttemptHandlerSubmitValidationFailure(t *testing.T) {
	invalid := validator.New().Struct(dto.AttemptRequest{})
	app := newAttemptApp(&mockPracticeService{attemptErr: invalid})

	body, err := json.Marshal(dto.AttemptRequest{Role: "r", Level: "Junior", Question: "q", Answer: "a"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attempts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAttemptHandlerSubmitEmptyAnswer(t *testing.T) {
	app := newAttemptApp(&mockPracticeService{attemptErr: service.ErrEmptyAnswer})

	body, err := json.Marshal(dto.AttemptRequest{Role: "r", Level: "Junior", Question: "q", Answer: "<p></p>"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attempts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAttemptHandlerRecent(t *testing.T) {
	svc := &mockPracticeService{recent: []dto.AttemptResponse{{ReferenceID: "a"}, {ReferenceID: "b"}}}
	app := newAttemptApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attempts/recent?limit=5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 5, svc.lastLimit)

	var response struct {
		Success bool                  `json:"success"`
		Data    []dto.AttemptResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Len(t, response.Data, 2)
}

func TestAttemptHandlerRecentBadLimit(t *testing.T) {
	app := newAttemptApp(&mockPracticeService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attempts/recent?limit=abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
