package dto

import (
	"time"

	"github.com/prepstack/interview-coach/internal/models"
)

// AttemptRequest is the payload for submitting an answer for evaluation.
type AttemptRequest struct {
	UserName string `json:"user_name" validate:"omitempty,max=120"`
	Role     string `json:"role" validate:"required,max=120"`
	Level    string `json:"level" validate:"required,oneof=Junior Intermediate Senior"`
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// AttemptResponse describes an evaluated attempt to API consumers. The
// evaluation payload is one of three mutually exclusive shapes: an error
// object, a raw-text object, or the canonical scored evaluation; clients
// branch on the "error" and "raw_text" keys.
type AttemptResponse struct {
	ReferenceID string         `json:"reference_id"`
	UserName    string         `json:"user_name,omitempty"`
	Role        string         `json:"role"`
	Level       string         `json:"level"`
	Question    string         `json:"question"`
	Answer      string         `json:"answer"`
	Evaluation  map[string]any `json:"evaluation"`
	Outcome     string         `json:"outcome"`
	TotalScore  *float64       `json:"total_score,omitempty"`
	Cached      bool           `json:"cached,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewAttemptResponse builds a response DTO from a stored attempt.
func NewAttemptResponse(attempt models.Attempt) AttemptResponse {
	response := AttemptResponse{
		ReferenceID: attempt.ReferenceID,
		UserName:    attempt.UserName,
		Role:        attempt.Role,
		Level:       attempt.Level,
		Question:    attempt.Question,
		Answer:      attempt.Answer,
		Evaluation:  map[string]any(attempt.Evaluation),
		Outcome:     attempt.Outcome,
		CreatedAt:   attempt.CreatedAt,
	}

	if total, ok := totalScore(response.Evaluation); ok {
		response.TotalScore = &total
	}

	return response
}

func totalScore(evaluation map[string]any) (float64, bool) {
	switch v := evaluation["total_score_out_of_10"].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}
