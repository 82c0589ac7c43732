package dto

// QuestionQuery narrows a question request to one role/level combination.
type QuestionQuery struct {
	Role  string `query:"role" validate:"required,max=120"`
	Level string `query:"level" validate:"required,oneof=Junior Intermediate Senior"`
}

// QuestionResponse carries one randomly chosen question. Available is false
// when the bank holds nothing for the requested combination; that is not an
// error.
type QuestionResponse struct {
	Role      string `json:"role"`
	Level     string `json:"level"`
	Question  string `json:"question,omitempty"`
	Available bool   `json:"available"`
}
