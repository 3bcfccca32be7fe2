package dto

// StartQuizRequest starts a quiz for an enrolled course.
// @Description Request body for starting a quiz
type StartQuizRequest struct {
	CourseID string `json:"course_id"`
}

// SelectAnswerRequest records a multiple-choice candidate answer.
type SelectAnswerRequest struct {
	Option string `json:"option"`
}

// CharOpRequest moves a scramble character token by its pool id.
type CharOpRequest struct {
	TokenID int `json:"token_id"`
}

// QuestionView is the client-facing projection of a question. The
// correct answer is withheld until the answer has been checked.
type QuestionView struct {
	Type         string   `json:"type"`
	QuestionText string   `json:"question_text"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options,omitempty"`
}

// CharTokenView mirrors one scramble token, including the cosmetic
// per-position feedback after an incorrect check.
type CharTokenView struct {
	Char   string `json:"char"`
	ID     int    `json:"id"`
	Status string `json:"status,omitempty"`
}

// QuizStateResponse is the session snapshot returned by every quiz
// operation.
type QuizStateResponse struct {
	SessionID           string          `json:"session_id"`
	CourseID            string          `json:"course_id"`
	QuestionIndex       int             `json:"question_index"`
	TotalQuestions      int             `json:"total_questions"`
	Score               int             `json:"score"`
	Question            *QuestionView   `json:"question,omitempty"`
	SelectedAnswer      string          `json:"selected_answer,omitempty"`
	AvailableChars      []CharTokenView `json:"available_chars,omitempty"`
	BuiltSequence       []CharTokenView `json:"built_sequence,omitempty"`
	AnswerChecked       bool            `json:"answer_checked"`
	Finished            bool            `json:"finished"`
	InsufficientContent bool            `json:"insufficient_content,omitempty"`
	Outcome             *QuizOutcome    `json:"outcome,omitempty"`
}

// CheckAnswerResponse is returned by the check transition.
type CheckAnswerResponse struct {
	Correct       bool            `json:"correct"`
	CorrectAnswer string          `json:"correct_answer"`
	Score         int             `json:"score"`
	BuiltSequence []CharTokenView `json:"built_sequence,omitempty"`
}

// QuizOutcome is the terminal result of a finished quiz.
type QuizOutcome struct {
	Score           int     `json:"score"`
	Total           int     `json:"total"`
	Percentage      float64 `json:"percentage"`
	Passed          bool    `json:"passed"`
	CourseCompleted bool    `json:"course_completed"`
}
