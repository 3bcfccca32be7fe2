// Package quizsession implements the answering state machine for a
// generated quiz: Answering -> Checked per question, then Finished. The
// session is a plain serializable value; callers persist it between
// operations and own its lifetime.
package quizsession

import (
	"strings"

	"hangeul-path/internal/domain"
)

// PassThresholdPercent is the score percentage required to pass the
// final assessment and complete the course.
const PassThresholdPercent = 80.0

// Session holds the in-progress answering state for one generated quiz.
// CurrentIndex moves forward only; Score never decreases and grows by at
// most one per question.
type Session struct {
	ID             string                `json:"id"`
	UserID         string                `json:"user_id"`
	CourseID       string                `json:"course_id"`
	Questions      []domain.QuizQuestion `json:"questions"`
	CurrentIndex   int                   `json:"current_index"`
	Score          int                   `json:"score"`
	AnswerChecked  bool                  `json:"answer_checked"`
	LastCorrect    bool                  `json:"last_correct"`
	SelectedAnswer string                `json:"selected_answer"`
	AvailableChars []domain.CharToken    `json:"available_chars,omitempty"`
	BuiltSequence  []domain.CharToken    `json:"built_sequence,omitempty"`
	Finished       bool                  `json:"finished"`
}

// Outcome is the terminal result of a finished session.
type Outcome struct {
	Score      int
	Total      int
	Percentage float64
	Passed     bool
}

// New creates a session positioned at the first question.
func New(id, userID, courseID string, questions []domain.QuizQuestion) *Session {
	s := &Session{
		ID:        id,
		UserID:    userID,
		CourseID:  courseID,
		Questions: questions,
	}
	if len(questions) == 0 {
		s.Finished = true
		return s
	}
	s.prepareQuestion()
	return s
}

// Current returns the question being answered, or nil once finished.
func (s *Session) Current() *domain.QuizQuestion {
	if s.Finished || s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentIndex]
}

// Select records a candidate answer for a multiple-choice question.
// Re-selectable until checked.
func (s *Session) Select(option string) error {
	q, err := s.answerable(domain.QuestionTypeMultipleChoice)
	if err != nil {
		return err
	}
	for _, candidate := range q.Options {
		if candidate == option {
			s.SelectedAnswer = option
			return nil
		}
	}
	return domain.NewInvalidInputError("selected option is not part of this question")
}

// PlaceChar moves a token from the available pool to the end of the
// built sequence.
func (s *Session) PlaceChar(tokenID int) error {
	if _, err := s.answerable(domain.QuestionTypeSentenceScramble); err != nil {
		return err
	}
	for i, token := range s.AvailableChars {
		if token.ID == tokenID {
			s.AvailableChars = append(s.AvailableChars[:i], s.AvailableChars[i+1:]...)
			s.BuiltSequence = append(s.BuiltSequence, token)
			return nil
		}
	}
	return domain.NewInvalidInputError("character token is not available")
}

// RemoveChar moves a placed token back to the available pool.
func (s *Session) RemoveChar(tokenID int) error {
	if _, err := s.answerable(domain.QuestionTypeSentenceScramble); err != nil {
		return err
	}
	for i, token := range s.BuiltSequence {
		if token.ID == tokenID {
			s.BuiltSequence = append(s.BuiltSequence[:i], s.BuiltSequence[i+1:]...)
			token.Status = ""
			s.AvailableChars = append(s.AvailableChars, token)
			return nil
		}
	}
	return domain.NewInvalidInputError("character token is not placed")
}

// Backspace pops the last placed token back to the available pool.
func (s *Session) Backspace() error {
	if _, err := s.answerable(domain.QuestionTypeSentenceScramble); err != nil {
		return err
	}
	if len(s.BuiltSequence) == 0 {
		return domain.NewInvalidInputError("nothing to remove")
	}
	return s.RemoveChar(s.BuiltSequence[len(s.BuiltSequence)-1].ID)
}

// Check grades the current question. It is a one-way transition: the
// question cannot be re-checked, and the score grows by exactly one on a
// correct answer.
func (s *Session) Check() (bool, error) {
	q := s.Current()
	if q == nil {
		return false, domain.NewError(domain.CodeSessionFinished, "quiz is already finished", nil)
	}
	if s.AnswerChecked {
		return false, domain.NewInvalidInputError("answer was already checked")
	}

	var correct bool
	switch q.Type {
	case domain.QuestionTypeSentenceScramble:
		if len(s.BuiltSequence) == 0 {
			return false, domain.NewInvalidInputError("no characters placed")
		}
		expected := domain.CompactAnswer(q.CorrectAnswer)
		correct = s.builtAnswer() == expected
		if !correct {
			s.annotateBuiltSequence(expected)
		}
	default:
		if s.SelectedAnswer == "" {
			return false, domain.NewInvalidInputError("no answer selected")
		}
		correct = s.SelectedAnswer == q.CorrectAnswer
	}

	if correct {
		s.Score++
	}
	s.AnswerChecked = true
	s.LastCorrect = correct
	return correct, nil
}

// Advance moves to the next question, or to Finished after the last one.
// There is no going back.
func (s *Session) Advance() error {
	if s.Finished {
		return domain.NewError(domain.CodeSessionFinished, "quiz is already finished", nil)
	}
	if !s.AnswerChecked {
		return domain.NewInvalidInputError("current answer was not checked")
	}

	s.CurrentIndex++
	if s.CurrentIndex >= len(s.Questions) {
		s.Finished = true
		return nil
	}
	s.prepareQuestion()
	return nil
}

// Outcome computes the final result. Only valid on a finished session.
func (s *Session) Outcome() (Outcome, error) {
	if !s.Finished {
		return Outcome{}, domain.NewInvalidInputError("quiz is not finished")
	}
	out := Outcome{Score: s.Score, Total: len(s.Questions)}
	if out.Total > 0 {
		out.Percentage = 100 * float64(out.Score) / float64(out.Total)
	}
	out.Passed = out.Total > 0 && out.Percentage >= PassThresholdPercent
	return out, nil
}

// prepareQuestion resets per-question state when a question is entered.
func (s *Session) prepareQuestion() {
	s.SelectedAnswer = ""
	s.AnswerChecked = false
	s.LastCorrect = false
	s.BuiltSequence = nil
	s.AvailableChars = nil

	q := &s.Questions[s.CurrentIndex]
	if q.Type == domain.QuestionTypeSentenceScramble {
		s.AvailableChars = make([]domain.CharToken, len(q.Options))
		for i, ch := range q.Options {
			s.AvailableChars[i] = domain.CharToken{Char: ch, ID: i}
		}
	}
}

// answerable guards the mutation operations: the session must be on a
// live, unchecked question of the given type.
func (s *Session) answerable(want domain.QuestionType) (*domain.QuizQuestion, error) {
	q := s.Current()
	if q == nil {
		return nil, domain.NewError(domain.CodeSessionFinished, "quiz is already finished", nil)
	}
	if s.AnswerChecked {
		return nil, domain.NewInvalidInputError("answer was already checked")
	}
	if q.Type != want {
		return nil, domain.NewInvalidInputError("operation does not match the question type")
	}
	return q, nil
}

func (s *Session) builtAnswer() string {
	var b strings.Builder
	for _, token := range s.BuiltSequence {
		b.WriteString(token.Char)
	}
	return b.String()
}

// annotateBuiltSequence marks each placed token against the expected
// character at its position. Cosmetic feedback only; scoring is done.
func (s *Session) annotateBuiltSequence(expected string) {
	expectedChars := []rune(expected)
	for i := range s.BuiltSequence {
		if i < len(expectedChars) && s.BuiltSequence[i].Char == string(expectedChars[i]) {
			s.BuiltSequence[i].Status = domain.CharStatusCorrect
		} else {
			s.BuiltSequence[i].Status = domain.CharStatusIncorrect
		}
	}
}
