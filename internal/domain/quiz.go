package domain

import (
	"strings"
	"unicode"
)

// QuestionType identifies how a quiz question is answered.
type QuestionType string

const (
	QuestionTypeMultipleChoice   QuestionType = "multiple-choice"
	QuestionTypeSentenceScramble QuestionType = "sentence-scramble"
)

// QuizQuestion is a generated, ephemeral assessment item. It is never
// persisted; a fresh generation produces a fresh independent shuffle.
type QuizQuestion struct {
	Type          QuestionType `json:"type"`
	QuestionText  string       `json:"question_text"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correct_answer"`
	Prompt        string       `json:"prompt"`
}

// CharStatus is the per-position feedback attached to a placed character
// after an incorrect scramble check. Purely cosmetic, never affects score.
type CharStatus string

const (
	CharStatusCorrect   CharStatus = "correct"
	CharStatusIncorrect CharStatus = "incorrect"
)

// CharToken is one selectable character in a sentence-scramble question.
// ID disambiguates repeated characters within the pool.
type CharToken struct {
	Char   string     `json:"char"`
	ID     int        `json:"id"`
	Status CharStatus `json:"status,omitempty"`
}

// QuizzableExamples collects every example sentence across the lessons
// that carries both sides of the translation pair. Examples missing
// either side cannot form a question and are skipped.
func QuizzableExamples(lessons []Lesson) []Example {
	var examples []Example
	for _, lesson := range lessons {
		for _, example := range lesson.ExampleSentences {
			if example.Korean == "" || example.English == "" {
				continue
			}
			examples = append(examples, example)
		}
	}
	return examples
}

// CompactAnswer strips all whitespace from a scramble answer. Scramble
// correctness is compared on the stripped form; the original spacing is
// kept only for display.
func CompactAnswer(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
