// Package quizgen synthesizes randomized quiz questions from course
// lesson content. Generation is intentionally non-deterministic: every
// call produces a fresh independent shuffle, so a "Try Again" regenerates
// rather than replays.
package quizgen

import (
	"fmt"
	"sync"

	"hangeul-path/internal/domain"
)

const (
	promptSelectEnglish = "Select the correct English translation."
	promptSelectKorean  = "Select the correct Korean sentence/word."
	promptArrangeChars  = "Arrange the characters to form the sentence. Some characters are not used."

	maxDistractors     = 3
	minExamplesForMC   = 4
	maxDistractorChars = 3
)

// Rand is the source of randomness for question synthesis. *rand.Rand
// satisfies it; tests inject a scripted source to assert structural
// properties instead of exact output.
type Rand interface {
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// lockedRand serializes access to an underlying source. *rand.Rand is
// not safe for concurrent use, and one Generator serves every request
// goroutine.
type lockedRand struct {
	mu  sync.Mutex
	rng Rand
}

// NewLockedRand wraps rng so it can be shared across goroutines.
func NewLockedRand(rng Rand) Rand {
	return &lockedRand{rng: rng}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

func (l *lockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rng.Shuffle(n, swap)
}

// Generator turns a course's lessons into a randomized assessment.
type Generator struct {
	rng Rand
}

// NewGenerator creates a new Generator instance.
func NewGenerator(rng Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate builds one question per quizzable example across all lessons
// and globally shuffles the result. It never fails: insufficient input
// yields an empty list, which callers render as "not enough content".
func (g *Generator) Generate(lessons []domain.Lesson) []domain.QuizQuestion {
	allExamples := domain.QuizzableExamples(lessons)
	if len(allExamples) == 0 {
		return nil
	}

	questions := make([]domain.QuizQuestion, 0, len(allExamples))
	for _, example := range allExamples {
		if len(allExamples) >= minExamplesForMC && g.rng.Float64() > 0.5 {
			questions = append(questions, g.multipleChoice(example, allExamples))
		} else {
			questions = append(questions, g.sentenceScramble(example, allExamples))
		}
	}

	g.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	return questions
}

// multipleChoice builds a 4-option question in one of two directions:
// Korean prompt with English options, or the reverse. When fewer than
// three distinct distractors exist the option set is simply shorter;
// degenerate, not an error.
func (g *Generator) multipleChoice(example domain.Example, all []domain.Example) domain.QuizQuestion {
	if g.rng.Float64() > 0.5 {
		options := g.buildOptions(example.English, all, func(ex domain.Example) string { return ex.English })
		return domain.QuizQuestion{
			Type:          domain.QuestionTypeMultipleChoice,
			QuestionText:  example.Korean,
			Options:       options,
			CorrectAnswer: example.English,
			Prompt:        promptSelectEnglish,
		}
	}

	options := g.buildOptions(example.Korean, all, func(ex domain.Example) string { return ex.Korean })
	return domain.QuizQuestion{
		Type:          domain.QuestionTypeMultipleChoice,
		QuestionText:  example.English,
		Options:       options,
		CorrectAnswer: example.Korean,
		Prompt:        promptSelectKorean,
	}
}

// buildOptions picks up to three distinct distractors that differ from
// the correct answer, then shuffles them together with it.
func (g *Generator) buildOptions(correct string, all []domain.Example, side func(domain.Example) string) []string {
	seen := map[string]bool{correct: true}
	var distractors []string
	for _, ex := range all {
		if candidate := side(ex); !seen[candidate] {
			seen[candidate] = true
			distractors = append(distractors, candidate)
		}
	}

	g.rng.Shuffle(len(distractors), func(i, j int) {
		distractors[i], distractors[j] = distractors[j], distractors[i]
	})
	if len(distractors) > maxDistractors {
		distractors = distractors[:maxDistractors]
	}

	options := append([]string{correct}, distractors...)
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// sentenceScramble builds a character-reconstruction question. The pool
// holds every character of the whitespace-stripped answer plus up to
// three distractor characters drawn from the other examples.
func (g *Generator) sentenceScramble(example domain.Example, all []domain.Example) domain.QuizQuestion {
	correctChars := splitChars(domain.CompactAnswer(example.Korean))

	var distractorPool []string
	for _, ex := range all {
		if ex.Korean == example.Korean {
			continue
		}
		distractorPool = append(distractorPool, splitChars(domain.CompactAnswer(ex.Korean))...)
	}
	g.rng.Shuffle(len(distractorPool), func(i, j int) {
		distractorPool[i], distractorPool[j] = distractorPool[j], distractorPool[i]
	})
	if len(distractorPool) > maxDistractorChars {
		distractorPool = distractorPool[:maxDistractorChars]
	}

	options := append(append([]string{}, correctChars...), distractorPool...)
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return domain.QuizQuestion{
		Type:          domain.QuestionTypeSentenceScramble,
		QuestionText:  fmt.Sprintf("%q", example.English),
		Options:       options,
		CorrectAnswer: example.Korean,
		Prompt:        promptArrangeChars,
	}
}

// splitChars splits by rune, not byte; Hangul syllables are multi-byte.
func splitChars(s string) []string {
	chars := make([]string, 0, len(s))
	for _, r := range s {
		chars = append(chars, string(r))
	}
	return chars
}
