package quizgen

import (
	"math/rand"
	"sync"
	"testing"

	"hangeul-path/internal/domain"

	"github.com/stretchr/testify/assert"
)

// scriptedRand replays a fixed list of draws and leaves shuffles as
// no-ops, so tests can steer question type and direction while asserting
// structure rather than exact order.
type scriptedRand struct {
	draws []float64
	next  int
}

func (r *scriptedRand) Float64() float64 {
	if r.next >= len(r.draws) {
		return 0
	}
	v := r.draws[r.next]
	r.next++
	return v
}

func (r *scriptedRand) Shuffle(n int, swap func(i, j int)) {}

func lessonsWithExamples(examples ...domain.Example) []domain.Lesson {
	sentences := make(map[string]domain.Example, len(examples))
	for i, ex := range examples {
		sentences[string(rune('a'+i))] = ex
	}
	return []domain.Lesson{{
		LessonNumber:     1,
		Title:            "Greetings",
		ExampleSentences: sentences,
	}}
}

func fourExamples() []domain.Example {
	return []domain.Example{
		{Korean: "안녕", English: "Hello", Pronunciation: "annyeong"},
		{Korean: "감사합니다", English: "Thank you", Pronunciation: "gamsahamnida"},
		{Korean: "잘 가요", English: "Goodbye", Pronunciation: "jal gayo"},
		{Korean: "네", English: "Yes", Pronunciation: "ne"},
	}
}

func repeatDraws(v float64, n int) []float64 {
	draws := make([]float64, n)
	for i := range draws {
		draws[i] = v
	}
	return draws
}

func TestGenerate_OneQuestionPerValidExample(t *testing.T) {
	examples := fourExamples()
	lessons := lessonsWithExamples(examples...)
	// Two non-quizzable examples must be filtered before synthesis.
	lessons[0].ExampleSentences["empty-korean"] = domain.Example{English: "Orphan"}
	lessons[0].ExampleSentences["empty-english"] = domain.Example{Korean: "고아"}

	g := NewGenerator(&scriptedRand{draws: repeatDraws(0.1, 16)})
	questions := g.Generate(lessons)

	assert.Len(t, questions, len(examples))
}

func TestGenerate_EmptyInput(t *testing.T) {
	g := NewGenerator(&scriptedRand{})

	assert.Empty(t, g.Generate(nil))
	assert.Empty(t, g.Generate([]domain.Lesson{{LessonNumber: 1, Title: "Empty"}}))
	assert.Empty(t, g.Generate(lessonsWithExamples(domain.Example{Korean: "안녕"})))
}

func TestGenerate_MultipleChoiceKoreanToEnglish(t *testing.T) {
	lessons := lessonsWithExamples(fourExamples()...)

	// First draw per example picks multiple-choice, second picks the
	// Korean prompt / English options direction.
	g := NewGenerator(&scriptedRand{draws: repeatDraws(0.9, 8)})
	questions := g.Generate(lessons)

	assert.Len(t, questions, 4)
	var found bool
	for _, q := range questions {
		assert.Equal(t, domain.QuestionTypeMultipleChoice, q.Type)
		if q.QuestionText != "안녕" {
			continue
		}
		found = true
		assert.Equal(t, "Hello", q.CorrectAnswer)
		assert.Len(t, q.Options, 4)
		assert.Contains(t, q.Options, "Hello")

		unique := make(map[string]bool)
		for _, opt := range q.Options {
			unique[opt] = true
		}
		assert.Len(t, unique, 4, "options must be unique")
	}
	assert.True(t, found, "expected a question prompting on 안녕")
}

func TestGenerate_MultipleChoiceRequiresFourExamples(t *testing.T) {
	lessons := lessonsWithExamples(fourExamples()[:3]...)

	// Draws would pick multiple-choice, but with only three examples the
	// generator must fall back to scrambles.
	g := NewGenerator(&scriptedRand{draws: repeatDraws(0.9, 6)})
	for _, q := range g.Generate(lessons) {
		assert.Equal(t, domain.QuestionTypeSentenceScramble, q.Type)
	}
}

func TestGenerate_ScrambleOptionsCoverAnswer(t *testing.T) {
	lessons := lessonsWithExamples(fourExamples()...)

	g := NewGenerator(&scriptedRand{draws: repeatDraws(0.1, 8)})
	questions := g.Generate(lessons)
	assert.Len(t, questions, 4)

	for _, q := range questions {
		assert.Equal(t, domain.QuestionTypeSentenceScramble, q.Type)

		pool := make(map[string]int)
		for _, ch := range q.Options {
			pool[ch]++
		}
		for _, r := range domain.CompactAnswer(q.CorrectAnswer) {
			ch := string(r)
			assert.Greater(t, pool[ch], 0, "missing character %q for answer %q", ch, q.CorrectAnswer)
			pool[ch]--
		}

		stripped := domain.CompactAnswer(q.CorrectAnswer)
		extra := len(q.Options) - len([]rune(stripped))
		assert.GreaterOrEqual(t, extra, 0)
		assert.LessOrEqual(t, extra, 3, "at most three distractor characters")
	}
}

// One Generator is shared by every request goroutine, so concurrent
// generation must be safe when the source is wrapped with NewLockedRand.
// Run with -race.
func TestGenerate_ConcurrentUseWithLockedRand(t *testing.T) {
	lessons := lessonsWithExamples(fourExamples()...)
	g := NewGenerator(NewLockedRand(rand.New(rand.NewSource(1))))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				assert.Len(t, g.Generate(lessons), 4)
			}
		}()
	}
	wg.Wait()
}

func TestGenerate_ScrambleKeepsSpacedAnswerForDisplay(t *testing.T) {
	lessons := lessonsWithExamples(fourExamples()...)

	g := NewGenerator(&scriptedRand{draws: repeatDraws(0.1, 8)})
	for _, q := range g.Generate(lessons) {
		if q.CorrectAnswer == "잘 가요" {
			// Display form keeps spacing; the option pool does not.
			for _, ch := range q.Options {
				assert.NotEqual(t, " ", ch)
			}
			return
		}
	}
	t.Fatal("expected a scramble for the spaced example")
}
