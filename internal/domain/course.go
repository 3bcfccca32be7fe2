package domain

// Example is one Korean/English example sentence pair within a lesson.
type Example struct {
	Korean        string `json:"korean"`
	English       string `json:"english"`
	Pronunciation string `json:"pronunciation"`
}

// Lesson is one ordered unit of a course. LessonNumber is 1-based.
type Lesson struct {
	LessonNumber     int                `json:"lesson_number"`
	Title            string             `json:"title"`
	Content          string             `json:"content"`
	ExampleSentences map[string]Example `json:"example_sentences,omitempty"`
	Tip              string             `json:"tip,omitempty"`
	ImageURL         string             `json:"image_url,omitempty"`
}

// Course is the catalog entity students enroll in. LessonsCount is the
// denominator of the progress percentage and may differ from
// len(Lessons) while content is being authored.
type Course struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Level        string   `json:"level"`
	Category     string   `json:"category"`
	Duration     string   `json:"duration"`
	LessonsCount int      `json:"lessons_count"`
	ImageURL     string   `json:"image_url,omitempty"`
	Lessons      []Lesson `json:"lessons"`
}
