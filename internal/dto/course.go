package dto

// ExampleResponse is one example sentence pair of a lesson.
type ExampleResponse struct {
	Korean        string `json:"korean"`
	English       string `json:"english"`
	Pronunciation string `json:"pronunciation"`
}

// LessonResponse is one lesson of a course detail view.
type LessonResponse struct {
	LessonNumber     int                        `json:"lesson_number"`
	Title            string                     `json:"title"`
	Content          string                     `json:"content"`
	ExampleSentences map[string]ExampleResponse `json:"example_sentences"`
	Tip              string                     `json:"tip"`
	ImageURL         string                     `json:"image_url,omitempty"`
}

// CourseSummaryResponse is the browsing projection of a course.
type CourseSummaryResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Level        string `json:"level"`
	Category     string `json:"category"`
	Duration     string `json:"duration"`
	LessonsCount int    `json:"lessons_count"`
	ImageURL     string `json:"image_url,omitempty"`
}

// CourseDetailResponse is a course with its ordered lessons and, for an
// authenticated caller, the per-user progress record.
type CourseDetailResponse struct {
	CourseSummaryResponse
	Lessons  []LessonResponse  `json:"lessons"`
	Progress *ProgressResponse `json:"progress,omitempty"`
}

// CourseListResponse wraps the course browsing list.
type CourseListResponse struct {
	Courses []CourseSummaryResponse `json:"courses"`
}

// ProgressResponse mirrors the persisted course progress record.
type ProgressResponse struct {
	Progress            float64 `json:"progress"`
	CompletedLessons    []int   `json:"completed_lessons"`
	LastCompletedLesson *int    `json:"last_completed_lesson"`
	IsCompleted         bool    `json:"is_completed"`
}

// CompleteLessonRequest records that the displayed lesson changed.
// InitialLoad suppresses the spurious event fired on first render after
// navigation or resume.
type CompleteLessonRequest struct {
	InitialLoad bool `json:"initial_load"`
}
