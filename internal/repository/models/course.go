package models

import "hangeul-path/internal/domain"

// Example is one example sentence pair stored inside a lesson document.
type Example struct {
	Korean        string `bson:"korean"`
	English       string `bson:"english"`
	Pronunciation string `bson:"pronunciation"`
}

// Lesson is one embedded lesson of a course document.
type Lesson struct {
	LessonNumber     int                `bson:"lessonNumber"`
	Title            string             `bson:"title"`
	Content          string             `bson:"content"`
	ExampleSentences map[string]Example `bson:"exampleSentences,omitempty"`
	Tip              string             `bson:"tip,omitempty"`
	ImageURL         string             `bson:"imageUrl,omitempty"`
}

// Course is a document in the courses collection. The ID is a ULID
// assigned at seed time.
type Course struct {
	ID           string   `bson:"_id"`
	Title        string   `bson:"title"`
	Description  string   `bson:"description"`
	Level        string   `bson:"level"`
	Category     string   `bson:"category"`
	Duration     string   `bson:"duration"`
	LessonsCount int      `bson:"lessonsCount"`
	ImageURL     string   `bson:"imageUrl,omitempty"`
	Lessons      []Lesson `bson:"lessons"`
}

// ToDomain converts the stored course to its domain form.
func (c *Course) ToDomain() *domain.Course {
	lessons := make([]domain.Lesson, len(c.Lessons))
	for i, l := range c.Lessons {
		lessons[i] = l.toDomain()
	}
	return &domain.Course{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Level:        c.Level,
		Category:     c.Category,
		Duration:     c.Duration,
		LessonsCount: c.LessonsCount,
		ImageURL:     c.ImageURL,
		Lessons:      lessons,
	}
}

func (l Lesson) toDomain() domain.Lesson {
	var sentences map[string]domain.Example
	if len(l.ExampleSentences) > 0 {
		sentences = make(map[string]domain.Example, len(l.ExampleSentences))
		for key, ex := range l.ExampleSentences {
			sentences[key] = domain.Example{
				Korean:        ex.Korean,
				English:       ex.English,
				Pronunciation: ex.Pronunciation,
			}
		}
	}
	return domain.Lesson{
		LessonNumber:     l.LessonNumber,
		Title:            l.Title,
		Content:          l.Content,
		ExampleSentences: sentences,
		Tip:              l.Tip,
		ImageURL:         l.ImageURL,
	}
}

// CourseFromDomain converts a domain course into its stored form.
func CourseFromDomain(course *domain.Course) *Course {
	lessons := make([]Lesson, len(course.Lessons))
	for i, l := range course.Lessons {
		lessons[i] = lessonFromDomain(l)
	}
	return &Course{
		ID:           course.ID,
		Title:        course.Title,
		Description:  course.Description,
		Level:        course.Level,
		Category:     course.Category,
		Duration:     course.Duration,
		LessonsCount: course.LessonsCount,
		ImageURL:     course.ImageURL,
		Lessons:      lessons,
	}
}

func lessonFromDomain(l domain.Lesson) Lesson {
	var sentences map[string]Example
	if len(l.ExampleSentences) > 0 {
		sentences = make(map[string]Example, len(l.ExampleSentences))
		for key, ex := range l.ExampleSentences {
			sentences[key] = Example{
				Korean:        ex.Korean,
				English:       ex.English,
				Pronunciation: ex.Pronunciation,
			}
		}
	}
	return Lesson{
		LessonNumber:     l.LessonNumber,
		Title:            l.Title,
		Content:          l.Content,
		ExampleSentences: sentences,
		Tip:              l.Tip,
		ImageURL:         l.ImageURL,
	}
}
