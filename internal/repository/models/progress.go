package models

import (
	"time"

	"hangeul-path/internal/domain"
)

// UserProgress is a document in the user_progress collection, keyed by
// the (userId, courseId) pair. Lesson completions are merged into the
// document with $addToSet so replays stay idempotent.
type UserProgress struct {
	UserID              string     `bson:"userId"`
	CourseID            string     `bson:"courseId"`
	Progress            float64    `bson:"progress"`
	CompletedLessons    []int      `bson:"completedLessons"`
	LastCompletedLesson *int       `bson:"lastCompletedLesson,omitempty"`
	IsCompleted         bool       `bson:"isCompleted"`
	LastAccessed        time.Time  `bson:"lastAccessed"`
	CompletedAt         *time.Time `bson:"completedAt,omitempty"`
}

// ToDomain converts the stored progress record to its domain form.
func (p *UserProgress) ToDomain() *domain.CourseProgress {
	completed := p.CompletedLessons
	if completed == nil {
		completed = []int{}
	}
	return &domain.CourseProgress{
		Progress:            p.Progress,
		CompletedLessons:    completed,
		LastCompletedLesson: p.LastCompletedLesson,
		IsCompleted:         p.IsCompleted,
	}
}
