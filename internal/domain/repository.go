package domain

import "context"

// CourseRepository defines the interface for course persistence.
// Lookups return (nil, nil) when the document does not exist.
type CourseRepository interface {
	// GetCourseByID retrieves a course with its ordered lessons.
	GetCourseByID(ctx context.Context, id string) (*Course, error)

	// ListCourses returns courses filtered by category and/or level.
	// Empty filter values match everything.
	ListCourses(ctx context.Context, category, level string) ([]*Course, error)

	// SaveCourse upserts a course document.
	SaveCourse(ctx context.Context, course *Course) error
}

// StreakUpdate describes how a study commit adjusts the streak counter.
// Continue means the previous activity was yesterday and the counter is
// atomically incremented; otherwise it is reset to 1.
type StreakUpdate struct {
	Continue bool
	Today    string
}

// ProgressRepository defines the interface for per-user course progress
// persistence. All writes are field-merge writes: untouched fields are
// never clobbered.
type ProgressRepository interface {
	// GetProgress retrieves the progress record for (userID, courseID).
	GetProgress(ctx context.Context, userID, courseID string) (*CourseProgress, error)

	// EnsureProgress creates the default record on first enrollment.
	// It is a no-op when the record already exists.
	EnsureProgress(ctx context.Context, userID, courseID string) error

	// MergeLessonCompletion adds lessonNumber to the completed set
	// (set union, duplicates never double count) and merges the new
	// last-completed pointer and percentage.
	MergeLessonCompletion(ctx context.Context, userID, courseID string, lessonNumber int, progress float64) error

	// MarkCourseCompleted forces isCompleted=true, progress=100. Used by
	// a passing quiz, bypassing the lesson-count formula.
	MarkCourseCompleted(ctx context.Context, userID, courseID string) error

	// ListProgress returns all enrollments for the user, most recently
	// accessed first.
	ListProgress(ctx context.Context, userID string) ([]*EnrolledCourseProgress, error)
}

// UserRepository defines the interface for user profile persistence.
type UserRepository interface {
	GetProfileByID(ctx context.Context, userID string) (*UserProfile, error)
	GetProfileByGoogleID(ctx context.Context, googleID string) (*UserProfile, error)
	CreateProfile(ctx context.Context, profile *UserProfile) error

	// UpdateAccountInfo merges name and picture changes from the auth
	// provider on login.
	UpdateAccountInfo(ctx context.Context, userID, name, pictureURL string) error

	// UpdateLevel writes a new level label.
	UpdateLevel(ctx context.Context, userID, level string) error

	// CommitStudySession atomically increments totalStudySeconds and,
	// when streak is non-nil, applies the streak adjustment and the new
	// activity date in the same write.
	CommitStudySession(ctx context.Context, userID string, seconds int64, streak *StreakUpdate) error

	// SetTotalLessonsCompleted merges the recomputed lesson counter.
	SetTotalLessonsCompleted(ctx context.Context, userID string, total int) error

	// IncrementCompletedCourses atomically bumps the completed-course
	// counter when a course transitions to completed.
	IncrementCompletedCourses(ctx context.Context, userID string) error

	// ListTopByCompletedCourses returns up to limit profiles ordered by
	// completed-course count, highest first. Candidates for the
	// leaderboard, which re-ranks them by weighted score.
	ListTopByCompletedCourses(ctx context.Context, limit int) ([]*UserProfile, error)
}

// PostRepository defines the interface for community post persistence.
type PostRepository interface {
	CreatePost(ctx context.Context, post *Post) error
	GetPostByID(ctx context.Context, id string) (*Post, error)
	ListPosts(ctx context.Context, category string, limit int) ([]*Post, error)
	UpdatePost(ctx context.Context, id, title, content string) error
	DeletePost(ctx context.Context, id string) error

	// SetLike adds or removes userID from the post's like set.
	SetLike(ctx context.Context, postID, userID string, liked bool) error

	// AddComment appends a comment to the post's comment array.
	AddComment(ctx context.Context, postID string, comment Comment) error
}
