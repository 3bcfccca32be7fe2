package domain

// CourseProgress is the persisted per-user, per-course progress record.
// CompletedLessons only grows; lessons are never un-completed.
type CourseProgress struct {
	Progress            float64 `json:"progress"`
	CompletedLessons    []int   `json:"completed_lessons"`
	LastCompletedLesson *int    `json:"last_completed_lesson"`
	IsCompleted         bool    `json:"is_completed"`
}

// NewCourseProgress returns the default record created on first enrollment.
func NewCourseProgress() *CourseProgress {
	return &CourseProgress{
		Progress:         0,
		CompletedLessons: []int{},
	}
}

// HasLesson reports whether lessonNumber is already in the completed set.
func (p *CourseProgress) HasLesson(lessonNumber int) bool {
	for _, n := range p.CompletedLessons {
		if n == lessonNumber {
			return true
		}
	}
	return false
}

// EnrolledCourseProgress ties a progress record to the course it tracks.
type EnrolledCourseProgress struct {
	CourseID string `json:"course_id"`
	CourseProgress
}

// UserProfile is the persisted per-user learning profile. The course and
// lesson counters are deliberately distinct fields: CompletedCoursesCount
// counts fully completed courses, TotalLessonsCompleted counts individual
// lessons across all enrollments.
type UserProfile struct {
	ID                    string `json:"id"`
	GoogleID              string `json:"google_id"`
	Email                 string `json:"email"`
	Name                  string `json:"name"`
	PictureURL            string `json:"picture_url"`
	CurrentLevel          string `json:"current_level"`
	TotalStudySeconds     int64  `json:"total_study_seconds"`
	Streak                int    `json:"streak"`
	LastActivityDate      string `json:"last_activity_date"`
	CompletedCoursesCount int    `json:"completed_courses_count"`
	TotalLessonsCompleted int    `json:"total_lessons_completed"`
}

// NewUserProfile returns the profile created at signup.
func NewUserProfile(id, googleID, email, name, pictureURL string) *UserProfile {
	return &UserProfile{
		ID:           id,
		GoogleID:     googleID,
		Email:        email,
		Name:         name,
		PictureURL:   pictureURL,
		CurrentLevel: DefaultLevel,
	}
}
