package dto

// UserProfileResponse is the authenticated user's profile view.
type UserProfileResponse struct {
	ID                    string `json:"id"`
	Email                 string `json:"email"`
	Name                  string `json:"name"`
	PictureURL            string `json:"picture_url,omitempty"`
	CurrentLevel          string `json:"current_level"`
	TotalStudySeconds     int64  `json:"total_study_seconds"`
	StudyTime             string `json:"study_time"`
	Streak                int    `json:"streak"`
	CompletedCoursesCount int    `json:"completed_courses_count"`
	TotalLessonsCompleted int    `json:"total_lessons_completed"`
}

// UpdateProfileRequest changes the mutable account fields.
type UpdateProfileRequest struct {
	Name       string `json:"name"`
	PictureURL string `json:"picture_url"`
}

// AchievementResponse is one dashboard achievement with its unlock
// state.
type AchievementResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
}

// EnrolledCourseResponse pairs a course summary with the caller's
// progress for the dashboard course list.
type EnrolledCourseResponse struct {
	Course   CourseSummaryResponse `json:"course"`
	Progress ProgressResponse      `json:"progress"`
}

// RankingEntryResponse is one leaderboard row.
type RankingEntryResponse struct {
	Rank                  int    `json:"rank"`
	Name                  string `json:"name"`
	PictureURL            string `json:"picture_url,omitempty"`
	CurrentLevel          string `json:"current_level"`
	CompletedCoursesCount int    `json:"completed_courses_count"`
	TotalLessonsCompleted int    `json:"total_lessons_completed"`
}

// RankingResponse is the leaderboard of top learners.
type RankingResponse struct {
	Entries []RankingEntryResponse `json:"entries"`
}

// DashboardResponse aggregates everything the dashboard page renders.
type DashboardResponse struct {
	Profile         UserProfileResponse      `json:"profile"`
	EnrolledCourses []EnrolledCourseResponse `json:"enrolled_courses"`
	Achievements    []AchievementResponse    `json:"achievements"`
}
