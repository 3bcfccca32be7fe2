package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"hangeul-path/internal/domain"
	"hangeul-path/internal/dto"
	"hangeul-path/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// UserService defines the interface for profile and dashboard reads.
type UserService interface {
	// GetProfile returns the caller's profile.
	GetProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error)

	// UpdateProfile changes the mutable account fields.
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)

	// GetDashboard aggregates the profile, enrolled courses and
	// achievements, and refreshes the derived lesson counter.
	GetDashboard(ctx context.Context, userID string) (*dto.DashboardResponse, error)

	// GetRanking returns the leaderboard of top learners by weighted
	// score.
	GetRanking(ctx context.Context) (*dto.RankingResponse, error)
}

const (
	rankingCandidates = 20
	rankingSize       = 10

	// A completed course outweighs a hundred individual lessons.
	courseScoreWeight = 100
)

type userServiceImpl struct {
	userRepo     domain.UserRepository
	courseRepo   domain.CourseRepository
	progressRepo domain.ProgressRepository
	levelService LevelService
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo domain.UserRepository, courseRepo domain.CourseRepository, progressRepo domain.ProgressRepository, levelService LevelService) UserService {
	return &userServiceImpl{
		userRepo:     userRepo,
		courseRepo:   courseRepo,
		progressRepo: progressRepo,
		levelService: levelService,
	}
}

func (s *userServiceImpl) getProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, err := s.userRepo.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.NewNotFoundError("user not found with ID: " + userID)
	}
	return profile, nil
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	profile, err := s.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := toProfileResponse(profile)
	return &response, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	if req.Name == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("name")}
	}
	profile, err := s.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateAccountInfo(ctx, userID, req.Name, req.PictureURL); err != nil {
		return nil, err
	}
	profile.Name = req.Name
	profile.PictureURL = req.PictureURL
	response := toProfileResponse(profile)
	return &response, nil
}

func (s *userServiceImpl) GetDashboard(ctx context.Context, userID string) (*dto.DashboardResponse, error) {
	profile, err := s.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.progressRepo.ListProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Course documents are independent; fetch them concurrently and
	// keep enrollment order in the result.
	courses := make([]*domain.Course, len(enrollments))
	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	for i, enrollment := range enrollments {
		i, courseID := i, enrollment.CourseID
		g.Go(func() error {
			course, err := s.courseRepo.GetCourseByID(gctx, courseID)
			if err != nil {
				return err
			}
			mu.Lock()
			courses[i] = course
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var totalLessons int
	var completedCourses int
	enrolled := make([]dto.EnrolledCourseResponse, 0, len(enrollments))
	for i, enrollment := range enrollments {
		if courses[i] == nil {
			// Enrollment pointing at a deleted course; skip it.
			continue
		}
		totalLessons += len(enrollment.CompletedLessons)
		if enrollment.IsCompleted {
			completedCourses++
		}
		enrolled = append(enrolled, dto.EnrolledCourseResponse{
			Course:   toCourseSummary(courses[i]),
			Progress: *toProgressResponse(&enrollment.CourseProgress),
		})
	}

	// The lesson counter is derived; refresh it so the profile matches
	// what the dashboard just counted.
	if totalLessons != profile.TotalLessonsCompleted {
		if err := s.userRepo.SetTotalLessonsCompleted(ctx, userID, totalLessons); err != nil {
			logger.Get().Warn("failed to refresh lesson counter",
				zap.String("user_id", userID), zap.Error(err))
		} else {
			profile.TotalLessonsCompleted = totalLessons
		}
	}

	if level, err := s.levelService.Recompute(ctx, userID); err != nil {
		logger.Get().Warn("level recompute on dashboard failed",
			zap.String("user_id", userID), zap.Error(err))
	} else {
		profile.CurrentLevel = level
	}

	return &dto.DashboardResponse{
		Profile:         toProfileResponse(profile),
		EnrolledCourses: enrolled,
		Achievements:    BuildAchievements(profile, totalLessons, completedCourses),
	}, nil
}

func rankingScore(profile *domain.UserProfile) int {
	return profile.CompletedCoursesCount*courseScoreWeight + profile.TotalLessonsCompleted
}

func (s *userServiceImpl) GetRanking(ctx context.Context) (*dto.RankingResponse, error) {
	// Fetch more candidates than the board shows; the weighted score can
	// reorder users beyond the raw completed-course sort.
	candidates, err := s.userRepo.ListTopByCompletedCourses(ctx, rankingCandidates)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return rankingScore(candidates[i]) > rankingScore(candidates[j])
	})
	if len(candidates) > rankingSize {
		candidates = candidates[:rankingSize]
	}

	entries := make([]dto.RankingEntryResponse, len(candidates))
	for i, profile := range candidates {
		entries[i] = dto.RankingEntryResponse{
			Rank:                  i + 1,
			Name:                  profile.Name,
			PictureURL:            profile.PictureURL,
			CurrentLevel:          profile.CurrentLevel,
			CompletedCoursesCount: profile.CompletedCoursesCount,
			TotalLessonsCompleted: profile.TotalLessonsCompleted,
		}
	}
	return &dto.RankingResponse{Entries: entries}, nil
}

// BuildAchievements evaluates the fixed achievement list against the
// profile counters.
func BuildAchievements(profile *domain.UserProfile, totalLessons, completedCourses int) []dto.AchievementResponse {
	type rule struct {
		id, title, description string
		unlocked               bool
	}
	rules := []rule{
		{"first-lesson", "First Step", "Complete your first lesson.", totalLessons > 0},
		{"lessons-10", "Lesson Novice", "Complete 10 lessons.", totalLessons >= 10},
		{"lessons-50", "Lesson Apprentice", "Complete 50 lessons.", totalLessons >= 50},
		{"lessons-100", "Lesson Master", "Complete 100 lessons.", totalLessons >= 100},
		{"first-course", "Course Graduate", "Complete your first course.", completedCourses > 0},
		{"courses-5", "Course Veteran", "Complete 5 courses.", completedCourses >= 5},
		{"streak-7", "Consistent Learner", "Maintain a 7-day study streak.", profile.Streak >= 7},
		{"streak-30", "Habit Builder", "Maintain a 30-day study streak.", profile.Streak >= 30},
		{"time-10h", "Dedicated Student", "Study for over 10 hours.", profile.TotalStudySeconds >= 36000},
		{"time-50h", "Time Keeper", "Study for over 50 hours.", profile.TotalStudySeconds >= 180000},
		{"time-100h", "Time Lord", "Study for over 100 hours.", profile.TotalStudySeconds >= 360000},
	}

	achievements := make([]dto.AchievementResponse, len(rules))
	for i, r := range rules {
		achievements[i] = dto.AchievementResponse{
			ID:          r.id,
			Title:       r.title,
			Description: r.description,
			Icon:        "award",
			Unlocked:    r.unlocked,
		}
	}
	return achievements
}

// FormatStudyTime renders accumulated seconds as "2h 5m" or "45m".
func FormatStudyTime(totalSeconds int64) string {
	if totalSeconds <= 0 {
		return "0m"
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	if minutes == 0 {
		return "< 1m"
	}
	return fmt.Sprintf("%dm", minutes)
}

func toProfileResponse(profile *domain.UserProfile) dto.UserProfileResponse {
	return dto.UserProfileResponse{
		ID:                    profile.ID,
		Email:                 profile.Email,
		Name:                  profile.Name,
		PictureURL:            profile.PictureURL,
		CurrentLevel:          profile.CurrentLevel,
		TotalStudySeconds:     profile.TotalStudySeconds,
		StudyTime:             FormatStudyTime(profile.TotalStudySeconds),
		Streak:                profile.Streak,
		CompletedCoursesCount: profile.CompletedCoursesCount,
		TotalLessonsCompleted: profile.TotalLessonsCompleted,
	}
}
