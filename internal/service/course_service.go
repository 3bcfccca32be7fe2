package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hangeul-path/internal/cache"
	"hangeul-path/internal/domain"
	"hangeul-path/internal/dto"
	"hangeul-path/internal/logger"

	"go.uber.org/zap"
)

const courseListCacheTTL = 10 * time.Minute

// CourseService defines the interface for course browsing and enrollment.
type CourseService interface {
	// ListCourses returns the course catalog, optionally filtered by
	// category and level. Results are cached.
	ListCourses(ctx context.Context, category, level string) (*dto.CourseListResponse, error)

	// GetCourse returns a course with its lessons. When userID is
	// non-empty the caller's progress record is attached.
	GetCourse(ctx context.Context, courseID, userID string) (*dto.CourseDetailResponse, error)

	// Enroll creates the default progress record for (userID, courseID).
	// Enrolling twice is a no-op.
	Enroll(ctx context.Context, userID, courseID string) error
}

type courseServiceImpl struct {
	courseRepo   domain.CourseRepository
	progressRepo domain.ProgressRepository
	cache        domain.Cache
}

// NewCourseService creates a new instance of CourseService.
func NewCourseService(courseRepo domain.CourseRepository, progressRepo domain.ProgressRepository, cacheClient domain.Cache) CourseService {
	return &courseServiceImpl{
		courseRepo:   courseRepo,
		progressRepo: progressRepo,
		cache:        cacheClient,
	}
}

func (s *courseServiceImpl) ListCourses(ctx context.Context, category, level string) (*dto.CourseListResponse, error) {
	cacheKey := cache.GenerateCacheKey("course", "list", "all", category, level)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil {
			var response dto.CourseListResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				return &response, nil
			}
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("course list cache read failed", zap.Error(err))
		}
	}

	courses, err := s.courseRepo.ListCourses(ctx, category, level)
	if err != nil {
		return nil, err
	}

	response := &dto.CourseListResponse{Courses: make([]dto.CourseSummaryResponse, len(courses))}
	for i, course := range courses {
		response.Courses[i] = toCourseSummary(course)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(payload), courseListCacheTTL); err != nil {
				logger.Get().Warn("course list cache write failed", zap.Error(err))
			}
		}
	}
	return response, nil
}

func (s *courseServiceImpl) GetCourse(ctx context.Context, courseID, userID string) (*dto.CourseDetailResponse, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, domain.NewCourseNotFoundError(courseID)
	}

	response := &dto.CourseDetailResponse{
		CourseSummaryResponse: toCourseSummary(course),
		Lessons:               make([]dto.LessonResponse, len(course.Lessons)),
	}
	for i, lesson := range course.Lessons {
		response.Lessons[i] = toLessonResponse(lesson)
	}

	if userID != "" {
		progress, err := s.progressRepo.GetProgress(ctx, userID, courseID)
		if err != nil {
			return nil, err
		}
		if progress != nil {
			response.Progress = toProgressResponse(progress)
		}
	}
	return response, nil
}

func (s *courseServiceImpl) Enroll(ctx context.Context, userID, courseID string) error {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return err
	}
	if course == nil {
		return domain.NewCourseNotFoundError(courseID)
	}
	return s.progressRepo.EnsureProgress(ctx, userID, courseID)
}

func toCourseSummary(course *domain.Course) dto.CourseSummaryResponse {
	return dto.CourseSummaryResponse{
		ID:           course.ID,
		Title:        course.Title,
		Description:  course.Description,
		Level:        course.Level,
		Category:     course.Category,
		Duration:     course.Duration,
		LessonsCount: course.LessonsCount,
		ImageURL:     course.ImageURL,
	}
}

func toLessonResponse(lesson domain.Lesson) dto.LessonResponse {
	var sentences map[string]dto.ExampleResponse
	if len(lesson.ExampleSentences) > 0 {
		sentences = make(map[string]dto.ExampleResponse, len(lesson.ExampleSentences))
		for key, ex := range lesson.ExampleSentences {
			sentences[key] = dto.ExampleResponse{
				Korean:        ex.Korean,
				English:       ex.English,
				Pronunciation: ex.Pronunciation,
			}
		}
	}
	return dto.LessonResponse{
		LessonNumber:     lesson.LessonNumber,
		Title:            lesson.Title,
		Content:          lesson.Content,
		ExampleSentences: sentences,
		Tip:              lesson.Tip,
		ImageURL:         lesson.ImageURL,
	}
}

func toProgressResponse(progress *domain.CourseProgress) *dto.ProgressResponse {
	completed := progress.CompletedLessons
	if completed == nil {
		completed = []int{}
	}
	return &dto.ProgressResponse{
		Progress:            progress.Progress,
		CompletedLessons:    completed,
		LastCompletedLesson: progress.LastCompletedLesson,
		IsCompleted:         progress.IsCompleted,
	}
}
