package service

import (
	"context"
	"math"

	"hangeul-path/internal/domain"
	"hangeul-path/internal/dto"
	"hangeul-path/internal/logger"

	"go.uber.org/zap"
)

// ProgressService defines the interface for per-course lesson progress.
type ProgressService interface {
	// RecordLessonCompletion marks a lesson as completed and recomputes
	// the course percentage. Initial-load events, quiz-completed courses
	// and courses without lessons return the current record unchanged.
	// Replaying an already completed lesson moves lastCompletedLesson
	// but leaves the set and the percentage alone.
	RecordLessonCompletion(ctx context.Context, userID, courseID string, lessonNumber int, initialLoad bool) (*dto.ProgressResponse, error)

	// GetProgress returns the caller's record for one course.
	GetProgress(ctx context.Context, userID, courseID string) (*dto.ProgressResponse, error)
}

type progressServiceImpl struct {
	courseRepo   domain.CourseRepository
	progressRepo domain.ProgressRepository
	levelService LevelService
}

// NewProgressService creates a new instance of ProgressService.
func NewProgressService(courseRepo domain.CourseRepository, progressRepo domain.ProgressRepository, levelService LevelService) ProgressService {
	return &progressServiceImpl{
		courseRepo:   courseRepo,
		progressRepo: progressRepo,
		levelService: levelService,
	}
}

func (s *progressServiceImpl) GetProgress(ctx context.Context, userID, courseID string) (*dto.ProgressResponse, error) {
	progress, err := s.progressRepo.GetProgress(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		progress = domain.NewCourseProgress()
	}
	return toProgressResponse(progress), nil
}

func (s *progressServiceImpl) RecordLessonCompletion(ctx context.Context, userID, courseID string, lessonNumber int, initialLoad bool) (*dto.ProgressResponse, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, domain.NewCourseNotFoundError(courseID)
	}
	progress, err := s.progressRepo.GetProgress(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		progress = domain.NewCourseProgress()
	}

	// A course without authored lessons cannot accrue progress. Not an
	// error; the record is simply returned as is.
	if course.LessonsCount <= 0 {
		return toProgressResponse(progress), nil
	}
	if lessonNumber < 1 || lessonNumber > course.LessonsCount {
		return nil, domain.ValidationErrors{
			domain.NewOutOfRangeError("lesson_number", lessonNumber, 1, course.LessonsCount),
		}
	}

	// A completed course is frozen at 100; lessons re-viewed after a
	// passing quiz change nothing. The initial render event is ignored
	// the same way.
	if initialLoad || progress.IsCompleted {
		return toProgressResponse(progress), nil
	}

	// Revisiting an already completed lesson moves the bookmark only;
	// the set union and the percentage are idempotent.
	if progress.HasLesson(lessonNumber) {
		if err := s.progressRepo.MergeLessonCompletion(ctx, userID, courseID, lessonNumber, progress.Progress); err != nil {
			return nil, err
		}
		updated := *progress
		updated.LastCompletedLesson = &lessonNumber
		return toProgressResponse(&updated), nil
	}

	completedCount := len(progress.CompletedLessons) + 1
	percentage := roundToTenth(100 * float64(completedCount) / float64(course.LessonsCount))

	if err := s.progressRepo.MergeLessonCompletion(ctx, userID, courseID, lessonNumber, percentage); err != nil {
		return nil, err
	}

	if _, err := s.levelService.Recompute(ctx, userID); err != nil {
		logger.Get().Warn("level recompute after lesson completion failed",
			zap.String("user_id", userID), zap.Error(err))
	}

	updated := *progress
	updated.Progress = percentage
	updated.CompletedLessons = append(append([]int{}, progress.CompletedLessons...), lessonNumber)
	updated.LastCompletedLesson = &lessonNumber
	return toProgressResponse(&updated), nil
}

// roundToTenth rounds to one decimal place, so 3 of 7 lessons reports
// 42.9 rather than a long fraction.
func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
