package service

import (
	"context"
	"testing"

	"hangeul-path/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fiveLessonCourse() *domain.Course {
	return &domain.Course{
		ID:           "course1",
		Title:        "Basic Greetings",
		Level:        domain.TierBeginner,
		Category:     "conversation",
		LessonsCount: 5,
	}
}

func TestRecordLessonCompletion_ComputesPercentage(t *testing.T) {
	courseRepo := new(MockCourseRepository)
	progressRepo := new(MockProgressRepository)
	levelService := new(MockLevelService)
	svc := NewProgressService(courseRepo, progressRepo, levelService)
	ctx := context.Background()

	courseRepo.On("GetCourseByID", ctx, "course1").Return(fiveLessonCourse(), nil)
	progressRepo.On("GetProgress", ctx, "user1", "course1").Return(&domain.CourseProgress{
		Progress:         40,
		CompletedLessons: []int{1, 2},
	}, nil)
	progressRepo.On("MergeLessonCompletion", ctx, "user1", "course1", 3, 60.0).Return(nil)
	levelService.On("Recompute", ctx, "user1").Return("Beginner 1", nil)

	response, err := svc.RecordLessonCompletion(ctx, "user1", "course1", 3, false)
	require.NoError(t, err)

	assert.Equal(t, 60.0, response.Progress)
	assert.ElementsMatch(t, []int{1, 2, 3}, response.CompletedLessons)
	require.NotNil(t, response.LastCompletedLesson)
	assert.Equal(t, 3, *response.LastCompletedLesson)
	progressRepo.AssertExpectations(t)
}

func TestRecordLessonCompletion_RoundsToOneDecimal(t *testing.T) {
	courseRepo := new(MockCourseRepository)
	progressRepo := new(MockProgressRepository)
	levelService := new(MockLevelService)
	svc := NewProgressService(courseRepo, progressRepo, levelService)
	ctx := context.Background()

	course := fiveLessonCourse()
	course.LessonsCount = 3
	courseRepo.On("GetCourseByID", ctx, "course1").Return(course, nil)
	progressRepo.On("GetProgress", ctx, "user1", "course1").Return(nil, nil)
	progressRepo.On("MergeLessonCompletion", ctx, "user1", "course1", 1, 33.3).Return(nil)
	levelService.On("Recompute", ctx, "user1").Return("Beginner 0", nil)

	response, err := svc.RecordLessonCompletion(ctx, "user1", "course1", 1, false)
	require.NoError(t, err)
	assert.Equal(t, 33.3, response.Progress)
}

func TestRecordLessonCompletion_NoOps(t *testing.T) {
	tests := []struct {
		name        string
		progress    *domain.CourseProgress
		initialLoad bool
	}{
		{
			name:        "initial load event",
			progress:    &domain.CourseProgress{CompletedLessons: []int{}},
			initialLoad: true,
		},
		{
			name:     "course already completed",
			progress: &domain.CourseProgress{Progress: 100, CompletedLessons: []int{1, 2}, IsCompleted: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			courseRepo := new(MockCourseRepository)
			progressRepo := new(MockProgressRepository)
			levelService := new(MockLevelService)
			svc := NewProgressService(courseRepo, progressRepo, levelService)
			ctx := context.Background()

			courseRepo.On("GetCourseByID", ctx, "course1").Return(fiveLessonCourse(), nil)
			progressRepo.On("GetProgress", ctx, "user1", "course1").Return(tt.progress, nil)

			response, err := svc.RecordLessonCompletion(ctx, "user1", "course1", 3, tt.initialLoad)
			require.NoError(t, err)

			assert.Equal(t, tt.progress.Progress, response.Progress)
			progressRepo.AssertNotCalled(t, "MergeLessonCompletion",
				mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRecordLessonCompletion_ReplayMovesBookmark(t *testing.T) {
	courseRepo := new(MockCourseRepository)
	progressRepo := new(MockProgressRepository)
	levelService := new(MockLevelService)
	svc := NewProgressService(courseRepo, progressRepo, levelService)
	ctx := context.Background()

	last := 3
	courseRepo.On("GetCourseByID", ctx, "course1").Return(fiveLessonCourse(), nil)
	progressRepo.On("GetProgress", ctx, "user1", "course1").Return(&domain.CourseProgress{
		Progress:            40,
		CompletedLessons:    []int{1, 3},
		LastCompletedLesson: &last,
	}, nil)
	progressRepo.On("MergeLessonCompletion", ctx, "user1", "course1", 1, 40.0).Return(nil)

	response, err := svc.RecordLessonCompletion(ctx, "user1", "course1", 1, false)
	require.NoError(t, err)

	assert.Equal(t, 40.0, response.Progress)
	assert.ElementsMatch(t, []int{1, 3}, response.CompletedLessons)
	require.NotNil(t, response.LastCompletedLesson)
	assert.Equal(t, 1, *response.LastCompletedLesson)
	levelService.AssertNotCalled(t, "Recompute", mock.Anything, mock.Anything)
	progressRepo.AssertExpectations(t)
}

func TestRecordLessonCompletion_CourseWithoutLessons(t *testing.T) {
	courseRepo := new(MockCourseRepository)
	progressRepo := new(MockProgressRepository)
	levelService := new(MockLevelService)
	svc := NewProgressService(courseRepo, progressRepo, levelService)
	ctx := context.Background()

	course := fiveLessonCourse()
	course.LessonsCount = 0
	courseRepo.On("GetCourseByID", ctx, "course1").Return(course, nil)
	progressRepo.On("GetProgress", ctx, "user1", "course1").Return(nil, nil)

	response, err := svc.RecordLessonCompletion(ctx, "user1", "course1", 1, false)
	require.NoError(t, err)

	assert.Equal(t, 0.0, response.Progress)
	assert.Empty(t, response.CompletedLessons)
	progressRepo.AssertNotCalled(t, "MergeLessonCompletion",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordLessonCompletion_Validation(t *testing.T) {
	courseRepo := new(MockCourseRepository)
	progressRepo := new(MockProgressRepository)
	levelService := new(MockLevelService)
	svc := NewProgressService(courseRepo, progressRepo, levelService)
	ctx := context.Background()

	t.Run("unknown course", func(t *testing.T) {
		courseRepo.On("GetCourseByID", ctx, "missing").Return(nil, nil)
		_, err := svc.RecordLessonCompletion(ctx, "user1", "missing", 1, false)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeCourseNotFound, domainErr.Code)
	})

	t.Run("lesson number out of range", func(t *testing.T) {
		courseRepo.On("GetCourseByID", ctx, "course1").Return(fiveLessonCourse(), nil)
		progressRepo.On("GetProgress", ctx, "user1", "course1").Return(nil, nil)
		_, err := svc.RecordLessonCompletion(ctx, "user1", "course1", 6, false)
		var validationErrs domain.ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
		assert.Equal(t, domain.CodeOutOfRange, validationErrs[0].Code)
	})
}
