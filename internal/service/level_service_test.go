package service

import (
	"context"
	"testing"

	"hangeul-path/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestComputeLevel(t *testing.T) {
	beginner := domain.Level{Tier: domain.TierBeginner, SubLevel: 9}
	advanced := domain.Level{Tier: domain.TierAdvanced, SubLevel: 9}

	tests := []struct {
		name     string
		current  domain.Level
		average  float64
		expected domain.Level
	}{
		{"each ten percent is one sub-level", beginner, 45, domain.Level{Tier: domain.TierBeginner, SubLevel: 4}},
		{"zero progress", beginner, 0, domain.Level{Tier: domain.TierBeginner, SubLevel: 0}},
		{"just under promotion", beginner, 99.9, domain.Level{Tier: domain.TierBeginner, SubLevel: 9}},
		{"full progress promotes tier", beginner, 100, domain.Level{Tier: domain.TierIntermediate, SubLevel: 0}},
		{"advanced clamps at max", advanced, 100, domain.Level{Tier: domain.TierAdvanced, SubLevel: domain.MaxSubLevel}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeLevel(tt.current, tt.average))
		})
	}
}

func beginnerCourse(id string) *domain.Course {
	return &domain.Course{ID: id, Title: id, Level: domain.TierBeginner, LessonsCount: 5}
}

func enrollment(courseID string, progress float64, completed bool) *domain.EnrolledCourseProgress {
	return &domain.EnrolledCourseProgress{
		CourseID: courseID,
		CourseProgress: domain.CourseProgress{
			Progress:    progress,
			IsCompleted: completed,
		},
	}
}

func TestRecompute_PromotesOnFullTierProgress(t *testing.T) {
	userRepo := new(MockUserRepository)
	courseRepo := new(MockCourseRepository)
	progressRepo := new(MockProgressRepository)
	svc := NewLevelService(userRepo, courseRepo, progressRepo)
	ctx := context.Background()

	userRepo.On("GetProfileByID", ctx, "user1").Return(&domain.UserProfile{
		ID: "user1", CurrentLevel: "Beginner 9",
	}, nil)
	progressRepo.On("ListProgress", ctx, "user1").Return([]*domain.EnrolledCourseProgress{
		enrollment("c1", 100, true),
		enrollment("c2", 100, true),
	}, nil)
	courseRepo.On("GetCourseByID", ctx, "c1").Return(beginnerCourse("c1"), nil)
	courseRepo.On("GetCourseByID", ctx, "c2").Return(beginnerCourse("c2"), nil)
	userRepo.On("UpdateLevel", ctx, "user1", "Intermediate 0").Return(nil)

	level, err := svc.Recompute(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, "Intermediate 0", level)
	userRepo.AssertExpectations(t)
}

func TestRecompute_AveragesTierCourses(t *testing.T) {
	userRepo := new(MockUserRepository)
	courseRepo := new(MockCourseRepository)
	progressRepo := new(MockProgressRepository)
	svc := NewLevelService(userRepo, courseRepo, progressRepo)
	ctx := context.Background()

	userRepo.On("GetProfileByID", ctx, "user1").Return(&domain.UserProfile{
		ID: "user1", CurrentLevel: "Beginner 0",
	}, nil)
	// 60 and 30 average to 45; the intermediate course is out of tier
	// and must not count.
	intermediate := &domain.Course{ID: "c3", Title: "c3", Level: domain.TierIntermediate, LessonsCount: 5}
	progressRepo.On("ListProgress", ctx, "user1").Return([]*domain.EnrolledCourseProgress{
		enrollment("c1", 60, false),
		enrollment("c2", 30, false),
		enrollment("c3", 90, false),
	}, nil)
	courseRepo.On("GetCourseByID", ctx, "c1").Return(beginnerCourse("c1"), nil)
	courseRepo.On("GetCourseByID", ctx, "c2").Return(beginnerCourse("c2"), nil)
	courseRepo.On("GetCourseByID", ctx, "c3").Return(intermediate, nil)
	userRepo.On("UpdateLevel", ctx, "user1", "Beginner 4").Return(nil)

	level, err := svc.Recompute(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, "Beginner 4", level)
}

func TestRecompute_NoTierCoursesLeavesLevelAlone(t *testing.T) {
	userRepo := new(MockUserRepository)
	courseRepo := new(MockCourseRepository)
	progressRepo := new(MockProgressRepository)
	svc := NewLevelService(userRepo, courseRepo, progressRepo)
	ctx := context.Background()

	userRepo.On("GetProfileByID", ctx, "user1").Return(&domain.UserProfile{
		ID: "user1", CurrentLevel: "Beginner 3",
	}, nil)
	progressRepo.On("ListProgress", ctx, "user1").Return([]*domain.EnrolledCourseProgress{}, nil)

	level, err := svc.Recompute(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, "Beginner 3", level)
	userRepo.AssertNotCalled(t, "UpdateLevel", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecompute_UnchangedLevelSkipsWrite(t *testing.T) {
	userRepo := new(MockUserRepository)
	courseRepo := new(MockCourseRepository)
	progressRepo := new(MockProgressRepository)
	svc := NewLevelService(userRepo, courseRepo, progressRepo)
	ctx := context.Background()

	userRepo.On("GetProfileByID", ctx, "user1").Return(&domain.UserProfile{
		ID: "user1", CurrentLevel: "Beginner 4",
	}, nil)
	progressRepo.On("ListProgress", ctx, "user1").Return([]*domain.EnrolledCourseProgress{
		enrollment("c1", 45, false),
	}, nil)
	courseRepo.On("GetCourseByID", ctx, "c1").Return(beginnerCourse("c1"), nil)

	level, err := svc.Recompute(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, "Beginner 4", level)
	userRepo.AssertNotCalled(t, "UpdateLevel", mock.Anything, mock.Anything, mock.Anything)
}
