package service

import (
	"context"
	"fmt"
	"testing"

	"hangeul-path/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture() (UserService, *MockUserRepository) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, new(MockCourseRepository), new(MockProgressRepository), new(MockLevelService))
	return svc, userRepo
}

func TestGetRanking_WeightedScoreReorders(t *testing.T) {
	svc, userRepo := newUserFixture()
	ctx := context.Background()

	// The store sorts by completed courses alone; the weighted score
	// (courses*100 + lessons) must pull the lesson-heavy user ahead.
	userRepo.On("ListTopByCompletedCourses", ctx, 20).Return([]*domain.UserProfile{
		{ID: "user-courses", Name: "Courses", CompletedCoursesCount: 2, TotalLessonsCompleted: 5},
		{ID: "user-lessons", Name: "Lessons", CompletedCoursesCount: 1, TotalLessonsCompleted: 200},
	}, nil)

	response, err := svc.GetRanking(ctx)
	require.NoError(t, err)
	require.Len(t, response.Entries, 2)

	assert.Equal(t, 1, response.Entries[0].Rank)
	assert.Equal(t, "Lessons", response.Entries[0].Name)
	assert.Equal(t, 2, response.Entries[1].Rank)
	assert.Equal(t, "Courses", response.Entries[1].Name)
}

func TestGetRanking_TruncatesToTen(t *testing.T) {
	svc, userRepo := newUserFixture()
	ctx := context.Background()

	profiles := make([]*domain.UserProfile, 15)
	for i := range profiles {
		profiles[i] = &domain.UserProfile{
			ID:                    fmt.Sprintf("user%d", i),
			Name:                  fmt.Sprintf("User %d", i),
			CompletedCoursesCount: 15 - i,
		}
	}
	userRepo.On("ListTopByCompletedCourses", ctx, 20).Return(profiles, nil)

	response, err := svc.GetRanking(ctx)
	require.NoError(t, err)
	require.Len(t, response.Entries, 10)
	assert.Equal(t, "User 0", response.Entries[0].Name)
	assert.Equal(t, 10, response.Entries[9].Rank)
}

func TestGetRanking_EmptyBoard(t *testing.T) {
	svc, userRepo := newUserFixture()
	ctx := context.Background()

	userRepo.On("ListTopByCompletedCourses", ctx, 20).Return([]*domain.UserProfile{}, nil)

	response, err := svc.GetRanking(ctx)
	require.NoError(t, err)
	assert.Empty(t, response.Entries)
}
