package service

import (
	"context"
	"testing"
	"time"

	"hangeul-path/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStudyServiceAt(userRepo domain.UserRepository, cache domain.Cache, at *time.Time) StudyService {
	svc := NewStudyService(userRepo, cache)
	svc.(*studyServiceImpl).now = func() time.Time { return *at }
	return svc
}

func TestStudySession_ShortSessionIsDiscarded(t *testing.T) {
	userRepo := new(MockUserRepository)
	cache := newFakeCache()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	svc := newStudyServiceAt(userRepo, cache, &now)
	ctx := context.Background()

	userRepo.On("GetProfileByID", ctx, "user1").Return(&domain.UserProfile{
		ID: "user1", TotalStudySeconds: 600, Streak: 3,
	}, nil)

	begun, err := svc.BeginSession(ctx, "user1")
	require.NoError(t, err)

	now = now.Add(4 * time.Second)
	summary, err := svc.EndSession(ctx, "user1", begun.SessionID)
	require.NoError(t, err)

	assert.False(t, summary.Recorded)
	assert.Equal(t, int64(600), summary.TotalStudySeconds)
	assert.Equal(t, 3, summary.Streak)
	userRepo.AssertNotCalled(t, "CommitStudySession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStudySession_StreakTransitions(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	yesterday := now.AddDate(0, 0, -1).Format(dayLayout)
	today := now.Format(dayLayout)

	tests := []struct {
		name             string
		lastActivityDate string
		expectedStreak   int
		expectedUpdate   *domain.StreakUpdate
	}{
		{
			name:             "yesterday continues the streak",
			lastActivityDate: yesterday,
			expectedStreak:   4,
			expectedUpdate:   &domain.StreakUpdate{Continue: true, Today: today},
		},
		{
			name:             "a gap resets to one",
			lastActivityDate: "2025-03-01",
			expectedStreak:   1,
			expectedUpdate:   &domain.StreakUpdate{Continue: false, Today: today},
		},
		{
			name:             "first ever session starts at one",
			lastActivityDate: "",
			expectedStreak:   1,
			expectedUpdate:   &domain.StreakUpdate{Continue: false, Today: today},
		},
		{
			name:             "same day leaves the streak untouched",
			lastActivityDate: today,
			expectedStreak:   3,
			expectedUpdate:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			cache := newFakeCache()
			at := now
			svc := newStudyServiceAt(userRepo, cache, &at)
			ctx := context.Background()

			userRepo.On("GetProfileByID", ctx, "user1").Return(&domain.UserProfile{
				ID:                "user1",
				TotalStudySeconds: 600,
				Streak:            3,
				LastActivityDate:  tt.lastActivityDate,
			}, nil)
			userRepo.On("CommitStudySession", ctx, "user1", int64(90), tt.expectedUpdate).Return(nil)

			begun, err := svc.BeginSession(ctx, "user1")
			require.NoError(t, err)

			at = at.Add(90 * time.Second)
			summary, err := svc.EndSession(ctx, "user1", begun.SessionID)
			require.NoError(t, err)

			assert.True(t, summary.Recorded)
			assert.Equal(t, int64(90), summary.ElapsedSeconds)
			assert.Equal(t, int64(690), summary.TotalStudySeconds)
			assert.Equal(t, tt.expectedStreak, summary.Streak)
			userRepo.AssertExpectations(t)
		})
	}
}

func TestStudySession_EndedSessionCannotBeEndedAgain(t *testing.T) {
	userRepo := new(MockUserRepository)
	cache := newFakeCache()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	svc := newStudyServiceAt(userRepo, cache, &now)
	ctx := context.Background()

	userRepo.On("GetProfileByID", ctx, "user1").Return(&domain.UserProfile{
		ID: "user1", Streak: 1,
	}, nil)
	userRepo.On("CommitStudySession", ctx, "user1", mock.Anything, mock.Anything).Return(nil)

	begun, err := svc.BeginSession(ctx, "user1")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = svc.EndSession(ctx, "user1", begun.SessionID)
	require.NoError(t, err)

	_, err = svc.EndSession(ctx, "user1", begun.SessionID)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeSessionNotFound, domainErr.Code)
}

func TestStudySession_OtherUsersSessionIsRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	cache := newFakeCache()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	svc := newStudyServiceAt(userRepo, cache, &now)
	ctx := context.Background()

	begun, err := svc.BeginSession(ctx, "user1")
	require.NoError(t, err)

	_, err = svc.EndSession(ctx, "intruder", begun.SessionID)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeForbidden, domainErr.Code)
}
