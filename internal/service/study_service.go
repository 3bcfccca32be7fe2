package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hangeul-path/internal/cache"
	"hangeul-path/internal/domain"
	"hangeul-path/internal/dto"
	"hangeul-path/internal/util"
)

const (
	// Sessions shorter than this are treated as accidental taps and
	// discarded without touching the profile.
	minStudySeconds = 5

	studySessionTTL = 24 * time.Hour
	dayLayout       = "2006-01-02"
)

// StudyService defines the interface for study time and streak tracking.
type StudyService interface {
	// BeginSession starts a tracked study session.
	BeginSession(ctx context.Context, userID string) (*dto.StudySessionResponse, error)

	// EndSession closes a session, credits the elapsed time and adjusts
	// the daily streak.
	EndSession(ctx context.Context, userID, sessionID string) (*dto.StudySummaryResponse, error)
}

type studySessionRecord struct {
	UserID    string    `json:"user_id"`
	StartedAt time.Time `json:"started_at"`
}

type studyServiceImpl struct {
	userRepo domain.UserRepository
	cache    domain.Cache
	now      func() time.Time
}

// NewStudyService creates a new instance of StudyService.
func NewStudyService(userRepo domain.UserRepository, cacheClient domain.Cache) StudyService {
	return &studyServiceImpl{
		userRepo: userRepo,
		cache:    cacheClient,
		now:      time.Now,
	}
}

func (s *studyServiceImpl) BeginSession(ctx context.Context, userID string) (*dto.StudySessionResponse, error) {
	sessionID := util.NewULID()
	record := studySessionRecord{UserID: userID, StartedAt: s.now()}

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, domain.NewInternalError("failed to encode study session", err)
	}
	key := cache.GenerateCacheKey("study", "session", sessionID)
	if err := s.cache.Set(ctx, key, string(payload), studySessionTTL); err != nil {
		return nil, domain.NewInternalError("failed to store study session", err)
	}

	return &dto.StudySessionResponse{
		SessionID: sessionID,
		StartedAt: record.StartedAt.Format(time.RFC3339),
	}, nil
}

func (s *studyServiceImpl) EndSession(ctx context.Context, userID, sessionID string) (*dto.StudySummaryResponse, error) {
	key := cache.GenerateCacheKey("study", "session", sessionID)
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewSessionNotFoundError(sessionID)
		}
		return nil, domain.NewInternalError("failed to load study session", err)
	}

	var record studySessionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, domain.NewInternalError("failed to decode study session", err)
	}
	if record.UserID != userID {
		return nil, domain.NewForbiddenError("study session belongs to another user")
	}
	_ = s.cache.Delete(ctx, key)

	profile, err := s.userRepo.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.NewNotFoundError("user not found with ID: " + userID)
	}

	now := s.now()
	elapsed := int64(now.Sub(record.StartedAt).Seconds())

	if elapsed <= minStudySeconds {
		return &dto.StudySummaryResponse{
			Recorded:          false,
			ElapsedSeconds:    elapsed,
			TotalStudySeconds: profile.TotalStudySeconds,
			StudyTime:         FormatStudyTime(profile.TotalStudySeconds),
			Streak:            profile.Streak,
		}, nil
	}

	today := now.Format(dayLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dayLayout)

	var streakUpdate *domain.StreakUpdate
	newStreak := profile.Streak
	switch profile.LastActivityDate {
	case today:
		// Same-day sessions only add time; the streak already counts
		// today.
	case yesterday:
		streakUpdate = &domain.StreakUpdate{Continue: true, Today: today}
		newStreak = profile.Streak + 1
	default:
		streakUpdate = &domain.StreakUpdate{Continue: false, Today: today}
		newStreak = 1
	}

	if err := s.userRepo.CommitStudySession(ctx, userID, elapsed, streakUpdate); err != nil {
		return nil, err
	}

	total := profile.TotalStudySeconds + elapsed
	return &dto.StudySummaryResponse{
		Recorded:          true,
		ElapsedSeconds:    elapsed,
		TotalStudySeconds: total,
		StudyTime:         FormatStudyTime(total),
		Streak:            newStreak,
	}, nil
}
