package service

import (
	"context"

	"hangeul-path/internal/domain"
	"hangeul-path/internal/logger"

	"go.uber.org/zap"
)

// LevelService defines the interface for the leveling engine.
type LevelService interface {
	// Recompute derives the user's level from the average progress of
	// their enrolled courses in the current tier and persists it when it
	// changed. It returns the (possibly unchanged) level label.
	Recompute(ctx context.Context, userID string) (string, error)
}

type levelServiceImpl struct {
	userRepo     domain.UserRepository
	courseRepo   domain.CourseRepository
	progressRepo domain.ProgressRepository
}

// NewLevelService creates a new instance of LevelService.
func NewLevelService(userRepo domain.UserRepository, courseRepo domain.CourseRepository, progressRepo domain.ProgressRepository) LevelService {
	return &levelServiceImpl{
		userRepo:     userRepo,
		courseRepo:   courseRepo,
		progressRepo: progressRepo,
	}
}

func (s *levelServiceImpl) Recompute(ctx context.Context, userID string) (string, error) {
	profile, err := s.userRepo.GetProfileByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return "", domain.NewNotFoundError("user not found with ID: " + userID)
	}

	current, err := domain.ParseLevel(profile.CurrentLevel)
	if err != nil {
		// Unreadable stored labels reset to the signup default.
		current, _ = domain.ParseLevel(domain.DefaultLevel)
	}

	enrollments, err := s.progressRepo.ListProgress(ctx, userID)
	if err != nil {
		return "", err
	}

	var sum float64
	var count int
	for _, enrollment := range enrollments {
		course, err := s.courseRepo.GetCourseByID(ctx, enrollment.CourseID)
		if err != nil {
			return "", err
		}
		if course == nil || !current.SameTier(course.Level) {
			continue
		}
		sum += enrollment.Progress
		count++
	}
	if count == 0 {
		return current.String(), nil
	}

	next := ComputeLevel(current, sum/float64(count))
	if next == current {
		return current.String(), nil
	}

	if err := s.userRepo.UpdateLevel(ctx, userID, next.String()); err != nil {
		return "", err
	}
	logger.Get().Info("user level updated",
		zap.String("user_id", userID),
		zap.String("from", current.String()),
		zap.String("to", next.String()))
	return next.String(), nil
}

// ComputeLevel maps average tier progress to a level. Each 10% of
// average progress is one sub-level; a full 100% promotes to the next
// tier's sub-level 0. Advanced has no next tier and clamps at the
// maximum sub-level.
func ComputeLevel(current domain.Level, averageProgress float64) domain.Level {
	if averageProgress >= 100 {
		if nextTier, ok := current.NextTier(); ok {
			return domain.Level{Tier: nextTier, SubLevel: 0}
		}
		return domain.Level{Tier: current.Tier, SubLevel: domain.MaxSubLevel}
	}
	if averageProgress < 0 {
		averageProgress = 0
	}
	return domain.Level{Tier: current.Tier, SubLevel: int(averageProgress / 10)}
}
