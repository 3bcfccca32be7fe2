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
	"hangeul-path/internal/quizsession"
	"hangeul-path/internal/util"

	"go.uber.org/zap"
)

const quizSessionTTL = 2 * time.Hour

// QuestionGenerator synthesizes quiz questions from lesson content.
type QuestionGenerator interface {
	Generate(lessons []domain.Lesson) []domain.QuizQuestion
}

// QuizService drives the final course assessment: starting a quiz,
// answering its questions and completing the course on a passing score.
// Sessions live server-side, keyed by an opaque session ID, so the
// score and the answer key never leave the server.
type QuizService interface {
	Start(ctx context.Context, userID, courseID string) (*dto.QuizStateResponse, error)
	GetState(ctx context.Context, userID, sessionID string) (*dto.QuizStateResponse, error)
	Select(ctx context.Context, userID, sessionID, option string) (*dto.QuizStateResponse, error)
	PlaceChar(ctx context.Context, userID, sessionID string, tokenID int) (*dto.QuizStateResponse, error)
	RemoveChar(ctx context.Context, userID, sessionID string, tokenID int) (*dto.QuizStateResponse, error)
	Backspace(ctx context.Context, userID, sessionID string) (*dto.QuizStateResponse, error)
	Check(ctx context.Context, userID, sessionID string) (*dto.CheckAnswerResponse, error)
	Advance(ctx context.Context, userID, sessionID string) (*dto.QuizStateResponse, error)

	// Restart abandons the session and deals a fresh quiz for the same
	// course.
	Restart(ctx context.Context, userID, sessionID string) (*dto.QuizStateResponse, error)
}

type quizServiceImpl struct {
	courseRepo   domain.CourseRepository
	progressRepo domain.ProgressRepository
	userRepo     domain.UserRepository
	levelService LevelService
	generator    QuestionGenerator
	cache        domain.Cache
}

// NewQuizService creates a new instance of QuizService.
func NewQuizService(
	courseRepo domain.CourseRepository,
	progressRepo domain.ProgressRepository,
	userRepo domain.UserRepository,
	levelService LevelService,
	generator QuestionGenerator,
	cacheClient domain.Cache,
) QuizService {
	return &quizServiceImpl{
		courseRepo:   courseRepo,
		progressRepo: progressRepo,
		userRepo:     userRepo,
		levelService: levelService,
		generator:    generator,
		cache:        cacheClient,
	}
}

func (s *quizServiceImpl) Start(ctx context.Context, userID, courseID string) (*dto.QuizStateResponse, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, domain.NewCourseNotFoundError(courseID)
	}

	questions := s.generator.Generate(course.Lessons)
	if len(questions) == 0 {
		// Nothing to ask; report it without creating a session.
		return &dto.QuizStateResponse{
			CourseID:            courseID,
			Finished:            true,
			InsufficientContent: true,
		}, nil
	}

	session := quizsession.New(util.NewULID(), userID, courseID, questions)
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return s.toStateResponse(ctx, session)
}

func (s *quizServiceImpl) GetState(ctx context.Context, userID, sessionID string) (*dto.QuizStateResponse, error) {
	session, err := s.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.toStateResponse(ctx, session)
}

func (s *quizServiceImpl) Select(ctx context.Context, userID, sessionID, option string) (*dto.QuizStateResponse, error) {
	return s.mutate(ctx, userID, sessionID, func(session *quizsession.Session) error {
		return session.Select(option)
	})
}

func (s *quizServiceImpl) PlaceChar(ctx context.Context, userID, sessionID string, tokenID int) (*dto.QuizStateResponse, error) {
	return s.mutate(ctx, userID, sessionID, func(session *quizsession.Session) error {
		return session.PlaceChar(tokenID)
	})
}

func (s *quizServiceImpl) RemoveChar(ctx context.Context, userID, sessionID string, tokenID int) (*dto.QuizStateResponse, error) {
	return s.mutate(ctx, userID, sessionID, func(session *quizsession.Session) error {
		return session.RemoveChar(tokenID)
	})
}

func (s *quizServiceImpl) Backspace(ctx context.Context, userID, sessionID string) (*dto.QuizStateResponse, error) {
	return s.mutate(ctx, userID, sessionID, func(session *quizsession.Session) error {
		return session.Backspace()
	})
}

func (s *quizServiceImpl) Check(ctx context.Context, userID, sessionID string) (*dto.CheckAnswerResponse, error) {
	session, err := s.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	question := session.Current()
	correct, err := session.Check()
	if err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return &dto.CheckAnswerResponse{
		Correct:       correct,
		CorrectAnswer: question.CorrectAnswer,
		Score:         session.Score,
		BuiltSequence: toTokenViews(session.BuiltSequence),
	}, nil
}

func (s *quizServiceImpl) Advance(ctx context.Context, userID, sessionID string) (*dto.QuizStateResponse, error) {
	session, err := s.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Advance(); err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	if session.Finished {
		if err := s.settleOutcome(ctx, session); err != nil {
			return nil, err
		}
	}
	return s.toStateResponse(ctx, session)
}

func (s *quizServiceImpl) Restart(ctx context.Context, userID, sessionID string) (*dto.QuizStateResponse, error) {
	session, err := s.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, sessionKey(sessionID))
	return s.Start(ctx, userID, session.CourseID)
}

// settleOutcome applies course completion when a finished session
// passed. A course completes only once; replays of a passing quiz do
// not bump the counters again.
func (s *quizServiceImpl) settleOutcome(ctx context.Context, session *quizsession.Session) error {
	outcome, err := session.Outcome()
	if err != nil {
		return err
	}
	if !outcome.Passed {
		return nil
	}

	progress, err := s.progressRepo.GetProgress(ctx, session.UserID, session.CourseID)
	if err != nil {
		return err
	}
	if progress != nil && progress.IsCompleted {
		return nil
	}

	if err := s.progressRepo.MarkCourseCompleted(ctx, session.UserID, session.CourseID); err != nil {
		return err
	}
	if err := s.userRepo.IncrementCompletedCourses(ctx, session.UserID); err != nil {
		return err
	}
	if _, err := s.levelService.Recompute(ctx, session.UserID); err != nil {
		logger.Get().Warn("level recompute after quiz pass failed",
			zap.String("user_id", session.UserID), zap.Error(err))
	}
	logger.Get().Info("course completed by quiz",
		zap.String("user_id", session.UserID),
		zap.String("course_id", session.CourseID),
		zap.Float64("percentage", outcome.Percentage))
	return nil
}

func (s *quizServiceImpl) mutate(ctx context.Context, userID, sessionID string, op func(*quizsession.Session) error) (*dto.QuizStateResponse, error) {
	session, err := s.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := op(session); err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return s.toStateResponse(ctx, session)
}

func sessionKey(sessionID string) string {
	return cache.GenerateCacheKey("quiz", "session", sessionID)
}

func (s *quizServiceImpl) loadSession(ctx context.Context, userID, sessionID string) (*quizsession.Session, error) {
	raw, err := s.cache.Get(ctx, sessionKey(sessionID))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewSessionNotFoundError(sessionID)
		}
		return nil, domain.NewInternalError("failed to load quiz session", err)
	}
	var session quizsession.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, domain.NewInternalError("failed to decode quiz session", err)
	}
	if session.UserID != userID {
		return nil, domain.NewForbiddenError("quiz session belongs to another user")
	}
	return &session, nil
}

func (s *quizServiceImpl) saveSession(ctx context.Context, session *quizsession.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return domain.NewInternalError("failed to encode quiz session", err)
	}
	if err := s.cache.Set(ctx, sessionKey(session.ID), string(payload), quizSessionTTL); err != nil {
		return domain.NewInternalError("failed to store quiz session", err)
	}
	return nil
}

func (s *quizServiceImpl) toStateResponse(ctx context.Context, session *quizsession.Session) (*dto.QuizStateResponse, error) {
	response := &dto.QuizStateResponse{
		SessionID:      session.ID,
		CourseID:       session.CourseID,
		QuestionIndex:  session.CurrentIndex,
		TotalQuestions: len(session.Questions),
		Score:          session.Score,
		SelectedAnswer: session.SelectedAnswer,
		AvailableChars: toTokenViews(session.AvailableChars),
		BuiltSequence:  toTokenViews(session.BuiltSequence),
		AnswerChecked:  session.AnswerChecked,
		Finished:       session.Finished,
	}

	if question := session.Current(); question != nil {
		view := &dto.QuestionView{
			Type:         string(question.Type),
			QuestionText: question.QuestionText,
			Prompt:       question.Prompt,
		}
		if question.Type == domain.QuestionTypeMultipleChoice {
			view.Options = question.Options
		}
		response.Question = view
	}

	if session.Finished && len(session.Questions) > 0 {
		outcome, err := session.Outcome()
		if err != nil {
			return nil, err
		}
		result := &dto.QuizOutcome{
			Score:      outcome.Score,
			Total:      outcome.Total,
			Percentage: outcome.Percentage,
			Passed:     outcome.Passed,
		}
		if outcome.Passed {
			progress, err := s.progressRepo.GetProgress(ctx, session.UserID, session.CourseID)
			if err != nil {
				return nil, err
			}
			result.CourseCompleted = progress != nil && progress.IsCompleted
		}
		response.Outcome = result
	}
	return response, nil
}

func toTokenViews(tokens []domain.CharToken) []dto.CharTokenView {
	if len(tokens) == 0 {
		return nil
	}
	views := make([]dto.CharTokenView, len(tokens))
	for i, token := range tokens {
		views[i] = dto.CharTokenView{
			Char:   token.Char,
			ID:     token.ID,
			Status: string(token.Status),
		}
	}
	return views
}
