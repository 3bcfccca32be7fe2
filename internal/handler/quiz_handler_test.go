package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"hangeul-path/internal/config"
	"hangeul-path/internal/dto"
	"hangeul-path/internal/handler"
	"hangeul-path/internal/logger"
	"hangeul-path/internal/middleware"
	"hangeul-path/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "debug", Env: "development"}); err != nil {
		panic("failed to initialize logger for tests: " + err.Error())
	}
	m.Run()
}

// --- Manual Mocks ---

// MockQuizService
type MockQuizService struct {
	StartFunc      func(ctx context.Context, userID, courseID string) (*dto.QuizStateResponse, error)
	GetStateFunc   func(ctx context.Context, userID, sessionID string) (*dto.QuizStateResponse, error)
	SelectFunc     func(ctx context.Context, userID, sessionID, option string) (*dto.QuizStateResponse, error)
	PlaceCharFunc  func(ctx context.Context, userID, sessionID string, tokenID int) (*dto.QuizStateResponse, error)
	RemoveCharFunc func(ctx context.Context, userID, sessionID string, tokenID int) (*dto.QuizStateResponse, error)
	BackspaceFunc  func(ctx context.Context, userID, sessionID string) (*dto.QuizStateResponse, error)
	CheckFunc      func(ctx context.Context, userID, sessionID string) (*dto.CheckAnswerResponse, error)
	AdvanceFunc    func(ctx context.Context, userID, sessionID string) (*dto.QuizStateResponse, error)
	RestartFunc    func(ctx context.Context, userID, sessionID string) (*dto.QuizStateResponse, error)
}

func (m *MockQuizService) Start(ctx context.Context, userID, courseID string) (*dto.QuizStateResponse, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, userID, courseID)
	}
	panic("MockQuizService.StartFunc not implemented")
}
func (m *MockQuizService) GetState(ctx context.Context, userID, sessionID string) (*dto.QuizStateResponse, error) {
	if m.GetStateFunc != nil {
		return m.GetStateFunc(ctx, userID, sessionID)
	}
	panic("MockQuizService.GetStateFunc not implemented")
}
func (m *MockQuizService) Select(ctx context.Context, userID, sessionID, option string) (*dto.QuizStateResponse, error) {
	if m.SelectFunc != nil {
		return m.SelectFunc(ctx, userID, sessionID, option)
	}
	panic("MockQuizService.SelectFunc not implemented")
}
func (m *MockQuizService) PlaceChar(ctx context.Context, userID, sessionID string, tokenID int) (*dto.QuizStateResponse, error) {
	if m.PlaceCharFunc != nil {
		return m.PlaceCharFunc(ctx, userID, sessionID, tokenID)
	}
	panic("MockQuizService.PlaceCharFunc not implemented")
}
func (m *MockQuizService) RemoveChar(ctx context.Context, userID, sessionID string, tokenID int) (*dto.QuizStateResponse, error) {
	if m.RemoveCharFunc != nil {
		return m.RemoveCharFunc(ctx, userID, sessionID, tokenID)
	}
	panic("MockQuizService.RemoveCharFunc not implemented")
}
func (m *MockQuizService) Backspace(ctx context.Context, userID, sessionID string) (*dto.QuizStateResponse, error) {
	if m.BackspaceFunc != nil {
		return m.BackspaceFunc(ctx, userID, sessionID)
	}
	panic("MockQuizService.BackspaceFunc not implemented")
}
func (m *MockQuizService) Check(ctx context.Context, userID, sessionID string) (*dto.CheckAnswerResponse, error) {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, userID, sessionID)
	}
	panic("MockQuizService.CheckFunc not implemented")
}
func (m *MockQuizService) Advance(ctx context.Context, userID, sessionID string) (*dto.QuizStateResponse, error) {
	if m.AdvanceFunc != nil {
		return m.AdvanceFunc(ctx, userID, sessionID)
	}
	panic("MockQuizService.AdvanceFunc not implemented")
}
func (m *MockQuizService) Restart(ctx context.Context, userID, sessionID string) (*dto.QuizStateResponse, error) {
	if m.RestartFunc != nil {
		return m.RestartFunc(ctx, userID, sessionID)
	}
	panic("MockQuizService.RestartFunc not implemented")
}

func newTestApp(svc *MockQuizService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	// Stand-in for the auth middleware.
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDKey, "user1")
		return c.Next()
	})
	h := handler.NewQuizHandler(svc, validation.NewValidator())
	app.Post("/api/quiz/start", h.Start)
	app.Get("/api/quiz/:sessionId", h.GetState)
	app.Post("/api/quiz/:sessionId/select", h.Select)
	app.Post("/api/quiz/:sessionId/check", h.Check)
	return app
}

func TestQuizHandler_Start(t *testing.T) {
	const courseID = "01HZXW3T9G5D7N2Q8R4K6M1B0C"

	t.Run("Success", func(t *testing.T) {
		svc := &MockQuizService{
			StartFunc: func(ctx context.Context, userID, reqCourseID string) (*dto.QuizStateResponse, error) {
				assert.Equal(t, "user1", userID)
				assert.Equal(t, courseID, reqCourseID)
				return &dto.QuizStateResponse{
					SessionID:      "sess1",
					CourseID:       reqCourseID,
					TotalQuestions: 4,
					Question: &dto.QuestionView{
						Type:         "multiple-choice",
						QuestionText: "안녕",
						Options:      []string{"Hello", "Goodbye"},
					},
				}, nil
			},
		}
		app := newTestApp(svc)

		body, _ := json.Marshal(dto.StartQuizRequest{CourseID: courseID})
		req := httptest.NewRequest("POST", "/api/quiz/start", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var state dto.QuizStateResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
		assert.Equal(t, "sess1", state.SessionID)
		assert.Equal(t, 4, state.TotalQuestions)
	})

	t.Run("MissingCourseID", func(t *testing.T) {
		app := newTestApp(&MockQuizService{})

		body, _ := json.Marshal(dto.StartQuizRequest{})
		req := httptest.NewRequest("POST", "/api/quiz/start", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestQuizHandler_Select(t *testing.T) {
	svc := &MockQuizService{
		SelectFunc: func(ctx context.Context, userID, sessionID, option string) (*dto.QuizStateResponse, error) {
			assert.Equal(t, "sess1", sessionID)
			assert.Equal(t, "Hello", option)
			return &dto.QuizStateResponse{SessionID: sessionID, SelectedAnswer: option}, nil
		},
	}
	app := newTestApp(svc)

	body, _ := json.Marshal(dto.SelectAnswerRequest{Option: "Hello"})
	req := httptest.NewRequest("POST", "/api/quiz/sess1/select", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var state dto.QuizStateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.Equal(t, "Hello", state.SelectedAnswer)
}

func TestQuizHandler_Check(t *testing.T) {
	svc := &MockQuizService{
		CheckFunc: func(ctx context.Context, userID, sessionID string) (*dto.CheckAnswerResponse, error) {
			return &dto.CheckAnswerResponse{Correct: true, CorrectAnswer: "Hello", Score: 1}, nil
		},
	}
	app := newTestApp(svc)

	req := httptest.NewRequest("POST", "/api/quiz/sess1/check", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var checked dto.CheckAnswerResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&checked))
	assert.True(t, checked.Correct)
	assert.Equal(t, "Hello", checked.CorrectAnswer)
}
