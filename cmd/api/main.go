// @title Hangeul Path API
// @version 1.0
// @description Korean learning API: courses, quizzes, progress and community.
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"hangeul-path/internal/adapter"
	"hangeul-path/internal/adapter/tts"
	"hangeul-path/internal/cache"
	"hangeul-path/internal/config"
	"hangeul-path/internal/domain"
	"hangeul-path/internal/handler"
	"hangeul-path/internal/logger"
	"hangeul-path/internal/middleware"
	"hangeul-path/internal/quizgen"
	"hangeul-path/internal/repository"
	"hangeul-path/internal/service"
	"hangeul-path/internal/validation"

	_ "hangeul-path/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)
		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// Connect to MongoDB
	mongoClient, db, err := repository.ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())
	appLogger.Info("Successfully connected to MongoDB", zap.String("database", cfg.Mongo.Database))

	// Initialize Redis client
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	appLogger.Info("Successfully connected to Redis")

	// Initialize repositories
	courseRepository := repository.NewMongoCourseRepository(db)
	progressRepository := repository.NewMongoProgressRepository(db)
	userRepository := repository.NewMongoUserRepository(db)
	postRepository := repository.NewMongoPostRepository(db)

	// Initialize speech synthesis
	var speaker domain.Speaker = tts.NoopSpeaker{}
	if cfg.TTS.Enabled {
		googleSpeaker, err := tts.NewGoogleSpeaker(ctx)
		if err != nil {
			appLogger.Fatal("Failed to create TTS client", zap.Error(err))
		}
		defer googleSpeaker.Close()
		speaker = googleSpeaker
		appLogger.Info("Google TTS initialized", zap.String("language", cfg.TTS.LanguageCode))
	}

	// Initialize services
	generator := quizgen.NewGenerator(quizgen.NewLockedRand(rand.New(rand.NewSource(time.Now().UnixNano()))))
	levelService := service.NewLevelService(userRepository, courseRepository, progressRepository)
	courseService := service.NewCourseService(courseRepository, progressRepository, cacheAdapter)
	progressService := service.NewProgressService(courseRepository, progressRepository, levelService)
	studyService := service.NewStudyService(userRepository, cacheAdapter)
	quizService := service.NewQuizService(courseRepository, progressRepository, userRepository, levelService, generator, cacheAdapter)
	userService := service.NewUserService(userRepository, courseRepository, progressRepository, levelService)
	communityService := service.NewCommunityService(postRepository)
	speechService := service.NewSpeechService(speaker, cfg.TTS.LanguageCode)

	authService, err := service.NewAuthService(userRepository, cfg.Google, cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	// Initialize handlers
	validator := validation.NewValidator()
	courseHandler := handler.NewCourseHandler(courseService, progressService)
	quizHandler := handler.NewQuizHandler(quizService, validator)
	userHandler := handler.NewUserHandler(userService)
	studyHandler := handler.NewStudyHandler(studyService)
	postHandler := handler.NewPostHandler(communityService, validator)
	speechHandler := handler.NewSpeechHandler(speechService, validator)
	authHandler := handler.NewAuthHandler(authService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.Refresh)

	courseGroup := apiGroup.Group("/courses")
	courseGroup.Get("/", courseHandler.ListCourses)
	courseGroup.Get("/:id", middleware.OptionalAuth(authService), courseHandler.GetCourse)
	courseGroup.Post("/:id/enroll", middleware.Protected(authService), courseHandler.Enroll)
	courseGroup.Get("/:id/progress", middleware.Protected(authService), courseHandler.GetProgress)
	courseGroup.Post("/:id/lessons/:lessonNumber/complete", middleware.Protected(authService), courseHandler.CompleteLesson)

	quizGroup := apiGroup.Group("/quiz", middleware.Protected(authService))
	quizGroup.Post("/start", quizHandler.Start)
	quizGroup.Get("/:sessionId", quizHandler.GetState)
	quizGroup.Post("/:sessionId/select", quizHandler.Select)
	quizGroup.Post("/:sessionId/chars", quizHandler.PlaceChar)
	quizGroup.Post("/:sessionId/chars/remove", quizHandler.RemoveChar)
	quizGroup.Post("/:sessionId/backspace", quizHandler.Backspace)
	quizGroup.Post("/:sessionId/check", quizHandler.Check)
	quizGroup.Post("/:sessionId/advance", quizHandler.Advance)
	quizGroup.Post("/:sessionId/restart", quizHandler.Restart)

	userGroup := apiGroup.Group("/users", middleware.Protected(authService))
	userGroup.Get("/me", userHandler.GetMe)
	userGroup.Patch("/me", userHandler.UpdateMe)
	userGroup.Get("/me/dashboard", userHandler.GetDashboard)
	userGroup.Get("/ranking", userHandler.GetRanking)

	studyGroup := apiGroup.Group("/study", middleware.Protected(authService))
	studyGroup.Post("/sessions", studyHandler.Begin)
	studyGroup.Post("/sessions/end", studyHandler.End)

	postGroup := apiGroup.Group("/posts")
	postGroup.Get("/", middleware.OptionalAuth(authService), postHandler.List)
	postGroup.Get("/:id", middleware.OptionalAuth(authService), postHandler.Get)
	postGroup.Post("/", middleware.Protected(authService), postHandler.Create)
	postGroup.Put("/:id", middleware.Protected(authService), postHandler.Update)
	postGroup.Delete("/:id", middleware.Protected(authService), postHandler.Delete)
	postGroup.Post("/:id/like", middleware.Protected(authService), postHandler.Like)
	postGroup.Delete("/:id/like", middleware.Protected(authService), postHandler.Unlike)
	postGroup.Post("/:id/comments", middleware.Protected(authService), postHandler.Comment)

	apiGroup.Post("/tts", middleware.Protected(authService), speechHandler.Synthesize)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
