package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"hangeul-path/internal/config"
	"hangeul-path/internal/domain"
	"hangeul-path/internal/logger"
	"hangeul-path/internal/repository"
	"hangeul-path/internal/util"

	"go.uber.org/zap"
)

const seedFilePath = "configs/seed_data/initial_courses.json"

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial course seeding...")
	mongoClient, db, err := repository.ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())

	byteValue, err := os.ReadFile(seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", seedFilePath), zap.Error(err))
	}

	var courses []domain.Course
	if err := json.Unmarshal(byteValue, &courses); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Loaded seed data", zap.Int("courses", len(courses)))

	courseRepository := repository.NewMongoCourseRepository(db)
	for i := range courses {
		course := &courses[i]
		if course.ID == "" {
			course.ID = util.NewULID()
		}
		if course.LessonsCount == 0 {
			course.LessonsCount = len(course.Lessons)
		}
		if err := courseRepository.SaveCourse(ctx, course); err != nil {
			log.Error("Failed to save course", zap.String("title", course.Title), zap.Error(err))
			continue
		}
		log.Info("Seeded course",
			zap.String("id", course.ID),
			zap.String("title", course.Title),
			zap.Int("lessons", course.LessonsCount))
	}
	log.Info("Course seeding completed.")
}
