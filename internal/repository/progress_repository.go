package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hangeul-path/internal/domain"
	"hangeul-path/internal/repository/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoProgressRepository implements domain.ProgressRepository on the
// user_progress collection. Every write is an upsert merge keyed by the
// (userId, courseId) pair, so partial updates never clobber fields
// written by other operations.
type mongoProgressRepository struct {
	col *mongo.Collection
}

// NewMongoProgressRepository creates a new progress repository.
func NewMongoProgressRepository(db *mongo.Database) domain.ProgressRepository {
	return &mongoProgressRepository{col: db.Collection("user_progress")}
}

func progressKey(userID, courseID string) bson.M {
	return bson.M{"userId": userID, "courseId": courseID}
}

func (r *mongoProgressRepository) GetProgress(ctx context.Context, userID, courseID string) (*domain.CourseProgress, error) {
	var doc models.UserProgress
	err := r.col.FindOne(ctx, progressKey(userID, courseID)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get progress for user %s course %s: %w", userID, courseID, err)
	}
	return doc.ToDomain(), nil
}

func (r *mongoProgressRepository) EnsureProgress(ctx context.Context, userID, courseID string) error {
	update := bson.M{
		"$setOnInsert": bson.M{
			"progress":         float64(0),
			"completedLessons": []int{},
			"isCompleted":      false,
		},
		"$set": bson.M{"lastAccessed": time.Now()},
	}
	_, err := r.col.UpdateOne(ctx, progressKey(userID, courseID), update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to ensure progress for user %s course %s: %w", userID, courseID, err)
	}
	return nil
}

func (r *mongoProgressRepository) MergeLessonCompletion(ctx context.Context, userID, courseID string, lessonNumber int, progress float64) error {
	update := bson.M{
		"$addToSet": bson.M{"completedLessons": lessonNumber},
		"$set": bson.M{
			"lastCompletedLesson": lessonNumber,
			"progress":            progress,
			"lastAccessed":        time.Now(),
		},
		"$setOnInsert": bson.M{"isCompleted": false},
	}
	_, err := r.col.UpdateOne(ctx, progressKey(userID, courseID), update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to merge lesson completion for user %s course %s: %w", userID, courseID, err)
	}
	return nil
}

func (r *mongoProgressRepository) MarkCourseCompleted(ctx context.Context, userID, courseID string) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"isCompleted":  true,
			"progress":     float64(100),
			"completedAt":  now,
			"lastAccessed": now,
		},
		"$setOnInsert": bson.M{"completedLessons": []int{}},
	}
	_, err := r.col.UpdateOne(ctx, progressKey(userID, courseID), update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to mark course completed for user %s course %s: %w", userID, courseID, err)
	}
	return nil
}

func (r *mongoProgressRepository) ListProgress(ctx context.Context, userID string) ([]*domain.EnrolledCourseProgress, error) {
	cursor, err := r.col.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "lastAccessed", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list progress for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var docs []models.UserProgress
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode progress for user %s: %w", userID, err)
	}

	enrollments := make([]*domain.EnrolledCourseProgress, len(docs))
	for i := range docs {
		enrollments[i] = &domain.EnrolledCourseProgress{
			CourseID:       docs[i].CourseID,
			CourseProgress: *docs[i].ToDomain(),
		}
	}
	return enrollments, nil
}
