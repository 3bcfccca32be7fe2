package repository

import (
	"context"
	"errors"
	"fmt"

	"hangeul-path/internal/domain"
	"hangeul-path/internal/repository/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoCourseRepository implements domain.CourseRepository on the
// courses collection.
type mongoCourseRepository struct {
	col *mongo.Collection
}

// NewMongoCourseRepository creates a new course repository.
func NewMongoCourseRepository(db *mongo.Database) domain.CourseRepository {
	return &mongoCourseRepository{col: db.Collection("courses")}
}

func (r *mongoCourseRepository) GetCourseByID(ctx context.Context, id string) (*domain.Course, error) {
	var doc models.Course
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil // Not found, services decide how to report it
		}
		return nil, fmt.Errorf("failed to get course %s: %w", id, err)
	}
	return doc.ToDomain(), nil
}

func (r *mongoCourseRepository) ListCourses(ctx context.Context, category, level string) ([]*domain.Course, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	if level != "" {
		filter["level"] = level
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Course
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode courses: %w", err)
	}

	courses := make([]*domain.Course, len(docs))
	for i := range docs {
		courses[i] = docs[i].ToDomain()
	}
	return courses, nil
}

func (r *mongoCourseRepository) SaveCourse(ctx context.Context, course *domain.Course) error {
	doc := models.CourseFromDomain(course)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save course %s: %w", course.ID, err)
	}
	return nil
}
