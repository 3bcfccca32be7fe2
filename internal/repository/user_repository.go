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

// mongoUserRepository implements domain.UserRepository on the users
// collection.
type mongoUserRepository struct {
	col *mongo.Collection
}

// NewMongoUserRepository creates a new user repository.
func NewMongoUserRepository(db *mongo.Database) domain.UserRepository {
	return &mongoUserRepository{col: db.Collection("users")}
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.UserProfile, error) {
	var doc models.User
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return doc.ToDomain(), nil
}

func (r *mongoUserRepository) GetProfileByID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return r.findOne(ctx, bson.M{"_id": userID})
}

func (r *mongoUserRepository) GetProfileByGoogleID(ctx context.Context, googleID string) (*domain.UserProfile, error) {
	return r.findOne(ctx, bson.M{"googleId": googleID})
}

func (r *mongoUserRepository) CreateProfile(ctx context.Context, profile *domain.UserProfile) error {
	_, err := r.col.InsertOne(ctx, models.UserFromDomain(profile))
	if err != nil {
		return fmt.Errorf("failed to create user %s: %w", profile.ID, err)
	}
	return nil
}

func (r *mongoUserRepository) updateOne(ctx context.Context, userID string, update bson.M) error {
	set, _ := update["$set"].(bson.M)
	if set == nil {
		set = bson.M{}
		update["$set"] = set
	}
	set["updatedAt"] = time.Now()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("user not found with ID: %s", userID))
	}
	return nil
}

func (r *mongoUserRepository) UpdateAccountInfo(ctx context.Context, userID, name, pictureURL string) error {
	return r.updateOne(ctx, userID, bson.M{
		"$set": bson.M{"name": name, "pictureUrl": pictureURL},
	})
}

func (r *mongoUserRepository) UpdateLevel(ctx context.Context, userID, level string) error {
	return r.updateOne(ctx, userID, bson.M{
		"$set": bson.M{"currentLevel": level},
	})
}

func (r *mongoUserRepository) CommitStudySession(ctx context.Context, userID string, seconds int64, streak *domain.StreakUpdate) error {
	inc := bson.M{"totalStudySeconds": seconds}
	set := bson.M{}
	if streak != nil {
		set["lastActivityDate"] = streak.Today
		if streak.Continue {
			inc["streak"] = 1
		} else {
			set["streak"] = 1
		}
	}
	return r.updateOne(ctx, userID, bson.M{"$inc": inc, "$set": set})
}

func (r *mongoUserRepository) SetTotalLessonsCompleted(ctx context.Context, userID string, total int) error {
	return r.updateOne(ctx, userID, bson.M{
		"$set": bson.M{"totalLessonsCompleted": total},
	})
}

func (r *mongoUserRepository) IncrementCompletedCourses(ctx context.Context, userID string) error {
	return r.updateOne(ctx, userID, bson.M{
		"$inc": bson.M{"completedCoursesCount": 1},
	})
}

func (r *mongoUserRepository) ListTopByCompletedCourses(ctx context.Context, limit int) ([]*domain.UserProfile, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "completedCoursesCount", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list top users: %w", err)
	}
	defer cursor.Close(ctx)

	profiles := []*domain.UserProfile{}
	for cursor.Next(ctx) {
		var doc models.User
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		profiles = append(profiles, doc.ToDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return profiles, nil
}
