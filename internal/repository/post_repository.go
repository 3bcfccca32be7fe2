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

// mongoPostRepository implements domain.PostRepository on the posts
// collection.
type mongoPostRepository struct {
	col *mongo.Collection
}

// NewMongoPostRepository creates a new post repository.
func NewMongoPostRepository(db *mongo.Database) domain.PostRepository {
	return &mongoPostRepository{col: db.Collection("posts")}
}

func (r *mongoPostRepository) CreatePost(ctx context.Context, post *domain.Post) error {
	_, err := r.col.InsertOne(ctx, models.PostFromDomain(post))
	if err != nil {
		return fmt.Errorf("failed to create post %s: %w", post.ID, err)
	}
	return nil
}

func (r *mongoPostRepository) GetPostByID(ctx context.Context, id string) (*domain.Post, error) {
	var doc models.Post
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post %s: %w", id, err)
	}
	return doc.ToDomain(), nil
}

func (r *mongoPostRepository) ListPosts(ctx context.Context, category string, limit int) ([]*domain.Post, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Post
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}

	posts := make([]*domain.Post, len(docs))
	for i := range docs {
		posts[i] = docs[i].ToDomain()
	}
	return posts, nil
}

func (r *mongoPostRepository) updateOne(ctx context.Context, postID string, update bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": postID}, update)
	if err != nil {
		return fmt.Errorf("failed to update post %s: %w", postID, err)
	}
	if res.MatchedCount == 0 {
		return domain.NewPostNotFoundError(postID)
	}
	return nil
}

func (r *mongoPostRepository) UpdatePost(ctx context.Context, id, title, content string) error {
	return r.updateOne(ctx, id, bson.M{
		"$set": bson.M{
			"title":     title,
			"content":   content,
			"updatedAt": time.Now(),
		},
	})
}

func (r *mongoPostRepository) DeletePost(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete post %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return domain.NewPostNotFoundError(id)
	}
	return nil
}

func (r *mongoPostRepository) SetLike(ctx context.Context, postID, userID string, liked bool) error {
	var update bson.M
	if liked {
		update = bson.M{"$addToSet": bson.M{"likes": userID}}
	} else {
		update = bson.M{"$pull": bson.M{"likes": userID}}
	}
	return r.updateOne(ctx, postID, update)
}

func (r *mongoPostRepository) AddComment(ctx context.Context, postID string, comment domain.Comment) error {
	doc := models.Comment{
		ID:         comment.ID,
		AuthorID:   comment.AuthorID,
		AuthorName: comment.AuthorName,
		Content:    comment.Content,
		CreatedAt:  comment.CreatedAt,
	}
	return r.updateOne(ctx, postID, bson.M{
		"$push": bson.M{"comments": doc},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
}
