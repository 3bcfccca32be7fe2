package models

import (
	"time"

	"hangeul-path/internal/domain"
)

// Comment is one embedded comment of a post document.
type Comment struct {
	ID         string    `bson:"id"`
	AuthorID   string    `bson:"authorId"`
	AuthorName string    `bson:"authorName"`
	Content    string    `bson:"content"`
	CreatedAt  time.Time `bson:"createdAt"`
}

// Post is a document in the posts collection. Likes is the set of user
// IDs that liked the post, maintained with $addToSet and $pull.
type Post struct {
	ID         string    `bson:"_id"`
	AuthorID   string    `bson:"authorId"`
	AuthorName string    `bson:"authorName"`
	Title      string    `bson:"title"`
	Content    string    `bson:"content"`
	Category   string    `bson:"category"`
	Likes      []string  `bson:"likes"`
	Comments   []Comment `bson:"comments"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

// ToDomain converts the stored post to its domain form.
func (p *Post) ToDomain() *domain.Post {
	likes := p.Likes
	if likes == nil {
		likes = []string{}
	}
	comments := make([]domain.Comment, len(p.Comments))
	for i, c := range p.Comments {
		comments[i] = domain.Comment{
			ID:         c.ID,
			AuthorID:   c.AuthorID,
			AuthorName: c.AuthorName,
			Content:    c.Content,
			CreatedAt:  c.CreatedAt,
		}
	}
	return &domain.Post{
		ID:         p.ID,
		AuthorID:   p.AuthorID,
		AuthorName: p.AuthorName,
		Title:      p.Title,
		Content:    p.Content,
		Category:   p.Category,
		Likes:      likes,
		Comments:   comments,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// PostFromDomain converts a domain post into its stored form.
func PostFromDomain(post *domain.Post) *Post {
	likes := post.Likes
	if likes == nil {
		likes = []string{}
	}
	comments := make([]Comment, len(post.Comments))
	for i, c := range post.Comments {
		comments[i] = Comment{
			ID:         c.ID,
			AuthorID:   c.AuthorID,
			AuthorName: c.AuthorName,
			Content:    c.Content,
			CreatedAt:  c.CreatedAt,
		}
	}
	return &Post{
		ID:         post.ID,
		AuthorID:   post.AuthorID,
		AuthorName: post.AuthorName,
		Title:      post.Title,
		Content:    post.Content,
		Category:   post.Category,
		Likes:      likes,
		Comments:   comments,
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
	}
}
