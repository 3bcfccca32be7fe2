package dto

import "time"

// CreatePostRequest creates a community post.
type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// UpdatePostRequest edits a post owned by the caller.
type UpdatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// AddCommentRequest appends a comment to a post.
type AddCommentRequest struct {
	Content string `json:"content"`
}

// CommentResponse is one comment of a post.
type CommentResponse struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// PostResponse is the full post view. Liked reflects the caller when
// authenticated.
type PostResponse struct {
	ID         string            `json:"id"`
	AuthorID   string            `json:"author_id"`
	AuthorName string            `json:"author_name"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Category   string            `json:"category"`
	LikeCount  int               `json:"like_count"`
	Liked      bool              `json:"liked"`
	Comments   []CommentResponse `json:"comments"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// PostListResponse wraps the community feed.
type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
}
