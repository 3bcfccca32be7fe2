package domain

import "time"

// Comment is one reply attached to a community post. Threading is a UI
// concern; storage is a flat array in document order.
type Comment struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// Post represents a community post.
type Post struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Category   string    `json:"category"`
	Likes      []string  `json:"likes"`
	Comments   []Comment `json:"comments"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Validate validates the post.
func (p *Post) Validate() error {
	if p.AuthorID == "" {
		return NewValidationFailure("author ID is required")
	}
	if p.Title == "" {
		return NewValidationFailure("title is required")
	}
	if p.Content == "" {
		return NewValidationFailure("content is required")
	}
	return nil
}
