package service

import (
	"context"
	"time"

	"hangeul-path/internal/domain"
	"hangeul-path/internal/dto"
	"hangeul-path/internal/util"
)

// CommunityService defines the interface for community posts.
type CommunityService interface {
	CreatePost(ctx context.Context, userID, userName string, req dto.CreatePostRequest) (*dto.PostResponse, error)
	GetPost(ctx context.Context, postID, viewerID string) (*dto.PostResponse, error)
	ListPosts(ctx context.Context, category, viewerID string, limit int) (*dto.PostListResponse, error)

	// UpdatePost edits a post; only its author may do so.
	UpdatePost(ctx context.Context, postID, userID string, req dto.UpdatePostRequest) (*dto.PostResponse, error)

	// DeletePost removes a post; only its author may do so.
	DeletePost(ctx context.Context, postID, userID string) error

	// SetLike adds or removes the caller from the post's like set.
	SetLike(ctx context.Context, postID, userID string, liked bool) (*dto.PostResponse, error)

	AddComment(ctx context.Context, postID, userID, userName string, req dto.AddCommentRequest) (*dto.PostResponse, error)
}

type communityServiceImpl struct {
	postRepo domain.PostRepository
}

// NewCommunityService creates a new instance of CommunityService.
func NewCommunityService(postRepo domain.PostRepository) CommunityService {
	return &communityServiceImpl{postRepo: postRepo}
}

func (s *communityServiceImpl) CreatePost(ctx context.Context, userID, userName string, req dto.CreatePostRequest) (*dto.PostResponse, error) {
	now := time.Now()
	post := &domain.Post{
		ID:         util.NewULID(),
		AuthorID:   userID,
		AuthorName: userName,
		Title:      req.Title,
		Content:    req.Content,
		Category:   req.Category,
		Likes:      []string{},
		Comments:   []domain.Comment{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return toPostResponse(post, userID), nil
}

func (s *communityServiceImpl) getPost(ctx context.Context, postID string) (*domain.Post, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.NewPostNotFoundError(postID)
	}
	return post, nil
}

func (s *communityServiceImpl) GetPost(ctx context.Context, postID, viewerID string) (*dto.PostResponse, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return toPostResponse(post, viewerID), nil
}

func (s *communityServiceImpl) ListPosts(ctx context.Context, category, viewerID string, limit int) (*dto.PostListResponse, error) {
	posts, err := s.postRepo.ListPosts(ctx, category, limit)
	if err != nil {
		return nil, err
	}
	response := &dto.PostListResponse{Posts: make([]dto.PostResponse, len(posts))}
	for i, post := range posts {
		response.Posts[i] = *toPostResponse(post, viewerID)
	}
	return response, nil
}

func (s *communityServiceImpl) UpdatePost(ctx context.Context, postID, userID string, req dto.UpdatePostRequest) (*dto.PostResponse, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, domain.NewForbiddenError("only the author can edit this post")
	}
	if req.Title == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("title")}
	}
	if req.Content == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("content")}
	}
	if err := s.postRepo.UpdatePost(ctx, postID, req.Title, req.Content); err != nil {
		return nil, err
	}
	post.Title = req.Title
	post.Content = req.Content
	post.UpdatedAt = time.Now()
	return toPostResponse(post, userID), nil
}

func (s *communityServiceImpl) DeletePost(ctx context.Context, postID, userID string) error {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return domain.NewForbiddenError("only the author can delete this post")
	}
	return s.postRepo.DeletePost(ctx, postID)
}

func (s *communityServiceImpl) SetLike(ctx context.Context, postID, userID string, liked bool) (*dto.PostResponse, error) {
	if err := s.postRepo.SetLike(ctx, postID, userID, liked); err != nil {
		return nil, err
	}
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return toPostResponse(post, userID), nil
}

func (s *communityServiceImpl) AddComment(ctx context.Context, postID, userID, userName string, req dto.AddCommentRequest) (*dto.PostResponse, error) {
	if req.Content == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("content")}
	}
	comment := domain.Comment{
		ID:         util.NewULID(),
		AuthorID:   userID,
		AuthorName: userName,
		Content:    req.Content,
		CreatedAt:  time.Now(),
	}
	if err := s.postRepo.AddComment(ctx, postID, comment); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, postID, userID)
}

func toPostResponse(post *domain.Post, viewerID string) *dto.PostResponse {
	liked := false
	for _, id := range post.Likes {
		if id == viewerID && viewerID != "" {
			liked = true
			break
		}
	}
	comments := make([]dto.CommentResponse, len(post.Comments))
	for i, c := range post.Comments {
		comments[i] = dto.CommentResponse{
			ID:         c.ID,
			AuthorID:   c.AuthorID,
			AuthorName: c.AuthorName,
			Content:    c.Content,
			CreatedAt:  c.CreatedAt,
		}
	}
	return &dto.PostResponse{
		ID:         post.ID,
		AuthorID:   post.AuthorID,
		AuthorName: post.AuthorName,
		Title:      post.Title,
		Content:    post.Content,
		Category:   post.Category,
		LikeCount:  len(post.Likes),
		Liked:      liked,
		Comments:   comments,
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
	}
}
