package service

import (
	"context"
	"fmt"

	"community_hub/internal/common"
	"community_hub/internal/domain/model"
	"community_hub/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type PostService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

func (s *PostService) CreatePost(ctx context.Context, userID string, req CreatePostRequest) (*model.Post, error) {
	if req.Title == "" || req.Content == "" {
		return nil, common.Errorf("title and content are required: %w", common.ErrValidation)
	}

	post := &model.Post{
		ID:       uuid.NewString(),
		AuthorID: userID,
		Title:    req.Title,
		Slug:     slug.Make(req.Title),
		Content:  req.Content,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

func (s *PostService) GetPostBySlug(ctx context.Context, postSlug string) (*model.Post, error) {
	return s.postRepo.FindBySlug(ctx, postSlug)
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]*model.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

func (s *PostService) UpdatePost(ctx context.Context, userID, postID string, req UpdatePostRequest) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err // not-found resolves before ownership
	}
	if err := requireOwner(post.AuthorID, userID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
		post.Slug = slug.Make(*req.Title)
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if post.Title == "" || post.Content == "" {
		return nil, common.Errorf("title and content must not be empty: %w", common.ErrValidation)
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, userID, role, postID string) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(post.AuthorID, userID, role); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}
