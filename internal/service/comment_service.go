package service

import (
	"context"
	"strings"

	"mosaic/internal/models"
	"mosaic/internal/pagination"
	"mosaic/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	UserID uint
	PostID uint
	Text   string
}

type ListCommentsInput struct {
	PostID uint
	Page   string
}

// CommentPage is one page of comments for a post.
type CommentPage struct {
	Comments   []*models.Comment `json:"comments"`
	Page       pagination.Page   `json:"page"`
	TotalPages int               `json:"total_pages"`
	TotalItems int64             `json:"total_items"`
	PageSize   int               `json:"page_size"`
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, in.PostID, 0); err != nil {
		return nil, err
	}
	const maxCommentLen = 10000

	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment := &models.Comment{
		Text:   in.Text,
		UserID: in.UserID,
		PostID: in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns one page of a post's comments, oldest first. The page
// number is clamped the same way the feed clamps it.
func (s *CommentService) ListComments(ctx context.Context, in ListCommentsInput) (*CommentPage, error) {
	if _, err := s.postRepo.GetByID(ctx, in.PostID, 0); err != nil {
		return nil, err
	}

	total, err := s.commentRepo.CountByPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	page := pagination.New(total, pagination.DefaultPageSize, in.Page)
	comments, err := s.commentRepo.ListByPost(ctx, in.PostID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}

	return &CommentPage{
		Comments:   comments,
		Page:       page,
		TotalPages: page.TotalPages,
		TotalItems: total,
		PageSize:   page.Size,
	}, nil
}
