package service

import (
	"context"
	"strings"

	"mosaic/internal/models"
	"mosaic/internal/pagination"
	"mosaic/internal/repository"
)

type PostService struct {
	postRepo       repository.PostRepository
	placeholderURL string
}

type CreatePostInput struct {
	UserID   uint
	Title    string
	Text     string
	ImageURL string
}

// FeedInput carries the raw feed query parameters. Page stays a string so
// the clamping rules can see non-numeric input.
type FeedInput struct {
	ViewerID uint
	Search   string
	OrderBy  string
	Page     string
}

// FeedPage is one page of the home feed together with pagination metadata.
type FeedPage struct {
	Posts      []*models.Post  `json:"posts"`
	Page       pagination.Page `json:"page"`
	TotalPages int             `json:"total_pages"`
	TotalItems int64           `json:"total_items"`
	PageSize   int             `json:"page_size"`
}

func NewPostService(postRepo repository.PostRepository, placeholderURL string) *PostService {
	return &PostService{
		postRepo:       postRepo,
		placeholderURL: placeholderURL,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const maxTitleLen = 250

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 250 characters)")
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}

	imageURL := strings.TrimSpace(in.ImageURL)
	if imageURL == "" {
		imageURL = s.placeholderURL
	}

	post := &models.Post{
		Title:    title,
		Text:     in.Text,
		ImageURL: imageURL,
		UserID:   in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// Feed returns one page of posts. The page number is clamped into the valid
// range, so out-of-range or garbage page values never fail the request.
func (s *PostService) Feed(ctx context.Context, in FeedInput) (*FeedPage, error) {
	total, err := s.postRepo.Count(ctx, in.Search)
	if err != nil {
		return nil, err
	}

	page := pagination.New(total, pagination.DefaultPageSize, in.Page)
	posts, err := s.postRepo.List(ctx, repository.PostQuery{
		Search:   in.Search,
		OrderBy:  in.OrderBy,
		Limit:    page.Size,
		Offset:   page.Offset(),
		ViewerID: in.ViewerID,
	})
	if err != nil {
		return nil, err
	}

	return &FeedPage{
		Posts:      posts,
		Page:       page,
		TotalPages: page.TotalPages,
		TotalItems: total,
		PageSize:   page.Size,
	}, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, viewerID)
}

// LikePost records a like. Liking an already liked post is a no-op success.
func (s *PostService) LikePost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	if err := s.postRepo.Like(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID, userID)
}

// UnlikePost removes a like. Unliking a post that was never liked is a no-op
// success.
func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID, userID)
}

func (s *PostService) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.postRepo.IsLiked(ctx, userID, postID)
}
