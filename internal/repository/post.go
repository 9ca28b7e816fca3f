package repository

import (
	"context"
	"errors"
	"strings"

	"mosaic/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostQuery carries feed filters. OrderBy values outside the allowed column
// set are ignored rather than rejected.
type PostQuery struct {
	Search   string
	OrderBy  string
	Limit    int
	Offset   int
	ViewerID uint
}

// feedOrderColumns maps client-supplied order keys to actual post columns.
// Anything not listed here falls back to the default ordering.
var feedOrderColumns = map[string]string{
	"id":         "posts.id",
	"title":      "posts.title",
	"text":       "posts.text",
	"image":      "posts.image_url",
	"image_url":  "posts.image_url",
	"owner":      "posts.user_id",
	"user_id":    "posts.user_id",
	"created_at": "posts.created_at",
	"updated_at": "posts.updated_at",
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error)
	List(ctx context.Context, q PostQuery) ([]*models.Post, error)
	Count(ctx context.Context, search string) (int64, error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), viewerID).
		Preload("User").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, q PostQuery) ([]*models.Post, error) {
	var posts []*models.Post
	base := r.applyPostDetails(r.db.WithContext(ctx), q.ViewerID).
		Preload("User")
	base = applySearch(base, q.Search)
	err := applyOrder(base, q.OrderBy).
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context, search string) (int64, error) {
	var count int64
	base := r.db.WithContext(ctx).Model(&models.Post{})
	base = applySearch(base, search)
	if err := base.Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// applySearch adds a case-insensitive title filter. LOWER/LIKE is used instead
// of ILIKE so the same query runs on both PostgreSQL and SQLite.
func applySearch(db *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return db
	}
	like := "%" + strings.ToLower(search) + "%"
	return db.Where("LOWER(posts.title) LIKE ?", like)
}

// applyOrder appends the ORDER BY clause. Unrecognized keys are silently
// dropped; the feed always carries a stable id tiebreaker.
func applyOrder(db *gorm.DB, orderBy string) *gorm.DB {
	key := orderBy
	desc := false
	if strings.HasPrefix(key, "-") {
		desc = true
		key = key[1:]
	}
	column, ok := feedOrderColumns[key]
	if !ok {
		return db.Order("posts.id ASC")
	}
	if desc {
		return db.Order(column + " DESC").Order("posts.id ASC")
	}
	return db.Order(column + " ASC").Order("posts.id ASC")
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count"

	if viewerID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked", viewerID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	// ON CONFLICT DO NOTHING makes a repeated like a no-op instead of a
	// duplicate key error, and is atomic under concurrent requests.
	like := models.Like{UserID: userID, PostID: postID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).
		Create(&like).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	// Hard delete the like record (not soft delete)
	err := r.db.WithContext(ctx).
		Unscoped().
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
