package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyppolabs/hyppo-backend/internal/logger"
	pkgerrors "github.com/hyppolabs/hyppo-backend/internal/pkg/errors"
	"github.com/hyppolabs/hyppo-backend/internal/types"
)

// PostSort selects the feed ordering.
type PostSort string

const (
	PostSortRecent  PostSort = "recent"
	PostSortPopular PostSort = "popular"
)

type PostRepo interface {
	Create(ctx context.Context, tx *gorm.DB, posts []*types.Post) ([]*types.Post, error)
	GetByID(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (*types.Post, error)
	ListPage(ctx context.Context, tx *gorm.DB, sort PostSort, offset, limit int) ([]*types.Post, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Post, error)
	SetUpvoteCount(ctx context.Context, tx *gorm.DB, postID uuid.UUID, count int) error
	Delete(ctx context.Context, tx *gorm.DB, postID uuid.UUID) error
}

type postRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostRepo(db *gorm.DB, baseLog *logger.Logger) PostRepo {
	repoLog := baseLog.With("repo", "PostRepo")
	return &postRepo{db: db, log: repoLog}
}

func (pr *postRepo) Create(ctx context.Context, tx *gorm.DB, posts []*types.Post) ([]*types.Post, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(posts) == 0 {
		return []*types.Post{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (pr *postRepo) GetByID(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (*types.Post, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Post
	if err := transaction.WithContext(ctx).
		Preload("Author").
		Where("id = ?", postID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (pr *postRepo) ListPage(ctx context.Context, tx *gorm.DB, sort PostSort, offset, limit int) ([]*types.Post, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	order := "created_at desc"
	if sort == PostSortPopular {
		order = "upvote_count desc"
	}

	var results []*types.Post
	if err := transaction.WithContext(ctx).
		Preload("Author").
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *postRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Post, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Post
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *postRepo) SetUpvoteCount(ctx context.Context, tx *gorm.DB, postID uuid.UUID, count int) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if count < 0 {
		count = 0
	}

	return transaction.WithContext(ctx).
		Model(&types.Post{}).
		Where("id = ?", postID).
		Update("upvote_count", count).Error
}

func (pr *postRepo) Delete(ctx context.Context, tx *gorm.DB, postID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", postID).
		Delete(&types.Post{}).Error
}
