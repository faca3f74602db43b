package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyppolabs/hyppo-backend/internal/logger"
	"github.com/hyppolabs/hyppo-backend/internal/types"
)

type PostCommentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, comment *types.PostComment) (*types.PostComment, error)
	ListForPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) ([]*types.PostComment, error)
}

type postCommentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostCommentRepo(db *gorm.DB, baseLog *logger.Logger) PostCommentRepo {
	repoLog := baseLog.With("repo", "PostCommentRepo")
	return &postCommentRepo{db: db, log: repoLog}
}

func (cr *postCommentRepo) Create(ctx context.Context, tx *gorm.DB, comment *types.PostComment) (*types.PostComment, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if err := transaction.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (cr *postCommentRepo) ListForPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) ([]*types.PostComment, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.PostComment
	if err := transaction.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
