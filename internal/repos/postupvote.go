package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyppolabs/hyppo-backend/internal/logger"
	"github.com/hyppolabs/hyppo-backend/internal/types"
)

type PostUpvoteRepo interface {
	Exists(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, vote *types.PostUpvote) error
	Delete(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) error
	CountForPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (int64, error)
}

type postUpvoteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostUpvoteRepo(db *gorm.DB, baseLog *logger.Logger) PostUpvoteRepo {
	repoLog := baseLog.With("repo", "PostUpvoteRepo")
	return &postUpvoteRepo{db: db, log: repoLog}
}

func (vr *postUpvoteRepo) Exists(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.PostUpvote{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (vr *postUpvoteRepo) Create(ctx context.Context, tx *gorm.DB, vote *types.PostUpvote) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	return transaction.WithContext(ctx).Create(vote).Error
}

func (vr *postUpvoteRepo) Delete(ctx context.Context, tx *gorm.DB, postID, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	return transaction.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&types.PostUpvote{}).Error
}

func (vr *postUpvoteRepo) CountForPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.PostUpvote{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
