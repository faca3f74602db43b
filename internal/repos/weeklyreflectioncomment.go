package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyppolabs/hyppo-backend/internal/logger"
	"github.com/hyppolabs/hyppo-backend/internal/types"
)

type WeeklyReflectionCommentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, comment *types.WeeklyReflectionComment) (*types.WeeklyReflectionComment, error)
	ListForReflection(ctx context.Context, tx *gorm.DB, reflectionID uuid.UUID) ([]*types.WeeklyReflectionComment, error)
}

type weeklyReflectionCommentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeeklyReflectionCommentRepo(db *gorm.DB, baseLog *logger.Logger) WeeklyReflectionCommentRepo {
	repoLog := baseLog.With("repo", "WeeklyReflectionCommentRepo")
	return &weeklyReflectionCommentRepo{db: db, log: repoLog}
}

func (cr *weeklyReflectionCommentRepo) Create(ctx context.Context, tx *gorm.DB, comment *types.WeeklyReflectionComment) (*types.WeeklyReflectionComment, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if err := transaction.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (cr *weeklyReflectionCommentRepo) ListForReflection(ctx context.Context, tx *gorm.DB, reflectionID uuid.UUID) ([]*types.WeeklyReflectionComment, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.WeeklyReflectionComment
	if err := transaction.WithContext(ctx).
		Preload("Author").
		Where("reflection_id = ?", reflectionID).
		Order("created_at asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
