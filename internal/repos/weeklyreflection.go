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

type WeeklyReflectionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, reflection *types.WeeklyReflection) (*types.WeeklyReflection, error)
	GetByID(ctx context.Context, tx *gorm.DB, reflectionID uuid.UUID) (*types.WeeklyReflection, error)
	ListForWeeklyPost(ctx context.Context, tx *gorm.DB, weeklyPostID uuid.UUID) ([]*types.WeeklyReflection, error)
}

type weeklyReflectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeeklyReflectionRepo(db *gorm.DB, baseLog *logger.Logger) WeeklyReflectionRepo {
	repoLog := baseLog.With("repo", "WeeklyReflectionRepo")
	return &weeklyReflectionRepo{db: db, log: repoLog}
}

func (rr *weeklyReflectionRepo) Create(ctx context.Context, tx *gorm.DB, reflection *types.WeeklyReflection) (*types.WeeklyReflection, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if err := transaction.WithContext(ctx).Create(reflection).Error; err != nil {
		return nil, err
	}
	return reflection, nil
}

func (rr *weeklyReflectionRepo) GetByID(ctx context.Context, tx *gorm.DB, reflectionID uuid.UUID) (*types.WeeklyReflection, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.WeeklyReflection
	if err := transaction.WithContext(ctx).
		Preload("Author").
		Where("id = ?", reflectionID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (rr *weeklyReflectionRepo) ListForWeeklyPost(ctx context.Context, tx *gorm.DB, weeklyPostID uuid.UUID) ([]*types.WeeklyReflection, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.WeeklyReflection
	if err := transaction.WithContext(ctx).
		Preload("Author").
		Where("weekly_post_id = ?", weeklyPostID).
		Order("created_at desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
