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

type WeeklyPostRepo interface {
	Create(ctx context.Context, tx *gorm.DB, post *types.WeeklyPost) (*types.WeeklyPost, error)
	GetByID(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (*types.WeeklyPost, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.WeeklyPost, error)
	ExistsForWeek(ctx context.Context, tx *gorm.DB, year, weekNumber int) (bool, error)
}

type weeklyPostRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeeklyPostRepo(db *gorm.DB, baseLog *logger.Logger) WeeklyPostRepo {
	repoLog := baseLog.With("repo", "WeeklyPostRepo")
	return &weeklyPostRepo{db: db, log: repoLog}
}

func (wr *weeklyPostRepo) Create(ctx context.Context, tx *gorm.DB, post *types.WeeklyPost) (*types.WeeklyPost, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	if err := transaction.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (wr *weeklyPostRepo) GetByID(ctx context.Context, tx *gorm.DB, postID uuid.UUID) (*types.WeeklyPost, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var result types.WeeklyPost
	if err := transaction.WithContext(ctx).
		Where("id = ?", postID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (wr *weeklyPostRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.WeeklyPost, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var results []*types.WeeklyPost
	if err := transaction.WithContext(ctx).
		Order("year desc, week_number desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (wr *weeklyPostRepo) ExistsForWeek(ctx context.Context, tx *gorm.DB, year, weekNumber int) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.WeeklyPost{}).
		Where("year = ? AND week_number = ?", year, weekNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
