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

type DebateArgumentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, argument *types.DebateArgument) (*types.DebateArgument, error)
	GetByID(ctx context.Context, tx *gorm.DB, argumentID uuid.UUID) (*types.DebateArgument, error)
	ListForQuestion(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) ([]*types.DebateArgument, error)
	// CountByStance aggregates the for/against tallies for one question in a
	// single grouped query.
	CountByStance(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (types.StanceCounts, error)
}

type debateArgumentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDebateArgumentRepo(db *gorm.DB, baseLog *logger.Logger) DebateArgumentRepo {
	repoLog := baseLog.With("repo", "DebateArgumentRepo")
	return &debateArgumentRepo{db: db, log: repoLog}
}

func (ar *debateArgumentRepo) Create(ctx context.Context, tx *gorm.DB, argument *types.DebateArgument) (*types.DebateArgument, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if err := transaction.WithContext(ctx).Create(argument).Error; err != nil {
		return nil, err
	}
	return argument, nil
}

func (ar *debateArgumentRepo) GetByID(ctx context.Context, tx *gorm.DB, argumentID uuid.UUID) (*types.DebateArgument, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.DebateArgument
	if err := transaction.WithContext(ctx).
		Where("id = ?", argumentID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (ar *debateArgumentRepo) ListForQuestion(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) ([]*types.DebateArgument, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.DebateArgument
	if err := transaction.WithContext(ctx).
		Preload("Author").
		Where("question_id = ?", questionID).
		Order("created_at desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *debateArgumentRepo) CountByStance(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (types.StanceCounts, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var rows []struct {
		IsInFavor bool
		Total     int64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.DebateArgument{}).
		Select("is_in_favor, count(*) as total").
		Where("question_id = ?", questionID).
		Group("is_in_favor").
		Scan(&rows).Error; err != nil {
		return types.StanceCounts{}, err
	}

	var counts types.StanceCounts
	for _, row := range rows {
		if row.IsInFavor {
			counts.InFavorCount = row.Total
		} else {
			counts.AgainstCount = row.Total
		}
	}
	return counts, nil
}
