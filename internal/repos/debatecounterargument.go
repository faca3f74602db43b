package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyppolabs/hyppo-backend/internal/logger"
	"github.com/hyppolabs/hyppo-backend/internal/types"
)

type DebateCounterargumentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, counter *types.DebateCounterargument) (*types.DebateCounterargument, error)
	ListForArguments(ctx context.Context, tx *gorm.DB, argumentIDs []uuid.UUID) ([]*types.DebateCounterargument, error)
}

type debateCounterargumentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDebateCounterargumentRepo(db *gorm.DB, baseLog *logger.Logger) DebateCounterargumentRepo {
	repoLog := baseLog.With("repo", "DebateCounterargumentRepo")
	return &debateCounterargumentRepo{db: db, log: repoLog}
}

func (cr *debateCounterargumentRepo) Create(ctx context.Context, tx *gorm.DB, counter *types.DebateCounterargument) (*types.DebateCounterargument, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if err := transaction.WithContext(ctx).Create(counter).Error; err != nil {
		return nil, err
	}
	return counter, nil
}

func (cr *debateCounterargumentRepo) ListForArguments(ctx context.Context, tx *gorm.DB, argumentIDs []uuid.UUID) ([]*types.DebateCounterargument, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.DebateCounterargument
	if len(argumentIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Author").
		Where("argument_id IN ?", argumentIDs).
		Order("created_at asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
