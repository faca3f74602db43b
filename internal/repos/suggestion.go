package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/hyppolabs/hyppo-backend/internal/logger"
	"github.com/hyppolabs/hyppo-backend/internal/types"
)

type SuggestionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, suggestion *types.Suggestion) (*types.Suggestion, error)
	List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Suggestion, error)
}

type suggestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSuggestionRepo(db *gorm.DB, baseLog *logger.Logger) SuggestionRepo {
	repoLog := baseLog.With("repo", "SuggestionRepo")
	return &suggestionRepo{db: db, log: repoLog}
}

func (sr *suggestionRepo) Create(ctx context.Context, tx *gorm.DB, suggestion *types.Suggestion) (*types.Suggestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if err := transaction.WithContext(ctx).Create(suggestion).Error; err != nil {
		return nil, err
	}
	return suggestion, nil
}

func (sr *suggestionRepo) List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Suggestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Suggestion
	q := transaction.WithContext(ctx).
		Preload("Author").
		Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
