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

type DebateQuestionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, question *types.DebateQuestion) (*types.DebateQuestion, error)
	GetByID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (*types.DebateQuestion, error)
	ListPage(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.DebateQuestion, error)
}

type debateQuestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDebateQuestionRepo(db *gorm.DB, baseLog *logger.Logger) DebateQuestionRepo {
	repoLog := baseLog.With("repo", "DebateQuestionRepo")
	return &debateQuestionRepo{db: db, log: repoLog}
}

func (dr *debateQuestionRepo) Create(ctx context.Context, tx *gorm.DB, question *types.DebateQuestion) (*types.DebateQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if err := transaction.WithContext(ctx).Create(question).Error; err != nil {
		return nil, err
	}
	return question, nil
}

func (dr *debateQuestionRepo) GetByID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (*types.DebateQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var result types.DebateQuestion
	if err := transaction.WithContext(ctx).
		Preload("Author").
		Where("id = ?", questionID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (dr *debateQuestionRepo) ListPage(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.DebateQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*types.DebateQuestion
	if err := transaction.WithContext(ctx).
		Preload("Author").
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
