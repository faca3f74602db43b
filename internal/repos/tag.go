package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyppolabs/hyppo-backend/internal/logger"
	"github.com/hyppolabs/hyppo-backend/internal/types"
)

type TagRepo interface {
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Tag, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, tagIDs []int64) ([]*types.Tag, error)
	LinkPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID, tagIDs []int64) error
	GetForPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) ([]*types.Tag, error)
	UnlinkPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) error
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	repoLog := baseLog.With("repo", "TagRepo")
	return &tagRepo{db: db, log: repoLog}
}

func (tr *tagRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Tag, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Tag
	if err := transaction.WithContext(ctx).
		Order("category asc, name asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tagRepo) GetByIDs(ctx context.Context, tx *gorm.DB, tagIDs []int64) ([]*types.Tag, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Tag
	if len(tagIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", tagIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tagRepo) LinkPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID, tagIDs []int64) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(tagIDs) == 0 {
		return nil
	}

	links := make([]*types.PostTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		links = append(links, &types.PostTag{PostID: postID, TagID: id})
	}
	return transaction.WithContext(ctx).Create(&links).Error
}

func (tr *tagRepo) GetForPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) ([]*types.Tag, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Tag
	if err := transaction.WithContext(ctx).
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tagRepo) UnlinkPost(ctx context.Context, tx *gorm.DB, postID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	return transaction.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&types.PostTag{}).Error
}
