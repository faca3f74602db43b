package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/hyppolabs/hyppo-backend/internal/logger"
	"github.com/hyppolabs/hyppo-backend/internal/repos"
	"github.com/hyppolabs/hyppo-backend/internal/types"
)

// TagGroup is one category bucket of the tags page.
type TagGroup struct {
	Category string       `json:"category"`
	Tags     []*types.Tag `json:"tags"`
}

type TagService interface {
	ListGrouped(ctx context.Context) ([]TagGroup, error)
}

type tagService struct {
	db      *gorm.DB
	log     *logger.Logger
	tagRepo repos.TagRepo
}

func NewTagService(db *gorm.DB, log *logger.Logger, tagRepo repos.TagRepo) TagService {
	serviceLog := log.With("service", "TagService")
	return &tagService{db: db, log: serviceLog, tagRepo: tagRepo}
}

func (ts *tagService) ListGrouped(ctx context.Context) ([]TagGroup, error) {
	tags, err := ts.tagRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	var groups []TagGroup
	index := map[string]int{}
	for _, tag := range tags {
		category := tag.Category
		if category == "" {
			category = "general"
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, TagGroup{Category: category})
		}
		groups[i].Tags = append(groups[i].Tags, tag)
	}
	return groups, nil
}
