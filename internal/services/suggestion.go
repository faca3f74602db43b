package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyppolabs/hyppo-backend/internal/logger"
	pkgerrors "github.com/hyppolabs/hyppo-backend/internal/pkg/errors"
	"github.com/hyppolabs/hyppo-backend/internal/repos"
	"github.com/hyppolabs/hyppo-backend/internal/types"
)

type SuggestionService interface {
	Create(ctx context.Context, userID uuid.UUID, content string) (*types.Suggestion, error)
	List(ctx context.Context, limit int) ([]*types.Suggestion, error)
}

type suggestionService struct {
	db             *gorm.DB
	log            *logger.Logger
	suggestionRepo repos.SuggestionRepo
}

func NewSuggestionService(db *gorm.DB, log *logger.Logger, suggestionRepo repos.SuggestionRepo) SuggestionService {
	serviceLog := log.With("service", "SuggestionService")
	return &suggestionService{db: db, log: serviceLog, suggestionRepo: suggestionRepo}
}

func (ss *suggestionService) Create(ctx context.Context, userID uuid.UUID, content string) (*types.Suggestion, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: suggestion cannot be empty", pkgerrors.ErrInvalidArgument)
	}
	suggestion := &types.Suggestion{
		ID:      uuid.New(),
		UserID:  userID,
		Content: content,
	}
	return ss.suggestionRepo.Create(ctx, nil, suggestion)
}

func (ss *suggestionService) List(ctx context.Context, limit int) ([]*types.Suggestion, error) {
	return ss.suggestionRepo.List(ctx, nil, limit)
}
