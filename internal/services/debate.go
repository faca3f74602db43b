package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyppolabs/hyppo-backend/internal/cache"
	"github.com/hyppolabs/hyppo-backend/internal/logger"
	pkgerrors "github.com/hyppolabs/hyppo-backend/internal/pkg/errors"
	"github.com/hyppolabs/hyppo-backend/internal/repos"
	"github.com/hyppolabs/hyppo-backend/internal/types"
)

// ArgumentView is a debate argument plus its display label and responses.
type ArgumentView struct {
	types.DebateArgument
	StanceLabel      string                         `json:"stance_label"`
	Counterarguments []*types.DebateCounterargument `json:"counterarguments"`
}

// DebateDetail groups a question's arguments by stance.
type DebateDetail struct {
	Question     types.DebateQuestion `json:"question"`
	ContentHTML  string               `json:"content_html"`
	InFavor      []ArgumentView       `json:"in_favor"`
	Against      []ArgumentView       `json:"against"`
	InFavorCount int64                `json:"in_favor_count"`
	AgainstCount int64                `json:"against_count"`
}

type DebateService interface {
	CreateQuestion(ctx context.Context, userID uuid.UUID, title, content string) (*types.DebateQuestion, error)
	GetQuestion(ctx context.Context, questionID uuid.UUID) (*DebateDetail, error)
	AddArgument(ctx context.Context, questionID, userID uuid.UUID, content string, isInFavor bool, intensity int) (*types.DebateArgument, error)
	AddCounterargument(ctx context.Context, argumentID, userID uuid.UUID, content string) (*types.DebateCounterargument, error)
}

type debateService struct {
	db           *gorm.DB
	log          *logger.Logger
	questionRepo repos.DebateQuestionRepo
	argumentRepo repos.DebateArgumentRepo
	counterRepo  repos.DebateCounterargumentRepo
	counts       cache.CountCache
}

func NewDebateService(
	db *gorm.DB,
	log *logger.Logger,
	questionRepo repos.DebateQuestionRepo,
	argumentRepo repos.DebateArgumentRepo,
	counterRepo repos.DebateCounterargumentRepo,
	counts cache.CountCache,
) DebateService {
	serviceLog := log.With("service", "DebateService")
	return &debateService{
		db:           db,
		log:          serviceLog,
		questionRepo: questionRepo,
		argumentRepo: argumentRepo,
		counterRepo:  counterRepo,
		counts:       counts,
	}
}

// StanceLabel maps (is_in_favor, intensity) to the six display labels.
// Unknown intensities fall back to the neutral wording.
func StanceLabel(isInFavor bool, intensity int) string {
	if isInFavor {
		switch intensity {
		case 1:
			return "Algo a favor"
		case 3:
			return "Muy a favor"
		default:
			return "A favor"
		}
	}
	switch intensity {
	case 1:
		return "Algo en contra"
	case 3:
		return "Muy en contra"
	default:
		return "En contra"
	}
}

func (ds *debateService) CreateQuestion(ctx context.Context, userID uuid.UUID, title, content string) (*types.DebateQuestion, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", pkgerrors.ErrInvalidArgument)
	}
	question := &types.DebateQuestion{
		ID:      uuid.New(),
		Title:   title,
		Content: strings.TrimSpace(content),
		UserID:  userID,
	}
	return ds.questionRepo.Create(ctx, nil, question)
}

func (ds *debateService) GetQuestion(ctx context.Context, questionID uuid.UUID) (*DebateDetail, error) {
	question, err := ds.questionRepo.GetByID(ctx, nil, questionID)
	if err != nil {
		return nil, err
	}

	arguments, err := ds.argumentRepo.ListForQuestion(ctx, nil, questionID)
	if err != nil {
		return nil, fmt.Errorf("load arguments: %w", err)
	}

	argumentIDs := make([]uuid.UUID, 0, len(arguments))
	for _, a := range arguments {
		argumentIDs = append(argumentIDs, a.ID)
	}
	counters, err := ds.counterRepo.ListForArguments(ctx, nil, argumentIDs)
	if err != nil {
		return nil, fmt.Errorf("load counterarguments: %w", err)
	}
	countersByArgument := map[uuid.UUID][]*types.DebateCounterargument{}
	for _, c := range counters {
		countersByArgument[c.ArgumentID] = append(countersByArgument[c.ArgumentID], c)
	}

	detail := &DebateDetail{
		Question:    *question,
		ContentHTML: renderMarkdown(question.Content),
	}
	for _, a := range arguments {
		view := ArgumentView{
			DebateArgument:   *a,
			StanceLabel:      StanceLabel(a.IsInFavor, a.Intensity),
			Counterarguments: countersByArgument[a.ID],
		}
		if a.IsInFavor {
			detail.InFavor = append(detail.InFavor, view)
			detail.InFavorCount++
		} else {
			detail.Against = append(detail.Against, view)
			detail.AgainstCount++
		}
	}
	return detail, nil
}

func (ds *debateService) AddArgument(ctx context.Context, questionID, userID uuid.UUID, content string, isInFavor bool, intensity int) (*types.DebateArgument, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: argument cannot be empty", pkgerrors.ErrInvalidArgument)
	}
	if intensity < 1 || intensity > 3 {
		return nil, fmt.Errorf("%w: intensity must be 1, 2 or 3", pkgerrors.ErrInvalidArgument)
	}
	if _, err := ds.questionRepo.GetByID(ctx, nil, questionID); err != nil {
		return nil, err
	}

	argument := &types.DebateArgument{
		ID:         uuid.New(),
		QuestionID: questionID,
		UserID:     userID,
		Content:    content,
		IsInFavor:  isInFavor,
		Intensity:  intensity,
	}
	created, err := ds.argumentRepo.Create(ctx, nil, argument)
	if err != nil {
		return nil, err
	}
	if ds.counts != nil {
		ds.counts.Invalidate(ctx, questionID.String())
	}
	return created, nil
}

func (ds *debateService) AddCounterargument(ctx context.Context, argumentID, userID uuid.UUID, content string) (*types.DebateCounterargument, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: counterargument cannot be empty", pkgerrors.ErrInvalidArgument)
	}
	if _, err := ds.argumentRepo.GetByID(ctx, nil, argumentID); err != nil {
		return nil, err
	}
	counter := &types.DebateCounterargument{
		ID:         uuid.New(),
		ArgumentID: argumentID,
		UserID:     userID,
		Content:    content,
	}
	return ds.counterRepo.Create(ctx, nil, counter)
}
