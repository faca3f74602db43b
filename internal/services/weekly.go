package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyppolabs/hyppo-backend/internal/logger"
	pkgerrors "github.com/hyppolabs/hyppo-backend/internal/pkg/errors"
	"github.com/hyppolabs/hyppo-backend/internal/repos"
	"github.com/hyppolabs/hyppo-backend/internal/types"
	"github.com/hyppolabs/hyppo-backend/internal/week"
)

// WeeklyEntry is a weekly post annotated with its display label.
type WeeklyEntry struct {
	types.WeeklyPost
	WeekLabel string `json:"week_label"`
}

// WeeklyDetail is the entry plus its reflections.
type WeeklyDetail struct {
	Entry       WeeklyEntry               `json:"entry"`
	ContentHTML string                    `json:"content_html"`
	Reflections []*types.WeeklyReflection `json:"reflections"`
}

type WeeklyService interface {
	List(ctx context.Context) ([]WeeklyEntry, error)
	Get(ctx context.Context, weeklyPostID uuid.UUID) (*WeeklyDetail, error)
	Create(ctx context.Context, title, content string, year, weekNumber int) (*types.WeeklyPost, error)
	AddReflection(ctx context.Context, weeklyPostID, userID uuid.UUID, content string) (*types.WeeklyReflection, error)
	ListReflectionComments(ctx context.Context, reflectionID uuid.UUID) ([]*types.WeeklyReflectionComment, error)
	AddReflectionComment(ctx context.Context, reflectionID, userID uuid.UUID, content string) (*types.WeeklyReflectionComment, error)
}

type weeklyService struct {
	db             *gorm.DB
	log            *logger.Logger
	weeklyRepo     repos.WeeklyPostRepo
	reflectionRepo repos.WeeklyReflectionRepo
	commentRepo    repos.WeeklyReflectionCommentRepo
}

func NewWeeklyService(
	db *gorm.DB,
	log *logger.Logger,
	weeklyRepo repos.WeeklyPostRepo,
	reflectionRepo repos.WeeklyReflectionRepo,
	commentRepo repos.WeeklyReflectionCommentRepo,
) WeeklyService {
	serviceLog := log.With("service", "WeeklyService")
	return &weeklyService{
		db:             db,
		log:            serviceLog,
		weeklyRepo:     weeklyRepo,
		reflectionRepo: reflectionRepo,
		commentRepo:    commentRepo,
	}
}

func (ws *weeklyService) List(ctx context.Context) ([]WeeklyEntry, error) {
	posts, err := ws.weeklyRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list weekly posts: %w", err)
	}
	entries := make([]WeeklyEntry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, WeeklyEntry{
			WeeklyPost: *p,
			WeekLabel:  week.Label(p.WeekNumber, p.Year),
		})
	}
	return entries, nil
}

func (ws *weeklyService) Get(ctx context.Context, weeklyPostID uuid.UUID) (*WeeklyDetail, error) {
	post, err := ws.weeklyRepo.GetByID(ctx, nil, weeklyPostID)
	if err != nil {
		return nil, err
	}
	reflections, err := ws.reflectionRepo.ListForWeeklyPost(ctx, nil, weeklyPostID)
	if err != nil {
		return nil, fmt.Errorf("list reflections: %w", err)
	}
	return &WeeklyDetail{
		Entry: WeeklyEntry{
			WeeklyPost: *post,
			WeekLabel:  week.Label(post.WeekNumber, post.Year),
		},
		ContentHTML: renderMarkdown(post.Content),
		Reflections: reflections,
	}, nil
}

// Create enforces the one-entry-per-week rule with a pre-insert existence
// check inside the insert transaction. The unique constraint on
// (year, week_number) backstops races the check cannot see.
func (ws *weeklyService) Create(ctx context.Context, title, content string, year, weekNumber int) (*types.WeeklyPost, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", pkgerrors.ErrInvalidArgument)
	}
	if weekNumber < 1 || weekNumber > 53 {
		return nil, fmt.Errorf("%w: week_number must be in [1,53]", pkgerrors.ErrInvalidArgument)
	}
	if year < 2000 || year > time.Now().Year()+1 {
		return nil, fmt.Errorf("%w: year out of range", pkgerrors.ErrInvalidArgument)
	}

	post := &types.WeeklyPost{
		ID:         uuid.New(),
		Title:      title,
		Content:    strings.TrimSpace(content),
		Year:       year,
		WeekNumber: weekNumber,
	}
	err := ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := ws.weeklyRepo.ExistsForWeek(ctx, tx, year, weekNumber)
		if err != nil {
			return fmt.Errorf("check existing week: %w", err)
		}
		if exists {
			return pkgerrors.ErrWeekTaken
		}
		if _, err := ws.weeklyRepo.Create(ctx, tx, post); err != nil {
			return fmt.Errorf("create weekly post: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (ws *weeklyService) AddReflection(ctx context.Context, weeklyPostID, userID uuid.UUID, content string) (*types.WeeklyReflection, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: reflection cannot be empty", pkgerrors.ErrInvalidArgument)
	}
	if _, err := ws.weeklyRepo.GetByID(ctx, nil, weeklyPostID); err != nil {
		return nil, err
	}
	reflection := &types.WeeklyReflection{
		ID:           uuid.New(),
		WeeklyPostID: weeklyPostID,
		UserID:       userID,
		Content:      content,
	}
	return ws.reflectionRepo.Create(ctx, nil, reflection)
}

func (ws *weeklyService) ListReflectionComments(ctx context.Context, reflectionID uuid.UUID) ([]*types.WeeklyReflectionComment, error) {
	if _, err := ws.reflectionRepo.GetByID(ctx, nil, reflectionID); err != nil {
		return nil, err
	}
	return ws.commentRepo.ListForReflection(ctx, nil, reflectionID)
}

func (ws *weeklyService) AddReflectionComment(ctx context.Context, reflectionID, userID uuid.UUID, content string) (*types.WeeklyReflectionComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment cannot be empty", pkgerrors.ErrInvalidArgument)
	}
	if _, err := ws.reflectionRepo.GetByID(ctx, nil, reflectionID); err != nil {
		return nil, err
	}
	comment := &types.WeeklyReflectionComment{
		ID:           uuid.New(),
		ReflectionID: reflectionID,
		UserID:       userID,
		Content:      content,
	}
	return ws.commentRepo.Create(ctx, nil, comment)
}
