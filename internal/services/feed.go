package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/hyppolabs/hyppo-backend/internal/cache"
	"github.com/hyppolabs/hyppo-backend/internal/logger"
	"github.com/hyppolabs/hyppo-backend/internal/repos"
	"github.com/hyppolabs/hyppo-backend/internal/types"
	"github.com/hyppolabs/hyppo-backend/internal/week"
)

// countFanout bounds the number of concurrent stance-count queries per page.
const countFanout = 4

type FeedFilter struct {
	Sort   repos.PostSort
	Offset int
	Limit  int
}

type FeedService interface {
	FetchPage(ctx context.Context, filter FeedFilter) (*types.FeedPage, error)
	GroupByDay(items []types.FeedItem, now time.Time) []types.DayGroup
	ListDebates(ctx context.Context, offset, limit int) ([]types.DebateListItem, bool, error)
}

type feedService struct {
	db           *gorm.DB
	log          *logger.Logger
	postRepo     repos.PostRepo
	questionRepo repos.DebateQuestionRepo
	argumentRepo repos.DebateArgumentRepo
	counts       cache.CountCache
}

func NewFeedService(
	db *gorm.DB,
	log *logger.Logger,
	postRepo repos.PostRepo,
	questionRepo repos.DebateQuestionRepo,
	argumentRepo repos.DebateArgumentRepo,
	counts cache.CountCache,
) FeedService {
	serviceLog := log.With("service", "FeedService")
	return &feedService{
		db:           db,
		log:          serviceLog,
		postRepo:     postRepo,
		questionRepo: questionRepo,
		argumentRepo: argumentRepo,
		counts:       counts,
	}
}

func (fs *feedService) FetchPage(ctx context.Context, filter FeedFilter) (*types.FeedPage, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Sort != repos.PostSortPopular {
		filter.Sort = repos.PostSortRecent
	}

	posts, err := fs.postRepo.ListPage(ctx, nil, filter.Sort, filter.Offset, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("list posts page: %w", err)
	}

	now := time.Now()
	items := make([]types.FeedItem, 0, len(posts))
	for _, post := range posts {
		item := types.FeedItem{
			Post:    *post,
			TimeAgo: week.TimeAgo(post.CreatedAt, now),
		}
		if post.Author != nil {
			item.AuthorUsername = post.Author.Username
		}
		items = append(items, item)
	}

	return &types.FeedPage{
		Items:    items,
		Offset:   filter.Offset,
		PageSize: filter.Limit,
		// Heuristic: a short page means the store ran out. A page that lands
		// exactly on the last row reports a false positive once.
		HasMore: len(posts) == filter.Limit,
	}, nil
}

func (fs *feedService) GroupByDay(items []types.FeedItem, now time.Time) []types.DayGroup {
	var groups []types.DayGroup
	index := map[string]int{}
	for _, item := range items {
		label := week.DayLabel(item.CreatedAt, now)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, types.DayGroup{Label: label})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

func (fs *feedService) ListDebates(ctx context.Context, offset, limit int) ([]types.DebateListItem, bool, error) {
	if limit <= 0 {
		limit = 20
	}

	questions, err := fs.questionRepo.ListPage(ctx, nil, offset, limit)
	if err != nil {
		return nil, false, fmt.Errorf("list debate questions: %w", err)
	}

	items := make([]types.DebateListItem, len(questions))
	for i, q := range questions {
		items[i].DebateQuestion = *q
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(countFanout)
	for i := range items {
		i := i
		g.Go(func() error {
			counts := fs.stanceCounts(gctx, items[i].ID)
			items[i].InFavorCount = counts.InFavorCount
			items[i].AgainstCount = counts.AgainstCount
			return nil
		})
	}
	// Workers never return an error; a failed count degrades to {0,0} for
	// that question only.
	_ = g.Wait()

	return items, len(questions) == limit, nil
}

func (fs *feedService) stanceCounts(ctx context.Context, questionID uuid.UUID) types.StanceCounts {
	key := questionID.String()
	if fs.counts != nil {
		if counts, ok := fs.counts.GetStanceCounts(ctx, key); ok {
			return counts
		}
	}
	counts, err := fs.argumentRepo.CountByStance(ctx, nil, questionID)
	if err != nil {
		fs.log.Warn("Stance count failed, falling back to zero", "question_id", key, "error", err)
		return types.StanceCounts{}
	}
	if fs.counts != nil {
		fs.counts.SetStanceCounts(ctx, key, counts)
	}
	return counts
}
