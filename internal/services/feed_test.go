package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyppolabs/hyppo-backend/internal/repos"
	"github.com/hyppolabs/hyppo-backend/internal/types"
)

func makePosts(n int, createdAt time.Time) []*types.Post {
	posts := make([]*types.Post, n)
	for i := range posts {
		posts[i] = &types.Post{ID: uuid.New(), Title: "p", CreatedAt: createdAt}
	}
	return posts
}

func TestFetchPageHasMore(t *testing.T) {
	cases := []struct {
		name    string
		rows    int
		limit   int
		hasMore bool
	}{
		{name: "full_page", rows: 10, limit: 10, hasMore: true},
		{name: "short_page", rows: 7, limit: 10, hasMore: false},
		{name: "empty_page", rows: 0, limit: 10, hasMore: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			postRepo := &mockPostRepo{
				ListPageFn: func(ctx context.Context, tx *gorm.DB, sort repos.PostSort, offset, limit int) ([]*types.Post, error) {
					return makePosts(tc.rows, time.Now()), nil
				},
			}
			fs := NewFeedService(newTestDB(t), newTestLogger(t), postRepo, nil, nil, nil)

			page, err := fs.FetchPage(context.Background(), FeedFilter{Limit: tc.limit})
			if err != nil {
				t.Fatalf("FetchPage: %v", err)
			}
			if page.HasMore != tc.hasMore {
				t.Fatalf("HasMore = %v, want %v", page.HasMore, tc.hasMore)
			}
			if len(page.Items) != tc.rows {
				t.Fatalf("items = %d, want %d", len(page.Items), tc.rows)
			}
		})
	}
}

func TestFetchPageDefaultsSortToRecent(t *testing.T) {
	var gotSort repos.PostSort
	postRepo := &mockPostRepo{
		ListPageFn: func(ctx context.Context, tx *gorm.DB, sort repos.PostSort, offset, limit int) ([]*types.Post, error) {
			gotSort = sort
			return nil, nil
		},
	}
	fs := NewFeedService(newTestDB(t), newTestLogger(t), postRepo, nil, nil, nil)

	if _, err := fs.FetchPage(context.Background(), FeedFilter{Sort: "bogus"}); err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if gotSort != repos.PostSortRecent {
		t.Fatalf("sort = %q, want %q", gotSort, repos.PostSortRecent)
	}
}

func TestGroupByDay(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	items := []types.FeedItem{
		{Post: types.Post{ID: uuid.New(), CreatedAt: now.Add(-1 * time.Hour)}},
		{Post: types.Post{ID: uuid.New(), CreatedAt: now.Add(-2 * time.Hour)}},
		{Post: types.Post{ID: uuid.New(), CreatedAt: now.Add(-24 * time.Hour)}},
		{Post: types.Post{ID: uuid.New(), CreatedAt: time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)}},
	}
	fs := NewFeedService(newTestDB(t), newTestLogger(t), &mockPostRepo{}, nil, nil, nil)

	groups := fs.GroupByDay(items, now)
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}
	if groups[0].Label != "Hoy" || len(groups[0].Items) != 2 {
		t.Fatalf("first group = %q (%d items), want Hoy with 2", groups[0].Label, len(groups[0].Items))
	}
	if groups[1].Label != "Ayer" || len(groups[1].Items) != 1 {
		t.Fatalf("second group = %q, want Ayer", groups[1].Label)
	}
	if groups[2].Label != "1 de marzo de 2025" {
		t.Fatalf("third group = %q, want long date", groups[2].Label)
	}
}

func TestListDebatesAttachesCounts(t *testing.T) {
	q1 := &types.DebateQuestion{ID: uuid.New(), Title: "q1"}
	q2 := &types.DebateQuestion{ID: uuid.New(), Title: "q2"}

	questionRepo := &mockQuestionRepo{
		ListPageFn: func(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.DebateQuestion, error) {
			return []*types.DebateQuestion{q1, q2}, nil
		},
	}
	wantCounts := map[uuid.UUID]types.StanceCounts{
		q1.ID: {InFavorCount: 3, AgainstCount: 1},
		q2.ID: {InFavorCount: 0, AgainstCount: 5},
	}
	argumentRepo := &mockArgumentRepo{
		CountByStanceFn: func(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (types.StanceCounts, error) {
			return wantCounts[questionID], nil
		},
	}
	fs := NewFeedService(newTestDB(t), newTestLogger(t), &mockPostRepo{}, questionRepo, argumentRepo, nil)

	items, hasMore, err := fs.ListDebates(context.Background(), 0, 20)
	if err != nil {
		t.Fatalf("ListDebates: %v", err)
	}
	if hasMore {
		t.Fatal("hasMore=true for a short page")
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	for _, item := range items {
		want := wantCounts[item.ID]
		if item.InFavorCount != want.InFavorCount || item.AgainstCount != want.AgainstCount {
			t.Fatalf("question %s counts = (%d,%d), want (%d,%d)",
				item.ID, item.InFavorCount, item.AgainstCount, want.InFavorCount, want.AgainstCount)
		}
	}
}

func TestListDebatesIsolatesCountFailure(t *testing.T) {
	failing := &types.DebateQuestion{ID: uuid.New(), Title: "failing"}
	healthy := &types.DebateQuestion{ID: uuid.New(), Title: "healthy"}

	questionRepo := &mockQuestionRepo{
		ListPageFn: func(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.DebateQuestion, error) {
			return []*types.DebateQuestion{failing, healthy}, nil
		},
	}
	argumentRepo := &mockArgumentRepo{
		CountByStanceFn: func(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (types.StanceCounts, error) {
			if questionID == failing.ID {
				return types.StanceCounts{}, errors.New("aggregation unavailable")
			}
			return types.StanceCounts{InFavorCount: 4, AgainstCount: 2}, nil
		},
	}
	fs := NewFeedService(newTestDB(t), newTestLogger(t), &mockPostRepo{}, questionRepo, argumentRepo, nil)

	items, _, err := fs.ListDebates(context.Background(), 0, 20)
	if err != nil {
		t.Fatalf("ListDebates must not fail the page for one bad count: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2 (failing question still renders)", len(items))
	}
	for _, item := range items {
		switch item.ID {
		case failing.ID:
			if item.InFavorCount != 0 || item.AgainstCount != 0 {
				t.Fatalf("failed count = (%d,%d), want (0,0)", item.InFavorCount, item.AgainstCount)
			}
		case healthy.ID:
			if item.InFavorCount != 4 || item.AgainstCount != 2 {
				t.Fatalf("healthy count = (%d,%d), want (4,2)", item.InFavorCount, item.AgainstCount)
			}
		}
	}
}

func TestListDebatesUsesCountCache(t *testing.T) {
	q := &types.DebateQuestion{ID: uuid.New(), Title: "q"}
	questionRepo := &mockQuestionRepo{
		ListPageFn: func(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.DebateQuestion, error) {
			return []*types.DebateQuestion{q}, nil
		},
	}
	storeHits := 0
	argumentRepo := &mockArgumentRepo{
		CountByStanceFn: func(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (types.StanceCounts, error) {
			storeHits++
			return types.StanceCounts{InFavorCount: 2, AgainstCount: 2}, nil
		},
	}
	counts := newFakeCountCache()
	fs := NewFeedService(newTestDB(t), newTestLogger(t), &mockPostRepo{}, questionRepo, argumentRepo, counts)

	for i := 0; i < 3; i++ {
		if _, _, err := fs.ListDebates(context.Background(), 0, 20); err != nil {
			t.Fatalf("ListDebates %d: %v", i, err)
		}
	}
	if storeHits != 1 {
		t.Fatalf("argument store hit %d times, want 1 (cache must absorb repeats)", storeHits)
	}
}
