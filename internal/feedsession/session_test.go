package feedsession

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/hyppolabs/hyppo-backend/internal/types"
)

// fakeStore serves deterministic pages out of a fixed item list.
type fakeStore struct {
	mu      sync.Mutex
	items   []types.FeedItem
	calls   int
	failing bool
}

func newFakeStore(n int) *fakeStore {
	items := make([]types.FeedItem, n)
	for i := range items {
		items[i].ID = uuid.New()
	}
	return &fakeStore{items: items}
}

func (f *fakeStore) fetch(ctx context.Context, sort string, offset, limit int) (*types.FeedPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failing {
		return nil, errors.New("store unavailable")
	}
	end := offset + limit
	if end > len(f.items) {
		end = len(f.items)
	}
	var page []types.FeedItem
	if offset < len(f.items) {
		page = f.items[offset:end]
	}
	return &types.FeedPage{
		Items:    page,
		Offset:   offset,
		PageSize: limit,
		HasMore:  len(page) == limit,
	}, nil
}

func TestLoadMoreAccumulatesWithoutDuplicates(t *testing.T) {
	store := newFakeStore(65)
	s := New(store.fetch, "recent", 20)

	for i := 0; i < 3; i++ {
		if err := s.LoadMore(context.Background()); err != nil {
			t.Fatalf("LoadMore %d: %v", i, err)
		}
	}

	if got := s.Loaded(); got != 60 {
		t.Fatalf("loaded %d items, want 60", got)
	}
	if !s.HasMore() {
		t.Fatal("hasMore=false with rows remaining")
	}

	seen := map[uuid.UUID]bool{}
	s.Expand()
	for _, item := range s.Visible() {
		if seen[item.ID] {
			t.Fatalf("duplicate item %s", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestHasMoreHeuristic(t *testing.T) {
	cases := []struct {
		name  string
		total int
		want  bool
	}{
		{name: "full_page_means_more", total: 20, want: true},
		{name: "short_page_means_done", total: 7, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore(tc.total)
			s := New(store.fetch, "recent", 20)
			if err := s.LoadMore(context.Background()); err != nil {
				t.Fatalf("LoadMore: %v", err)
			}
			if got := s.HasMore(); got != tc.want {
				t.Fatalf("HasMore=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestLoadMoreStopsWhenExhausted(t *testing.T) {
	store := newFakeStore(7)
	s := New(store.fetch, "recent", 20)

	if err := s.LoadMore(context.Background()); err != nil {
		t.Fatalf("LoadMore: %v", err)
	}
	if err := s.LoadMore(context.Background()); err != nil {
		t.Fatalf("LoadMore after exhaustion: %v", err)
	}

	store.mu.Lock()
	calls := store.calls
	store.mu.Unlock()
	if calls != 1 {
		t.Fatalf("store hit %d times, want 1 (exhausted session must not refetch)", calls)
	}
}

func TestExpandCollapseIdempotent(t *testing.T) {
	store := newFakeStore(45)
	s := New(store.fetch, "recent", 20)

	if err := s.LoadMore(context.Background()); err != nil {
		t.Fatalf("LoadMore: %v", err)
	}
	if err := s.LoadMore(context.Background()); err != nil {
		t.Fatalf("LoadMore: %v", err)
	}

	collapsed := s.Visible()
	if len(collapsed) != CollapsedSize {
		t.Fatalf("collapsed window has %d items, want %d", len(collapsed), CollapsedSize)
	}

	s.Expand()
	if got := len(s.Visible()); got != 40 {
		t.Fatalf("expanded window has %d items, want 40", got)
	}

	s.Collapse()
	again := s.Visible()
	if len(again) != CollapsedSize {
		t.Fatalf("re-collapsed window has %d items, want %d", len(again), CollapsedSize)
	}
	for i := range again {
		if again[i].ID != collapsed[i].ID {
			t.Fatalf("item %d changed across expand/collapse: %s vs %s", i, again[i].ID, collapsed[i].ID)
		}
	}
	if got := s.Loaded(); got != 40 {
		t.Fatalf("collapse discarded items: %d loaded, want 40", got)
	}
}

func TestSetSortResets(t *testing.T) {
	store := newFakeStore(30)
	s := New(store.fetch, "recent", 20)

	if err := s.LoadMore(context.Background()); err != nil {
		t.Fatalf("LoadMore: %v", err)
	}
	s.Expand()

	s.SetSort("popular")
	if s.Loaded() != 0 {
		t.Fatalf("reset kept %d items", s.Loaded())
	}
	if s.Expanded() {
		t.Fatal("reset must collapse")
	}
	if s.Sort() != "popular" {
		t.Fatalf("sort=%q, want popular", s.Sort())
	}

	if err := s.LoadMore(context.Background()); err != nil {
		t.Fatalf("LoadMore after reset: %v", err)
	}
	if got := s.Loaded(); got != 20 {
		t.Fatalf("loaded %d after reset, want 20", got)
	}
}

func TestConcurrentLoadMoreDropped(t *testing.T) {
	store := newFakeStore(100)
	entered := make(chan struct{})
	gate := make(chan struct{})

	blocking := func(ctx context.Context, sort string, offset, limit int) (*types.FeedPage, error) {
		close(entered)
		<-gate
		return store.fetch(ctx, sort, offset, limit)
	}
	s := New(blocking, "recent", 20)

	done := make(chan error, 1)
	go func() {
		done <- s.LoadMore(context.Background())
	}()
	<-entered

	// With a fetch pinned in flight, further triggers must be dropped.
	for i := 0; i < 5; i++ {
		if err := s.LoadMore(context.Background()); err != nil {
			t.Fatalf("dropped LoadMore %d returned error: %v", i, err)
		}
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("in-flight LoadMore: %v", err)
	}

	if got := s.Loaded(); got != 20 {
		t.Fatalf("loaded %d items, want 20 (concurrent triggers must be dropped)", got)
	}
	store.mu.Lock()
	calls := store.calls
	store.mu.Unlock()
	if calls != 1 {
		t.Fatalf("store hit %d times, want 1", calls)
	}
}

func TestStaleCompletionKeepsGuard(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	releases := make(chan chan struct{}, 2)

	fetch := func(ctx context.Context, sort string, offset, limit int) (*types.FeedPage, error) {
		mu.Lock()
		calls++
		call := calls
		mu.Unlock()
		// The first two fetches block until released; anything after that
		// would be a guard breach and returns immediately so the test can
		// observe it instead of hanging.
		if call <= 2 {
			release := make(chan struct{})
			releases <- release
			<-release
		}
		items := make([]types.FeedItem, limit)
		for i := range items {
			items[i].ID = uuid.New()
		}
		return &types.FeedPage{Items: items, PageSize: limit, HasMore: true}, nil
	}
	s := New(fetch, "recent", 20)

	doneA := make(chan error, 1)
	go func() { doneA <- s.LoadMore(context.Background()) }()
	releaseA := <-releases

	s.SetSort("popular")

	doneB := make(chan error, 1)
	go func() { doneB <- s.LoadMore(context.Background()) }()
	releaseB := <-releases

	// The canceled fetch finishes after the new one has started. Its
	// completion must not clear the new fetch's in-flight guard.
	close(releaseA)
	<-doneA

	if !s.Loading() {
		t.Fatal("stale completion cleared the in-flight guard")
	}
	if err := s.LoadMore(context.Background()); err != nil {
		t.Fatalf("dropped LoadMore returned error: %v", err)
	}

	close(releaseB)
	if err := <-doneB; err != nil {
		t.Fatalf("live LoadMore: %v", err)
	}

	mu.Lock()
	gotCalls := calls
	mu.Unlock()
	if gotCalls != 2 {
		t.Fatalf("store hit %d times, want 2 (trigger during live fetch must be dropped)", gotCalls)
	}
	if got := s.Loaded(); got != 20 {
		t.Fatalf("loaded %d items, want 20 (only the live fetch may land)", got)
	}
	if s.Loading() {
		t.Fatal("loading flag stuck after live fetch completed")
	}
}

func TestLoadMoreSurfacesFetchError(t *testing.T) {
	store := newFakeStore(10)
	store.failing = true
	s := New(store.fetch, "recent", 20)

	if err := s.LoadMore(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
	if s.Loaded() != 0 {
		t.Fatalf("failed fetch left %d items", s.Loaded())
	}
	if s.Loading() {
		t.Fatal("loading flag stuck after error")
	}
}
