// Package feedsession implements the expand/collapse pagination state that
// the feed view drives: an accumulated item list, a collapsed window of ten
// items, and a guarded "load more" that tolerates concurrent triggers by
// dropping them.
package feedsession

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/hyppolabs/hyppo-backend/internal/types"
)

// CollapsedSize is the number of items visible while collapsed.
const CollapsedSize = 10

// DefaultPageSize is the number of items fetched per page.
const DefaultPageSize = 20

// FetchFunc loads one page of feed items for the given sort.
type FetchFunc func(ctx context.Context, sort string, offset, limit int) (*types.FeedPage, error)

type Session struct {
	mu       sync.Mutex
	fetch    FetchFunc
	pageSize int

	sort     string
	items    []types.FeedItem
	seen     map[uuid.UUID]struct{}
	expanded bool
	hasMore  bool
	loading  bool
	loaded   bool
	cancel   context.CancelFunc
	// seq identifies the current fetch generation. A completing fetch may
	// only touch session state if its generation is still current; a stale
	// completion must not clobber the guard of a newer in-flight fetch.
	seq uint64
}

// New builds a session in the collapsed state with nothing loaded. The first
// LoadMore performs the initial fetch.
func New(fetch FetchFunc, sort string, pageSize int) *Session {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Session{
		fetch:    fetch,
		pageSize: pageSize,
		sort:     sort,
		seen:     map[uuid.UUID]struct{}{},
		hasMore:  true,
	}
}

// LoadMore fetches the next page and appends it to the accumulated list.
// While a fetch is in flight further calls are dropped, not queued. Once the
// store reports no more rows, LoadMore becomes a no-op.
func (s *Session) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil
	}
	if s.loaded && !s.hasMore {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.seq++
	seq := s.seq
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.cancel = cancel
	sort := s.sort
	offset := len(s.items)
	limit := s.pageSize
	fetch := s.fetch
	s.mu.Unlock()

	page, err := fetch(fetchCtx, sort, offset, limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq != seq {
		// A reset superseded this fetch while it was in flight. The session
		// may already be running a newer fetch; leave its guard alone and
		// discard this response.
		return fetchCtx.Err()
	}
	s.loading = false
	s.cancel = nil
	if err != nil {
		return err
	}
	// A response that raced a reset is stale; applying it would mix filters.
	if fetchCtx.Err() != nil {
		return fetchCtx.Err()
	}

	for _, item := range page.Items {
		if _, dup := s.seen[item.ID]; dup {
			continue
		}
		s.seen[item.ID] = struct{}{}
		s.items = append(s.items, item)
	}
	s.hasMore = page.HasMore
	s.loaded = true
	return nil
}

// Expand switches the visible window to the full accumulated list.
func (s *Session) Expand() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded = true
}

// Collapse switches back to the first-ten window without discarding
// anything already loaded.
func (s *Session) Collapse() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded = false
}

// SetSort switches the feed ordering: the session collapses, drops the
// accumulated items and cancels any fetch still in flight. The caller
// refetches page zero with LoadMore.
func (s *Session) SetSort(sort string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
	s.sort = sort
	s.items = nil
	s.seen = map[uuid.UUID]struct{}{}
	s.expanded = false
	s.hasMore = true
	s.loading = false
	s.loaded = false
}

// Visible returns the window the view renders: the full list when expanded,
// otherwise the first ten items.
func (s *Session) Visible() []types.FeedItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expanded || len(s.items) <= CollapsedSize {
		out := make([]types.FeedItem, len(s.items))
		copy(out, s.items)
		return out
	}
	out := make([]types.FeedItem, CollapsedSize)
	copy(out, s.items[:CollapsedSize])
	return out
}

// Loaded returns how many items have been accumulated.
func (s *Session) Loaded() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Session) Expanded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded
}

func (s *Session) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Session) Sort() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sort
}
