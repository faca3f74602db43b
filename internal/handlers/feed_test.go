package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/hyppolabs/hyppo-backend/internal/logger"
	"github.com/hyppolabs/hyppo-backend/internal/services"
	"github.com/hyppolabs/hyppo-backend/internal/types"
)

type stubFeedService struct{}

func (stubFeedService) FetchPage(ctx context.Context, filter services.FeedFilter) (*types.FeedPage, error) {
	return &types.FeedPage{PageSize: filter.Limit}, nil
}

func (stubFeedService) GroupByDay(items []types.FeedItem, now time.Time) []types.DayGroup {
	return nil
}

func (stubFeedService) ListDebates(ctx context.Context, offset, limit int) ([]types.DebateListItem, bool, error) {
	return nil, false, nil
}

func newFeedHandler(t *testing.T) *FeedHandler {
	t.Helper()
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return NewFeedHandler(log, stubFeedService{})
}

func TestSessionStoreEnforcesCap(t *testing.T) {
	fh := newFeedHandler(t)

	for i := 0; i < maxFeedSessions+50; i++ {
		fh.session("")
	}

	fh.mu.Lock()
	size := len(fh.sessions)
	fh.mu.Unlock()
	if size > maxFeedSessions {
		t.Fatalf("session store grew to %d, cap is %d", size, maxFeedSessions)
	}
}

func TestSessionStoreEvictsIdleSessions(t *testing.T) {
	fh := newFeedHandler(t)

	_, idleID := fh.session("")
	_, activeID := fh.session("")

	fh.mu.Lock()
	fh.sessions[idleID].lastSeen = time.Now().Add(-sessionTTL - time.Minute)
	fh.mu.Unlock()

	// Creating a fresh session sweeps expired entries.
	fh.session("")

	fh.mu.Lock()
	_, idleAlive := fh.sessions[idleID]
	_, activeAlive := fh.sessions[activeID]
	fh.mu.Unlock()

	if idleAlive {
		t.Fatal("idle session survived past its TTL")
	}
	if !activeAlive {
		t.Fatal("active session evicted before its TTL")
	}
}

func TestSessionLookupRefreshesTTL(t *testing.T) {
	fh := newFeedHandler(t)

	_, id := fh.session("")
	fh.mu.Lock()
	fh.sessions[id].lastSeen = time.Now().Add(-sessionTTL + time.Minute)
	fh.mu.Unlock()

	// A client coming back with its session_id keeps the session warm.
	before := time.Now()
	if _, got := fh.session(id); got != id {
		t.Fatalf("session id changed on reuse: %s vs %s", got, id)
	}

	fh.mu.Lock()
	lastSeen := fh.sessions[id].lastSeen
	fh.mu.Unlock()
	if lastSeen.Before(before) {
		t.Fatal("reuse did not refresh lastSeen")
	}
}
