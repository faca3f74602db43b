package handlers

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hyppolabs/hyppo-backend/internal/feedsession"
	"github.com/hyppolabs/hyppo-backend/internal/logger"
	"github.com/hyppolabs/hyppo-backend/internal/repos"
	"github.com/hyppolabs/hyppo-backend/internal/services"
	"github.com/hyppolabs/hyppo-backend/internal/types"
)

// sessionTTL is how long an idle feed session is kept before eviction;
// maxFeedSessions caps the store since the feed is an anonymous route and
// every unknown session_id allocates.
const (
	sessionTTL      = 30 * time.Minute
	maxFeedSessions = 1024
)

type feedSessionEntry struct {
	session  *feedsession.Session
	lastSeen time.Time
}

// FeedHandler keeps one pagination session per client so that "load more",
// expand/collapse and sort switches behave like stateful view interactions
// instead of bare offset queries.
type FeedHandler struct {
	log         *logger.Logger
	feedService services.FeedService

	mu       sync.Mutex
	sessions map[string]*feedSessionEntry
}

func NewFeedHandler(log *logger.Logger, feedService services.FeedService) *FeedHandler {
	handlerLog := log.With("handler", "FeedHandler")
	return &FeedHandler{
		log:         handlerLog,
		feedService: feedService,
		sessions:    map[string]*feedSessionEntry{},
	}
}

// evictLocked drops idle sessions past the TTL, then enforces the hard cap by
// evicting the least recently seen entries. Caller holds fh.mu.
func (fh *FeedHandler) evictLocked(now time.Time) {
	for id, entry := range fh.sessions {
		if now.Sub(entry.lastSeen) > sessionTTL {
			delete(fh.sessions, id)
		}
	}
	for len(fh.sessions) >= maxFeedSessions {
		oldestID := ""
		var oldest time.Time
		for id, entry := range fh.sessions {
			if oldestID == "" || entry.lastSeen.Before(oldest) {
				oldestID = id
				oldest = entry.lastSeen
			}
		}
		delete(fh.sessions, oldestID)
	}
}

func (fh *FeedHandler) fetchFunc() feedsession.FetchFunc {
	return func(ctx context.Context, sort string, offset, limit int) (*types.FeedPage, error) {
		return fh.feedService.FetchPage(ctx, services.FeedFilter{
			Sort:   repos.PostSort(sort),
			Offset: offset,
			Limit:  limit,
		})
	}
}

func (fh *FeedHandler) session(sessionID string) (*feedsession.Session, string) {
	now := time.Now()
	fh.mu.Lock()
	defer fh.mu.Unlock()
	if sessionID != "" {
		if entry, ok := fh.sessions[sessionID]; ok {
			entry.lastSeen = now
			return entry.session, sessionID
		}
	}
	fh.evictLocked(now)
	sessionID = uuid.New().String()
	s := feedsession.New(fh.fetchFunc(), string(repos.PostSortRecent), feedsession.DefaultPageSize)
	fh.sessions[sessionID] = &feedSessionEntry{session: s, lastSeen: now}
	return s, sessionID
}

func (fh *FeedHandler) lookup(c *gin.Context) (*feedsession.Session, string, bool) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = c.GetHeader("X-Feed-Session")
	}
	fh.mu.Lock()
	entry, ok := fh.sessions[sessionID]
	if ok {
		entry.lastSeen = time.Now()
	}
	fh.mu.Unlock()
	if !ok {
		RespondError(c, http.StatusNotFound, "session_not_found", nil)
		return nil, "", false
	}
	return entry.session, sessionID, true
}

func (fh *FeedHandler) respondView(c *gin.Context, s *feedsession.Session, sessionID string) {
	visible := s.Visible()
	groups := fh.feedService.GroupByDay(visible, time.Now())
	RespondOK(c, gin.H{
		"session_id": sessionID,
		"sort":       s.Sort(),
		"expanded":   s.Expanded(),
		"has_more":   s.HasMore(),
		"loaded":     s.Loaded(),
		"days":       groups,
	})
}

// GetFeed returns the current window for the caller's session, creating the
// session and loading the first page when needed.
func (fh *FeedHandler) GetFeed(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = c.GetHeader("X-Feed-Session")
	}
	s, sessionID := fh.session(sessionID)
	if s.Loaded() == 0 && s.HasMore() {
		if err := s.LoadMore(c.Request.Context()); err != nil {
			RespondServiceError(c, err)
			return
		}
	}
	fh.respondView(c, s, sessionID)
}

func (fh *FeedHandler) LoadMore(c *gin.Context) {
	s, sessionID, ok := fh.lookup(c)
	if !ok {
		return
	}
	if err := s.LoadMore(c.Request.Context()); err != nil {
		RespondServiceError(c, err)
		return
	}
	fh.respondView(c, s, sessionID)
}

func (fh *FeedHandler) Expand(c *gin.Context) {
	s, sessionID, ok := fh.lookup(c)
	if !ok {
		return
	}
	s.Expand()
	fh.respondView(c, s, sessionID)
}

func (fh *FeedHandler) Collapse(c *gin.Context) {
	s, sessionID, ok := fh.lookup(c)
	if !ok {
		return
	}
	s.Collapse()
	fh.respondView(c, s, sessionID)
}

// SetSort switches between "recent" and "popular": the session resets and
// refetches page zero under the new ordering.
func (fh *FeedHandler) SetSort(c *gin.Context) {
	s, sessionID, ok := fh.lookup(c)
	if !ok {
		return
	}
	var req struct {
		Sort string `json:"sort"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	sort := repos.PostSort(req.Sort)
	if sort != repos.PostSortRecent && sort != repos.PostSortPopular {
		RespondError(c, http.StatusBadRequest, "invalid_sort", nil)
		return
	}
	s.SetSort(string(sort))
	if err := s.LoadMore(c.Request.Context()); err != nil {
		RespondServiceError(c, err)
		return
	}
	fh.respondView(c, s, sessionID)
}

func (fh *FeedHandler) ListDebates(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	items, hasMore, err := fh.feedService.ListDebates(c.Request.Context(), offset, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"debates": items, "has_more": hasMore})
}
