package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/hyppolabs/hyppo-backend/internal/logger"
	"github.com/hyppolabs/hyppo-backend/internal/types"
)

// CountCache holds short-lived for/against tallies so the debate feed does
// not hit the arguments table once per question on every page load. A nil
// CountCache is valid and means caching is disabled.
type CountCache interface {
	GetStanceCounts(ctx context.Context, questionID string) (types.StanceCounts, bool)
	SetStanceCounts(ctx context.Context, questionID string, counts types.StanceCounts)
	Invalidate(ctx context.Context, questionID string)
	Close() error
}

type countCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewCountCache connects to REDIS_ADDR. Callers gate construction on the env
// var being present, same as the rest of the optional infrastructure.
func NewCountCache(log *logger.Logger) (CountCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	cacheLog := log.With("cache", "CountCache")
	return &countCache{log: cacheLog, rdb: rdb, ttl: 30 * time.Second}, nil
}

func (c *countCache) key(questionID string) string {
	return "debate:counts:" + questionID
}

func (c *countCache) GetStanceCounts(ctx context.Context, questionID string) (types.StanceCounts, bool) {
	raw, err := c.rdb.Get(ctx, c.key(questionID)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Debug("Count cache read failed", "question_id", questionID, "error", err)
		}
		return types.StanceCounts{}, false
	}
	var counts types.StanceCounts
	if err := json.Unmarshal(raw, &counts); err != nil {
		c.log.Debug("Count cache entry malformed", "question_id", questionID, "error", err)
		return types.StanceCounts{}, false
	}
	return counts, true
}

func (c *countCache) SetStanceCounts(ctx context.Context, questionID string, counts types.StanceCounts) {
	raw, err := json.Marshal(counts)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(questionID), raw, c.ttl).Err(); err != nil {
		c.log.Debug("Count cache write failed", "question_id", questionID, "error", err)
	}
}

func (c *countCache) Invalidate(ctx context.Context, questionID string) {
	if err := c.rdb.Del(ctx, c.key(questionID)).Err(); err != nil {
		c.log.Debug("Count cache invalidate failed", "question_id", questionID, "error", err)
	}
}

func (c *countCache) Close() error {
	return c.rdb.Close()
}
