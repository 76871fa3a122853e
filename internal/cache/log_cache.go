package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"exercise-tracker/internal/app"
)

// LogCache keeps shaped exercise logs in Redis. Every entry key embeds the user's
// generation counter, so bumping the counter invalidates all cached variants at once.
type LogCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewLogCache(client *redisv9.Client, ttl time.Duration) *LogCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &LogCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *LogCache) GetLog(ctx context.Context, userID string, gen int64, variant string) (*app.Log, bool, error) {
	raw, err := c.client.Get(ctx, c.logKey(userID, gen, variant)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get log failed: %w", err)
	}

	var cached app.Log
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached log failed: %w", err)
	}
	return &cached, true, nil
}

// SetLog stores log under gen, which must be the generation read before the store query.
func (c *LogCache) SetLog(ctx context.Context, userID string, gen int64, variant string, log app.Log) error {
	payload, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("marshal log cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.logKey(userID, gen, variant), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set log failed: %w", err)
	}
	return nil
}

func (c *LogCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Incr(ctx, c.generationKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis bump log generation failed: %w", err)
	}
	return nil
}

// Generation returns the user's current generation, zero when none was bumped yet.
func (c *LogCache) Generation(ctx context.Context, userID string) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey(userID)).Int64()
	if err == redisv9.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get log generation failed: %w", err)
	}
	return gen, nil
}

func (c *LogCache) logKey(userID string, gen int64, variant string) string {
	return fmt.Sprintf("exercise:log:%s:%d:%s", userID, gen, variant)
}

func (c *LogCache) generationKey(userID string) string {
	return fmt.Sprintf("exercise:log:gen:%s", userID)
}
