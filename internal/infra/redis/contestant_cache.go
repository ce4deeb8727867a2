// Package redis provides Redis-backed collaborators: a share-code store and
// a read-through cache in front of a contestant store.
package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"millionaire-quiz-service/internal/app"
	"millionaire-quiz-service/internal/domain"
)

// ContestantCache caches contestant reads in Redis (JSON per contestant) and
// falls through to the inner store on a miss. Writes pass through and
// invalidate. Useful in front of the Postgres store; pointless in front of
// the in-memory one.
type ContestantCache struct {
	client *redis.Client
	inner  app.ContestantStore
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewContestantCache(client *redis.Client, inner app.ContestantStore, ttl time.Duration) *ContestantCache {
	return &ContestantCache{
		client: client,
		inner:  inner,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// List always hits the inner store; the listing is cheap and changes on
// every create/delete.
func (c *ContestantCache) List(ctx context.Context) ([]domain.Contestant, error) {
	return c.inner.List(ctx)
}

func (c *ContestantCache) Get(ctx context.Context, id string) (domain.Contestant, error) {
	if contestant, ok := c.cached(ctx, id); ok {
		return contestant, nil
	}

	result, err, _ := c.sf.Do(id, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if contestant, ok := c.cached(ctx, id); ok {
			return contestant, nil
		}
		contestant, err := c.inner.Get(ctx, id)
		if err != nil {
			return domain.Contestant{}, err
		}
		if raw, err := json.Marshal(contestant); err == nil {
			_ = c.client.Set(ctx, c.key(id), raw, c.ttlWithJitter()).Err()
		}
		return contestant, nil
	})
	if err != nil {
		return domain.Contestant{}, err
	}
	return result.(domain.Contestant), nil
}

func (c *ContestantCache) Create(ctx context.Context, insert domain.NewContestant) (domain.Contestant, error) {
	return c.inner.Create(ctx, insert)
}

func (c *ContestantCache) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	_ = c.client.Del(ctx, c.key(id)).Err()
	return nil
}

func (c *ContestantCache) cached(ctx context.Context, id string) (domain.Contestant, bool) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		// A flaky cache counts as a miss; the inner store is authoritative.
		return domain.Contestant{}, false
	}
	var contestant domain.Contestant
	if err := json.Unmarshal(raw, &contestant); err != nil {
		return domain.Contestant{}, false
	}
	return contestant, true
}

func (c *ContestantCache) key(id string) string {
	return "contestant:" + id
}

func (c *ContestantCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
