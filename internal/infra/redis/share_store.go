package redis

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"millionaire-quiz-service/internal/domain"
	"millionaire-quiz-service/internal/sharecode"
)

// maxCodeAttempts bounds collision retries; with a 32^6 code space hitting
// this means the keyspace is effectively full.
const maxCodeAttempts = 5

// ShareStore is a Redis-backed implementation of app.ShareCodeStore: short
// lookup codes map to encoded share payloads with a TTL.
type ShareStore struct {
	client *redis.Client
	ttl    time.Duration
	rnd    *rand.Rand
}

func NewShareStore(client *redis.Client, ttl time.Duration) *ShareStore {
	return &ShareStore{
		client: client,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *ShareStore) Save(ctx context.Context, payload string) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := sharecode.NewLookupCode(s.rnd)
		ok, err := s.client.SetNX(ctx, s.key(code), payload, s.ttl).Result()
		if err != nil {
			return "", fmt.Errorf("store share code: %w", err)
		}
		if ok {
			return code, nil
		}
	}
	return "", errors.New("share code space exhausted")
}

func (s *ShareStore) Lookup(ctx context.Context, code string) (string, error) {
	payload, err := s.client.Get(ctx, s.key(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrShareCodeNotFound
		}
		return "", fmt.Errorf("lookup share code: %w", err)
	}
	return payload, nil
}

func (s *ShareStore) key(code string) string {
	return "share:code:" + code
}
