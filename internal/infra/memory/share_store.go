package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"millionaire-quiz-service/internal/domain"
	"millionaire-quiz-service/internal/sharecode"
)

// ShareStore is an in-memory implementation of app.ShareCodeStore, used when
// no Redis is configured. Entries expire after the given TTL.
type ShareStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu      sync.Mutex
	rnd     *rand.Rand
	entries map[string]shareEntry
}

type shareEntry struct {
	payload   string
	expiresAt time.Time
}

func NewShareStore(ttl time.Duration) *ShareStore {
	return &ShareStore{
		ttl:     ttl,
		clock:   time.Now,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		entries: make(map[string]shareEntry),
	}
}

func (s *ShareStore) Save(_ context.Context, payload string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	for {
		code := sharecode.NewLookupCode(s.rnd)
		if entry, ok := s.entries[code]; ok && entry.expiresAt.After(now) {
			continue
		}
		s.entries[code] = shareEntry{payload: payload, expiresAt: now.Add(s.ttl)}
		return code, nil
	}
}

func (s *ShareStore) Lookup(_ context.Context, code string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[code]
	if !ok || !entry.expiresAt.After(s.clock()) {
		delete(s.entries, code)
		return "", domain.ErrShareCodeNotFound
	}
	return entry.payload, nil
}
