package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"millionaire-quiz-service/internal/domain"
	"millionaire-quiz-service/internal/infra/memory"
)

type countingStore struct {
	*memory.ContestantStore
	gets int
}

func (s *countingStore) Get(ctx context.Context, id string) (domain.Contestant, error) {
	s.gets++
	return s.ContestantStore.Get(ctx, id)
}

func TestContestantCacheServesFromRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	inner := &countingStore{ContestantStore: memory.NewContestantStore()}
	cache := NewContestantCache(newClient(mr), inner, time.Minute)

	created, err := cache.Create(ctx, domain.NewContestant{
		Name: "cached",
		Questions: []domain.NewQuestion{
			{Text: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1},
		},
		TimerMinutes: 1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := cache.Get(ctx, created.ID); err != nil {
		t.Fatalf("get: %v", err)
	}
	if inner.gets != 1 {
		t.Fatalf("expected inner store hit once, got %d", inner.gets)
	}

	got, err := cache.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get 2: %v", err)
	}
	if inner.gets != 1 {
		t.Fatalf("expected cache hit, inner gets=%d", inner.gets)
	}
	if got.Name != "cached" || got.Questions[0].CorrectAnswer != 1 {
		t.Fatalf("cached contestant changed: %+v", got)
	}
}

func TestContestantCacheInvalidatesOnDelete(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	cache := NewContestantCache(newClient(mr), memory.NewContestantStore(), time.Minute)

	created, err := cache.Create(ctx, domain.NewContestant{
		Name: "gone",
		Questions: []domain.NewQuestion{
			{Text: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0},
		},
		TimerMinutes: 1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := cache.Get(ctx, created.ID); err != nil {
		t.Fatalf("get: %v", err)
	}
	if !mr.Exists("contestant:" + created.ID) {
		t.Fatalf("expected cache entry")
	}

	if err := cache.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("contestant:" + created.ID) {
		t.Fatalf("expected cache entry removed on delete")
	}
}
