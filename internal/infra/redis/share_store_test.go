package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"millionaire-quiz-service/internal/domain"
)

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestShareStoreSaveAndLookup(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewShareStore(newClient(mr), time.Minute)

	code, err := store.Save(context.Background(), "payload-1")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("unexpected code %q", code)
	}
	if !mr.Exists("share:code:" + code) {
		t.Fatalf("expected redis key for code %q", code)
	}

	payload, err := store.Lookup(context.Background(), code)
	if err != nil || payload != "payload-1" {
		t.Fatalf("lookup: %v %q", err, payload)
	}
}

func TestShareStoreLookupExpired(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewShareStore(newClient(mr), time.Minute)

	code, err := store.Save(context.Background(), "payload-2")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := store.Lookup(context.Background(), code); !errors.Is(err, domain.ErrShareCodeNotFound) {
		t.Fatalf("expected not found after TTL, got %v", err)
	}
}
