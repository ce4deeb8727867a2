package file

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"millionaire-quiz-service/internal/domain"
)

func insertFixture(name string) domain.NewContestant {
	return domain.NewContestant{
		Name: name,
		Questions: []domain.NewQuestion{
			{Text: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 3},
		},
		TimerMinutes: 1,
	}
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "contestants.json")

	store := NewContestantStore(path)
	created, err := store.Create(ctx, insertFixture("persisted"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A fresh store over the same file sees the contestant.
	reopened := NewContestantStore(path)
	got, err := reopened.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Name != "persisted" || got.Questions[0].CorrectAnswer != 3 {
		t.Fatalf("persisted contestant changed: %+v", got)
	}
}

func TestFileStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewContestantStore(filepath.Join(t.TempDir(), "contestants.json"))

	if all, err := store.List(ctx); err != nil || len(all) != 0 {
		t.Fatalf("expected empty store, got %v %d", err, len(all))
	}

	first, _ := store.Create(ctx, insertFixture("one"))
	second, _ := store.Create(ctx, insertFixture("two"))

	all, err := store.List(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("list: %v %d", err, len(all))
	}
	if all[0].ID != first.ID || all[1].ID != second.ID {
		t.Fatalf("list order not creation order")
	}

	if err := store.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, first.ID); !errors.Is(err, domain.ErrContestantNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
