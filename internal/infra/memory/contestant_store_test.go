package memory

import (
	"context"
	"errors"
	"testing"

	"millionaire-quiz-service/internal/domain"
)

func insertFixture(name string) domain.NewContestant {
	return domain.NewContestant{
		Name: name,
		Questions: []domain.NewQuestion{
			{Text: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 2},
		},
		TimerMinutes: 1,
	}
}

func TestContestantStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewContestantStore()

	first, err := store.Create(ctx, insertFixture("first"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := store.Create(ctx, insertFixture("second"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("duplicate contestant IDs")
	}

	got, err := store.Get(ctx, first.ID)
	if err != nil || got.Name != "first" {
		t.Fatalf("get: %v %+v", err, got)
	}

	all, err := store.List(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("list: %v %d", err, len(all))
	}
	if all[0].ID != first.ID || all[1].ID != second.ID {
		t.Fatalf("list order not creation order: %+v", all)
	}

	if err := store.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, first.ID); !errors.Is(err, domain.ErrContestantNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if all, _ := store.List(ctx); len(all) != 1 {
		t.Fatalf("expected 1 contestant after delete, got %d", len(all))
	}
}

func TestContestantStoreQuestionIDs(t *testing.T) {
	ctx := context.Background()
	store := NewContestantStore()

	created, err := store.Create(ctx, insertFixture("ids"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Questions[0].ID != created.ID+"-q-0" {
		t.Fatalf("unexpected question ID %q", created.Questions[0].ID)
	}
}
