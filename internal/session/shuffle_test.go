package session

import (
	"math/rand"
	"sort"
	"testing"

	"millionaire-quiz-service/internal/domain"
)

func TestShuffledIsPermutation(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		rnd := rand.New(rand.NewSource(seed))
		in := []string{"a", "b", "c", "d", "e", "f", "g"}
		out := shuffled(rnd, in)

		if len(out) != len(in) {
			t.Fatalf("seed %d: length changed: %d != %d", seed, len(out), len(in))
		}
		gotSorted := append([]string(nil), out...)
		wantSorted := append([]string(nil), in...)
		sort.Strings(gotSorted)
		sort.Strings(wantSorted)
		for i := range wantSorted {
			if gotSorted[i] != wantSorted[i] {
				t.Fatalf("seed %d: not a permutation: %v vs %v", seed, out, in)
			}
		}
	}
}

func TestShuffledDoesNotMutateInput(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	in := []int{1, 2, 3, 4}
	_ = shuffled(rnd, in)
	for i, v := range []int{1, 2, 3, 4} {
		if in[i] != v {
			t.Fatalf("input mutated: %v", in)
		}
	}
}

func TestShuffledDeterministicForSeed(t *testing.T) {
	a := shuffled(rand.New(rand.NewSource(42)), []int{1, 2, 3, 4, 5})
	b := shuffled(rand.New(rand.NewSource(42)), []int{1, 2, 3, 4, 5})
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different permutations: %v vs %v", a, b)
		}
	}
}

func TestShuffleOptionsTracksCorrectText(t *testing.T) {
	q := domain.Question{
		Text:          "pick A",
		Options:       []string{"A", "B", "C", "D"},
		CorrectAnswer: 0,
	}
	for seed := int64(0); seed < 50; seed++ {
		rnd := rand.New(rand.NewSource(seed))
		out := shuffleOptions(rnd, q)

		if out.Options[out.CorrectAnswer] != q.Options[q.CorrectAnswer] {
			t.Fatalf("seed %d: correct answer lost: options=%v correct=%d", seed, out.Options, out.CorrectAnswer)
		}
		if q.CorrectAnswer != 0 || q.Options[0] != "A" {
			t.Fatalf("seed %d: input question mutated: %+v", seed, q)
		}
	}
}
