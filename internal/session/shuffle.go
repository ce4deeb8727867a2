package session

import (
	"math/rand"

	"millionaire-quiz-service/internal/domain"
)

// shuffled returns a Fisher-Yates permuted copy of in. The input is never
// mutated; randomness comes from the injected source so tests can fix seeds.
func shuffled[T any](rnd *rand.Rand, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// shuffleOptions permutes a question's options and remaps CorrectAnswer so
// the originally-correct text stays correct under the new order.
func shuffleOptions(rnd *rand.Rand, q domain.Question) domain.Question {
	perm := make([]int, len(q.Options))
	for i := range perm {
		perm[i] = i
	}
	perm = shuffled(rnd, perm) // perm[newPos] = old index

	out := q
	out.Options = make([]string, len(q.Options))
	for newPos, oldIdx := range perm {
		out.Options[newPos] = q.Options[oldIdx]
		if oldIdx == q.CorrectAnswer {
			out.CorrectAnswer = newPos
		}
	}
	return out
}
