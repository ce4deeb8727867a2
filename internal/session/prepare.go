package session

import (
	"math/rand"

	"millionaire-quiz-service/internal/domain"
)

// Prepare turns a contestant snapshot into the session's fixed play order and
// initial countdown seconds (0 when the timer is disabled). It runs exactly
// once per session and never mutates the stored configuration.
func Prepare(c domain.Contestant, rnd *rand.Rand) ([]domain.Question, int) {
	playOrder := make([]domain.Question, len(c.Questions))
	copy(playOrder, c.Questions)

	if c.RandomizeQuestions {
		playOrder = shuffled(rnd, playOrder)
	}
	if c.RandomizeOptions {
		for i := range playOrder {
			playOrder[i] = shuffleOptions(rnd, playOrder[i])
		}
	}

	remaining := 0
	if c.EnableTimer {
		remaining = c.TimerMinutes * 60
	}
	return playOrder, remaining
}
