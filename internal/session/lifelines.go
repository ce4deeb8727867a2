package session

import (
	"math/rand"
	"sort"

	"millionaire-quiz-service/internal/domain"
)

// lifelines tracks the two one-shot gates for a session. Each flips
// at most once and never resets, not even across questions.
type lifelines struct {
	fiftyFiftyUsed  bool
	phoneFriendUsed bool
}

// fiftyFifty consumes the gate and picks two of the three wrong option
// indices uniformly at random. Returns false if the gate was already used.
func (l *lifelines) fiftyFifty(rnd *rand.Rand, correct int) ([]int, bool) {
	if l.fiftyFiftyUsed {
		return nil, false
	}
	wrong := make([]int, 0, domain.OptionCount-1)
	for i := 0; i < domain.OptionCount; i++ {
		if i != correct {
			wrong = append(wrong, i)
		}
	}
	removed := shuffled(rnd, wrong)[:2]
	sort.Ints(removed)
	l.fiftyFiftyUsed = true
	return removed, true
}

// phoneFriend consumes the gate. Returns false if it was already used.
func (l *lifelines) phoneFriend() bool {
	if l.phoneFriendUsed {
		return false
	}
	l.phoneFriendUsed = true
	return true
}
