package domain

import "fmt"

// Materialize assigns identity to an insert payload: the given contestant ID
// plus per-question IDs of the form "{contestantID}-q-{index}".
func Materialize(c NewContestant, id string) Contestant {
	questions := make([]Question, 0, len(c.Questions))
	for i, q := range c.Questions {
		questions = append(questions, Question{
			ID:            fmt.Sprintf("%s-q-%d", id, i),
			Text:          q.Text,
			Options:       append([]string(nil), q.Options...),
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return Contestant{
		ID:                 id,
		Name:               c.Name,
		Questions:          questions,
		RandomizeQuestions: c.RandomizeQuestions,
		RandomizeOptions:   c.RandomizeOptions,
		EnableTimer:        c.EnableTimer,
		TimerMinutes:       c.TimerMinutes,
	}
}
