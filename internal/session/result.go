package session

import (
	"math"

	"millionaire-quiz-service/internal/domain"
)

// computeResult derives the completion payload. totalQuestions is the
// prepared play-order length, not the stored configuration's count.
func computeResult(correctCount, totalQuestions int) domain.Result {
	percentage := 0
	if totalQuestions > 0 {
		percentage = int(math.Round(100 * float64(correctCount) / float64(totalQuestions)))
	}
	return domain.Result{
		CorrectCount:   correctCount,
		TotalQuestions: totalQuestions,
		Percentage:     percentage,
	}
}
