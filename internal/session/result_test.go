package session

import "testing"

func TestComputeResultRounding(t *testing.T) {
	cases := []struct {
		correct, total, percentage int
	}{
		{0, 4, 0},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{1, 8, 13},
	}
	for _, tc := range cases {
		result := computeResult(tc.correct, tc.total)
		if result.Percentage != tc.percentage {
			t.Fatalf("%d/%d: expected %d%%, got %d%%", tc.correct, tc.total, tc.percentage, result.Percentage)
		}
		if result.CorrectCount != tc.correct || result.TotalQuestions != tc.total {
			t.Fatalf("result echoed wrong counts: %+v", result)
		}
	}
}
