package domain

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// Question models an MCQ question with exactly one correct option,
// identified by its index into Options.
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"text" validate:"required"`
	Options       []string `json:"options" validate:"len=4,dive,required"`
	CorrectAnswer int      `json:"correctAnswer" validate:"min=0,max=3"`
}

// Contestant is a stored quiz configuration: a named question list plus
// play-time settings. Question order is authoring order, not play order.
type Contestant struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name" validate:"required"`
	Questions          []Question `json:"questions" validate:"dive"`
	RandomizeQuestions bool       `json:"randomizeQuestions"`
	RandomizeOptions   bool       `json:"randomizeOptions"`
	EnableTimer        bool       `json:"enableTimer"`
	TimerMinutes       int        `json:"timerMinutes" validate:"min=1,max=60"`
}

// NewQuestion is the insert form of a question; the store assigns the ID.
type NewQuestion struct {
	Text          string   `json:"text" validate:"required"`
	Options       []string `json:"options" validate:"len=4,dive,required"`
	CorrectAnswer int      `json:"correctAnswer" validate:"min=0,max=3"`
}

// NewContestant is the insert form of a contestant; the store assigns the
// contestant ID and per-question IDs.
type NewContestant struct {
	Name               string        `json:"name" validate:"required"`
	Questions          []NewQuestion `json:"questions" validate:"dive"`
	RandomizeQuestions bool          `json:"randomizeQuestions"`
	RandomizeOptions   bool          `json:"randomizeOptions"`
	EnableTimer        bool          `json:"enableTimer"`
	TimerMinutes       int           `json:"timerMinutes" validate:"min=1,max=60"`
}

// Insert converts a stored contestant back to its insert form, dropping all
// identity. Used by the import path so re-imported contestants always get
// fresh IDs.
func (c Contestant) Insert() NewContestant {
	questions := make([]NewQuestion, 0, len(c.Questions))
	for _, q := range c.Questions {
		questions = append(questions, NewQuestion{
			Text:          q.Text,
			Options:       append([]string(nil), q.Options...),
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return NewContestant{
		Name:               c.Name,
		Questions:          questions,
		RandomizeQuestions: c.RandomizeQuestions,
		RandomizeOptions:   c.RandomizeOptions,
		EnableTimer:        c.EnableTimer,
		TimerMinutes:       c.TimerMinutes,
	}
}

// Result is the completion payload for one finished quiz session.
type Result struct {
	CorrectCount   int `json:"correctCount"`
	TotalQuestions int `json:"totalQuestions"`
	Percentage     int `json:"percentage"`
}
