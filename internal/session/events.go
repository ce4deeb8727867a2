package session

import "millionaire-quiz-service/internal/domain"

// EventType discriminates the events a session engine emits to its host.
type EventType string

const (
	EventQuestion    EventType = "question"
	EventAnswer      EventType = "answer"
	EventLifeline    EventType = "lifeline"
	EventPhoneFriend EventType = "phoneFriend"
	EventTimer       EventType = "timer"
	EventFinished    EventType = "finished"
)

// LifelineKind names the two lifelines.
type LifelineKind string

const (
	LifelineFiftyFifty  LifelineKind = "fifty-fifty"
	LifelinePhoneFriend LifelineKind = "phone-friend"
)

// QuestionView is what the host may show for the current question. The
// correct index is deliberately absent; it is only revealed in AnswerEvent.
type QuestionView struct {
	Number         int      `json:"number"`
	TotalQuestions int      `json:"totalQuestions"`
	Text           string   `json:"text"`
	Options        []string `json:"options"`
	RemainingTime  int      `json:"remainingTime,omitempty"`
	CanFiftyFifty  bool     `json:"canUseFiftyFifty"`
	CanPhoneFriend bool     `json:"canUsePhoneFriend"`
}

// AnswerEvent reports a locked-in answer and reveals the correct index for
// host feedback.
type AnswerEvent struct {
	Index        int  `json:"index"`
	Correct      bool `json:"correct"`
	CorrectIndex int  `json:"correctIndex"`
}

// LifelineEvent reports a consumed lifeline. Removed is set for fifty-fifty.
type LifelineEvent struct {
	Kind    LifelineKind `json:"kind"`
	Removed []int        `json:"removed,omitempty"`
}

// PhoneFriendEvent tracks the phone-a-friend panel: open with a remaining
// countdown, or closed (expired or dismissed by answering).
type PhoneFriendEvent struct {
	Open      bool `json:"open"`
	Remaining int  `json:"remaining,omitempty"`
}

// TimerEvent carries a question-countdown tick; Expired marks the tick that
// truncated the session.
type TimerEvent struct {
	Remaining int  `json:"remaining"`
	Expired   bool `json:"expired,omitempty"`
}

// Event is the union the engine broadcasts; exactly one payload field is set
// according to Type.
type Event struct {
	Type        EventType         `json:"type"`
	Question    *QuestionView     `json:"question,omitempty"`
	Answer      *AnswerEvent      `json:"answer,omitempty"`
	Lifeline    *LifelineEvent    `json:"lifeline,omitempty"`
	PhoneFriend *PhoneFriendEvent `json:"phoneFriend,omitempty"`
	Timer       *TimerEvent       `json:"timer,omitempty"`
	Result      *domain.Result    `json:"result,omitempty"`
}
