package session

import (
	"math/rand"
	"sync"
	"time"

	"millionaire-quiz-service/internal/domain"
)

const (
	defaultAdvanceDelay       = 1500 * time.Millisecond
	defaultPhoneFriendSeconds = 30
)

// Config tunes session timing. Zero fields fall back to defaults; Rand is
// the seam for deterministic shuffles in tests.
type Config struct {
	Rand               *rand.Rand
	TickInterval       time.Duration
	AdvanceDelay       time.Duration
	PhoneFriendSeconds int
}

func (c Config) withDefaults() Config {
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.TickInterval <= 0 {
		c.TickInterval = time.Second
	}
	if c.AdvanceDelay <= 0 {
		c.AdvanceDelay = defaultAdvanceDelay
	}
	if c.PhoneFriendSeconds <= 0 {
		c.PhoneFriendSeconds = defaultPhoneFriendSeconds
	}
	return c
}

// Engine drives one quiz play-through: question progression, answer locking,
// lifelines, timers, scoring, and completion. All state belongs to the
// engine and is mutated under its mutex; timer goroutines re-enter through
// guarded callbacks, so a cancelled timer's late tick can never act on a
// locked question or a finished session.
type Engine struct {
	mu sync.Mutex

	playOrder []domain.Question
	index     int
	correct   int
	gates     lifelines

	// per-question state, reset on advance
	selected int
	locked   bool
	removed  map[int]struct{}

	timerEnabled bool
	remaining    int // whole-session countdown, frozen while locked

	phoneFriendOpen      bool
	phoneFriendRemaining int

	started     bool
	finished    bool
	resultReady bool
	result      domain.Result

	cfg           Config
	rnd           *rand.Rand
	questionTimer *countdown
	lifelineTimer *countdown
	advanceTimer  *time.Timer

	subscribers map[chan Event]struct{}
}

// New builds an engine from a contestant snapshot with default timing.
func New(c domain.Contestant) (*Engine, error) {
	return NewWithConfig(c, Config{})
}

// NewWithConfig builds an engine with explicit timing and randomness, used
// by tests and by hosts that tune the feedback pause. Preparation runs here,
// once; a contestant without questions cannot start a session.
func NewWithConfig(c domain.Contestant, cfg Config) (*Engine, error) {
	if len(c.Questions) == 0 {
		return nil, domain.ErrNoQuestions
	}
	cfg = cfg.withDefaults()
	playOrder, remaining := Prepare(c, cfg.Rand)
	return &Engine{
		playOrder:    playOrder,
		selected:     -1,
		removed:      make(map[int]struct{}),
		timerEnabled: c.EnableTimer,
		remaining:    remaining,
		cfg:          cfg,
		rnd:          cfg.Rand,
		subscribers:  make(map[chan Event]struct{}),
	}, nil
}

// Start shows the first question and arms the question countdown. Calling it
// twice is a no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || e.finished {
		return
	}
	e.started = true
	e.broadcastLocked(e.questionEventLocked())
	e.armQuestionTimerLocked()
}

// SelectAnswer locks in an answer for the current question. Repeats, removed
// indices, and out-of-range indices are rejected silently. Locking freezes
// the question countdown, dismisses an open phone-a-friend panel, scores the
// question, and arms the auto-advance pause.
func (e *Engine) SelectAnswer(index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started || e.finished || e.locked {
		return
	}
	q := e.playOrder[e.index]
	if index < 0 || index >= len(q.Options) {
		return
	}
	if _, gone := e.removed[index]; gone {
		return
	}

	e.locked = true
	e.selected = index
	e.stopQuestionTimerLocked()
	e.closePhoneFriendLocked()

	correct := index == q.CorrectAnswer
	if correct {
		e.correct++
	}
	e.broadcastLocked(Event{Type: EventAnswer, Answer: &AnswerEvent{
		Index:        index,
		Correct:      correct,
		CorrectIndex: q.CorrectAnswer,
	}})

	lockedIndex := e.index
	e.advanceTimer = time.AfterFunc(e.cfg.AdvanceDelay, func() {
		e.autoAdvance(lockedIndex)
	})
}

// Advance moves past a locked question without waiting for the feedback
// pause. It is a no-op unless an answer is locked.
func (e *Engine) Advance() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finished || !e.locked {
		return
	}
	e.advanceLocked()
}

// autoAdvance is the auto-advance timer callback; the index guard makes a
// late fire after a manual advance harmless.
func (e *Engine) autoAdvance(fromIndex int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finished || !e.locked || e.index != fromIndex {
		return
	}
	e.advanceLocked()
}

// UseFiftyFifty removes two wrong options for the current question and
// consumes the gate for the rest of the session. Rejected silently when the
// gate is spent, options are already removed, or an answer is locked.
func (e *Engine) UseFiftyFifty() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started || e.finished || e.locked || len(e.removed) > 0 {
		return
	}
	removed, ok := e.gates.fiftyFifty(e.rnd, e.playOrder[e.index].CorrectAnswer)
	if !ok {
		return
	}
	for _, i := range removed {
		e.removed[i] = struct{}{}
	}
	e.broadcastLocked(Event{Type: EventLifeline, Lifeline: &LifelineEvent{
		Kind:    LifelineFiftyFifty,
		Removed: removed,
	}})
}

// UsePhoneFriend consumes the gate and opens the 30-second panel countdown.
// It runs concurrently with the question countdown and never affects scoring
// or termination.
func (e *Engine) UsePhoneFriend() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started || e.finished || e.locked {
		return
	}
	if !e.gates.phoneFriend() {
		return
	}
	e.phoneFriendOpen = true
	e.phoneFriendRemaining = e.cfg.PhoneFriendSeconds
	e.broadcastLocked(Event{Type: EventLifeline, Lifeline: &LifelineEvent{Kind: LifelinePhoneFriend}})
	e.broadcastLocked(Event{Type: EventPhoneFriend, PhoneFriend: &PhoneFriendEvent{
		Open:      true,
		Remaining: e.phoneFriendRemaining,
	}})
	e.lifelineTimer = startCountdown(e.cfg.TickInterval, e.phoneFriendTick)
}

// Close cancels every timer without emitting a result; call it when the
// hosting connection goes away mid-session. No timer may tick into a
// disposed session.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.finished = true
	e.stopQuestionTimerLocked()
	e.stopLifelineTimerLocked()
	e.stopAdvanceTimerLocked()
	e.phoneFriendOpen = false
}

// Subscribe returns a channel of engine events. The caller must invoke the
// returned cancel function to avoid leaks.
func (e *Engine) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	e.mu.Lock()
	e.subscribers[ch] = struct{}{}
	e.mu.Unlock()

	cancel := func() {
		e.mu.Lock()
		if _, ok := e.subscribers[ch]; ok {
			delete(e.subscribers, ch)
			close(ch)
		}
		e.mu.Unlock()
	}
	return ch, cancel
}

// Result reports the completion payload once the session finished normally
// or by timer expiry.
func (e *Engine) Result() (domain.Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result, e.resultReady
}

// Snapshot is a read-only view of session state for hosts and tests.
type Snapshot struct {
	QuestionNumber  int
	TotalQuestions  int
	CorrectCount    int
	SelectedAnswer  int
	Locked          bool
	Removed         []int
	RemainingTime   int
	FiftyFiftyUsed  bool
	PhoneFriendUsed bool
	PhoneFriendOpen bool
	Finished        bool
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	removed := make([]int, 0, len(e.removed))
	for i := range e.removed {
		removed = append(removed, i)
	}
	return Snapshot{
		QuestionNumber:  e.index + 1,
		TotalQuestions:  len(e.playOrder),
		CorrectCount:    e.correct,
		SelectedAnswer:  e.selected,
		Locked:          e.locked,
		Removed:         removed,
		RemainingTime:   e.remaining,
		FiftyFiftyUsed:  e.gates.fiftyFiftyUsed,
		PhoneFriendUsed: e.gates.phoneFriendUsed,
		PhoneFriendOpen: e.phoneFriendOpen,
		Finished:        e.finished,
	}
}

// advanceLocked resets per-question state and shows the next question, or
// finishes the session after the last one. Lifeline gates are never reset.
func (e *Engine) advanceLocked() {
	e.stopAdvanceTimerLocked()
	e.index++
	e.locked = false
	e.selected = -1
	e.removed = make(map[int]struct{})

	if e.index >= len(e.playOrder) {
		e.finishLocked()
		return
	}
	e.broadcastLocked(e.questionEventLocked())
	e.armQuestionTimerLocked()
}

// finishLocked is the single entry into the terminal state; the result is
// computed exactly once.
func (e *Engine) finishLocked() {
	if e.finished {
		return
	}
	e.finished = true
	e.stopQuestionTimerLocked()
	e.stopLifelineTimerLocked()
	e.stopAdvanceTimerLocked()
	e.phoneFriendOpen = false

	e.result = computeResult(e.correct, len(e.playOrder))
	e.resultReady = true
	result := e.result
	e.broadcastLocked(Event{Type: EventFinished, Result: &result})
}

func (e *Engine) armQuestionTimerLocked() {
	if !e.timerEnabled || e.finished {
		return
	}
	e.questionTimer = startCountdown(e.cfg.TickInterval, e.questionTick)
}

// questionTick decrements the whole-session countdown. An answer lock always
// wins a same-instant race: the tick re-checks state under the mutex and
// bails out once locked or finished.
func (e *Engine) questionTick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finished || e.locked {
		return false
	}
	e.remaining--
	if e.remaining <= 0 {
		e.remaining = 0
		e.broadcastLocked(Event{Type: EventTimer, Timer: &TimerEvent{Remaining: 0, Expired: true}})
		// Expiry truncates the whole session at the current score; the
		// unanswered question is not scored as wrong.
		e.finishLocked()
		return false
	}
	e.broadcastLocked(Event{Type: EventTimer, Timer: &TimerEvent{Remaining: e.remaining}})
	return true
}

func (e *Engine) phoneFriendTick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finished || !e.phoneFriendOpen {
		return false
	}
	e.phoneFriendRemaining--
	if e.phoneFriendRemaining <= 0 {
		e.closePhoneFriendLocked()
		return false
	}
	e.broadcastLocked(Event{Type: EventPhoneFriend, PhoneFriend: &PhoneFriendEvent{
		Open:      true,
		Remaining: e.phoneFriendRemaining,
	}})
	return true
}

// closePhoneFriendLocked dismisses the panel, whether the countdown expired
// or the player answered while it ran.
func (e *Engine) closePhoneFriendLocked() {
	e.stopLifelineTimerLocked()
	if !e.phoneFriendOpen {
		return
	}
	e.phoneFriendOpen = false
	e.broadcastLocked(Event{Type: EventPhoneFriend, PhoneFriend: &PhoneFriendEvent{Open: false}})
}

func (e *Engine) stopQuestionTimerLocked() {
	if e.questionTimer != nil {
		e.questionTimer.cancel()
		e.questionTimer = nil
	}
}

func (e *Engine) stopLifelineTimerLocked() {
	if e.lifelineTimer != nil {
		e.lifelineTimer.cancel()
		e.lifelineTimer = nil
	}
}

func (e *Engine) stopAdvanceTimerLocked() {
	if e.advanceTimer != nil {
		e.advanceTimer.Stop()
		e.advanceTimer = nil
	}
}

func (e *Engine) questionEventLocked() Event {
	q := e.playOrder[e.index]
	view := &QuestionView{
		Number:         e.index + 1,
		TotalQuestions: len(e.playOrder),
		Text:           q.Text,
		Options:        append([]string(nil), q.Options...),
		CanFiftyFifty:  !e.gates.fiftyFiftyUsed,
		CanPhoneFriend: !e.gates.phoneFriendUsed,
	}
	if e.timerEnabled {
		view.RemainingTime = e.remaining
	}
	return Event{Type: EventQuestion, Question: view}
}

// broadcastLocked fans an event out to subscribers without blocking; a slow
// subscriber loses its oldest pending event rather than stalling the engine.
func (e *Engine) broadcastLocked(ev Event) {
	for ch := range e.subscribers {
		select {
		case ch <- ev:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
}
