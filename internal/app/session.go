package app

import (
	"sync"
	"time"

	"daily-trivia-service/internal/domain"
)

// Countdown rules for a daily play-through.
const (
	StartingTime = 20 // seconds on the clock at session start
	CorrectBonus = 5  // seconds gained per correct answer
	WrongPenalty = 3  // seconds lost per wrong answer
)

// DefaultTiming is the real-time schedule: one tick per second and a 1.5s
// feedback pause before the next question is shown.
var DefaultTiming = Timing{
	TickInterval:  time.Second,
	FeedbackDelay: 1500 * time.Millisecond,
}

// Timing controls the session's clock sources. Zero values disable the
// internal ticker and advance scheduling; tests drive Tick and Advance directly.
type Timing struct {
	TickInterval  time.Duration
	FeedbackDelay time.Duration
}

// SessionState is the lifecycle phase of a session. No transition leaves Finished.
type SessionState int

const (
	StateNotStarted SessionState = iota
	StateInProgress
	StateFinished
)

// Session is one player's play-through: a snapshot of today's questions, a
// countdown, a score, and an append-only answer log. Two clock sources feed
// it (the per-second tick and the delayed post-feedback advance); a single
// mutex serializes them so only one transition wins the race into Finished.
type Session struct {
	mu        sync.Mutex
	state     SessionState
	questions []domain.Question
	index     int
	score     int
	timeLeft  int
	answers   []domain.AnswerRecord
	timing    Timing

	advancePending bool
	pending        *time.Timer
	ticker         *time.Ticker
	done           chan struct{}
	events         chan domain.SessionEvent
}

// NewSession snapshots the question sequence; later bank changes do not
// affect the session.
func NewSession(questions []domain.Question, timing Timing) *Session {
	snapshot := make([]domain.Question, len(questions))
	copy(snapshot, questions)
	return &Session{
		questions: snapshot,
		timing:    timing,
		events:    make(chan domain.SessionEvent, 16),
	}
}

// Events exposes the presentation stream. The channel is closed when the
// session finishes.
func (s *Session) Events() <-chan domain.SessionEvent { return s.events }

// Start moves the session into play and emits the first question. Starting
// with an empty snapshot fails so callers surface "nothing to play today"
// instead of an empty game.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateInProgress:
		return nil
	case StateFinished:
		return domain.ErrSessionFinished
	}
	if len(s.questions) == 0 {
		return domain.ErrNoQuestionsToday
	}

	s.state = StateInProgress
	s.index = 0
	s.score = 0
	s.timeLeft = StartingTime
	s.answers = nil
	s.emitLocked(domain.SessionEvent{Type: domain.EventQuestion, Question: s.questionViewLocked()})

	if s.timing.TickInterval > 0 {
		s.ticker = time.NewTicker(s.timing.TickInterval)
		s.done = make(chan struct{})
		go s.runTicks(s.ticker, s.done)
	}
	return nil
}

func (s *Session) runTicks(ticker *time.Ticker, done chan struct{}) {
	for {
		select {
		case <-ticker.C:
			s.Tick()
		case <-done:
			return
		}
	}
}

// SelectAnswer scores the chosen option against the current question. The
// score and clock mutate immediately; the index advance is deferred for the
// feedback pause. Events after Finished and double answers within one pause
// degrade to errors with no state change.
func (s *Session) SelectAnswer(optionID int64) (domain.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateNotStarted:
		return domain.Feedback{}, domain.ErrSessionNotStarted
	case StateFinished:
		return domain.Feedback{}, domain.ErrSessionFinished
	}
	if s.advancePending {
		return domain.Feedback{}, domain.ErrAnswerPending
	}

	question := s.questions[s.index]
	var selected *domain.Option
	for i := range question.Options {
		if question.Options[i].ID == optionID {
			selected = &question.Options[i]
			break
		}
	}
	if selected == nil {
		return domain.Feedback{}, domain.ErrOptionNotFound
	}

	s.answers = append(s.answers, domain.AnswerRecord{
		Question: question.Text,
		Selected: selected.Text,
		Correct:  selected.IsCorrect,
	})

	delta := -WrongPenalty
	if selected.IsCorrect {
		s.score++
		delta = CorrectBonus
	}
	// May go negative here; the next tick treats any value <= 0 as expiry.
	s.timeLeft += delta

	feedback := domain.Feedback{
		Correct:   selected.IsCorrect,
		TimeDelta: delta,
		Score:     s.score,
		TimeLeft:  s.timeLeft,
	}
	s.emitLocked(domain.SessionEvent{Type: domain.EventFeedback, Feedback: &feedback})

	s.advancePending = true
	if s.timing.FeedbackDelay > 0 {
		s.pending = time.AfterFunc(s.timing.FeedbackDelay, s.Advance)
	}
	return feedback, nil
}

// Tick is the per-second countdown transition. At zero the session finishes
// immediately, cancelling any pending advance.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return
	}
	s.timeLeft--
	if s.timeLeft <= 0 {
		s.timeLeft = 0
		s.finishLocked()
		return
	}
	s.emitLocked(domain.SessionEvent{Type: domain.EventTick, TimeLeft: s.timeLeft})
}

// Advance applies the deferred index increment once the feedback pause
// elapses. A session the timer already finished stays finished.
func (s *Session) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress || !s.advancePending {
		return
	}
	s.advancePending = false
	s.pending = nil
	s.index++
	if s.index >= len(s.questions) {
		s.finishLocked()
		return
	}
	s.emitLocked(domain.SessionEvent{Type: domain.EventQuestion, Question: s.questionViewLocked()})
}

// Finish forces the terminal state, e.g. when the player disconnects.
func (s *Session) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finishLocked()
}

func (s *Session) finishLocked() {
	if s.state == StateFinished {
		return
	}
	s.state = StateFinished
	s.advancePending = false
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	summary := s.summaryLocked()
	s.emitLocked(domain.SessionEvent{Type: domain.EventFinished, Summary: &summary})
	close(s.events)
}

// State reports the current lifecycle phase.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Score returns the current score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// TimeLeft returns the seconds remaining on the countdown.
func (s *Session) TimeLeft() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeLeft
}

// QuestionCount reports the size of the question snapshot.
func (s *Session) QuestionCount() int {
	return len(s.questions)
}

// Summary snapshots the score, clock, and answer log.
func (s *Session) Summary() domain.GameSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

func (s *Session) summaryLocked() domain.GameSummary {
	answers := make([]domain.AnswerRecord, len(s.answers))
	copy(answers, s.answers)
	return domain.GameSummary{
		Score:    s.score,
		TimeLeft: s.timeLeft,
		Answers:  answers,
	}
}

func (s *Session) questionViewLocked() *domain.QuestionView {
	question := s.questions[s.index]
	options := make([]domain.Option, len(question.Options))
	copy(options, question.Options)
	return &domain.QuestionView{
		Index:    s.index,
		Total:    len(s.questions),
		Text:     question.Text,
		Options:  options,
		TimeLeft: s.timeLeft,
	}
}

func (s *Session) emitLocked(event domain.SessionEvent) {
	select {
	case s.events <- event:
	default:
		// Drop the oldest update so a slow presentation sink never blocks
		// a transition.
		select {
		case <-s.events:
		default:
		}
		s.events <- event
	}
}
