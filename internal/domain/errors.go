package domain

import "errors"

var (
	// ErrNoQuestionsToday indicates no questions are scheduled for the current day.
	// A valid terminal state for callers, not a storage fault.
	ErrNoQuestionsToday = errors.New("no questions available today")
	// ErrDuplicateName is returned when a name already holds a score for the day.
	ErrDuplicateName = errors.New("name already on today's leaderboard")
	// ErrEmptyName is returned when a submitted name is blank after trimming.
	ErrEmptyName = errors.New("name must not be empty")
	// ErrSessionFinished rejects events arriving after the session reached its terminal state.
	ErrSessionFinished = errors.New("session already finished")
	// ErrSessionNotStarted rejects play events before Start.
	ErrSessionNotStarted = errors.New("session not started")
	// ErrAnswerPending rejects a second answer while the feedback pause is in flight.
	ErrAnswerPending = errors.New("answer already pending")
	// ErrOptionNotFound indicates a submitted option ID is not on the current question.
	ErrOptionNotFound = errors.New("option not found")
)
