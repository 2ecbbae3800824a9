package domain

// EventType discriminates session events sent to the presentation sink.
type EventType string

const (
	EventQuestion EventType = "question"
	EventFeedback EventType = "feedback"
	EventTick     EventType = "tick"
	EventFinished EventType = "finished"
)

// QuestionView is the current question as shown to the player.
type QuestionView struct {
	Index    int      `json:"index"`
	Total    int      `json:"total"`
	Text     string   `json:"text"`
	Options  []Option `json:"options"`
	TimeLeft int      `json:"timeLeft"`
}

// Feedback is emitted immediately after an answer is scored, before the
// session advances to the next question.
type Feedback struct {
	Correct   bool `json:"correct"`
	TimeDelta int  `json:"timeDelta"`
	Score     int  `json:"score"`
	TimeLeft  int  `json:"timeLeft"`
}

// SessionEvent is one state-change notification from a game session.
// Exactly one payload field is set, matching Type.
type SessionEvent struct {
	Type     EventType     `json:"type"`
	Question *QuestionView `json:"question,omitempty"`
	Feedback *Feedback     `json:"feedback,omitempty"`
	TimeLeft int           `json:"timeLeft"`
	Summary  *GameSummary  `json:"summary,omitempty"`
}
