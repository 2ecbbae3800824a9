package domain

// Option represents a possible answer for a question.
type Option struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Question is a multiple-choice question active on exactly one calendar day.
// Exactly one option should carry IsCorrect; the bank does not validate this.
type Question struct {
	ID      int64    `json:"id"`
	Text    string   `json:"text"`
	Day     Day      `json:"date"`
	Options []Option `json:"options"`
}

// LeaderboardEntry is one scored play-through. At most one entry exists
// per (name, day) pair.
type LeaderboardEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Day   Day    `json:"date"`
}

// AnswerRecord logs what was selected for one question during a session.
type AnswerRecord struct {
	Question string `json:"question"`
	Selected string `json:"selected"`
	Correct  bool   `json:"isCorrect"`
}

// GameSummary is the read-only snapshot of a finished session.
type GameSummary struct {
	Score    int            `json:"score"`
	TimeLeft int            `json:"timeLeft"`
	Answers  []AnswerRecord `json:"answers"`
}
