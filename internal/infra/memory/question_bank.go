package memory

import (
	"context"

	"daily-trivia-service/internal/domain"
)

// QuestionSource fetches day-scoped questions from a backing store.
type QuestionSource interface {
	QuestionsForDay(ctx context.Context, day domain.Day) ([]domain.Question, error)
}

// StaticQuestionBank serves questions from an in-memory per-day map
// (useful for tests/demos and for running without a database).
type StaticQuestionBank struct {
	byDay map[domain.Day][]domain.Question
}

func NewStaticQuestionBank(byDay map[domain.Day][]domain.Question) *StaticQuestionBank {
	return &StaticQuestionBank{byDay: byDay}
}

// QuestionsForDay returns the day's questions in insertion order. A day with
// no questions yields an empty slice, never an error.
func (b *StaticQuestionBank) QuestionsForDay(_ context.Context, day domain.Day) ([]domain.Question, error) {
	questions := b.byDay[day]
	out := make([]domain.Question, len(questions))
	copy(out, questions)
	return out, nil
}
