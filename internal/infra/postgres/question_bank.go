package postgres

import (
	"context"
	"fmt"

	"daily-trivia-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuestionBank loads day-scoped questions from Postgres.
type QuestionBank struct {
	pool *pgxpool.Pool
}

func NewQuestionBank(pool *pgxpool.Pool) *QuestionBank {
	return &QuestionBank{pool: pool}
}

// QuestionsForDay joins questions with their options, both in id order so
// every caller sees the same stable sequence. A day with no questions yields
// an empty slice.
func (b *QuestionBank) QuestionsForDay(ctx context.Context, day domain.Day) ([]domain.Question, error) {
	rows, err := b.pool.Query(ctx, `
		SELECT q.id, q.text, o.id, o.text, o.is_correct
		FROM questions q
		JOIN options o ON o.question_id = q.id
		WHERE q.day = $1
		ORDER BY q.id, o.id`, string(day))
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	questions := make([]domain.Question, 0)
	for rows.Next() {
		var (
			questionID int64
			text       string
			option     domain.Option
		)
		if err := rows.Scan(&questionID, &text, &option.ID, &option.Text, &option.IsCorrect); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if n := len(questions); n == 0 || questions[n-1].ID != questionID {
			questions = append(questions, domain.Question{ID: questionID, Text: text, Day: day})
		}
		last := &questions[len(questions)-1]
		last.Options = append(last.Options, option)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	return questions, nil
}
