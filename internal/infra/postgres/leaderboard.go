package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"daily-trivia-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Leaderboard is the Postgres implementation of app.LeaderboardRepository.
// The (name, day) primary key makes the duplicate guard a single conditional
// insert instead of a racy check-then-insert.
type Leaderboard struct {
	pool *pgxpool.Pool
}

func NewLeaderboard(pool *pgxpool.Pool) *Leaderboard {
	return &Leaderboard{pool: pool}
}

func (l *Leaderboard) Submit(ctx context.Context, entry domain.LeaderboardEntry) error {
	tag, err := l.pool.Exec(ctx, `
		INSERT INTO leaderboard (name, score, day)
		VALUES ($1, $2, $3)
		ON CONFLICT (name, day) DO NOTHING`,
		entry.Name, entry.Score, string(entry.Day))
	if err != nil {
		return fmt.Errorf("submit score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicateName
	}
	return nil
}

func (l *Leaderboard) Day(ctx context.Context, day domain.Day) ([]domain.LeaderboardEntry, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT name, score, day
		FROM leaderboard
		WHERE day = $1
		ORDER BY score DESC, id ASC`, string(day))
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.LeaderboardEntry, 0)
	for rows.Next() {
		var (
			entry domain.LeaderboardEntry
			when  time.Time
		)
		if err := rows.Scan(&entry.Name, &entry.Score, &when); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entry.Day = domain.DayOf(when)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	return entries, nil
}

func (l *Leaderboard) LatestDay(ctx context.Context) (domain.Day, error) {
	var when time.Time
	err := l.pool.QueryRow(ctx, `SELECT day FROM leaderboard ORDER BY day DESC LIMIT 1`).Scan(&when)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("latest day: %w", err)
	}
	return domain.DayOf(when), nil
}

func (l *Leaderboard) ResetAll(ctx context.Context) error {
	if _, err := l.pool.Exec(ctx, `DELETE FROM leaderboard`); err != nil {
		return fmt.Errorf("reset leaderboard: %w", err)
	}
	return nil
}
