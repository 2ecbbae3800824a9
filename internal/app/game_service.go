package app

import (
	"context"
	"strings"
	"time"

	"daily-trivia-service/internal/domain"
)

// QuestionRepository supplies the questions scoped to a calendar day
// (from cache/backing store). An empty slice means nothing to play.
type QuestionRepository interface {
	QuestionsForDay(ctx context.Context, day domain.Day) ([]domain.Question, error)
}

// LeaderboardRepository abstracts how daily scores are stored
// (in-memory, Postgres, etc).
type LeaderboardRepository interface {
	// Submit appends an entry, failing with domain.ErrDuplicateName when the
	// (name, day) pair already exists. Check and insert must be atomic.
	Submit(ctx context.Context, entry domain.LeaderboardEntry) error
	// Day returns the entries for a day, score descending, ties in
	// submission order.
	Day(ctx context.Context, day domain.Day) ([]domain.LeaderboardEntry, error)
	// LatestDay returns the most recent day with an entry, or "" when empty.
	LatestDay(ctx context.Context) (domain.Day, error)
	// ResetAll unconditionally deletes every entry.
	ResetAll(ctx context.Context) error
}

// GameService contains the daily-cycle use cases: serving today's questions,
// running sessions, and gating the leaderboard behind the day-rollover reset.
type GameService struct {
	questions QuestionRepository
	board     LeaderboardRepository
	now       func() time.Time
}

func NewGameService(questions QuestionRepository, board LeaderboardRepository) *GameService {
	return NewGameServiceWithClock(questions, board, time.Now)
}

// NewGameServiceWithClock is a test seam for deterministic day boundaries.
func NewGameServiceWithClock(questions QuestionRepository, board LeaderboardRepository, now func() time.Time) *GameService {
	return &GameService{questions: questions, board: board, now: now}
}

// Today is the current UTC calendar day.
func (s *GameService) Today() domain.Day {
	return domain.DayOf(s.now())
}

// ResetIfDue clears the leaderboard when its latest entry is from an earlier
// day. Safe to invoke redundantly from every probe point; deleting an
// already-empty board is a silent no-op.
func (s *GameService) ResetIfDue(ctx context.Context) (bool, error) {
	latest, err := s.board.LatestDay(ctx)
	if err != nil {
		return false, err
	}
	if !domain.ResetDue(latest, s.Today()) {
		return false, nil
	}
	if err := s.board.ResetAll(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// TodayQuestions returns today's question sequence in stable order. Empty is
// a valid result, not an error.
func (s *GameService) TodayQuestions(ctx context.Context) ([]domain.Question, error) {
	if _, err := s.ResetIfDue(ctx); err != nil {
		return nil, err
	}
	return s.questions.QuestionsForDay(ctx, s.Today())
}

// StartSession snapshots today's questions into a running session.
func (s *GameService) StartSession(ctx context.Context, timing Timing) (*Session, error) {
	questions, err := s.TodayQuestions(ctx)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, domain.ErrNoQuestionsToday
	}
	session := NewSession(questions, timing)
	if err := session.Start(); err != nil {
		return nil, err
	}
	return session, nil
}

// SubmitScore records a finished play-through under the player's chosen name
// and returns the refreshed ranking for today.
func (s *GameService) SubmitScore(ctx context.Context, name string, score int) ([]domain.LeaderboardEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyName
	}
	if _, err := s.ResetIfDue(ctx); err != nil {
		return nil, err
	}
	today := s.Today()
	if err := s.board.Submit(ctx, domain.LeaderboardEntry{Name: name, Score: score, Day: today}); err != nil {
		return nil, err
	}
	return s.board.Day(ctx, today)
}

// Leaderboard returns today's date and ranking.
func (s *GameService) Leaderboard(ctx context.Context) (domain.Day, []domain.LeaderboardEntry, error) {
	if _, err := s.ResetIfDue(ctx); err != nil {
		return "", nil, err
	}
	today := s.Today()
	entries, err := s.board.Day(ctx, today)
	return today, entries, err
}

// ResetAll is the administrative trigger behind POST /leaderboard/reset.
func (s *GameService) ResetAll(ctx context.Context) error {
	return s.board.ResetAll(ctx)
}
