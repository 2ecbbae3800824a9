package app_test

import (
	"context"
	"testing"
	"time"

	"daily-trivia-service/internal/app"
	"daily-trivia-service/internal/domain"
	"daily-trivia-service/internal/infra/memory"
)

func fixedClock(day string) func() time.Time {
	t, _ := time.Parse(time.RFC3339, day+"T12:00:00Z")
	return func() time.Time { return t }
}

func newTestService(day string, questions []domain.Question) (*app.GameService, *memory.Leaderboard) {
	board := memory.NewLeaderboard()
	bank := memory.NewStaticQuestionBank(map[domain.Day][]domain.Question{
		domain.Day(day): questions,
	})
	service := app.NewGameServiceWithClock(bank, board, fixedClock(day))
	return service, board
}

func TestTodayQuestionsScopedByDay(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService("2024-01-02", testQuestions(3))

	questions, err := service.TodayQuestions(ctx)
	if err != nil {
		t.Fatalf("today questions: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}

	// A different day sees nothing, and that is not an error.
	other, _ := newTestService("2024-01-03", nil)
	questions, err = other.TodayQuestions(ctx)
	if err != nil {
		t.Fatalf("empty day errored: %v", err)
	}
	if len(questions) != 0 {
		t.Fatalf("expected no questions, got %d", len(questions))
	}
}

func TestStartSessionWithoutQuestions(t *testing.T) {
	service, _ := newTestService("2024-01-02", nil)
	if _, err := service.StartSession(context.Background(), app.Timing{}); err != domain.ErrNoQuestionsToday {
		t.Fatalf("expected ErrNoQuestionsToday, got %v", err)
	}
}

func TestSubmitScoreRejectsDuplicateName(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService("2024-01-02", testQuestions(3))

	entries, err := service.SubmitScore(ctx, "Ana", 10)
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if len(entries) != 1 || entries[0].Score != 10 {
		t.Fatalf("expected Ana with 10, got %+v", entries)
	}

	if _, err := service.SubmitScore(ctx, "Ana", 7); err != domain.ErrDuplicateName {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	_, entries, err = service.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 1 || entries[0].Score != 10 {
		t.Fatalf("duplicate overwrote the first entry: %+v", entries)
	}
}

func TestSubmitScoreTrimsName(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService("2024-01-02", testQuestions(1))

	if _, err := service.SubmitScore(ctx, "   ", 5); err != domain.ErrEmptyName {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	entries, err := service.SubmitScore(ctx, "  Bea ", 5)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if entries[0].Name != "Bea" {
		t.Fatalf("expected trimmed name, got %q", entries[0].Name)
	}
}

func TestLeaderboardOrdersByScoreThenSubmission(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService("2024-01-02", testQuestions(1))

	for _, sub := range []struct {
		name  string
		score int
	}{{"Ana", 7}, {"Bea", 10}, {"Caio", 7}} {
		if _, err := service.SubmitScore(ctx, sub.name, sub.score); err != nil {
			t.Fatalf("submit %s: %v", sub.name, err)
		}
	}

	_, entries, err := service.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	names := []string{entries[0].Name, entries[1].Name, entries[2].Name}
	if names[0] != "Bea" || names[1] != "Ana" || names[2] != "Caio" {
		t.Fatalf("expected [Bea Ana Caio], got %v", names)
	}
}

func TestDayRolloverResetsLeaderboard(t *testing.T) {
	ctx := context.Background()
	board := memory.NewLeaderboard()
	bank := memory.NewStaticQuestionBank(nil)

	yesterday := app.NewGameServiceWithClock(bank, board, fixedClock("2024-01-01"))
	if _, err := yesterday.SubmitScore(ctx, "Ana", 10); err != nil {
		t.Fatalf("seed submit: %v", err)
	}

	today := app.NewGameServiceWithClock(bank, board, fixedClock("2024-01-02"))
	reset, err := today.ResetIfDue(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !reset {
		t.Fatalf("expected reset to fire on rollover")
	}

	latest, _ := board.LatestDay(ctx)
	if latest != "" {
		t.Fatalf("expected empty leaderboard after reset, latest=%s", latest)
	}

	// Redundant probes are silent no-ops.
	reset, err = today.ResetIfDue(ctx)
	if err != nil || reset {
		t.Fatalf("expected idempotent no-op, got reset=%v err=%v", reset, err)
	}
}

func TestLeaderboardReadTriggersReset(t *testing.T) {
	ctx := context.Background()
	board := memory.NewLeaderboard()
	bank := memory.NewStaticQuestionBank(nil)

	yesterday := app.NewGameServiceWithClock(bank, board, fixedClock("2024-01-01"))
	if _, err := yesterday.SubmitScore(ctx, "Ana", 10); err != nil {
		t.Fatalf("seed submit: %v", err)
	}

	today := app.NewGameServiceWithClock(bank, board, fixedClock("2024-01-02"))
	day, entries, err := today.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if day != "2024-01-02" {
		t.Fatalf("expected today's date, got %s", day)
	}
	if len(entries) != 0 {
		t.Fatalf("expected stale entries cleared, got %+v", entries)
	}
}
