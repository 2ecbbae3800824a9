package memory

import (
	"context"
	"sort"
	"sync"

	"daily-trivia-service/internal/domain"
)

// Leaderboard is an in-memory implementation of app.LeaderboardRepository.
// The mutex makes the duplicate check and the insert one atomic unit.
type Leaderboard struct {
	mu      sync.Mutex
	entries []domain.LeaderboardEntry
}

func NewLeaderboard() *Leaderboard {
	return &Leaderboard{}
}

func (l *Leaderboard) Submit(_ context.Context, entry domain.LeaderboardEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, existing := range l.entries {
		if existing.Name == entry.Name && existing.Day == entry.Day {
			return domain.ErrDuplicateName
		}
	}
	l.entries = append(l.entries, entry)
	return nil
}

func (l *Leaderboard) Day(_ context.Context, day domain.Day) ([]domain.LeaderboardEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ranked := make([]domain.LeaderboardEntry, 0)
	for _, entry := range l.entries {
		if entry.Day == day {
			ranked = append(ranked, entry)
		}
	}
	// Stable: equal scores keep submission order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked, nil
}

func (l *Leaderboard) LatestDay(_ context.Context) (domain.Day, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var latest domain.Day
	for _, entry := range l.entries {
		if entry.Day > latest {
			latest = entry.Day
		}
	}
	return latest, nil
}

func (l *Leaderboard) ResetAll(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	return nil
}
