package domain

import "time"

// Day is a UTC calendar date with no time component, formatted YYYY-MM-DD.
// The empty string means "no day", e.g. an empty leaderboard.
type Day string

const dayLayout = "2006-01-02"

// DayOf normalizes a point in time to its UTC calendar day.
func DayOf(t time.Time) Day {
	return Day(t.UTC().Format(dayLayout))
}

// Time returns midnight UTC of the day. The zero time is returned for
// an empty or malformed day.
func (d Day) Time() time.Time {
	t, err := time.Parse(dayLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d Day) String() string { return string(d) }

// ResetDue reports whether the leaderboard must be cleared before accepting
// entries for today. An empty mostRecent (no entries) means there is nothing
// to clear, so no reset is due. Pure: same inputs, same answer.
func ResetDue(mostRecent, today Day) bool {
	if mostRecent == "" {
		return false
	}
	return mostRecent != today
}
