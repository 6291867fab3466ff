package domain

import (
	"context"
	"errors"
	"time"
)

// DefaultDailyGoalMinutes is applied when a record is created without an
// explicit daily goal (9 hours).
const DefaultDailyGoalMinutes = 540

var (
	// ErrInvalidDuration means no duration token was recognized in the input.
	ErrInvalidDuration = errors.New("no duration recognized")
	// ErrNoData means a stats or leaderboard query matched no records.
	ErrNoData = errors.New("no data")
)

// User is the per-user ledger record. One row per user id, created lazily on
// the first successful study log.
type User struct {
	UserID            string    `json:"user_id" db:"user_id"`
	Name              string    `json:"name" db:"name"`
	TotalMinutes      int       `json:"total_minutes" db:"total_minutes"`
	DailyGoalMinutes  int       `json:"daily_goal_minutes" db:"daily_goal_minutes"`
	WeeklyGoalMinutes int       `json:"weekly_goal_minutes" db:"weekly_goal_minutes"`
	Streak            int       `json:"streak" db:"streak"`
	LastLogDate       time.Time `json:"last_log_date" db:"last_log_date"`
	TotalDebtMinutes  int       `json:"total_debt_minutes" db:"total_debt_minutes"`
	DebtAssessedDate  time.Time `json:"debt_assessed_date" db:"debt_assessed_date"`
}

// StudyEntry is one atomic ledger write: the fields to set on the user row
// plus the increment to apply to the given date and to total_minutes.
type StudyEntry struct {
	UserID  string
	Name    string
	Date    time.Time
	Minutes int
	Streak  int
}

// RankedUser is one leaderboard row.
type RankedUser struct {
	UserID  string
	Name    string
	Minutes int
	Streak  int
}

// UserRepository is the durable store for user records. Implementations hold
// no business logic; ApplyStudyLog must be atomic so that two concurrent
// writes for the same user both land.
type UserRepository interface {
	GetUser(ctx context.Context, userID string) (*User, error)
	ApplyStudyLog(ctx context.Context, entry *StudyEntry) error
	GetDayMinutes(ctx context.Context, userID string, date time.Time) (int, error)
	GetRangeMinutes(ctx context.Context, userID string, from, to time.Time) (int, error)
	SetDailyGoal(ctx context.Context, userID string, minutes int) error
	SetWeeklyGoal(ctx context.Context, userID string, minutes int) error
	AssessDebt(ctx context.Context, userID string, date time.Time, shortfall int) error
	PayDebt(ctx context.Context, userID string, minutes int) error
	ResetUser(ctx context.Context, userID string) error
	DailyTop(ctx context.Context, date time.Time, limit int) ([]RankedUser, error)
	WeeklyTop(ctx context.Context, from, to time.Time, limit int) ([]RankedUser, error)
	AllTimeTop(ctx context.Context, limit int) ([]RankedUser, error)
	StreakTop(ctx context.Context, limit int) ([]RankedUser, error)
}

// DateOf truncates t to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of t's ISO week, as a UTC calendar date.
func WeekStart(t time.Time) time.Time {
	d := DateOf(t)
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return d.AddDate(0, 0, -offset)
}
