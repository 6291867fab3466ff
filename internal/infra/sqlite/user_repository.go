package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dimasfirmansyah/studybot/internal/domain"
)

const dateLayout = "2006-01-02"

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) InitTables(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			user_id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			total_minutes INTEGER NOT NULL DEFAULT 0,
			daily_goal_minutes INTEGER NOT NULL DEFAULT 540,
			weekly_goal_minutes INTEGER NOT NULL DEFAULT 0,
			streak INTEGER NOT NULL DEFAULT 0,
			last_log_date TEXT NOT NULL DEFAULT '',
			total_debt_minutes INTEGER NOT NULL DEFAULT 0,
			debt_assessed_date TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS study_log (
			user_id TEXT NOT NULL,
			log_date TEXT NOT NULL,
			minutes INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, log_date)
		);
	`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("init tables: %w", err)
	}
	return nil
}

func (r *UserRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, name, total_minutes, daily_goal_minutes, weekly_goal_minutes,
		       streak, last_log_date, total_debt_minutes, debt_assessed_date
		FROM users WHERE user_id = ?
	`
	row := r.db.QueryRowContext(ctx, query, userID)

	var user domain.User
	var lastLog, assessed string
	err := row.Scan(&user.UserID, &user.Name, &user.TotalMinutes, &user.DailyGoalMinutes,
		&user.WeeklyGoalMinutes, &user.Streak, &lastLog, &user.TotalDebtMinutes, &assessed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if user.LastLogDate, err = parseDate(lastLog); err != nil {
		return nil, err
	}
	if user.DebtAssessedDate, err = parseDate(assessed); err != nil {
		return nil, err
	}

	return &user, nil
}

// ApplyStudyLog upserts the user row and increments the day's ledger entry and
// total_minutes in one transaction, so concurrent logs for the same user both
// land. Goal and debt columns keep their defaults on first insert.
func (r *UserRepository) ApplyStudyLog(ctx context.Context, entry *domain.StudyEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	userQuery := `
		INSERT INTO users (user_id, name, total_minutes, streak, last_log_date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			name = excluded.name,
			total_minutes = users.total_minutes + excluded.total_minutes,
			streak = excluded.streak,
			last_log_date = excluded.last_log_date
	`
	date := entry.Date.Format(dateLayout)
	if _, err := tx.ExecContext(ctx, userQuery, entry.UserID, entry.Name, entry.Minutes, entry.Streak, date); err != nil {
		return err
	}

	logQuery := `
		INSERT INTO study_log (user_id, log_date, minutes)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, log_date) DO UPDATE SET
			minutes = study_log.minutes + excluded.minutes
	`
	if _, err := tx.ExecContext(ctx, logQuery, entry.UserID, date, entry.Minutes); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *UserRepository) GetDayMinutes(ctx context.Context, userID string, date time.Time) (int, error) {
	query := `SELECT COALESCE(SUM(minutes), 0) FROM study_log WHERE user_id = ? AND log_date = ?`
	var minutes int
	err := r.db.QueryRowContext(ctx, query, userID, date.Format(dateLayout)).Scan(&minutes)
	return minutes, err
}

func (r *UserRepository) GetRangeMinutes(ctx context.Context, userID string, from, to time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(minutes), 0) FROM study_log
		WHERE user_id = ? AND log_date >= ? AND log_date <= ?
	`
	var minutes int
	err := r.db.QueryRowContext(ctx, query, userID, from.Format(dateLayout), to.Format(dateLayout)).Scan(&minutes)
	return minutes, err
}

func (r *UserRepository) SetDailyGoal(ctx context.Context, userID string, minutes int) error {
	query := `
		INSERT INTO users (user_id, daily_goal_minutes)
		VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET daily_goal_minutes = excluded.daily_goal_minutes
	`
	_, err := r.db.ExecContext(ctx, query, userID, minutes)
	return err
}

func (r *UserRepository) SetWeeklyGoal(ctx context.Context, userID string, minutes int) error {
	query := `
		INSERT INTO users (user_id, weekly_goal_minutes)
		VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET weekly_goal_minutes = excluded.weekly_goal_minutes
	`
	_, err := r.db.ExecContext(ctx, query, userID, minutes)
	return err
}

// AssessDebt adds the shortfall for a closed day. The debt_assessed_date guard
// makes the operation a no-op when that day (or a later one) was already
// assessed. Empty string sorts before any date so fresh rows qualify.
func (r *UserRepository) AssessDebt(ctx context.Context, userID string, date time.Time, shortfall int) error {
	query := `
		UPDATE users SET
			total_debt_minutes = total_debt_minutes + ?,
			debt_assessed_date = ?
		WHERE user_id = ? AND debt_assessed_date < ?
	`
	d := date.Format(dateLayout)
	_, err := r.db.ExecContext(ctx, query, shortfall, d, userID, d)
	return err
}

func (r *UserRepository) PayDebt(ctx context.Context, userID string, minutes int) error {
	query := `UPDATE users SET total_debt_minutes = MAX(total_debt_minutes - ?, 0) WHERE user_id = ?`
	_, err := r.db.ExecContext(ctx, query, minutes, userID)
	return err
}

// ResetUser clears all ledger fields but keeps the row, its name and its goal
// configuration.
func (r *UserRepository) ResetUser(ctx context.Context, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM study_log WHERE user_id = ?`, userID); err != nil {
		return err
	}

	query := `
		UPDATE users SET
			total_minutes = 0,
			streak = 0,
			last_log_date = '',
			total_debt_minutes = 0,
			debt_assessed_date = ''
		WHERE user_id = ?
	`
	if _, err := tx.ExecContext(ctx, query, userID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *UserRepository) DailyTop(ctx context.Context, date time.Time, limit int) ([]domain.RankedUser, error) {
	query := `
		SELECT s.user_id, u.name, s.minutes, u.streak
		FROM study_log s
		JOIN users u ON u.user_id = s.user_id
		WHERE s.log_date = ? AND s.minutes > 0
		ORDER BY s.minutes DESC
		LIMIT ?
	`
	return r.queryRanked(ctx, query, date.Format(dateLayout), limit)
}

func (r *UserRepository) WeeklyTop(ctx context.Context, from, to time.Time, limit int) ([]domain.RankedUser, error) {
	query := `
		SELECT s.user_id, u.name, SUM(s.minutes) AS minutes, u.streak
		FROM study_log s
		JOIN users u ON u.user_id = s.user_id
		WHERE s.log_date >= ? AND s.log_date <= ?
		GROUP BY s.user_id, u.name, u.streak
		HAVING SUM(s.minutes) > 0
		ORDER BY minutes DESC
		LIMIT ?
	`
	return r.queryRanked(ctx, query, from.Format(dateLayout), to.Format(dateLayout), limit)
}

func (r *UserRepository) AllTimeTop(ctx context.Context, limit int) ([]domain.RankedUser, error) {
	query := `
		SELECT user_id, name, total_minutes, streak FROM users
		WHERE total_minutes > 0
		ORDER BY total_minutes DESC
		LIMIT ?
	`
	return r.queryRanked(ctx, query, limit)
}

func (r *UserRepository) StreakTop(ctx context.Context, limit int) ([]domain.RankedUser, error) {
	query := `
		SELECT user_id, name, total_minutes, streak FROM users
		WHERE streak > 0
		ORDER BY streak DESC
		LIMIT ?
	`
	return r.queryRanked(ctx, query, limit)
}

func (r *UserRepository) queryRanked(ctx context.Context, query string, args ...any) ([]domain.RankedUser, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranked []domain.RankedUser
	for rows.Next() {
		var u domain.RankedUser
		if err := rows.Scan(&u.UserID, &u.Name, &u.Minutes, &u.Streak); err != nil {
			return nil, err
		}
		ranked = append(ranked, u)
	}
	return ranked, rows.Err()
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}
